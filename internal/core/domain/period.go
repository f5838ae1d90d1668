package domain

import "time"

// PeriodStatus indicates whether a financial period still accepts postings.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// FinancialPeriod bounds the dates postings may be recorded against.
// Closing a period is irreversible and only valid while it is Open.
type FinancialPeriod struct {
	PeriodID  string       `json:"periodID"` // Primary Key (e.g., UUID)
	Name      string       `json:"name"`     // e.g., "FY2026 Q1"
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"` // Default: Open
	AuditFields
}
