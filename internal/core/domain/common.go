package domain

import "time"

// RecordStatus indicates whether a record is usable for new postings.
type RecordStatus string

const (
	Active   RecordStatus = "ACTIVE"
	Inactive RecordStatus = "INACTIVE"
)

// AuditFields holds standard audit information for domain records.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}
