package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
)

// JournalEntry represents a financial event composed of multiple detail lines.
// Only entries still in Draft may be deleted; posting is irreversible.
type JournalEntry struct {
	EntryID      string        `json:"entryID"` // Primary Key (e.g., UUID)
	EntryNumber  string        `json:"entryNumber"`
	EntryDate    time.Time     `json:"entryDate"` // Date the event occurred
	Description  string        `json:"description"`
	CurrencyCode string        `json:"currencyCode"`
	Status       JournalStatus `json:"status"` // Default: Draft
	Lines        []DetailLine  `json:"lines"`
	AuditFields
}

// DetailLine is a sub-row of a composite record: one ledger posting within a
// journal entry, or one allocation within a receipt voucher.
type DetailLine struct {
	AccountID   string          `json:"accountID"` // FK -> PostingAccount
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"` // Nullable
}
