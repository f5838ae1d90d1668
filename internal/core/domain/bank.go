package domain

import "github.com/shopspring/decimal"

// Bank represents a bank account the back office can draw on or deposit into.
type Bank struct {
	BankID         string          `json:"bankID"` // Primary Key (e.g., UUID)
	Name           string          `json:"name"`
	AccountNumber  string          `json:"accountNumber"`
	IBAN           string          `json:"iban"` // Nullable
	CurrencyCode   string          `json:"currencyCode"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Status         RecordStatus    `json:"status"` // Default: Active
	AuditFields
}
