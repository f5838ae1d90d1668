package domain

// Currency represents a currency the back office can record amounts in.
type Currency struct {
	CurrencyCode string       `json:"currencyCode"` // ISO 4217 code, Primary Key
	Symbol       string       `json:"symbol"`
	Name         string       `json:"name"`
	Precision    int          `json:"precision"` // Display decimal places
	Status       RecordStatus `json:"status"`
	AuditFields
}
