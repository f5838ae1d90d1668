package domain

// Customer represents a party the back office invoices or receives payments from.
type Customer struct {
	CustomerID string       `json:"customerID"` // Primary Key (e.g., UUID)
	Name       string       `json:"name"`
	TaxNumber  string       `json:"taxNumber"` // Nullable
	Phone      string       `json:"phone"`     // Nullable
	Email      string       `json:"email"`     // Nullable
	Address    string       `json:"address"`   // Nullable
	Status     RecordStatus `json:"status"`
	AuditFields
}
