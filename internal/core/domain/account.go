package domain

// AccountType categorizes a posting account for reporting purposes.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// PostingAccount is an account eligible to receive debit/credit postings.
// It is fetched from the collaborator to populate selection dropdowns in
// journal and voucher forms.
type PostingAccount struct {
	AccountID   string       `json:"accountID"` // Primary Key (e.g., UUID)
	Code        string       `json:"code"`      // Chart-of-accounts code
	Name        string       `json:"name"`
	AccountType AccountType  `json:"accountType"`
	Status      RecordStatus `json:"status"`
}
