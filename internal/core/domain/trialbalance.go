package domain

import "github.com/shopspring/decimal"

// TrialBalanceRow is one account line of a trial balance report. Rows are
// read-only: the report is produced entirely by the collaborator.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	BalanceDebit  decimal.Decimal `json:"balanceDebit"`  // Debit-side closing balance, zero when credit-side
	BalanceCredit decimal.Decimal `json:"balanceCredit"` // Credit-side closing balance, zero when debit-side
}
