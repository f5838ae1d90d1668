package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherStatus indicates the state of a receipt voucher.
type VoucherStatus string

const (
	VoucherPending  VoucherStatus = "PENDING"
	VoucherAccepted VoucherStatus = "ACCEPTED"
)

// ReceiptVoucher records money received from a customer, allocated across
// one or more posting accounts.
type ReceiptVoucher struct {
	VoucherID     string          `json:"voucherID"` // Primary Key (e.g., UUID)
	VoucherNumber string          `json:"voucherNumber"`
	VoucherDate   time.Time       `json:"voucherDate"`
	CustomerID    string          `json:"customerID"` // FK -> Customer
	BankID        string          `json:"bankID"`     // FK -> Bank, receiving account
	Amount        decimal.Decimal `json:"amount"`     // Sum of line credits
	Description   string          `json:"description"`
	Status        VoucherStatus   `json:"status"` // Default: Pending
	Lines         []DetailLine    `json:"lines"`
	AuditFields
}
