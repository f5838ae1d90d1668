package accounting

import (
	"fmt"

	"github.com/finhr/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineTotals sums debit and credit across detail lines and returns both
// totals plus their difference. This drives the advisory totals row under
// journal and voucher forms; it never blocks submission.
func LineTotals(lines []domain.DetailLine) (debit, credit, difference decimal.Decimal) {
	debit = decimal.Zero
	credit = decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit, debit.Sub(credit)
}

// ValidateBalance checks that an entry's lines balance: total debit equals
// total credit, with at least two lines. The balance is displayed as a hint
// on the client; whether an unbalanced entry may still be submitted is the
// collaborator's call.
func ValidateBalance(lines []domain.DetailLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal entry must have at least two detail lines")
	}

	zero := decimal.Zero
	for i, l := range lines {
		if l.Debit.LessThan(zero) || l.Credit.LessThan(zero) {
			return fmt.Errorf("line %d: amounts must not be negative", i+1)
		}
		if !l.Debit.IsZero() && !l.Credit.IsZero() {
			return fmt.Errorf("line %d: a line may carry a debit or a credit, not both", i+1)
		}
	}

	debit, credit, difference := LineTotals(lines)
	if !difference.IsZero() {
		return fmt.Errorf("entry does not balance: debit %s, credit %s", debit.String(), credit.String())
	}
	return nil
}
