package workflows

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/finhr/backoffice/internal/apperrors"
	"github.com/finhr/backoffice/internal/core/controllers"
	"github.com/finhr/backoffice/internal/core/domain"
	"github.com/finhr/backoffice/internal/core/ports"
	"github.com/finhr/backoffice/internal/utils/accounting"
)

// Route and API path per resource. The collection path doubles as the list
// route the client navigates back to after a successful submission.
const (
	BanksPath          = "/banks"
	CurrenciesPath     = "/currencies"
	CustomersPath      = "/customers"
	JournalEntriesPath = "/journal-entries"
	VouchersPath       = "/receipt-vouchers"
	PeriodsPath        = "/financial-periods"
	ShiftsPath         = "/shifts"
	LeaveTypesPath     = "/leave-types"
	TrialBalancePath   = "/trial-balance"
	ProfilePath        = "/profile"
)

func requiredField(fields map[string]any, name string) error {
	if err := validation.Validate(fields[name], validation.Required); err != nil {
		return fmt.Errorf("%w: %s is required", apperrors.ErrValidation, name)
	}
	return nil
}

// NewBanks mounts the banks page: searchable list with status filter,
// toggle-status, and confirm-gated delete.
func NewBanks(ctx context.Context, collab ports.ResourceCollaborator[domain.Bank], bridge *controllers.AsyncNotificationBridge, logger *slog.Logger) *ListManageWorkflow[domain.Bank] {
	return New(ctx, collab, bridge, logger, Config{
		ListRoute:        BanksPath,
		GatedActions:     []ports.Action{ports.ActionDelete},
		ImmediateActions: []ports.Action{ports.ActionToggleStatus},
		Validator: func(fields map[string]any, _ []domain.DetailLine) error {
			if err := requiredField(fields, "name"); err != nil {
				return err
			}
			if err := requiredField(fields, "currencyCode"); err != nil {
				return err
			}
			return nil
		},
	})
}

// NewCurrencies mounts the currencies page.
func NewCurrencies(ctx context.Context, collab ports.ResourceCollaborator[domain.Currency], bridge *controllers.AsyncNotificationBridge, logger *slog.Logger) *ListManageWorkflow[domain.Currency] {
	return New(ctx, collab, bridge, logger, Config{
		ListRoute:        CurrenciesPath,
		GatedActions:     []ports.Action{ports.ActionDelete},
		ImmediateActions: []ports.Action{ports.ActionToggleStatus},
		Validator: func(fields map[string]any, _ []domain.DetailLine) error {
			code, _ := fields["currencyCode"].(string)
			if err := validation.Validate(code, validation.Required, validation.Length(3, 3), is.UpperCase); err != nil {
				return fmt.Errorf("%w: currencyCode: %s", apperrors.ErrValidation, err.Error())
			}
			return requiredField(fields, "name")
		},
	})
}

// NewCustomers mounts the customers page.
func NewCustomers(ctx context.Context, collab ports.ResourceCollaborator[domain.Customer], bridge *controllers.AsyncNotificationBridge, logger *slog.Logger) *ListManageWorkflow[domain.Customer] {
	return New(ctx, collab, bridge, logger, Config{
		ListRoute:        CustomersPath,
		GatedActions:     []ports.Action{ports.ActionDelete},
		ImmediateActions: []ports.Action{ports.ActionToggleStatus},
		Validator: func(fields map[string]any, _ []domain.DetailLine) error {
			if err := requiredField(fields, "name"); err != nil {
				return err
			}
			if email, ok := fields["email"].(string); ok && email != "" {
				if err := validation.Validate(email, is.Email); err != nil {
					return fmt.Errorf("%w: email: %s", apperrors.ErrValidation, err.Error())
				}
			}
			return nil
		},
	})
}

// NewJournalEntries mounts the journal entries page. Deleting is gated and
// only offered for Draft entries; posting is gated and irreversible. The
// triggering controls are suppressed for entries whose status forbids the
// action; the gates themselves do not re-check.
func NewJournalEntries(ctx context.Context, collab ports.ResourceCollaborator[domain.JournalEntry], bridge *controllers.AsyncNotificationBridge, logger *slog.Logger) *ListManageWorkflow[domain.JournalEntry] {
	return New(ctx, collab, bridge, logger, Config{
		ListRoute:    JournalEntriesPath,
		GatedActions: []ports.Action{ports.ActionDelete, ports.ActionPost},
		MinLines:     2,
		Validator: func(fields map[string]any, lines []domain.DetailLine) error {
			if err := requiredField(fields, "entryDate"); err != nil {
				return err
			}
			if err := requiredField(fields, "currencyCode"); err != nil {
				return err
			}
			// Debit/credit balance stays advisory: unbalanced entries are
			// submitted and the collaborator decides. Only account presence
			// is enforced here.
			return controllers.RequireLineAccounts(fields, lines)
		},
	})
}

// BalancedJournalLines is a strict pre-submit check for embeddings that want
// unbalanced entries rejected client-side instead of advisory-only. Pass it
// to NewFormSession via controllers.WithValidator to replace the default.
func BalancedJournalLines(fields map[string]any, lines []domain.DetailLine) error {
	if err := requiredField(fields, "entryDate"); err != nil {
		return err
	}
	if err := controllers.RequireLineAccounts(fields, lines); err != nil {
		return err
	}
	if err := accounting.ValidateBalance(lines); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}

// NewReceiptVouchers mounts the receipt vouchers page. Accepting a voucher
// is gated and irreversible.
func NewReceiptVouchers(ctx context.Context, collab ports.ResourceCollaborator[domain.ReceiptVoucher], bridge *controllers.AsyncNotificationBridge, logger *slog.Logger) *ListManageWorkflow[domain.ReceiptVoucher] {
	return New(ctx, collab, bridge, logger, Config{
		ListRoute:    VouchersPath,
		GatedActions: []ports.Action{ports.ActionDelete, ports.ActionAccept},
		MinLines:     1,
		Validator: func(fields map[string]any, lines []domain.DetailLine) error {
			if err := requiredField(fields, "customerID"); err != nil {
				return err
			}
			if err := requiredField(fields, "bankID"); err != nil {
				return err
			}
			return controllers.RequireLineAccounts(fields, lines)
		},
	})
}

// NewFinancialPeriods mounts the financial periods page. Closing a period is
// gated and irreversible; the close control is only rendered while the
// period is Open.
func NewFinancialPeriods(ctx context.Context, collab ports.ResourceCollaborator[domain.FinancialPeriod], bridge *controllers.AsyncNotificationBridge, logger *slog.Logger) *ListManageWorkflow[domain.FinancialPeriod] {
	return New(ctx, collab, bridge, logger, Config{
		ListRoute:    PeriodsPath,
		GatedActions: []ports.Action{ports.ActionDelete, ports.ActionClose},
		Validator: func(fields map[string]any, _ []domain.DetailLine) error {
			if err := requiredField(fields, "name"); err != nil {
				return err
			}
			if err := requiredField(fields, "startDate"); err != nil {
				return err
			}
			return requiredField(fields, "endDate")
		},
	})
}

// NewShifts mounts the work shifts page.
func NewShifts(ctx context.Context, collab ports.ResourceCollaborator[domain.Shift], bridge *controllers.AsyncNotificationBridge, logger *slog.Logger) *ListManageWorkflow[domain.Shift] {
	return New(ctx, collab, bridge, logger, Config{
		ListRoute:        ShiftsPath,
		GatedActions:     []ports.Action{ports.ActionDelete},
		ImmediateActions: []ports.Action{ports.ActionToggleStatus},
		Validator: func(fields map[string]any, _ []domain.DetailLine) error {
			if err := requiredField(fields, "name"); err != nil {
				return err
			}
			if err := requiredField(fields, "startTime"); err != nil {
				return err
			}
			return requiredField(fields, "endTime")
		},
	})
}

// NewLeaveTypes mounts the leave types page.
func NewLeaveTypes(ctx context.Context, collab ports.ResourceCollaborator[domain.LeaveType], bridge *controllers.AsyncNotificationBridge, logger *slog.Logger) *ListManageWorkflow[domain.LeaveType] {
	return New(ctx, collab, bridge, logger, Config{
		ListRoute:        LeaveTypesPath,
		GatedActions:     []ports.Action{ports.ActionDelete},
		ImmediateActions: []ports.Action{ports.ActionToggleStatus},
		Validator: func(fields map[string]any, _ []domain.DetailLine) error {
			return requiredField(fields, "name")
		},
	})
}

// NewTrialBalance mounts the read-only trial balance report, filtered by
// financial period. The report is not browsed page by page, so it fetches
// with a large page size.
func NewTrialBalance(ctx context.Context, lister ports.Lister[domain.TrialBalanceRow], bridge *controllers.AsyncNotificationBridge, logger *slog.Logger, periodID string) *ReadOnlyWorkflow[domain.TrialBalanceRow] {
	cfg := Config{PerPage: 200}
	if periodID != "" {
		cfg.InitialFilters = map[string]string{"period_id": periodID}
	}
	return NewReadOnly(ctx, lister, bridge, logger, cfg)
}

// NewProfileForm opens the signed-in user's profile edit form. The profile
// page has no list; successful submission stays on the profile route.
func NewProfileForm(writer ports.RecordWriter, bridge *controllers.AsyncNotificationBridge, logger *slog.Logger, userID string) *controllers.RecordFormSession {
	return controllers.NewRecordFormSession(writer, bridge, ProfilePath, logger,
		controllers.WithRecordID(userID),
		controllers.WithValidator(func(fields map[string]any, _ []domain.DetailLine) error {
			if err := requiredField(fields, "name"); err != nil {
				return err
			}
			email, _ := fields["email"].(string)
			if err := validation.Validate(email, validation.Required, is.Email); err != nil {
				return fmt.Errorf("%w: email: %s", apperrors.ErrValidation, err.Error())
			}
			return nil
		}))
}
