package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/finhr/backoffice/internal/apperrors"
	"github.com/finhr/backoffice/internal/core/domain"
)

// ListPostingAccounts fetches the accounts eligible for debit/credit
// postings, used to populate form selection dropdowns.
func (c *Client) ListPostingAccounts(ctx context.Context) ([]domain.PostingAccount, error) {
	var envelope struct {
		Data []domain.PostingAccount `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/accounts", nil, nil, "", &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrFetchFailed, err.Error())
	}
	if envelope.Data == nil {
		return []domain.PostingAccount{}, nil
	}
	return envelope.Data, nil
}
