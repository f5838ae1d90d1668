// Package ports defines the capabilities the workflow controllers expect from
// the back-office API collaborator. The controllers never talk to the network
// themselves; an adapter (internal/adapters/api) implements these interfaces.
package ports

import (
	"context"

	"github.com/finhr/backoffice/internal/core/domain"
)

// ListQuery carries the pagination/search/filter triple for one list view.
// Page resets to 1 whenever Search or any filter changes; the controller
// owning the query enforces that.
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	Filters map[string]string
}

// WithFilter returns a copy of the query with one named filter set, leaving
// the receiver untouched.
func (q ListQuery) WithFilter(name, value string) ListQuery {
	filters := make(map[string]string, len(q.Filters)+1)
	for k, v := range q.Filters {
		filters[k] = v
	}
	filters[name] = value
	q.Filters = filters
	return q
}

// Page is one page of records returned by the collaborator.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
}

// Lister retrieves one page of records matching a query.
type Lister[T any] interface {
	List(ctx context.Context, q ListQuery) (Page[T], error)
}

// ListerFunc adapts a plain function to the Lister interface.
type ListerFunc[T any] func(ctx context.Context, q ListQuery) (Page[T], error)

func (f ListerFunc[T]) List(ctx context.Context, q ListQuery) (Page[T], error) {
	return f(ctx, q)
}

// FilePart is one binary part of a multipart submission.
type FilePart struct {
	FieldName   string // e.g. "attachments[0]"
	FileName    string
	ContentType string
	Content     []byte
}

// Payload is a fully-built submission body. Multipart is true iff the form
// held at least one attachment when the payload was built; in that case the
// detail-line collection travels JSON-encoded inside Fields under "details"
// and every attachment appears in Files under an indexed key. On the plain
// JSON path Fields may carry structured values (the line collection inlined)
// which the adapter serializes as-is.
type Payload struct {
	Multipart bool
	Fields    map[string]any
	Files     []FilePart
}

// RecordWriter persists new and edited records. Both calls return the
// collaborator's success message for display.
type RecordWriter interface {
	Create(ctx context.Context, p Payload) (string, error)
	Update(ctx context.Context, recordID string, p Payload) (string, error)
}

// Action names a single-identifier mutation on an existing record.
type Action string

const (
	ActionDelete       Action = "delete"
	ActionToggleStatus Action = "toggle-status"
	ActionPost         Action = "post"
	ActionAccept       Action = "accept"
	ActionClose        Action = "close"
)

// ActionInvoker executes a single-identifier action (delete, toggle-status,
// post, accept, close) and returns the collaborator's message string.
type ActionInvoker interface {
	InvokeAction(ctx context.Context, action Action, recordID string) (string, error)
}

// AccountLookup fetches posting accounts for form selection dropdowns.
type AccountLookup interface {
	ListPostingAccounts(ctx context.Context) ([]domain.PostingAccount, error)
}

// ResourceCollaborator combines everything a full list-manage page needs for
// one record type. Read-only pages (trial balance) use Lister alone.
type ResourceCollaborator[T any] interface {
	Lister[T]
	RecordWriter
	ActionInvoker
}
