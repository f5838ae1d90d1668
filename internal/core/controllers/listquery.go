package controllers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/finhr/backoffice/internal/apperrors"
	"github.com/finhr/backoffice/internal/core/ports"
)

// ListQueryController owns the pagination/search/filter state for one list
// view and issues a fetch whenever any element changes. Search input is
// debounced; filters and page changes fetch immediately on the calling
// goroutine. Fetch failures are reported through the notification bridge and
// never retried automatically.
//
// Responses carry a monotonic generation number; a response from an older
// fetch than the newest issued one is discarded, so a slow early request can
// never overwrite the result of a fast later one.
type ListQueryController[T any] struct {
	mu sync.Mutex

	query    ports.ListQuery
	result   ports.Page[T]
	lastPage int
	loading  bool
	closed   bool
	gen      uint64

	ctx    context.Context
	lister ports.Lister[T]
	bridge *AsyncNotificationBridge
	deb    *Debouncer
	logger *slog.Logger
}

// ListControllerOption customizes a ListQueryController.
type ListControllerOption func(*listControllerSettings)

type listControllerSettings struct {
	perPage  int
	debounce time.Duration
	filters  map[string]string
}

// WithPerPage sets the page size (default 10).
func WithPerPage(n int) ListControllerOption {
	return func(s *listControllerSettings) {
		if n > 0 {
			s.perPage = n
		}
	}
}

// WithSearchDebounce sets the search quiet period (default 500ms).
func WithSearchDebounce(d time.Duration) ListControllerOption {
	return func(s *listControllerSettings) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithInitialFilters seeds the filter set present at mount.
func WithInitialFilters(filters map[string]string) ListControllerOption {
	return func(s *listControllerSettings) {
		s.filters = filters
	}
}

// NewListQueryController creates a controller with page 1 and empty search.
// No fetch is issued until the caller invokes Refresh (the mount fetch) or
// mutates the query.
func NewListQueryController[T any](ctx context.Context, lister ports.Lister[T], bridge *AsyncNotificationBridge, logger *slog.Logger, opts ...ListControllerOption) *ListQueryController[T] {
	settings := &listControllerSettings{
		perPage:  10,
		debounce: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(settings)
	}
	if logger == nil {
		logger = slog.Default()
	}
	filters := make(map[string]string, len(settings.filters))
	for k, v := range settings.filters {
		filters[k] = v
	}
	return &ListQueryController[T]{
		query: ports.ListQuery{
			Page:    1,
			PerPage: settings.perPage,
			Filters: filters,
		},
		lastPage: 1,
		ctx:      ctx,
		lister:   lister,
		bridge:   bridge,
		deb:      NewDebouncer(settings.debounce),
		logger:   logger,
	}
}

// SetSearch updates the search text immediately, resets the page to 1, and
// schedules a fetch after the quiet period measured from the last keystroke.
// An empty-to-empty transition schedules nothing.
func (c *ListQueryController[T]) SetSearch(term string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if term == "" && c.query.Search == "" {
		c.mu.Unlock()
		return
	}
	c.query.Search = term
	c.query.Page = 1
	c.mu.Unlock()

	c.deb.Do(func() {
		c.fetch()
	})
}

// SetFilter updates one named filter, resets the page to 1 and fetches
// immediately. Filters are discrete selections, not free text, so they are
// not debounced.
func (c *ListQueryController[T]) SetFilter(name, value string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.query.Filters == nil {
		c.query.Filters = make(map[string]string)
	}
	c.query.Filters[name] = value
	c.query.Page = 1
	c.mu.Unlock()

	c.fetch()
}

// SetPage moves to page n and fetches immediately with all current search and
// filter values attached. n must lie within [1, last known last page].
func (c *ListQueryController[T]) SetPage(n int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return apperrors.ErrClosed
	}
	if n < 1 || n > c.lastPage {
		c.mu.Unlock()
		return apperrors.ErrPageOutOfRange
	}
	c.query.Page = n
	c.mu.Unlock()

	c.fetch()
	return nil
}

// Refresh re-issues a fetch with the current query unchanged. Used at mount
// and after a mutation completes so the list reflects collaborator state.
func (c *ListQueryController[T]) Refresh() {
	c.fetch()
}

// Query returns a snapshot of the current query.
func (c *ListQueryController[T]) Query() ports.ListQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	q := c.query
	filters := make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		filters[k] = v
	}
	q.Filters = filters
	return q
}

// Result returns the most recently accepted page.
func (c *ListQueryController[T]) Result() ports.Page[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// IsLoading reports whether a fetch is outstanding.
func (c *ListQueryController[T]) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Close cancels any pending debounced fetch and marks the controller closed
// so late fetch resolutions are dropped. Called on navigation away.
func (c *ListQueryController[T]) Close() {
	c.deb.Stop()
	c.mu.Lock()
	c.closed = true
	c.gen++
	c.mu.Unlock()
}

func (c *ListQueryController[T]) fetch() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.gen++
	gen := c.gen
	c.loading = true
	q := c.query
	filters := make(map[string]string, len(q.Filters))
	for k, v := range q.Filters {
		filters[k] = v
	}
	q.Filters = filters
	c.mu.Unlock()

	page, err := c.lister.List(c.ctx, q)

	c.mu.Lock()
	if c.closed || gen != c.gen {
		// A newer fetch superseded this one, or the view unmounted.
		c.mu.Unlock()
		return
	}
	c.loading = false
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("list fetch failed",
			slog.Int("page", q.Page),
			slog.String("search", q.Search),
			slog.String("error", err.Error()))
		c.bridge.Bus().PublishError(err.Error())
		return
	}
	c.result = page
	if page.LastPage >= 1 {
		c.lastPage = page.LastPage
	} else {
		c.lastPage = 1
	}
	c.mu.Unlock()
}
