package controllers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finhr/backoffice/internal/apperrors"
	"github.com/finhr/backoffice/internal/core/controllers"
	"github.com/finhr/backoffice/internal/core/ports"
)

type listCall struct {
	query ports.ListQuery
	at    time.Time
}

// recordingLister captures every fetch and serves a canned page.
type recordingLister struct {
	mu    sync.Mutex
	calls []listCall
	page  ports.Page[string]
	err   error
}

func (l *recordingLister) List(_ context.Context, q ports.ListQuery) (ports.Page[string], error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, listCall{query: q, at: time.Now()})
	return l.page, l.err
}

func (l *recordingLister) Calls() []listCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]listCall{}, l.calls...)
}

func newTestBridge() (*controllers.AsyncNotificationBridge, *recordingToasts) {
	toasts := &recordingToasts{}
	bridge := controllers.NewAsyncNotificationBridge(controllers.NewSignalBus(), toasts, nil, nil)
	return bridge, toasts
}

func TestSearchBurstCoalescesToOneFetch(t *testing.T) {
	lister := &recordingLister{page: ports.Page[string]{CurrentPage: 1, LastPage: 1}}
	bridge, _ := newTestBridge()
	c := controllers.NewListQueryController[string](context.Background(), lister, bridge, nil,
		controllers.WithSearchDebounce(60*time.Millisecond))
	defer c.Close()

	c.SetSearch("ban")
	time.Sleep(20 * time.Millisecond)
	lastKeystroke := time.Now()
	c.SetSearch("bank")

	time.Sleep(150 * time.Millisecond)

	calls := lister.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "bank", calls[0].query.Search)
	assert.Equal(t, 1, calls[0].query.Page)
	assert.Equal(t, 10, calls[0].query.PerPage)
	assert.GreaterOrEqual(t, calls[0].at.Sub(lastKeystroke), 60*time.Millisecond)
}

func TestEmptyToEmptySearchDoesNotFetch(t *testing.T) {
	lister := &recordingLister{}
	bridge, _ := newTestBridge()
	c := controllers.NewListQueryController[string](context.Background(), lister, bridge, nil,
		controllers.WithSearchDebounce(10*time.Millisecond))
	defer c.Close()

	c.SetSearch("")
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, lister.Calls())
}

func TestClearingSearchFetches(t *testing.T) {
	lister := &recordingLister{page: ports.Page[string]{CurrentPage: 1, LastPage: 1}}
	bridge, _ := newTestBridge()
	c := controllers.NewListQueryController[string](context.Background(), lister, bridge, nil,
		controllers.WithSearchDebounce(10*time.Millisecond))
	defer c.Close()

	c.SetSearch("bank")
	time.Sleep(50 * time.Millisecond)
	c.SetSearch("")
	time.Sleep(50 * time.Millisecond)

	calls := lister.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "", calls[1].query.Search)
}

func TestSetFilterFetchesImmediatelyWithPageReset(t *testing.T) {
	lister := &recordingLister{page: ports.Page[string]{CurrentPage: 1, LastPage: 5}}
	bridge, _ := newTestBridge()
	c := controllers.NewListQueryController[string](context.Background(), lister, bridge, nil)
	defer c.Close()

	c.Refresh() // learn lastPage=5
	require.NoError(t, c.SetPage(3))
	c.SetFilter("status", "ACTIVE")

	calls := lister.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, 3, calls[1].query.Page)
	assert.Equal(t, 1, calls[2].query.Page)
	assert.Equal(t, "ACTIVE", calls[2].query.Filters["status"])
}

func TestSetPageBounds(t *testing.T) {
	lister := &recordingLister{page: ports.Page[string]{CurrentPage: 1, LastPage: 2}}
	bridge, _ := newTestBridge()
	c := controllers.NewListQueryController[string](context.Background(), lister, bridge, nil)
	defer c.Close()

	c.Refresh() // learn lastPage=2

	assert.ErrorIs(t, c.SetPage(0), apperrors.ErrPageOutOfRange)
	assert.ErrorIs(t, c.SetPage(3), apperrors.ErrPageOutOfRange)
	require.NoError(t, c.SetPage(2))

	calls := lister.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, 2, calls[1].query.Page)
}

func TestRefreshKeepsQueryUnchanged(t *testing.T) {
	lister := &recordingLister{page: ports.Page[string]{CurrentPage: 1, LastPage: 3}}
	bridge, _ := newTestBridge()
	c := controllers.NewListQueryController[string](context.Background(), lister, bridge, nil)
	defer c.Close()

	c.SetFilter("status", "ACTIVE")
	require.NoError(t, c.SetPage(2))
	c.Refresh()

	calls := lister.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, calls[1].query.Page, calls[2].query.Page)
	assert.Equal(t, calls[1].query.Filters, calls[2].query.Filters)
}

func TestFetchFailureIsReportedAndNotRetried(t *testing.T) {
	lister := &recordingLister{err: assert.AnError}
	bridge, _ := newTestBridge()
	c := controllers.NewListQueryController[string](context.Background(), lister, bridge, nil)
	defer c.Close()

	c.Refresh()

	require.Len(t, lister.Calls(), 1)
	sig := bridge.Bus().Peek(controllers.SignalError)
	require.NotNil(t, sig)
	assert.Contains(t, sig.Message, assert.AnError.Error())
	assert.False(t, c.IsLoading())
}

// blockingLister holds its first call until released, so a slow early
// request can race a fast later one.
type blockingLister struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
}

func (l *blockingLister) List(_ context.Context, q ports.ListQuery) (ports.Page[string], error) {
	l.mu.Lock()
	l.calls++
	first := l.calls == 1
	l.mu.Unlock()

	if first {
		<-l.release
		return ports.Page[string]{Items: []string{"stale"}, CurrentPage: q.Page, LastPage: 1}, nil
	}
	return ports.Page[string]{Items: []string{"fresh"}, CurrentPage: q.Page, LastPage: 1}, nil
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	lister := &blockingLister{release: make(chan struct{})}
	bridge, _ := newTestBridge()
	c := controllers.NewListQueryController[string](context.Background(), lister, bridge, nil)
	defer c.Close()

	done := make(chan struct{})
	go func() {
		c.Refresh() // slow first fetch
		close(done)
	}()

	// Wait for the first fetch to be in flight, then run a second that
	// completes first.
	require.Eventually(t, func() bool {
		lister.mu.Lock()
		defer lister.mu.Unlock()
		return lister.calls == 1
	}, time.Second, 5*time.Millisecond)
	c.Refresh()

	close(lister.release)
	<-done

	assert.Equal(t, []string{"fresh"}, c.Result().Items)
}

func TestCloseCancelsPendingDebouncedFetch(t *testing.T) {
	lister := &recordingLister{}
	bridge, _ := newTestBridge()
	c := controllers.NewListQueryController[string](context.Background(), lister, bridge, nil,
		controllers.WithSearchDebounce(30*time.Millisecond))

	c.SetSearch("bank")
	c.Close()

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, lister.Calls())
}
