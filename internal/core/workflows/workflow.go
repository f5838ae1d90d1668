// Package workflows glues the four controller primitives into one
// list-manage workflow per back-office page. A concrete resource supplies
// only its record type, list route, filters and action set; the repeated
// fetch/confirm/notify/refresh behaviour lives here once.
package workflows

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/finhr/backoffice/internal/apperrors"
	"github.com/finhr/backoffice/internal/core/controllers"
	"github.com/finhr/backoffice/internal/core/ports"
)

// Config describes one resource's list-manage page.
type Config struct {
	ListRoute      string            // navigation target after successful form submission
	PerPage        int               // defaults to 10
	SearchDebounce time.Duration     // defaults to 500ms
	InitialFilters map[string]string // filter set present at mount

	// GatedActions always interpose a confirmation (delete, close, post,
	// accept). ImmediateActions run without one (toggle-status).
	GatedActions     []ports.Action
	ImmediateActions []ports.Action

	// Form behaviour for this record type.
	MinLines      int
	InlineDetails bool
	Validator     controllers.Validator
}

// ListManageWorkflow is one mounted list page: the query controller, the
// notification bridge subscription with its dedupe guard, and a confirmation
// gate per destructive action.
type ListManageWorkflow[T any] struct {
	Records *controllers.ListQueryController[T]

	cfg         Config
	collab      ports.ResourceCollaborator[T]
	bridge      *controllers.AsyncNotificationBridge
	gates       map[ports.Action]*controllers.ConfirmableActionGate[string]
	immediate   map[ports.Action]bool
	ctx         context.Context
	logger      *slog.Logger
	unsubscribe func()

	guardMu sync.Mutex
	guard   controllers.DedupeGuard
}

// New mounts a workflow: it subscribes to the signal bus and prepares the
// query controller. The caller runs Records.Refresh() for the initial fetch
// and Close() on navigation away.
func New[T any](ctx context.Context, collab ports.ResourceCollaborator[T], bridge *controllers.AsyncNotificationBridge, logger *slog.Logger, cfg Config) *ListManageWorkflow[T] {
	if logger == nil {
		logger = slog.Default()
	}

	listOpts := []controllers.ListControllerOption{
		controllers.WithInitialFilters(cfg.InitialFilters),
	}
	if cfg.PerPage > 0 {
		listOpts = append(listOpts, controllers.WithPerPage(cfg.PerPage))
	}
	if cfg.SearchDebounce > 0 {
		listOpts = append(listOpts, controllers.WithSearchDebounce(cfg.SearchDebounce))
	}

	w := &ListManageWorkflow[T]{
		Records:   controllers.NewListQueryController[T](ctx, collab, bridge, logger, listOpts...),
		cfg:       cfg,
		collab:    collab,
		bridge:    bridge,
		gates:     make(map[ports.Action]*controllers.ConfirmableActionGate[string]),
		immediate: make(map[ports.Action]bool),
		ctx:       ctx,
		logger:    logger,
	}
	for _, action := range cfg.GatedActions {
		a := action
		w.gates[a] = controllers.NewConfirmableActionGate(func(recordID string) {
			w.run(a, recordID)
		})
	}
	for _, action := range cfg.ImmediateActions {
		w.immediate[action] = true
	}

	w.unsubscribe = bridge.Bus().Subscribe(func(sig controllers.Signal) {
		w.guardMu.Lock()
		defer w.guardMu.Unlock()
		bridge.Observe(&sig, &w.guard)
	})
	return w
}

// RequestAction starts an action against one record. Gated actions open
// their confirmation; immediate ones execute at once.
func (w *ListManageWorkflow[T]) RequestAction(action ports.Action, recordID string) error {
	if gate, ok := w.gates[action]; ok {
		gate.Request(recordID)
		return nil
	}
	if w.immediate[action] {
		w.run(action, recordID)
		return nil
	}
	return apperrors.ErrValidation
}

// Gate exposes the confirmation gate for one gated action, or nil.
func (w *ListManageWorkflow[T]) Gate(action ports.Action) *controllers.ConfirmableActionGate[string] {
	return w.gates[action]
}

// Confirm executes the pending gated action.
func (w *ListManageWorkflow[T]) Confirm(action ports.Action) error {
	gate, ok := w.gates[action]
	if !ok {
		return apperrors.ErrNoPendingAction
	}
	return gate.Confirm()
}

// Cancel discards the pending gated action.
func (w *ListManageWorkflow[T]) Cancel(action ports.Action) error {
	gate, ok := w.gates[action]
	if !ok {
		return apperrors.ErrNoPendingAction
	}
	return gate.Cancel()
}

// NewFormSession opens a create form for this resource. Pass
// controllers.WithRecordID to edit an existing record instead.
func (w *ListManageWorkflow[T]) NewFormSession(opts ...controllers.FormOption) *controllers.RecordFormSession {
	base := []controllers.FormOption{}
	if w.cfg.MinLines > 0 {
		base = append(base, controllers.WithMinLines(w.cfg.MinLines))
	}
	if w.cfg.InlineDetails {
		base = append(base, controllers.WithInlineDetails())
	}
	if w.cfg.Validator != nil {
		base = append(base, controllers.WithValidator(w.cfg.Validator))
	}
	base = append(base, opts...)
	return controllers.NewRecordFormSession(w.collab, w.bridge, w.cfg.ListRoute, w.logger, base...)
}

// Close unmounts the workflow: the bus subscription is dropped and the query
// controller stops accepting fetch resolutions.
func (w *ListManageWorkflow[T]) Close() {
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
	w.Records.Close()
}

// run executes one action and refreshes the list when it succeeds, so the
// view reflects collaborator state.
func (w *ListManageWorkflow[T]) run(action ports.Action, recordID string) {
	message, err := w.collab.InvokeAction(w.ctx, action, recordID)
	if err != nil {
		w.logger.Warn("record action failed",
			slog.String("action", string(action)),
			slog.String("record_id", recordID),
			slog.String("error", err.Error()))
		w.bridge.Bus().PublishError(err.Error())
		return
	}
	w.bridge.Bus().PublishSuccess(message, "")
	w.Records.Refresh()
}

// ReadOnlyWorkflow is a fetch-only listing (trial balance): a query
// controller plus the notification subscription, with no mutations.
type ReadOnlyWorkflow[T any] struct {
	Records *controllers.ListQueryController[T]

	unsubscribe func()
	guardMu     sync.Mutex
	guard       controllers.DedupeGuard
}

// NewReadOnly mounts a read-only listing.
func NewReadOnly[T any](ctx context.Context, lister ports.Lister[T], bridge *controllers.AsyncNotificationBridge, logger *slog.Logger, cfg Config) *ReadOnlyWorkflow[T] {
	listOpts := []controllers.ListControllerOption{
		controllers.WithInitialFilters(cfg.InitialFilters),
	}
	if cfg.PerPage > 0 {
		listOpts = append(listOpts, controllers.WithPerPage(cfg.PerPage))
	}
	if cfg.SearchDebounce > 0 {
		listOpts = append(listOpts, controllers.WithSearchDebounce(cfg.SearchDebounce))
	}
	w := &ReadOnlyWorkflow[T]{
		Records: controllers.NewListQueryController[T](ctx, lister, bridge, logger, listOpts...),
	}
	w.unsubscribe = bridge.Bus().Subscribe(func(sig controllers.Signal) {
		w.guardMu.Lock()
		defer w.guardMu.Unlock()
		bridge.Observe(&sig, &w.guard)
	})
	return w
}

// Close unmounts the listing.
func (w *ReadOnlyWorkflow[T]) Close() {
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
	w.Records.Close()
}
