package controllers

import (
	"sync"

	"github.com/finhr/backoffice/internal/apperrors"
)

// ConfirmableActionGate interposes an explicit confirmation between a user's
// destructive intent and its execution. At most one confirmation is pending
// per gate; requesting while one is open replaces the previous target
// (last-write-wins, no queueing).
//
// The gate does not check whether the action is valid for the target's
// current state (closing an already-closed period, deleting a posted entry);
// callers suppress the triggering control instead. The bound action's own
// success or error is reported asynchronously through the notification
// bridge, not by the gate.
type ConfirmableActionGate[T any] struct {
	mu      sync.Mutex
	target  T
	pending bool
	action  func(target T)
}

// NewConfirmableActionGate binds the gate to the destructive action it
// guards. The gate starts idle.
func NewConfirmableActionGate[T any](action func(target T)) *ConfirmableActionGate[T] {
	return &ConfirmableActionGate[T]{action: action}
}

// Request opens (or retargets) the confirmation for the given target.
func (g *ConfirmableActionGate[T]) Request(target T) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.target = target
	g.pending = true
}

// Confirm invokes the bound action with the pending target exactly once,
// then returns the gate to idle regardless of the action's outcome.
func (g *ConfirmableActionGate[T]) Confirm() error {
	g.mu.Lock()
	if !g.pending {
		g.mu.Unlock()
		return apperrors.ErrNoPendingAction
	}
	target := g.target
	g.reset()
	g.mu.Unlock()

	g.action(target)
	return nil
}

// Cancel returns the gate to idle, discarding the pending target without
// invoking anything.
func (g *ConfirmableActionGate[T]) Cancel() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.pending {
		return apperrors.ErrNoPendingAction
	}
	g.reset()
	return nil
}

// Pending returns the awaiting target and whether one exists.
func (g *ConfirmableActionGate[T]) Pending() (T, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.target, g.pending
}

// IsOpen reports whether a confirmation is awaiting the user.
func (g *ConfirmableActionGate[T]) IsOpen() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending
}

func (g *ConfirmableActionGate[T]) reset() {
	var zero T
	g.target = zero
	g.pending = false
}
