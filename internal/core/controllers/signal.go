package controllers

import (
	"sync"
	"time"
)

// SignalKind distinguishes the two outcome channels.
type SignalKind string

const (
	SignalSuccess SignalKind = "SUCCESS"
	SignalError   SignalKind = "ERROR"
)

// Signal is a one-shot success/error message produced by a mutation or fetch
// and consumed exactly once by the notification bridge. Route is the list
// route to navigate to after a success that redirects; empty means no
// redirect.
type Signal struct {
	Kind    SignalKind
	Message string
	Route   string
	At      time.Time
}

// SignalBus is the process-wide single-slot message bus for outcome signals.
// It holds at most one outstanding signal per kind; publishing replaces any
// previous signal of the same kind (last-write-wins). Pages subscribe on
// mount and unsubscribe on unmount so a stale signal never leaks into the
// next view.
type SignalBus struct {
	mu      sync.Mutex
	slots   map[SignalKind]*Signal
	subs    map[int]func(Signal)
	nextSub int

	now func() time.Time
}

// NewSignalBus returns an empty bus.
func NewSignalBus() *SignalBus {
	return &SignalBus{
		slots: make(map[SignalKind]*Signal),
		subs:  make(map[int]func(Signal)),
		now:   time.Now,
	}
}

// PublishError fills the error slot and notifies subscribers.
func (b *SignalBus) PublishError(message string) {
	b.publish(Signal{Kind: SignalError, Message: message})
}

// PublishSuccess fills the success slot and notifies subscribers. A non-empty
// route asks the observing bridge to redirect there after display.
func (b *SignalBus) PublishSuccess(message, route string) {
	b.publish(Signal{Kind: SignalSuccess, Message: message, Route: route})
}

func (b *SignalBus) publish(sig Signal) {
	b.mu.Lock()
	sig.At = b.now()
	s := sig
	b.slots[sig.Kind] = &s
	subs := make([]func(Signal), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn(sig)
	}
}

// Peek returns the outstanding signal of the given kind, or nil.
func (b *SignalBus) Peek(kind SignalKind) *Signal {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s := b.slots[kind]; s != nil {
		c := *s
		return &c
	}
	return nil
}

// Clear empties the slot for the given kind.
func (b *SignalBus) Clear(kind SignalKind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.slots, kind)
}

// Subscribe registers a callback invoked synchronously on every publish and
// returns an unsubscribe function.
func (b *SignalBus) Subscribe(fn func(Signal)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextSub
	b.nextSub++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}
