package controllers

import (
	"log/slog"
	"time"
)

// ToastSink displays a message to the user. The CLI implements it over
// stderr; a UI embedding would implement it over its toast widget.
type ToastSink interface {
	ShowSuccess(message string)
	ShowError(message string)
}

// Navigator performs a navigation to a list route after a successful
// mutation.
type Navigator interface {
	NavigateTo(route string)
}

// DedupeGuard is the per-view memory preventing the same message from
// re-displaying within the dedupe window. Each mounted view owns one guard;
// guards are never shared across views.
type DedupeGuard struct {
	LastMessage string
	LastAt      time.Time
}

// AsyncNotificationBridge translates one-shot outcome signals into visible,
// non-duplicated, time-bounded notifications, then clears the source slot.
// It never fails and tolerates absent signals.
type AsyncNotificationBridge struct {
	bus    *SignalBus
	toasts ToastSink
	nav    Navigator
	logger *slog.Logger

	dedupeWindow  time.Duration
	errorClear    time.Duration
	redirectDelay time.Duration

	now   func() time.Time
	after func(d time.Duration, fn func()) // defaults to time.AfterFunc
}

// BridgeOption customizes an AsyncNotificationBridge.
type BridgeOption func(*AsyncNotificationBridge)

// WithBridgeDurations overrides the dedupe window, error auto-clear delay and
// success redirect delay. Zero values keep the defaults.
func WithBridgeDurations(dedupe, errorClear, redirectDelay time.Duration) BridgeOption {
	return func(b *AsyncNotificationBridge) {
		if dedupe > 0 {
			b.dedupeWindow = dedupe
		}
		if errorClear > 0 {
			b.errorClear = errorClear
		}
		if redirectDelay > 0 {
			b.redirectDelay = redirectDelay
		}
	}
}

// WithBridgeClock overrides the bridge's clock and scheduler, for tests.
func WithBridgeClock(now func() time.Time, after func(time.Duration, func())) BridgeOption {
	return func(b *AsyncNotificationBridge) {
		if now != nil {
			b.now = now
		}
		if after != nil {
			b.after = after
		}
	}
}

// NewAsyncNotificationBridge creates a bridge over the given bus. nav may be
// nil when the embedding has no navigation (signals with routes then only
// clear).
func NewAsyncNotificationBridge(bus *SignalBus, toasts ToastSink, nav Navigator, logger *slog.Logger, opts ...BridgeOption) *AsyncNotificationBridge {
	if logger == nil {
		logger = slog.Default()
	}
	b := &AsyncNotificationBridge{
		bus:           bus,
		toasts:        toasts,
		nav:           nav,
		logger:        logger,
		dedupeWindow:  2 * time.Second,
		errorClear:    3 * time.Second,
		redirectDelay: 1500 * time.Millisecond,
		now:           time.Now,
		after: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Observe decides whether the given signal should be displayed against the
// view's dedupe guard, displays it if so, and schedules clearing of the
// source slot. A nil signal is a no-op. Returns true when the message was
// displayed.
//
// A given message is shown at most once per dedupe window even if the signal
// is re-delivered with the same content.
func (b *AsyncNotificationBridge) Observe(sig *Signal, guard *DedupeGuard) bool {
	if sig == nil || guard == nil {
		return false
	}

	now := b.now()
	if guard.LastMessage == sig.Message && now.Sub(guard.LastAt) <= b.dedupeWindow {
		return false
	}
	guard.LastMessage = sig.Message
	guard.LastAt = now

	switch sig.Kind {
	case SignalError:
		b.toasts.ShowError(sig.Message)
		b.logger.Warn("displayed error notification", slog.String("message", sig.Message))
		b.after(b.errorClear, func() {
			b.bus.Clear(SignalError)
		})
	case SignalSuccess:
		b.toasts.ShowSuccess(sig.Message)
		b.logger.Info("displayed success notification", slog.String("message", sig.Message))
		route := sig.Route
		b.after(b.redirectDelay, func() {
			b.bus.Clear(SignalSuccess)
			if route != "" && b.nav != nil {
				b.nav.NavigateTo(route)
			}
		})
	}
	return true
}

// Bus exposes the underlying signal bus so producers (controllers, form
// sessions, gates) can publish outcomes through the bridge.
func (b *AsyncNotificationBridge) Bus() *SignalBus {
	return b.bus
}
