package ferogram

import (
	"context"
	"time"
)

// OnDispatchFunc is called before the routers see an update. Use it to
// enrich the context with logging fields or trace spans; the returned
// context is used for the rest of the dispatch.
type OnDispatchFunc func(ctx context.Context, update Update) context.Context

// OnHandledFunc is called after a handler takes an update.
type OnHandledFunc func(ctx context.Context, update Update, duration time.Duration)

// OnUnhandledFunc is called when no router or plugin takes an update. This
// is a normal outcome, not an error.
type OnUnhandledFunc func(ctx context.Context, update Update)

// OnErrorFunc is called when dispatch fails with an error no handler-local
// recovery resolved. The failing update is dropped; subsequent updates are
// unaffected.
type OnErrorFunc func(ctx context.Context, update Update, err error)

// hooks holds all configured hook functions.
type hooks struct {
	onDispatch  []OnDispatchFunc
	onHandled   []OnHandledFunc
	onUnhandled []OnUnhandledFunc
	onError     []OnErrorFunc
}

// WithOnDispatch adds a hook called before routers see an update. Multiple
// hooks are called in order, with context chaining through each.
//
// Example:
//
//	ferogram.WithOnDispatch(func(ctx context.Context, u ferogram.Update) context.Context {
//	    return logging.WithCtx(ctx, slog.String("kind", u.Kind.String()))
//	})
func WithOnDispatch(fn OnDispatchFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onDispatch = append(d.hooks.onDispatch, fn)
	}
}

// WithOnHandled adds a hook called after a handler takes an update.
// Multiple hooks are called in order.
//
// Example:
//
//	ferogram.WithOnHandled(func(ctx context.Context, u ferogram.Update, d time.Duration) {
//	    metrics.Timing("dispatch.handled", d)
//	})
func WithOnHandled(fn OnHandledFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onHandled = append(d.hooks.onHandled, fn)
	}
}

// WithOnUnhandled adds a hook called when no router or plugin takes an
// update. Multiple hooks are called in order.
func WithOnUnhandled(fn OnUnhandledFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onUnhandled = append(d.hooks.onUnhandled, fn)
	}
}

// WithOnError adds a hook called with unrecovered dispatch errors. This is
// the global error sink: without one, Run logs the error and moves on.
// Multiple hooks are called in order.
func WithOnError(fn OnErrorFunc) Option {
	return func(d *Dispatcher) {
		d.hooks.onError = append(d.hooks.onError, fn)
	}
}

func (h *hooks) callOnDispatch(ctx context.Context, update Update) context.Context {
	for _, fn := range h.onDispatch {
		ctx = fn(ctx, update)
	}
	return ctx
}

func (h *hooks) callOnHandled(ctx context.Context, update Update, d time.Duration) {
	for _, fn := range h.onHandled {
		fn(ctx, update, d)
	}
}

func (h *hooks) callOnUnhandled(ctx context.Context, update Update) {
	for _, fn := range h.onUnhandled {
		fn(ctx, update)
	}
}

func (h *hooks) callOnError(ctx context.Context, update Update, err error) {
	for _, fn := range h.onError {
		fn(ctx, update, err)
	}
}
