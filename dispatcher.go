package ferogram

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

// Dispatcher owns the full update pipeline: it receives updates from an
// UpdateSource, seeds a fresh Injector per update, and walks its routers in
// attachment order until one handler takes the update. Plugins are consulted
// after every top-level router has declined.
//
// Build the dispatcher fully before calling Run or HandleUpdate; it is
// read-only during dispatch, which is what makes concurrent updates safe.
type Dispatcher struct {
	routers    []*Router
	plugins    []*Plugin
	resources  *Injector
	middleware MiddlewareStack

	allowFromSelf bool
	peers         PeerCache
	logger        *slog.Logger
	updates       *broadcaster
	hooks         hooks
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used by Run for panics and dispatch errors.
// Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithPeerCache enables recording of observed senders and chats.
func WithPeerCache(cache PeerCache) Option {
	return func(d *Dispatcher) { d.peers = cache }
}

// WithAllowFromSelf disables the default dropping of updates originated by
// the logged-in account itself.
func WithAllowFromSelf() Option {
	return func(d *Dispatcher) { d.allowFromSelf = true }
}

// New creates a Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		resources: NewInjector(),
		updates:   newBroadcaster(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Router builds a top-level router with fn and attaches it. Routers are
// consulted in attachment order.
func (d *Dispatcher) Router(fn func(*Router)) *Dispatcher {
	r := NewRouter()
	fn(r)
	return d.Mount(r)
}

// Mount attaches an already-built top-level router.
func (d *Dispatcher) Mount(r *Router) *Dispatcher {
	d.routers = append(d.routers, r)
	return d
}

// Plugin attaches a plugin. Plugin routers run only after every top-level
// router has declined the update.
func (d *Dispatcher) Plugin(p *Plugin) *Dispatcher {
	d.plugins = append(d.plugins, p)
	return d
}

// Resources inserts values into the global injector. Each dispatch sees a
// copy, so endpoints taking a global resource never starve later updates.
func (d *Dispatcher) Resources(values ...any) *Dispatcher {
	d.resources.Insert(values...)
	return d
}

// Before appends global before-middleware, run ahead of every router's own.
func (d *Dispatcher) Before(m ...Middleware) *Dispatcher {
	d.middleware.Before(m...)
	return d
}

// After appends global after-middleware.
func (d *Dispatcher) After(m ...Middleware) *Dispatcher {
	d.middleware.After(m...)
	return d
}

// Commands aggregates command metadata from every router and plugin, in
// attachment order.
func (d *Dispatcher) Commands() []CommandInfo {
	var infos []CommandInfo
	for _, r := range d.routers {
		infos = append(infos, r.Commands()...)
	}
	for _, p := range d.plugins {
		infos = append(infos, p.Commands()...)
	}
	return infos
}

// HandleUpdate dispatches a single update through the pipeline. An update no
// handler takes is a normal nil result. The returned error is whatever the
// taking handler's invocation could not recover.
func (d *Dispatcher) HandleUpdate(ctx context.Context, client Client, update Update) error {
	ctx = d.hooks.callOnDispatch(ctx, update)
	start := time.Now()

	d.cachePeers(update)

	// Conversation waiters see every update, including self updates and
	// ones a router will also take, so these run before the self filter.
	d.updates.publish(update)

	if !d.allowFromSelf && d.fromSelf(ctx, client, update) {
		return nil
	}

	injector := NewInjector()
	injector.Extend(d.resources.clone())
	injector.Insert(newContext(client, update, d.updates))
	InsertAs[Client](injector, client)
	injector.Insert(update)

	for _, r := range d.routers {
		handled, err := r.handleUpdate(ctx, client, update, injector, d.middleware)
		if err != nil {
			d.hooks.callOnError(ctx, update, err)
			return err
		}
		if handled {
			d.hooks.callOnHandled(ctx, update, time.Since(start))
			return nil
		}
	}
	for _, p := range d.plugins {
		handled, err := p.router.handleUpdate(ctx, client, update, injector, d.middleware)
		if err != nil {
			d.hooks.callOnError(ctx, update, err)
			return err
		}
		if handled {
			d.hooks.callOnHandled(ctx, update, time.Since(start))
			return nil
		}
	}

	d.hooks.callOnUnhandled(ctx, update)
	return nil
}

// Run consumes the source until ctx is cancelled or the source closes its
// channel, dispatching each update on its own goroutine. A panicking or
// failing handler drops only its own update.
func (d *Dispatcher) Run(ctx context.Context, client Client, source UpdateSource) error {
	updates := source.Updates(ctx)

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						d.logger.Error("handler panic",
							"kind", update.Kind.String(),
							"panic", r,
							"stack", string(debug.Stack()))
					}
				}()
				if err := d.HandleUpdate(ctx, client, update); err != nil {
					d.logger.Error("dispatch failed",
						"kind", update.Kind.String(),
						"error", err)
				}
			}()
		}
	}
}

// fromSelf reports whether the update was originated by the logged-in
// account. Outgoing messages are self-originated without a lookup; otherwise
// the sender is compared against the resolved account, and when that cannot
// be resolved the update is dispatched rather than dropped.
func (d *Dispatcher) fromSelf(ctx context.Context, client Client, update Update) bool {
	if m := update.Message; m != nil && m.Outgoing {
		return true
	}
	sender := update.Sender()
	if sender == nil {
		return false
	}
	me, err := client.Me(ctx)
	if err != nil || me == nil {
		d.logger.Debug("resolve own account", "error", err)
		return false
	}
	return me.ID == sender.ID
}

func (d *Dispatcher) cachePeers(update Update) {
	if d.peers == nil {
		return
	}
	if s := update.Sender(); s != nil {
		if err := d.peers.Save(Peer{ID: s.ID, Username: s.Username, Bot: s.Bot}); err != nil {
			d.logger.Warn("save peer", "id", s.ID, "error", err)
		}
	}
	if m := update.Message; m != nil {
		if err := d.peers.Save(Peer{ID: m.Chat.ID, Username: m.Chat.Username}); err != nil {
			d.logger.Warn("save peer", "id", m.Chat.ID, "error", err)
		}
	}
}
