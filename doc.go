// Package ferogram provides an update routing framework for Telegram bots
// and userbots.
//
// The package sits between a Telegram client library and your business logic:
// it classifies inbound updates, routes them through composable filters to
// handlers, and injects filter-extracted values into handler endpoints via a
// type-keyed dependency bag — letting endpoints declare exactly the
// parameters they need.
//
// # Quick Start
//
// Build a dispatcher, attach a router, and run it against an update source:
//
//	d := ferogram.New().
//	    Router(func(r *ferogram.Router) {
//	        r.Handle(
//	            ferogram.OnNewMessage(ferogram.Command("start")).
//	                Then(func(ctx context.Context, c *ferogram.Context) error {
//	                    _, err := c.Reply(ctx, "hello!")
//	                    return err
//	                }),
//	        )
//	    })
//
//	err := d.Run(ctx, client, source)
//
// # Design Philosophy
//
// The package separates concerns into three layers:
//
//   - Filters: decide whether a handler wants an update, and extract values
//   - Handlers: an update-kind guard, a filter, and a typed endpoint
//   - Routers and the Dispatcher: ordering, grouping, and the run loop
//
// This separation allows:
//   - Declarative matching with And/Or/Not composition
//   - Endpoints that receive exactly the values their filters produced
//   - Client-library-agnostic handler code behind the Client interface
//   - Consistent observability via hooks
//
// # Flow and Injection
//
// Every filter check produces a Flow: a continue/break verdict optionally
// carrying values for the endpoint. ContinueWith attaches values; they ride
// the flow through And/Or composition and land in the dispatch injector only
// when the handler is actually taken:
//
//	hasPhoto := ferogram.Extract(func(ctx context.Context, c ferogram.Client, u ferogram.Update) (*ferogram.Media, bool) {
//	    if u.Message != nil && u.Message.Media != nil {
//	        return u.Message.Media, true
//	    }
//	    return nil, false
//	})
//
// Endpoints are plain functions. Parameters resolve from the injector by
// exact type, consuming values oldest-first; a parameter with no stored
// value fails the invocation with a MissingDependencyError:
//
//	func(ctx context.Context, msg *ferogram.Message, media *ferogram.Media) error
//
// # Routers
//
// Routers hold handlers in registration order and dispatch first-match-wins:
// the first handler whose kind guard and filter both pass takes the update,
// and nothing after it runs. Group flattens handlers into the parent; Mount
// attaches a sub-router with its own middleware stack, consulted after the
// parent's own handlers.
//
// # Middleware
//
// Before-middleware runs ahead of each handler attempt and may Break to veto
// that handler (the update falls through to the next one) or inject values.
// After-middleware runs once the taken handler's endpoint succeeds. Mounted
// routers inherit the parent's stack ahead of their own.
//
// # Error Recovery
//
// A handler may attach an error handler with OnError. When the endpoint
// fails, the error handler decides: Break propagates the original error to
// the dispatcher, Continue retries the endpoint once — typically after
// injecting whatever dependency was missing:
//
//	h.OnError(func(ctx context.Context, c ferogram.Client, u ferogram.Update, err error) ferogram.Flow {
//	    if ferogram.IsMissingDependency(err) {
//	        return ferogram.ContinueWith(defaultSettings)
//	    }
//	    return ferogram.Break()
//	})
//
// # Hooks
//
// Hooks provide observability without coupling to a logging or metrics
// system. Configure them with functional options:
//
//	d := ferogram.New(
//	    ferogram.WithOnDispatch(func(ctx context.Context, u ferogram.Update) context.Context {
//	        return logx.WithCtx(ctx, slog.String("kind", u.Kind.String()))
//	    }),
//	    ferogram.WithOnHandled(func(ctx context.Context, u ferogram.Update, d time.Duration) {
//	        metrics.Timing("dispatch.handled", d)
//	    }),
//	    ferogram.WithOnError(func(ctx context.Context, u ferogram.Update, err error) {
//	        metrics.Incr("dispatch.error")
//	    }),
//	)
//
// Multiple hooks of the same type are called in order.
//
// # Conversations
//
// Handlers receive a *Context exposing the triggering update, reply helpers,
// and WaitForUpdate, which suspends the handler until a later update passes
// a filter or a timeout elapses:
//
//	next, err := c.WaitForUpdate(ctx, ferogram.Private(), 30*time.Second)
//	if errors.Is(err, ferogram.ErrWaitTimeout) {
//	    // the user never answered
//	}
//
// # Thread Safety
//
// Dispatcher, Router, and Handler are safe for concurrent dispatch after
// configuration is complete. Do not attach routers, plugins, or handlers
// after calling Run or HandleUpdate. Each dispatch owns its Injector.
package ferogram
