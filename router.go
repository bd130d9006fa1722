package ferogram

import "context"

// Router is an ordered tree of handlers and sub-routers implementing
// first-match-wins dispatch. Build it fluently before the dispatcher starts;
// it is read-only during dispatch.
type Router struct {
	handlers   []*Handler
	routers    []*Router
	middleware MiddlewareStack
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{}
}

// Handle appends handlers, checked in registration order.
func (r *Router) Handle(handlers ...*Handler) *Router {
	r.handlers = append(r.handlers, handlers...)
	return r
}

// Group builds handlers with fn and flattens them into this router's handler
// list. The group shares this router's middleware; use Mount for a
// sub-router with its own middleware stack.
func (r *Router) Group(fn func(*Router)) *Router {
	group := NewRouter()
	fn(group)
	r.handlers = append(r.handlers, group.handlers...)
	return r
}

// Mount attaches sub as a first-class sub-router. Sub-routers are consulted
// in order after this router's own handlers, and inherit this router's
// middleware stack ahead of their own.
func (r *Router) Mount(sub *Router) *Router {
	r.routers = append(r.routers, sub)
	return r
}

// Before appends before-middleware to this router's stack.
func (r *Router) Before(m ...Middleware) *Router {
	r.middleware.Before(m...)
	return r
}

// After appends after-middleware to this router's stack.
func (r *Router) After(m ...Middleware) *Router {
	r.middleware.After(m...)
	return r
}

// Commands aggregates command metadata from this router's handlers and its
// subtree, in registration order. Use it to publish a bot command list.
func (r *Router) Commands() []CommandInfo {
	var infos []CommandInfo
	for _, h := range r.handlers {
		if h.command != nil {
			infos = append(infos, h.command.info()...)
		}
	}
	for _, sub := range r.routers {
		infos = append(infos, sub.Commands()...)
	}
	return infos
}

// handleUpdate walks the router subtree depth-first. It reports whether some
// handler took the update; "no handler matched" is a normal false result so
// the dispatcher can try the next top-level router.
func (r *Router) handleUpdate(ctx context.Context, client Client, update Update, injector *Injector, inherited MiddlewareStack) (bool, error) {
	stack := inherited.join(r.middleware)

	for _, h := range r.handlers {
		if h.kind != update.Kind || h.endpoint == nil {
			continue
		}

		// A Break from before-middleware skips this handler entirely and
		// falls through to the next one.
		before := stack.runBefore(ctx, client, update, injector)
		if before.IsBreak() {
			continue
		}

		flow := h.check(ctx, client, update)
		if flow.IsBreak() {
			continue
		}

		before.mergeInto(injector)
		flow.mergeInto(injector)
		injectPayload(injector, update)

		if err := h.invoke(ctx, client, update, injector); err != nil {
			return false, err
		}

		stack.runAfter(ctx, client, update, injector)
		return true, nil
	}

	for _, sub := range r.routers {
		handled, err := sub.handleUpdate(ctx, client, update, injector, stack)
		if handled || err != nil {
			return handled, err
		}
	}

	return false, nil
}

// injectPayload makes the update's kind-specific payload directly available
// to the endpoint.
func injectPayload(injector *Injector, update Update) {
	switch update.Kind {
	case KindNewMessage, KindMessageEdited:
		if update.Message != nil {
			injector.Insert(update.Message)
		}
	case KindMessageDeleted:
		if update.Deletion != nil {
			injector.Insert(update.Deletion)
		}
	case KindCallbackQuery:
		if update.Callback != nil {
			injector.Insert(update.Callback)
		}
	case KindInlineQuery:
		if update.Inline != nil {
			injector.Insert(update.Inline)
		}
	case KindInlineSend:
		if update.InlineSend != nil {
			injector.Insert(update.InlineSend)
		}
	case KindRaw:
		if update.Raw != nil {
			injector.Insert(update.Raw)
		}
	}
}
