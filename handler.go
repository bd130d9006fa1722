package ferogram

import "context"

// ErrorHandler is a per-handler recovery hook, run when the handler's
// endpoint returns an error. Returning a continuing Flow retries the
// endpoint once, with the flow's injected values merged in first; returning
// Break propagates the original error.
type ErrorHandler func(ctx context.Context, client Client, update Update, err error) Flow

// Handler binds an update-kind guard, an optional filter, an endpoint and an
// optional local error handler. Handlers are immutable after router
// construction and shared by every in-flight dispatch.
type Handler struct {
	kind       UpdateKind
	filter     Filter
	endpoint   Endpoint
	errHandler ErrorHandler
	command    *CommandFilter
}

func newHandler(kind UpdateKind, filters []Filter) *Handler {
	h := &Handler{kind: kind}
	switch len(filters) {
	case 0:
	case 1:
		h.filter = filters[0]
	default:
		h.filter = And(filters[0], filters[1:]...)
	}
	for _, f := range filters {
		if cmd, ok := f.(*CommandFilter); ok {
			h.command = cmd
			break
		}
	}
	return h
}

// OnNewMessage creates a handler for incoming messages.
func OnNewMessage(filters ...Filter) *Handler {
	return newHandler(KindNewMessage, filters)
}

// OnMessageEdited creates a handler for message edits.
func OnMessageEdited(filters ...Filter) *Handler {
	return newHandler(KindMessageEdited, filters)
}

// OnMessageDeleted creates a handler for message deletions.
func OnMessageDeleted(filters ...Filter) *Handler {
	return newHandler(KindMessageDeleted, filters)
}

// OnCallbackQuery creates a handler for callback queries.
func OnCallbackQuery(filters ...Filter) *Handler {
	return newHandler(KindCallbackQuery, filters)
}

// OnInlineQuery creates a handler for inline queries.
func OnInlineQuery(filters ...Filter) *Handler {
	return newHandler(KindInlineQuery, filters)
}

// OnInlineSend creates a handler for chosen inline results.
func OnInlineSend(filters ...Filter) *Handler {
	return newHandler(KindInlineSend, filters)
}

// OnRaw creates a handler for raw updates the framework does not model.
func OnRaw(filters ...Filter) *Handler {
	return newHandler(KindRaw, filters)
}

// Kind returns the update kind this handler guards on.
func (h *Handler) Kind() UpdateKind { return h.kind }

// Then sets the endpoint. fn is any function accepted by NewEndpoint, or an
// Endpoint value.
func (h *Handler) Then(fn any) *Handler {
	h.endpoint = NewEndpoint(fn)
	return h
}

// OnError sets the handler-local error handler, executed when the endpoint
// returns an error. Without one, errors propagate to the dispatcher.
func (h *Handler) OnError(handler ErrorHandler) *Handler {
	h.errHandler = handler
	return h
}

// check runs the kind guard and the filter. A handler with no filter
// continues whenever its kind matches.
func (h *Handler) check(ctx context.Context, client Client, update Update) Flow {
	if h.kind != update.Kind {
		return Break()
	}
	if h.filter == nil {
		return Continue()
	}
	return h.filter.Check(ctx, client, update)
}

// invoke runs the endpoint, applying the local recovery path on failure: the
// error handler may inject values and signal Continue, which retries the
// endpoint exactly once and returns that outcome as-is.
func (h *Handler) invoke(ctx context.Context, client Client, update Update, injector *Injector) error {
	err := h.endpoint.Call(ctx, injector)
	if err == nil || h.errHandler == nil {
		return err
	}

	flow := h.errHandler(ctx, client, update, err)
	if flow.IsBreak() {
		return err
	}
	flow.mergeInto(injector)
	return h.endpoint.Call(ctx, injector)
}
