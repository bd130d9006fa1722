package ferogram

import "context"

// Middleware is a hook run around handler execution. Before-hooks run ahead
// of the handler's filter and may inject values or Break to skip the handler;
// after-hooks run following a successful endpoint call.
type Middleware func(ctx context.Context, client Client, update Update, injector *Injector) Flow

// MiddlewareStack holds ordered before and after hooks. Stacks compose by
// concatenation when a parent router's stack is inherited by a child, so
// ancestor before-hooks run first and in registration order.
type MiddlewareStack struct {
	before []Middleware
	after  []Middleware
}

// Before appends a before-hook.
func (s *MiddlewareStack) Before(m ...Middleware) *MiddlewareStack {
	s.before = append(s.before, m...)
	return s
}

// After appends an after-hook.
func (s *MiddlewareStack) After(m ...Middleware) *MiddlewareStack {
	s.after = append(s.after, m...)
	return s
}

// join returns a new stack with other's hooks appended after s's.
func (s MiddlewareStack) join(other MiddlewareStack) MiddlewareStack {
	var out MiddlewareStack
	out.before = append(append([]Middleware(nil), s.before...), other.before...)
	out.after = append(append([]Middleware(nil), s.after...), other.after...)
	return out
}

// runBefore executes the before chain. The first Break stops the chain and
// is returned; injected values from continuing hooks are merged into the
// returned flow.
func (s *MiddlewareStack) runBefore(ctx context.Context, client Client, update Update, injector *Injector) Flow {
	flow := Continue()
	for _, m := range s.before {
		f := m(ctx, client, update, injector)
		if f.IsBreak() {
			return f
		}
		f.mergeInto(flow.Injector())
	}
	return flow
}

// runAfter executes the after chain. A Break stops the remaining hooks; the
// handler's success is already committed and is not undone.
func (s *MiddlewareStack) runAfter(ctx context.Context, client Client, update Update, injector *Injector) {
	for _, m := range s.after {
		if m(ctx, client, update, injector).IsBreak() {
			return
		}
	}
}
