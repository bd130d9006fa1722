package ferogram

import "context"

// Filter decides whether a handler applies to an update. A filter that
// continues may inject values extracted while matching (e.g. a photo filter
// injecting the photo), making them available to the endpoint.
//
// Filters are built once and read concurrently by every in-flight dispatch,
// so implementations must not mutate shared state in Check.
type Filter interface {
	// Check evaluates the filter against an incoming update.
	Check(ctx context.Context, client Client, update Update) Flow
}

// FilterFunc adapts a plain function to the Filter interface. This is the
// extension point for user-defined filters; no wrapping type is required.
type FilterFunc func(ctx context.Context, client Client, update Update) Flow

// Check implements the Filter interface.
func (f FilterFunc) Check(ctx context.Context, client Client, update Update) Flow {
	return f(ctx, client, update)
}

// Predicate lifts a boolean function into a Filter: true continues, false
// breaks.
func Predicate(fn func(ctx context.Context, client Client, update Update) bool) Filter {
	return FilterFunc(func(ctx context.Context, client Client, update Update) Flow {
		return FlowOf(fn(ctx, client, update))
	})
}

// Extract lifts an extractor into a Filter: a present value continues the
// flow with the value injected, an absent one breaks.
func Extract[T any](fn func(ctx context.Context, client Client, update Update) (T, bool)) Filter {
	return FilterFunc(func(ctx context.Context, client Client, update Update) Flow {
		v, ok := fn(ctx, client, update)
		if !ok {
			return Break()
		}
		return ContinueWith(v)
	})
}

// TryExtract lifts a fallible extractor into a Filter: a nil error continues
// the flow with the value injected, an error breaks. Filters are total; the
// error itself is discarded.
func TryExtract[T any](fn func(ctx context.Context, client Client, update Update) (T, error)) Filter {
	return FilterFunc(func(ctx context.Context, client Client, update Update) Flow {
		v, err := fn(ctx, client, update)
		if err != nil {
			return Break()
		}
		return ContinueWith(v)
	})
}

// And combines filters so all must continue. Evaluation short-circuits: the
// first break stops the chain and later filters do not run. When every filter
// continues, their injected values are merged in evaluation order.
func And(first Filter, rest ...Filter) Filter {
	return andFilter{first: first, rest: rest}
}

type andFilter struct {
	first Filter
	rest  []Filter
}

func (f andFilter) Check(ctx context.Context, client Client, update Update) Flow {
	flow := f.first.Check(ctx, client, update)
	if flow.IsBreak() {
		return Break()
	}

	for _, next := range f.rest {
		nf := next.Check(ctx, client, update)
		if nf.IsBreak() {
			return Break()
		}
		nf.mergeInto(flow.Injector())
	}
	return flow
}

// Or combines filters so the first to continue wins. Later filters only run
// if every earlier one broke; the winning filter's flow (and its injected
// values) is returned untouched.
func Or(first Filter, rest ...Filter) Filter {
	return orFilter{first: first, rest: rest}
}

type orFilter struct {
	first Filter
	rest  []Filter
}

func (f orFilter) Check(ctx context.Context, client Client, update Update) Flow {
	flow := f.first.Check(ctx, client, update)
	if flow.IsContinue() {
		return flow
	}

	for _, next := range f.rest {
		if nf := next.Check(ctx, client, update); nf.IsContinue() {
			return nf
		}
	}
	return Break()
}

// Not inverts a filter's verdict. Values injected by the wrapped filter are
// discarded in both directions; the result is purely boolean.
func Not(filter Filter) Filter {
	return notFilter{filter: filter}
}

type notFilter struct {
	filter Filter
}

func (f notFilter) Check(ctx context.Context, client Client, update Update) Flow {
	return FlowOf(f.filter.Check(ctx, client, update).IsBreak())
}
