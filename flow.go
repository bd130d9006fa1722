package ferogram

// Action is the verdict carried by a Flow: continue to the endpoint, or break
// out of the current handler.
type Action int

const (
	// ActionContinue lets the dispatch proceed. It is the zero value, so an
	// unconfigured check is a no-op pass.
	ActionContinue Action = iota

	// ActionBreak stops the current handler from running.
	ActionBreak
)

// Flow is the control-flow result of a filter or middleware check. A Flow
// that continues may carry values injected as a side effect of matching;
// those values are merged into the dispatch injector before the endpoint
// runs.
//
// A Flow belongs to a single update dispatch and is never shared across
// updates. The zero value continues with no injected values.
type Flow struct {
	action   Action
	injector *Injector
}

// Continue returns a Flow that lets the dispatch proceed.
func Continue() Flow {
	return Flow{action: ActionContinue}
}

// Break returns a Flow that stops the current handler.
func Break() Flow {
	return Flow{action: ActionBreak}
}

// ContinueWith returns a continuing Flow carrying the given injected values.
// Each value is classified by its runtime type, like Injector.Insert.
func ContinueWith(values ...any) Flow {
	f := Continue()
	f.Inject(values...)
	return f
}

// FlowOf converts a bare predicate result into a Flow: true continues, false
// breaks.
func FlowOf(ok bool) Flow {
	if ok {
		return Continue()
	}
	return Break()
}

// Inject appends values into the flow's injector. Values injected by a
// matching filter become available to the handler's endpoint.
func (f *Flow) Inject(values ...any) {
	if f.injector == nil {
		f.injector = NewInjector()
	}
	f.injector.Insert(values...)
}

// IsContinue reports whether the flow lets the dispatch proceed.
func (f Flow) IsContinue() bool { return f.action == ActionContinue }

// IsBreak reports whether the flow stops the current handler.
func (f Flow) IsBreak() bool { return f.action == ActionBreak }

// ToBreak changes the flow's action to break.
func (f *Flow) ToBreak() { f.action = ActionBreak }

// ToContinue changes the flow's action to continue.
func (f *Flow) ToContinue() { f.action = ActionContinue }

// Injector returns the flow's injector, allocating an empty one if needed.
func (f *Flow) Injector() *Injector {
	if f.injector == nil {
		f.injector = NewInjector()
	}
	return f.injector
}

// mergeInto drains the flow's injected values into dst.
func (f *Flow) mergeInto(dst *Injector) {
	if f.injector != nil {
		dst.Extend(f.injector)
	}
}
