package ferogram

import "reflect"

// Injector is a type-keyed bag of values used to pass data from filters and
// the dispatcher into handler endpoints without rigid call signatures.
//
// Values are grouped by their runtime type. Each type holds a FIFO queue:
// inserting the same type twice keeps both values, and Take consumes them
// oldest-first. Extend drains another injector and appends its queues onto
// the matching ones here, so nested filter composition never silently drops
// values.
//
// An Injector is owned by a single update dispatch and is not safe for
// concurrent use.
type Injector struct {
	order     []reflect.Type
	resources map[reflect.Type][]any
}

// NewInjector creates an empty Injector.
func NewInjector() *Injector {
	return &Injector{resources: make(map[reflect.Type][]any)}
}

// Insert appends values, each classified by its runtime type.
//
// Because the runtime type of an interface value is its concrete type, values
// that should be resolvable as an interface (e.g. Client) must be inserted
// with InsertAs instead.
func (in *Injector) Insert(values ...any) {
	for _, v := range values {
		in.insertType(reflect.TypeOf(v), v)
	}
}

// With inserts values and returns the injector, for chained setup.
func (in *Injector) With(values ...any) *Injector {
	in.Insert(values...)
	return in
}

// Len returns the number of distinct types stored.
func (in *Injector) Len() int { return len(in.resources) }

// Extend drains other and appends its queues onto the matching type queues
// here, preserving insertion order within each type. other is left empty.
func (in *Injector) Extend(other *Injector) {
	if other == nil {
		return
	}
	for _, t := range other.order {
		for _, v := range other.resources[t] {
			in.insertType(t, v)
		}
	}
	other.order = nil
	other.resources = make(map[reflect.Type][]any)
}

// InsertAs inserts a value keyed by its static type T rather than its runtime
// type. Use this to make a value resolvable as an interface:
//
//	ferogram.InsertAs[ferogram.Client](injector, client)
//
// This is a package-level function (not a method) due to Go generics
// limitations: methods cannot have type parameters independent of the
// receiver.
func InsertAs[T any](in *Injector, value T) {
	in.insertType(reflect.TypeOf((*T)(nil)).Elem(), value)
}

// Take removes and returns the oldest value of type T, or false if none is
// stored. Callers needing strictness must surface the miss themselves; the
// endpoint invocation layer turns it into a MissingDependencyError.
func Take[T any](in *Injector) (T, bool) {
	v, ok := in.takeType(reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// Get returns the oldest value of type T without removing it, or false if
// none is stored.
func Get[T any](in *Injector) (T, bool) {
	q, ok := in.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok || len(q) == 0 {
		var zero T
		return zero, false
	}
	return q[0].(T), true
}

// Mutate pops the oldest value of type T, applies fn, and pushes the result
// back to the front of the queue. It reports whether a value was present.
func Mutate[T any](in *Injector, fn func(T) T) bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	v, ok := in.takeType(t)
	if !ok {
		return false
	}
	in.pushFront(t, fn(v.(T)))
	return true
}

func (in *Injector) insertType(t reflect.Type, v any) {
	if _, ok := in.resources[t]; !ok {
		in.order = append(in.order, t)
	}
	in.resources[t] = append(in.resources[t], v)
}

func (in *Injector) takeType(t reflect.Type) (any, bool) {
	q, ok := in.resources[t]
	if !ok || len(q) == 0 {
		return nil, false
	}
	v := q[0]
	if len(q) == 1 {
		delete(in.resources, t)
		in.dropKey(t)
	} else {
		in.resources[t] = q[1:]
	}
	return v, true
}

func (in *Injector) pushFront(t reflect.Type, v any) {
	if _, ok := in.resources[t]; !ok {
		in.order = append(in.order, t)
	}
	in.resources[t] = append([]any{v}, in.resources[t]...)
}

func (in *Injector) dropKey(t reflect.Type) {
	for i, k := range in.order {
		if k == t {
			in.order = append(in.order[:i], in.order[i+1:]...)
			return
		}
	}
}

// clone returns a copy sharing the stored values. Used to merge the
// dispatcher's global injector into each dispatch without draining it.
func (in *Injector) clone() *Injector {
	c := NewInjector()
	for _, t := range in.order {
		q := in.resources[t]
		c.order = append(c.order, t)
		c.resources[t] = append([]any(nil), q...)
	}
	return c
}
