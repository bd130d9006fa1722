package ferogram

import (
	"context"
	"fmt"
	"reflect"
)

// Endpoint is the business-logic unit invoked when a handler matches. Its
// dependencies are resolved from the dispatch injector at call time.
type Endpoint interface {
	// Call resolves dependencies from the injector and runs the endpoint.
	Call(ctx context.Context, injector *Injector) error
}

// EndpointFunc adapts a plain function to the Endpoint interface.
type EndpointFunc func(ctx context.Context, injector *Injector) error

// Call implements the Endpoint interface.
func (f EndpointFunc) Call(ctx context.Context, injector *Injector) error {
	return f(ctx, injector)
}

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// NewEndpoint wraps fn as a dependency-injected Endpoint.
//
// fn must be a non-variadic function returning exactly one error. It may
// optionally take a context.Context as its first parameter; every other
// parameter is resolved by taking a value of that exact type from the
// injector:
//
//	ferogram.NewEndpoint(func(ctx context.Context, c ferogram.Client, m *ferogram.Message) error {
//	    _, err := c.SendMessage(ctx, m.Chat.ID, "pong")
//	    return err
//	})
//
// A parameter type absent from the injector fails the call with a
// MissingDependencyError naming the type. An invalid signature is a
// programmer error and panics at construction.
func NewEndpoint(fn any) Endpoint {
	if e, ok := fn.(Endpoint); ok {
		return e
	}

	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		panic(fmt.Sprintf("ferogram: endpoint must be a function, got %T", fn))
	}
	if t.IsVariadic() {
		panic("ferogram: endpoint must not be variadic")
	}
	if t.NumOut() != 1 || t.Out(0) != errType {
		panic(fmt.Sprintf("ferogram: endpoint must return exactly one error, got %s", t))
	}

	ep := &funcEndpoint{fn: v}
	for i := 0; i < t.NumIn(); i++ {
		p := t.In(i)
		if i == 0 && p == ctxType {
			ep.wantsCtx = true
			continue
		}
		ep.params = append(ep.params, p)
	}
	return ep
}

// funcEndpoint invokes an arbitrary function with parameters pulled from the
// injector by type identity.
type funcEndpoint struct {
	fn       reflect.Value
	params   []reflect.Type
	wantsCtx bool
}

func (e *funcEndpoint) Call(ctx context.Context, injector *Injector) error {
	args := make([]reflect.Value, 0, len(e.params)+1)
	if e.wantsCtx {
		args = append(args, reflect.ValueOf(ctx))
	}

	for _, p := range e.params {
		v, ok := injector.takeType(p)
		if !ok {
			return &MissingDependencyError{Type: p}
		}
		arg := reflect.New(p).Elem()
		if v != nil {
			arg.Set(reflect.ValueOf(v))
		}
		args = append(args, arg)
	}

	out := e.fn.Call(args)
	if err := out[0].Interface(); err != nil {
		return err.(error)
	}
	return nil
}
