// Package function decorates functions with inspectable behaviour.
//
// A Hook runs in place of the function it wraps and may run the original
// via `next`. Hooks also expose free-form metadata (ExtraConfig) so that
// upper layers can inspect how a function was decorated without calling it.
package function

import "context"

// Func is the shape of functions subject to decoration.
type Func[T any, R any] func(ctx context.Context, in T) (R, error)

// Hook runs in place of a wrapped function.
type Hook[T any, R any] interface {
	// Execute is invoked instead of the wrapped function, which is passed
	// as next. A Hook decides if, when and how often next runs.
	Execute(ctx context.Context, next Func[T, R], in T) (R, error)

	// ExtraConfig exposes hook-specific metadata for upstream inspection.
	ExtraConfig() map[string]string
}

// Conventional ExtraConfig keys.
const (
	LinkTypeKey = "link_type"
	PortKey     = "port"
)

// Decorated is a function bound to its Hook.
type Decorated[T any, R any] struct {
	fn   Func[T, R]
	hook Hook[T, R]
}

// Call invokes the hook in place of the wrapped function.
func (d Decorated[T, R]) Call(ctx context.Context, in T) (R, error) {
	return d.hook.Execute(ctx, d.fn, in)
}

// ExtraConfig exposes the hook's metadata.
func (d Decorated[T, R]) ExtraConfig() map[string]string {
	return d.hook.ExtraConfig()
}

// Wrap decorates fn with hook directly.
func Wrap[T any, R any](fn Func[T, R], hook Hook[T, R]) Decorated[T, R] {
	return Decorated[T, R]{fn: fn, hook: hook}
}

// Configured captures hook first and wraps a function on the next call.
//
//	timed := function.Configured[string, int](someHook)
//	decorated := timed(f)
func Configured[T any, R any](hook Hook[T, R]) func(Func[T, R]) Decorated[T, R] {
	return func(fn Func[T, R]) Decorated[T, R] {
		return Wrap(fn, hook)
	}
}
