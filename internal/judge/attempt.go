package judge

import (
	"context"
	"fmt"
)

// attempt is the outcome of one collaborator call: a value or an error.
type attempt[T any] struct {
	value T
	err   error
}

// call runs fn, converting a panic into an error.
func call[T any](ctx context.Context, fn func(context.Context) (T, error)) (a attempt[T]) {
	defer func() {
		if r := recover(); r != nil {
			a = attempt[T]{err: fmt.Errorf("collaborator panicked: %v", r)}
		}
	}()
	v, err := fn(ctx)
	return attempt[T]{value: v, err: err}
}

func (a attempt[T]) ok() bool { return a.err == nil }

// or returns the value, or def when the call failed.
func (a attempt[T]) or(def T) T {
	if a.err != nil {
		return def
	}
	return a.value
}

// deref turns a pointer-returning call into a value attempt. A nil pointer
// without an error counts as a malformed response.
func deref[T any](p *T, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if p == nil {
		return zero, fmt.Errorf("%w: empty result", ErrMalformedResponse)
	}
	return *p, nil
}
