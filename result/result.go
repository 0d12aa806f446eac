// Package result provides a small two-variant container used as the calling
// convention for every bulksms operation.
//
// A Result is either Ok, holding a value, or Err, holding an error. Results
// are immutable: the transformation helpers always return a new Result.
//
//	r := result.Ok[int, error](2)
//	doubled := result.Map(r, func(v int) int { return v * 2 })
//	v, err := doubled.Unwrap()
package result

import (
	"errors"
	"reflect"
)

// ErrMissing is returned by Unwrap for an Err result holding a nil error,
// such as the zero Result.
var ErrMissing = errors.New("result: failed without an error")

// Result holds either a success value of type T or a failure of type E.
type Result[T any, E error] struct {
	value T
	err   E
	ok    bool
}

// Ok creates a successful Result.
func Ok[T any, E error](value T) Result[T, E] {
	return Result[T, E]{value: value, ok: true}
}

// Err creates a failed Result.
func Err[T any, E error](err E) Result[T, E] {
	return Result[T, E]{err: err}
}

// Try wraps a call using the (value, error) convention into a Result.
func Try[T any](fn func() (T, error)) Result[T, error] {
	v, err := fn()
	if err != nil {
		return Err[T](err)
	}
	return Ok[T, error](v)
}

// IsOk reports whether r holds a value.
func (r Result[T, E]) IsOk() bool {
	return r.ok
}

// IsErr reports whether r holds an error.
func (r Result[T, E]) IsErr() bool {
	return !r.ok
}

// Value returns the value and whether r is Ok.
func (r Result[T, E]) Value() (T, bool) {
	return r.value, r.ok
}

// Error returns the contained error and whether r is Err.
func (r Result[T, E]) Error() (E, bool) {
	return r.err, !r.ok
}

// Unwrap converts r back to the (value, error) convention. For an Err
// result the contained error is returned unchanged, or ErrMissing when it
// is nil, so the error is never a non-nil interface around a nil pointer.
func (r Result[T, E]) Unwrap() (T, error) {
	if !r.ok {
		var zero T
		if isNil(r.err) {
			return zero, ErrMissing
		}
		return zero, r.err
	}
	return r.value, nil
}

func isNil(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// UnwrapOr returns the value, or def when r is Err.
func (r Result[T, E]) UnwrapOr(def T) T {
	if !r.ok {
		return def
	}
	return r.value
}

// UnwrapOrElse returns the value, or fn(err) when r is Err.
func (r Result[T, E]) UnwrapOrElse(fn func(E) T) T {
	if !r.ok {
		return fn(r.err)
	}
	return r.value
}

// Map transforms the value of an Ok result. Err results pass through with
// the same error.
func Map[T, U any, E error](r Result[T, E], fn func(T) U) Result[U, E] {
	if !r.ok {
		return Err[U](r.err)
	}
	return Ok[U, E](fn(r.value))
}

// MapErr transforms the error of an Err result. Ok results pass through.
func MapErr[T any, E, F error](r Result[T, E], fn func(E) F) Result[T, F] {
	if r.ok {
		return Ok[T, F](r.value)
	}
	return Err[T](fn(r.err))
}

// AndThen chains an operation that itself returns a Result.
func AndThen[T, U any, E error](r Result[T, E], fn func(T) Result[U, E]) Result[U, E] {
	if !r.ok {
		return Err[U](r.err)
	}
	return fn(r.value)
}

// Match calls exactly one of onOk or onErr and returns its result.
func Match[T, R any, E error](r Result[T, E], onOk func(T) R, onErr func(E) R) R {
	if r.ok {
		return onOk(r.value)
	}
	return onErr(r.err)
}
