package result

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestVariants(t *testing.T) {
	ok := Ok[int, error](1)
	assert.True(t, ok.IsOk())
	assert.False(t, ok.IsErr())

	fail := Err[int](errBoom)
	assert.True(t, fail.IsErr())
	assert.False(t, fail.IsOk())

	v, isOk := ok.Value()
	assert.True(t, isOk)
	assert.Equal(t, 1, v)

	e, isErr := fail.Error()
	assert.True(t, isErr)
	assert.Same(t, errBoom, e)
}

func TestMap(t *testing.T) {
	double := func(v int) int { return v * 2 }

	v, err := Map(Ok[int, error](21), double).Unwrap()
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	mapped := Map(Err[int](errBoom), double)
	require.True(t, mapped.IsErr())
	_, err = mapped.Unwrap()
	assert.Same(t, errBoom, err)
}

func TestMapErr(t *testing.T) {
	wrapped := errors.New("wrapped")

	r := MapErr(Err[int](errBoom), func(error) error { return wrapped })
	_, err := r.Unwrap()
	assert.Same(t, wrapped, err)

	called := false
	r = MapErr(Ok[int, error](5), func(e error) error {
		called = true
		return e
	})
	assert.False(t, called)
	assert.Equal(t, 5, r.UnwrapOr(0))
}

func TestAndThen(t *testing.T) {
	parse := func(s string) Result[int, error] {
		return Try(func() (int, error) { return strconv.Atoi(s) })
	}

	v, err := AndThen(Ok[string, error]("12"), parse).Unwrap()
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	r := AndThen(Ok[string, error]("nope"), parse)
	assert.True(t, r.IsErr())

	calls := 0
	r = AndThen(Err[string](errBoom), func(s string) Result[int, error] {
		calls++
		return parse(s)
	})
	assert.Zero(t, calls)
	_, err = r.Unwrap()
	assert.Same(t, errBoom, err)
}

func TestUnwrapVariants(t *testing.T) {
	assert.Equal(t, 7, Err[int](errBoom).UnwrapOr(7))
	assert.Equal(t, 3, Ok[int, error](3).UnwrapOr(7))

	got := Err[int](errBoom).UnwrapOrElse(func(e error) int { return len(e.Error()) })
	assert.Equal(t, 4, got)
	assert.Equal(t, 3, Ok[int, error](3).UnwrapOrElse(func(error) int { return -1 }))

	v, err := Ok[string, error]("x").Unwrap()
	assert.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestMatch(t *testing.T) {
	describe := func(r Result[int, error]) string {
		return Match(r,
			func(v int) string { return "ok:" + strconv.Itoa(v) },
			func(e error) string { return "err:" + e.Error() },
		)
	}

	assert.Equal(t, "ok:1", describe(Ok[int, error](1)))
	assert.Equal(t, "err:boom", describe(Err[int](errBoom)))
}

func TestTry(t *testing.T) {
	r := Try(func() (string, error) { return "", errBoom })
	assert.True(t, r.IsErr())

	r = Try(func() (string, error) { return "fine", nil })
	assert.Equal(t, "fine", r.UnwrapOr(""))
}

type codeError struct{ code int }

func (e *codeError) Error() string { return "code " + strconv.Itoa(e.code) }

func TestUnwrapNilError(t *testing.T) {
	var zero Result[int, *codeError]
	require.True(t, zero.IsErr())
	_, err := zero.Unwrap()
	assert.ErrorIs(t, err, ErrMissing)

	_, err = Err[int, *codeError](nil).Unwrap()
	assert.ErrorIs(t, err, ErrMissing)

	_, err = Err[int, error](nil).Unwrap()
	assert.ErrorIs(t, err, ErrMissing)

	_, err = Err[int](&codeError{code: 3}).Unwrap()
	var ce *codeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 3, ce.code)
}
