package bulksms

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorWithContext(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	base := NewError("boom", 0, WithCause(cause), WithData(map[string]any{"x": 1}),
		WithErrorContext(ErrorContext{Stage: StageNetwork, Path: "/balance", Retries: 2}))

	t.Run("accumulates", func(t *testing.T) {
		got := base.WithContext(ErrorContext{Service: "account"}).
			WithContext(ErrorContext{Operation: "balance"})

		assert.Equal(t, ErrorContext{
			Service:   "account",
			Operation: "balance",
			Stage:     StageNetwork,
			Path:      "/balance",
			Retries:   2,
		}, got.Context)
	})

	t.Run("last write wins", func(t *testing.T) {
		got := base.WithContext(ErrorContext{Service: "a"}).WithContext(ErrorContext{Service: "b"})
		assert.Equal(t, "b", got.Context.Service)
		assert.Equal(t, "/balance", got.Context.Path)
	})

	t.Run("keeps everything else", func(t *testing.T) {
		got := base.WithContext(ErrorContext{Service: "account"})
		assert.Equal(t, base.Message, got.Message)
		assert.Equal(t, base.StatusCode, got.StatusCode)
		assert.Equal(t, base.Data, got.Data)
		assert.ErrorIs(t, got, cause)
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		_ = base.WithContext(ErrorContext{Service: "changed"})
		assert.Empty(t, base.Context.Service)
	})
}

func TestFromUnknown(t *testing.T) {
	ctx := ErrorContext{Service: "groups", Operation: "list"}

	t.Run("existing error keeps fields", func(t *testing.T) {
		orig := NewError("rate limited", http.StatusTooManyRequests,
			WithErrorContext(ErrorContext{Stage: StageResponse, Retries: 3}))
		wrapped := fmt.Errorf("outer: %w", orig)

		got := FromUnknown(wrapped, "fallback", 500, ctx, nil)
		assert.Equal(t, "rate limited", got.Message)
		assert.Equal(t, http.StatusTooManyRequests, got.StatusCode)
		assert.Equal(t, 3, got.Context.Retries)
		assert.Equal(t, "groups", got.Context.Service)
	})

	t.Run("generic error becomes cause", func(t *testing.T) {
		cause := errors.New("socket closed")
		got := FromUnknown(cause, "fallback", 0, ctx, "raw")
		assert.Equal(t, "socket closed", got.Message)
		assert.Equal(t, 0, got.StatusCode)
		assert.Equal(t, "raw", got.Data)
		assert.ErrorIs(t, got, cause)
	})

	t.Run("nil uses fallback", func(t *testing.T) {
		got := FromUnknown(nil, "fallback", 500, ctx, nil)
		assert.Equal(t, "fallback", got.Message)
		assert.Equal(t, 500, got.StatusCode)
		assert.Nil(t, got.Unwrap())
	})
}

func TestAnnotateResult(t *testing.T) {
	ctx := ErrorContext{Service: "templates", Operation: "get"}

	okResult := AnnotateResult(success(42), ctx)
	assert.Equal(t, 42, okResult.UnwrapOr(0))

	orig := NewError("Not Found", http.StatusNotFound,
		WithErrorContext(ErrorContext{Stage: StageResponse, Method: http.MethodGet, Path: "/templates/9"}))
	failed := AnnotateResult(failure[int](orig), ctx)

	_, err := failed.Unwrap()
	apiErr := requireAPIError(t, err)
	assert.Equal(t, "templates", apiErr.Context.Service)
	assert.Equal(t, "get", apiErr.Context.Operation)
	assert.Equal(t, StageResponse, apiErr.Context.Stage)
	assert.Equal(t, "/templates/9", apiErr.Context.Path)
	assert.True(t, apiErr.IsNotFound())
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		check func(*Error) bool
		want  bool
	}{
		{"timeout", NewError("Request timeout", 408), (*Error).IsTimeout, true},
		{"not timeout", NewError("x", 500), (*Error).IsTimeout, false},
		{"unauthorized 401", NewError("x", 401), (*Error).IsUnauthorized, true},
		{"unauthorized 403", NewError("x", 403), (*Error).IsUnauthorized, true},
		{"not unauthorized", NewError("x", 404), (*Error).IsUnauthorized, false},
		{"not found", NewError("x", 404), (*Error).IsNotFound, true},
		{"rate limited", NewError("x", 429), (*Error).IsRateLimited, true},
		{"validation", validationError("x", ErrorContext{}), (*Error).IsValidation, true},
		{"network", NewError("x", 0, WithErrorContext(ErrorContext{Stage: StageNetwork})), (*Error).IsNetwork, true},
		{"shape error is not network", shapeError("Group", nil, ErrorContext{}), (*Error).IsNetwork, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}

func TestErrorStrings(t *testing.T) {
	e := NewError("Invalid sender ID", 400, WithErrorContext(ErrorContext{
		Service: "messaging", Operation: "send", Stage: StageResponse,
		Method: http.MethodPost, Path: "/sms/quick", Retries: 1,
	}))

	assert.Equal(t, "Invalid sender ID", e.Error())
	require.Equal(t,
		"Invalid sender ID (status 400, stage response, op messaging.send, POST /sms/quick, retries 1)",
		e.Detail())

	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
}
