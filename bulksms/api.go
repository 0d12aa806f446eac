package bulksms

import (
	"context"
)

// API defines the transport operations the resource services build on
type API interface {
	// RequestSafe performs a request and reports failures as a Result
	RequestSafe(ctx context.Context, req Request) Result[any]

	// Request performs a request and reports failures as an error
	Request(ctx context.Context, req Request) (any, error)

	// TestConnection verifies the API key against the remote API
	TestConnection(ctx context.Context) error
}

var _ API = (*Client)(nil)
