package bulksms

import (
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.mnotify.com/api"
	// DefaultTimeout bounds each attempt of a request.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxRetries bounds how often a rate-limited request is retried.
	DefaultMaxRetries = 3

	defaultUserAgent = "bulksms-go"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Any path prefix it carries is
// kept in front of every request path.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.rawBaseURL = baseURL
	}
}

// WithTimeout sets the hard per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithMaxRetries sets the maximum number of retries after a 429.
func WithMaxRetries(retries int) Option {
	return func(c *Client) {
		if retries >= 0 {
			c.maxRetries = retries
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}
