package bulksms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// apiKeyParam is the query parameter carrying the API key on every call.
const apiKeyParam = "key"

// defaultRetryAfter is used when a 429 carries no usable Retry-After.
const defaultRetryAfter = time.Second

// maxRetryAfter caps the wait a server can ask for.
const maxRetryAfter = time.Hour

// Request describes a single API call relative to the base URL.
type Request struct {
	Method string
	Path   string
	Body   any
	Query  url.Values
}

// Client performs authenticated requests against the bulk messaging API.
// It holds only immutable configuration and is safe for concurrent use.
type Client struct {
	apiKey     string
	rawBaseURL string
	baseURL    *url.URL
	timeout    time.Duration
	maxRetries int
	userAgent  string
	httpClient *http.Client
	logger     zerolog.Logger
	sleep      func(ctx context.Context, d time.Duration) error

	SMS       *MessagingService
	Contacts  *ContactsService
	Groups    *GroupsService
	Templates *TemplatesService
	Account   *AccountService
}

// NewClient creates a new client for the given API key.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	c := &Client{
		apiKey:     apiKey,
		rawBaseURL: DefaultBaseURL,
		timeout:    DefaultTimeout,
		maxRetries: DefaultMaxRetries,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{},
		logger:     logger,
		sleep:      sleepContext,
	}

	for _, opt := range opts {
		opt(c)
	}

	base, err := url.Parse(strings.TrimSpace(c.rawBaseURL))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", ErrInvalidConfig, c.rawBaseURL)
	}
	if base.Path == "" {
		base.Path = "/"
	}
	c.baseURL = base

	c.SMS = &MessagingService{client: c}
	c.Contacts = &ContactsService{client: c}
	c.Groups = &GroupsService{client: c}
	c.Templates = &TemplatesService{client: c}
	c.Account = &AccountService{client: c}

	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// TestConnection verifies the API key by fetching the account balance.
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.Account.Balance(ctx)
	return err
}

// Request performs req and returns the decoded JSON body.
func (c *Client) Request(ctx context.Context, req Request) (any, error) {
	return c.RequestSafe(ctx, req).Unwrap()
}

// RequestSafe performs req and returns the decoded JSON body as a Result.
// Rate-limited calls are retried up to the configured bound; every other
// failure is returned as an *Error.
func (c *Client) RequestSafe(ctx context.Context, req Request) Result[any] {
	return c.send(ctx, req, 0)
}

// resolve builds the absolute URL for path, keeping any prefix of the base
// URL and always carrying the API key.
func (c *Client) resolve(path string, query url.Values) *url.URL {
	u := c.baseURL.JoinPath(path)

	q := u.Query()
	for k, vs := range query {
		if k == apiKeyParam {
			continue
		}
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set(apiKeyParam, c.apiKey)
	u.RawQuery = q.Encode()
	return u
}

// redact hides the API key in u for error contexts.
func (c *Client) redact(u *url.URL) string {
	clone := *u
	q := clone.Query()
	q.Set(apiKeyParam, "REDACTED")
	clone.RawQuery = q.Encode()
	return clone.String()
}

func (c *Client) send(ctx context.Context, req Request, retry int) Result[any] {
	target := c.resolve(req.Path, req.Query)
	ectx := ErrorContext{
		Stage:   StageRequest,
		Method:  req.Method,
		Path:    req.Path,
		URL:     c.redact(target),
		Retries: retry,
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return failure[any](FromUnknown(err, "failed to encode request body", 0, ectx, nil))
		}
		body = bytes.NewReader(payload)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, target.String(), body)
	if err != nil {
		return failure[any](FromUnknown(err, "failed to create request", 0, ectx, nil))
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Authorization", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("attempt", retry+1).
		Str("request_id", requestID).
		Msg("Making bulksms API request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return failure[any](transportError(attemptCtx, err, ectx))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure[any](transportError(attemptCtx, err, ectx))
	}

	ectx.Stage = StageResponse

	if resp.StatusCode == http.StatusTooManyRequests && retry < c.maxRetries {
		wait := retryAfter(resp.Header.Get("Retry-After"))
		c.logger.Warn().
			Str("path", req.Path).
			Int("attempt", retry+1).
			Dur("retry_after", wait).
			Msg("Rate limited, retrying")

		if err := c.sleep(ctx, wait); err != nil {
			return failure[any](transportError(ctx, err, ectx))
		}
		return c.send(ctx, req, retry+1)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data := decodeErrorBody(raw)
		apiErr := NewError(errorMessage(data, resp), resp.StatusCode, WithData(data), WithErrorContext(ectx))
		c.logger.Debug().
			Str("path", req.Path).
			Int("status", resp.StatusCode).
			Int("retries", retry).
			Msg("bulksms API request failed")
		return failure[any](apiErr)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return success[any](map[string]any{})
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return failure[any](NewError("Invalid JSON response", 0,
			WithErrorContext(ectx), WithData(string(raw)), WithCause(err)))
	}
	return success(decoded)
}

// transportError maps a failure without a usable HTTP response.
func transportError(ctx context.Context, err error, ectx ErrorContext) *Error {
	if isTimeout(err) || isTimeout(ctx.Err()) {
		return timeoutError(ectx, err)
	}
	ectx.Stage = StageNetwork
	return FromUnknown(err, "Network error", 0, ectx, nil)
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs < 0 {
		return defaultRetryAfter
	}
	if secs > int(maxRetryAfter/time.Second) {
		return maxRetryAfter
	}
	return time.Duration(secs) * time.Second
}

// decodeErrorBody tolerates empty and non-JSON error bodies.
func decodeErrorBody(raw []byte) any {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil || data == nil {
		return map[string]any{}
	}
	return data
}

// errorMessage picks the server's message, falling back to the status text.
func errorMessage(data any, resp *http.Response) string {
	if obj, ok := asObject(data); ok {
		if msg, ok := firstString(obj, "message", "error"); ok {
			return msg
		}
		if errs := stringSlice(obj, "errors"); len(errs) > 0 {
			return errs[0]
		}
	}
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
