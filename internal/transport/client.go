// Package transport owns the HTTP session against the CloudSecure API: base
// URL composition, credential header attachment, JSON body encoding, the
// retry policy for transient failures, and normalization of every failed
// exchange into a cloudsecure.APIError.
package transport

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cloudsec-io/cloudsecure/internal/constants"
	"github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
	"github.com/hashicorp/go-retryablehttp"
)

// Request describes one HTTP exchange. The body stays as an in-memory value
// until send time, when it is serialized to JSON.
type Request struct {
	Method   string
	Endpoint string
	Query    url.Values
	Body     interface{}
	Headers  map[string]string
	Timeout  time.Duration
}

// Response is the raw outcome of an exchange.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the HTTP transport. It is safe for reuse across sequential
// calls; callers requiring concurrency must serialize access.
type Client struct {
	baseURL    string
	tenantID   string
	authHeader string
	userAgent  string
	timeout    time.Duration
	httpClient *retryablehttp.Client
	logger     cloudsecure.Logger
	debug      bool
}

// Option configures the transport.
type Option func(*Client)

// WithLogger sets a structured logger.
func WithLogger(logger cloudsecure.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the default per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetryConfig sets the retry policy for transient failures.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = maxRetries
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithCredentials sets the service account key and token attached to every
// request.
func WithCredentials(key, token string) Option {
	return func(c *Client) {
		c.SetCredentials(key, token)
	}
}

// NewClient creates a transport bound to a fully composed base URL
// (scheme://host:port/api/version) and tenant.
func NewClient(baseURL, tenantID string, opts ...Option) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.Logger = nil
	httpClient.RetryMax = constants.DefaultRetryMax
	httpClient.RetryWaitMin = constants.DefaultRetryWaitMin
	httpClient.RetryWaitMax = constants.DefaultRetryWaitMax
	httpClient.CheckRetry = retryPolicy
	httpClient.Backoff = retryablehttp.DefaultBackoff
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tenantID:   tenantID,
		timeout:    constants.DefaultHTTPTimeout,
		httpClient: httpClient,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// SetCredentials replaces the Authorization header value for every
// subsequent request.
func (c *Client) SetCredentials(key, token string) {
	auth := base64.StdEncoding.EncodeToString([]byte(key + ":" + token))
	c.authHeader = "Basic " + auth
}

// retryPolicy retries connection-level failures and the transient statuses
// 429, 500, 502, 503, and 504. Everything else fails immediately.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true, nil
	}

	return false, nil
}

// Do executes one exchange. Non-2xx responses and connection failures both
// come back as a *cloudsecure.APIError; the Response is returned alongside
// the error when one was received. The timeout bounds each attempt, not the
// retry chain, so an exhausted retry budget still surfaces the last failure
// rather than a deadline error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}

	c.httpClient.HTTPClient.Timeout = timeout

	rawBody, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, c.buildURL(req.Endpoint, req.Query), rawBody)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	c.setHeaders(httpReq, req, rawBody != nil)

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &cloudsecure.APIError{Message: err.Error()}
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	var buf bytes.Buffer

	_, err = buf.ReadFrom(httpResp.Body)
	if err != nil {
		return nil, &cloudsecure.APIError{StatusCode: httpResp.StatusCode, Message: err.Error()}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"url":    httpReq.URL.String(),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       buf.Bytes(),
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		return resp, cloudsecure.NewAPIError(httpResp.StatusCode, httpResp.Status, resp.Body)
	}

	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, endpoint string, opts *cloudsecure.RequestOptions) (*Response, error) {
	return c.Do(ctx, requestFor(http.MethodGet, endpoint, nil, opts))
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body interface{}, opts *cloudsecure.RequestOptions) (*Response, error) {
	return c.Do(ctx, requestFor(http.MethodPost, endpoint, body, opts))
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body interface{}, opts *cloudsecure.RequestOptions) (*Response, error) {
	return c.Do(ctx, requestFor(http.MethodPut, endpoint, body, opts))
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string, opts *cloudsecure.RequestOptions) (*Response, error) {
	return c.Do(ctx, requestFor(http.MethodDelete, endpoint, nil, opts))
}

// requestFor folds per-call options into a Request.
func requestFor(method, endpoint string, body interface{}, opts *cloudsecure.RequestOptions) *Request {
	req := &Request{
		Method:   method,
		Endpoint: endpoint,
		Body:     body,
	}

	if opts != nil {
		req.Query = opts.Params
		req.Headers = opts.Headers
		req.Timeout = opts.Timeout
	}

	return req
}

// buildURL joins the base URL and endpoint, stripping any leading slash and
// collapsing doubled separators in the endpoint.
func (c *Client) buildURL(endpoint string, query url.Values) string {
	endpoint = strings.TrimLeft(endpoint, "/")
	for strings.Contains(endpoint, "//") {
		endpoint = strings.ReplaceAll(endpoint, "//", "/")
	}

	full := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		full += "?" + query.Encode()
	}

	return full
}

// encodeBody serializes the payload at send time so callers can pass
// in-memory types directly.
func encodeBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}

	if raw, ok := body.([]byte); ok {
		return raw, nil
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return raw, nil
}

// setHeaders attaches the fixed headers, then per-request overrides.
func (c *Client) setHeaders(httpReq *retryablehttp.Request, req *Request, hasBody bool) {
	httpReq.Header.Set("Accept", "application/json")

	if c.authHeader != "" {
		httpReq.Header.Set("Authorization", c.authHeader)
	}

	if c.tenantID != "" {
		httpReq.Header.Set("X-Tenant-Id", c.tenantID)
	}

	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if hasBody || req.Method == http.MethodPost || req.Method == http.MethodPut {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
}
