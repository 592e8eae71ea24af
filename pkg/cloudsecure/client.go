package cloudsecure

import (
	"context"
	"time"
)

// ObjectAPI is the resource-agnostic CRUD surface bound to one registered
// resource kind.
type ObjectAPI interface {
	// Get issues a plain GET at the resource endpoint. The result is a
	// []interface{} of typed objects when the body is a sequence, one typed
	// object when it is a single mapping, and the raw decoded value for any
	// other success body.
	Get(ctx context.Context, opts *RequestOptions) (interface{}, error)

	// GetAll fetches the complete collection: the first request asks for a
	// count only, the second fetches exactly that many objects. The caller
	// never sees a partial page.
	GetAll(ctx context.Context, opts *RequestOptions) ([]interface{}, error)

	// Create posts a new object, prefixing the draft policy path for
	// policy-scoped resources. A bulk response is partitioned into a
	// BulkResult; a single response decodes into the target type.
	Create(ctx context.Context, body interface{}, opts *RequestOptions) (interface{}, error)

	// Update issues a PUT at the given reference's locator. Success is the
	// absence of an error.
	Update(ctx context.Context, ref interface{}, body interface{}, opts *RequestOptions) error

	// Delete issues a DELETE at the given reference's locator.
	Delete(ctx context.Context, ref interface{}, opts *RequestOptions) error

	// Descriptor returns the immutable registry entry this API is bound to.
	Descriptor() Descriptor
}

// Client is the CloudSecure API facade: one shared transport, one lazily
// cached ObjectAPI per registered resource name, and the raw request surface
// for endpoints outside the registry.
type Client interface {
	// Resource returns the cached ObjectAPI for a registered resource name,
	// constructing it on first use. Unknown names fail with a NotFoundError
	// and no network call.
	Resource(name string) (ObjectAPI, error)

	// Get issues a GET and returns the raw response body.
	Get(ctx context.Context, endpoint string, opts *RequestOptions) ([]byte, error)

	// Post issues a POST with a JSON body and returns the raw response body.
	Post(ctx context.Context, endpoint string, body interface{}, opts *RequestOptions) ([]byte, error)

	// Put issues a PUT with a JSON body.
	Put(ctx context.Context, endpoint string, body interface{}, opts *RequestOptions) ([]byte, error)

	// Delete issues a DELETE.
	Delete(ctx context.Context, endpoint string, opts *RequestOptions) ([]byte, error)

	// GetCollection resolves an async collection endpoint: request with
	// Prefer: respond-async, poll the job the server points at, then fetch
	// and return the completed collection body.
	GetCollection(ctx context.Context, endpoint string, opts *RequestOptions) ([]byte, error)

	// MustConnect issues a health-check GET and propagates any error.
	MustConnect(ctx context.Context, opts *RequestOptions) error

	// CheckConnection issues the same health check but reports the outcome
	// as a boolean instead of an error. This is the one place a normalized
	// error is intentionally swallowed.
	CheckConnection(ctx context.Context, opts *RequestOptions) bool

	// SetCredentials replaces the service account key and token used for
	// every subsequent request.
	SetCredentials(key, token string)
}

// Config represents client configuration for building a cloudsecure.Client.
//
// Endpoint, TenantID, ServiceAccountKey, and ServiceAccountToken are
// required. Every request carries Authorization: Basic base64(key:token) and
// an X-Tenant-Id header; the client never acquires tokens itself.
//
// Retry behavior covers connection failures and the statuses 429, 500, 502,
// 503, and 504 with exponential backoff; all other failures surface
// immediately. Per-call timeouts can be overridden through RequestOptions.
type Config struct {
	// Endpoint is the API host, with or without a scheme
	// (e.g. "https://cloud.example.com"). A missing scheme defaults to
	// https; a missing port defaults to Port.
	Endpoint string

	// TenantID identifies the tenant on every request.
	TenantID string

	// ServiceAccountKey is the service account key ID.
	ServiceAccountKey string

	// ServiceAccountToken is the service account secret token.
	ServiceAccountToken string

	// Port is used when Endpoint carries no port. Defaults to 443.
	Port string

	// APIVersion is the path version segment. Defaults to "v1".
	APIVersion string

	// HTTPTimeout is the default timeout for each attempt of a request.
	// Defaults to 30s.
	HTTPTimeout time.Duration

	// RetryMax is the maximum number of retries for transient failures.
	RetryMax int

	// RetryWaitMin is the initial backoff between retries.
	RetryWaitMin time.Duration

	// RetryWaitMax caps the backoff between retries.
	RetryWaitMax time.Duration

	// Debug enables request/response logging when a Logger is provided.
	Debug bool

	// Logger is an optional structured logger used by the transport.
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
