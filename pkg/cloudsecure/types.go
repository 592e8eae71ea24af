package cloudsecure

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired   = errors.New("config is required")
	ErrEndpointRequired = errors.New("API endpoint is required")
	ErrTenantRequired   = errors.New("tenant ID is required")
	ErrMissingHref      = errors.New("object has no href")
)

// PolicyVersion selects the draft or active branch of the security policy
// for policy-scoped resources.
type PolicyVersion string

const (
	// PolicyDraft addresses the mutable draft policy version.
	PolicyDraft PolicyVersion = "draft"

	// PolicyActive addresses the provisioned active policy version.
	PolicyActive PolicyVersion = "active"
)

// Validate rejects any value outside {draft, active}.
func (v PolicyVersion) Validate() error {
	if v != PolicyDraft && v != PolicyActive {
		return &ValidationError{Message: fmt.Sprintf("invalid policy version: %s", v)}
	}

	return nil
}

// Reference is a lightweight handle to a remote object: the server-issued
// href plus whatever extra fields the server sent alongside it. Two
// references are equal iff their hrefs are equal.
type Reference struct {
	Href string

	// Raw carries the full server representation the reference was decoded
	// from. Nil for references built locally from a bare href.
	Raw map[string]interface{}
}

// Equal reports whether both references point at the same remote object.
func (r Reference) Equal(other Reference) bool {
	return r.Href == other.Href
}

// UnmarshalJSON decodes a reference from its server representation, keeping
// the extra fields available in Raw.
func (r *Reference) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("parsing reference: %w", err)
	}

	href, _ := raw["href"].(string)
	r.Href = href
	r.Raw = raw

	return nil
}

// MarshalJSON encodes the reference as {"href": ...}, which is the shape the
// API expects when a reference stands in for a full object.
func (r Reference) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(map[string]string{"href": r.Href})
	if err != nil {
		return nil, fmt.Errorf("encoding reference: %w", err)
	}

	return data, nil
}

// HrefFrom extracts an object locator from a Reference, a raw href string,
// a decoded JSON mapping, or any struct carrying an Href field via its
// HrefValue method.
func HrefFrom(ref interface{}) (string, error) {
	switch value := ref.(type) {
	case string:
		if value == "" {
			return "", ErrMissingHref
		}

		return value, nil
	case Reference:
		if value.Href == "" {
			return "", ErrMissingHref
		}

		return value.Href, nil
	case *Reference:
		if value == nil || value.Href == "" {
			return "", ErrMissingHref
		}

		return value.Href, nil
	case map[string]interface{}:
		href, ok := value["href"].(string)
		if !ok || href == "" {
			return "", ErrMissingHref
		}

		return href, nil
	case interface{ HrefValue() string }:
		if value.HrefValue() == "" {
			return "", ErrMissingHref
		}

		return value.HrefValue(), nil
	default:
		return "", fmt.Errorf("%w: unsupported reference type %T", ErrMissingHref, ref)
	}
}

// RequestOptions carries per-call overrides supplied by the caller: query
// parameters, extra headers, a request timeout, and the policy version for
// policy-scoped operations.
type RequestOptions struct {
	Params        url.Values
	Headers       map[string]string
	Timeout       time.Duration
	PolicyVersion PolicyVersion
}

// BulkResult is the outcome of a bulk create: elements the server accepted
// (each carrying an href) under the resource name, and every rejected
// element preserved verbatim. Neither partition is ever silently dropped.
type BulkResult struct {
	Resource string
	Created  []interface{}
	Errors   []interface{}
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
