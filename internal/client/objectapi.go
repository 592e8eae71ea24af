package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/cloudsec-io/cloudsecure/internal/transport"
	"github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
)

// maxResultsParam is the pagination negotiation parameter. Zero is the
// sentinel asking the server for a count-only response.
const maxResultsParam = "max_results"

// totalCountHeader carries the real collection size on a count-only
// response.
const totalCountHeader = "X-Total-Count"

// ObjectAPI implements cloudsecure.ObjectAPI for one registry descriptor.
// It shares the facade's transport and holds an immutable copy of its
// descriptor.
type ObjectAPI struct {
	descriptor cloudsecure.Descriptor
	transport  *transport.Client
}

func newObjectAPI(descriptor cloudsecure.Descriptor, tp *transport.Client) *ObjectAPI {
	return &ObjectAPI{
		descriptor: descriptor,
		transport:  tp,
	}
}

// Descriptor implements cloudsecure.ObjectAPI.Descriptor.
func (a *ObjectAPI) Descriptor() cloudsecure.Descriptor {
	return a.descriptor
}

// Get implements cloudsecure.ObjectAPI.Get.
func (a *ObjectAPI) Get(ctx context.Context, opts *cloudsecure.RequestOptions) (interface{}, error) {
	resp, err := a.transport.Get(ctx, a.descriptor.Endpoint, opts)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", a.descriptor.Name, err)
	}

	return a.decodeAny(resp.Body)
}

// GetAll implements cloudsecure.ObjectAPI.GetAll. The first request carries
// max_results=0; a non-empty body is treated as the complete collection,
// otherwise the total from the X-Total-Count header sizes a second, exact
// fetch.
func (a *ObjectAPI) GetAll(ctx context.Context, opts *cloudsecure.RequestOptions) ([]interface{}, error) {
	callOpts := cloneOptions(opts)

	if callOpts.Params.Has(maxResultsParam) {
		resp, err := a.transport.Get(ctx, a.descriptor.Endpoint, callOpts)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", a.descriptor.Name, err)
		}

		return a.decodeList(resp.Body)
	}

	callOpts.Params.Set(maxResultsParam, "0")

	resp, err := a.transport.Get(ctx, a.descriptor.Endpoint, callOpts)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", a.descriptor.Name, err)
	}

	objects, err := a.decodeList(resp.Body)
	if err != nil {
		return nil, err
	}

	// The server may answer the count probe with data anyway; that data is
	// the complete collection.
	if len(objects) > 0 {
		return objects, nil
	}

	total, err := totalCount(resp)
	if err != nil {
		return nil, err
	}

	callOpts.Params.Set(maxResultsParam, strconv.Itoa(total))

	resp, err = a.transport.Get(ctx, a.descriptor.Endpoint, callOpts)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", a.descriptor.Name, err)
	}

	return a.decodeList(resp.Body)
}

// Create implements cloudsecure.ObjectAPI.Create. New objects always go
// into the draft policy version; the policy version from opts is validated
// before any request is dispatched.
func (a *ObjectAPI) Create(ctx context.Context, body interface{}, opts *cloudsecure.RequestOptions) (interface{}, error) {
	version := cloudsecure.PolicyDraft
	if opts != nil && opts.PolicyVersion != "" {
		version = opts.PolicyVersion
	}

	endpoint, err := a.buildEndpoint(version)
	if err != nil {
		return nil, err
	}

	resp, err := a.transport.Post(ctx, endpoint, body, opts)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", a.descriptor.Name, err)
	}

	return a.parseCreateResponse(resp.Body)
}

// Update implements cloudsecure.ObjectAPI.Update.
func (a *ObjectAPI) Update(ctx context.Context, ref interface{}, body interface{}, opts *cloudsecure.RequestOptions) error {
	href, err := cloudsecure.HrefFrom(ref)
	if err != nil {
		return err
	}

	_, err = a.transport.Put(ctx, href, body, opts)
	if err != nil {
		return fmt.Errorf("updating %s: %w", a.descriptor.Name, err)
	}

	return nil
}

// Delete implements cloudsecure.ObjectAPI.Delete.
func (a *ObjectAPI) Delete(ctx context.Context, ref interface{}, opts *cloudsecure.RequestOptions) error {
	href, err := cloudsecure.HrefFrom(ref)
	if err != nil {
		return err
	}

	_, err = a.transport.Delete(ctx, href, opts)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", a.descriptor.Name, err)
	}

	return nil
}

// buildEndpoint prefixes the policy path for policy-scoped resources and
// validates the version before anything is sent.
func (a *ObjectAPI) buildEndpoint(version cloudsecure.PolicyVersion) (string, error) {
	endpoint := a.descriptor.Endpoint

	if a.descriptor.PolicyScoped {
		err := version.Validate()
		if err != nil {
			return "", err
		}

		endpoint = fmt.Sprintf("/sec_policy/%s/%s", version, endpoint)
	}

	for strings.Contains(endpoint, "//") {
		endpoint = strings.ReplaceAll(endpoint, "//", "/")
	}

	return endpoint, nil
}

// decodeAny maps a success body onto the target type: each element of a
// sequence, a single mapping, or the raw decoded value for anything else.
func (a *ObjectAPI) decodeAny(body []byte) (interface{}, error) {
	trimmed := bytes.TrimSpace(body)

	switch {
	case len(trimmed) == 0:
		return nil, nil
	case trimmed[0] == '[':
		return a.decodeList(trimmed)
	case trimmed[0] == '{':
		return a.decodeOne(trimmed)
	default:
		var raw interface{}

		err := json.Unmarshal(trimmed, &raw)
		if err != nil {
			return nil, fmt.Errorf("parsing %s response: %w", a.descriptor.Name, err)
		}

		return raw, nil
	}
}

// decodeList maps each element of a JSON sequence through the target type.
func (a *ObjectAPI) decodeList(body []byte) ([]interface{}, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var elements []json.RawMessage

	err := json.Unmarshal(trimmed, &elements)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list: %w", a.descriptor.Name, err)
	}

	objects := make([]interface{}, 0, len(elements))

	for _, element := range elements {
		object, err := a.decodeOne(element)
		if err != nil {
			return nil, err
		}

		objects = append(objects, object)
	}

	return objects, nil
}

// decodeOne constructs one object of the target type from its wire form.
func (a *ObjectAPI) decodeOne(element []byte) (interface{}, error) {
	object := a.descriptor.New()

	err := json.Unmarshal(element, object)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", a.descriptor.Name, err)
	}

	return object, nil
}

// parseCreateResponse partitions a bulk response into created objects and
// errors, or decodes a single created object.
func (a *ObjectAPI) parseCreateResponse(body []byte) (interface{}, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return a.decodeAny(trimmed)
	}

	var elements []json.RawMessage

	err := json.Unmarshal(trimmed, &elements)
	if err != nil {
		return nil, fmt.Errorf("parsing %s bulk response: %w", a.descriptor.Name, err)
	}

	result := &cloudsecure.BulkResult{Resource: a.descriptor.Name}

	for _, element := range elements {
		var fields map[string]interface{}

		err := json.Unmarshal(element, &fields)
		if err != nil {
			return nil, fmt.Errorf("parsing %s bulk element: %w", a.descriptor.Name, err)
		}

		if _, ok := fields["href"]; ok {
			object, err := a.decodeOne(element)
			if err != nil {
				return nil, err
			}

			result.Created = append(result.Created, object)

			continue
		}

		result.Errors = append(result.Errors, fields)
	}

	return result, nil
}

// totalCount reads the collection size from a count-only response.
func totalCount(resp *transport.Response) (int, error) {
	value := resp.Headers.Get(totalCountHeader)
	if value == "" {
		return 0, &cloudsecure.ProtocolError{Message: "count response missing " + totalCountHeader + " header"}
	}

	total, err := strconv.Atoi(value)
	if err != nil {
		return 0, &cloudsecure.ProtocolError{Message: "invalid " + totalCountHeader + " header: " + value}
	}

	return total, nil
}

// cloneOptions copies the caller's options so pagination and the async
// resolver can adjust query parameters and headers without mutating them.
func cloneOptions(opts *cloudsecure.RequestOptions) *cloudsecure.RequestOptions {
	cloned := &cloudsecure.RequestOptions{Params: url.Values{}}

	if opts != nil {
		cloned.Timeout = opts.Timeout
		cloned.PolicyVersion = opts.PolicyVersion

		for key, values := range opts.Params {
			cloned.Params[key] = append([]string(nil), values...)
		}

		if opts.Headers != nil {
			cloned.Headers = make(map[string]string, len(opts.Headers))
			for key, value := range opts.Headers {
				cloned.Headers[key] = value
			}
		}
	}

	return cloned
}
