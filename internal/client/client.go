// Package client implements the cloudsecure.Client facade over the shared
// transport: per-resource object APIs cached on first use, the raw request
// surface, connectivity checks, and the async collection resolver.
package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/cloudsec-io/cloudsecure/internal/constants"
	"github.com/cloudsec-io/cloudsecure/internal/transport"
	"github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
)

// Client implements the cloudsecure.Client interface. It owns the one
// transport instance shared by every object API it hands out. The design
// makes no guarantee about concurrent calls against the same client; use
// independent clients or serialize access.
type Client struct {
	transport *transport.Client
	logger    cloudsecure.Logger
	apis      map[string]*ObjectAPI
}

// New creates a CloudSecure API client from configuration.
func New(config *cloudsecure.Config) (*Client, error) {
	if config == nil {
		return nil, cloudsecure.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, cloudsecure.ErrEndpointRequired
	}

	if config.TenantID == "" {
		return nil, cloudsecure.ErrTenantRequired
	}

	baseURL, err := composeBaseURL(config)
	if err != nil {
		return nil, err
	}

	opts := []transport.Option{
		transport.WithCredentials(config.ServiceAccountKey, config.ServiceAccountToken),
	}

	if config.Logger != nil {
		opts = append(opts, transport.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, transport.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, transport.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, transport.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 || config.RetryWaitMin > 0 || config.RetryWaitMax > 0 {
		retryMax := constants.DefaultRetryMax
		waitMin := constants.DefaultRetryWaitMin
		waitMax := constants.DefaultRetryWaitMax

		if config.RetryMax > 0 {
			retryMax = config.RetryMax
		}

		if config.RetryWaitMin > 0 {
			waitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			waitMax = config.RetryWaitMax
		}

		opts = append(opts, transport.WithRetryConfig(retryMax, waitMin, waitMax))
	}

	return &Client{
		transport: transport.NewClient(baseURL, config.TenantID, opts...),
		logger:    config.Logger,
		apis:      make(map[string]*ObjectAPI),
	}, nil
}

// composeBaseURL builds scheme://host:port/api/version from the endpoint
// and config defaults.
func composeBaseURL(config *cloudsecure.Config) (string, error) {
	endpoint := config.Endpoint
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint: %w", err)
	}

	host := parsed.Host
	if parsed.Port() == "" {
		port := config.Port
		if port == "" {
			port = constants.DefaultPort
		}

		host += ":" + port
	}

	version := config.APIVersion
	if version == "" {
		version = constants.DefaultAPIVersion
	}

	return fmt.Sprintf("%s://%s/api/%s", parsed.Scheme, host, version), nil
}

// Resource implements cloudsecure.Client.Resource: the first call for a name
// performs the registry lookup and instantiation, later calls return the
// cached instance.
func (c *Client) Resource(name string) (cloudsecure.ObjectAPI, error) {
	if api, ok := c.apis[name]; ok {
		return api, nil
	}

	descriptor, err := cloudsecure.LookupDescriptor(name)
	if err != nil {
		return nil, err
	}

	api := newObjectAPI(descriptor, c.transport)
	c.apis[name] = api

	return api, nil
}

// Get implements cloudsecure.Client.Get.
func (c *Client) Get(ctx context.Context, endpoint string, opts *cloudsecure.RequestOptions) ([]byte, error) {
	resp, err := c.transport.Get(ctx, endpoint, opts)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// Post implements cloudsecure.Client.Post.
func (c *Client) Post(ctx context.Context, endpoint string, body interface{}, opts *cloudsecure.RequestOptions) ([]byte, error) {
	resp, err := c.transport.Post(ctx, endpoint, body, opts)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// Put implements cloudsecure.Client.Put.
func (c *Client) Put(ctx context.Context, endpoint string, body interface{}, opts *cloudsecure.RequestOptions) ([]byte, error) {
	resp, err := c.transport.Put(ctx, endpoint, body, opts)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// Delete implements cloudsecure.Client.Delete.
func (c *Client) Delete(ctx context.Context, endpoint string, opts *cloudsecure.RequestOptions) ([]byte, error) {
	resp, err := c.transport.Delete(ctx, endpoint, opts)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// MustConnect implements cloudsecure.Client.MustConnect.
func (c *Client) MustConnect(ctx context.Context, opts *cloudsecure.RequestOptions) error {
	_, err := c.transport.Get(ctx, constants.HealthEndpoint, opts)
	if err != nil {
		return fmt.Errorf("checking connection: %w", err)
	}

	return nil
}

// CheckConnection implements cloudsecure.Client.CheckConnection.
func (c *Client) CheckConnection(ctx context.Context, opts *cloudsecure.RequestOptions) bool {
	return c.MustConnect(ctx, opts) == nil
}

// SetCredentials implements cloudsecure.Client.SetCredentials.
func (c *Client) SetCredentials(key, token string) {
	c.transport.SetCredentials(key, token)
}
