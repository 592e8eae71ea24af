// Package csclient provides the main entry point for creating CloudSecure
// API clients.
package csclient

import (
	"strings"

	"github.com/cloudsec-io/cloudsecure/internal/client"
	"github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
)

// New creates a new CloudSecure API client.
func New(config *cloudsecure.Config) (cloudsecure.Client, error) {
	if config == nil {
		return nil, cloudsecure.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, cloudsecure.ErrEndpointRequired
	}

	// Normalize the endpoint
	endpoint := strings.TrimSuffix(config.Endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	config.Endpoint = endpoint

	return client.New(config)
}

// NewWithServiceAccount creates a new client from the endpoint, tenant, and
// service account credentials, using defaults for everything else.
func NewWithServiceAccount(endpoint, tenantID, key, token string) (cloudsecure.Client, error) {
	return New(&cloudsecure.Config{
		Endpoint:            endpoint,
		TenantID:            tenantID,
		ServiceAccountKey:   key,
		ServiceAccountToken: token,
	})
}
