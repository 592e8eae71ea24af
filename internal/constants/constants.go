// Package constants centralizes defaults shared across the client, the
// transport, and the CLI.
package constants

import "time"

// HTTP and network defaults.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as health checks.
	ShortHTTPTimeout = 10 * time.Second

	// DefaultPort is used when the API endpoint carries no explicit port.
	DefaultPort = "443"

	// DefaultAPIVersion is the path version segment of the API base URL.
	DefaultAPIVersion = "v1"
)

// Retry defaults for transient failures.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 5

	// DefaultRetryWaitMin is the initial backoff between retries.
	DefaultRetryWaitMin = 500 * time.Millisecond

	// DefaultRetryWaitMax caps the backoff between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Async collection protocol values.
const (
	// PollBackoffMultiplier grows the wait between job polls.
	PollBackoffMultiplier = 1.5

	// HeaderPreferRespondAsync asks the server to defer a collection query
	// to a background job.
	HeaderPreferRespondAsync = "respond-async"
)

// Well-known endpoints.
const (
	// HealthEndpoint backs MustConnect and CheckConnection.
	HealthEndpoint = "/health"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)
