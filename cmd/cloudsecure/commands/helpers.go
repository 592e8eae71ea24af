package commands

import (
	"errors"

	"github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
	"github.com/cloudsec-io/cloudsecure/pkg/csclient"
	"github.com/spf13/viper"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrAPIURLRequired      = errors.New("API URL is required (use --api-url or CLOUDSECURE_API_URL)")
	ErrTenantIDRequired    = errors.New("tenant ID is required (use --tenant-id or CLOUDSECURE_TENANT_ID)")
	ErrCredentialsRequired = errors.New("service account key and token are required")
	ErrInputFileRequired   = errors.New("input file is required (use --file)")
	ErrConnectionFailed    = errors.New("connection check failed")
)

// CreateClient builds a client from the resolved flag/env/config values.
func CreateClient() (cloudsecure.Client, error) {
	apiURL := viper.GetString("api-url")
	if apiURL == "" {
		return nil, ErrAPIURLRequired
	}

	tenantID := viper.GetString("tenant-id")
	if tenantID == "" {
		return nil, ErrTenantIDRequired
	}

	key := viper.GetString("service-account-key")
	token := viper.GetString("service-account-token")

	if key == "" || token == "" {
		return nil, ErrCredentialsRequired
	}

	return csclient.New(&cloudsecure.Config{
		Endpoint:            apiURL,
		TenantID:            tenantID,
		ServiceAccountKey:   key,
		ServiceAccountToken: token,
		Debug:               viper.GetBool("verbose"),
	})
}
