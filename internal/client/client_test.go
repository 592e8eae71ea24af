package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloudsec-io/cloudsecure/internal/transport"
	"github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a facade against a test server without going through
// endpoint composition.
func newTestClient(serverURL string) *Client {
	return &Client{
		transport: transport.NewClient(serverURL+"/api/v1", "test-tenant"),
		apis:      make(map[string]*ObjectAPI),
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := New(nil)
		require.ErrorIs(t, err, cloudsecure.ErrConfigRequired)
	})

	t.Run("missing endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := New(&cloudsecure.Config{TenantID: "tenant"})
		require.ErrorIs(t, err, cloudsecure.ErrEndpointRequired)
	})

	t.Run("missing tenant", func(t *testing.T) {
		t.Parallel()

		_, err := New(&cloudsecure.Config{Endpoint: "cloud.example.com"})
		require.ErrorIs(t, err, cloudsecure.ErrTenantRequired)
	})

	t.Run("complete config", func(t *testing.T) {
		t.Parallel()

		client, err := New(&cloudsecure.Config{
			Endpoint:            "cloud.example.com",
			TenantID:            "tenant",
			ServiceAccountKey:   "key",
			ServiceAccountToken: "token",
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("retry waits apply without a retry count override", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++
			if attempts < 3 {
				writer.WriteHeader(http.StatusServiceUnavailable)

				return
			}

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client, err := New(&cloudsecure.Config{
			Endpoint:            server.URL,
			TenantID:            "tenant",
			ServiceAccountKey:   "key",
			ServiceAccountToken: "token",
			RetryWaitMin:        time.Millisecond,
			RetryWaitMax:        5 * time.Millisecond,
		})
		require.NoError(t, err)

		start := time.Now()

		_, err = client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)

		// The default waits would put two retries well past a second
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestComposeBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config *cloudsecure.Config
		want   string
	}{
		{
			name:   "bare host gets scheme, port and version defaults",
			config: &cloudsecure.Config{Endpoint: "cloud.example.com"},
			want:   "https://cloud.example.com:443/api/v1",
		},
		{
			name:   "explicit port wins over default",
			config: &cloudsecure.Config{Endpoint: "cloud.example.com:8443"},
			want:   "https://cloud.example.com:8443/api/v1",
		},
		{
			name:   "config port applies when endpoint has none",
			config: &cloudsecure.Config{Endpoint: "cloud.example.com", Port: "9443"},
			want:   "https://cloud.example.com:9443/api/v1",
		},
		{
			name:   "scheme preserved",
			config: &cloudsecure.Config{Endpoint: "http://localhost:8080"},
			want:   "http://localhost:8080/api/v1",
		},
		{
			name:   "api version override",
			config: &cloudsecure.Config{Endpoint: "cloud.example.com", APIVersion: "v2"},
			want:   "https://cloud.example.com:443/api/v2",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			baseURL, err := composeBaseURL(testCase.config)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, baseURL)
		})
	}
}

func TestClient_Resource(t *testing.T) {
	t.Parallel()
	t.Run("caches instances by name", func(t *testing.T) {
		t.Parallel()

		requests := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requests++
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		first, err := client.Resource("ip_lists")
		require.NoError(t, err)

		second, err := client.Resource("ip_lists")
		require.NoError(t, err)
		assert.Same(t, first, second)

		other, err := client.Resource("labels")
		require.NoError(t, err)
		assert.NotSame(t, first, other)

		// Lookup and instantiation are local
		assert.Equal(t, 0, requests)
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()

		requests := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requests++
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		_, err := client.Resource("widgets")
		require.Error(t, err)
		assert.True(t, cloudsecure.IsNotFound(err))
		assert.Equal(t, 0, requests)
	})
}

func TestClient_RawVerbs(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/inventory/metadata", request.URL.Path)
		_, _ = writer.Write([]byte(`{"clouds":["aws"]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	body, err := client.Get(context.Background(), "/inventory/metadata", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"clouds":["aws"]}`, string(body))
}

func TestClient_Connectivity(t *testing.T) {
	t.Parallel()
	t.Run("healthy server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/health", request.URL.Path)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		require.NoError(t, client.MustConnect(context.Background(), nil))
		assert.True(t, client.CheckConnection(context.Background(), nil))
	})

	t.Run("failing server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		err := client.MustConnect(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "checking connection")
		assert.False(t, client.CheckConnection(context.Background(), nil))
	})
}
