package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_GetCollection(t *testing.T) {
	t.Parallel()
	t.Run("polls until done then fetches the result", func(t *testing.T) {
		t.Parallel()

		polls := 0

		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/traffic_flows", func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "respond-async", request.Header.Get("Prefer"))

			writer.Header().Set("Location", "/jobs/42")
			writer.Header().Set("Retry-After", "0")
			writer.WriteHeader(http.StatusAccepted)
		})
		mux.HandleFunc("/api/v1/jobs/42", func(writer http.ResponseWriter, request *http.Request) {
			polls++
			if polls < 3 {
				_ = json.NewEncoder(writer).Encode(map[string]interface{}{"status": "running"})

				return
			}

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"status": "done",
				"result": map[string]string{"href": "/collections/7"},
			})
		})
		mux.HandleFunc("/api/v1/collections/7", func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(`[{"src":"10.0.0.1"}]`))
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		client := newTestClient(server.URL)

		body, err := client.GetCollection(context.Background(), "/traffic_flows", nil)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"src":"10.0.0.1"}]`, string(body))
		assert.Equal(t, 3, polls)
	})

	t.Run("does not mutate caller headers", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/traffic_flows", func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "respond-async", request.Header.Get("Prefer"))
			assert.Equal(t, "yes", request.Header.Get("X-Custom"))

			writer.Header().Set("Location", "/jobs/1")
			writer.Header().Set("Retry-After", "0")
			writer.WriteHeader(http.StatusAccepted)
		})
		mux.HandleFunc("/api/v1/jobs/1", func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"status": "completed",
				"result": "/collections/2",
			})
		})
		mux.HandleFunc("/api/v1/collections/2", func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(`[]`))
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		client := newTestClient(server.URL)

		opts := &cloudsecure.RequestOptions{Headers: map[string]string{"X-Custom": "yes"}}

		_, err := client.GetCollection(context.Background(), "/traffic_flows", opts)
		require.NoError(t, err)
		assert.NotContains(t, opts.Headers, "Prefer")
		assert.Equal(t, map[string]string{"X-Custom": "yes"}, opts.Headers)
	})

	t.Run("completed job carries the href directly", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/traffic_flows", func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Location", "/jobs/1")
			writer.Header().Set("Retry-After", "0")
			writer.WriteHeader(http.StatusAccepted)
		})
		mux.HandleFunc("/api/v1/jobs/1", func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"status": "completed",
				"result": "/collections/9",
			})
		})
		mux.HandleFunc("/api/v1/collections/9", func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte(`[]`))
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		client := newTestClient(server.URL)

		body, err := client.GetCollection(context.Background(), "/traffic_flows", nil)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(body))
	})

	t.Run("failed job reports the server message", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/traffic_flows", func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Location", "/jobs/1")
			writer.Header().Set("Retry-After", "0")
			writer.WriteHeader(http.StatusAccepted)
		})
		mux.HandleFunc("/api/v1/jobs/1", func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"status": "failed",
				"result": map[string]string{"message": "boom"},
			})
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		client := newTestClient(server.URL)

		_, err := client.GetCollection(context.Background(), "/traffic_flows", nil)
		require.Error(t, err)
		assert.True(t, cloudsecure.IsProtocol(err))
		assert.Contains(t, err.Error(), "async collection job failed: boom")
	})

	t.Run("missing Location header", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Retry-After", "1")
			writer.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		_, err := client.GetCollection(context.Background(), "/traffic_flows", nil)
		require.Error(t, err)
		assert.True(t, cloudsecure.IsProtocol(err))
		assert.Contains(t, err.Error(), "Location")
	})

	t.Run("missing Retry-After header", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Location", "/jobs/1")
			writer.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		client := newTestClient(server.URL)

		_, err := client.GetCollection(context.Background(), "/traffic_flows", nil)
		require.Error(t, err)
		assert.True(t, cloudsecure.IsProtocol(err))
		assert.Contains(t, err.Error(), "Retry-After")
	})

	t.Run("cancellation stops a pending job", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/traffic_flows", func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Location", "/jobs/1")
			writer.Header().Set("Retry-After", "10")
			writer.WriteHeader(http.StatusAccepted)
		})
		mux.HandleFunc("/api/v1/jobs/1", func(writer http.ResponseWriter, request *http.Request) {
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{"status": "running"})
		})

		server := httptest.NewServer(mux)
		defer server.Close()

		client := newTestClient(server.URL)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := client.GetCollection(ctx, "/traffic_flows", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
