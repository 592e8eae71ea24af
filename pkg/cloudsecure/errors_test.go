package cloudsecure_test

import (
	"fmt"
	"testing"

	"github.com/cloudsec-io/cloudsecure/pkg/cloudsecure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIError(t *testing.T) {
	t.Parallel()
	t.Run("JSON error sequence", func(t *testing.T) {
		t.Parallel()

		body := []byte(`[{"token":"T1","message":"bad"},{"error":"E2"},{"detail":"other"}]`)

		apiErr := cloudsecure.NewAPIError(406, "406 Not Acceptable", body)
		require.NotNil(t, apiErr)
		assert.Equal(t, 406, apiErr.StatusCode)
		assert.Contains(t, apiErr.Message, "API call returned error code 406. Errors:")
		assert.Contains(t, apiErr.Message, "T1: bad")
		assert.Contains(t, apiErr.Message, "E2")
		assert.Contains(t, apiErr.Message, `{"detail":"other"}`)
	})

	t.Run("non-sequence JSON body", func(t *testing.T) {
		t.Parallel()

		apiErr := cloudsecure.NewAPIError(422, "422 Unprocessable Entity", []byte(`{"message":"nope"}`))
		assert.Equal(t, 422, apiErr.StatusCode)
		assert.Contains(t, apiErr.Message, "API call returned error code 422. Errors:")
		assert.Contains(t, apiErr.Message, `{"message":"nope"}`)
	})

	t.Run("non-JSON body falls back to status text", func(t *testing.T) {
		t.Parallel()

		apiErr := cloudsecure.NewAPIError(502, "502 Bad Gateway", []byte("<html>upstream died</html>"))
		assert.Equal(t, 502, apiErr.StatusCode)
		assert.Equal(t, "502 Bad Gateway", apiErr.Message)
	})

	t.Run("empty body falls back to status text", func(t *testing.T) {
		t.Parallel()

		apiErr := cloudsecure.NewAPIError(500, "500 Internal Server Error", nil)
		assert.Equal(t, "500 Internal Server Error", apiErr.Message)
	})
}

func TestErrorClassifiers(t *testing.T) {
	t.Parallel()

	apiErr := &cloudsecure.APIError{StatusCode: 503, Message: "unavailable"}
	notFound := &cloudsecure.NotFoundError{Name: "widgets"}
	validation := &cloudsecure.ValidationError{Message: "invalid policy version: staging"}
	protocol := &cloudsecure.ProtocolError{Message: "missing Location header"}

	assert.True(t, cloudsecure.IsAPIError(apiErr))
	assert.True(t, cloudsecure.IsAPIError(fmt.Errorf("wrapped: %w", apiErr)))
	assert.False(t, cloudsecure.IsAPIError(notFound))

	assert.True(t, cloudsecure.IsNotFound(notFound))
	assert.False(t, cloudsecure.IsNotFound(apiErr))
	assert.Equal(t, "no such API object: widgets", notFound.Error())

	assert.True(t, cloudsecure.IsValidation(validation))
	assert.False(t, cloudsecure.IsValidation(protocol))

	assert.True(t, cloudsecure.IsProtocol(protocol))
	assert.False(t, cloudsecure.IsProtocol(validation))
}
