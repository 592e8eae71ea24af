package cloudsecure

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// APIError represents a failed exchange with the CloudSecure API. Message
// carries the aggregated, human-readable error text; StatusCode is zero for
// connection-level failures where no response was received.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// ValidationError represents a client-side precondition failure detected
// before any request is dispatched, such as an invalid policy version.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError represents a lookup for a resource name that is not in the
// registry.
type NotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such API object: %s", e.Name)
}

// ProtocolError represents a violation of the async collection protocol: a
// job that reported failure, or a poll response missing a mandatory header
// or field.
type ProtocolError struct {
	Message string
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return e.Message
}

// NewAPIError builds an APIError from a non-2xx response. The body is
// aggregated into one message: a JSON sequence contributes one line per
// element ("token: message" when both fields are present, the "error" field
// when present, otherwise the element verbatim), other JSON bodies are
// appended verbatim, and anything else falls back to the raw status text.
func NewAPIError(statusCode int, status string, body []byte) *APIError {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || !json.Valid(body) {
		return &APIError{StatusCode: statusCode, Message: status}
	}

	message := fmt.Sprintf("API call returned error code %d. Errors:", statusCode)

	var elements []json.RawMessage

	err := json.Unmarshal(body, &elements)
	if err != nil {
		return &APIError{StatusCode: statusCode, Message: message + "\n" + string(body)}
	}

	for _, element := range elements {
		message += "\n" + formatErrorElement(element)
	}

	return &APIError{StatusCode: statusCode, Message: message}
}

// formatErrorElement renders one element of a JSON error sequence.
func formatErrorElement(element json.RawMessage) string {
	var fields map[string]interface{}

	err := json.Unmarshal(element, &fields)
	if err != nil {
		return string(element)
	}

	token, hasToken := fields["token"]

	detail, hasMessage := fields["message"]
	if hasToken && hasMessage {
		return fmt.Sprintf("%v: %v", token, detail)
	}

	if errField, ok := fields["error"]; ok {
		return fmt.Sprintf("%v", errField)
	}

	return string(element)
}

// IsAPIError checks if the error is a failed API exchange.
func IsAPIError(err error) bool {
	apiErr := &APIError{}

	return errors.As(err, &apiErr)
}

// IsNotFound checks if the error is an unknown-resource lookup failure.
func IsNotFound(err error) bool {
	notFound := &NotFoundError{}

	return errors.As(err, &notFound)
}

// IsValidation checks if the error is a client-side precondition failure.
func IsValidation(err error) bool {
	validation := &ValidationError{}

	return errors.As(err, &validation)
}

// IsProtocol checks if the error is an async protocol violation.
func IsProtocol(err error) bool {
	protocol := &ProtocolError{}

	return errors.As(err, &protocol)
}
