package hop

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Static errors for err113 compliance.
var (
	ErrInvalidToken      = errors.New("invalid or unrecognized authentication token")
	ErrMissingPathParam  = errors.New("missing path parameter")
	ErrConfigRequired    = errors.New("config is required")
	ErrTokenRequired     = errors.New("authentication token is required")
	ErrProjectIDRequired = errors.New("project id is required")
	ErrEmptySecretName   = errors.New("secret name is required")
	ErrEmptyChannelEvent = errors.New("channel message event is required")
)

// APIError represents a non-2xx response from the Hop API. It carries the
// HTTP status together with the structured error detail the server returned,
// when one was present.
type APIError struct {
	Status  int    `json:"-"       yaml:"-"`
	Code    string `json:"code"    yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (status: %d)", e.Code, e.Message, e.Status)
	}

	return fmt.Sprintf("api error: %s (status: %d)", e.Message, e.Status)
}

// AuthError is a local authentication policy violation: an operation was
// invoked with a token kind that cannot perform it, or with a required
// project id missing. It is always raised before any network I/O.
type AuthError struct {
	Kind    TokenKind
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("%s (token kind: %s)", e.Message, e.Kind)
}

// NetworkError represents a transport-level failure (DNS, connection
// refused, timeout, cancellation). It is surfaced verbatim and never
// retried by the client.
type NetworkError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError indicates that a response did not match the shape the
// endpoint declares, which usually means a client/server version mismatch.
// It is never silently coerced.
type DecodeError struct {
	Expected string
	Err      error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decoding %s: %v", e.Expected, e.Err)
	}

	return fmt.Sprintf("response is missing expected %s", e.Expected)
}

// Unwrap returns the underlying decode error, if any.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// errorEnvelope is the wire shape of a failed API response.
type errorEnvelope struct {
	Success bool `json:"success"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseAPIError builds an APIError from a response body and status. The body
// may or may not carry the structured error envelope; when it does not, the
// raw body becomes the message.
func ParseAPIError(status int, body []byte) *APIError {
	var envelope errorEnvelope

	err := json.Unmarshal(body, &envelope)
	if err == nil && envelope.Error != nil {
		return &APIError{
			Status:  status,
			Code:    envelope.Error.Code,
			Message: envelope.Error.Message,
		}
	}

	return &APIError{
		Status:  status,
		Message: http.StatusText(status),
	}
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound
	}

	return false
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized
	}

	return false
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusForbidden
	}

	return false
}

// IsAuthError checks if the error is a local authentication policy
// violation, raised before any request was dispatched.
func IsAuthError(err error) bool {
	authErr := &AuthError{}

	return errors.As(err, &authErr)
}

// IsNetworkError checks if the error is a transport-level failure.
func IsNetworkError(err error) bool {
	netErr := &NetworkError{}

	return errors.As(err, &netErr)
}

// IsDecodeError checks if the error is a response shape mismatch.
func IsDecodeError(err error) bool {
	decErr := &DecodeError{}

	return errors.As(err, &decErr)
}
