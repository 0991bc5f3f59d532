package hop

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPIError_StructuredBody(t *testing.T) {
	body := []byte(`{"success":false,"error":{"code":"deployment_not_found","message":"no such deployment"}}`)

	apiErr := ParseAPIError(http.StatusNotFound, body)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "deployment_not_found", apiErr.Code)
	assert.Equal(t, "no such deployment", apiErr.Message)
}

func TestParseAPIError_UnstructuredBody(t *testing.T) {
	apiErr := ParseAPIError(http.StatusBadGateway, []byte("upstream exploded"))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Code)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestAPIError_Error(t *testing.T) {
	withCode := &APIError{Status: 404, Code: "not_found", Message: "gone"}
	assert.Equal(t, "not_found: gone (status: 404)", withCode.Error())

	withoutCode := &APIError{Status: 500, Message: "boom"}
	assert.Equal(t, "api error: boom (status: 500)", withoutCode.Error())
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{Status: http.StatusNotFound}))
	assert.False(t, IsNotFound(&APIError{Status: http.StatusForbidden}))
	assert.False(t, IsNotFound(errors.New("plain")))

	assert.True(t, IsUnauthorized(&APIError{Status: http.StatusUnauthorized}))
	assert.True(t, IsForbidden(&APIError{Status: http.StatusForbidden}))

	// Helpers see through wrapping.
	wrapped := fmt.Errorf("getting deployment: %w", &APIError{Status: http.StatusNotFound})
	assert.True(t, IsNotFound(wrapped))
}

func TestIsAuthError(t *testing.T) {
	err := &AuthError{Kind: TokenKindBearer, Message: "project id is required"}
	assert.True(t, IsAuthError(err))
	assert.True(t, IsAuthError(fmt.Errorf("listing images: %w", err)))
	assert.False(t, IsAuthError(&APIError{Status: http.StatusUnauthorized}))
}

func TestIsNetworkError(t *testing.T) {
	underlying := errors.New("connection refused")
	err := &NetworkError{URL: "https://api.hop.io/v1/channels", Err: underlying}

	assert.True(t, IsNetworkError(err))
	assert.ErrorIs(t, err, underlying)
	assert.Contains(t, err.Error(), "https://api.hop.io/v1/channels")
}

func TestIsDecodeError(t *testing.T) {
	missing := &DecodeError{Expected: "deployment"}
	assert.True(t, IsDecodeError(missing))
	assert.Equal(t, "response is missing expected deployment", missing.Error())

	underlying := errors.New("unexpected end of JSON input")
	malformed := &DecodeError{Expected: "response envelope", Err: underlying}
	require.ErrorIs(t, malformed, underlying)
	assert.Contains(t, malformed.Error(), "response envelope")
}
