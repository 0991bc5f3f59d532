package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/hopinc/hop-go/pkg/hop"
	"github.com/stretchr/testify/require"
)

// writeSuccess writes a success envelope wrapping data.
func writeSuccess(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    data,
	})
	require.NoError(t, err)
}

// writeError writes an error envelope with the given status.
func writeError(t *testing.T, w http.ResponseWriter, status int, code, message string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
	require.NoError(t, err)
}

// newTestClient builds a client against a test server.
func newTestClient(t *testing.T, serverURL, token, projectID string) *Client {
	t.Helper()

	client, err := New(&hop.Config{
		Token:     token,
		BaseURL:   serverURL,
		ProjectID: projectID,
	})
	require.NoError(t, err)

	return client
}

// countingServer wraps a handler and counts how many requests reach it, for
// asserting that locally rejected operations dispatch nothing.
func countingServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *int64) {
	t.Helper()

	var calls int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return server, &calls
}
