package hopclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hopinc/hop-go/pkg/hop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, hop.ErrConfigRequired)
}

func TestNew_MissingToken(t *testing.T) {
	_, err := New(&hop.Config{})
	assert.ErrorIs(t, err, hop.ErrTokenRequired)
}

func TestNew_InvalidToken(t *testing.T) {
	_, err := NewWithToken("sk_live_notours")
	assert.ErrorIs(t, err, hop.ErrInvalidToken)
}

func TestNewWithToken(t *testing.T) {
	cli, err := NewWithToken("ptk_abc123")
	require.NoError(t, err)
	assert.Equal(t, hop.TokenKindProject, cli.Token().Kind())
}

func TestNewWithProject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "project_123", r.URL.Query().Get("project"))

		err := json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"deployments": []hop.Deployment{}},
		})
		require.NoError(t, err)
	}))
	defer server.Close()

	cli, err := New(&hop.Config{
		Token:     "pat_abc123",
		BaseURL:   server.URL,
		ProjectID: "project_123",
	})
	require.NoError(t, err)

	_, err = cli.Ignite().ListDeployments(context.Background(), "")
	require.NoError(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty stays empty", "", ""},
		{"trailing slash trimmed", "https://api.hop.io/v1/", "https://api.hop.io/v1"},
		{"scheme added", "api.hop.io/v1", "https://api.hop.io/v1"},
		{"http preserved", "http://localhost:4000", "http://localhost:4000"},
		{"already normal", "https://api.hop.io/v1", "https://api.hop.io/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeBaseURL(tt.input))
		})
	}
}
