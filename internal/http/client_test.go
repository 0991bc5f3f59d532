package http

import (
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hopinc/hop-go/pkg/hop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseToken(t *testing.T, secret string) hop.Token {
	t.Helper()

	token, err := hop.ParseToken(secret)
	require.NoError(t, err)

	return token
}

type mockLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *mockLogger) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *mockLogger) Debug(msg string, fields map[string]interface{}) { l.log(msg) }
func (l *mockLogger) Info(msg string, fields map[string]interface{})  { l.log(msg) }
func (l *mockLogger) Warn(msg string, fields map[string]interface{})  { l.log(msg) }
func (l *mockLogger) Error(msg string, fields map[string]interface{}) { l.log(msg) }

func TestClient_Do_ParsesEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		assert.Equal(t, "/ignite/deployments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		_, _ = w.Write([]byte(`{"success":true,"data":{"deployments":[{"id":"deployment_1"}]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, mustParseToken(t, "ptk_secret"))

	resp, err := client.Get(context.Background(), "/ignite/deployments", nil)
	require.NoError(t, err)
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"deployments":[{"id":"deployment_1"}]}`, string(resp.Data))
}

func TestClient_Do_AuthorizationHeaderPerKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		secret   string
		expected string
	}{
		{"project token sent raw", "ptk_abc123", "ptk_abc123"},
		{"personal token sent raw", "pat_abc123", "pat_abc123"},
		{"bearer token uses scheme", "bearer_xyz", "Bearer bearer_xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
				assert.Equal(t, tt.expected, r.Header.Get("Authorization"))
				_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
			}))
			defer server.Close()

			client := NewClient(server.URL, mustParseToken(t, tt.secret))

			_, err := client.Get(context.Background(), "/users/@me", nil)
			require.NoError(t, err)
		})
	}
}

func TestClient_Do_ZeroTokenSendsNoHeader(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		_, present := r.Header["Authorization"]
		assert.False(t, present)
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, hop.Token{})

	_, err := client.Get(context.Background(), "/health", nil)
	require.NoError(t, err)
}

func TestClient_Do_OmitsEmptyQueryValues(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		assert.Equal(t, "project_123", r.URL.Query().Get("project"))
		assert.False(t, r.URL.Query().Has("name"))
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, mustParseToken(t, "ptk_secret"))

	_, err := client.Do(context.Background(), &Request{
		Method: stdhttp.MethodGet,
		Path:   "/ignite/deployments/search",
		Params: map[string]string{"project": "project_123", "name": ""},
		Query:  url.Values{"filter": {""}},
	})
	require.NoError(t, err)
}

func TestClient_Do_JSONBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "api", body["name"])

		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, mustParseToken(t, "ptk_secret"))

	_, err := client.Post(context.Background(), "/ignite/deployments", nil, map[string]string{"name": "api"})
	require.NoError(t, err)
}

func TestClient_PutText_SendsRawBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, `value with "quotes" and {braces}`, string(body))

		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, mustParseToken(t, "ptk_secret"))

	_, err := client.PutText(context.Background(), "/projects/@this/secrets/KEY", nil, `value with "quotes" and {braces}`)
	require.NoError(t, err)
}

func TestClient_Do_MissingPathParamFailsBeforeDispatch(t *testing.T) {
	t.Parallel()

	var calls int64

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		atomic.AddInt64(&calls, 1)
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, mustParseToken(t, "ptk_secret"))

	_, err := client.Get(context.Background(), "/ignite/deployments/:deployment_id", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, hop.ErrMissingPathParam)
	assert.EqualValues(t, 0, atomic.LoadInt64(&calls))
}

func TestClient_Do_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusForbidden)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"forbidden","message":"not allowed"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, mustParseToken(t, "ptk_secret"))

	_, err := client.Get(context.Background(), "/admin", nil)
	require.Error(t, err)
	assert.True(t, hop.IsForbidden(err))

	apiErr := &hop.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "forbidden", apiErr.Code)
	assert.Equal(t, "not allowed", apiErr.Message)
}

func TestClient_Do_SuccessFalseEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		// 200 with a failed envelope still surfaces the structured error.
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"rate_limited","message":"slow down"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, mustParseToken(t, "ptk_secret"))

	_, err := client.Get(context.Background(), "/channels", nil)
	require.Error(t, err)

	apiErr := &hop.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "rate_limited", apiErr.Code)
}

func TestClient_Do_EmptyBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, mustParseToken(t, "ptk_secret"))

	resp, err := client.Delete(context.Background(), "/ignite/deployments/deployment_1", nil)
	require.NoError(t, err)
	assert.Nil(t, resp.Data)
}

func TestClient_Do_MalformedEnvelope(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := NewClient(server.URL, mustParseToken(t, "ptk_secret"))

	_, err := client.Get(context.Background(), "/channels", nil)
	require.Error(t, err)
	assert.True(t, hop.IsDecodeError(err))
}

func TestClient_Do_NetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {}))
	server.Close()

	client := NewClient(server.URL, mustParseToken(t, "ptk_secret"))

	_, err := client.Get(context.Background(), "/channels", nil)
	require.Error(t, err)
	assert.True(t, hop.IsNetworkError(err))
}

func TestClient_Do_SingleAttempt(t *testing.T) {
	t.Parallel()

	var calls int64

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(stdhttp.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"internal","message":"boom"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, mustParseToken(t, "ptk_secret"))

	_, err := client.Get(context.Background(), "/channels", nil)
	require.Error(t, err)
	// A failed request is dispatched exactly once; retrying is the caller's
	// decision.
	assert.EqualValues(t, 1, atomic.LoadInt64(&calls))
}

func TestClient_Do_CustomHeadersAndUserAgent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		assert.Equal(t, "hop-cli/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "trace-123", r.Header.Get("X-Trace-Id"))
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, mustParseToken(t, "ptk_secret"), WithUserAgent("hop-cli/1.0"))

	_, err := client.Do(context.Background(), &Request{
		Method:  stdhttp.MethodGet,
		Path:    "/channels",
		Headers: map[string]string{"X-Trace-Id": "trace-123"},
	})
	require.NoError(t, err)
}

func TestClient_Do_DebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	}))
	defer server.Close()

	logger := &mockLogger{}
	client := NewClient(server.URL, mustParseToken(t, "ptk_secret"), WithLogger(logger), WithDebug(true))

	_, err := client.Get(context.Background(), "/channels", nil)
	require.NoError(t, err)

	assert.Contains(t, logger.messages, "HTTP Request")
	assert.Contains(t, logger.messages, "HTTP Response")
}

func TestClient_Do_ContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL, mustParseToken(t, "ptk_secret"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "/channels", nil)
	require.Error(t, err)
	assert.True(t, hop.IsNetworkError(err))
	assert.ErrorIs(t, err, context.Canceled)
}
