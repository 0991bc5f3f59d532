// Package http implements the low-level request dispatcher shared by all
// namespaced resource clients: it resolves path templates, merges query
// parameters, attaches the authentication header for the session token, and
// parses the response envelope into typed results or typed errors.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/url"
	"time"

	"github.com/hopinc/hop-go/pkg/hop"
)

const defaultUserAgent = "hop-go"

// Logger interface for HTTP client logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request represents a single API request. Path may contain ":name"
// placeholders; Params supplies their values, and any entry the template
// does not consume becomes a query parameter. Entries with empty values are
// omitted from the query entirely.
type Request struct {
	Method string
	Path   string
	Params map[string]string
	Query  url.Values

	// Body is JSON-encoded when non-nil. RawBody, when set, takes
	// precedence and is sent verbatim with ContentType; the API expects
	// secret values as unwrapped text/plain, never JSON.
	Body        interface{}
	RawBody     []byte
	ContentType string

	Headers map[string]string
}

// Response represents an API response. Body is the raw payload; Data is the
// "data" field of the success envelope, nil when the response carried none
// (e.g. 204).
type Response struct {
	StatusCode int
	Headers    stdhttp.Header
	Body       []byte
	Data       json.RawMessage
}

// Client performs HTTP requests against the API. It holds no per-call
// mutable state, so concurrent dispatches through one Client are
// independent and need no locking. Each call is exactly one round trip:
// there is no retry, backoff, or deduplication here. Retrying is the
// caller's decision.
type Client struct {
	baseURL    string
	token      hop.Token
	httpClient *stdhttp.Client
	userAgent  string
	logger     Logger
	debug      bool
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets a logger for the client.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds each request when the caller's context carries no
// deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new API client. The zero Token is accepted and sends
// no authentication header, which the tests rely on.
func NewClient(baseURL string, token hop.Token, opts ...Option) *Client {
	client := &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &stdhttp.Client{},
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Token returns the session token the client dispatches with.
func (c *Client) Token() hop.Token {
	return c.token
}

// Do dispatches a single request and parses the response envelope.
//
// Failure modes map onto the error taxonomy in pkg/hop: a transport failure
// returns *hop.NetworkError, a non-2xx status returns *hop.APIError with
// whatever structured detail the server sent, and a success response whose
// envelope cannot be parsed returns *hop.DecodeError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, fullURL, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &hop.NetworkError{URL: fullURL, Err: err}
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &hop.NetworkError{URL: fullURL, Err: err}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         fullURL,
			"status_code": httpResp.StatusCode,
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	if httpResp.StatusCode < stdhttp.StatusOK || httpResp.StatusCode >= stdhttp.StatusMultipleChoices {
		return resp, hop.ParseAPIError(httpResp.StatusCode, body)
	}

	if len(body) == 0 || httpResp.StatusCode == stdhttp.StatusNoContent {
		return resp, nil
	}

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	err = json.Unmarshal(body, &envelope)
	if err != nil {
		return resp, &hop.DecodeError{Expected: "response envelope", Err: err}
	}

	// A 2xx status with success=false still carries the structured error.
	if !envelope.Success {
		apiErr := &hop.APIError{Status: httpResp.StatusCode}
		if envelope.Error != nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}

		return resp, apiErr
	}

	resp.Data = envelope.Data

	return resp, nil
}

// buildRequest resolves the path template, assembles the query string, and
// prepares headers and body. Every failure here happens before network I/O.
func (c *Client) buildRequest(ctx context.Context, req *Request) (*stdhttp.Request, string, error) {
	path, queryParams, err := ResolvePath(req.Path, req.Params)
	if err != nil {
		return nil, "", err
	}

	query := url.Values{}

	for key, values := range req.Query {
		for _, value := range values {
			if value != "" {
				query.Add(key, value)
			}
		}
	}

	for key, value := range queryParams {
		if value != "" {
			query.Set(key, value)
		}
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var (
		bodyReader  io.Reader
		contentType string
	)

	switch {
	case req.RawBody != nil:
		bodyReader = bytes.NewReader(req.RawBody)
		contentType = req.ContentType
	case req.Body != nil:
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", &hop.DecodeError{Expected: "request body", Err: err}
		}

		bodyReader = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	httpReq, err := stdhttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, "", &hop.NetworkError{URL: fullURL, Err: err}
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if value := c.token.AuthorizationValue(); value != "" {
		httpReq.Header.Set("Authorization", value)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, fullURL, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, params map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{Method: stdhttp.MethodGet, Path: path, Params: params})
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, params map[string]string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: stdhttp.MethodPost, Path: path, Params: params, Body: body})
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, params map[string]string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: stdhttp.MethodPut, Path: path, Params: params, Body: body})
}

// PutText performs a PUT request with a raw text/plain body. Secret values
// go through here: the server expects the literal value un-wrapped.
func (c *Client) PutText(ctx context.Context, path string, params map[string]string, value string) (*Response, error) {
	return c.Do(ctx, &Request{
		Method:      stdhttp.MethodPut,
		Path:        path,
		Params:      params,
		RawBody:     []byte(value),
		ContentType: "text/plain",
	})
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, params map[string]string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: stdhttp.MethodPatch, Path: path, Params: params, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, params map[string]string) (*Response, error) {
	return c.Do(ctx, &Request{Method: stdhttp.MethodDelete, Path: path, Params: params})
}
