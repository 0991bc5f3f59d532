// Package client implements the hop.Client interface. Each namespaced
// client is a thin layer over the shared dispatcher: it validates the
// token-kind/parameter combination locally, selects the endpoint, and
// decodes the typed result.
package client

import (
	"encoding/json"
	"errors"

	"github.com/hopinc/hop-go/internal/http"
	"github.com/hopinc/hop-go/pkg/hop"
)

// Static errors for err113 compliance.
var (
	ErrTokenRequired = errors.New("authentication token is required")
)

// Client implements the hop.Client interface.
type Client struct {
	httpClient     *http.Client
	token          hop.Token
	defaultProject string

	ignite   hop.IgniteClient
	projects hop.ProjectsClient
	registry hop.RegistryClient
	channels hop.ChannelsClient
	pipe     hop.PipeClient
	users    hop.UsersClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *hop.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// New creates a new API client. The token is classified here, once; an
// unrecognized secret fails construction.
func New(config *hop.Config) (*Client, error) {
	if config.Token == "" {
		return nil, ErrTokenRequired
	}

	token, err := hop.ParseToken(config.Token)
	if err != nil {
		return nil, err
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = hop.DefaultBaseURL
	}

	httpClient := http.NewClient(baseURL, token, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:     httpClient,
		token:          token,
		defaultProject: config.ProjectID,
	}

	client.initializeResourceClients(config.MessageValidator)

	return client, nil
}

// initializeResourceClients initializes all namespaced clients.
func (c *Client) initializeResourceClients(validator hop.MessageValidator) {
	c.ignite = NewIgniteClient(c.httpClient, c.defaultProject)
	c.projects = NewProjectsClient(c.httpClient, c.defaultProject)
	c.registry = NewRegistryClient(c.httpClient, c.defaultProject)
	c.channels = NewChannelsClient(c.httpClient, c.defaultProject, validator)
	c.pipe = NewPipeClient(c.httpClient, c.defaultProject)
	c.users = NewUsersClient(c.httpClient)
}

// Ignite implements hop.Client.Ignite.
func (c *Client) Ignite() hop.IgniteClient {
	return c.ignite
}

// Projects implements hop.Client.Projects.
func (c *Client) Projects() hop.ProjectsClient {
	return c.projects
}

// Registry implements hop.Client.Registry.
func (c *Client) Registry() hop.RegistryClient {
	return c.registry
}

// Channels implements hop.Client.Channels.
func (c *Client) Channels() hop.ChannelsClient {
	return c.channels
}

// Pipe implements hop.Client.Pipe.
func (c *Client) Pipe() hop.PipeClient {
	return c.pipe
}

// Users implements hop.Client.Users.
func (c *Client) Users() hop.UsersClient {
	return c.users
}

// Token implements hop.Client.Token.
func (c *Client) Token() hop.Token {
	return c.token
}

// unmarshalData decodes the envelope data field into the endpoint's declared
// shape. A missing field or a shape mismatch is a decode failure, never
// silently passed through.
func unmarshalData[T any](resp *http.Response, expected string) (T, error) {
	var out T

	if resp.Data == nil {
		return out, &hop.DecodeError{Expected: expected}
	}

	err := json.Unmarshal(resp.Data, &out)
	if err != nil {
		return out, &hop.DecodeError{Expected: expected, Err: err}
	}

	return out, nil
}

// effectiveProject merges a per-call project id with the client default.
func effectiveProject(projectID, defaultProject string) string {
	if projectID != "" {
		return projectID
	}

	return defaultProject
}

// projectQueryParams validates project scope and returns request params
// carrying the "project" query parameter. For project tokens with no
// explicit id the parameter is omitted entirely; the server infers the
// project from the token.
func projectQueryParams(token hop.Token, projectID, defaultProject string) (map[string]string, error) {
	effective := effectiveProject(projectID, defaultProject)

	err := hop.CheckProjectScope(token.Kind(), effective)
	if err != nil {
		return nil, err
	}

	params := map[string]string{}
	if effective != "" {
		params["project"] = effective
	}

	return params, nil
}

// projectPathValue validates project scope and returns the value for a
// ":project_id" path placeholder, using the @this sentinel for
// project-bound tokens.
func projectPathValue(token hop.Token, projectID, defaultProject string) (string, error) {
	return hop.ResolveProject(token.Kind(), effectiveProject(projectID, defaultProject))
}
