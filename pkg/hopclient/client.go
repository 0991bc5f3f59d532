package hopclient

import (
	"fmt"
	"strings"

	"github.com/hopinc/hop-go/internal/client"
	"github.com/hopinc/hop-go/pkg/hop"
)

// New creates a new Hop API client from a full configuration.
func New(config *hop.Config) (hop.Client, error) {
	if config == nil {
		return nil, hop.ErrConfigRequired
	}

	if config.Token == "" {
		return nil, hop.ErrTokenRequired
	}

	config.BaseURL = normalizeBaseURL(config.BaseURL)

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return apiClient, nil
}

// NewWithToken creates a client authenticated with the given secret and
// otherwise default configuration.
func NewWithToken(token string) (hop.Client, error) {
	return New(&hop.Config{Token: token})
}

// NewWithProject creates a client with a default project id for
// project-scoped operations. Required for personal access tokens and bearer
// tokens unless every call passes its own project id.
func NewWithProject(token, projectID string) (hop.Client, error) {
	return New(&hop.Config{Token: token, ProjectID: projectID})
}

// normalizeBaseURL trims a trailing slash and defaults the scheme to https.
func normalizeBaseURL(baseURL string) string {
	if baseURL == "" {
		return ""
	}

	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
