package client

import (
	"context"
	"fmt"

	"github.com/hopinc/hop-go/internal/http"
	"github.com/hopinc/hop-go/pkg/hop"
)

// ProjectsClient implements hop.ProjectsClient.
type ProjectsClient struct {
	httpClient     *http.Client
	defaultProject string
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client, defaultProject string) *ProjectsClient {
	return &ProjectsClient{
		httpClient:     httpClient,
		defaultProject: defaultProject,
	}
}

// ListMembers implements hop.ProjectsClient.ListMembers.
func (c *ProjectsClient) ListMembers(ctx context.Context, projectID string) ([]hop.Member, error) {
	project, err := projectPathValue(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/projects/:project_id/members", map[string]string{
		"project_id": project,
	})
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}

	result, err := unmarshalData[struct {
		Members []hop.Member `json:"members"`
	}](resp, "members")
	if err != nil {
		return nil, err
	}

	if result.Members == nil {
		return nil, &hop.DecodeError{Expected: "members"}
	}

	return result.Members, nil
}

// GetCurrentMember implements hop.ProjectsClient.GetCurrentMember. The
// user-identity check runs first, so project tokens fail here regardless of
// which project id is supplied.
func (c *ProjectsClient) GetCurrentMember(ctx context.Context, projectID string) (*hop.Member, error) {
	token := c.httpClient.Token()

	err := hop.CheckUserScope(token.Kind())
	if err != nil {
		return nil, err
	}

	project, err := projectPathValue(token, projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/projects/:project_id/members/@me", map[string]string{
		"project_id": project,
	})
	if err != nil {
		return nil, fmt.Errorf("getting current member: %w", err)
	}

	result, err := unmarshalData[struct {
		Member *hop.Member `json:"project_member"`
	}](resp, "project_member")
	if err != nil {
		return nil, err
	}

	if result.Member == nil {
		return nil, &hop.DecodeError{Expected: "project_member"}
	}

	return result.Member, nil
}

// ListTokens implements hop.ProjectsClient.ListTokens.
func (c *ProjectsClient) ListTokens(ctx context.Context, projectID string) ([]hop.ProjectToken, error) {
	project, err := projectPathValue(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/projects/:project_id/tokens", map[string]string{
		"project_id": project,
	})
	if err != nil {
		return nil, fmt.Errorf("listing project tokens: %w", err)
	}

	result, err := unmarshalData[struct {
		Tokens []hop.ProjectToken `json:"project_tokens"`
	}](resp, "project_tokens")
	if err != nil {
		return nil, err
	}

	if result.Tokens == nil {
		return nil, &hop.DecodeError{Expected: "project_tokens"}
	}

	return result.Tokens, nil
}

// CreateToken implements hop.ProjectsClient.CreateToken.
func (c *ProjectsClient) CreateToken(ctx context.Context, projectID string, flags int) (*hop.ProjectToken, error) {
	project, err := projectPathValue(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/projects/:project_id/tokens", map[string]string{
		"project_id": project,
	}, map[string]int{"flags": flags})
	if err != nil {
		return nil, fmt.Errorf("creating project token: %w", err)
	}

	result, err := unmarshalData[struct {
		Token *hop.ProjectToken `json:"token"`
	}](resp, "token")
	if err != nil {
		return nil, err
	}

	if result.Token == nil {
		return nil, &hop.DecodeError{Expected: "token"}
	}

	return result.Token, nil
}

// DeleteToken implements hop.ProjectsClient.DeleteToken.
func (c *ProjectsClient) DeleteToken(ctx context.Context, projectID, tokenID string) error {
	project, err := projectPathValue(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, "/projects/:project_id/tokens/:token_id", map[string]string{
		"project_id": project,
		"token_id":   tokenID,
	})
	if err != nil {
		return fmt.Errorf("deleting project token: %w", err)
	}

	return nil
}

// ListSecrets implements hop.ProjectsClient.ListSecrets.
func (c *ProjectsClient) ListSecrets(ctx context.Context, projectID string) ([]hop.Secret, error) {
	project, err := projectPathValue(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/projects/:project_id/secrets", map[string]string{
		"project_id": project,
	})
	if err != nil {
		return nil, fmt.Errorf("listing secrets: %w", err)
	}

	result, err := unmarshalData[struct {
		Secrets []hop.Secret `json:"secrets"`
	}](resp, "secrets")
	if err != nil {
		return nil, err
	}

	if result.Secrets == nil {
		return nil, &hop.DecodeError{Expected: "secrets"}
	}

	return result.Secrets, nil
}

// SetSecret implements hop.ProjectsClient.SetSecret. The value is sent as a
// plain-text body so it reaches the server byte for byte.
func (c *ProjectsClient) SetSecret(ctx context.Context, projectID, name, value string) (*hop.Secret, error) {
	if name == "" {
		return nil, hop.ErrEmptySecretName
	}

	project, err := projectPathValue(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.PutText(ctx, "/projects/:project_id/secrets/:name", map[string]string{
		"project_id": project,
		"name":       name,
	}, value)
	if err != nil {
		return nil, fmt.Errorf("setting secret: %w", err)
	}

	result, err := unmarshalData[struct {
		Secret *hop.Secret `json:"secret"`
	}](resp, "secret")
	if err != nil {
		return nil, err
	}

	if result.Secret == nil {
		return nil, &hop.DecodeError{Expected: "secret"}
	}

	return result.Secret, nil
}

// DeleteSecret implements hop.ProjectsClient.DeleteSecret.
func (c *ProjectsClient) DeleteSecret(ctx context.Context, projectID, name string) error {
	if name == "" {
		return hop.ErrEmptySecretName
	}

	project, err := projectPathValue(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, "/projects/:project_id/secrets/:name", map[string]string{
		"project_id": project,
		"name":       name,
	})
	if err != nil {
		return fmt.Errorf("deleting secret: %w", err)
	}

	return nil
}

// ListWebhooks implements hop.ProjectsClient.ListWebhooks.
func (c *ProjectsClient) ListWebhooks(ctx context.Context, projectID string) ([]hop.Webhook, error) {
	project, err := projectPathValue(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/projects/:project_id/webhooks", map[string]string{
		"project_id": project,
	})
	if err != nil {
		return nil, fmt.Errorf("listing webhooks: %w", err)
	}

	result, err := unmarshalData[struct {
		Webhooks []hop.Webhook `json:"webhooks"`
	}](resp, "webhooks")
	if err != nil {
		return nil, err
	}

	if result.Webhooks == nil {
		return nil, &hop.DecodeError{Expected: "webhooks"}
	}

	return result.Webhooks, nil
}

// CreateWebhook implements hop.ProjectsClient.CreateWebhook.
func (c *ProjectsClient) CreateWebhook(ctx context.Context, projectID string, request *hop.WebhookCreateRequest) (*hop.Webhook, error) {
	project, err := projectPathValue(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/projects/:project_id/webhooks", map[string]string{
		"project_id": project,
	}, request)
	if err != nil {
		return nil, fmt.Errorf("creating webhook: %w", err)
	}

	result, err := unmarshalData[struct {
		Webhook *hop.Webhook `json:"webhook"`
	}](resp, "webhook")
	if err != nil {
		return nil, err
	}

	if result.Webhook == nil {
		return nil, &hop.DecodeError{Expected: "webhook"}
	}

	return result.Webhook, nil
}

// DeleteWebhook implements hop.ProjectsClient.DeleteWebhook.
func (c *ProjectsClient) DeleteWebhook(ctx context.Context, projectID, webhookID string) error {
	project, err := projectPathValue(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, "/projects/:project_id/webhooks/:webhook_id", map[string]string{
		"project_id": project,
		"webhook_id": webhookID,
	})
	if err != nil {
		return fmt.Errorf("deleting webhook: %w", err)
	}

	return nil
}

// RegenerateWebhookSecret implements hop.ProjectsClient.RegenerateWebhookSecret.
func (c *ProjectsClient) RegenerateWebhookSecret(ctx context.Context, projectID, webhookID string) (string, error) {
	project, err := projectPathValue(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Post(ctx, "/projects/:project_id/webhooks/:webhook_id/regenerate", map[string]string{
		"project_id": project,
		"webhook_id": webhookID,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("regenerating webhook secret: %w", err)
	}

	result, err := unmarshalData[struct {
		Secret string `json:"secret"`
	}](resp, "secret")
	if err != nil {
		return "", err
	}

	if result.Secret == "" {
		return "", &hop.DecodeError{Expected: "secret"}
	}

	return result.Secret, nil
}
