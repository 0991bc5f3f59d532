package client

import (
	"context"
	"fmt"

	"github.com/hopinc/hop-go/internal/http"
	"github.com/hopinc/hop-go/pkg/hop"
)

// UsersClient implements hop.UsersClient. Every operation requires a user
// identity, so the scope check runs before any request is dispatched.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// GetMe implements hop.UsersClient.GetMe.
func (c *UsersClient) GetMe(ctx context.Context) (*hop.Me, error) {
	err := hop.CheckUserScope(c.httpClient.Token().Kind())
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/users/@me", nil)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	me, err := unmarshalData[hop.Me](resp, "me")
	if err != nil {
		return nil, err
	}

	return &me, nil
}

// ListPersonalTokens implements hop.UsersClient.ListPersonalTokens.
func (c *UsersClient) ListPersonalTokens(ctx context.Context) ([]hop.PersonalToken, error) {
	err := hop.CheckUserScope(c.httpClient.Token().Kind())
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/users/@me/pats", nil)
	if err != nil {
		return nil, fmt.Errorf("listing personal tokens: %w", err)
	}

	result, err := unmarshalData[struct {
		Pats []hop.PersonalToken `json:"pats"`
	}](resp, "pats")
	if err != nil {
		return nil, err
	}

	if result.Pats == nil {
		return nil, &hop.DecodeError{Expected: "pats"}
	}

	return result.Pats, nil
}

// CreatePersonalToken implements hop.UsersClient.CreatePersonalToken.
func (c *UsersClient) CreatePersonalToken(ctx context.Context) (*hop.PersonalToken, error) {
	err := hop.CheckUserScope(c.httpClient.Token().Kind())
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/users/@me/pats", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("creating personal token: %w", err)
	}

	result, err := unmarshalData[struct {
		Pat *hop.PersonalToken `json:"pat"`
	}](resp, "pat")
	if err != nil {
		return nil, err
	}

	if result.Pat == nil {
		return nil, &hop.DecodeError{Expected: "pat"}
	}

	return result.Pat, nil
}

// DeletePersonalToken implements hop.UsersClient.DeletePersonalToken.
func (c *UsersClient) DeletePersonalToken(ctx context.Context, tokenID string) error {
	err := hop.CheckUserScope(c.httpClient.Token().Kind())
	if err != nil {
		return err
	}

	_, err = c.httpClient.Delete(ctx, "/users/@me/pats/:token_id", map[string]string{
		"token_id": tokenID,
	})
	if err != nil {
		return fmt.Errorf("deleting personal token: %w", err)
	}

	return nil
}
