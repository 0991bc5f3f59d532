package client

import (
	"context"
	"fmt"

	"github.com/hopinc/hop-go/internal/http"
	"github.com/hopinc/hop-go/pkg/hop"
)

// ChannelsClient implements hop.ChannelsClient.
type ChannelsClient struct {
	httpClient     *http.Client
	defaultProject string
	validator      hop.MessageValidator
}

// NewChannelsClient creates a new channels client. The validator may be nil,
// in which case messages are published without local validation.
func NewChannelsClient(httpClient *http.Client, defaultProject string, validator hop.MessageValidator) *ChannelsClient {
	return &ChannelsClient{
		httpClient:     httpClient,
		defaultProject: defaultProject,
		validator:      validator,
	}
}

// validateMessage applies the configured validator to an outgoing message.
func (c *ChannelsClient) validateMessage(event string, data any) error {
	if event == "" {
		return hop.ErrEmptyChannelEvent
	}

	if c.validator == nil {
		return nil
	}

	err := c.validator(event, data)
	if err != nil {
		return fmt.Errorf("validating message: %w", err)
	}

	return nil
}

// List implements hop.ChannelsClient.List.
func (c *ChannelsClient) List(ctx context.Context, projectID string) ([]hop.Channel, error) {
	params, err := projectQueryParams(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/channels", params)
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}

	result, err := unmarshalData[struct {
		Channels []hop.Channel `json:"channels"`
	}](resp, "channels")
	if err != nil {
		return nil, err
	}

	if result.Channels == nil {
		return nil, &hop.DecodeError{Expected: "channels"}
	}

	return result.Channels, nil
}

// Get implements hop.ChannelsClient.Get.
func (c *ChannelsClient) Get(ctx context.Context, channelID string) (*hop.Channel, error) {
	resp, err := c.httpClient.Get(ctx, "/channels/:channel_id", map[string]string{
		"channel_id": channelID,
	})
	if err != nil {
		return nil, fmt.Errorf("getting channel: %w", err)
	}

	result, err := unmarshalData[struct {
		Channel *hop.Channel `json:"channel"`
	}](resp, "channel")
	if err != nil {
		return nil, err
	}

	if result.Channel == nil {
		return nil, &hop.DecodeError{Expected: "channel"}
	}

	return result.Channel, nil
}

// Create implements hop.ChannelsClient.Create. A non-empty channelID requests
// that exact id via PUT; an empty one lets the platform assign it via POST.
func (c *ChannelsClient) Create(ctx context.Context, projectID string, channelType hop.ChannelType, channelID string, state map[string]any) (*hop.Channel, error) {
	params, err := projectQueryParams(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"type": channelType,
	}
	if state != nil {
		body["state"] = state
	}

	var resp *http.Response

	if channelID == "" {
		resp, err = c.httpClient.Post(ctx, "/channels", params, body)
	} else {
		params["channel_id"] = channelID
		resp, err = c.httpClient.Put(ctx, "/channels/:channel_id", params, body)
	}

	if err != nil {
		return nil, fmt.Errorf("creating channel: %w", err)
	}

	result, err := unmarshalData[struct {
		Channel *hop.Channel `json:"channel"`
	}](resp, "channel")
	if err != nil {
		return nil, err
	}

	if result.Channel == nil {
		return nil, &hop.DecodeError{Expected: "channel"}
	}

	return result.Channel, nil
}

// Delete implements hop.ChannelsClient.Delete.
func (c *ChannelsClient) Delete(ctx context.Context, channelID string) error {
	_, err := c.httpClient.Delete(ctx, "/channels/:channel_id", map[string]string{
		"channel_id": channelID,
	})
	if err != nil {
		return fmt.Errorf("deleting channel: %w", err)
	}

	return nil
}

// PublishMessage implements hop.ChannelsClient.PublishMessage.
func (c *ChannelsClient) PublishMessage(ctx context.Context, channelID, event string, data any) error {
	err := c.validateMessage(event, data)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Post(ctx, "/channels/:channel_id/messages", map[string]string{
		"channel_id": channelID,
	}, map[string]any{"e": event, "d": data})
	if err != nil {
		return fmt.Errorf("publishing message: %w", err)
	}

	return nil
}

// SubscribeToken implements hop.ChannelsClient.SubscribeToken.
func (c *ChannelsClient) SubscribeToken(ctx context.Context, channelID, token string) error {
	_, err := c.httpClient.Put(ctx, "/channels/:channel_id/subscribers/:token", map[string]string{
		"channel_id": channelID,
		"token":      token,
	}, nil)
	if err != nil {
		return fmt.Errorf("subscribing token: %w", err)
	}

	return nil
}

// CreateToken implements hop.ChannelsClient.CreateToken.
func (c *ChannelsClient) CreateToken(ctx context.Context, projectID string, state map[string]any) (*hop.ChannelToken, error) {
	params, err := projectQueryParams(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	body := map[string]any{}
	if state != nil {
		body["state"] = state
	}

	resp, err := c.httpClient.Post(ctx, "/channels/tokens", params, body)
	if err != nil {
		return nil, fmt.Errorf("creating channel token: %w", err)
	}

	result, err := unmarshalData[struct {
		Token *hop.ChannelToken `json:"token"`
	}](resp, "token")
	if err != nil {
		return nil, err
	}

	if result.Token == nil {
		return nil, &hop.DecodeError{Expected: "token"}
	}

	return result.Token, nil
}

// GetToken implements hop.ChannelsClient.GetToken.
func (c *ChannelsClient) GetToken(ctx context.Context, token string) (*hop.ChannelToken, error) {
	resp, err := c.httpClient.Get(ctx, "/channels/tokens/:token", map[string]string{
		"token": token,
	})
	if err != nil {
		return nil, fmt.Errorf("getting channel token: %w", err)
	}

	result, err := unmarshalData[struct {
		Token *hop.ChannelToken `json:"token"`
	}](resp, "token")
	if err != nil {
		return nil, err
	}

	if result.Token == nil {
		return nil, &hop.DecodeError{Expected: "token"}
	}

	return result.Token, nil
}

// SetTokenState implements hop.ChannelsClient.SetTokenState.
func (c *ChannelsClient) SetTokenState(ctx context.Context, token string, state map[string]any) (*hop.ChannelToken, error) {
	resp, err := c.httpClient.Patch(ctx, "/channels/tokens/:token", map[string]string{
		"token": token,
	}, map[string]any{"state": state})
	if err != nil {
		return nil, fmt.Errorf("setting channel token state: %w", err)
	}

	result, err := unmarshalData[struct {
		Token *hop.ChannelToken `json:"token"`
	}](resp, "token")
	if err != nil {
		return nil, err
	}

	if result.Token == nil {
		return nil, &hop.DecodeError{Expected: "token"}
	}

	return result.Token, nil
}

// PublishDirect implements hop.ChannelsClient.PublishDirect.
func (c *ChannelsClient) PublishDirect(ctx context.Context, token, event string, data any) error {
	err := c.validateMessage(event, data)
	if err != nil {
		return err
	}

	_, err = c.httpClient.Post(ctx, "/channels/tokens/:token/messages", map[string]string{
		"token": token,
	}, map[string]any{"e": event, "d": data})
	if err != nil {
		return fmt.Errorf("publishing direct message: %w", err)
	}

	return nil
}
