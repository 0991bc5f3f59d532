package client

import (
	"context"
	"fmt"

	"github.com/hopinc/hop-go/internal/http"
	"github.com/hopinc/hop-go/pkg/hop"
)

// PipeClient implements hop.PipeClient.
type PipeClient struct {
	httpClient     *http.Client
	defaultProject string
}

// NewPipeClient creates a new pipe client.
func NewPipeClient(httpClient *http.Client, defaultProject string) *PipeClient {
	return &PipeClient{
		httpClient:     httpClient,
		defaultProject: defaultProject,
	}
}

// ListRooms implements hop.PipeClient.ListRooms.
func (c *PipeClient) ListRooms(ctx context.Context, projectID string) ([]hop.Room, error) {
	params, err := projectQueryParams(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/pipe/rooms", params)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}

	result, err := unmarshalData[struct {
		Rooms []hop.Room `json:"rooms"`
	}](resp, "rooms")
	if err != nil {
		return nil, err
	}

	if result.Rooms == nil {
		return nil, &hop.DecodeError{Expected: "rooms"}
	}

	return result.Rooms, nil
}

// CreateRoom implements hop.PipeClient.CreateRoom.
func (c *PipeClient) CreateRoom(ctx context.Context, projectID string, request *hop.RoomCreateRequest) (*hop.Room, error) {
	params, err := projectQueryParams(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/pipe/rooms", params, request)
	if err != nil {
		return nil, fmt.Errorf("creating room: %w", err)
	}

	result, err := unmarshalData[struct {
		Room *hop.Room `json:"room"`
	}](resp, "room")
	if err != nil {
		return nil, err
	}

	if result.Room == nil {
		return nil, &hop.DecodeError{Expected: "room"}
	}

	return result.Room, nil
}

// DeleteRoom implements hop.PipeClient.DeleteRoom.
func (c *PipeClient) DeleteRoom(ctx context.Context, roomID string) error {
	_, err := c.httpClient.Delete(ctx, "/pipe/rooms/:room_id", map[string]string{
		"room_id": roomID,
	})
	if err != nil {
		return fmt.Errorf("deleting room: %w", err)
	}

	return nil
}
