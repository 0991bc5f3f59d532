package client

import (
	"context"
	"fmt"

	"github.com/hopinc/hop-go/internal/http"
	"github.com/hopinc/hop-go/pkg/hop"
)

// RegistryClient implements hop.RegistryClient.
type RegistryClient struct {
	httpClient     *http.Client
	defaultProject string
}

// NewRegistryClient creates a new registry client.
func NewRegistryClient(httpClient *http.Client, defaultProject string) *RegistryClient {
	return &RegistryClient{
		httpClient:     httpClient,
		defaultProject: defaultProject,
	}
}

// ListImages implements hop.RegistryClient.ListImages.
func (c *RegistryClient) ListImages(ctx context.Context, projectID string) ([]string, error) {
	params, err := projectQueryParams(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/registry/images", params)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}

	result, err := unmarshalData[struct {
		Images []string `json:"images"`
	}](resp, "images")
	if err != nil {
		return nil, err
	}

	if result.Images == nil {
		return nil, &hop.DecodeError{Expected: "images"}
	}

	return result.Images, nil
}

// GetImageManifests implements hop.RegistryClient.GetImageManifests.
func (c *RegistryClient) GetImageManifests(ctx context.Context, image string) ([]hop.ImageManifest, error) {
	resp, err := c.httpClient.Get(ctx, "/registry/images/:image/manifests", map[string]string{
		"image": image,
	})
	if err != nil {
		return nil, fmt.Errorf("getting image manifests: %w", err)
	}

	result, err := unmarshalData[struct {
		Manifests []hop.ImageManifest `json:"manifests"`
	}](resp, "manifests")
	if err != nil {
		return nil, err
	}

	if result.Manifests == nil {
		return nil, &hop.DecodeError{Expected: "manifests"}
	}

	return result.Manifests, nil
}

// DeleteImage implements hop.RegistryClient.DeleteImage.
func (c *RegistryClient) DeleteImage(ctx context.Context, image string) error {
	_, err := c.httpClient.Delete(ctx, "/registry/images/:image", map[string]string{
		"image": image,
	})
	if err != nil {
		return fmt.Errorf("deleting image: %w", err)
	}

	return nil
}
