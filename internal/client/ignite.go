package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hopinc/hop-go/internal/http"
	"github.com/hopinc/hop-go/pkg/hop"
)

// IgniteClient implements hop.IgniteClient.
type IgniteClient struct {
	httpClient     *http.Client
	defaultProject string
}

// NewIgniteClient creates a new ignite client.
func NewIgniteClient(httpClient *http.Client, defaultProject string) *IgniteClient {
	return &IgniteClient{
		httpClient:     httpClient,
		defaultProject: defaultProject,
	}
}

// ListDeployments implements hop.IgniteClient.ListDeployments.
func (c *IgniteClient) ListDeployments(ctx context.Context, projectID string) ([]hop.Deployment, error) {
	params, err := projectQueryParams(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "/ignite/deployments", params)
	if err != nil {
		return nil, fmt.Errorf("listing deployments: %w", err)
	}

	result, err := unmarshalData[struct {
		Deployments []hop.Deployment `json:"deployments"`
	}](resp, "deployments")
	if err != nil {
		return nil, err
	}

	if result.Deployments == nil {
		return nil, &hop.DecodeError{Expected: "deployments"}
	}

	return result.Deployments, nil
}

// GetDeployment implements hop.IgniteClient.GetDeployment.
func (c *IgniteClient) GetDeployment(ctx context.Context, deploymentID string) (*hop.Deployment, error) {
	resp, err := c.httpClient.Get(ctx, "/ignite/deployments/:deployment_id", map[string]string{
		"deployment_id": deploymentID,
	})
	if err != nil {
		return nil, fmt.Errorf("getting deployment: %w", err)
	}

	result, err := unmarshalData[struct {
		Deployment *hop.Deployment `json:"deployment"`
	}](resp, "deployment")
	if err != nil {
		return nil, err
	}

	if result.Deployment == nil {
		return nil, &hop.DecodeError{Expected: "deployment"}
	}

	return result.Deployment, nil
}

// GetDeploymentByName implements hop.IgniteClient.GetDeploymentByName.
func (c *IgniteClient) GetDeploymentByName(ctx context.Context, projectID, name string) (*hop.Deployment, error) {
	params, err := projectQueryParams(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	params["name"] = name

	resp, err := c.httpClient.Get(ctx, "/ignite/deployments/search", params)
	if err != nil {
		return nil, fmt.Errorf("getting deployment by name: %w", err)
	}

	result, err := unmarshalData[struct {
		Deployment *hop.Deployment `json:"deployment"`
	}](resp, "deployment")
	if err != nil {
		return nil, err
	}

	if result.Deployment == nil {
		return nil, &hop.DecodeError{Expected: "deployment"}
	}

	return result.Deployment, nil
}

// CreateDeployment implements hop.IgniteClient.CreateDeployment.
func (c *IgniteClient) CreateDeployment(ctx context.Context, projectID string, config *hop.DeploymentConfig) (*hop.Deployment, error) {
	params, err := projectQueryParams(c.httpClient.Token(), projectID, c.defaultProject)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, "/ignite/deployments", params, config)
	if err != nil {
		return nil, fmt.Errorf("creating deployment: %w", err)
	}

	result, err := unmarshalData[struct {
		Deployment *hop.Deployment `json:"deployment"`
	}](resp, "deployment")
	if err != nil {
		return nil, err
	}

	if result.Deployment == nil {
		return nil, &hop.DecodeError{Expected: "deployment"}
	}

	return result.Deployment, nil
}

// DeleteDeployment implements hop.IgniteClient.DeleteDeployment.
func (c *IgniteClient) DeleteDeployment(ctx context.Context, deploymentID string) error {
	_, err := c.httpClient.Delete(ctx, "/ignite/deployments/:deployment_id", map[string]string{
		"deployment_id": deploymentID,
	})
	if err != nil {
		return fmt.Errorf("deleting deployment: %w", err)
	}

	return nil
}

// ListContainers implements hop.IgniteClient.ListContainers.
func (c *IgniteClient) ListContainers(ctx context.Context, deploymentID string) ([]hop.Container, error) {
	resp, err := c.httpClient.Get(ctx, "/ignite/deployments/:deployment_id/containers", map[string]string{
		"deployment_id": deploymentID,
	})
	if err != nil {
		return nil, fmt.Errorf("listing containers: %w", err)
	}

	result, err := unmarshalData[struct {
		Containers []hop.Container `json:"containers"`
	}](resp, "containers")
	if err != nil {
		return nil, err
	}

	if result.Containers == nil {
		return nil, &hop.DecodeError{Expected: "containers"}
	}

	return result.Containers, nil
}

// CreateContainer implements hop.IgniteClient.CreateContainer.
func (c *IgniteClient) CreateContainer(ctx context.Context, deploymentID string) (*hop.Container, error) {
	resp, err := c.httpClient.Post(ctx, "/ignite/deployments/:deployment_id/containers", map[string]string{
		"deployment_id": deploymentID,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("creating container: %w", err)
	}

	result, err := unmarshalData[struct {
		Container *hop.Container `json:"container"`
	}](resp, "container")
	if err != nil {
		return nil, err
	}

	if result.Container == nil {
		return nil, &hop.DecodeError{Expected: "container"}
	}

	return result.Container, nil
}

// StopContainer implements hop.IgniteClient.StopContainer.
func (c *IgniteClient) StopContainer(ctx context.Context, containerID string) error {
	_, err := c.httpClient.Put(ctx, "/ignite/containers/:container_id/state", map[string]string{
		"container_id": containerID,
	}, map[string]string{"preferred_state": string(hop.ContainerStateStopped)})
	if err != nil {
		return fmt.Errorf("stopping container: %w", err)
	}

	return nil
}

// DeleteContainer implements hop.IgniteClient.DeleteContainer.
func (c *IgniteClient) DeleteContainer(ctx context.Context, containerID string) error {
	_, err := c.httpClient.Delete(ctx, "/ignite/containers/:container_id", map[string]string{
		"container_id": containerID,
	})
	if err != nil {
		return fmt.Errorf("deleting container: %w", err)
	}

	return nil
}

// GetContainerLogs implements hop.IgniteClient.GetContainerLogs.
func (c *IgniteClient) GetContainerLogs(ctx context.Context, containerID string, limit int) ([]hop.ContainerLog, error) {
	params := map[string]string{
		"container_id": containerID,
	}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	resp, err := c.httpClient.Get(ctx, "/ignite/containers/:container_id/logs", params)
	if err != nil {
		return nil, fmt.Errorf("getting container logs: %w", err)
	}

	result, err := unmarshalData[struct {
		Logs []hop.ContainerLog `json:"logs"`
	}](resp, "logs")
	if err != nil {
		return nil, err
	}

	if result.Logs == nil {
		return nil, &hop.DecodeError{Expected: "logs"}
	}

	return result.Logs, nil
}

// ListGateways implements hop.IgniteClient.ListGateways.
func (c *IgniteClient) ListGateways(ctx context.Context, deploymentID string) ([]hop.Gateway, error) {
	resp, err := c.httpClient.Get(ctx, "/ignite/deployments/:deployment_id/gateways", map[string]string{
		"deployment_id": deploymentID,
	})
	if err != nil {
		return nil, fmt.Errorf("listing gateways: %w", err)
	}

	result, err := unmarshalData[struct {
		Gateways []hop.Gateway `json:"gateways"`
	}](resp, "gateways")
	if err != nil {
		return nil, err
	}

	if result.Gateways == nil {
		return nil, &hop.DecodeError{Expected: "gateways"}
	}

	return result.Gateways, nil
}

// GetGateway implements hop.IgniteClient.GetGateway.
func (c *IgniteClient) GetGateway(ctx context.Context, gatewayID string) (*hop.Gateway, error) {
	resp, err := c.httpClient.Get(ctx, "/ignite/gateways/:gateway_id", map[string]string{
		"gateway_id": gatewayID,
	})
	if err != nil {
		return nil, fmt.Errorf("getting gateway: %w", err)
	}

	result, err := unmarshalData[struct {
		Gateway *hop.Gateway `json:"gateway"`
	}](resp, "gateway")
	if err != nil {
		return nil, err
	}

	if result.Gateway == nil {
		return nil, &hop.DecodeError{Expected: "gateway"}
	}

	return result.Gateway, nil
}

// CreateGateway implements hop.IgniteClient.CreateGateway.
func (c *IgniteClient) CreateGateway(ctx context.Context, deploymentID string, request *hop.GatewayCreateRequest) (*hop.Gateway, error) {
	resp, err := c.httpClient.Post(ctx, "/ignite/deployments/:deployment_id/gateways", map[string]string{
		"deployment_id": deploymentID,
	}, request)
	if err != nil {
		return nil, fmt.Errorf("creating gateway: %w", err)
	}

	result, err := unmarshalData[struct {
		Gateway *hop.Gateway `json:"gateway"`
	}](resp, "gateway")
	if err != nil {
		return nil, err
	}

	if result.Gateway == nil {
		return nil, &hop.DecodeError{Expected: "gateway"}
	}

	return result.Gateway, nil
}

// AddDomain implements hop.IgniteClient.AddDomain.
func (c *IgniteClient) AddDomain(ctx context.Context, gatewayID, domain string) error {
	_, err := c.httpClient.Post(ctx, "/ignite/gateways/:gateway_id/domains", map[string]string{
		"gateway_id": gatewayID,
	}, map[string]string{"domain": domain})
	if err != nil {
		return fmt.Errorf("adding domain: %w", err)
	}

	return nil
}
