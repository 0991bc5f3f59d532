package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hopinc/hop-go/pkg/hop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgniteClient_ListDeployments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ignite/deployments", r.URL.Path)
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "project_123", r.URL.Query().Get("project"))

		writeSuccess(t, w, map[string]any{
			"deployments": []hop.Deployment{
				{ID: "deployment_1", Name: "api"},
				{ID: "deployment_2", Name: "worker"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "pat_secret", "project_123")

	deployments, err := client.Ignite().ListDeployments(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, deployments, 2)
	assert.Equal(t, "api", deployments[0].Name)
	assert.Equal(t, "worker", deployments[1].Name)
}

func TestIgniteClient_ListDeployments_ProjectTokenOmitsProject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("project"))

		writeSuccess(t, w, map[string]any{"deployments": []hop.Deployment{}})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "ptk_secret", "")

	deployments, err := client.Ignite().ListDeployments(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, deployments)
}

func TestIgniteClient_ListDeployments_MissingProjectFailsLocally(t *testing.T) {
	server, calls := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(t, w, map[string]any{"deployments": []hop.Deployment{}})
	})

	client := newTestClient(t, server.URL, "pat_secret", "")

	_, err := client.Ignite().ListDeployments(context.Background(), "")
	require.Error(t, err)
	assert.True(t, hop.IsAuthError(err))
	assert.EqualValues(t, 0, *calls)
}

func TestIgniteClient_CreateDeployment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ignite/deployments", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var config hop.DeploymentConfig
		require.NoError(t, json.NewDecoder(r.Body).Decode(&config))
		assert.Equal(t, "api", config.Name)
		assert.Equal(t, "registry.example.com/api:latest", config.Image.Name)

		writeSuccess(t, w, map[string]any{
			"deployment": hop.Deployment{ID: "deployment_1", Name: config.Name},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "ptk_secret", "")

	deployment, err := client.Ignite().CreateDeployment(context.Background(), "", &hop.DeploymentConfig{
		Name:  "api",
		Image: hop.ImageConfig{Name: "registry.example.com/api:latest"},
	})
	require.NoError(t, err)
	assert.Equal(t, "deployment_1", deployment.ID)
	assert.Equal(t, "api", deployment.Name)
}

func TestIgniteClient_GetDeployment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ignite/deployments/deployment_1", r.URL.Path)
		assert.Equal(t, "GET", r.Method)

		writeSuccess(t, w, map[string]any{
			"deployment": hop.Deployment{ID: "deployment_1", Name: "api"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "ptk_secret", "")

	deployment, err := client.Ignite().GetDeployment(context.Background(), "deployment_1")
	require.NoError(t, err)
	assert.Equal(t, "api", deployment.Name)
}

func TestIgniteClient_GetDeployment_MissingIDFailsLocally(t *testing.T) {
	server, calls := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(t, w, map[string]any{"deployment": hop.Deployment{}})
	})

	client := newTestClient(t, server.URL, "ptk_secret", "")

	_, err := client.Ignite().GetDeployment(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, hop.ErrMissingPathParam)
	assert.EqualValues(t, 0, *calls)
}

func TestIgniteClient_DeleteDeployment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ignite/deployments/deployment_1", r.URL.Path)
		assert.Equal(t, "DELETE", r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "ptk_secret", "")

	err := client.Ignite().DeleteDeployment(context.Background(), "deployment_1")
	require.NoError(t, err)
}

func TestIgniteClient_ListContainers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ignite/deployments/deployment_1/containers", r.URL.Path)

		writeSuccess(t, w, map[string]any{
			"containers": []hop.Container{
				{ID: "container_1", State: hop.ContainerStateRunning},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "ptk_secret", "")

	containers, err := client.Ignite().ListContainers(context.Background(), "deployment_1")
	require.NoError(t, err)
	require.Len(t, containers, 1)
	assert.Equal(t, hop.ContainerStateRunning, containers[0].State)
}

func TestIgniteClient_StopContainer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ignite/containers/container_1/state", r.URL.Path)
		assert.Equal(t, "PUT", r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "stopped", body["preferred_state"])

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "ptk_secret", "")

	err := client.Ignite().StopContainer(context.Background(), "container_1")
	require.NoError(t, err)
}

func TestIgniteClient_GetContainerLogs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ignite/containers/container_1/logs", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		writeSuccess(t, w, map[string]any{
			"logs": []hop.ContainerLog{
				{Message: "listening on :8080", Level: "info"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "ptk_secret", "")

	logs, err := client.Ignite().GetContainerLogs(context.Background(), "container_1", 50)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "listening on :8080", logs[0].Message)
}

func TestIgniteClient_CreateGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ignite/deployments/deployment_1/gateways", r.URL.Path)
		assert.Equal(t, "POST", r.Method)

		var req hop.GatewayCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, hop.GatewayTypeExternal, req.Type)

		writeSuccess(t, w, map[string]any{
			"gateway": hop.Gateway{ID: "gateway_1", Type: req.Type},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "ptk_secret", "")

	gateway, err := client.Ignite().CreateGateway(context.Background(), "deployment_1", &hop.GatewayCreateRequest{
		Type:       hop.GatewayTypeExternal,
		TargetPort: 8080,
	})
	require.NoError(t, err)
	assert.Equal(t, "gateway_1", gateway.ID)
}

func TestIgniteClient_AddDomain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ignite/gateways/gateway_1/domains", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "api.example.com", body["domain"])

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "ptk_secret", "")

	err := client.Ignite().AddDomain(context.Background(), "gateway_1", "api.example.com")
	require.NoError(t, err)
}
