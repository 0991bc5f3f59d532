package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hopinc/hop-go/pkg/hop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryClient_ListImages_ProjectToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/registry/images", r.URL.Path)
		assert.Equal(t, "GET", r.Method)
		// Project tokens authenticate with the raw secret and need no
		// project parameter.
		assert.Equal(t, "ptk_abc123", r.Header.Get("Authorization"))
		assert.False(t, r.URL.Query().Has("project"))

		writeSuccess(t, w, map[string]any{
			"images": []string{"api", "worker"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "ptk_abc123", "")

	images, err := client.Registry().ListImages(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"api", "worker"}, images)
}

func TestRegistryClient_ListImages_MissingProjectFailsLocally(t *testing.T) {
	server, calls := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(t, w, map[string]any{"images": []string{}})
	})

	client := newTestClient(t, server.URL, "bearer_secret", "")

	_, err := client.Registry().ListImages(context.Background(), "")
	require.Error(t, err)
	assert.True(t, hop.IsAuthError(err))
	assert.EqualValues(t, 0, *calls)
}

func TestRegistryClient_GetImageManifests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Image names may contain slashes; they travel as one escaped path
		// segment.
		assert.Equal(t, "/registry/images/team%2Fapi/manifests", r.URL.EscapedPath())

		tag := "latest"
		writeSuccess(t, w, map[string]any{
			"manifests": []hop.ImageManifest{
				{
					Digest: hop.ManifestDigest{Digest: "sha256:deadbeef", Size: 1024},
					Tag:    &tag,
				},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "ptk_secret", "")

	manifests, err := client.Registry().GetImageManifests(context.Background(), "team/api")
	require.NoError(t, err)
	require.Len(t, manifests, 1)
	assert.Equal(t, "sha256:deadbeef", manifests[0].Digest.Digest)
	require.NotNil(t, manifests[0].Tag)
	assert.Equal(t, "latest", *manifests[0].Tag)
}

func TestRegistryClient_DeleteImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/registry/images/api", r.URL.Path)
		assert.Equal(t, "DELETE", r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "ptk_secret", "")

	err := client.Registry().DeleteImage(context.Background(), "api")
	require.NoError(t, err)
}
