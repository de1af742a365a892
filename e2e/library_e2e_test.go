// End-to-end tests for the pkg/sdk library API.
//
// These tests exercise the public Load() and LoadRemote() functions through
// the full pipeline, verifying that the library produces correct results
// against real workspaces and mock GitHub API servers.
package e2e

import (
	"encoding/json"
	"testing"

	"github.com/taskweave/go-taskweave/internal/testutil"
	"github.com/taskweave/go-taskweave/pkg/sdk"

	"github.com/stretchr/testify/require"
)

func TestLibrary_Load(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WriteAppConfig(`
patterns:
  directive: '^(to|summary|defect)$'
  layer: '^(project|issue|task)$'
limits:
  maxFileSize: 1024
`)

	result, err := sdk.Load(sdk.Options{Dir: ws.Path()})
	require.NoError(t, err)
	require.Equal(t, "default", result.Profile)
	require.Equal(t, "1024", result.Values["app.limits.maxFileSize"])
	require.Equal(t, "file", result.Values["profile.source"])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.JSON), &decoded))
	require.Contains(t, decoded, "app")
}

func TestLibrary_LoadWithValidate(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WriteAppConfig(`
patterns:
  directive: '^(to)$'
  layer: '^(task)$'
`)

	result, err := sdk.Load(sdk.Options{Dir: ws.Path(), Validate: true})
	require.NoError(t, err)
	require.Equal(t, "default", result.Profile)
}

func TestLibrary_LoadProfileAndDiscovery(t *testing.T) {
	ws := testutil.NewWorkspace(t)
	ws.WriteAppConfig(`
patterns:
  directive: '^(to)$'
  layer: '^(task)$'
`)
	ws.WriteProfile("staging", `
patterns:
  directive: '^(stage)$'
  layer: '^(env)$'
`)

	result, err := sdk.Load(sdk.Options{Dir: ws.Path(), Profile: "staging"})
	require.NoError(t, err)
	require.Equal(t, "staging", result.Profile)
	require.Equal(t, "^(stage)$", result.Values["patterns.directive"])
	require.Contains(t, result.Profiles, "default")
	require.Contains(t, result.Profiles, "staging")
}
