package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_Success(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yml", `
paths:
  promptBaseDir: prompts
patterns:
  directive: '^(to|summary)$'
`)

	tree, err := LoadFile(path)
	require.NoError(t, err)

	val, ok := GetPath(tree, "paths.promptBaseDir")
	require.True(t, ok)
	require.Equal(t, "prompts", val)
	val, _ = GetPath(tree, "patterns.directive")
	require.Equal(t, "^(to|summary)$", val)
}

func TestLoadFile_EmptyDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yml", "")

	tree, err := LoadFile(path)
	require.NoError(t, err)
	require.NotNil(t, tree)
	require.Empty(t, tree)
}

func TestLoadFile_SequenceOfMappings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yml", `
- log_level: info
  extended_thinking: false
- log_level: debug
`)

	tree, err := LoadFile(path)
	require.NoError(t, err)
	// Later documents win; siblings survive.
	require.Equal(t, "debug", tree["log_level"])
	require.Equal(t, false, tree["extended_thinking"])
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, PhaseNotFound, lerr.Phase)
}

func TestLoadFile_DirectoryIsNotFound(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadFile(dir)
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, PhaseNotFound, lerr.Phase)
}

func TestLoadFile_ParseError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.yml", "key: [unclosed")

	_, err := LoadFile(path)
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, PhaseParse, lerr.Phase)
}

func TestLoadFile_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"scalar top level", "just a string"},
		{"number top level", "42"},
		{"sequence of scalars", "- a\n- b\n"},
		{"mixed sequence", "- key: 1\n- scalar\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "app.yml", tt.content)

			_, err := LoadFile(path)
			var lerr *LoadError
			require.ErrorAs(t, err, &lerr)
			require.Equal(t, PhaseStruct, lerr.Phase)
		})
	}
}

func TestLoadFile_InvalidPathInput(t *testing.T) {
	for _, input := range []any{nil, "", " padded.yml", 9} {
		_, err := LoadFile(input)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	}
}
