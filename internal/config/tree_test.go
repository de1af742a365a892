package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPath(t *testing.T) {
	tree := Tree{
		"paths": Tree{
			"promptBaseDir": "/p",
			"nested":        Tree{"deep": 7},
		},
		"flat": "value",
	}

	tests := []struct {
		path string
		want any
		ok   bool
	}{
		{"flat", "value", true},
		{"paths.promptBaseDir", "/p", true},
		{"paths.nested.deep", 7, true},
		{"paths.missing", nil, false},
		{"flat.not-a-map", nil, false},
		{"missing", nil, false},
		{"", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := GetPath(tree, tt.path)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestGetPath_NilTree(t *testing.T) {
	_, ok := GetPath(nil, "a.b")
	require.False(t, ok)
}

func TestSetPath(t *testing.T) {
	tree := Tree{}
	SetPath(tree, "a.b.c", 1)
	require.Equal(t, Tree{"a": Tree{"b": Tree{"c": 1}}}, tree)

	// Non-map intermediates are replaced.
	SetPath(tree, "a.b", "flat")
	SetPath(tree, "a.b.d", 2)
	val, ok := GetPath(tree, "a.b.d")
	require.True(t, ok)
	require.Equal(t, 2, val)
}

func TestCloneTree_Independent(t *testing.T) {
	original := Tree{
		"nested": Tree{"key": "value"},
		"list":   []any{Tree{"item": 1}},
	}
	cloned := CloneTree(original)
	require.Equal(t, original, cloned)

	cloned["nested"].(map[string]any)["key"] = "changed"
	cloned["list"].([]any)[0].(map[string]any)["item"] = 2

	require.Equal(t, "value", original["nested"].(map[string]any)["key"])
	require.Equal(t, 1, original["list"].([]any)[0].(map[string]any)["item"])
}

func TestCloneTree_Nil(t *testing.T) {
	require.Nil(t, CloneTree(nil))
}

func TestFlatten(t *testing.T) {
	tree := Tree{
		"profile": Tree{"name": "default"},
		"app": Tree{
			"limits": Tree{"maxFileSize": int64(10)},
		},
		"empty": Tree{},
		"top":   true,
	}
	flat := Flatten(tree)
	require.Equal(t, map[string]any{
		"profile.name":            "default",
		"app.limits.maxFileSize":  int64(10),
		"empty":                   Tree{},
		"top":                     true,
	}, flat)
}
