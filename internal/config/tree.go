package config

import "strings"

// Tree is an untyped configuration tree as produced by YAML parsing or an
// external provider. It carries no invariants; it is the pre-validation
// boundary shape consumed by the migrator and merger.
type Tree = map[string]any

// GetPath traverses a tree by dotted key segments. It never panics; any
// missing or non-map segment yields (nil, false).
func GetPath(tree Tree, path string) (any, bool) {
	if tree == nil || path == "" {
		return nil, false
	}
	current := any(tree)
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		val, ok := m[part]
		if !ok {
			return nil, false
		}
		current = val
	}
	return current, true
}

// HasPath reports whether the dotted path resolves.
func HasPath(tree Tree, path string) bool {
	_, ok := GetPath(tree, path)
	return ok
}

// SetPath sets a value by dotted path, creating intermediate maps as needed.
// Existing non-map intermediates are replaced.
func SetPath(tree Tree, path string, value any) {
	if tree == nil || path == "" {
		return
	}
	parts := strings.Split(path, ".")
	current := tree
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// CloneTree returns a deep copy of the tree. Nested maps and slices are
// copied; scalar values are shared (they are immutable).
func CloneTree(tree Tree) Tree {
	if tree == nil {
		return nil
	}
	out := make(Tree, len(tree))
	for k, v := range tree {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return CloneTree(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}

// Flatten converts a nested tree into a single-level map keyed by dotted
// paths. Used by the output writers.
func Flatten(tree Tree) map[string]any {
	out := make(map[string]any)
	flattenInto(tree, "", out)
	return out
}

func flattenInto(tree Tree, prefix string, out map[string]any) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok && len(nested) > 0 {
			flattenInto(nested, key, out)
		} else {
			out[key] = v
		}
	}
}
