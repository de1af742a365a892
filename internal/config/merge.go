package config

// MergeConfigs deep-merges trees left to right into a new tree. Later trees
// win on scalars and arrays; arrays are replaced wholesale, never element-
// merged. Nested maps are merged recursively key-by-key, so a later tree can
// add one nested setting without restating the whole section. Inputs are
// never mutated.
func MergeConfigs(trees ...Tree) Tree {
	out := make(Tree)
	for _, tree := range trees {
		mergeInto(out, tree)
	}
	return out
}

// mergeInto merges src into dst. dst is owned by the caller and private to
// the merge; src is read-only and cloned on write.
func mergeInto(dst, src Tree) {
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			mergeInto(dstMap, srcMap)
			continue
		}
		dst[key] = cloneValue(srcVal)
	}
}
