package config

import "path/filepath"

// PathOverrides replaces resolved base directories verbatim. Overrides are
// applied last and never re-resolved against the working directory, so a
// caller keeps full control over the exact value.
type PathOverrides struct {
	PromptBaseDir string
	SchemaBaseDir string
	OutputBaseDir string
}

// PathOptions scopes downstream path resolution to the working directory
// with the resource directory as the fallback search root. It is supplied
// to each CanonicalConfig at construction and may be shared across
// instances created by profile switching.
type PathOptions struct {
	WorkingDir  string
	ResourceDir string
}

// Resolve resolves a path against the working directory; absolute paths are
// preserved.
func (o PathOptions) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(o.WorkingDir, path)
}

// SearchDirs returns the resolution roots in order: working directory, then
// the resource directory fallback.
func (o PathOptions) SearchDirs() []string {
	return []string{o.WorkingDir, o.ResourceDir}
}

// newPathOptions builds the options for a working directory.
func newPathOptions(workDir WorkingDirectory) PathOptions {
	return PathOptions{
		WorkingDir:  workDir.String(),
		ResourceDir: filepath.Join(workDir.String(), ResourceDirName),
	}
}

// resolvePathsSection derives the paths section from a migrated tree:
// configured (or default) base dirs are resolved against the working
// directory unless already absolute, then overrides replace them verbatim.
func resolvePathsSection(tree Tree, workDir WorkingDirectory, overrides PathOverrides) PathsSection {
	opts := newPathOptions(workDir)

	paths := PathsSection{
		PromptBaseDir: opts.Resolve(treeString(tree, "paths.promptBaseDir", defaultPromptBaseDir)),
		SchemaBaseDir: opts.Resolve(treeString(tree, "paths.schemaBaseDir", defaultSchemaBaseDir)),
		OutputBaseDir: opts.Resolve(treeString(tree, "paths.outputBaseDir", defaultOutputBaseDir)),
		WorkingDir:    workDir.String(),
		ResourceDir:   opts.ResourceDir,
	}

	if overrides.PromptBaseDir != "" {
		paths.PromptBaseDir = overrides.PromptBaseDir
	}
	if overrides.SchemaBaseDir != "" {
		paths.SchemaBaseDir = overrides.SchemaBaseDir
	}
	if overrides.OutputBaseDir != "" {
		paths.OutputBaseDir = overrides.OutputBaseDir
	}

	return paths
}

// treeString reads a string at a dotted path, falling back when missing,
// non-string, or empty.
func treeString(tree Tree, path, fallback string) string {
	val, ok := GetPath(tree, path)
	if !ok {
		return fallback
	}
	s, ok := val.(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}
