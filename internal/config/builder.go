package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/taskweave/go-taskweave/internal/project"
)

// Default pattern strings used when no pattern is configured, so a built
// configuration always carries one directive and one layer pattern.
const (
	DefaultDirectivePattern = "^(to|summary|defect)$"
	DefaultLayerPattern     = "^(project|issue|task)$"
)

// Options configures Create. All fields are optional; the zero value builds
// the default profile against the current directory with the file provider.
type Options struct {
	// Profile is the configuration variant to load. Empty means default.
	Profile string

	// WorkingDir anchors path resolution and provider discovery.
	// Empty means the process's current directory.
	WorkingDir string

	// Provider overrides the configuration source. Nil means the
	// file-backed provider over the standard search directories.
	Provider Provider

	// Env is the environment snapshot. Nil means snapshot os.Environ once
	// at this boundary; the rest of the call graph never reads globals.
	Env map[string]string

	// EnvironmentOverrides is the explicit override layer for environment
	// settings.
	EnvironmentOverrides *EnvironmentOverrides

	// PathOverrides replaces resolved base directories verbatim.
	PathOverrides PathOverrides
}

// UnifiedConfig is the frozen canonical configuration plus the pattern
// provider and path options derived with it. Every accessor returns copies;
// no operation mutates the instance after Create returns.
type UnifiedConfig struct {
	canonical   CanonicalConfig
	flat        Tree
	patterns    *PatternProvider
	pathOpts    PathOptions
	opts        Options
	profileDirs []string
}

// namedProvider lets a provider report its identity for the profile section.
type namedProvider interface {
	ProviderName() string
}

// ProviderName identifies the file-backed provider.
func (p *FileProvider) ProviderName() string { return ProviderFile }

// Create loads, migrates, and assembles one immutable configuration.
// Any load failure aborts the whole call; no partial configuration is ever
// returned.
func Create(opts Options) (*UnifiedConfig, error) {
	// 1. Validate the primitive inputs.
	profile := NewProfileName(opts.Profile)

	var workDir WorkingDirectory
	var err error
	if opts.WorkingDir == "" {
		workDir, err = DefaultWorkingDirectory()
	} else {
		workDir, err = NewWorkingDirectory(opts.WorkingDir)
	}
	if err != nil {
		return nil, err
	}

	prefix, err := profile.Prefix()
	if err != nil {
		return nil, err
	}

	env := opts.Env
	if env == nil {
		env = EnvSnapshot()
	}

	// 2. Resolve discovery directories and the provider.
	root := project.DiscoverRoot(workDir.String())
	profileDirs := []string{
		filepath.Join(root, ResourceDirName, ProfilesDirName),
		filepath.Join(env["HOME"], ResourceDirName, ProfilesDirName),
	}

	provider := opts.Provider
	if provider == nil {
		dirs := []string{filepath.Join(workDir.String(), ResourceDirName)}
		if root != workDir.String() {
			dirs = append(dirs, filepath.Join(root, ResourceDirName))
		}
		dirs = append(dirs, profileDirs...)
		provider = NewFileProvider(dirs...)
	}

	// 3. Load the raw tree.
	raw, err := LoadRaw(provider, prefix.String(), workDir.String())
	if err != nil {
		return nil, &ConfigLoadError{Stage: "load", Err: err}
	}

	// 4. Pattern provider against the same profile and working directory.
	patterns, err := NewPatternProvider(provider, prefix.String(), workDir.String())
	if err != nil {
		return nil, &ConfigLoadError{Stage: "patterns", Err: err}
	}

	// 5. Derive the canonical sections from the migrated tree.
	migrated := MigrateConfig(raw)
	if gaps := ValidateMigration(migrated); len(gaps) > 0 {
		slog.Debug("configuration migration gaps",
			"profile", profile.String(), "gaps", describeGaps(gaps))
	}

	source := "custom"
	if np, ok := provider.(namedProvider); ok {
		source = np.ProviderName()
	}

	canonical := CanonicalConfig{
		Profile: ProfileSection{
			Name:   profile.String(),
			Source: source,
		},
		Paths:       resolvePathsSection(migrated, workDir, opts.PathOverrides),
		Patterns:    resolvePatternsSection(patterns),
		App:         resolveAppSection(migrated),
		User:        resolveUserSection(migrated),
		Environment: resolveEnvironmentSection(env, opts.EnvironmentOverrides, migrated),
		Raw:         CloneTree(raw),
	}

	// 6. Freeze: the flat tree is rendered once; accessors only copy out.
	return &UnifiedConfig{
		canonical:   canonical,
		flat:        canonical.tree(),
		patterns:    patterns,
		pathOpts:    newPathOptions(workDir),
		opts:        opts,
		profileDirs: profileDirs,
	}, nil
}

// resolvePatternsSection takes each pattern string from the provider,
// falling back to the fixed defaults so the section is never empty.
func resolvePatternsSection(patterns *PatternProvider) PatternsSection {
	section := PatternsSection{
		Directive: DefaultDirectivePattern,
		Layer:     DefaultLayerPattern,
	}
	if p := patterns.DirectivePattern(); p != nil {
		section.Directive = p.Source()
	}
	if p := patterns.LayerTypePattern(); p != nil {
		section.Layer = p.Source()
	}
	return section
}

// GetConfig returns a deep copy of the canonical configuration.
func (u *UnifiedConfig) GetConfig() CanonicalConfig {
	return u.canonical.clone()
}

// Get traverses the canonical tree by dotted key segments. Missing segments
// yield (nil, false); returned maps and slices are copies.
func (u *UnifiedConfig) Get(path string) (any, bool) {
	val, ok := GetPath(u.flat, path)
	if !ok {
		return nil, false
	}
	return cloneValue(val), true
}

// Entries returns a deep copy of the full canonical tree, for callers that
// enumerate rather than address individual paths.
func (u *UnifiedConfig) Entries() Tree {
	return CloneTree(u.flat)
}

// Has reports whether the dotted path resolves in the canonical tree.
func (u *UnifiedConfig) Has(path string) bool {
	return HasPath(u.flat, path)
}

// Validate checks the built configuration: the working directory must exist
// on disk, both patterns must resolve, and maxFileSize must be positive.
// The first violation found is returned. Resolved base directories are
// deliberately not checked; they may be created on demand.
func (u *UnifiedConfig) Validate() error {
	info, err := os.Stat(u.canonical.Paths.WorkingDir)
	if err != nil || !info.IsDir() {
		return &ValidateError{
			Check:  "workingDir",
			Reason: fmt.Sprintf("working directory %s does not exist", u.canonical.Paths.WorkingDir),
		}
	}
	if !u.patterns.HasValidPatterns() {
		return &ValidateError{
			Check:  "patterns",
			Reason: "directive and layer patterns are not both configured",
		}
	}
	if u.canonical.App.Limits.MaxFileSize <= 0 {
		return &ValidateError{
			Check:  "limits.maxFileSize",
			Reason: "maxFileSize must be positive",
		}
	}
	return nil
}

// Export serializes the canonical configuration as indented JSON for
// diagnostics.
func (u *UnifiedConfig) Export() (string, error) {
	data, err := json.MarshalIndent(u.canonical, "", "  ")
	if err != nil {
		return "", fmt.Errorf("exporting configuration: %w", err)
	}
	return string(data), nil
}

// AvailableProfiles scans the project and user profile directories for
// profile configs, always including the default profile. A missing or
// unreadable directory is treated as "no profiles there", not an error.
func (u *UnifiedConfig) AvailableProfiles() []string {
	names := map[string]bool{DefaultProfileName: true}

	for _, dir := range u.profileDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if name, ok := profileFromFileName(entry.Name()); ok {
				names[name] = true
			}
		}
	}

	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// profileFromFileName derives a profile name from a profile-directory entry:
// "production-app.yml" and "production.yml" both mean "production"; user
// overlays and the unprefixed base files name no profile.
func profileFromFileName(name string) (string, bool) {
	if !strings.HasSuffix(name, ".yml") {
		return "", false
	}
	if name == AppConfigBase || name == UserConfigBase {
		return "", false
	}
	if strings.HasSuffix(name, "-"+UserConfigBase) {
		return "", false
	}
	if strings.HasSuffix(name, "-"+AppConfigBase) {
		return strings.TrimSuffix(name, "-"+AppConfigBase), true
	}
	return strings.TrimSuffix(name, ".yml"), true
}

// SwitchProfile re-runs the full build for another profile with the same
// working directory and options, returning a wholly new instance. The
// receiver is untouched. An unknown profile fails with ProfileNotFound and
// the available set.
func (u *UnifiedConfig) SwitchProfile(name string) (*UnifiedConfig, error) {
	profile, err := NewProfileNameStrict(name)
	if err != nil {
		return nil, err
	}

	available := u.AvailableProfiles()
	if !containsString(available, profile.String()) {
		return nil, &ProfileNotFoundError{
			Profile:   profile.String(),
			Available: available,
		}
	}

	opts := u.opts
	opts.Profile = profile.String()
	return Create(opts)
}

// Profile returns the active profile name.
func (u *UnifiedConfig) Profile() string {
	return u.canonical.Profile.Name
}

// PatternProvider returns the pattern provider built with this
// configuration. The provider is shared, not copied: retargeting it is the
// caller's responsibility per the PatternProvider contract.
func (u *UnifiedConfig) PatternProvider() *PatternProvider {
	return u.patterns
}

// PathOptions returns the path resolution options scoped to the working
// directory.
func (u *UnifiedConfig) PathOptions() PathOptions {
	return u.pathOpts
}

func containsString(ss []string, s string) bool {
	for _, item := range ss {
		if item == s {
			return true
		}
	}
	return false
}
