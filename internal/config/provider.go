package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Provider supplies raw configuration trees for a profile prefix. It is the
// injected boundary to the external configuration source; the file-backed
// implementation below is the default, and internal/github supplies a
// remote one.
type Provider interface {
	// Create instantiates the provider for a prefix. A structural problem
	// with the provider itself (not with the configuration) is a CreateError.
	Create(prefix ConfigPrefix) (Instance, error)
}

// Instance is a provider bound to one prefix. LoadConfig performs the read;
// GetConfig returns the tree obtained by the last successful load.
type Instance interface {
	LoadConfig() error
	GetConfig() (Tree, error)
}

// Provider identifiers accepted by ResolveProvider.
const (
	ProviderFile   = "file"
	ProviderGitHub = "github"
)

// ResolveProvider maps a provider identifier to a file-backed
// implementation. Identifiers this package does not know (the GitHub
// provider is constructed by its own package) are an ImportError.
func ResolveProvider(name string, dirs ...string) (Provider, error) {
	switch name {
	case "", ProviderFile:
		return NewFileProvider(dirs...), nil
	default:
		return nil, &LoadError{
			Phase: PhaseImport,
			Err:   fmt.Errorf("unknown configuration provider %q", name),
		}
	}
}

// LoadRaw validates its raw inputs and runs the provider sequence — create,
// load, retrieve — attributing any failure to exactly one phase. A missing
// configuration for the prefix is surfaced as *ConfigNotFoundError with the
// file names that would have satisfied it.
func LoadRaw(provider Provider, prefixInput, workDirInput any) (Tree, error) {
	prefix, err := NewConfigPrefix(prefixInput)
	if err != nil {
		return nil, err
	}
	if workDirInput == nil {
		if _, err := DefaultWorkingDirectory(); err != nil {
			return nil, err
		}
	} else if _, err := NewWorkingDirectory(workDirInput); err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, &LoadError{
			Phase: PhaseCreate, Prefix: prefix.String(),
			Err: fmt.Errorf("no provider supplied"),
		}
	}

	instance, err := provider.Create(prefix)
	if err != nil {
		return nil, &LoadError{Phase: PhaseCreate, Prefix: prefix.String(), Err: err}
	}
	if instance == nil {
		return nil, &LoadError{
			Phase: PhaseCreate, Prefix: prefix.String(),
			Err: fmt.Errorf("provider returned no instance"),
		}
	}

	if err := instance.LoadConfig(); err != nil {
		if nf, ok := err.(*ConfigNotFoundError); ok {
			return nil, nf
		}
		if isNotFound(err) {
			return nil, &ConfigNotFoundError{
				Prefix:   prefix.String(),
				Expected: []string{prefix.Apply(AppConfigBase)},
			}
		}
		return nil, &LoadError{Phase: PhaseLoad, Prefix: prefix.String(), Err: err}
	}

	tree, err := instance.GetConfig()
	if err != nil {
		return nil, &LoadError{Phase: PhaseRetrieve, Prefix: prefix.String(), Err: err}
	}
	if tree == nil {
		tree = make(Tree)
	}
	return tree, nil
}

// Base file names loaded by the file provider. The user overlay is optional
// and merged over the app config, later wins.
const (
	AppConfigBase  = "app.yml"
	UserConfigBase = "user.yml"
)

// FileProvider loads profile-prefixed YAML configuration from a list of
// directories, first hit wins per file.
type FileProvider struct {
	dirs []string
}

// NewFileProvider creates a file-backed provider searching dirs in order.
func NewFileProvider(dirs ...string) *FileProvider {
	return &FileProvider{dirs: dirs}
}

// Create binds the provider to a prefix.
func (p *FileProvider) Create(prefix ConfigPrefix) (Instance, error) {
	if len(p.dirs) == 0 {
		return nil, fmt.Errorf("file provider has no search directories")
	}
	return &fileInstance{dirs: p.dirs, prefix: prefix}, nil
}

type fileInstance struct {
	dirs   []string
	prefix ConfigPrefix
	tree   Tree
	loaded bool
}

// LoadConfig locates and parses the prefixed app config, then overlays the
// prefixed user config when present. Leaves no partial state on failure.
func (i *fileInstance) LoadConfig() error {
	appName := i.prefix.Apply(AppConfigBase)
	appPath, ok := i.find(appName)
	if !ok {
		expected := make([]string, 0, len(i.dirs))
		for _, dir := range i.dirs {
			expected = append(expected, filepath.Join(dir, appName))
		}
		return &ConfigNotFoundError{Prefix: i.prefix.String(), Expected: expected}
	}

	tree, err := LoadFile(appPath)
	if err != nil {
		return err
	}

	if userPath, ok := i.find(i.prefix.Apply(UserConfigBase)); ok {
		userTree, err := LoadFile(userPath)
		if err != nil {
			return err
		}
		tree = MergeConfigs(tree, userTree)
	}

	i.tree = tree
	i.loaded = true
	return nil
}

// GetConfig returns the loaded tree. Calling it before a successful load is
// a retrieve-phase error, not a panic.
func (i *fileInstance) GetConfig() (Tree, error) {
	if !i.loaded {
		return nil, fmt.Errorf("configuration not loaded: call LoadConfig first")
	}
	return i.tree, nil
}

// find returns the first existing regular file named name across the dirs.
func (i *fileInstance) find(name string) (string, bool) {
	for _, dir := range i.dirs {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}
