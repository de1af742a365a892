package github

import (
	"context"
	"fmt"
	"path"

	gh "github.com/google/go-github/v68/github"

	"github.com/taskweave/go-taskweave/internal/config"
)

// Repository directory searched for configuration files when none is given.
const defaultConfigDir = ".taskweave"

// Options configures the remote configuration provider.
type Options struct {
	ClientConfig

	// Repo is the repository holding the configuration files.
	Repo string

	// Ref is the git ref to read from. Empty means the default branch.
	Ref string

	// Dir is the directory inside the repository holding the configuration
	// files. Empty means ".taskweave".
	Dir string
}

// Provider loads configuration trees from a GitHub repository via the
// contents API. It satisfies the same contract as the file-backed provider,
// so the rest of the pipeline never knows where the tree came from.
type Provider struct {
	client *gh.Client
	owner  string
	repo   string
	ref    string
	dir    string
}

var _ config.Provider = (*Provider)(nil)

// NewProvider authenticates against the GitHub API and constructs the
// remote provider.
func NewProvider(opts Options) (*Provider, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, fmt.Errorf("github provider requires an owner and a repository")
	}
	client, err := NewClient(opts.ClientConfig)
	if err != nil {
		return nil, err
	}
	return NewProviderWithClient(client, opts.Owner, opts.Repo, opts.Ref, opts.Dir), nil
}

// NewProviderWithClient wires an already-built API client.
func NewProviderWithClient(client *gh.Client, owner, repo, ref, dir string) *Provider {
	if dir == "" {
		dir = defaultConfigDir
	}
	return &Provider{client: client, owner: owner, repo: repo, ref: ref, dir: dir}
}

// ProviderName identifies this provider in the profile section.
func (p *Provider) ProviderName() string { return config.ProviderGitHub }

// Create binds the provider to a profile prefix.
func (p *Provider) Create(prefix config.ConfigPrefix) (config.Instance, error) {
	if p.client == nil {
		return nil, fmt.Errorf("github provider has no API client")
	}
	return &remoteInstance{p: p, prefix: prefix}, nil
}

type remoteInstance struct {
	p      *Provider
	prefix config.ConfigPrefix
	tree   config.Tree
	loaded bool
}

// LoadConfig fetches and parses the prefixed app config from the repository,
// then overlays the prefixed user config when present. A missing app config
// is the actionable not-found condition; a missing user overlay is not an
// error. Any other API failure propagates as-is.
func (i *remoteInstance) LoadConfig() error {
	appPath := path.Join(i.p.dir, i.prefix.Apply(config.AppConfigBase))

	data, err := i.p.fetchFile(appPath)
	if err != nil {
		if IsNotFoundError(err) {
			return &config.ConfigNotFoundError{
				Prefix:   i.prefix.String(),
				Expected: []string{fmt.Sprintf("%s/%s:%s", i.p.owner, i.p.repo, appPath)},
			}
		}
		return err
	}

	tree, err := config.ParseTree([]byte(data), appPath)
	if err != nil {
		return err
	}

	userPath := path.Join(i.p.dir, i.prefix.Apply(config.UserConfigBase))
	userData, err := i.p.fetchFile(userPath)
	switch {
	case err == nil:
		userTree, err := config.ParseTree([]byte(userData), userPath)
		if err != nil {
			return err
		}
		tree = config.MergeConfigs(tree, userTree)
	case !IsNotFoundError(err):
		return err
	}

	i.tree = tree
	i.loaded = true
	return nil
}

// GetConfig returns the loaded tree. Calling it before a successful load is
// a retrieve-phase error, not a panic.
func (i *remoteInstance) GetConfig() (config.Tree, error) {
	if !i.loaded {
		return nil, fmt.Errorf("configuration not loaded: call LoadConfig first")
	}
	return i.tree, nil
}

// fetchFile downloads one file through the contents API and decodes it.
func (p *Provider) fetchFile(filePath string) (string, error) {
	opts := &gh.RepositoryContentGetOptions{}
	if p.ref != "" {
		opts.Ref = p.ref
	}

	content, _, _, err := p.client.Repositories.GetContents(context.Background(), p.owner, p.repo, filePath, opts)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", filePath, err)
	}
	if content == nil {
		return "", fmt.Errorf("%s is a directory, not a file", filePath)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", filePath, err)
	}
	return decoded, nil
}
