// Package sdk provides a public Go API for resolving taskweave
// configuration. It supports local workspaces (file-backed discovery) and
// remote configuration repositories (via the GitHub API).
//
// Basic usage:
//
//	result, err := sdk.Load(sdk.Options{
//	    Dir: "/path/to/project",
//	})
//	fmt.Println(result.Values["patterns.directive"])
//
//	result, err := sdk.LoadRemote(sdk.RemoteOptions{
//	    Owner: "myorg",
//	    Repo:  "configs",
//	    Token: os.Getenv("GITHUB_TOKEN"),
//	})
//	fmt.Println(result.Values["environment.logLevel"])
package sdk

import (
	"errors"
	"fmt"

	"github.com/taskweave/go-taskweave/internal/config"
	ghprovider "github.com/taskweave/go-taskweave/internal/github"
	"github.com/taskweave/go-taskweave/internal/output"
)

// Options configures configuration resolution from a local workspace.
type Options struct {
	// Profile is the configuration variant to load. Empty means default.
	Profile string

	// Dir is the working directory anchoring discovery and path resolution.
	// Defaults to the current directory if empty.
	Dir string

	// Validate runs the post-build checks and fails when any is violated.
	Validate bool
}

// RemoteOptions configures configuration resolution via the GitHub API.
type RemoteOptions struct {
	// Owner is the GitHub repository owner (required).
	Owner string

	// Repo is the GitHub repository name (required).
	Repo string

	// Token is a GitHub personal access token or GITHUB_TOKEN.
	Token string

	// AppID is the GitHub App ID for app authentication.
	AppID int64

	// AppKeyPath is the path to a GitHub App private key PEM file.
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	BaseURL string

	// Ref is the git ref to read configuration from. Defaults to the
	// repository's default branch.
	Ref string

	// ConfigDir is the directory inside the repository holding the
	// configuration files. Defaults to ".taskweave".
	ConfigDir string

	// Profile is the configuration variant to load. Empty means default.
	Profile string

	// Dir is the local working directory anchoring path resolution.
	Dir string

	// Validate runs the post-build checks and fails when any is violated.
	Validate bool
}

// Result holds the resolved configuration in the shapes callers consume.
type Result struct {
	// Profile is the active profile name.
	Profile string

	// Values contains every resolved value keyed by dotted path, for
	// example "paths.promptBaseDir" or "app.limits.maxFileSize".
	Values map[string]string

	// Profiles lists the profiles discoverable from this configuration.
	Profiles []string

	// JSON is the canonical configuration as indented JSON.
	JSON string
}

// Load resolves configuration from a local workspace.
func Load(opts Options) (*Result, error) {
	u, err := config.Create(config.Options{
		Profile:    opts.Profile,
		WorkingDir: opts.Dir,
	})
	if err != nil {
		return nil, err
	}
	return buildResult(u, opts.Validate)
}

// LoadRemote resolves configuration from a GitHub repository.
func LoadRemote(opts RemoteOptions) (*Result, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, errors.New("owner and repo are required")
	}

	provider, err := ghprovider.NewProvider(ghprovider.Options{
		ClientConfig: ghprovider.ClientConfig{
			Token:      opts.Token,
			AppID:      opts.AppID,
			AppKeyPath: opts.AppKeyPath,
			BaseURL:    opts.BaseURL,
			Owner:      opts.Owner,
		},
		Repo: opts.Repo,
		Ref:  opts.Ref,
		Dir:  opts.ConfigDir,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub provider: %w", err)
	}

	u, err := config.Create(config.Options{
		Profile:    opts.Profile,
		WorkingDir: opts.Dir,
		Provider:   provider,
	})
	if err != nil {
		return nil, err
	}
	return buildResult(u, opts.Validate)
}

func buildResult(u *config.UnifiedConfig, validate bool) (*Result, error) {
	if validate {
		if err := u.Validate(); err != nil {
			return nil, err
		}
	}

	exported, err := u.Export()
	if err != nil {
		return nil, err
	}

	return &Result{
		Profile:  u.Profile(),
		Values:   output.Values(u),
		Profiles: u.AvailableProfiles(),
		JSON:     exported,
	}, nil
}
