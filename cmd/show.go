package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/taskweave/go-taskweave/internal/config"
	ghprovider "github.com/taskweave/go-taskweave/internal/github"
	"github.com/taskweave/go-taskweave/internal/output"

	"github.com/spf13/cobra"
)

func showRunE(_ *cobra.Command, _ []string) error {
	// 1. Build the unified configuration.
	u, err := buildConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// 2. Show config mode — print the canonical form and exit.
	if flagShowConfig {
		return showConfig(u)
	}

	// 3. Flatten and write in the requested format.
	return writeOutput(output.Values(u))
}

// buildConfig assembles the unified configuration from the global flags.
func buildConfig() (*config.UnifiedConfig, error) {
	provider, err := resolveProvider()
	if err != nil {
		return nil, err
	}

	return config.Create(config.Options{
		Profile:    flagProfile,
		WorkingDir: flagDirectory,
		Provider:   provider,
	})
}

// resolveProvider maps the provider flag to an implementation. Nil means the
// default file-backed discovery.
func resolveProvider() (config.Provider, error) {
	switch flagProvider {
	case "", config.ProviderFile:
		return nil, nil
	case config.ProviderGitHub:
		owner, repo, err := parseOwnerRepo(flagGitHubRepo)
		if err != nil {
			return nil, err
		}
		return ghprovider.NewProvider(ghprovider.Options{
			ClientConfig: ghprovider.ClientConfig{
				Token:      flagGitHubToken,
				AppID:      flagGitHubAppID,
				AppKeyPath: flagGitHubAppKey,
				BaseURL:    flagGitHubBaseURL,
				Owner:      owner,
			},
			Repo: repo,
			Ref:  flagGitHubRef,
			Dir:  flagGitHubDir,
		})
	default:
		return nil, fmt.Errorf("unknown configuration provider %q (supported: file, github)", flagProvider)
	}
}

func parseOwnerRepo(s string) (string, string, error) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format %q, expected owner/repo (set --github-repo)", s)
	}
	return parts[0], parts[1], nil
}

// showConfig prints the canonical configuration as JSON.
func showConfig(u *config.UnifiedConfig) error {
	data, err := u.Export()
	if err != nil {
		return err
	}
	fmt.Println(data)
	return nil
}

// writeOutput writes the flattened values in the requested format.
func writeOutput(values map[string]string) error {
	w := os.Stdout

	if flagShowValue != "" {
		return output.WriteValue(w, values, flagShowValue)
	}

	switch flagOutput {
	case "json":
		return output.WriteJSON(w, values)
	case "":
		return output.WriteAll(w, values)
	default:
		return fmt.Errorf("unknown output format %q", flagOutput)
	}
}
