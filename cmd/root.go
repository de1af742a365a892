package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Global flags shared across commands.
var (
	flagProfile    string
	flagDirectory  string
	flagProvider   string
	flagOutput     string
	flagShowValue  string
	flagShowConfig bool
	flagVerbosity  string

	flagGitHubRepo    string
	flagGitHubRef     string
	flagGitHubDir     string
	flagGitHubToken   string
	flagGitHubAppID   int64
	flagGitHubAppKey  string
	flagGitHubBaseURL string
)

// rootCmd is the top-level command for taskweave.
var rootCmd = &cobra.Command{
	Use:   "taskweave",
	Short: "Layered configuration resolution for prompt templates",
	Long: `taskweave resolves layered YAML configuration into one canonical view,
migrates legacy key shapes, and validates the directive and layer patterns
used to classify prompt templates.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	// Default action is show.
	RunE: showRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "configuration profile to load (default: default)")
	rootCmd.PersistentFlags().StringVarP(&flagDirectory, "directory", "C", "", "working directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "configuration provider: file or github (default: file)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: json, or empty for key=value pairs")
	rootCmd.PersistentFlags().StringVar(&flagShowValue, "show-value", "", "output a single value by dotted key (e.g. paths.promptBaseDir)")
	rootCmd.PersistentFlags().BoolVar(&flagShowConfig, "show-config", false, "display the canonical configuration as JSON and exit")
	rootCmd.PersistentFlags().StringVarP(&flagVerbosity, "verbosity", "v", "info", "log verbosity: quiet, info, debug")

	rootCmd.PersistentFlags().StringVar(&flagGitHubRepo, "github-repo", "", "owner/repo holding the configuration (github provider)")
	rootCmd.PersistentFlags().StringVar(&flagGitHubRef, "github-ref", "", "git ref to read configuration from (default: repo default branch)")
	rootCmd.PersistentFlags().StringVar(&flagGitHubDir, "github-dir", "", "directory in the repo holding the configuration (default: .taskweave)")
	rootCmd.PersistentFlags().StringVar(&flagGitHubToken, "github-token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	rootCmd.PersistentFlags().Int64Var(&flagGitHubAppID, "github-app-id", 0, "GitHub App ID (or set GH_APP_ID env var)")
	rootCmd.PersistentFlags().StringVar(&flagGitHubAppKey, "github-app-key", "", "path to GitHub App private key PEM file (or set GH_APP_PRIVATE_KEY env var)")
	rootCmd.PersistentFlags().StringVar(&flagGitHubBaseURL, "github-url", "", "GitHub API base URL for GitHub Enterprise (or set GITHUB_API_URL env var)")
}

// setupLogging configures the default slog handler from the verbosity flag.
func setupLogging() {
	level := slog.LevelInfo
	switch flagVerbosity {
	case "quiet":
		level = slog.LevelError
	case "debug":
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
