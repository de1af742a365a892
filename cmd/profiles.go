package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List available configuration profiles",
	Long: `List the profiles discoverable in the project and user profile
directories. The active profile is marked with an asterisk.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		u, err := buildConfig()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		for _, name := range u.AvailableProfiles() {
			marker := " "
			if name == u.Profile() {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}
