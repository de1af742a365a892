package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the resolved configuration",
	Long: `Build the configuration for the selected profile and check it: the
working directory must exist, both classification patterns must compile,
and the file size limit must be positive.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		u, err := buildConfig()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if err := u.Validate(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "configuration valid: profile %s\n", u.Profile())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
