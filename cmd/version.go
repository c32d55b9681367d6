package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/bark/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", config.App.Name, config.App.Version)
	},
}
