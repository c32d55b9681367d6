package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/bark/internal/config"
)

var (
	configCreate bool
	configForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "print or create the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p := config.App.Path.ConfigFile
		if configCreate {
			if err := config.Write(p, config.Defaults(), configForce); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", p)

			return nil
		}

		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "# config: %s\n", p)
		fmt.Fprintf(w, "# database: %s\n", config.App.DBPath())
		fmt.Fprint(w, string(data))

		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configCreate, "create", false, "write the default config file")
	configCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config file")
}
