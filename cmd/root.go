// Package cmd is the command line interface of bark.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/bark/internal/config"
	"github.com/mateconpizza/bark/internal/shell"
	"github.com/mateconpizza/bark/internal/sys/terminal"
)

var (
	verboseFlag int
	dbNameFlag  string

	// cfg is the loaded config file.
	cfg = config.Defaults()
)

var rootCmd = &cobra.Command{
	Use:               config.App.Cmd,
	Short:             config.App.Info.Desc,
	Long:              config.App.Info.Title + "\n\n" + config.App.Info.Desc,
	Version:           config.App.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	Args:              cobra.NoArgs,
	PersistentPreRunE: initConfig,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		r, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer r.Close()

		// Close waits for a statement in flight before releasing the handle.
		t := terminal.New(terminal.WithInterruptFn(func(error) {
			r.Close()
		}))
		defer t.CancelInterruptHandler()

		stars, err := newStarSource(ctx, "", "")
		if err != nil {
			return err
		}

		return shell.New(t, &shell.Deps{
			Store:      r,
			Stars:      stars,
			GitHubUser: config.GitHubUser(cfg),
		}).Run(ctx)
	},
}

// Execute runs the root command. Errors are printed as `bark: <error>` and
// exit with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", config.App.Cmd, err)
		os.Exit(1)
	}
}

// initConfig sets the logger, the app paths and loads the config file.
func initConfig(cmd *cobra.Command, _ []string) error {
	config.SetVerbosity(verboseFlag)

	dataDir, err := config.DataPath()
	if err != nil {
		return err
	}

	configDir, err := config.ConfigPath()
	if err != nil {
		return err
	}

	config.SetAppPaths(dataDir, configDir)

	cfg, err = config.Load(config.App.Path.ConfigFile)
	if err != nil {
		return err
	}

	config.App.DBName = cfg.DBName
	if cmd.Flags().Changed("name") {
		config.App.DBName = dbNameFlag
	}

	return nil
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "verbosity level (-v info, -vv debug)")
	rootCmd.PersistentFlags().StringVarP(&dbNameFlag, "name", "n", config.MainDBName, "database name")

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s v{{.Version}}\n", config.App.Name))

	rootCmd.AddCommand(
		addCmd,
		listCmd,
		updateCmd,
		deleteCmd,
		importCmd,
		openCmd,
		copyCmd,
		qrCmd,
		configCmd,
		versionCmd,
	)
}
