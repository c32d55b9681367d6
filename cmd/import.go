package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/bark/internal/command"
	"github.com/mateconpizza/bark/internal/config"
)

var (
	importPreserve bool
	importToken    string
	importAPIURL   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "import bookmarks from other sources",
}

var importGitHubCmd = &cobra.Command{
	Use:   "github [username]",
	Short: "import the repositories starred by a GitHub user",
	Long: `import the repositories starred by a GitHub user.

The username defaults to github.user in the config file or in ~/.gitconfig.
The token is read from BARK_GITHUB_TOKEN or GITHUB_TOKEN.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		username := config.GitHubUser(cfg)
		if len(args) == 1 {
			username = args[0]
		}

		stars, err := newStarSource(ctx, importToken, importAPIURL)
		if err != nil {
			return err
		}

		r, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer r.Close()

		res, err := (&command.ImportStars{
			Source: stars,
			Add:    &command.Add{Store: r},
		}).Execute(ctx, command.ImportData{
			Username:           username,
			PreserveTimestamps: importPreserve,
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), res.Message)

		return nil
	},
}

func init() {
	f := importGitHubCmd.Flags()
	f.BoolVarP(&importPreserve, "preserve-timestamps", "p", false, "keep the star date as the date added")
	f.StringVar(&importToken, "token", "", "GitHub token (default from the environment)")
	f.StringVar(&importAPIURL, "api-url", "", "GitHub API root, for GitHub Enterprise")

	importCmd.AddCommand(importGitHubCmd)
}
