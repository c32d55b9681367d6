package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/bark/internal/command"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "delete a bookmark",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		r, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer r.Close()

		b, err := bookmarkByID(ctx, r, args[0])
		if err != nil {
			return err
		}

		res, err := (&command.Delete{Store: r}).Execute(ctx, b.ID)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), res.Message)

		return nil
	},
}
