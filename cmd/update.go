package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/bark/internal/bookmark"
	"github.com/mateconpizza/bark/internal/command"
	"github.com/mateconpizza/bark/internal/db"
)

var updateCmd = &cobra.Command{
	Use:   "update <id> <column> <value>",
	Short: "update a column of a bookmark",
	Long: fmt.Sprintf(`update a column of a bookmark.

Editable columns: %s.`, strings.Join(bookmark.Editable, ", ")),
	Args:      cobra.ExactArgs(3),
	ValidArgs: bookmark.Editable,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		r, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer r.Close()

		res, err := (&command.Update{Store: r}).Execute(ctx, command.UpdateData{
			ID:     id,
			Fields: db.Fields{db.F(strings.ToLower(args[1]), args[2])},
		})
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), res.Message)

		return nil
	},
}
