package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mateconpizza/bark/internal/bookmark"
	"github.com/mateconpizza/bark/internal/command"
	"github.com/mateconpizza/bark/internal/ui/printer"
)

var (
	listOrder string
	listJSON  bool
	listID    int64
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "list bookmarks",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		r, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer r.Close()

		var res *command.Result
		if listID > 0 {
			res, err = (&command.ByID{Store: r}).Execute(ctx, listID)
		} else {
			order := cfg.OrderBy
			if cmd.Flags().Changed("order") {
				order = listOrder
			}
			res, err = (&command.List{Store: r, OrderBy: order}).Execute(ctx)
		}
		if err != nil {
			return err
		}

		if listJSON {
			return printer.JSON(cmd.OutOrStdout(), res.Bookmarks)
		}

		return printer.Records(cmd.OutOrStdout(), res.Bookmarks)
	},
}

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listOrder, "order", "o", bookmark.ColDateAdded, "order by column [title|date_added]")
	f.BoolVarP(&listJSON, "json", "j", false, "print data in JSON format")
	f.Int64Var(&listID, "id", 0, "show only the bookmark with this id")
}
