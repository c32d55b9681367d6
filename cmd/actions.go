package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/bark/internal/bookmark/qr"
	"github.com/mateconpizza/bark/internal/sys"
)

var (
	qrPNG  string
	qrSize int
)

var openCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "open a bookmark in the default browser",
	Args:  cobra.ExactArgs(1),
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

		return sys.OpenInBrowser(b.URL)
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "copy a bookmark URL to the clipboard",
	Args:  cobra.ExactArgs(1),
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

		return sys.CopyClipboard(b.URL)
	},
}

var qrCmd = &cobra.Command{
	Use:   "qr <id>",
	Short: "show a bookmark URL as a QR-Code",
	Args:  cobra.ExactArgs(1),
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

		q := qr.New(b.URL)
		if err := q.Generate(); err != nil {
			return err
		}

		if qrPNG != "" {
			return q.WritePNG(qrPNG, qrSize)
		}

		fmt.Fprint(cmd.OutOrStdout(), q.String())
		fmt.Fprintln(cmd.OutOrStdout(), b.Title)

		return nil
	},
}

func init() {
	const defaultQRSize = 256
	qrCmd.Flags().StringVar(&qrPNG, "png", "", "write a PNG image to this path")
	qrCmd.Flags().IntVar(&qrSize, "size", defaultQRSize, "PNG size in pixels")
}
