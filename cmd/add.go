package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mateconpizza/bark/internal/bookmark"
	"github.com/mateconpizza/bark/internal/bookmark/scraper"
	"github.com/mateconpizza/bark/internal/command"
	"github.com/mateconpizza/bark/internal/sys/terminal"
)

var (
	addTitle string
	addNotes string
	addDate  string
)

var addCmd = &cobra.Command{
	Use:   "add [url]",
	Short: "add a bookmark",
	Long: `add a bookmark.

When the title is missing it is scraped from the page, together with its
description as notes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var url string
		if len(args) == 1 {
			url = strings.TrimSpace(args[0])
		}
		if url == "" {
			t := terminal.New(terminal.WithReader(cmd.InOrStdin()), terminal.WithWriter(cmd.OutOrStdout()))
			defer t.CancelInterruptHandler()

			var err error
			if url, err = t.Prompt("URL: "); err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("reading url: %w", err)
			}
		}

		b := bookmark.New(addTitle, url, addNotes)
		if b.URL == "" {
			return fmt.Errorf("%w: %w", bookmark.ErrInvalid, bookmark.ErrURLEmpty)
		}

		if b.Title == "" {
			opts := []scraper.OptFn{}
			if terminal.IsTerminal() {
				opts = append(opts, scraper.WithSpinner())
			}

			p, err := scraper.Fetch(ctx, b.URL, opts...)
			if err != nil {
				return fmt.Errorf("%w: %w", bookmark.ErrTitleEmpty, err)
			}

			b.URL = p.URL
			b.Title = p.Title
			if !b.Notes.Valid {
				b.Notes = bookmark.NullString(p.Desc)
			}
		}

		if addDate != "" {
			t, err := bookmark.ParseDate(addDate)
			if err != nil {
				return err
			}
			b.DateAdded = bookmark.FormatDate(t)
		}

		if err := b.Validate(); err != nil {
			return err
		}

		r, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer r.Close()

		res, err := (&command.Add{Store: r}).Execute(ctx, b)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), res.Message)

		return nil
	},
}

func init() {
	f := addCmd.Flags()
	f.StringVarP(&addTitle, "title", "t", "", "bookmark title (scraped when empty)")
	f.StringVar(&addNotes, "notes", "", "bookmark notes")
	f.StringVar(&addDate, "date", "", "date added, RFC 3339 (default now)")
}
