package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mateconpizza/rotato"

	"github.com/mateconpizza/bark/internal/bookmark"
	"github.com/mateconpizza/bark/internal/command"
	"github.com/mateconpizza/bark/internal/config"
	"github.com/mateconpizza/bark/internal/db"
	"github.com/mateconpizza/bark/internal/importer"
	"github.com/mateconpizza/bark/internal/sys/terminal"
)

var ErrBookmarkNotFound = errors.New("bookmark not found")

// openStore opens the database and declares the bookmarks table.
func openStore(ctx context.Context) (*db.SQLite, error) {
	r, err := db.Open(config.App.DBPath(), cfg.Driver)
	if err != nil {
		return nil, err
	}

	if err := (&command.CreateTable{Store: r}).Execute(ctx); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

// parseID parses a bookmark id argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %q", bookmark.ErrInvalidID, s)
	}

	return id, nil
}

// bookmarkByID returns the bookmark with the given id argument.
func bookmarkByID(ctx context.Context, s command.Store, arg string) (*bookmark.Bookmark, error) {
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}

	res, err := (&command.ByID{Store: s}).Execute(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(res.Bookmarks) == 0 {
		return nil, fmt.Errorf("%w: id %d", ErrBookmarkNotFound, id)
	}

	return res.Bookmarks[0], nil
}

// progressStars shows a spinner while the stars are imported.
type progressStars struct {
	*importer.GitHub
	start func()
	stop  func()
}

func (p *progressStars) Stars(ctx context.Context, username string, preserve bool, add importer.AddFn) (int, error) {
	p.start()
	defer p.stop()

	return p.GitHub.Stars(ctx, username, preserve, add)
}

// newStarSource builds the GitHub importer from the config, the environment
// and the given overrides. On a terminal the import reports its progress.
func newStarSource(ctx context.Context, token, apiURL string) (command.StarSource, error) {
	if token == "" {
		token = config.GitHubToken()
	}
	if apiURL == "" {
		apiURL = cfg.GitHub.APIURL
	}

	opts := []importer.OptFn{
		importer.WithToken(token),
		importer.WithPerPage(cfg.GitHub.PerPage),
		importer.WithBaseURL(apiURL),
	}

	if !terminal.IsTerminal() {
		gh, err := importer.NewGitHub(ctx, opts...)
		if err != nil {
			return nil, err
		}

		return gh, nil
	}

	sp := rotato.New(
		rotato.WithMesg("importing starred repos..."),
		rotato.WithMesgColor(rotato.ColorYellow),
		rotato.WithSpinnerColor(rotato.ColorBrightMagenta),
	)
	opts = append(opts, importer.WithProgress(func(n int) {
		sp.UpdateMesg(fmt.Sprintf("importing starred repos... [%d]", n))
	}))

	gh, err := importer.NewGitHub(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &progressStars{
		GitHub: gh,
		start:  sp.Start,
		stop:   func() { sp.Done() },
	}, nil
}
