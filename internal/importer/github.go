// Package importer mirrors remote bookmark sources into the local store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"

	"github.com/mateconpizza/bark/internal/bookmark"
)

const defaultPerPage = 100

var ErrUsernameEmpty = errors.New("github username cannot be empty")

// AddFn stores a single bookmark.
type AddFn = func(ctx context.Context, b *bookmark.Bookmark) error

// ProgressFn is called after every stored bookmark with the running count.
type ProgressFn func(n int)

type OptFn func(*Options)

type Options struct {
	baseURL  string
	token    string
	perPage  int
	client   *http.Client
	progress ProgressFn
}

// WithBaseURL points the importer at another API root, e.g. a GitHub
// Enterprise instance.
func WithBaseURL(s string) OptFn {
	return func(o *Options) {
		o.baseURL = s
	}
}

// WithToken authenticates every request with a personal access token.
func WithToken(s string) OptFn {
	return func(o *Options) {
		o.token = s
	}
}

// WithPerPage sets the page size requested from the API.
func WithPerPage(n int) OptFn {
	return func(o *Options) {
		if n > 0 {
			o.perPage = n
		}
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) OptFn {
	return func(o *Options) {
		o.client = c
	}
}

// WithProgress sets a progress callback.
func WithProgress(fn ProgressFn) OptFn {
	return func(o *Options) {
		o.progress = fn
	}
}

// GitHub imports starred repositories.
type GitHub struct {
	client   *github.Client
	perPage  int
	progress ProgressFn
}

// NewGitHub returns a GitHub importer.
func NewGitHub(ctx context.Context, opts ...OptFn) (*GitHub, error) {
	o := &Options{perPage: defaultPerPage}
	for _, opt := range opts {
		opt(o)
	}

	hc := o.client
	if o.token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.token})
		if hc != nil {
			ctx = context.WithValue(ctx, oauth2.HTTPClient, hc)
		}
		hc = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(hc)
	if o.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(o.baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing api url: %w", err)
		}
		client.BaseURL = u
	}

	return &GitHub{
		client:   client,
		perPage:  o.perPage,
		progress: o.progress,
	}, nil
}

// Stars walks every page of the user's starred repositories and hands each
// one to add as a bookmark. When preserve is set the bookmark keeps the
// star's own timestamp; otherwise `date_added` is left for add to stamp.
//
// There is no rollback: if a page or an add fails, the bookmarks stored so
// far stay stored and their count is returned alongside the error.
func (g *GitHub) Stars(ctx context.Context, username string, preserve bool, add AddFn) (int, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, ErrUsernameEmpty
	}

	opt := &github.ActivityListStarredOptions{
		ListOptions: github.ListOptions{PerPage: g.perPage},
	}

	var n int
	for {
		stars, resp, err := g.client.Activity.ListStarred(ctx, username, opt)
		if err != nil {
			return n, fmt.Errorf("listing starred repos: %w", err)
		}

		slog.Debug("fetched starred page", "user", username, "page", max(opt.Page, 1), "count", len(stars))

		for _, s := range stars {
			b := starToBookmark(s, preserve)
			if err := add(ctx, b); err != nil {
				return n, fmt.Errorf("adding %q: %w", b.URL, err)
			}

			n++
			if g.progress != nil {
				g.progress(n)
			}
		}

		if resp.NextPage == 0 {
			break
		}

		opt.Page = resp.NextPage
	}

	slog.Info("imported starred repos", "user", username, "count", n)

	return n, nil
}

func starToBookmark(s *github.StarredRepository, preserve bool) *bookmark.Bookmark {
	r := s.GetRepository()
	b := bookmark.New(r.GetName(), r.GetHTMLURL(), r.GetDescription())

	if preserve && s.StarredAt != nil {
		b.DateAdded = bookmark.FormatDate(s.GetStarredAt().Time)
	}

	return b
}
