// Package scraper fetches a web page and extracts the data needed to fill in
// a bookmark the user added without a title.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mateconpizza/rotato"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	ErrBadStatus         = errors.New("unexpected status code")
)

// maxBody caps how much of a page is read.
const maxBody = 10 * 1024 * 1024

var descSelectors = []string{
	"meta[name='description']",
	"meta[name='Description']",
	"meta[property='description']",
	"meta[property='og:description']",
	"meta[name='og:description']",
}

// Page holds the data scraped from a web page.
type Page struct {
	URL   string
	Title string
	Desc  string
}

type OptFn func(*Options)

type spinner interface {
	Start()
	Done(mesg ...string)
}

type Options struct {
	client *http.Client
	sp     spinner
}

// WithClient sets the HTTP client.
func WithClient(c *http.Client) OptFn {
	return func(o *Options) {
		o.client = c
	}
}

// WithSpinner shows a spinner while the page is fetched.
func WithSpinner() OptFn {
	return func(o *Options) {
		o.sp = rotato.New(
			rotato.WithMesg("scraping webpage..."),
			rotato.WithMesgColor(rotato.ColorYellow),
			rotato.WithSpinnerColor(rotato.ColorBrightMagenta),
		)
	}
}

func defaults() *Options {
	return &Options{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch downloads rawURL and parses its title and description. A URL
// without a scheme is fetched over https.
func Fetch(ctx context.Context, rawURL string, opts ...OptFn) (*Page, error) {
	o := defaults()
	for _, opt := range opts {
		opt(o)
	}

	u, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	if o.sp != nil {
		o.sp.Start()
		defer o.sp.Done()
	}

	doc, err := fetchDoc(ctx, o.client, u)
	if err != nil {
		return nil, err
	}

	return &Page{
		URL:   u,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		Desc:  description(doc),
	}, nil
}

func description(doc *goquery.Document) string {
	for _, sel := range descSelectors {
		if d := strings.TrimSpace(doc.Find(sel).AttrOr("content", "")); d != "" {
			return d
		}
	}

	return ""
}

func setHeaders(r *http.Request) {
	r.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:124.0) Gecko/20100101 Firefox/124.0")
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("Accept-Language", "en-US,en;q=0.5")
}

func fetchDoc(ctx context.Context, c *http.Client, u string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	setHeaders(req)

	start := time.Now()

	res, err := c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", u, err)
	}

	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("error closing response body", "url", u, "error", err)
		}
	}()

	slog.Info("received response", "url", u, "status", res.StatusCode, "duration", time.Since(start))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	return doc, nil
}

func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing url: %w", err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		return parsed.String(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, parsed.Scheme)
	}
}
