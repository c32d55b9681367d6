package scraper

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = fmt.Fprintln(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestFetch(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		body  string
		title string
		desc  string
	}{
		{
			name:  "title and description",
			body:  `<html><head><title> Test Title </title><meta name="description" content="Test Description"></head></html>`,
			title: "Test Title",
			desc:  "Test Description",
		},
		{
			name:  "og description fallback",
			body:  `<html><head><title>T</title><meta property="og:description" content="  OG  "></head></html>`,
			title: "T",
			desc:  "OG",
		},
		{
			name: "first matching selector wins",
			body: `<html><head><meta name="description" content="First"><meta property="description" content="Second"></head></html>`,
			desc: "First",
		},
		{
			name: "no title tag",
			body: `<h1>Test Heading</h1>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := createTestServer(t, http.StatusOK, tt.body)
			p, err := Fetch(t.Context(), srv.URL)
			require.NoError(t, err)
			assert.Equal(t, tt.title, p.Title)
			assert.Equal(t, tt.desc, p.Desc)
			assert.Equal(t, srv.URL, p.URL)
		})
	}
}

func TestFetchErrors(t *testing.T) {
	t.Parallel()

	t.Run("bad status", func(t *testing.T) {
		t.Parallel()
		srv := createTestServer(t, http.StatusNotFound, "<title>missing</title>")
		_, err := Fetch(t.Context(), srv.URL, WithClient(srv.Client()))
		assert.ErrorIs(t, err, ErrBadStatus)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		t.Parallel()
		_, err := Fetch(t.Context(), "ftp://example.com")
		assert.ErrorIs(t, err, ErrUnsupportedScheme)
	})
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()
	u, err := normalizeURL("example.com/path")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/path", u)

	u, err = normalizeURL(" http://example.com ")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", u)
}
