package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateconpizza/bark/internal/bookmark"
	"github.com/mateconpizza/bark/internal/db"
	"github.com/mateconpizza/bark/internal/importer"
)

func setupTestDB(t *testing.T) *db.SQLite {
	t.Helper()
	r, err := db.Open(filepath.Join(t.TempDir(), "bookmarks.db"), db.DriverModernc)
	require.NoError(t, err)
	t.Cleanup(r.Close)
	require.NoError(t, (&CreateTable{Store: r}).Execute(t.Context()))

	return r
}

// fixedClock returns a clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Second)
	}
}

func addAll(t *testing.T, add *Add, bs ...*bookmark.Bookmark) {
	t.Helper()
	for _, b := range bs {
		res, err := add.Execute(t.Context(), b)
		require.NoError(t, err)
		assert.Equal(t, msgAdded, res.Message)
	}
}

func byID(t *testing.T, s Store, id int64) []*bookmark.Bookmark {
	t.Helper()
	res, err := (&ByID{Store: s}).Execute(t.Context(), id)
	require.NoError(t, err)

	return res.Bookmarks
}

func TestCreateTableIdempotent(t *testing.T) {
	t.Parallel()
	r := setupTestDB(t)
	require.NoError(t, (&CreateTable{Store: r}).Execute(t.Context()))

	var n int
	err := r.DB.GetContext(t.Context(), &n,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", bookmark.Table)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAddRoundTrip(t *testing.T) {
	t.Parallel()
	r := setupTestDB(t)

	b := bookmark.New("Go", "https://go.dev", "the language")
	addAll(t, &Add{Store: r}, b)
	require.NotZero(t, b.ID)

	got := byID(t, r, b.ID)
	require.Len(t, got, 1)
	assert.Equal(t, "Go", got[0].Title)
	assert.Equal(t, "https://go.dev", got[0].URL)
	assert.Equal(t, "the language", got[0].Notes.String)

	added, err := got[0].Added()
	require.NoError(t, err, "date_added must be ISO-8601")
	assert.WithinDuration(t, time.Now(), added, time.Minute)
	assert.Equal(t, time.UTC, added.Location())
}

func TestAddKeepsExplicitTimestamp(t *testing.T) {
	t.Parallel()
	r := setupTestDB(t)

	b := bookmark.New("Go", "https://go.dev", "")
	b.DateAdded = "2019-03-04T05:06:07.000000Z"
	addAll(t, &Add{Store: r}, b)

	got := byID(t, r, b.ID)
	require.Len(t, got, 1)
	assert.Equal(t, "2019-03-04T05:06:07.000000Z", got[0].DateAdded)
	assert.False(t, got[0].Notes.Valid)
}

func TestAddRejectsEmptyFields(t *testing.T) {
	t.Parallel()
	r := setupTestDB(t)
	add := &Add{Store: r}

	_, err := add.Execute(t.Context(), &bookmark.Bookmark{URL: "https://go.dev"})
	require.ErrorIs(t, err, bookmark.ErrTitleEmpty)

	_, err = add.Execute(t.Context(), &bookmark.Bookmark{Title: "Go", URL: "  "})
	require.ErrorIs(t, err, bookmark.ErrURLEmpty)

	list, err := (&List{Store: r}).Execute(t.Context())
	require.NoError(t, err)
	assert.Empty(t, list.Bookmarks)

	// NOT NULL violations surface from the store
	_, err = r.Insert(t.Context(), bookmark.Table, db.Fields{db.F(bookmark.ColURL, "https://go.dev")})
	assert.Error(t, err)
}

func TestAddNormalizesTimestamp(t *testing.T) {
	t.Parallel()
	r := setupTestDB(t)

	a := bookmark.New("a", "https://a", "")
	a.DateAdded = "2019-03-04T05:06:07Z"
	b := bookmark.New("b", "https://b", "")
	b.DateAdded = "2019-03-04T05:06:07.000001Z"
	c := bookmark.New("c", "https://c", "")
	c.DateAdded = "2019-03-04T07:06:07+02:00"
	addAll(t, &Add{Store: r}, b, a, c)

	assert.Equal(t, "2019-03-04T05:06:07.000000Z", byID(t, r, a.ID)[0].DateAdded)
	assert.Equal(t, "2019-03-04T05:06:07.000000Z", byID(t, r, c.ID)[0].DateAdded)

	list, err := (&List{Store: r}).Execute(t.Context())
	require.NoError(t, err)
	require.Len(t, list.Bookmarks, 3)
	assert.Equal(t, "b", list.Bookmarks[2].Title, "latest timestamp sorts last")

	bad := bookmark.New("d", "https://d", "")
	bad.DateAdded = "yesterday"
	_, err = (&Add{Store: r}).Execute(t.Context(), bad)
	assert.ErrorIs(t, err, bookmark.ErrInvalid)
}

func TestListOrdering(t *testing.T) {
	t.Parallel()
	r := setupTestDB(t)
	add := &Add{Store: r, Now: fixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))}
	addAll(t, add,
		bookmark.New("charlie", "https://c", ""),
		bookmark.New("alpha", "https://a", ""),
		bookmark.New("bravo", "https://b", ""),
	)

	titles := func(bs []*bookmark.Bookmark) []string {
		s := make([]string, 0, len(bs))
		for _, b := range bs {
			s = append(s, b.Title)
		}
		return s
	}

	res, err := (&List{Store: r, OrderBy: bookmark.ColTitle}).Execute(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, titles(res.Bookmarks))

	res, err = (&List{Store: r}).Execute(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"charlie", "alpha", "bravo"}, titles(res.Bookmarks))
	assert.Empty(t, res.Message)

	_, err = (&List{Store: r, OrderBy: "tags"}).Execute(t.Context())
	assert.Error(t, err)
}

func TestUpdateOnlyTarget(t *testing.T) {
	t.Parallel()
	r := setupTestDB(t)
	addAll(t, &Add{Store: r},
		bookmark.New("one", "https://1", "n1"),
		bookmark.New("two", "https://2", "n2"),
	)
	before2 := byID(t, r, 2)[0]
	before1 := byID(t, r, 1)[0]

	res, err := (&Update{Store: r}).Execute(t.Context(), UpdateData{
		ID:     1,
		Fields: db.Fields{db.F(bookmark.ColNotes, "x")},
	})
	require.NoError(t, err)
	assert.Equal(t, msgUpdated, res.Message)

	after1 := byID(t, r, 1)[0]
	assert.Equal(t, "x", after1.Notes.String)
	assert.Equal(t, before1.Title, after1.Title)
	assert.Equal(t, before1.URL, after1.URL)
	assert.Equal(t, before1.DateAdded, after1.DateAdded)
	assert.Equal(t, before2, byID(t, r, 2)[0])
}

func TestUpdateUnknownField(t *testing.T) {
	t.Parallel()
	r := setupTestDB(t)
	addAll(t, &Add{Store: r}, bookmark.New("one", "https://1", ""))

	_, err := (&Update{Store: r}).Execute(t.Context(), UpdateData{
		ID:     1,
		Fields: db.Fields{db.F("tags", "x")},
	})
	assert.Error(t, err)
}

func TestUpdateRejectsID(t *testing.T) {
	t.Parallel()
	r := setupTestDB(t)
	addAll(t, &Add{Store: r}, bookmark.New("one", "https://1", ""))

	for _, col := range []string{bookmark.ColID, "ID"} {
		_, err := (&Update{Store: r}).Execute(t.Context(), UpdateData{
			ID:     1,
			Fields: db.Fields{db.F(bookmark.ColTitle, "renamed"), db.F(col, 99)},
		})
		require.ErrorIs(t, err, bookmark.ErrIDImmutable, col)
	}

	got := byID(t, r, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "one", got[0].Title)
	assert.Empty(t, byID(t, r, 99))
}

func TestDelete(t *testing.T) {
	t.Parallel()
	r := setupTestDB(t)
	addAll(t, &Add{Store: r},
		bookmark.New("one", "https://1", ""),
		bookmark.New("two", "https://2", ""),
		bookmark.New("three", "https://3", ""),
	)

	res, err := (&Delete{Store: r}).Execute(t.Context(), 2)
	require.NoError(t, err)
	assert.Equal(t, msgDeleted, res.Message)
	assert.Empty(t, byID(t, r, 2))

	list, err := (&List{Store: r}).Execute(t.Context())
	require.NoError(t, err)
	require.Len(t, list.Bookmarks, 2)
	assert.Equal(t, int64(1), list.Bookmarks[0].ID)
	assert.Equal(t, int64(3), list.Bookmarks[1].ID)
}

func TestQuit(t *testing.T) {
	t.Parallel()
	res, err := Quit{}.Execute(t.Context())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrQuit)
}

type fakeStars struct {
	stars []*bookmark.Bookmark
	err   error
}

func (f *fakeStars) Stars(ctx context.Context, _ string, _ bool, add func(context.Context, *bookmark.Bookmark) error) (int, error) {
	n := 0
	for _, b := range f.stars {
		if err := add(ctx, b); err != nil {
			return n, err
		}
		n++
	}

	return n, f.err
}

func TestImportStarsPartialFailure(t *testing.T) {
	t.Parallel()
	r := setupTestDB(t)
	errNet := errors.New("connection reset")
	src := &fakeStars{
		stars: []*bookmark.Bookmark{bookmark.New("a", "https://a", ""), bookmark.New("b", "https://b", "")},
		err:   errNet,
	}

	_, err := (&ImportStars{Source: src, Add: &Add{Store: r}}).Execute(t.Context(), ImportData{Username: "octo"})
	assert.ErrorIs(t, err, errNet)

	list, err := (&List{Store: r}).Execute(t.Context())
	require.NoError(t, err)
	assert.Len(t, list.Bookmarks, 2, "bookmarks added before the failure stay committed")
}

func starServer(t *testing.T, pages [][]map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			_, _ = fmt.Sscanf(p, "%d", &page)
		}
		if page < len(pages) {
			w.Header().Set("Link", fmt.Sprintf(`<http://%s%s?page=%d>; rel="next"`, r.Host, r.URL.Path, page+1))
		}
		_ = json.NewEncoder(w).Encode(pages[page-1])
	}))
	t.Cleanup(srv.Close)

	return srv
}

func star(name string, at time.Time) map[string]any {
	return map[string]any{
		"starred_at": at.Format(time.RFC3339),
		"repo": map[string]any{
			"name":        name,
			"html_url":    "https://github.com/octo/" + name,
			"description": "about " + name,
		},
	}
}

func TestImportStarsFromGitHub(t *testing.T) {
	t.Parallel()
	base := time.Date(2018, 6, 1, 12, 0, 0, 0, time.UTC)
	var pages [][]map[string]any
	i := 0
	for _, size := range []int{3, 2} {
		var page []map[string]any
		for range size {
			page = append(page, star(fmt.Sprintf("repo%d", i), base.Add(time.Duration(i)*time.Hour)))
			i++
		}
		pages = append(pages, page)
	}
	srv := starServer(t, pages)

	for _, preserve := range []bool{false, true} {
		t.Run(fmt.Sprintf("preserve=%v", preserve), func(t *testing.T) {
			t.Parallel()
			r := setupTestDB(t)
			gh, err := importer.NewGitHub(t.Context(), importer.WithBaseURL(srv.URL))
			require.NoError(t, err)

			importNow := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
			cmd := &ImportStars{
				Source: gh,
				Add:    &Add{Store: r, Now: func() time.Time { return importNow }},
			}
			res, err := cmd.Execute(t.Context(), ImportData{Username: "octo", PreserveTimestamps: preserve})
			require.NoError(t, err)
			assert.Equal(t, "Imported 5 bookmarks from starred repos!", res.Message)

			list, err := (&List{Store: r, OrderBy: bookmark.ColID}).Execute(t.Context())
			require.NoError(t, err)
			require.Len(t, list.Bookmarks, 5)

			for j, b := range list.Bookmarks {
				assert.Equal(t, fmt.Sprintf("repo%d", j), b.Title)
				assert.Equal(t, "about "+b.Title, b.Notes.String)

				want := importNow
				if preserve {
					want = base.Add(time.Duration(j) * time.Hour)
				}
				assert.Equal(t, bookmark.FormatDate(want), b.DateAdded)
			}
		})
	}
}
