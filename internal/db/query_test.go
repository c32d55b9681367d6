package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCreateTable(t *testing.T) {
	t.Parallel()
	q, err := buildCreateTable("bookmarks", []Column{
		{"id", "INTEGER PRIMARY KEY AUTOINCREMENT"},
		{"title", "TEXT NOT NULL"},
		{"notes", "TEXT"},
	})
	require.NoError(t, err)
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS bookmarks (id INTEGER PRIMARY KEY AUTOINCREMENT, title TEXT NOT NULL, notes TEXT)",
		q,
	)

	_, err = buildCreateTable("bookmarks", nil)
	assert.ErrorIs(t, err, ErrTableNoColumns)
}

func TestBuildInsert(t *testing.T) {
	t.Parallel()
	q, args, err := buildInsert("bookmarks", Fields{
		F("title", "go"),
		F("url", "https://go.dev"),
		F("notes", nil),
	})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO bookmarks (title, url, notes) VALUES (?, ?, ?)", q)
	assert.Equal(t, []any{"go", "https://go.dev", nil}, args)

	_, _, err = buildInsert("bookmarks", nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestBuildSelect(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		orderBy  string
		criteria Fields
		want     string
		args     []any
	}{
		{
			name: "all rows",
			want: "SELECT * FROM bookmarks",
			args: []any{},
		},
		{
			name:    "ordered",
			orderBy: "title",
			want:    "SELECT * FROM bookmarks ORDER BY title",
			args:    []any{},
		},
		{
			name:     "filter then order",
			orderBy:  "date_added",
			criteria: Fields{F("id", 1), F("title", "go")},
			want:     "SELECT * FROM bookmarks WHERE id = ? AND title = ? ORDER BY date_added",
			args:     []any{1, "go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, args, err := buildSelect("bookmarks", tt.orderBy, tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestBuildUpdateArgsOrder(t *testing.T) {
	t.Parallel()
	q, args, err := buildUpdate("bookmarks",
		Fields{F("id", 7), F("url", "https://old")},
		Fields{F("notes", "x"), F("title", "new")},
	)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE bookmarks SET notes = ?, title = ? WHERE id = ? AND url = ?", q)
	assert.Equal(t, []any{"x", "new", 7, "https://old"}, args, "SET values must precede WHERE values")

	_, _, err = buildUpdate("bookmarks", nil, Fields{F("notes", "x")})
	assert.ErrorIs(t, err, ErrNoCriteria)

	_, _, err = buildUpdate("bookmarks", Fields{F("id", 1)}, nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestBuildDelete(t *testing.T) {
	t.Parallel()
	q, args, err := buildDelete("bookmarks", Fields{F("id", 3)})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM bookmarks WHERE id = ?", q)
	assert.Equal(t, []any{3}, args)

	_, _, err = buildDelete("bookmarks", Fields{})
	assert.ErrorIs(t, err, ErrNoCriteria)
}

func TestInvalidIdentifiers(t *testing.T) {
	t.Parallel()
	bad := "notes = 'x'; DROP TABLE bookmarks; --"

	_, _, err := buildInsert("bookmarks", Fields{F(bad, "x")})
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, _, err = buildSelect("bookmarks", bad, nil)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, _, err = buildUpdate("bookmarks", Fields{F("id", 1)}, Fields{F(bad, "x")})
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, _, err = buildDelete("book marks", Fields{F("id", 1)})
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = buildCreateTable("bookmarks", []Column{{"1id", "INTEGER"}})
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}
