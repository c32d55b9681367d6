// Package bookmark contains the bookmark record.
package bookmark

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mateconpizza/bark/internal/db"
)

// Table is the table holding the bookmarks.
const Table db.Table = "bookmarks"

// DateLayout is the ISO-8601 layout used for `date_added`. It is fixed width
// so that ordering the column as text is chronological.
const DateLayout = "2006-01-02T15:04:05.000000Z07:00"

// Column names.
const (
	ColID        = "id"
	ColTitle     = "title"
	ColURL       = "url"
	ColNotes     = "notes"
	ColDateAdded = "date_added"
)

var (
	ErrInvalid     = errors.New("bookmark invalid")
	ErrInvalidID   = errors.New("invalid bookmark id")
	ErrTitleEmpty  = errors.New("title cannot be empty")
	ErrURLEmpty    = errors.New("URL cannot be empty")
	ErrIDImmutable = errors.New("bookmark id cannot be changed")
)

// Schema is the bookmarks table definition.
var Schema = []db.Column{
	{Name: ColID, Type: "INTEGER PRIMARY KEY AUTOINCREMENT"},
	{Name: ColTitle, Type: "TEXT NOT NULL"},
	{Name: ColURL, Type: "TEXT NOT NULL"},
	{Name: ColNotes, Type: "TEXT"},
	{Name: ColDateAdded, Type: "TEXT NOT NULL"},
}

// Editable are the columns a user can change.
var Editable = []string{ColTitle, ColURL, ColNotes}

// Bookmark represents a bookmark.
type Bookmark struct {
	ID        int64          `db:"id"         json:"id"`
	Title     string         `db:"title"      json:"title"`
	URL       string         `db:"url"        json:"url"`
	Notes     sql.NullString `db:"notes"      json:"-"`
	DateAdded string         `db:"date_added" json:"date_added"`
}

// BookmarkJSON is the JSON representation of a bookmark.
type BookmarkJSON struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Notes     *string `json:"notes"`
	DateAdded string  `json:"date_added"`
}

// New creates a bookmark. An empty notes string is stored as NULL.
func New(title, url, notes string) *Bookmark {
	return &Bookmark{
		Title: strings.TrimSpace(title),
		URL:   strings.TrimSpace(url),
		Notes: NullString(notes),
	}
}

func (b *Bookmark) JSON() *BookmarkJSON {
	j := &BookmarkJSON{
		ID:        b.ID,
		Title:     b.Title,
		URL:       b.URL,
		DateAdded: b.DateAdded,
	}

	if b.Notes.Valid {
		n := b.Notes.String
		j.Notes = &n
	}

	return j
}

// Fields returns the insertable columns of the bookmark, in schema order.
func (b *Bookmark) Fields() db.Fields {
	var notes any
	if b.Notes.Valid {
		notes = b.Notes.String
	}

	return db.Fields{
		db.F(ColTitle, b.Title),
		db.F(ColURL, b.URL),
		db.F(ColNotes, notes),
		db.F(ColDateAdded, b.DateAdded),
	}
}

// Validate checks the required fields.
func (b *Bookmark) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalid, ErrTitleEmpty)
	}

	if strings.TrimSpace(b.URL) == "" {
		return fmt.Errorf("%w: %w", ErrInvalid, ErrURLEmpty)
	}

	return nil
}

// Added parses the bookmark's `date_added`.
func (b *Bookmark) Added() (time.Time, error) {
	return ParseDate(b.DateAdded)
}

// FormatDate formats t as a `date_added` value, in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a `date_added` value. RFC 3339 input is accepted too.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return t, nil
}

// NullString converts an optional text value; empty means NULL.
func NullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}
