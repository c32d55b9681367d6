// Package printer formats bookmark records for the terminal.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mateconpizza/bark/internal/bookmark"
)

const (
	maxTitleLen = 40
	maxURLLen   = 60
	maxNotesLen = 40
)

var headers = []string{"ID", "Title", "URL", "Notes", "Added"}

// Records prints the bookmarks as a table.
func Records(w io.Writer, bs []*bookmark.Bookmark) error {
	if len(bs) == 0 {
		_, err := fmt.Fprintln(w, "No bookmarks found.")
		return err
	}

	rows := make([][]string, 0, len(bs))
	for _, b := range bs {
		notes := "-"
		if b.Notes.Valid {
			notes = b.Notes.String
		}

		rows = append(rows, []string{
			strconv.FormatInt(b.ID, 10),
			Shorten(b.Title, maxTitleLen),
			Shorten(b.URL, maxURLLen),
			Shorten(notes, maxNotesLen),
			b.DateAdded,
		})
	}

	_, err := io.WriteString(w, SimpleTable(headers, rows))

	return err
}

// JSON prints the bookmarks as an indented JSON array.
func JSON(w io.Writer, bs []*bookmark.Bookmark) error {
	slog.Debug("formatting bookmarks in JSON", "count", len(bs))
	r := make([]*bookmark.BookmarkJSON, 0, len(bs))
	for _, b := range bs {
		r = append(r, b.JSON())
	}

	j, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal bookmarks: %w", err)
	}

	_, err = fmt.Fprintln(w, string(j))

	return err
}

// Shorten shortens a string to a maximum length.
//
//	string...
func Shorten(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}

	r := []rune(s)

	return string(r[:maxLength-3]) + "..."
}

// SimpleTable generates a simple ASCII table with basic borders.
func SimpleTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = utf8.RuneCountInString(header)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(colWidths) {
				colWidths[i] = max(colWidths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	var sb strings.Builder

	border := func() {
		sb.WriteString("+")
		for _, width := range colWidths {
			sb.WriteString(strings.Repeat("-", width+2) + "+")
		}
		sb.WriteString("\n")
	}

	line := func(cells []string) {
		sb.WriteString("|")
		for i, width := range colWidths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			padding := width - utf8.RuneCountInString(cell)
			sb.WriteString(" " + cell + strings.Repeat(" ", padding) + " |")
		}
		sb.WriteString("\n")
	}

	border()
	line(headers)
	border()
	for _, row := range rows {
		line(row)
	}
	border()

	return sb.String()
}
