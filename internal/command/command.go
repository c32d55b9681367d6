// Package command holds one type per user-facing action. Each command wraps
// a single persistence call and reports back with a Result.
package command

import (
	"context"
	"errors"

	"github.com/mateconpizza/bark/internal/bookmark"
	"github.com/mateconpizza/bark/internal/db"
)

// ErrQuit is returned by Quit. It ends the interactive loop; it is not a
// failure.
var ErrQuit = errors.New("quit")

// Store is the persistence contract the commands rely on.
type Store interface {
	CreateTable(ctx context.Context, t db.Table, cols []db.Column) error
	Insert(ctx context.Context, t db.Table, data db.Fields) (int64, error)
	Select(ctx context.Context, dest any, t db.Table, orderBy string, criteria db.Fields) error
	Update(ctx context.Context, t db.Table, criteria, data db.Fields) error
	Delete(ctx context.Context, t db.Table, criteria db.Fields) error
}

// Result is what a command hands back for display.
type Result struct {
	Message   string
	Bookmarks []*bookmark.Bookmark
}

func message(s string) *Result {
	return &Result{Message: s}
}
