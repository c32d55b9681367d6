package command

import (
	"context"
	"fmt"

	"github.com/mateconpizza/bark/internal/bookmark"
)

// StarSource lists a user's starred repositories, passing each one to add.
type StarSource interface {
	Stars(ctx context.Context, username string, preserve bool, add func(context.Context, *bookmark.Bookmark) error) (int, error)
}

// ImportData are the inputs of an import.
type ImportData struct {
	Username           string
	PreserveTimestamps bool
}

// ImportStars adds a bookmark for every repository the user starred.
// Every bookmark is committed on its own; a failure stops the import but
// keeps what was already added.
type ImportStars struct {
	Source StarSource
	Add    *Add
}

func (c *ImportStars) Execute(ctx context.Context, d ImportData) (*Result, error) {
	n, err := c.Source.Stars(ctx, d.Username, d.PreserveTimestamps, func(ctx context.Context, b *bookmark.Bookmark) error {
		_, err := c.Add.Execute(ctx, b)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("import stars after %d bookmarks: %w", n, err)
	}

	return message(fmt.Sprintf("Imported %d bookmarks from starred repos!", n)), nil
}
