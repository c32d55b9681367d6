package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mateconpizza/bark/internal/bookmark"
	"github.com/mateconpizza/bark/internal/db"
)

const (
	msgAdded   = "Bookmark added!"
	msgUpdated = "Bookmark updated!"
	msgDeleted = "Bookmark deleted!"
)

// CreateTable declares the bookmarks table.
type CreateTable struct {
	Store Store
}

func (c *CreateTable) Execute(ctx context.Context) error {
	if err := c.Store.CreateTable(ctx, bookmark.Table, bookmark.Schema); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	return nil
}

// Add inserts a bookmark, stamping it with the current UTC time unless it
// already carries a `date_added`. A given `date_added` is stored in the
// fixed-width layout.
type Add struct {
	Store Store
	Now   func() time.Time
}

func (c *Add) Execute(ctx context.Context, b *bookmark.Bookmark) (*Result, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if b.DateAdded == "" {
		now := time.Now
		if c.Now != nil {
			now = c.Now
		}
		b.DateAdded = bookmark.FormatDate(now())
	} else {
		t, err := bookmark.ParseDate(b.DateAdded)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", bookmark.ErrInvalid, err)
		}
		b.DateAdded = bookmark.FormatDate(t)
	}

	id, err := c.Store.Insert(ctx, bookmark.Table, b.Fields())
	if err != nil {
		return nil, fmt.Errorf("add bookmark: %w", err)
	}

	b.ID = id

	return message(msgAdded), nil
}

// List returns every bookmark ordered by OrderBy, `date_added` when empty.
type List struct {
	Store   Store
	OrderBy string
}

func (c *List) Execute(ctx context.Context) (*Result, error) {
	order := c.OrderBy
	if order == "" {
		order = bookmark.ColDateAdded
	}

	var bs []*bookmark.Bookmark
	if err := c.Store.Select(ctx, &bs, bookmark.Table, order, nil); err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}

	return &Result{Bookmarks: bs}, nil
}

// ByID returns the bookmark with the given id, or none.
type ByID struct {
	Store Store
}

func (c *ByID) Execute(ctx context.Context, id int64) (*Result, error) {
	var bs []*bookmark.Bookmark
	err := c.Store.Select(ctx, &bs, bookmark.Table, "", db.Fields{db.F(bookmark.ColID, id)})
	if err != nil {
		return nil, fmt.Errorf("get bookmark %d: %w", id, err)
	}

	return &Result{Bookmarks: bs}, nil
}

// UpdateData names the bookmark to change and the new column values.
type UpdateData struct {
	ID     int64
	Fields db.Fields
}

// Update changes columns of the bookmark with the given id. The id itself
// cannot be changed; any other unknown column fails in the store.
type Update struct {
	Store Store
}

func (c *Update) Execute(ctx context.Context, d UpdateData) (*Result, error) {
	for _, f := range d.Fields {
		// sqlite column names are case-insensitive
		if strings.EqualFold(strings.TrimSpace(f.Column), bookmark.ColID) {
			return nil, fmt.Errorf("update bookmark %d: %w", d.ID, bookmark.ErrIDImmutable)
		}
	}

	err := c.Store.Update(ctx, bookmark.Table, db.Fields{db.F(bookmark.ColID, d.ID)}, d.Fields)
	if err != nil {
		return nil, fmt.Errorf("update bookmark %d: %w", d.ID, err)
	}

	return message(msgUpdated), nil
}

// Delete removes the bookmark with the given id.
type Delete struct {
	Store Store
}

func (c *Delete) Execute(ctx context.Context, id int64) (*Result, error) {
	if err := c.Store.Delete(ctx, bookmark.Table, db.Fields{db.F(bookmark.ColID, id)}); err != nil {
		return nil, fmt.Errorf("delete bookmark %d: %w", id, err)
	}

	return message(msgDeleted), nil
}

// Quit ends the interactive session.
type Quit struct{}

func (Quit) Execute(context.Context) (*Result, error) {
	return nil, ErrQuit
}
