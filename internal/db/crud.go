package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// CreateTable creates the table if it does not exist yet.
func (r *SQLite) CreateTable(ctx context.Context, t Table, cols []Column) error {
	q, err := buildCreateTable(t, cols)
	if err != nil {
		return err
	}

	slog.Debug("creating table", "name", t)

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("creating table %q: %w", t, err)
		}

		return nil
	})
}

// Insert adds a new row and returns its id.
func (r *SQLite) Insert(ctx context.Context, t Table, data Fields) (int64, error) {
	q, args, err := buildInsert(t, data)
	if err != nil {
		return 0, err
	}

	var id int64
	err = r.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("inserting into %q: %w", t, err)
		}

		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting last insert id: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Debug("inserted record", "table", t, "id", id)

	return id, nil
}

// Select scans every row of t matching all criteria into dest, which must be
// a pointer to a slice. An empty orderBy keeps the store's natural order.
func (r *SQLite) Select(ctx context.Context, dest any, t Table, orderBy string, criteria Fields) error {
	q, args, err := buildSelect(t, orderBy, criteria)
	if err != nil {
		return err
	}

	if err := r.DB.SelectContext(ctx, dest, q, args...); err != nil {
		return fmt.Errorf("selecting from %q: %w", t, err)
	}

	return nil
}

// Update sets data on every row of t matching all criteria.
func (r *SQLite) Update(ctx context.Context, t Table, criteria, data Fields) error {
	q, args, err := buildUpdate(t, criteria, data)
	if err != nil {
		return err
	}

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("updating %q: %w", t, err)
		}

		logAffected(res, "updated records", t)

		return nil
	})
}

// Delete removes every row of t matching all criteria.
func (r *SQLite) Delete(ctx context.Context, t Table, criteria Fields) error {
	q, args, err := buildDelete(t, criteria)
	if err != nil {
		return err
	}

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, q, args...)
		if err != nil {
			return fmt.Errorf("deleting from %q: %w", t, err)
		}

		logAffected(res, "deleted records", t)

		return nil
	})
}

// WithTx runs fn inside a transaction. The transaction is rolled back if fn
// returns an error or panics, and committed otherwise.
func (r *SQLite) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		} else if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("rollback error", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}

	return nil
}

func logAffected(res sql.Result, msg string, t Table) {
	n, err := res.RowsAffected()
	if err != nil {
		slog.Warn("rows affected", "table", t, "error", err)
		return
	}

	slog.Debug(msg, "table", t, "count", n)
}
