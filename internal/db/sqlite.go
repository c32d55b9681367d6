// Package db provides the SQLite persistence layer: a single long-lived
// connection and a small query builder over ordered column/value pairs.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverModernc = "sqlite"  // modernc.org/sqlite, pure Go
	DriverCgo     = "sqlite3" // github.com/mattn/go-sqlite3
)

const busyTimeoutMS = "5000"

type Table string

// SQLite owns the connection to a single database file.
type SQLite struct {
	DB        *sqlx.DB `json:"-"`
	Cfg       *Cfg     `json:"db"`
	closeOnce sync.Once
}

// Name returns the name of the SQLite database.
func (r *SQLite) Name() string {
	return r.Cfg.Name
}

// Close closes the SQLite database connection and logs any errors encountered.
func (r *SQLite) Close() {
	s := r.Name()
	r.closeOnce.Do(func() {
		if err := r.DB.Close(); err != nil {
			slog.Error("closing database", "name", s, "error", err)
		} else {
			slog.Debug("database closed", "name", s)
		}
	})
}

// Open opens (creating it if needed) the database file at the given path
// using the named driver. An empty driver selects DriverModernc.
func Open(p, driver string) (*SQLite, error) {
	if p == "" {
		return nil, ErrDBPathEmpty
	}

	if driver == "" {
		driver = DriverModernc
	}

	c, err := NewCfg(p, driver)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(c.Path, 0o750); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := OpenDatabase(c.Fullpath(), driver)
	if err != nil {
		slog.Error("open repo", "error", err, "path", p)
		return nil, err
	}

	return &SQLite{DB: db, Cfg: c}, nil
}

// buildSQLiteDSN constructs a SQLite Data Source Name from a file path and
// optional parameters.
func buildSQLiteDSN(path string, params url.Values) string {
	if len(params) == 0 {
		return path
	}

	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}

	return fmt.Sprintf("%s%s%s", path, separator, params.Encode())
}

// driverParams returns the connection parameters in the syntax the given
// driver understands.
func driverParams(driver string) (url.Values, error) {
	v := url.Values{}

	switch driver {
	case DriverModernc:
		v.Add("_pragma", "busy_timeout("+busyTimeoutMS+")")
		v.Add("_pragma", "foreign_keys(1)")
	case DriverCgo:
		v.Set("_busy_timeout", busyTimeoutMS)
		v.Set("_foreign_keys", "on")
	default:
		return nil, fmt.Errorf("%w: %q", ErrDriverUnknown, driver)
	}

	return v, nil
}

// OpenDatabase opens a SQLite database at the specified path and verifies
// the connection, returning the database handle or an error.
func OpenDatabase(path, driver string) (*sqlx.DB, error) {
	slog.Debug("opening database", "path", path, "driver", driver)

	params, err := driverParams(driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driver, buildSQLiteDSN(path, params))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// one connection for the whole process, never recycled
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: on ping context", err)
	}

	return db, nil
}

// Cfg represents the configuration for a SQLite database.
type Cfg struct {
	Name   string `json:"name"`   // Name of the SQLite database
	Path   string `json:"path"`   // Path to the SQLite database
	Driver string `json:"driver"` // database/sql driver name
}

// Fullpath returns the full path to the SQLite database.
func (c *Cfg) Fullpath() string {
	return filepath.Join(c.Path, c.Name)
}

// Exists returns true if the SQLite database exists.
func (c *Cfg) Exists() bool {
	return fileExists(c.Fullpath())
}

// NewCfg returns the settings for the database at p.
func NewCfg(p, driver string) (*Cfg, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %q: %w", p, err)
	}

	return &Cfg{
		Path:   filepath.Dir(abs),
		Name:   ensureDBSuffix(filepath.Base(abs)),
		Driver: driver,
	}, nil
}

// fileExists checks if a file exists.
func fileExists(s string) bool {
	_, err := os.Stat(s)
	return !os.IsNotExist(err)
}

func ensureDBSuffix(s string) string {
	const suffix = ".db"
	if s == "" {
		return s
	}

	if filepath.Ext(s) != "" {
		return s
	}

	return s + suffix
}
