// Package config holds the application settings and the user config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

const (
	driverModernc = "sqlite"
	driverCgo     = "sqlite3"

	defaultOrderBy = "date_added"
	maxPerPage     = 100
)

var (
	ErrConfigExists    = errors.New("config file already exists")
	ErrConfigDriver    = errors.New("unknown sqlite driver")
	ErrConfigOrderBy   = errors.New("invalid order_by column")
	ErrConfigPerPage   = errors.New("github per_page out of range")
	ErrConfigDBNameNil = errors.New("db_name cannot be empty")
)

// orderColumns are the columns a listing can be ordered by.
var orderColumns = []string{"id", "title", "url", "date_added"}

// ConfigFile represents the configuration file.
type ConfigFile struct {
	DBName  string `yaml:"db_name"`  // Database filename
	Driver  string `yaml:"driver"`   // SQLite driver, sqlite or sqlite3
	OrderBy string `yaml:"order_by"` // Default listing order
	GitHub  GitHub `yaml:"github"`   // Star import settings
}

// GitHub holds the star importer settings. The token is read from the
// environment only.
type GitHub struct {
	APIURL  string `yaml:"api_url"`  // API root, empty for api.github.com
	User    string `yaml:"user"`     // Default username
	PerPage int    `yaml:"per_page"` // Page size
}

// Defaults returns the default configuration.
func Defaults() *ConfigFile {
	return &ConfigFile{
		DBName:  MainDBName,
		Driver:  driverModernc,
		OrderBy: defaultOrderBy,
		GitHub: GitHub{
			PerPage: maxPerPage,
		},
	}
}

// Validate checks the config values.
func Validate(cfg *ConfigFile) error {
	if cfg.DBName == "" {
		return ErrConfigDBNameNil
	}
	if cfg.Driver != driverModernc && cfg.Driver != driverCgo {
		return fmt.Errorf("%w: %q", ErrConfigDriver, cfg.Driver)
	}
	if !slices.Contains(orderColumns, cfg.OrderBy) {
		return fmt.Errorf("%w: %q", ErrConfigOrderBy, cfg.OrderBy)
	}
	if cfg.GitHub.PerPage < 1 || cfg.GitHub.PerPage > maxPerPage {
		return fmt.Errorf("%w: %d", ErrConfigPerPage, cfg.GitHub.PerPage)
	}

	return nil
}

// Load reads the config file at p over the defaults. A missing file yields
// the defaults.
func Load(p string) (*ConfigFile, error) {
	cfg := Defaults()

	content, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("config file not found, using defaults", "path", p)
			return cfg, nil
		}

		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", p, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config %q: %w", p, err)
	}

	slog.Debug("config loaded", "path", p)

	return cfg, nil
}

// Write stores cfg as YAML at p. It refuses to overwrite an existing file
// unless force is set.
func Write(p string, cfg *ConfigFile, force bool) error {
	if _, err := os.Stat(p); err == nil && !force {
		return fmt.Errorf("%w: %q", ErrConfigExists, p)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	const dirPerm, filePerm = 0o755, 0o644
	if err := os.MkdirAll(filepath.Dir(p), dirPerm); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	if err := os.WriteFile(p, data, filePerm); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	slog.Info("config written", "path", p)

	return nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *ConfigFile) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	return data, nil
}

// GitHubToken returns the first non-empty token found in the environment.
func GitHubToken() string {
	for _, k := range App.Env.GitHubToken {
		if v := os.Getenv(k); v != "" {
			slog.Debug("github token found", "env", k)
			return v
		}
	}

	return ""
}
