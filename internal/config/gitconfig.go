package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// GitConfigPath returns the path of the user's global git config.
func GitConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	return filepath.Join(home, ".gitconfig"), nil
}

// GitConfigUser reads `github.user` from the git config file at p. It
// returns an empty string when the file or the key is missing.
func GitConfigUser(p string) string {
	f, err := ini.Load(p)
	if err != nil {
		slog.Debug("reading git config", "path", p, "error", err)
		return ""
	}

	return strings.TrimSpace(f.Section("github").Key("user").String())
}

// GitHubUser returns the default username for the star import: the config
// value, else `github.user` from the global git config.
func GitHubUser(cfg *ConfigFile) string {
	if cfg != nil && cfg.GitHub.User != "" {
		return cfg.GitHub.User
	}

	p, err := GitConfigPath()
	if err != nil {
		slog.Debug("git config path", "error", err)
		return ""
	}

	return GitConfigUser(p)
}
