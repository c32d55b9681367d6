// Package sys wraps the desktop integrations: clipboard, browser and
// environment.
package sys

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

var ErrCopyToClipboard = errors.New("copy to clipboard")

// Env retrieves an environment variable.
//
// If the environment variable is not set, returns the default value.
func Env(s, def string) string {
	if v, ok := os.LookupEnv(s); ok {
		return v
	}

	return def
}

// OpenInBrowser opens a URL in the default browser.
func OpenInBrowser(s string) error {
	if err := browser.OpenURL(s); err != nil {
		return fmt.Errorf("%w: opening in browser", err)
	}

	return nil
}

// CopyClipboard copies a string to the clipboard.
func CopyClipboard(s string) error {
	if err := clipboard.WriteAll(s); err != nil {
		return fmt.Errorf("%w: %w", ErrCopyToClipboard, err)
	}

	slog.Debug("text copied to clipboard", "text", s)

	return nil
}
