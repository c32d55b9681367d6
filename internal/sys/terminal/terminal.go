// Package terminal reads user input from a terminal or any reader.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var termState *term.State

var (
	ErrNotTTY           = errors.New("not a terminal")
	ErrNoStateToRestore = errors.New("no term state to restore")
)

// Save the current terminal state.
func saveState() error {
	oldState, err := term.GetState(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	termState = oldState

	return nil
}

// Restore the previously saved terminal state.
func restoreState() error {
	if termState == nil {
		return ErrNoStateToRestore
	}

	err := term.Restore(int(os.Stdin.Fd()), termState)
	if err != nil {
		return fmt.Errorf("restoring state: %w", err)
	}

	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	return isTerminal(os.Stdout)
}

func clearTerminal(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}
