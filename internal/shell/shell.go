// Package shell runs the interactive menu loop over the bookmark commands.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mateconpizza/bark/internal/bookmark"
	"github.com/mateconpizza/bark/internal/command"
	"github.com/mateconpizza/bark/internal/ui/printer"
)

const (
	msgWelcome       = "Welcome to Bark!"
	msgInvalidChoice = "Invalid choice"
	msgReturnToMenu  = "Press ENTER to return to menu"
	promptChoice     = "Choose an option: "
)

// Prompter reads user input.
type Prompter interface {
	Prompt(p string) (string, error)
	Input(p string, items []string) (string, error)
	Confirm(q, def string) (bool, error)
	WaitForEnter(p string) error
	Clear()
	Writer() io.Writer
}

// Option is a menu entry. Run gathers any input it needs and executes its
// command.
type Option struct {
	Key  string
	Name string
	Run  func(ctx context.Context) (*command.Result, error)
}

func (o Option) String() string {
	return fmt.Sprintf("(%s) %s", o.Key, o.Name)
}

// Deps are the collaborators of the menu commands.
type Deps struct {
	Store      command.Store
	Stars      command.StarSource
	GitHubUser string // default username for the star import
}

// Shell is the interactive menu.
type Shell struct {
	term    Prompter
	out     io.Writer
	options []Option
}

// New returns a shell with the bookmark menu.
func New(t Prompter, d *Deps) *Shell {
	s := &Shell{term: t, out: t.Writer()}
	s.options = s.menu(d)

	return s
}

// Options returns the menu entries in display order.
func (s *Shell) Options() []Option {
	return s.options
}

func (s *Shell) menu(d *Deps) []Option {
	add := &command.Add{Store: d.Store}

	return []Option{
		{Key: "A", Name: "Add a bookmark", Run: func(ctx context.Context) (*command.Result, error) {
			b, err := s.newBookmarkData()
			if err != nil {
				return nil, err
			}

			return add.Execute(ctx, b)
		}},
		{Key: "B", Name: "List bookmarks by date", Run: (&command.List{
			Store:   d.Store,
			OrderBy: bookmark.ColDateAdded,
		}).Execute},
		{Key: "T", Name: "List bookmarks by title", Run: (&command.List{
			Store:   d.Store,
			OrderBy: bookmark.ColTitle,
		}).Execute},
		{Key: "U", Name: "Update a bookmark", Run: func(ctx context.Context) (*command.Result, error) {
			data, err := s.updateData()
			if err != nil {
				return nil, err
			}

			return (&command.Update{Store: d.Store}).Execute(ctx, data)
		}},
		{Key: "D", Name: "Delete a bookmark", Run: func(ctx context.Context) (*command.Result, error) {
			id, err := s.readID("Enter a bookmark ID to delete")
			if err != nil {
				return nil, err
			}

			return (&command.Delete{Store: d.Store}).Execute(ctx, id)
		}},
		{Key: "G", Name: "Import GitHub stars", Run: func(ctx context.Context) (*command.Result, error) {
			data, err := s.importData(d.GitHubUser)
			if err != nil {
				return nil, err
			}

			return (&command.ImportStars{Source: d.Stars, Add: add}).Execute(ctx, data)
		}},
		{Key: "Q", Name: "Quit", Run: command.Quit{}.Execute},
	}
}

// Run shows the menu until the user quits or the input ends. An error from
// a command ends the loop and is returned.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, msgWelcome)

	for {
		err := s.loop(ctx)
		switch {
		case err == nil:
			continue
		case errors.Is(err, command.ErrQuit), errors.Is(err, io.EOF):
			slog.Debug("leaving shell", "reason", err)
			return nil
		default:
			return err
		}
	}
}

// loop runs one menu round: choose, execute, print, wait.
func (s *Shell) loop(ctx context.Context) error {
	s.term.Clear()
	s.printOptions()

	opt, err := s.choose()
	if err != nil {
		return err
	}

	s.term.Clear()
	slog.Debug("option chosen", "key", opt.Key)

	res, err := opt.Run(ctx)
	if err != nil {
		return err
	}

	if err := s.print(res); err != nil {
		return err
	}

	return s.term.WaitForEnter(msgReturnToMenu)
}

func (s *Shell) printOptions() {
	for _, o := range s.options {
		fmt.Fprintln(s.out, o)
	}
	fmt.Fprintln(s.out)
}

// choose prompts until the answer names an option. Case is ignored.
func (s *Shell) choose() (Option, error) {
	for {
		c, err := s.term.Prompt(promptChoice)
		if err != nil {
			return Option{}, err
		}

		for _, o := range s.options {
			if strings.EqualFold(c, o.Key) {
				return o, nil
			}
		}

		fmt.Fprintln(s.out, msgInvalidChoice)
	}
}

func (s *Shell) print(res *command.Result) error {
	if res == nil {
		return nil
	}

	if res.Message != "" {
		_, err := fmt.Fprintln(s.out, res.Message)
		return err
	}

	return printer.Records(s.out, res.Bookmarks)
}
