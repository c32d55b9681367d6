package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	prompt "github.com/c-bata/go-prompt"
)

const termPromptPrefix = "> "

var ErrActionAborted = errors.New("action aborted")

// defaultInterruptFn is the default interrupt function for the terminal.
func defaultInterruptFn(error) {}

// TermOptFn is an option function for the terminal.
type TermOptFn func(*Options)

// Options represents the options for the terminal.
type Options struct {
	reader      io.Reader
	writer      io.Writer
	PromptStr   string
	InterruptFn func(error)
}

// Term is a struct that represents a terminal.
type Term struct {
	Options
	r        *bufio.Reader
	cancelFn context.CancelFunc
}

// defaultOpts returns the default terminal options.
func defaultOpts() Options {
	return Options{
		reader:    os.Stdin,
		writer:    os.Stdout,
		PromptStr: termPromptPrefix,
	}
}

// WithReader sets the reader for the terminal.
func WithReader(r io.Reader) TermOptFn {
	return func(o *Options) {
		o.reader = r
	}
}

// WithWriter sets the writer prompts are printed to.
func WithWriter(w io.Writer) TermOptFn {
	return func(o *Options) {
		o.writer = w
	}
}

// WithInterruptFn sets the interrupt function for the terminal. It runs
// before the process exits on SIGINT, SIGTERM or SIGHUP.
func WithInterruptFn(fn func(error)) TermOptFn {
	return func(o *Options) {
		o.InterruptFn = fn
	}
}

// New returns a new terminal.
func New(opts ...TermOptFn) *Term {
	t := &Term{
		Options: defaultOpts(),
	}

	for _, opt := range opts {
		opt(&t.Options)
	}

	t.r = bufio.NewReader(t.reader)

	// set up the interrupt handler
	if t.InterruptFn == nil {
		t.InterruptFn = defaultInterruptFn
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancelFn = cancel
	setupInterruptHandler(ctx, t.InterruptFn)

	return t
}

// Writer returns the writer prompts are printed to.
func (t *Term) Writer() io.Writer {
	return t.writer
}

// Prompt prints p and returns the next line of input, trimmed.
//
// io.EOF is returned only when the input ends before any text is read.
func (t *Term) Prompt(p string) (string, error) {
	fmt.Fprint(t.writer, p)

	s, err := t.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if s == "" {
			fmt.Fprintln(t.writer)
			return "", io.EOF
		}
	}

	return strings.TrimSpace(s), nil
}

// Input prompts for a line of input with prefix suggestions from items.
// Suggestions need an interactive terminal; otherwise it falls back to
// Prompt.
func (t *Term) Input(p string, items []string) (string, error) {
	if !t.IsInteractive() {
		return t.Prompt(p)
	}

	o, restore := prepareInputState(t.abort)
	defer restore()

	s := prompt.Input(p, completerPrefix(items), o...)

	return strings.TrimSpace(s), nil
}

// Confirm prompts the user with a yes/no question. An empty answer picks def.
func (t *Term) Confirm(q, def string) (bool, error) {
	if len(def) > 1 {
		// get first char
		def = def[:1]
	}
	def = strings.ToLower(def)
	opts := []string{"y", "n"}
	if !slices.Contains(opts, def) {
		def = "n"
	}

	p := buildPrompt(q, fmt.Sprintf("[%s]:", strings.Join(fmtChoicesWithDefault(opts, def), "/")))
	for {
		s, err := t.Prompt(p)
		if err != nil {
			return false, err
		}

		s = strings.ToLower(s)
		switch {
		case s == "":
			return def == "y", nil
		case s == "y" || s == "yes":
			return true, nil
		case s == "n" || s == "no":
			return false, nil
		}

		fmt.Fprintln(t.writer, "invalid response. use: y or n")
	}
}

// WaitForEnter displays p and waits for the user to press ENTER.
func (t *Term) WaitForEnter(p string) error {
	_, err := t.Prompt(p)
	return err
}

// Clear clears the terminal. It does nothing when the input is not an
// interactive terminal.
func (t *Term) Clear() {
	if !t.IsInteractive() {
		slog.Debug("skip clearing the term", "error", ErrNotTTY)
		return
	}

	clearTerminal(t.writer)
}

// IsInteractive reports whether the terminal reads from a TTY.
func (t *Term) IsInteractive() bool {
	f, ok := t.reader.(*os.File)
	return ok && isTerminal(f)
}

// CancelInterruptHandler cancels the interrupt handler.
func (t *Term) CancelInterruptHandler() {
	if t.cancelFn != nil {
		slog.Debug("cancelling interrupt handler")
		t.cancelFn()
	}
}

// abort runs the interrupt function and exits.
func (t *Term) abort(err error) {
	fmt.Fprintln(t.writer)
	t.InterruptFn(err)
	os.Exit(1)
}

// setupInterruptHandler handles interruptions.
func setupInterruptHandler(ctx context.Context, onInterrupt func(error)) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan,
		os.Interrupt,    // Ctrl+C (SIGINT)
		syscall.SIGTERM, // Process termination
		syscall.SIGHUP,  // Terminal closed
	)

	go func() {
		defer signal.Stop(sigChan)

		select {
		case sig := <-sigChan:
			fmt.Println()
			slog.Info("received signal, cleaning up", "signal", sig)
			onInterrupt(ErrActionAborted)
			os.Exit(1)
		case <-ctx.Done():
			slog.Debug("interrupt handler cancelled")
			return
		}
	}()
}

// fmtChoicesWithDefault capitalizes the default option and moves it to the
// end of the slice.
func fmtChoicesWithDefault(opts []string, def string) []string {
	out := make([]string, 0, len(opts))
	var d string
	for _, o := range opts {
		if def != "" && strings.HasPrefix(o, def) {
			d = strings.ToUpper(o[:1]) + o[1:]
			continue
		}
		out = append(out, o)
	}

	if d != "" {
		out = append(out, d)
	}

	return out
}

// buildPrompt returns a formatted string with a question and options.
func buildPrompt(q, opts string) string {
	if opts == "" {
		return q + " "
	}

	return fmt.Sprintf("%s %s ", q, opts)
}
