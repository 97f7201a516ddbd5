// Package shell runs a line-oriented session over a live task store.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
	mvsh "mvdan.cc/sh/v3/shell"

	"todo/internal/cli"
	"todo/internal/exitcode"
	"todo/internal/logging"
)

// Prompt is printed before each line when the input is a terminal.
const Prompt = "> "

// Session reads command lines and dispatches them until quit, exit or EOF.
type Session struct {
	dispatcher  *cli.Dispatcher
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
	interactive bool
	log         *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithInteractive forces prompt display on or off.
func WithInteractive(interactive bool) Option {
	return func(s *Session) {
		s.interactive = interactive
	}
}

// WithLogger sets the logger used for per-line debug records.
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// New creates a session. By default the prompt is shown only when in is a terminal.
func New(d *cli.Dispatcher, in io.Reader, out, errOut io.Writer, opts ...Option) *Session {
	s := &Session{
		dispatcher:  d,
		in:          in,
		out:         out,
		errOut:      errOut,
		interactive: isTerminal(in),
		log:         logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run processes input until quit, exit, EOF or ctx cancellation.
// Returns the exit code of the last command that ran. A line that arrives
// after ctx is cancelled is discarded.
func (s *Session) Run(ctx context.Context) int {
	done := make(chan struct{})
	defer close(done)
	lines, readErr := s.readLines(done)

	code := exitcode.Success
	for {
		if s.interactive {
			fmt.Fprint(s.out, Prompt)
		}

		var line string
		select {
		case <-ctx.Done():
			return code
		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					fmt.Fprintf(s.errOut, "error: read input: %v\n", err)
					return exitcode.UserError
				}
				if s.interactive {
					fmt.Fprintln(s.out)
				}
				return code
			}
			line = l
		}
		if ctx.Err() != nil {
			return code
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		args, err := mvsh.Fields(line, literalEnv)
		if err != nil {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
			code = exitcode.UserError
			continue
		}
		if len(args) == 0 {
			continue
		}

		switch strings.ToLower(args[0]) {
		case "quit", "exit":
			return code
		}

		code = s.dispatcher.Run(ctx, args, s.out, s.errOut)
		s.log.Debug("shell command", "name", args[0], "args", len(args)-1, "code", code)
	}
}

// readLines scans input on its own goroutine so Run can stop on
// cancellation while a read is blocked. The lines channel is closed at EOF,
// after which readErr yields the scanner error (nil at clean EOF).
func (s *Session) readLines(done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()
	return lines, readErr
}

// literalEnv keeps parameter references as typed, so "$5" or "$HOME" in
// task text is stored verbatim instead of expanded from the environment.
func literalEnv(name string) string {
	return "$" + name
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
