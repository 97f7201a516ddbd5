// Package cli parses a single command line and dispatches it to a registered command.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

// Dispatcher handles flag parsing and dispatch for one command line at a time.
type Dispatcher struct {
	registry *commands.Registry
	svc      service.Service
	cfg      *config.Config
}

// NewDispatcher creates a dispatcher bound to a registry, a task service and
// the session configuration.
func NewDispatcher(registry *commands.Registry, svc service.Service, cfg *config.Config) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		svc:      svc,
		cfg:      cfg,
	}
}

// Run parses args and dispatches to the matching command.
// Returns the exit code. An empty line is a no-op.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return exitcode.Success
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	var quiet bool
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&quiet, "q", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(out, "usage: %s\n", cmd.Usage())
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %s\n", flagErrorMessage(err))
		return exitcode.UserError
	}

	// A leftover dash token should have been parsed as a flag
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") && positionalArgs[0] != "-" {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	// Per-line copy so --quiet does not leak into later lines
	cfg := config.Config{}
	if d.cfg != nil {
		cfg = *d.cfg
	}
	cfg.Quiet = cfg.Quiet || quiet

	var svc service.Service
	if cmd.NeedsStore() {
		svc = d.svc
		if svc == nil {
			fmt.Fprintln(errOut, "error: store error: no task store available")
			return exitcode.StoreError
		}
	}

	return cmd.Run(ctx, &cfg, svc, positionalArgs, out, errOut)
}

// flagErrorMessage rewrites the flag package's errors into the shell's wording.
func flagErrorMessage(err error) string {
	errStr := err.Error()

	switch {
	case strings.HasPrefix(errStr, "flag needs an argument:"):
		name := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "flag needs an argument: " + name
	case strings.HasPrefix(errStr, "flag provided but not defined:"):
		name := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
		return "unknown flag: " + name
	default:
		return errStr
	}
}
