// Package commands implements the line shell's commands and their registry.
package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/service"
)

// Command is one shell verb.
//
// The dispatcher builds a fresh flag set for every line and calls
// RegisterFlags on it before Run, so flag fields start from their
// defaults each time even though instances live in a shared registry.
type Command interface {
	Name() string
	Aliases() []string

	// Synopsis and Usage feed the help listing.
	Synopsis() string
	Usage() string

	// NeedsStore reports whether Run reads or mutates tasks.
	// When false, Run receives a nil svc.
	NeedsStore() bool

	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with positional args left after flag
	// parsing and returns an exit code from package exitcode.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// noFlags is embedded by commands without flags of their own.
type noFlags struct{}

func (noFlags) RegisterFlags(*flag.FlagSet) {}
