package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd writes the current task list to stdout.
type ExportCmd struct {
	format string
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Print all tasks as text, json or yaml" }
func (c *ExportCmd) Usage() string     { return "export [--format text|json|yaml]" }
func (c *ExportCmd) NeedsStore() bool  { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", string(output.FormatText), "")
	fs.StringVar(&c.format, "f", string(output.FormatText), "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	format, err := output.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := output.Export(out, svc.List(), format); err != nil {
		fmt.Fprintf(errOut, "error: export: %v\n", err)
		return exitcode.StoreError
	}
	return exitcode.Success
}
