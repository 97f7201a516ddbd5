package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
// Unset flags keep the task's current values; the store receives the full record.
type EditCmd struct {
	title    string
	desc     string
	complete string
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task's title, description or completion" }
func (c *EditCmd) Usage() string     { return "edit [-t title] [-d desc] [--complete bool] <ref>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.title, "t", "", "")
	fs.StringVar(&c.desc, "desc", "", "")
	fs.StringVar(&c.desc, "d", "", "")
	fs.StringVar(&c.complete, "complete", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	task, err := resolveRef(svc, args)
	if err != nil {
		return reportError(errOut, err)
	}

	updated := task
	if c.title != "" {
		updated.Title = c.title
	}
	if c.desc != "" {
		updated.Description = c.desc
	}
	if c.complete != "" {
		complete, err := strconv.ParseBool(c.complete)
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid value for --complete: %s\n", c.complete)
			return exitcode.UserError
		}
		updated.IsComplete = complete
	}

	if err := svc.Edit(updated); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
