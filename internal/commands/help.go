package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd lists the commands of a registry, DefaultRegistry when unset.
type HelpCmd struct {
	noFlags
	Registry *Registry
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return []string{"?"} }
func (c *HelpCmd) Synopsis() string  { return "Print this help" }
func (c *HelpCmd) Usage() string     { return "help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	reg := c.Registry
	if reg == nil {
		reg = DefaultRegistry
	}
	all := reg.All()

	fmt.Fprintln(out, "Usage:")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, cmd := range all {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprintf(tw, "  quit\tLeave the shell\n")
	tw.Flush()

	var aliases []string
	for _, cmd := range all {
		for _, alias := range cmd.Aliases() {
			aliases = append(aliases, alias+"="+cmd.Name())
		}
	}
	aliases = append(aliases, "exit=quit")
	fmt.Fprintf(out, "\nAliases: %s\n", strings.Join(aliases, ", "))

	fmt.Fprint(out, helpFooter)
	return exitcode.Success
}

const helpFooter = `
<ref> is a list number (1, 2, ...) or a task id or id prefix (at least 4 characters).
Quote arguments that contain spaces: add "Buy milk" 2% fat

Every command accepts --quiet to suppress informational output.
`
