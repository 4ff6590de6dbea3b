package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"gid/internal/config"
	"gid/internal/exitcode"
	"gid/internal/output"
	"gid/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd shows the tasks of one list with their display indices.
// It is also what `gid` runs with no command.
type ListCmd struct {
	listFlag
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"show"} }
func (c *ListCmd) Synopsis() string  { return "Show the tasks of a list" }
func (c *ListCmd) Usage() string     { return "gid list [--list <list>]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.register(fs)
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	o := newOrchestrator(ctx)

	coll, err := c.tasks(ctx, cfg, svc, o)
	if err != nil {
		return fail(errOut, err)
	}

	items, err := o.Show(ctx, coll)
	if err != nil {
		return fail(errOut, err)
	}

	output.FormatItems(out, cfg.TableStyle, items)
	return exitcode.Success
}
