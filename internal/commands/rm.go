package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"gid/internal/config"
	"gid/internal/service"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd deletes tasks named by title or display index.
// All references are resolved before the first delete.
type RmCmd struct {
	listFlag
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"remove"} }
func (c *RmCmd) Synopsis() string  { return "Delete tasks" }
func (c *RmCmd) Usage() string     { return "gid rm [--list <list>] <name|index>..." }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.register(fs)
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	refs, err := tokens(args, "task name or index")
	if err != nil {
		return usageError(errOut, err)
	}

	o := newOrchestrator(ctx)
	coll, err := c.tasks(ctx, cfg, svc, o)
	if err != nil {
		return fail(errOut, err)
	}

	if err := o.Remove(ctx, coll, refs); err != nil {
		return fail(errOut, err)
	}
	return ok(cfg, out)
}
