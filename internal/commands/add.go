package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"gid/internal/config"
	"gid/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd creates one task per title argument.
type AddCmd struct {
	listFlag
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create tasks" }
func (c *AddCmd) Usage() string     { return "gid add [--list <list>] <title>..." }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.register(fs)
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	titles, err := tokens(args, "title")
	if err != nil {
		return usageError(errOut, err)
	}

	o := newOrchestrator(ctx)
	coll, err := c.tasks(ctx, cfg, svc, o)
	if err != nil {
		return fail(errOut, err)
	}

	if _, err := o.Add(ctx, coll, titles); err != nil {
		return fail(errOut, err)
	}
	return ok(cfg, out)
}
