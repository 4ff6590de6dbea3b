package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"gid/internal/config"
	"gid/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd marks tasks completed and hides them.
type DoneCmd struct {
	listFlag
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"finish"} }
func (c *DoneCmd) Synopsis() string  { return "Mark tasks completed" }
func (c *DoneCmd) Usage() string     { return "gid done [--list <list>] <name|index>..." }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.register(fs)
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	refs, err := tokens(args, "task name or index")
	if err != nil {
		return usageError(errOut, err)
	}

	o := newOrchestrator(ctx)
	coll, err := c.tasks(ctx, cfg, svc, o)
	if err != nil {
		return fail(errOut, err)
	}

	if err := o.Finish(ctx, coll, refs); err != nil {
		return fail(errOut, err)
	}
	return ok(cfg, out)
}
