package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"gid/internal/config"
	"gid/internal/service"
)

func init() {
	Register(&RmListCmd{})
}

// RmListCmd deletes task lists, and the tasks in them, by title or index.
type RmListCmd struct{}

func (c *RmListCmd) Name() string      { return "rmlist" }
func (c *RmListCmd) Aliases() []string { return []string{"removelist"} }
func (c *RmListCmd) Synopsis() string  { return "Delete task lists" }
func (c *RmListCmd) Usage() string     { return "gid rmlist <name|index>..." }
func (c *RmListCmd) NeedsAuth() bool   { return true }

func (c *RmListCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *RmListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	refs, err := tokens(args, "list name or index")
	if err != nil {
		return usageError(errOut, err)
	}

	if err := newOrchestrator(ctx).Remove(ctx, svc.Lists(), refs); err != nil {
		return fail(errOut, err)
	}
	return ok(cfg, out)
}
