package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"gid/internal/config"
	"gid/internal/service"
)

func init() {
	Register(&AddListCmd{})
}

// AddListCmd creates one task list per title argument.
type AddListCmd struct{}

func (c *AddListCmd) Name() string      { return "addlist" }
func (c *AddListCmd) Aliases() []string { return []string{"createlist"} }
func (c *AddListCmd) Synopsis() string  { return "Create task lists" }
func (c *AddListCmd) Usage() string     { return "gid addlist <title>..." }
func (c *AddListCmd) NeedsAuth() bool   { return true }

func (c *AddListCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *AddListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	titles, err := tokens(args, "list title")
	if err != nil {
		return usageError(errOut, err)
	}

	if _, err := newOrchestrator(ctx).Add(ctx, svc.Lists(), titles); err != nil {
		return fail(errOut, err)
	}
	return ok(cfg, out)
}
