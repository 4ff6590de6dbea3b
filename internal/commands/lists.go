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
	Register(&ListsCmd{})
}

// ListsCmd shows every task list with its display index.
type ListsCmd struct {
	max int
}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Show task lists" }
func (c *ListsCmd) Usage() string     { return "gid lists [--max <n>]" }
func (c *ListsCmd) NeedsAuth() bool   { return true }

func (c *ListsCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.IntVar(&c.max, "max", 0, "show at most n lists (0 = all)")
}

// SetMax sets the row limit (for testing).
func (c *ListsCmd) SetMax(n int) {
	c.max = n
}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.max < 0 {
		output.Errorf(errOut, "--max must not be negative")
		return exitcode.UserError
	}

	items, err := newOrchestrator(ctx).Show(ctx, svc.Lists())
	if err != nil {
		return fail(errOut, err)
	}

	// Truncating keeps indices aligned with the full enumeration.
	if c.max > 0 && len(items) > c.max {
		items = items[:c.max]
	}

	output.FormatItems(out, cfg.TableStyle, items)
	return exitcode.Success
}
