// Package commands holds the gid subcommands. Each file registers one
// command with DefaultRegistry from init; the cli package turns the
// registry into a cobra command tree.
package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"gid/internal/config"
	"gid/internal/service"
)

// Command is one gid subcommand.
type Command interface {
	Name() string
	Aliases() []string

	// Synopsis and Usage feed the help listing.
	Synopsis() string
	Usage() string

	// NeedsAuth reports whether Run needs a Service. When false, svc is nil.
	NeedsAuth() bool

	// RegisterFlags binds command flags. It is called on every
	// fresh flag set a dispatch builds, which resets the bound fields.
	RegisterFlags(fs *pflag.FlagSet)

	// Run executes the command with its positional arguments and returns the
	// process exit code. cfg carries settings already loaded from config.toml.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}
