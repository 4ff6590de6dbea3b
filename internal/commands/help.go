package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"gid/internal/config"
	"gid/internal/exitcode"
	"gid/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd prints the usage of every registered command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "gid help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	WriteHelp(out, DefaultRegistry)
	return exitcode.Success
}

// WriteHelp renders usage for every command in r.
func WriteHelp(w io.Writer, r *Registry) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  gid                              Show the tasks of the default list")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, cmd := range r.All() {
		synopsis := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			synopsis += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Usage(), synopsis)
	}
	tw.Flush()

	fmt.Fprint(w, commonFlagsText)
}

const commonFlagsText = `
Names and indices:
  Tasks and lists are referenced by exact title or by the 0-based index
  shown by 'gid list' and 'gid lists'. The first item whose title equals
  the token or whose index equals it wins, so a task titled "1" listed
  before index 1 takes the token "1".

Common flags:
  -c, --config <dir>        Override config directory
  -q, --quiet               Suppress informational output
      --debug               Print debug logs to stderr
  -b, --base-url <url>      Override the service endpoint
  -a, --user-agent <agent>  Override the User-Agent header
`
