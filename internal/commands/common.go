package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"gid/internal/batch"
	"gid/internal/config"
	"gid/internal/exitcode"
	"gid/internal/logging"
	"gid/internal/output"
	"gid/internal/service"
)

// listFlag is the --list/-l selector shared by the task commands.
type listFlag struct {
	selector string
}

func (l *listFlag) register(fs *pflag.FlagSet) {
	fs.StringVarP(&l.selector, "list", "l", "", "list name or index (default from config.toml)")
}

// SetList sets the list selector (for testing).
func (l *listFlag) SetList(selector string) {
	l.selector = selector
}

// tasks resolves the list selector, falling back to the configured default
// list, and returns the task collection of that list.
func (l *listFlag) tasks(ctx context.Context, cfg *config.Config, svc service.Service, o *batch.Orchestrator) (service.Collection, error) {
	selector := l.selector
	if selector == "" {
		selector = cfg.DefaultList
	}
	listID, err := o.ResolveScope(ctx, svc.Lists(), selector)
	if err != nil {
		return nil, err
	}
	return svc.Tasks(listID), nil
}

func newOrchestrator(ctx context.Context) *batch.Orchestrator {
	return batch.New(logging.FromContext(ctx))
}

// tokens requires at least one positional argument. Blank arguments pass
// through: a blank title is legal and a blank reference simply won't resolve.
func tokens(args []string, what string) ([]string, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s required", what)
	}
	return args, nil
}

// fail reports err and returns its exit code.
func fail(errOut io.Writer, err error) int {
	output.Error(errOut, err)
	return exitcode.For(err)
}

// usageError reports a bad invocation.
func usageError(errOut io.Writer, err error) int {
	output.Error(errOut, err)
	return exitcode.UserError
}

// ok acknowledges a successful mutation.
func ok(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
