// Package cli maps command-line arguments onto registered commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"gid/internal/commands"
	"gid/internal/config"
	"gid/internal/exitcode"
	"gid/internal/logging"
	"gid/internal/output"
	"gid/internal/service"
)

// defaultCommand runs when no command is given.
const defaultCommand = "list"

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// globalFlags are accepted before or after any command.
type globalFlags struct {
	configDir string
	quiet     bool
	debug     bool
	baseURL   string
	userAgent string
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	code := exitcode.Success
	root := d.newRoot(&code, out, errOut)

	// cobra reads os.Args when args is nil.
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)

	if err := root.ExecuteContext(ctx); err != nil {
		output.Error(errOut, err)
		return exitcode.UserError
	}
	return code
}

// newRoot builds a fresh command tree so flag values never leak between runs.
func (d *Dispatcher) newRoot(code *int, out, errOut io.Writer) *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "A command-line client for Google Tasks",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetHelpFunc(func(*cobra.Command, []string) {
		commands.WriteHelp(out, d.registry)
	})

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configDir, "config", "c", "", "override config directory")
	pf.BoolVarP(&g.quiet, "quiet", "q", false, "suppress informational output")
	pf.BoolVar(&g.debug, "debug", false, "print debug logs to stderr")
	pf.StringVarP(&g.baseURL, "base-url", "b", "", "override the service endpoint")
	pf.StringVarP(&g.userAgent, "user-agent", "a", config.AppName+"/"+commands.Version, "User-Agent header")

	for _, cmd := range d.registry.All() {
		sub := &cobra.Command{
			Use:     cmd.Name(),
			Aliases: cmd.Aliases(),
			Short:   cmd.Synopsis(),
			RunE: func(c *cobra.Command, args []string) error {
				*code = d.execute(c.Context(), cmd, &g, args, out, errOut)
				return nil
			},
		}
		cmd.RegisterFlags(sub.Flags())

		if cmd.Name() == "help" {
			root.SetHelpCommand(sub)
			continue
		}
		root.AddCommand(sub)
	}

	// No command runs the default command, which also accepts its own flags
	// at the top level (gid -l Work).
	if cmd, ok := d.registry.Find(defaultCommand); ok {
		cmd.RegisterFlags(root.Flags())
		root.RunE = func(c *cobra.Command, args []string) error {
			*code = d.execute(c.Context(), cmd, &g, args, out, errOut)
			return nil
		}
	}

	return root
}

// execute builds the invocation's config, logger and service, then runs cmd.
func (d *Dispatcher) execute(ctx context.Context, cmd commands.Command, g *globalFlags, args []string, out, errOut io.Writer) int {
	cfg, err := config.New(g.configDir)
	if err != nil {
		output.Error(errOut, err)
		return exitcode.UserError
	}
	cfg.Quiet = g.quiet
	cfg.Debug = g.debug
	cfg.BaseURL = g.baseURL
	cfg.UserAgent = g.userAgent

	logger := logging.New(errOut, cfg.Debug)
	ctx = logging.WithLogger(ctx, logger)

	if err := cfg.LoadSettings(); err != nil {
		if !errors.Is(err, config.ErrMalformed) {
			output.Error(errOut, err)
			return exitcode.UserError
		}
		output.Errorf(errOut, "malformed config file, using defaults")
		logger.Debug("settings", logging.Err(err))
	}
	logger.Debug("dispatch",
		slog.String("command", cmd.Name()),
		slog.String("config_dir", cfg.Dir),
		slog.String("default_list", cfg.DefaultList))

	var svc service.Service
	if cmd.NeedsAuth() {
		if d.factory == nil {
			output.Error(errOut, errors.New("no service backend configured"))
			return exitcode.BackendError
		}
		svc, err = d.factory(ctx, cfg)
		if err != nil {
			return factoryError(errOut, err)
		}
	}

	return cmd.Run(ctx, cfg, svc, args, out, errOut)
}

// factoryError reports a failure to construct the service.
func factoryError(errOut io.Writer, err error) int {
	var authErr *AuthError
	var remote *service.RemoteError
	if errors.As(err, &authErr) || (errors.As(err, &remote) && remote.IsAuth()) {
		output.Errorf(errOut, "auth error: %v", err)
		return exitcode.AuthError
	}
	output.Errorf(errOut, "backend error: %v", err)
	return exitcode.BackendError
}

// AuthError reports missing or unusable credentials.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// authErrorf returns an AuthError with a formatted message.
func authErrorf(format string, args ...any) error {
	return &AuthError{Err: fmt.Errorf(format, args...)}
}
