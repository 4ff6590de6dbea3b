package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"golang.org/x/oauth2"

	"gid/internal/auth"
	"gid/internal/backend/googletasks"
	"gid/internal/config"
	"gid/internal/exitcode"
	"gid/internal/output"
	"gid/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// TokenFlow obtains a fresh token interactively.
type TokenFlow interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// LoginCmd runs the browser authorization flow and stores the token.
type LoginCmd struct {
	// NewFlow builds the flow; nil uses the loopback flow.
	NewFlow func(conf *oauth2.Config, prompt io.Writer) TokenFlow
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with Google" }
func (c *LoginCmd) Usage() string     { return "gid login" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !cfg.HasOAuthClient() {
		output.Errorf(errOut, "oauth_client.json not found in %s", cfg.Dir)
		fmt.Fprint(errOut, credentialsHelp(cfg.Dir))
		return exitcode.AuthError
	}

	conf, err := auth.LoadClientConfig(cfg.OAuthClientPath(), googletasks.TasksScope)
	if err != nil {
		output.Error(errOut, err)
		return exitcode.AuthError
	}

	if cfg.HasToken() {
		if token, err := auth.LoadToken(cfg.TokenPath()); err == nil && auth.Usable(ctx, conf, token) {
			if !cfg.Quiet {
				fmt.Fprintln(out, "already logged in")
			}
			return exitcode.Success
		}
	}

	newFlow := c.NewFlow
	if newFlow == nil {
		newFlow = func(conf *oauth2.Config, prompt io.Writer) TokenFlow {
			return auth.NewLoopbackFlow(conf, prompt)
		}
	}

	token, err := newFlow(conf, errOut).Token(ctx)
	if err != nil {
		output.Error(errOut, err)
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		output.Errorf(errOut, "failed to create config directory: %v", err)
		return exitcode.AuthError
	}
	if err := auth.SaveToken(cfg.TokenPath(), token); err != nil {
		output.Errorf(errOut, "failed to save token: %v", err)
		return exitcode.AuthError
	}
	return ok(cfg, out)
}

func credentialsHelp(dir string) string {
	return fmt.Sprintf(`
To authenticate with Google Tasks, you need OAuth credentials:

1. Go to https://console.cloud.google.com/apis/credentials
2. Create a project (or select an existing one)
3. Enable the Google Tasks API:
   https://console.cloud.google.com/apis/library/tasks.googleapis.com
4. Create an OAuth client ID of type 'Desktop app' and download the JSON file
5. Save it as:
   %s/oauth_client.json

Then run 'gid login' again.
`, dir)
}
