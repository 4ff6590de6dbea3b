package cli

import (
	"context"

	"gid/internal/backend/googletasks"
	"gid/internal/config"
	"gid/internal/service"
)

// GoogleTasks is the production ServiceFactory. It checks for credentials
// before building the client so that a missing login is reported as such.
func GoogleTasks(ctx context.Context, cfg *config.Config) (service.Service, error) {
	if !cfg.HasOAuthClient() {
		return nil, authErrorf("oauth_client.json not found in %s", cfg.Dir)
	}
	if !cfg.HasToken() {
		return nil, authErrorf("not logged in (run: %s login)", config.AppName)
	}

	client, err := googletasks.New(ctx, cfg)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	return client, nil
}
