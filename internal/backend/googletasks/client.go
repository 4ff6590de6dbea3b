// Package googletasks implements the service.Service gateway using Google Tasks API.
package googletasks

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"gid/internal/auth"
	"gid/internal/config"
	"gid/internal/logging"
	"gid/internal/service"
)

const (
	// PageSize is the number of items requested per page.
	PageSize = 100

	// APITimeout bounds a single HTTP request. FetchAll applies it per page,
	// not to the whole enumeration.
	APITimeout = 10 * time.Second

	// TasksScope is the OAuth scope for Google Tasks.
	TasksScope = tasks.TasksScope
)

// Client implements service.Service using Google Tasks API.
type Client struct {
	svc     *tasks.Service
	logger  *slog.Logger
	timeout time.Duration
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := auth.LoadClientConfig(cfg.OAuthClientPath(), TasksScope)
	if err != nil {
		return nil, err
	}

	token, err := auth.LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, err
	}

	// Token source refreshes on expiry.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))

	return NewWithHTTPClient(ctx, httpClient, cfg.BaseURL, cfg.UserAgent)
}

// NewWithHTTPClient creates a client over an already authenticated HTTP client.
// Empty baseURL and userAgent keep the library defaults.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, baseURL, userAgent string) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if baseURL != "" {
		opts = append(opts, option.WithEndpoint(baseURL))
	}
	if userAgent != "" {
		opts = append(opts, option.WithUserAgent(userAgent))
	}

	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc, logger: logging.FromContext(ctx), timeout: APITimeout}, nil
}

// Lists implements service.Service.
func (c *Client) Lists() service.Collection {
	return &listCollection{svc: c.svc, logger: c.logger, timeout: c.timeout}
}

// Tasks implements service.Service.
func (c *Client) Tasks(listID string) service.Collection {
	return &taskCollection{svc: c.svc, listID: listID, logger: c.logger, timeout: c.timeout}
}

// call bounds fn with timeout, logs it, and translates its error.
func call(ctx context.Context, logger *slog.Logger, timeout time.Duration, collection, op, id string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := wrapError(fn(ctx))
	logger.Debug("api call",
		logging.Collection(collection),
		logging.Operation(op),
		logging.ID(id),
		logging.Since(start),
		logging.Err(err))
	return err
}
