// Package auth acquires and persists the OAuth token used by the gateway.
//
// Login runs the installed-app authorization code flow with PKCE: the user
// opens the printed URL, Google redirects to a loopback callback, and the
// code is exchanged for a token that is saved with mode 0600.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// CallbackTimeout bounds the wait for the browser redirect.
	CallbackTimeout = 5 * time.Minute

	// tokenExchangeTimeout bounds the code-for-token exchange.
	tokenExchangeTimeout = 30 * time.Second

	// defaultStartPort is the first loopback port tried for the callback.
	defaultStartPort = 8085

	// defaultMaxPorts is how many consecutive ports are tried.
	defaultMaxPorts = 5
)

// ErrNoPort is returned when no loopback port could be bound.
var ErrNoPort = errors.New("could not bind to local port for OAuth callback")

// LoadClientConfig reads an OAuth client credentials file.
func LoadClientConfig(path string, scopes ...string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	conf, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return conf, nil
}

// LoadToken reads a stored token.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}
	return &token, nil
}

// SaveToken saves an OAuth token to a file with mode 0600.
func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Usable reports whether token has a refresh token and can produce a valid
// access token, refreshing it if needed.
func Usable(ctx context.Context, conf *oauth2.Config, token *oauth2.Token) bool {
	if token == nil || token.RefreshToken == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := conf.TokenSource(ctx, token).Token()
	return err == nil
}

// LoopbackFlow runs the authorization code flow against a localhost callback.
type LoopbackFlow struct {
	Config *oauth2.Config

	// Prompt receives the authorization URL.
	Prompt io.Writer

	// StartPort and MaxPorts select the callback ports tried in order.
	// Port 0 asks the OS for any free port.
	StartPort int
	MaxPorts  int

	CallbackTimeout time.Duration
}

// NewLoopbackFlow returns a flow with the default ports and timeout.
func NewLoopbackFlow(conf *oauth2.Config, prompt io.Writer) *LoopbackFlow {
	return &LoopbackFlow{
		Config:          conf,
		Prompt:          prompt,
		StartPort:       defaultStartPort,
		MaxPorts:        defaultMaxPorts,
		CallbackTimeout: CallbackTimeout,
	}
}

// Token prints the authorization URL, waits for the callback, and exchanges
// the code for a token.
func (f *LoopbackFlow) Token(ctx context.Context) (*oauth2.Token, error) {
	listener, err := f.listen()
	if err != nil {
		return nil, err
	}
	defer listener.Close()

	conf := *f.Config
	conf.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", listener.Addr().(*net.TCPAddr).Port)

	verifier := oauth2.GenerateVerifier()
	state := uuid.NewString()
	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))

	fmt.Fprintln(f.Prompt, "Open this URL in your browser:")
	fmt.Fprintln(f.Prompt, authURL)

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)
	fail := func(err error) {
		select {
		case errCh <- err:
		default:
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "State mismatch", http.StatusBadRequest)
			fail(errors.New("oauth callback state mismatch"))
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			fail(errors.New("no code in callback"))
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>")
		select {
		case codeCh <- code:
		default:
		}
	})

	server := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fail(err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	timeout := f.CallbackTimeout
	if timeout <= 0 {
		timeout = CallbackTimeout
	}

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return nil, err
	case <-time.After(timeout):
		return nil, errors.New("oauth callback timed out")
	case <-ctx.Done():
		return nil, errors.New("cancelled")
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancel()

	token, err := conf.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

// listen binds the first free port in the configured range.
func (f *LoopbackFlow) listen() (net.Listener, error) {
	attempts := f.MaxPorts
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		port := f.StartPort
		if port != 0 {
			port += i
		}
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return listener, nil
		}
	}
	return nil, ErrNoPort
}
