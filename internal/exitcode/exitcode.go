// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"gid/internal/service"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unresolved name or index).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)

// For maps an error returned by a command to its exit code.
func For(err error) int {
	if err == nil {
		return Success
	}
	if service.IsIdentifierNotFound(err) {
		return UserError
	}
	var remote *service.RemoteError
	if errors.As(err, &remote) && remote.IsAuth() {
		return AuthError
	}
	return BackendError
}
