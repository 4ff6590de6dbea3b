package service

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when an identifier no longer exists on the server.
var ErrNotFound = errors.New("not found")

// RemoteError is a non-success response from the remote service.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("remote error: %d %s", e.Status, e.Message)
}

// IsAuth reports whether the response rejected the credentials.
func (e *RemoteError) IsAuth() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// TransportError is a failure to reach the remote service at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IdentifierNotFoundError reports a user token that matched no title and no index
// in the enumeration it was resolved against. It is a usage error, not a service failure.
type IdentifierNotFoundError struct {
	Token string
}

func (e *IdentifierNotFoundError) Error() string {
	return fmt.Sprintf("bad request: name or index not found: %s", e.Token)
}

// IsIdentifierNotFound reports whether err carries an IdentifierNotFoundError.
func IsIdentifierNotFound(err error) bool {
	var target *IdentifierNotFoundError
	return errors.As(err, &target)
}
