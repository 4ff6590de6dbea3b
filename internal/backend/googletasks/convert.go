package googletasks

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	tasks "google.golang.org/api/tasks/v1"

	"gid/internal/service"
)

// fromTaskList converts a Google Tasks TaskList to a service.Item.
func fromTaskList(tl *tasks.TaskList) service.Item {
	if tl == nil {
		return service.Item{}
	}
	return service.Item{
		ID:      tl.Id,
		Title:   tl.Title,
		Updated: tl.Updated,
	}
}

// fromTask converts a Google Tasks Task to a service.Item.
func fromTask(t *tasks.Task) service.Item {
	if t == nil {
		return service.Item{}
	}
	item := service.Item{
		ID:      t.Id,
		Title:   t.Title,
		Status:  t.Status,
		Hidden:  t.Hidden,
		Updated: t.Updated,
	}
	if t.Completed != nil {
		item.Completed = *t.Completed
	}
	return item
}

// toTask builds the patch body for a task. Empty fields are left out of
// the request and keep their server values.
func toTask(item service.Item) *tasks.Task {
	t := &tasks.Task{
		Title:  item.Title,
		Status: item.Status,
		Hidden: item.Hidden,
	}
	if item.Completed != "" {
		completed := item.Completed
		t.Completed = &completed
	}
	return t
}

// wrapError classifies API errors into the service error kinds.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusNotFound {
			return service.ErrNotFound
		}
		return &service.RemoteError{Status: apiErr.Code, Message: apiErr.Message}
	}

	// Refresh failures surface wrapped in *url.Error.
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return &service.RemoteError{
			Status:  http.StatusUnauthorized,
			Message: "token expired or revoked (run: gid login)",
		}
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return &service.TransportError{Err: err}
	}

	return err
}
