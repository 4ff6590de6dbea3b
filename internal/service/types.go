package service

// Task statuses used by the remote service.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// Item is a collection entry as seen by the client: a task list or a task.
// ID is opaque and server-assigned; Title is user-chosen and not unique.
// The remaining fields are only meaningful for tasks.
type Item struct {
	ID        string
	Title     string
	Status    string // "needsAction" or "completed"
	Completed string // RFC 3339 completion time, empty if open
	Hidden    bool
	Updated   string
}
