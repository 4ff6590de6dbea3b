// Package service defines the backend-agnostic gateway for the remote task lists.
package service

import "context"

// Collection is one remote collection: the top-level lists, or the tasks of one list.
// FetchAll returns items in server order; that order is the display enumeration
// used for index resolution and is only meaningful for the call that produced it.
// Implementations do not cache.
type Collection interface {
	// Name identifies the collection in logs ("lists" or "tasks").
	Name() string

	// FetchAll returns every item of the collection in server order.
	FetchAll(ctx context.Context) ([]Item, error)

	// FetchOne returns a single item. Fails with ErrNotFound if the id is gone.
	FetchOne(ctx context.Context, id string) (Item, error)

	// Insert creates an item with the given title and returns it with its
	// server-assigned ID.
	Insert(ctx context.Context, title string) (Item, error)

	// Patch applies the mutable fields of item to the item with the given id.
	// Fails with ErrNotFound if the id vanished after resolution.
	Patch(ctx context.Context, id string, item Item) (Item, error)

	// Delete removes the item. Deleting a missing id fails with ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// Service hands out the collections of one authenticated account.
// Commands never import the Google SDK directly.
type Service interface {
	// Lists returns the collection of task lists.
	Lists() Collection

	// Tasks returns the collection of tasks scoped to listID.
	Tasks(listID string) Collection
}
