// Package batch runs the bulk verbs (add, remove, finish) against a remote
// collection.
//
// Remove and finish are two-phase: the collection is enumerated once, every
// token is resolved against that single snapshot, and only then are the
// mutations issued, one at a time and in input order. Resolving after a
// delete would shift later indices onto the wrong items.
//
// There is no rollback. If mutation k fails, mutations 1..k-1 stay applied,
// the rest are not attempted, and the returned *MutationError says where the
// batch stopped.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gid/internal/logging"
	"gid/internal/resolve"
	"gid/internal/service"
)

// Operation names used in logs and MutationError.
const (
	OpInsert = "insert"
	OpDelete = "delete"
	OpFinish = "finish"
)

// MutationError reports the first failed mutation of a batch.
// Applied mutations before Position are not undone.
type MutationError struct {
	Op       string
	Token    string // the title or token the caller supplied
	ID       string // resolved identifier, empty for inserts
	Position int    // 1-based
	Total    int
	Err      error
}

func (e *MutationError) Error() string {
	target := e.Token
	if e.ID != "" && e.ID != e.Token {
		target = fmt.Sprintf("%s (%s)", e.Token, e.ID)
	}
	return fmt.Sprintf("%s %s failed at item %d of %d, %d already applied: %v",
		e.Op, target, e.Position, e.Total, e.Applied(), e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// Applied returns how many mutations completed before the failure.
func (e *MutationError) Applied() int {
	return e.Position - 1
}

// Orchestrator sequences resolution and mutation for one invocation.
type Orchestrator struct {
	logger *slog.Logger
	now    func() time.Time
}

// New creates an Orchestrator. A nil logger discards.
func New(logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Orchestrator{logger: logger, now: time.Now}
}

// SetClock overrides the completion clock (for testing).
func (o *Orchestrator) SetClock(now func() time.Time) {
	o.now = now
}

// Show returns the current enumeration of coll in server order.
func (o *Orchestrator) Show(ctx context.Context, coll service.Collection) ([]service.Item, error) {
	return coll.FetchAll(ctx)
}

// ResolveScope resolves a list selector against a fresh enumeration of lists
// and returns the list's identifier.
func (o *Orchestrator) ResolveScope(ctx context.Context, lists service.Collection, selector string) (string, error) {
	ids, err := o.ResolveIDs(ctx, lists, []string{selector})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// ResolveIDs fetches coll exactly once and resolves every token against that
// enumeration. Nothing is mutated.
func (o *Orchestrator) ResolveIDs(ctx context.Context, coll service.Collection, tokens []string) ([]string, error) {
	items, err := coll.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := resolve.ResolveAll(tokens, items)
	if err != nil {
		o.logger.Debug("resolution failed",
			logging.Collection(coll.Name()), logging.Err(err))
		return nil, err
	}

	for i, token := range tokens {
		o.logger.Debug("resolved",
			logging.Collection(coll.Name()), logging.Token(token), logging.ID(ids[i]))
	}
	return ids, nil
}

// Add inserts one item per title, sequentially, and returns the created items.
// On failure the items created so far are returned with the error.
func (o *Orchestrator) Add(ctx context.Context, coll service.Collection, titles []string) ([]service.Item, error) {
	created := make([]service.Item, 0, len(titles))
	for i, title := range titles {
		item, err := coll.Insert(ctx, title)
		if err != nil {
			return created, o.failed(coll, &MutationError{
				Op: OpInsert, Token: title, Position: i + 1, Total: len(titles), Err: err,
			})
		}
		o.logger.Debug("inserted",
			logging.Collection(coll.Name()), logging.ID(item.ID))
		created = append(created, item)
	}
	return created, nil
}

// Remove resolves every token, then deletes the resolved items in input order.
func (o *Orchestrator) Remove(ctx context.Context, coll service.Collection, tokens []string) error {
	ids, err := o.ResolveIDs(ctx, coll, tokens)
	if err != nil {
		return err
	}

	for i, id := range ids {
		if err := coll.Delete(ctx, id); err != nil {
			return o.failed(coll, &MutationError{
				Op: OpDelete, Token: tokens[i], ID: id, Position: i + 1, Total: len(ids), Err: err,
			})
		}
		o.logger.Debug("deleted",
			logging.Collection(coll.Name()), logging.ID(id))
	}
	return nil
}

// Finish resolves every token, then for each resolved item in input order
// fetches it, marks it completed and hidden, and patches it back.
func (o *Orchestrator) Finish(ctx context.Context, coll service.Collection, tokens []string) error {
	ids, err := o.ResolveIDs(ctx, coll, tokens)
	if err != nil {
		return err
	}

	for i, id := range ids {
		if err := o.finishOne(ctx, coll, id); err != nil {
			return o.failed(coll, &MutationError{
				Op: OpFinish, Token: tokens[i], ID: id, Position: i + 1, Total: len(ids), Err: err,
			})
		}
	}
	return nil
}

func (o *Orchestrator) finishOne(ctx context.Context, coll service.Collection, id string) error {
	item, err := coll.FetchOne(ctx, id)
	if err != nil {
		return err
	}

	item.Status = service.StatusCompleted
	item.Completed = o.now().UTC().Format(time.RFC3339)
	item.Hidden = true

	// The patch targets the id captured at resolution time, whatever the
	// fetched body says.
	if _, err := coll.Patch(ctx, id, item); err != nil {
		return err
	}
	o.logger.Debug("finished",
		logging.Collection(coll.Name()), logging.ID(id))
	return nil
}

func (o *Orchestrator) failed(coll service.Collection, err *MutationError) error {
	o.logger.Info("batch stopped",
		logging.Collection(coll.Name()),
		logging.Operation(err.Op),
		slog.Int("position", err.Position),
		slog.Int("applied", err.Applied()),
		logging.Err(err.Err))
	return err
}
