// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"gid/internal/service"
)

// Operations recorded in the call journal and used as error injection keys.
const (
	OpFetchAll = "fetchAll"
	OpFetchOne = "fetchOne"
	OpInsert   = "insert"
	OpPatch    = "patch"
	OpDelete   = "delete"
)

// Collection names.
const (
	Lists = "lists"
	Tasks = "tasks"
)

// Call is one recorded gateway call.
type Call struct {
	Collection string // "lists" or "tasks"
	Scope      string // list ID for tasks, empty for lists
	Op         string
	ID         string // target ID, or the title for inserts
}

type errKey struct {
	collection string
	op         string
	id         string
}

// FakeService is an in-memory implementation of service.Service for testing.
// Task enumerations skip hidden tasks, as the remote service does by default.
type FakeService struct {
	mu    sync.Mutex
	lists []service.Item
	tasks map[string][]service.Item // listID -> tasks
	calls []Call
	errs  map[errKey]error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		tasks: make(map[string][]service.Item),
		errs:  make(map[errKey]error),
	}
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.Item{ID: id, Title: title})
	if f.tasks[id] == nil {
		f.tasks[id] = []service.Item{}
	}
}

// AddTask adds an open task to a list.
func (f *FakeService) AddTask(listID, taskID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], service.Item{
		ID:     taskID,
		Title:  title,
		Status: service.StatusNeedsAction,
	})
}

// Fail makes op on collection fail with err. An empty id matches every call.
func (f *FakeService) Fail(collection, op, id string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[errKey{collection, op, id}] = err
}

// Calls returns the journal of gateway calls in issue order.
func (f *FakeService) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsOf returns the journaled calls of one operation.
func (f *FakeService) CallsOf(op string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// ListTitles returns the titles of all lists in order.
func (f *FakeService) ListTitles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	titles := make([]string, len(f.lists))
	for i, l := range f.lists {
		titles[i] = l.Title
	}
	return titles
}

// Task returns the stored task, including hidden ones.
func (f *FakeService) Task(listID, taskID string) (service.Item, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks[listID] {
		if t.ID == taskID {
			return t, true
		}
	}
	return service.Item{}, false
}

// TaskTitles returns the titles of the visible tasks of a list in order.
func (f *FakeService) TaskTitles(listID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var titles []string
	for _, t := range f.tasks[listID] {
		if !t.Hidden {
			titles = append(titles, t.Title)
		}
	}
	return titles
}

// Lists implements service.Service.
func (f *FakeService) Lists() service.Collection {
	return &fakeCollection{f: f, name: Lists}
}

// Tasks implements service.Service.
func (f *FakeService) Tasks(listID string) service.Collection {
	return &fakeCollection{f: f, name: Tasks, scope: listID}
}

// record journals a call and returns the injected error, if any.
// Caller holds f.mu.
func (f *FakeService) record(collection, scope, op, id string) error {
	f.calls = append(f.calls, Call{Collection: collection, Scope: scope, Op: op, ID: id})
	if err, ok := f.errs[errKey{collection, op, id}]; ok {
		return err
	}
	if err, ok := f.errs[errKey{collection, op, ""}]; ok {
		return err
	}
	return nil
}

type fakeCollection struct {
	f     *FakeService
	name  string
	scope string
}

func (c *fakeCollection) Name() string { return c.name }

// items returns a pointer to the backing slice. Caller holds c.f.mu.
func (c *fakeCollection) items() (*[]service.Item, error) {
	if c.name == Lists {
		return &c.f.lists, nil
	}
	if _, ok := c.f.tasks[c.scope]; !ok {
		return nil, service.ErrNotFound
	}
	items := c.f.tasks[c.scope]
	return &items, nil
}

func (c *fakeCollection) store(items []service.Item) {
	if c.name == Lists {
		c.f.lists = items
		return
	}
	c.f.tasks[c.scope] = items
}

func (c *fakeCollection) FetchAll(ctx context.Context) ([]service.Item, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if err := c.f.record(c.name, c.scope, OpFetchAll, ""); err != nil {
		return nil, err
	}
	items, err := c.items()
	if err != nil {
		return nil, err
	}
	result := make([]service.Item, 0, len(*items))
	for _, item := range *items {
		if !item.Hidden {
			result = append(result, item)
		}
	}
	return result, nil
}

func (c *fakeCollection) FetchOne(ctx context.Context, id string) (service.Item, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if err := c.f.record(c.name, c.scope, OpFetchOne, id); err != nil {
		return service.Item{}, err
	}
	items, err := c.items()
	if err != nil {
		return service.Item{}, err
	}
	for _, item := range *items {
		if item.ID == id {
			return item, nil
		}
	}
	return service.Item{}, service.ErrNotFound
}

func (c *fakeCollection) Insert(ctx context.Context, title string) (service.Item, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if err := c.f.record(c.name, c.scope, OpInsert, title); err != nil {
		return service.Item{}, err
	}
	items, err := c.items()
	if err != nil {
		return service.Item{}, err
	}
	item := service.Item{ID: uuid.NewString(), Title: title}
	if c.name == Tasks {
		item.Status = service.StatusNeedsAction
	}
	c.store(append(*items, item))
	if c.name == Lists {
		c.f.tasks[item.ID] = []service.Item{}
	}
	return item, nil
}

func (c *fakeCollection) Patch(ctx context.Context, id string, patch service.Item) (service.Item, error) {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if err := c.f.record(c.name, c.scope, OpPatch, id); err != nil {
		return service.Item{}, err
	}
	items, err := c.items()
	if err != nil {
		return service.Item{}, err
	}
	for i, item := range *items {
		if item.ID != id {
			continue
		}
		if patch.Title != "" {
			item.Title = patch.Title
		}
		if patch.Status != "" {
			item.Status = patch.Status
		}
		if patch.Completed != "" {
			item.Completed = patch.Completed
		}
		item.Hidden = patch.Hidden
		(*items)[i] = item
		c.store(*items)
		return item, nil
	}
	return service.Item{}, service.ErrNotFound
}

func (c *fakeCollection) Delete(ctx context.Context, id string) error {
	c.f.mu.Lock()
	defer c.f.mu.Unlock()
	if err := c.f.record(c.name, c.scope, OpDelete, id); err != nil {
		return err
	}
	items, err := c.items()
	if err != nil {
		return err
	}
	for i, item := range *items {
		if item.ID == id {
			remaining := append((*items)[:i:i], (*items)[i+1:]...)
			c.store(remaining)
			if c.name == Lists {
				delete(c.f.tasks, id)
			}
			return nil
		}
	}
	return service.ErrNotFound
}
