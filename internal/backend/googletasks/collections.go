package googletasks

import (
	"context"
	"log/slog"
	"time"

	tasks "google.golang.org/api/tasks/v1"

	"gid/internal/service"
)

type listCollection struct {
	svc     *tasks.Service
	logger  *slog.Logger
	timeout time.Duration
}

func (c *listCollection) Name() string { return "lists" }

func (c *listCollection) FetchAll(ctx context.Context) ([]service.Item, error) {
	var result []service.Item
	pageToken := ""
	for {
		var resp *tasks.TaskLists
		err := call(ctx, c.logger, c.timeout, c.Name(), "list", "", func(ctx context.Context) (err error) {
			req := c.svc.Tasklists.List().MaxResults(PageSize).Context(ctx)
			if pageToken != "" {
				req = req.PageToken(pageToken)
			}
			resp, err = req.Do()
			return err
		})
		if err != nil {
			return nil, err
		}
		for _, list := range resp.Items {
			result = append(result, fromTaskList(list))
		}
		if resp.NextPageToken == "" {
			return result, nil
		}
		pageToken = resp.NextPageToken
	}
}

func (c *listCollection) FetchOne(ctx context.Context, id string) (service.Item, error) {
	var list *tasks.TaskList
	err := call(ctx, c.logger, c.timeout, c.Name(), "get", id, func(ctx context.Context) (err error) {
		list, err = c.svc.Tasklists.Get(id).Context(ctx).Do()
		return err
	})
	if err != nil {
		return service.Item{}, err
	}
	return fromTaskList(list), nil
}

func (c *listCollection) Insert(ctx context.Context, title string) (service.Item, error) {
	var list *tasks.TaskList
	err := call(ctx, c.logger, c.timeout, c.Name(), "insert", "", func(ctx context.Context) (err error) {
		list, err = c.svc.Tasklists.Insert(&tasks.TaskList{Title: title}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return service.Item{}, err
	}
	return fromTaskList(list), nil
}

func (c *listCollection) Patch(ctx context.Context, id string, item service.Item) (service.Item, error) {
	var list *tasks.TaskList
	err := call(ctx, c.logger, c.timeout, c.Name(), "patch", id, func(ctx context.Context) (err error) {
		list, err = c.svc.Tasklists.Patch(id, &tasks.TaskList{Title: item.Title}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return service.Item{}, err
	}
	return fromTaskList(list), nil
}

func (c *listCollection) Delete(ctx context.Context, id string) error {
	return call(ctx, c.logger, c.timeout, c.Name(), "delete", id, func(ctx context.Context) error {
		return c.svc.Tasklists.Delete(id).Context(ctx).Do()
	})
}

type taskCollection struct {
	svc     *tasks.Service
	listID  string
	logger  *slog.Logger
	timeout time.Duration
}

func (c *taskCollection) Name() string { return "tasks" }

// FetchAll uses the API defaults: completed tasks are included, hidden ones
// are not, so finished tasks drop out of the enumeration. Each page is a
// separate call with its own APITimeout.
func (c *taskCollection) FetchAll(ctx context.Context) ([]service.Item, error) {
	var result []service.Item
	pageToken := ""
	for {
		var resp *tasks.Tasks
		err := call(ctx, c.logger, c.timeout, c.Name(), "list", c.listID, func(ctx context.Context) (err error) {
			req := c.svc.Tasks.List(c.listID).MaxResults(PageSize).Context(ctx)
			if pageToken != "" {
				req = req.PageToken(pageToken)
			}
			resp, err = req.Do()
			return err
		})
		if err != nil {
			return nil, err
		}
		for _, task := range resp.Items {
			result = append(result, fromTask(task))
		}
		if resp.NextPageToken == "" {
			return result, nil
		}
		pageToken = resp.NextPageToken
	}
}

func (c *taskCollection) FetchOne(ctx context.Context, id string) (service.Item, error) {
	var task *tasks.Task
	err := call(ctx, c.logger, c.timeout, c.Name(), "get", id, func(ctx context.Context) (err error) {
		task, err = c.svc.Tasks.Get(c.listID, id).Context(ctx).Do()
		return err
	})
	if err != nil {
		return service.Item{}, err
	}
	return fromTask(task), nil
}

func (c *taskCollection) Insert(ctx context.Context, title string) (service.Item, error) {
	var task *tasks.Task
	err := call(ctx, c.logger, c.timeout, c.Name(), "insert", "", func(ctx context.Context) (err error) {
		task, err = c.svc.Tasks.Insert(c.listID, &tasks.Task{Title: title}).Context(ctx).Do()
		return err
	})
	if err != nil {
		return service.Item{}, err
	}
	return fromTask(task), nil
}

func (c *taskCollection) Patch(ctx context.Context, id string, item service.Item) (service.Item, error) {
	var task *tasks.Task
	err := call(ctx, c.logger, c.timeout, c.Name(), "patch", id, func(ctx context.Context) (err error) {
		task, err = c.svc.Tasks.Patch(c.listID, id, toTask(item)).Context(ctx).Do()
		return err
	})
	if err != nil {
		return service.Item{}, err
	}
	return fromTask(task), nil
}

func (c *taskCollection) Delete(ctx context.Context, id string) error {
	return call(ctx, c.logger, c.timeout, c.Name(), "delete", id, func(ctx context.Context) error {
		return c.svc.Tasks.Delete(c.listID, id).Context(ctx).Do()
	})
}
