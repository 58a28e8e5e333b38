package lib

import (
	"context"
	"fmt"

	"github.com/slok/tasktracker/internal/app/add"
	"github.com/slok/tasktracker/internal/app/list"
	"github.com/slok/tasktracker/internal/app/remove"
	"github.com/slok/tasktracker/internal/app/update"
	"github.com/slok/tasktracker/internal/model"
)

// AddTask adds a new task with the next free ID and the not done status.
func (c *Client) AddTask(ctx context.Context, title, description string) (*Task, error) {
	svc, err := add.NewService(add.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	t, err := svc.Run(ctx, add.Request{
		Title:       title,
		Description: description,
	})
	if err != nil {
		return nil, mapError(err)
	}

	result := fromInternalTask(*t)
	return &result, nil
}

// UpdateTask changes the set fields of a task.
// Returns [ErrNotFound] if no task has the ID.
func (c *Client) UpdateTask(ctx context.Context, id int, opts UpdateTaskOpts) (*Task, error) {
	svc, err := update.NewService(update.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, update.Request{
		ID:          id,
		Title:       opts.Title,
		Description: opts.Description,
		Status:      toInternalStatus(opts.Status),
	})
	if err != nil {
		return nil, mapError(err)
	}
	if !res.Found {
		return nil, mapError(fmt.Errorf("task %d: %w", id, model.ErrNotFound))
	}

	result := fromInternalTask(*res.Task)
	return &result, nil
}

// DeleteTask removes a task.
// Returns [ErrNotFound] if no task has the ID.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	svc, err := remove.NewService(remove.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	n, err := svc.Run(ctx, remove.Request{ID: id})
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return mapError(fmt.Errorf("task %d: %w", id, model.ErrNotFound))
	}

	return nil
}

// ListTasks returns the tasks in insertion order.
// Pass nil opts to list all of them.
func (c *Client) ListTasks(ctx context.Context, opts *ListTasksOpts) ([]Task, error) {
	svc, err := list.NewService(list.ServiceConfig{
		Repository: c.repo,
		Logger:     c.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create service: %w", err)
	}

	var req list.Request
	if opts != nil {
		req.StatusFilter = toInternalStatus(opts.Status)
	}

	ts, err := svc.Run(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}

	return fromInternalTaskList(ts), nil
}
