package update

import (
	"context"
	"fmt"

	"github.com/slok/tasktracker/internal/log"
	"github.com/slok/tasktracker/internal/model"
	"github.com/slok/tasktracker/internal/storage"
)

// ServiceConfig is the configuration for the update service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Update"})

	return nil
}

// Service patches tasks.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new update service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the update request parameters. Nil fields are left unchanged.
type Request struct {
	ID          int
	Title       *string
	Description *string
	Status      *model.TaskStatus
}

func (r Request) validate() error {
	if r.Status != nil && !r.Status.Valid() {
		return fmt.Errorf("unknown status %q: %w", *r.Status, model.ErrNotValid)
	}
	return nil
}

// Result is the outcome of an update.
type Result struct {
	// Found is false when no task has the requested ID.
	Found bool
	// Task is the updated task, nil when not found.
	Task *model.Task
}

// Run updates the first task with the requested ID.
// A missing task is not an error: the tasks are saved unchanged and the
// result is marked as not found.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	logger := s.logger.WithCtxValues(ctx)

	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	l, state, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load tasks: %w", err)
	}
	logger.Debugf("tasks loaded (state: %s)", state)

	res := &Result{}
	for i := range l.Tasks {
		t := &l.Tasks[i]
		if t.ID != req.ID {
			continue
		}

		if req.Title != nil {
			t.Title = *req.Title
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.Status != nil {
			t.Status = *req.Status
		}

		updated := *t
		res.Found = true
		res.Task = &updated
		break
	}

	if err := s.repo.Save(ctx, *l); err != nil {
		return nil, fmt.Errorf("could not save tasks: %w", err)
	}

	if !res.Found {
		logger.Warningf("Task %d not found for update", req.ID)
		return res, nil
	}

	logger.Infof("Task %d updated. Title: %q, Description: %q, Status: %q", req.ID, res.Task.Title, res.Task.Description, res.Task.Status)
	return res, nil
}
