package list

import (
	"context"
	"fmt"

	"github.com/slok/tasktracker/internal/log"
	"github.com/slok/tasktracker/internal/model"
	"github.com/slok/tasktracker/internal/storage"
)

// ServiceConfig is the configuration for the list service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.List"})

	return nil
}

// Service lists tasks with optional filtering.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new list service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the list request parameters.
type Request struct {
	// StatusFilter is an optional filter to only show tasks with this status.
	StatusFilter *model.TaskStatus
}

// Run lists all tasks in insertion order, optionally filtered by status.
// It never writes to the storage.
func (s *Service) Run(ctx context.Context, req Request) ([]model.Task, error) {
	logger := s.logger.WithCtxValues(ctx)

	l, state, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load tasks: %w", err)
	}
	logger.Debugf("tasks loaded (state: %s)", state)

	tasks := l.Tasks
	if req.StatusFilter != nil {
		filtered := make([]model.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Status == *req.StatusFilter {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
		logger.Infof("Listed tasks. Filtered by status: %q", *req.StatusFilter)
	} else {
		logger.Infof("Listed all tasks")
	}

	return tasks, nil
}
