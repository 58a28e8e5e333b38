package add

import (
	"context"
	"fmt"

	"github.com/slok/tasktracker/internal/log"
	"github.com/slok/tasktracker/internal/model"
	"github.com/slok/tasktracker/internal/storage"
)

// ServiceConfig is the configuration for the add service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Add"})

	return nil
}

// Service adds tasks.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new add service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the add request parameters.
type Request struct {
	Title       string
	Description string
}

// Run appends a new task with the next free ID and the not done status.
func (s *Service) Run(ctx context.Context, req Request) (*model.Task, error) {
	logger := s.logger.WithCtxValues(ctx)

	l, state, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load tasks: %w", err)
	}
	logger.Debugf("tasks loaded (state: %s)", state)

	id, err := l.NextID()
	if err != nil {
		return nil, fmt.Errorf("could not get task id: %w", err)
	}

	task := model.Task{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TaskStatusNotDone,
	}
	l.Tasks = append(l.Tasks, task)

	if err := s.repo.Save(ctx, *l); err != nil {
		return nil, fmt.Errorf("could not save tasks: %w", err)
	}

	logger.Infof("Task %d added. Title: %q, Description: %q", task.ID, task.Title, task.Description)
	return &task, nil
}
