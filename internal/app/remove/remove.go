package remove

import (
	"context"
	"fmt"

	"github.com/slok/tasktracker/internal/log"
	"github.com/slok/tasktracker/internal/model"
	"github.com/slok/tasktracker/internal/storage"
)

// ServiceConfig is the configuration for the remove service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Remove"})

	return nil
}

// Service removes tasks.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new remove service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the remove request parameters.
type Request struct {
	// ID of the task(s) to remove.
	ID int
}

// Run removes every task with the requested ID and returns how many were removed.
// The tasks are always saved, even when nothing matched.
func (s *Service) Run(ctx context.Context, req Request) (int, error) {
	logger := s.logger.WithCtxValues(ctx)

	l, state, err := s.repo.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not load tasks: %w", err)
	}
	logger.Debugf("tasks loaded (state: %s)", state)

	kept := make([]model.Task, 0, len(l.Tasks))
	for _, t := range l.Tasks {
		if t.ID != req.ID {
			kept = append(kept, t)
		}
	}
	removed := len(l.Tasks) - len(kept)
	l.Tasks = kept

	if err := s.repo.Save(ctx, *l); err != nil {
		return 0, fmt.Errorf("could not save tasks: %w", err)
	}

	if removed == 0 {
		logger.Warningf("Task %d not found for deletion", req.ID)
		return 0, nil
	}

	logger.Infof("Task %d deleted", req.ID)
	return removed, nil
}
