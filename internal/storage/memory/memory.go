package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/slok/tasktracker/internal/log"
	"github.com/slok/tasktracker/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	// Tasks is the optional initial task list.
	Tasks  []model.Task
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	list   *model.TaskList
	mu     sync.RWMutex
	logger log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r := &Repository{logger: cfg.Logger}
	if cfg.Tasks != nil {
		l := model.TaskList{Tasks: cfg.Tasks}.Copy()
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("invalid initial tasks: %w", err)
		}
		r.list = &l
	}

	return r, nil
}

// Load returns a copy of the stored task list.
func (r *Repository) Load(ctx context.Context) (*model.TaskList, model.LoadState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.list == nil {
		return &model.TaskList{Tasks: []model.Task{}}, model.LoadStateFresh, nil
	}

	l := r.list.Copy()
	return &l, model.LoadStateLoaded, nil
}

// Save stores a copy of l.
func (r *Repository) Save(ctx context.Context, l model.TaskList) error {
	if err := l.Validate(); err != nil {
		return fmt.Errorf("could not save tasks: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c := l.Copy()
	r.list = &c
	r.logger.Debugf("Saved %d tasks in memory", len(c.Tasks))

	return nil
}
