package storage

import (
	"context"

	"github.com/slok/tasktracker/internal/model"
)

// Repository is the interface for task list persistence.
//
// The task list is always loaded and saved as a whole.
type Repository interface {
	// Load returns the stored task list and how it was obtained. A missing
	// store is not an error, it returns an empty list with model.LoadStateFresh.
	Load(ctx context.Context) (*model.TaskList, model.LoadState, error)
	// Save replaces the stored task list with l.
	Save(ctx context.Context, l model.TaskList) error
}

//go:generate mockery --case underscore --output storagemock --outpkg storagemock --name Repository
