package lib

import (
	"context"
	"fmt"

	"k8s.io/client-go/util/homedir"

	"github.com/slok/tasktracker/internal/conventions"
	"github.com/slok/tasktracker/internal/log"
	"github.com/slok/tasktracker/internal/storage"
	"github.com/slok/tasktracker/internal/storage/jsonfile"
	"github.com/slok/tasktracker/internal/storage/memory"
	"github.com/slok/tasktracker/internal/storage/sqlite"
)

// Config configures the SDK client.
//
// All fields are optional. An empty Config{} uses the JSON document at
// ~/.tasktracker/tasks.json.
type Config struct {
	// Storage selects the storage backend.
	// Default: [StorageJSON].
	Storage StorageType

	// TasksFile is the JSON document path, used by [StorageJSON].
	// Default: ~/.tasktracker/tasks.json.
	TasksFile string

	// DBPath is the SQLite database path, used by [StorageSQLite].
	// Default: ~/.tasktracker/tasks.db.
	DBPath string

	// RecoverCorrupt moves a corrupt JSON document aside and starts with no
	// tasks instead of failing with [ErrCorrupt].
	RecoverCorrupt bool

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Storage == "" {
		c.Storage = StorageJSON
	}

	home := homedir.HomeDir()
	if c.TasksFile == "" {
		c.TasksFile = conventions.TasksFilePath(home)
	}
	if c.DBPath == "" {
		c.DBPath = conventions.DBFilePath(home)
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}

	return nil
}

// Client is the main SDK entry point for managing tasks programmatically.
//
// Create a Client with [New] and release its resources with [Client.Close].
// Every method loads and saves the whole task list, so a Client must not be
// used concurrently with other writers of the same storage.
type Client struct {
	repo    storage.Repository
	logger  log.Logger
	closeFn func() error
}

// New creates a new SDK client on the configured storage.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Client{logger: cfg.Logger}

	switch cfg.Storage {
	case StorageJSON:
		repo, err := jsonfile.NewRepository(jsonfile.RepositoryConfig{
			Path:           cfg.TasksFile,
			RecoverCorrupt: cfg.RecoverCorrupt,
			Logger:         cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		c.repo = repo

	case StorageSQLite:
		repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: cfg.DBPath,
			Logger: cfg.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		c.repo = repo
		c.closeFn = repo.Close

	case StorageMemory:
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: cfg.Logger})
		if err != nil {
			return nil, fmt.Errorf("could not create repository: %w", err)
		}
		c.repo = repo

	default:
		return nil, fmt.Errorf("unsupported storage type: %s: %w", cfg.Storage, ErrNotValid)
	}

	return c, nil
}

// Close releases resources held by the client.
// After Close returns, the client must not be used.
func (c *Client) Close() error {
	if c.closeFn != nil {
		return c.closeFn()
	}
	return nil
}
