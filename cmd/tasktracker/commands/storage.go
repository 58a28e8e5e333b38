package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/slok/tasktracker/internal/conventions"
	"github.com/slok/tasktracker/internal/model"
	"github.com/slok/tasktracker/internal/storage"
	storageio "github.com/slok/tasktracker/internal/storage/io"
	"github.com/slok/tasktracker/internal/storage/jsonfile"
	"github.com/slok/tasktracker/internal/storage/memory"
	"github.com/slok/tasktracker/internal/storage/sqlite"
)

// StorageConfig is the resolved storage configuration of a command execution.
type StorageConfig struct {
	Storage        model.StorageType
	TasksFile      string
	DBPath         string
	RecoverCorrupt bool
}

// ResolveStorageConfig merges the storage configuration: flags (and their
// env vars) win over the config file, which wins over the defaults.
func (r *RootCommand) ResolveStorageConfig(ctx context.Context) (*StorageConfig, error) {
	fileCfg, err := r.loadConfigFile(ctx)
	if err != nil {
		return nil, err
	}

	cfg := &StorageConfig{
		Storage:        model.StorageTypeJSON,
		TasksFile:      conventions.TasksFilePath(r.HomeDir),
		DBPath:         conventions.DBFilePath(r.HomeDir),
		RecoverCorrupt: r.Recover,
	}

	if fileCfg.Storage != "" {
		cfg.Storage = fileCfg.Storage
	}
	if fileCfg.TasksFile != "" {
		cfg.TasksFile = fileCfg.TasksFile
	}
	if fileCfg.DBPath != "" {
		cfg.DBPath = fileCfg.DBPath
	}
	// An explicit --recover or --no-recover wins over the config file.
	if fileCfg.RecoverCorrupt != nil && !r.RecoverSet && !r.Recover {
		cfg.RecoverCorrupt = *fileCfg.RecoverCorrupt
	}

	if r.Storage != "" {
		cfg.Storage = model.StorageType(r.Storage)
	}
	if r.TasksFile != "" {
		cfg.TasksFile = r.TasksFile
	}
	if r.DBPath != "" {
		cfg.DBPath = r.DBPath
	}

	return cfg, nil
}

func (r *RootCommand) loadConfigFile(ctx context.Context) (model.TrackerConfig, error) {
	configPath := r.ConfigPath
	explicit := configPath != ""
	if !explicit {
		configPath = conventions.ConfigFilePath(r.HomeDir)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return model.TrackerConfig{}, fmt.Errorf("could not resolve config path: %w", err)
		}
		configPath = absPath
	}

	if !explicit {
		if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
			return model.TrackerConfig{}, nil
		}
	}

	configRepo := storageio.NewConfigRepository(os.DirFS("/"))
	cfg, err := configRepo.GetConfig(ctx, configPath[1:])
	if err != nil {
		return model.TrackerConfig{}, fmt.Errorf("could not load config: %w", err)
	}
	r.Logger.Debugf("Configuration loaded from %s", configPath)

	return cfg, nil
}

// newRepository returns the task repository selected by the configuration
// and a function to release it.
func newRepository(ctx context.Context, rootCmd *RootCommand) (storage.Repository, func(), error) {
	logger := rootCmd.Logger

	cfg, err := rootCmd.ResolveStorageConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Storage {
	case model.StorageTypeJSON:
		repo, err := jsonfile.NewRepository(jsonfile.RepositoryConfig{
			Path:           cfg.TasksFile,
			RecoverCorrupt: cfg.RecoverCorrupt,
			Logger:         logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("could not create json file repository: %w", err)
		}
		return repo, func() {}, nil

	case model.StorageTypeSQLite:
		repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: cfg.DBPath,
			Logger: logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("could not create sqlite repository: %w", err)
		}
		return repo, func() {
			if err := repo.Close(); err != nil {
				logger.Errorf("could not close database: %s", err)
			}
		}, nil

	case model.StorageTypeMemory:
		logger.Warningf("Using memory storage, changes will not be persisted")
		repo, err := memory.NewRepository(memory.RepositoryConfig{Logger: logger})
		if err != nil {
			return nil, nil, fmt.Errorf("could not create memory repository: %w", err)
		}
		return repo, func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}
