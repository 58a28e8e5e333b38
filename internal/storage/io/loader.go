package io

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/slok/tasktracker/internal/model"
)

// ConfigRepository loads the tracker configuration from YAML or TOML files,
// the format is selected by the file extension.
type ConfigRepository struct {
	fs fs.FS
}

// NewConfigRepository creates a new config repository.
func NewConfigRepository(filesystem fs.FS) *ConfigRepository {
	return &ConfigRepository{fs: filesystem}
}

// GetConfig loads the tracker configuration from a file and returns a validated domain model.
func (r *ConfigRepository) GetConfig(ctx context.Context, filePath string) (model.TrackerConfig, error) {
	data, err := fs.ReadFile(r.fs, filePath)
	if err != nil {
		return model.TrackerConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return model.TrackerConfig{}, ctx.Err()
	}

	var cfg TrackerConfig
	switch ext := strings.ToLower(path.Ext(filePath)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return model.TrackerConfig{}, fmt.Errorf("parsing YAML: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return model.TrackerConfig{}, fmt.Errorf("parsing TOML: %w", err)
		}
	default:
		return model.TrackerConfig{}, fmt.Errorf("unsupported config file extension %q (must be: .yaml, .yml, .toml)", ext)
	}

	if err := cfg.validate(); err != nil {
		return model.TrackerConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg.toModel(), nil
}

// TrackerConfig represents the file structure for the tracker configuration.
type TrackerConfig struct {
	Storage        string `yaml:"storage" toml:"storage"`
	TasksFile      string `yaml:"tasks_file" toml:"tasks_file"`
	DBPath         string `yaml:"db_path" toml:"db_path"`
	RecoverCorrupt *bool  `yaml:"recover_corrupt" toml:"recover_corrupt"`
}

func (c TrackerConfig) validate() error {
	switch model.StorageType(c.Storage) {
	case "", model.StorageTypeJSON, model.StorageTypeSQLite, model.StorageTypeMemory:
	default:
		return fmt.Errorf("unknown storage %q (must be: json, sqlite, memory)", c.Storage)
	}

	return nil
}

func (c TrackerConfig) toModel() model.TrackerConfig {
	return model.TrackerConfig{
		Storage:        model.StorageType(c.Storage),
		TasksFile:      c.TasksFile,
		DBPath:         c.DBPath,
		RecoverCorrupt: c.RecoverCorrupt,
	}
}
