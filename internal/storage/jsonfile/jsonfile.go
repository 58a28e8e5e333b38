package jsonfile

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/slok/tasktracker/internal/conventions"
	"github.com/slok/tasktracker/internal/log"
	"github.com/slok/tasktracker/internal/model"
)

const indent = "    "

// RepositoryConfig is the configuration for the JSON file repository.
type RepositoryConfig struct {
	// Path is the task document file path.
	Path string
	// RecoverCorrupt makes Load set a corrupt file aside and return an empty
	// list instead of failing.
	RecoverCorrupt bool
	Logger         log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Path == "" {
		return fmt.Errorf("path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.JSONFile"})
	return nil
}

// Repository is a JSON document implementation of storage.Repository.
type Repository struct {
	path           string
	recoverCorrupt bool
	schema         *jsonschema.Schema
	logger         log.Logger
}

// NewRepository creates a new JSON file repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	schema, err := compileDocumentSchema()
	if err != nil {
		return nil, fmt.Errorf("could not load task document schema: %w", err)
	}

	return &Repository{
		path:           cfg.Path,
		recoverCorrupt: cfg.RecoverCorrupt,
		schema:         schema,
		logger:         cfg.Logger,
	}, nil
}

// Load reads the task document.
func (r *Repository) Load(ctx context.Context) (*model.TaskList, model.LoadState, error) {
	if ctx.Err() != nil {
		return nil, "", ctx.Err()
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Infof("Task file %s does not exist, a new one will be created", r.path)
			return &model.TaskList{Tasks: []model.Task{}}, model.LoadStateFresh, nil
		}
		return nil, "", fmt.Errorf("could not read task file: %w", err)
	}

	l, err := r.decode(data)
	if err == nil {
		r.logger.Debugf("Loaded %d tasks from %s", len(l.Tasks), r.path)
		return l, model.LoadStateLoaded, nil
	}

	if !r.recoverCorrupt {
		return nil, "", fmt.Errorf("task file %s: %w: %w", r.path, model.ErrCorrupt, err)
	}

	qPath := conventions.QuarantinePath(r.path, ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String())
	if err := os.Rename(r.path, qPath); err != nil {
		return nil, "", fmt.Errorf("could not set aside corrupt task file: %w", err)
	}
	r.logger.Errorf("Task file %s is corrupt (%s), moved to %s and starting with no tasks", r.path, err, qPath)

	return &model.TaskList{Tasks: []model.Task{}}, model.LoadStateRecovered, nil
}

func (r *Repository) decode(data []byte) (*model.TaskList, error) {
	if err := validateDocument(r.schema, data); err != nil {
		return nil, err
	}

	var l model.TaskList
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("could not decode tasks: %w", err)
	}
	if l.Tasks == nil {
		l.Tasks = []model.Task{}
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}

	return &l, nil
}

// Save replaces the task document with l. The document is written to a
// temporary file on the same directory and renamed over the old one.
func (r *Repository) Save(ctx context.Context, l model.TaskList) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := l.Validate(); err != nil {
		return fmt.Errorf("could not save tasks: %w", err)
	}

	if l.Tasks == nil {
		l.Tasks = []model.Task{}
	}

	data, err := json.MarshalIndent(l, "", indent)
	if err != nil {
		return fmt.Errorf("could not encode tasks: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create task file directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temporary task file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // No-op after a successful rename.

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("could not write temporary task file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("could not set task file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temporary task file: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("could not replace task file: %w", err)
	}

	r.logger.Infof("Tasks saved to file")
	return nil
}
