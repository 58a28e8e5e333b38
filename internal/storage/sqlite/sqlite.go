package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/tasktracker/internal/log"
	"github.com/slok/tasktracker/internal/model"
	"github.com/slok/tasktracker/internal/storage/sqlite/migrations"
)

const metaKeySavedAt = "saved_at"

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// Load returns all the tasks in insertion order.
func (r *Repository) Load(ctx context.Context) (*model.TaskList, model.LoadState, error) {
	var savedAt string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM store_meta WHERE key = ?`, metaKeySavedAt).Scan(&savedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Infof("Task database has no tasks saved yet")
			return &model.TaskList{Tasks: []model.Task{}}, model.LoadStateFresh, nil
		}
		return nil, "", fmt.Errorf("could not query store metadata: %w", err)
	}

	query := `
		SELECT id, title, description, status
		FROM tasks
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, "", fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var (
			t      model.Task
			status string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &status); err != nil {
			return nil, "", fmt.Errorf("could not scan row: %w", err)
		}

		t.Status, err = model.ParseTaskStatus(status)
		if err != nil {
			return nil, "", fmt.Errorf("task %d: %w: %w", t.ID, model.ErrCorrupt, err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("error iterating rows: %w", err)
	}

	r.logger.Debugf("Loaded %d tasks (last saved at %s)", len(tasks), savedAt)
	return &model.TaskList{Tasks: tasks}, model.LoadStateLoaded, nil
}

// Save replaces all the stored tasks with l in a single transaction.
func (r *Repository) Save(ctx context.Context, l model.TaskList) (err error) {
	if err := l.Validate(); err != nil {
		return fmt.Errorf("could not save tasks: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("could not clear tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (position, id, title, description, status)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("could not prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range l.Tasks {
		if _, err := stmt.ExecContext(ctx, i, t.ID, t.Title, t.Description, string(t.Status)); err != nil {
			return fmt.Errorf("could not insert task %d: %w", t.ID, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO store_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		metaKeySavedAt, strconv.FormatInt(time.Now().UTC().Unix(), 10))
	if err != nil {
		return fmt.Errorf("could not update store metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit tasks: %w", err)
	}

	r.logger.Infof("Tasks saved to database")
	return nil
}
