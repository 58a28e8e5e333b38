package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasktracker/internal/log"
	"github.com/slok/tasktracker/internal/model"
	"github.com/slok/tasktracker/internal/storage/sqlite"
	"github.com/slok/tasktracker/internal/storage/sqlite/migrations"
)

func newRepo(t *testing.T, dbPath string) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		DBPath: dbPath,
		Logger: log.Noop,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestNewRepository(t *testing.T) {
	_, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{})
	assert.Error(t, err)
}

func TestRepositoryLoadFresh(t *testing.T) {
	repo := newRepo(t, filepath.Join(t.TempDir(), "test.db"))

	l, state, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.LoadStateFresh, state)
	assert.Empty(t, l.Tasks)
}

func TestRepositorySaveLoad(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	repo := newRepo(t, dbPath)

	// Insertion order is kept even when IDs are not sorted.
	first := model.TaskList{Tasks: []model.Task{
		{ID: 3, Title: "Call Bob", Description: "re: invoice", Status: model.TaskStatusInProgress},
		{ID: 1, Title: "Buy milk", Description: "2%", Status: model.TaskStatusNotDone},
	}}
	require.NoError(repo.Save(ctx, first))

	got, state, err := repo.Load(ctx)
	require.NoError(err)
	assert.Equal(model.LoadStateLoaded, state)
	assert.Equal(first, *got)

	// A save replaces everything.
	second := model.TaskList{Tasks: []model.Task{
		{ID: 1, Title: "Buy milk", Description: "2%", Status: model.TaskStatusDone},
	}}
	require.NoError(repo.Save(ctx, second))
	got, _, err = repo.Load(ctx)
	require.NoError(err)
	assert.Equal(second, *got)

	// Saving an empty list is still a loaded (not fresh) state.
	require.NoError(repo.Save(ctx, model.TaskList{}))
	got, state, err = repo.Load(ctx)
	require.NoError(err)
	assert.Equal(model.LoadStateLoaded, state)
	assert.Empty(got.Tasks)

	// Data survives reopening the database.
	require.NoError(repo.Save(ctx, second))
	require.NoError(repo.Close())
	reopened := newRepo(t, dbPath)
	got, _, err = reopened.Load(ctx)
	require.NoError(err)
	assert.Equal(second, *got)
}

func TestRepositorySaveInvalid(t *testing.T) {
	repo := newRepo(t, filepath.Join(t.TempDir(), "test.db"))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, model.TaskList{Tasks: []model.Task{
		{ID: 1, Title: "keep", Status: model.TaskStatusDone},
	}}))

	err := repo.Save(ctx, model.TaskList{Tasks: []model.Task{
		{ID: 1, Status: model.TaskStatusDone},
		{ID: 1, Status: model.TaskStatusDone},
	}})
	assert.ErrorIs(t, err, model.ErrNotValid)

	// Previous data is untouched.
	l, _, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, l.Tasks, 1)
	assert.Equal(t, "keep", l.Tasks[0].Title)
}

func TestMigrator(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := migrations.NewMigrator(db, log.Noop)
	require.NoError(err)

	_, applied, err := m.Version(ctx)
	require.NoError(err)
	assert.False(t, applied)

	require.NoError(m.Up(ctx))
	require.NoError(m.Up(ctx)) // No change is not an error.
	v, applied, err := m.Version(ctx)
	require.NoError(err)
	assert.True(t, applied)
	assert.Equal(t, uint(1), v)

	require.NoError(m.Down(ctx))
	_, applied, err = m.Version(ctx)
	require.NoError(err)
	assert.False(t, applied)
}
