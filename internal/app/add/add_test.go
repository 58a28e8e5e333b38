package add_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasktracker/internal/app/add"
	"github.com/slok/tasktracker/internal/log"
	"github.com/slok/tasktracker/internal/model"
	"github.com/slok/tasktracker/internal/storage/memory"
	"github.com/slok/tasktracker/internal/storage/storagemock"
)

func TestNewService(t *testing.T) {
	tests := map[string]struct {
		config add.ServiceConfig
		expErr bool
	}{
		"valid config": {
			config: add.ServiceConfig{Repository: &storagemock.MockRepository{}},
		},
		"missing repository": {
			config: add.ServiceConfig{},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			svc, err := add.NewService(test.config)
			if test.expErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.NotNil(t, svc)
			}
		})
	}
}

func TestService_Run(t *testing.T) {
	tests := map[string]struct {
		mockRepo func(m *storagemock.MockRepository)
		req      add.Request
		expTask  *model.Task
		expErr   bool
	}{
		"Adding to an empty list should use ID 1 and not done status.": {
			mockRepo: func(m *storagemock.MockRepository) {
				m.On("Load", mock.Anything).Once().Return(&model.TaskList{Tasks: []model.Task{}}, model.LoadStateFresh, nil)
				m.On("Save", mock.Anything, model.TaskList{Tasks: []model.Task{
					{ID: 1, Title: "T", Description: "D", Status: model.TaskStatusNotDone},
				}}).Once().Return(nil)
			},
			req:     add.Request{Title: "T", Description: "D"},
			expTask: &model.Task{ID: 1, Title: "T", Description: "D", Status: model.TaskStatusNotDone},
		},
		"Adding should use the max ID plus one and append at the end.": {
			mockRepo: func(m *storagemock.MockRepository) {
				m.On("Load", mock.Anything).Once().Return(&model.TaskList{Tasks: []model.Task{
					{ID: 5, Title: "a", Status: model.TaskStatusDone},
					{ID: 2, Title: "b", Status: model.TaskStatusInProgress},
				}}, model.LoadStateLoaded, nil)
				m.On("Save", mock.Anything, model.TaskList{Tasks: []model.Task{
					{ID: 5, Title: "a", Status: model.TaskStatusDone},
					{ID: 2, Title: "b", Status: model.TaskStatusInProgress},
					{ID: 6, Title: "T", Description: "D", Status: model.TaskStatusNotDone},
				}}).Once().Return(nil)
			},
			req:     add.Request{Title: "T", Description: "D"},
			expTask: &model.Task{ID: 6, Title: "T", Description: "D", Status: model.TaskStatusNotDone},
		},
		"Exhausted IDs should fail without saving.": {
			mockRepo: func(m *storagemock.MockRepository) {
				m.On("Load", mock.Anything).Once().Return(&model.TaskList{Tasks: []model.Task{
					{ID: math.MaxInt, Title: "a", Status: model.TaskStatusDone},
				}}, model.LoadStateLoaded, nil)
			},
			req:    add.Request{Title: "T", Description: "D"},
			expErr: true,
		},
		"A load error should not save.": {
			mockRepo: func(m *storagemock.MockRepository) {
				m.On("Load", mock.Anything).Once().Return(nil, model.LoadState(""), fmt.Errorf("bad file: %w", model.ErrCorrupt))
			},
			req:    add.Request{Title: "T", Description: "D"},
			expErr: true,
		},
		"A save error should propagate.": {
			mockRepo: func(m *storagemock.MockRepository) {
				m.On("Load", mock.Anything).Once().Return(&model.TaskList{}, model.LoadStateFresh, nil)
				m.On("Save", mock.Anything, mock.Anything).Once().Return(fmt.Errorf("disk full"))
			},
			req:    add.Request{Title: "T", Description: "D"},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mRepo := &storagemock.MockRepository{}
			test.mockRepo(mRepo)

			svc, err := add.NewService(add.ServiceConfig{
				Repository: mRepo,
				Logger:     log.Noop,
			})
			require.NoError(err)

			task, err := svc.Run(context.Background(), test.req)
			if test.expErr {
				assert.Error(err)
			} else if assert.NoError(err) {
				assert.Equal(test.expTask, task)
			}

			mRepo.AssertExpectations(t)
		})
	}
}

func TestServiceSequentialIDs(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(err)
	svc, err := add.NewService(add.ServiceConfig{Repository: repo})
	require.NoError(err)

	for i := 1; i <= 10; i++ {
		task, err := svc.Run(ctx, add.Request{Title: fmt.Sprintf("t%d", i)})
		require.NoError(err)
		assert.Equal(t, i, task.ID)
	}

	l, _, err := repo.Load(ctx)
	require.NoError(err)
	for i, task := range l.Tasks {
		assert.Equal(t, i+1, task.ID)
		assert.Equal(t, fmt.Sprintf("t%d", i+1), task.Title)
	}
}
