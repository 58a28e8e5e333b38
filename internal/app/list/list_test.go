package list_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasktracker/internal/app/list"
	"github.com/slok/tasktracker/internal/log"
	"github.com/slok/tasktracker/internal/model"
	"github.com/slok/tasktracker/internal/storage/storagemock"
)

func TestNewService(t *testing.T) {
	_, err := list.NewService(list.ServiceConfig{})
	assert.Error(t, err)
}

func TestService_Run(t *testing.T) {
	statusPtr := func(s model.TaskStatus) *model.TaskStatus { return &s }
	t1 := model.Task{ID: 1, Title: "a", Status: model.TaskStatusDone}
	t2 := model.Task{ID: 2, Title: "b", Status: model.TaskStatusNotDone}
	t3 := model.Task{ID: 3, Title: "c", Status: model.TaskStatusDone}
	t4 := model.Task{ID: 4, Title: "d", Status: model.TaskStatusInProgress}
	all := []model.Task{t1, t2, t3, t4}

	tests := map[string]struct {
		mockRepo func(m *storagemock.MockRepository)
		req      list.Request
		expTasks []model.Task
		expErr   bool
	}{
		"Without filter all tasks should be returned in order.": {
			mockRepo: func(m *storagemock.MockRepository) {
				m.On("Load", mock.Anything).Once().Return(&model.TaskList{Tasks: all}, model.LoadStateLoaded, nil)
			},
			req:      list.Request{},
			expTasks: all,
		},
		"Filtering by done should keep the relative order.": {
			mockRepo: func(m *storagemock.MockRepository) {
				m.On("Load", mock.Anything).Once().Return(&model.TaskList{Tasks: all}, model.LoadStateLoaded, nil)
			},
			req:      list.Request{StatusFilter: statusPtr(model.TaskStatusDone)},
			expTasks: []model.Task{t1, t3},
		},
		"Filtering with no matches should return nothing.": {
			mockRepo: func(m *storagemock.MockRepository) {
				m.On("Load", mock.Anything).Once().Return(&model.TaskList{Tasks: []model.Task{t1}}, model.LoadStateLoaded, nil)
			},
			req:      list.Request{StatusFilter: statusPtr(model.TaskStatusInProgress)},
			expTasks: []model.Task{},
		},
		"A fresh store should return no tasks.": {
			mockRepo: func(m *storagemock.MockRepository) {
				m.On("Load", mock.Anything).Once().Return(&model.TaskList{Tasks: []model.Task{}}, model.LoadStateFresh, nil)
			},
			expTasks: []model.Task{},
		},
		"A load error should propagate.": {
			mockRepo: func(m *storagemock.MockRepository) {
				m.On("Load", mock.Anything).Once().Return(nil, model.LoadState(""), fmt.Errorf("boom"))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			// No Save expectation: listing must never write.
			mRepo := &storagemock.MockRepository{}
			test.mockRepo(mRepo)

			svc, err := list.NewService(list.ServiceConfig{
				Repository: mRepo,
				Logger:     log.Noop,
			})
			require.NoError(err)

			tasks, err := svc.Run(context.Background(), test.req)
			if test.expErr {
				assert.Error(err)
			} else if assert.NoError(err) {
				assert.Equal(test.expTasks, tasks)
			}

			mRepo.AssertExpectations(t)
		})
	}
}
