package lib

import (
	"errors"

	"github.com/slok/tasktracker/internal/model"
)

// StorageType identifies the task storage backend.
type StorageType string

const (
	// StorageJSON stores tasks in a JSON document.
	StorageJSON StorageType = StorageType(model.StorageTypeJSON)
	// StorageSQLite stores tasks in a SQLite database.
	StorageSQLite StorageType = StorageType(model.StorageTypeSQLite)
	// StorageMemory keeps tasks in memory while the client lives.
	StorageMemory StorageType = StorageType(model.StorageTypeMemory)
)

// TaskStatus is the progress state of a task.
type TaskStatus string

const (
	// TaskStatusNotDone is the status of every new task.
	TaskStatusNotDone TaskStatus = TaskStatus(model.TaskStatusNotDone)
	// TaskStatusInProgress indicates the task has been started.
	TaskStatusInProgress TaskStatus = TaskStatus(model.TaskStatusInProgress)
	// TaskStatusDone indicates the task is finished.
	TaskStatusDone TaskStatus = TaskStatus(model.TaskStatusDone)
)

// Task is a task returned by the SDK.
//
// This is a copy of the stored task at the time of the API call.
type Task struct {
	// ID is the unique positive identifier assigned on creation. IDs are never reused
	// while a higher one exists.
	ID int
	// Title is the task title.
	Title string
	// Description is the task description.
	Description string
	// Status is the current task status.
	Status TaskStatus
}

// UpdateTaskOpts are the task fields to change. Nil fields are left unchanged.
type UpdateTaskOpts struct {
	Title       *string
	Description *string
	Status      *TaskStatus
}

// ListTasksOpts filters the listed tasks.
type ListTasksOpts struct {
	// Status only lists the tasks with this status when set.
	Status *TaskStatus
}

// Ptr returns a pointer to v, handy to fill optional fields.
func Ptr[T any](v T) *T { return &v }

var (
	// ErrNotFound is returned when a task does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when the input is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrCorrupt is returned when the stored tasks can't be read.
	ErrCorrupt = errors.New("corrupt data")
)

// --- Conversion helpers ---

func fromInternalTask(t model.Task) Task {
	return Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      TaskStatus(t.Status),
	}
}

func fromInternalTaskList(ts []model.Task) []Task {
	result := make([]Task, 0, len(ts))
	for _, t := range ts {
		result = append(result, fromInternalTask(t))
	}
	return result
}

func toInternalStatus(s *TaskStatus) *model.TaskStatus {
	if s == nil {
		return nil
	}
	ms := model.TaskStatus(*s)
	return &ms
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return joinErrors(err, ErrNotFound)
	case errors.Is(err, model.ErrNotValid):
		return joinErrors(err, ErrNotValid)
	case errors.Is(err, model.ErrCorrupt):
		return joinErrors(err, ErrCorrupt)
	default:
		return err
	}
}

func joinErrors(original, sentinel error) error {
	return &mappedError{original: original, sentinel: sentinel}
}

type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	return target == e.sentinel
}

func (e *mappedError) Unwrap() error { return e.original }
