package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// TaskStatus represents the state of a task.
type TaskStatus string

const (
	TaskStatusNotDone    TaskStatus = "not done"
	TaskStatusInProgress TaskStatus = "in progress"
	TaskStatusDone       TaskStatus = "done"
)

// TaskStatuses returns all the valid task statuses in their natural order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusNotDone, TaskStatusInProgress, TaskStatusDone}
}

// ParseTaskStatus returns the task status represented by s.
func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown task status %q (must be: not done, in progress, done): %w", s, ErrNotValid)
	}
	return st, nil
}

// Valid returns true if the status is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNotDone, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

func (s TaskStatus) String() string { return string(s) }

// UnmarshalJSON rejects any status that is not one of the known statuses.
func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("task status must be a string: %w", err)
	}

	st, err := ParseTaskStatus(raw)
	if err != nil {
		return err
	}
	*s = st

	return nil
}

// Task is a single tracked work item.
type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
}

// TaskList is the ordered task collection, insertion order is preserved.
type TaskList struct {
	Tasks []Task `json:"tasks"`
}

// NextID returns the ID the next added task will get. It fails when the
// highest ID is already the maximum int.
func (l TaskList) NextID() (int, error) {
	maxID := 0
	for _, t := range l.Tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	if maxID == math.MaxInt {
		return 0, fmt.Errorf("no task id available after %d: %w", maxID, ErrNotValid)
	}
	return maxID + 1, nil
}

// Validate checks the list invariants.
func (l TaskList) Validate() error {
	seen := make(map[int]struct{}, len(l.Tasks))
	for i, t := range l.Tasks {
		if t.ID <= 0 {
			return fmt.Errorf("task at position %d has non positive id %d: %w", i, t.ID, ErrNotValid)
		}
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("task id %d is duplicated: %w", t.ID, ErrNotValid)
		}
		seen[t.ID] = struct{}{}

		if !t.Status.Valid() {
			return fmt.Errorf("task %d has unknown status %q: %w", t.ID, t.Status, ErrNotValid)
		}
	}
	return nil
}

// Copy returns a deep copy of the list.
func (l TaskList) Copy() TaskList {
	tasks := make([]Task, len(l.Tasks))
	copy(tasks, l.Tasks)
	return TaskList{Tasks: tasks}
}

// LoadState describes how a task list was obtained from storage.
type LoadState string

const (
	// LoadStateFresh means there was no stored data yet (first run).
	LoadStateFresh LoadState = "fresh"
	// LoadStateLoaded means the stored data was read and is valid.
	LoadStateLoaded LoadState = "loaded"
	// LoadStateRecovered means the stored data was corrupt, it has been set
	// aside and an empty list was returned instead.
	LoadStateRecovered LoadState = "recovered"
)
