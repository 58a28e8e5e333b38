package model

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrCorrupt is returned when persisted data can't be decoded into a valid task list.
	ErrCorrupt = errors.New("corrupt data")
)
