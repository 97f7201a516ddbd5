package service

import "errors"

var (
	// ErrNotFound is returned when no task has the requested ID.
	ErrNotFound = errors.New("task not found")

	// ErrEmptyTitle is returned when a title is empty or whitespace-only.
	ErrEmptyTitle = errors.New("title required")

	// ErrEmptyDescription is returned when a description is empty or whitespace-only.
	ErrEmptyDescription = errors.New("description required")
)
