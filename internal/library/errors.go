package library

import "errors"

var (
	// ErrNotFound reports that no task matches the given reference.
	ErrNotFound = errors.New("lesson task not found")
	// ErrAmbiguous reports that an ID prefix matches more than one task.
	ErrAmbiguous = errors.New("lesson task reference is ambiguous")
	// ErrNoContent reports an attempt to complete a task that has no payload.
	ErrNoContent = errors.New("completed task has no content")
)
