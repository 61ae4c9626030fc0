package lesson

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidContent matches every *InvalidContentError.
	ErrInvalidContent = errors.New("invalid lesson content")
	// ErrNotReady reports that a generation task has not completed yet.
	ErrNotReady = errors.New("lesson generation not complete")
)

// InvalidContentError describes a payload that cannot be turned into a lesson.
type InvalidContentError struct {
	Reason string
	Err    error
}

func (e *InvalidContentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid lesson content: %s: %v", e.Reason, e.Err)
	}
	return "invalid lesson content: " + e.Reason
}

func (e *InvalidContentError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrInvalidContent) match any InvalidContentError.
func (e *InvalidContentError) Is(target error) bool {
	return target == ErrInvalidContent
}

// ErrorKind classifies the error for callers that map failures to states.
func (e *InvalidContentError) ErrorKind() string { return "validation" }

// TaskFailedError carries the generation service's failure message.
type TaskFailedError struct {
	Message string
}

func (e *TaskFailedError) Error() string {
	if e.Message == "" {
		return "lesson generation failed"
	}
	return "lesson generation failed: " + e.Message
}

// ErrorKind classifies the error for callers that map failures to states.
func (e *TaskFailedError) ErrorKind() string { return "generation" }
