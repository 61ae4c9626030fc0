package library

import (
	"encoding/json"
	"time"

	"lessonreel/internal/lesson"
)

// Task is one stored lesson-generation task.
type Task struct {
	ID           string
	Title        string
	Status       lesson.Status
	Progress     float64
	ErrorMessage string
	// ContentJSON is the lesson payload as received; empty until completed.
	ContentJSON string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ShortID is the first eight characters of the task ID.
func (t *Task) ShortID() string {
	if len(t.ID) <= 8 {
		return t.ID
	}
	return t.ID[:8]
}

// Envelope rebuilds the task envelope. Completed tasks have their content
// parsed; a lesson without a title takes the task title.
func (t *Task) Envelope() (lesson.Envelope, error) {
	env := lesson.Envelope{
		Status:       t.Status,
		Progress:     t.Progress,
		ErrorMessage: t.ErrorMessage,
	}
	if t.ContentJSON != "" {
		env.Raw = json.RawMessage(t.ContentJSON)
	}
	if t.Status != lesson.StatusCompleted {
		return env, nil
	}
	if t.ContentJSON == "" {
		return lesson.Envelope{}, &lesson.InvalidContentError{Reason: "completed task has no content"}
	}
	content, err := lesson.Parse([]byte(t.ContentJSON))
	if err != nil {
		return lesson.Envelope{}, err
	}
	if content.Title == "" {
		content.Title = t.Title
	}
	env.Content = content
	return env, nil
}

// Lesson returns the completed lesson, or the envelope's not-ready/failed error.
func (t *Task) Lesson() (*lesson.Content, error) {
	env, err := t.Envelope()
	if err != nil {
		return nil, err
	}
	return env.Lesson()
}
