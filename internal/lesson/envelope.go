package lesson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// Status mirrors the lesson-generation task lifecycle.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// ParseStatus maps a status string (any case) to a known Status.
func ParseStatus(value string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(value))) {
	case StatusPending:
		return StatusPending, true
	case StatusProcessing:
		return StatusProcessing, true
	case StatusCompleted:
		return StatusCompleted, true
	case StatusFailed:
		return StatusFailed, true
	default:
		return "", false
	}
}

// Envelope is a generation task status report. Content is set only when the
// task completed; Raw keeps the content payload as received.
type Envelope struct {
	Status       Status
	Progress     float64
	ErrorMessage string
	Content      *Content
	Raw          json.RawMessage
}

type wireEnvelope struct {
	Status       *string         `json:"status"`
	Progress     *float64        `json:"progress"`
	Content      json.RawMessage `json:"content"`
	Sections     json.RawMessage `json:"sections"`
	ErrorMessage *string         `json:"error_message"`
}

// ParseEnvelope decodes a task envelope. A bare lesson payload (no status
// field) is treated as a completed task.
func ParseEnvelope(data []byte) (Envelope, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Envelope{}, &InvalidContentError{Reason: "empty payload"}
	}

	var wire wireEnvelope
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return Envelope{}, &InvalidContentError{Reason: "malformed payload", Err: err}
	}

	if wire.Status == nil {
		content, err := Parse(trimmed)
		if err != nil {
			return Envelope{}, err
		}
		return Envelope{
			Status:   StatusCompleted,
			Progress: 100,
			Content:  content,
			Raw:      json.RawMessage(trimmed),
		}, nil
	}

	status, ok := ParseStatus(*wire.Status)
	if !ok {
		return Envelope{}, &InvalidContentError{Reason: fmt.Sprintf("unknown task status %q", *wire.Status)}
	}

	env := Envelope{Status: status}
	if wire.Progress != nil {
		env.Progress = clampPercent(*wire.Progress)
	}
	if wire.ErrorMessage != nil {
		env.ErrorMessage = strings.TrimSpace(*wire.ErrorMessage)
	}

	payload := bytes.TrimSpace(wire.Content)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		if len(bytes.TrimSpace(wire.Sections)) > 0 {
			payload = trimmed
		} else {
			payload = nil
		}
	}
	env.Raw = json.RawMessage(payload)

	if status != StatusCompleted {
		return env, nil
	}
	env.Progress = 100
	if payload == nil {
		return Envelope{}, &InvalidContentError{Reason: "completed task has no content"}
	}
	content, err := Parse(payload)
	if err != nil {
		return Envelope{}, err
	}
	env.Content = content
	return env, nil
}

// LoadEnvelope reads a task envelope or bare lesson payload from disk. The
// lesson title defaults to the file name when the payload has none.
func LoadEnvelope(path string) (Envelope, error) {
	data, _, err := readPayload(path)
	if err != nil {
		return Envelope{}, err
	}
	env, err := ParseEnvelope(data)
	if err != nil {
		return Envelope{}, err
	}
	if env.Content != nil && env.Content.Title == "" {
		base := filepath.Base(path)
		env.Content.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return env, nil
}

// Lesson returns the completed lesson content. Pending and processing tasks
// yield ErrNotReady; failed tasks yield a *TaskFailedError.
func (e Envelope) Lesson() (*Content, error) {
	switch e.Status {
	case StatusCompleted:
		if e.Content == nil {
			return nil, &InvalidContentError{Reason: "completed task has no content"}
		}
		return e.Content, nil
	case StatusFailed:
		return nil, &TaskFailedError{Message: e.ErrorMessage}
	default:
		return nil, fmt.Errorf("%w: status %s at %.0f%%", ErrNotReady, e.Status, e.Progress)
	}
}

func clampPercent(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
