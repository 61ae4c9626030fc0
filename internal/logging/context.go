package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldTaskID is the key for library task identifiers.
	FieldTaskID = "task_id"
	// FieldLesson is the key for lesson titles.
	FieldLesson = "lesson"
	// FieldSectionIndex is the key for 0-based section indexes.
	FieldSectionIndex = "section_index"
	// FieldSectionCount is the key for the number of sections in a lesson.
	FieldSectionCount = "section_count"
	// FieldOperation is the key for player transport operations.
	FieldOperation = "operation"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the reader what to try next.
	FieldErrorHint = "error_hint"
)

type contextKey int

const (
	taskIDKey contextKey = iota
	lessonKey
)

// WithTaskID returns a context carrying a library task ID for log enrichment.
func WithTaskID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, taskIDKey, id)
}

// WithLesson returns a context carrying a lesson title for log enrichment.
func WithLesson(ctx context.Context, title string) context.Context {
	if title == "" {
		return ctx
	}
	return context.WithValue(ctx, lessonKey, title)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := ctx.Value(taskIDKey).(string); ok {
		fields = append(fields, slog.String(FieldTaskID, id))
	}
	if title, ok := ctx.Value(lessonKey).(string); ok {
		fields = append(fields, slog.String(FieldLesson, title))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
