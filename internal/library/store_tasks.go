package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lessonreel/internal/lesson"
)

const untitled = "Untitled lesson"

// Import stores an envelope as a new task. title overrides the lesson title
// when non-empty.
func (s *Store) Import(ctx context.Context, env lesson.Envelope, title string) (*Task, error) {
	if _, ok := lesson.ParseStatus(string(env.Status)); !ok {
		return nil, fmt.Errorf("import task: unknown status %q", env.Status)
	}
	if env.Status == lesson.StatusCompleted && len(env.Raw) == 0 {
		return nil, fmt.Errorf("import task: %w", ErrNoContent)
	}
	title = strings.TrimSpace(title)
	if title == "" && env.Content != nil {
		title = strings.TrimSpace(env.Content.Title)
	}
	if title == "" {
		title = untitled
	}

	id := uuid.NewString()
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.exec(
		ctx,
		`INSERT INTO lessons (
            id, title, status, progress, error_message, content_json, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		title,
		env.Status,
		clampPercent(env.Progress),
		nullableString(env.ErrorMessage),
		nullableString(string(env.Raw)),
		timestamp,
		timestamp,
	); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return s.Get(ctx, id)
}

// Get fetches a task by its full ID.
func (s *Store) Get(ctx context.Context, id string) (*Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM lessons WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// Resolve finds a task by full ID or unique ID prefix.
func (s *Store) Resolve(ctx context.Context, ref string) (*Task, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" || strings.ContainsAny(ref, "%_") {
		return nil, fmt.Errorf("%q: %w", ref, ErrNotFound)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM lessons WHERE id = ? OR id LIKE ? ORDER BY id LIMIT 3`,
		ref, ref+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("resolve task: %w", err)
	}
	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, fmt.Errorf("resolve task: %w", err)
	}
	for _, task := range tasks {
		if task.ID == ref {
			return task, nil
		}
	}
	switch len(tasks) {
	case 0:
		return nil, fmt.Errorf("%q: %w", ref, ErrNotFound)
	case 1:
		return tasks[0], nil
	default:
		return nil, fmt.Errorf("%q: %w", ref, ErrAmbiguous)
	}
}

// List returns tasks, newest first, optionally filtered by status.
func (s *Store) List(ctx context.Context, statuses ...lesson.Status) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM lessons`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		query += ` WHERE status IN (` + makePlaceholders(len(statuses)) + `)`
		for _, status := range statuses {
			args = append(args, status)
		}
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateStatus records a status report for a task. Completing a task
// requires a stored payload; use Apply to deliver one.
func (s *Store) UpdateStatus(ctx context.Context, id string, status lesson.Status, progress float64, message string) error {
	if _, ok := lesson.ParseStatus(string(status)); !ok {
		return fmt.Errorf("update task: unknown status %q", status)
	}
	if status == lesson.StatusCompleted {
		progress = 100
	}
	res, err := s.exec(
		ctx,
		`UPDATE lessons
         SET status = ?, progress = ?, error_message = ?, updated_at = ?
         WHERE id = ? AND (? <> ? OR content_json IS NOT NULL)`,
		status,
		clampPercent(progress),
		nullableString(message),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
		status,
		lesson.StatusCompleted,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, getErr := s.Get(ctx, id); getErr != nil {
			return getErr
		}
		return fmt.Errorf("update task %s: %w", id, ErrNoContent)
	}
	return nil
}

// Apply replaces a task's status, progress, message and payload with a
// newer envelope for the same generation task.
func (s *Store) Apply(ctx context.Context, id string, env lesson.Envelope) (*Task, error) {
	if _, ok := lesson.ParseStatus(string(env.Status)); !ok {
		return nil, fmt.Errorf("apply envelope: unknown status %q", env.Status)
	}
	if env.Status == lesson.StatusCompleted && len(env.Raw) == 0 {
		return nil, fmt.Errorf("apply envelope: %w", ErrNoContent)
	}
	res, err := s.exec(
		ctx,
		`UPDATE lessons
         SET status = ?, progress = ?, error_message = ?,
             content_json = COALESCE(?, content_json), updated_at = ?
         WHERE id = ?`,
		env.Status,
		clampPercent(env.Progress),
		nullableString(env.ErrorMessage),
		nullableString(string(env.Raw)),
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("apply envelope: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return s.Get(ctx, id)
}

// Remove deletes a task. It reports whether a row was removed.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.exec(ctx, `DELETE FROM lessons WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("remove task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Stats counts tasks by status.
func (s *Store) Stats(ctx context.Context) (map[lesson.Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM lessons GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("task stats: %w", err)
	}
	defer rows.Close()
	stats := make(map[lesson.Status]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats[lesson.Status(status)] = count
	}
	return stats, rows.Err()
}
