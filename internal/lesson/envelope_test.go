package lesson_test

import (
	"errors"
	"testing"

	"lessonreel/internal/lesson"
)

func TestParseEnvelopeCompleted(t *testing.T) {
	payload := `{"status": "completed", "progress": 100, "content": {"sections": [{"heading": "A", "content": "x"}]}, "error_message": null}`
	env, err := lesson.ParseEnvelope([]byte(payload))
	if err != nil {
		t.Fatalf("ParseEnvelope returned error: %v", err)
	}
	if env.Status != lesson.StatusCompleted {
		t.Fatalf("unexpected status %q", env.Status)
	}
	content, err := env.Lesson()
	if err != nil {
		t.Fatalf("Lesson returned error: %v", err)
	}
	if content.SectionCount() != 1 {
		t.Fatalf("expected 1 section, got %d", content.SectionCount())
	}
}

func TestParseEnvelopePendingIsNotReady(t *testing.T) {
	env, err := lesson.ParseEnvelope([]byte(`{"status": "PROCESSING", "progress": 42.5}`))
	if err != nil {
		t.Fatalf("ParseEnvelope returned error: %v", err)
	}
	if env.Progress != 42.5 {
		t.Fatalf("unexpected progress %v", env.Progress)
	}
	if _, err := env.Lesson(); !errors.Is(err, lesson.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestParseEnvelopeFailedCarriesMessage(t *testing.T) {
	env, err := lesson.ParseEnvelope([]byte(`{"status": "FAILED", "progress": 10, "error_message": "model timeout"}`))
	if err != nil {
		t.Fatalf("ParseEnvelope returned error: %v", err)
	}
	_, err = env.Lesson()
	var failed *lesson.TaskFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected TaskFailedError, got %v", err)
	}
	if failed.Message != "model timeout" {
		t.Fatalf("unexpected message %q", failed.Message)
	}
}

func TestParseEnvelopeBarePayloadIsCompleted(t *testing.T) {
	env, err := lesson.ParseEnvelope([]byte(`{"sections": []}`))
	if err != nil {
		t.Fatalf("ParseEnvelope returned error: %v", err)
	}
	if env.Status != lesson.StatusCompleted || env.Progress != 100 {
		t.Fatalf("unexpected envelope %#v", env)
	}
	content, err := env.Lesson()
	if err != nil || !content.Empty() {
		t.Fatalf("expected empty lesson, got %v / %v", content, err)
	}
}

func TestParseEnvelopeRejectsUnknownStatusAndMissingContent(t *testing.T) {
	if _, err := lesson.ParseEnvelope([]byte(`{"status": "QUEUED"}`)); !errors.Is(err, lesson.ErrInvalidContent) {
		t.Fatalf("expected invalid content for unknown status, got %v", err)
	}
	if _, err := lesson.ParseEnvelope([]byte(`{"status": "COMPLETED"}`)); !errors.Is(err, lesson.ErrInvalidContent) {
		t.Fatalf("expected invalid content for completed task without content, got %v", err)
	}
}

func TestParseEnvelopeClampsProgress(t *testing.T) {
	env, err := lesson.ParseEnvelope([]byte(`{"status": "PENDING", "progress": 250}`))
	if err != nil {
		t.Fatalf("ParseEnvelope returned error: %v", err)
	}
	if env.Progress != 100 {
		t.Fatalf("expected clamped progress, got %v", env.Progress)
	}
}
