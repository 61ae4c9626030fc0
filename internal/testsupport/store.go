package testsupport

import (
	"context"
	"testing"

	"lessonreel/internal/config"
	"lessonreel/internal/library"
	"lessonreel/internal/lesson"
)

// MustOpenStore opens a library.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustImport parses payload as a task envelope and stores it.
func MustImport(t testing.TB, store *library.Store, payload string) *library.Task {
	t.Helper()

	env, err := lesson.ParseEnvelope([]byte(payload))
	if err != nil {
		t.Fatalf("lesson.ParseEnvelope: %v", err)
	}
	task, err := store.Import(context.Background(), env, "")
	if err != nil {
		t.Fatalf("store.Import: %v", err)
	}
	return task
}
