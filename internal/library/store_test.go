package library_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"lessonreel/internal/lesson"
	"lessonreel/internal/library"
	"lessonreel/internal/testsupport"
)

func TestImportCompletedLesson(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	task := testsupport.MustImport(t, store, testsupport.SampleLessonJSON)
	if len(task.ID) != 36 {
		t.Fatalf("expected uuid id, got %q", task.ID)
	}
	if task.Title != "Intro to Go" || task.Status != lesson.StatusCompleted || task.Progress != 100 {
		t.Fatalf("unexpected task %+v", task)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps")
	}
	if store.Path() != filepath.Join(cfg.Paths.DataDir, "library.db") {
		t.Fatalf("unexpected db path %q", store.Path())
	}

	content, err := task.Lesson()
	if err != nil {
		t.Fatalf("Lesson: %v", err)
	}
	if content.SectionCount() != 3 || content.Sections[1].Blocks[0].Type != lesson.ContentList {
		t.Fatalf("unexpected lesson %+v", content)
	}
}

func TestImportPendingAndFailedEnvelopes(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	pending := testsupport.MustImport(t, store, testsupport.PendingEnvelopeJSON)
	if pending.Title != "Untitled lesson" || pending.Progress != 40 {
		t.Fatalf("unexpected pending task %+v", pending)
	}
	if _, err := pending.Lesson(); !errors.Is(err, lesson.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}

	failed := testsupport.MustImport(t, store, testsupport.FailedEnvelopeJSON)
	_, err := failed.Lesson()
	var taskErr *lesson.TaskFailedError
	if !errors.As(err, &taskErr) || taskErr.Message != "model timeout" {
		t.Fatalf("expected TaskFailedError, got %v", err)
	}
}

func TestImportRejectsCompletedWithoutPayload(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	env := lesson.Envelope{Status: lesson.StatusCompleted, Progress: 100}
	if _, err := store.Import(context.Background(), env, "x"); !errors.Is(err, library.ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestGetResolveAndRemove(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	task := testsupport.MustImport(t, store, testsupport.SampleLessonJSON)

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	resolved, err := store.Resolve(ctx, strings.ToUpper(task.ShortID()))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.ID != task.ID {
		t.Fatalf("expected %s, got %s", task.ID, resolved.ID)
	}
	if _, err := store.Resolve(ctx, "%"); !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("expected wildcard to be rejected, got %v", err)
	}

	removed, err := store.Remove(ctx, task.ID)
	if err != nil || !removed {
		t.Fatalf("Remove: %v %v", removed, err)
	}
	removed, err = store.Remove(ctx, task.ID)
	if err != nil || removed {
		t.Fatalf("expected second remove to be a no-op, got %v %v", removed, err)
	}
}

func TestResolveEmptyPrefixIsAmbiguousOrMissing(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	testsupport.MustImport(t, store, testsupport.SampleLessonJSON)
	testsupport.MustImport(t, store, testsupport.PendingEnvelopeJSON)

	if _, err := store.Resolve(ctx, ""); !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty ref, got %v", err)
	}
	tasks, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	// Any shared prefix of both IDs must be ambiguous.
	a, b := tasks[0].ID, tasks[1].ID
	common := 0
	for common < len(a) && a[common] == b[common] {
		common++
	}
	if common > 0 {
		if _, err := store.Resolve(ctx, a[:common]); !errors.Is(err, library.ErrAmbiguous) {
			t.Fatalf("expected ErrAmbiguous, got %v", err)
		}
	}
}

func TestListFiltersByStatus(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	testsupport.MustImport(t, store, testsupport.SampleLessonJSON)
	testsupport.MustImport(t, store, testsupport.PendingEnvelopeJSON)
	testsupport.MustImport(t, store, testsupport.FailedEnvelopeJSON)

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(all))
	}
	open, err := store.List(ctx, lesson.StatusPending, lesson.StatusProcessing)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(open) != 1 || open[0].Status != lesson.StatusProcessing {
		t.Fatalf("unexpected filtered list %+v", open)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats[lesson.StatusCompleted] != 1 || stats[lesson.StatusFailed] != 1 || stats[lesson.StatusProcessing] != 1 {
		t.Fatalf("unexpected stats %v", stats)
	}
}

func TestUpdateStatusAndApply(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	task := testsupport.MustImport(t, store, testsupport.PendingEnvelopeJSON)

	if err := store.UpdateStatus(ctx, task.ID, lesson.StatusProcessing, 140, ""); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, err := store.Get(ctx, task.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Progress != 100 {
		t.Fatalf("expected clamped progress, got %v", got.Progress)
	}

	if err := store.UpdateStatus(ctx, task.ID, lesson.StatusCompleted, 100, ""); !errors.Is(err, library.ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
	if err := store.UpdateStatus(ctx, "missing", lesson.StatusFailed, 0, "x"); !errors.Is(err, library.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.UpdateStatus(ctx, task.ID, lesson.Status("BOGUS"), 0, ""); err == nil {
		t.Fatal("expected unknown status to be rejected")
	}

	env, err := lesson.ParseEnvelope([]byte(testsupport.SampleLessonJSON))
	if err != nil {
		t.Fatalf("ParseEnvelope: %v", err)
	}
	applied, err := store.Apply(ctx, task.ID, env)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if applied.Status != lesson.StatusCompleted || applied.ContentJSON == "" {
		t.Fatalf("unexpected applied task %+v", applied)
	}
	if applied.Title != "Untitled lesson" {
		t.Fatalf("expected title to be kept, got %q", applied.Title)
	}
	content, err := applied.Lesson()
	if err != nil {
		t.Fatalf("Lesson: %v", err)
	}
	if content.Title != "Intro to Go" {
		t.Fatalf("expected payload title, got %q", content.Title)
	}
}

func TestReopenKeepsTasks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	task := testsupport.MustImport(t, store, testsupport.SampleLessonJSON)
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	if _, err := reopened.Get(context.Background(), task.ID); err != nil {
		t.Fatalf("expected task after reopen: %v", err)
	}
}

func TestSearchRanksByContent(t *testing.T) {
	store := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	ctx := context.Background()
	goLesson := testsupport.MustImport(t, store, testsupport.SampleLessonJSON)
	testsupport.MustImport(t, store, `{"title": "Baking Bread", "sections": [{"heading": "Dough", "content": "Flour water yeast and salt."}]}`)
	testsupport.MustImport(t, store, testsupport.PendingEnvelopeJSON)

	results, err := store.Search(ctx, "simple concurrency", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Task.ID != goLesson.ID {
		t.Fatalf("unexpected results %+v", results)
	}
	if results[0].Score <= 0 || results[0].Score > 1 {
		t.Fatalf("unexpected score %v", results[0].Score)
	}

	none, err := store.Search(ctx, "a", 5)
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no results for short query, got %v %v", none, err)
	}
}

func TestOpenRejectsOtherSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")
	store, err := library.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("set user_version: %v", err)
	}
	db.Close()

	if _, err := library.OpenPath(path); !errors.Is(err, library.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
