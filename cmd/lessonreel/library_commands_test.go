package main

import (
	"context"
	"encoding/json"
	"testing"

	"lessonreel/internal/lesson"
	"lessonreel/internal/testsupport"
)

func importForTest(t *testing.T, env *cliTestEnv, name, payload string) string {
	t.Helper()
	path := testsupport.WriteLesson(t, name, payload)
	if _, _, err := runCLI(t, []string{"library", "import", path}, env.configPath); err != nil {
		t.Fatalf("library import: %v", err)
	}
	store := testsupport.MustOpenStore(t, env.cfg)
	tasks, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return tasks[0].ID
}

func TestLibraryImportListShow(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteLesson(t, "intro.json", testsupport.SampleLessonJSON)

	out, _, err := runCLI(t, []string{"library", "import", path}, env.configPath)
	if err != nil {
		t.Fatalf("library import: %v", err)
	}
	requireContains(t, out, `"Intro to Go" (COMPLETED)`)

	out, _, err = runCLI(t, []string{"library", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("library list: %v", err)
	}
	requireContains(t, out, "Intro to Go")
	requireContains(t, out, "1 completed")

	out, _, err = runCLI(t, []string{"library", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("library list --json: %v", err)
	}
	var views []taskView
	if err := json.Unmarshal([]byte(out), &views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(views) != 1 || views[0].Sections != 3 {
		t.Fatalf("unexpected views %+v", views)
	}

	out, _, err = runCLI(t, []string{"library", "show", views[0].ID[:8]}, env.configPath)
	if err != nil {
		t.Fatalf("library show: %v", err)
	}
	requireContains(t, out, views[0].ID)
	requireContains(t, out, "Sections: 3")
}

func TestLibraryStatusLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)
	id := importForTest(t, env, "pending.json", testsupport.PendingEnvelopeJSON)

	if _, _, err := runCLI(t, []string{"play", "--plain", id}, env.configPath); err == nil {
		t.Fatal("expected playing an unfinished task to fail")
	}

	out, _, err := runCLI(t, []string{"library", "status", id, "failed", "--message", "quota"}, env.configPath)
	if err != nil {
		t.Fatalf("library status: %v", err)
	}
	requireContains(t, out, "is now FAILED")

	out, _, err = runCLI(t, []string{"library", "show", "--json", id}, env.configPath)
	if err != nil {
		t.Fatalf("library show: %v", err)
	}
	var view taskView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Status != string(lesson.StatusFailed) || view.ErrorMessage != "quota" {
		t.Fatalf("unexpected view %+v", view)
	}

	if _, _, err := runCLI(t, []string{"library", "status", id, "completed"}, env.configPath); err == nil {
		t.Fatal("expected completing without content to fail")
	}

	lessonPath := testsupport.WriteLesson(t, "quick.json", quickLessonJSON)
	if _, _, err := runCLI(t, []string{"library", "update", id, lessonPath}, env.configPath); err != nil {
		t.Fatalf("library update: %v", err)
	}
	out, _, err = runCLI(t, []string{"play", "--plain", id}, env.configPath)
	if err != nil {
		t.Fatalf("play from library: %v", err)
	}
	requireContains(t, out, "Section 2/2 · Second")
}

func TestLibrarySearchAndRemove(t *testing.T) {
	env := setupCLITestEnv(t)
	id := importForTest(t, env, "intro.json", testsupport.SampleLessonJSON)

	out, _, err := runCLI(t, []string{"library", "search", "static", "binaries"}, env.configPath)
	if err != nil {
		t.Fatalf("library search: %v", err)
	}
	requireContains(t, out, "Intro to Go")

	out, _, err = runCLI(t, []string{"library", "search", "sourdough"}, env.configPath)
	if err != nil {
		t.Fatalf("library search: %v", err)
	}
	requireContains(t, out, "No matching lessons")

	out, _, err = runCLI(t, []string{"library", "rm", id}, env.configPath)
	if err != nil {
		t.Fatalf("library rm: %v", err)
	}
	requireContains(t, out, "Removed")

	out, _, err = runCLI(t, []string{"library", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("library list: %v", err)
	}
	requireContains(t, out, "Library is empty")
}

func TestLibraryImportRejectsTitleForManyFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	a := testsupport.WriteLesson(t, "a.json", testsupport.SampleLessonJSON)
	b := testsupport.WriteLesson(t, "b.json", quickLessonJSON)
	if _, _, err := runCLI(t, []string{"library", "import", "--title", "x", a, b}, env.configPath); err == nil {
		t.Fatal("expected --title with several files to fail")
	}
}
