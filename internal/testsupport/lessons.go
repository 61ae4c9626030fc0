package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleLessonJSON is a three-section lesson covering every block type.
const SampleLessonJSON = `{
  "title": "Intro to Go",
  "sections": [
    {
      "heading": "Hello",
      "duration_seconds": 2,
      "animation_type": "typing",
      "content_blocks": [
        {"content_type": "paragraph", "content": "Go is a small language."},
        {"content_type": "code", "language": "go", "content": "fmt.Println(\"hi\")", "animation_type": "drawing"}
      ]
    },
    {
      "heading": "Why Go",
      "duration_seconds": 3,
      "animation_type": "fade_in",
      "content_blocks": [
        {"content_type": "list", "content": "- fast builds\n- simple concurrency\n- static binaries"}
      ]
    },
    {
      "heading": "Flow",
      "duration_seconds": 1,
      "animation_type": "slide_in",
      "content_blocks": [
        {"content_type": "mermaid", "content": "graph TD\n  A-->B"}
      ]
    }
  ]
}`

// PendingEnvelopeJSON is a generation task that has not finished.
const PendingEnvelopeJSON = `{"status": "PROCESSING", "progress": 40}`

// FailedEnvelopeJSON is a generation task that failed.
const FailedEnvelopeJSON = `{"status": "FAILED", "progress": 10, "error_message": "model timeout"}`

// WriteLesson writes payload to name inside a temp directory and returns the path.
func WriteLesson(t testing.TB, name, payload string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
