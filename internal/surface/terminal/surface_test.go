package terminal_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"

	"lessonreel/internal/lesson"
	"lessonreel/internal/playback"
	"lessonreel/internal/reveal"
	"lessonreel/internal/surface/terminal"
)

func sampleLesson() *lesson.Content {
	return &lesson.Content{
		Title: "Go Basics",
		Sections: []lesson.Section{{
			Heading:         "Hello",
			DurationSeconds: 4,
			Animation:       lesson.AnimationTyping,
			Blocks: []lesson.Block{
				{Type: lesson.ContentParagraph, Content: "Hello world", Animation: lesson.AnimationTyping},
				{Type: lesson.ContentList, Content: "- one\n- two", Animation: lesson.AnimationSlideIn},
				{Type: lesson.ContentCode, Content: "fmt.Println(1)", Language: "go", Animation: lesson.AnimationTyping},
				{Type: lesson.ContentMermaid, Content: "graph TD\nA-->B", Animation: lesson.AnimationFadeIn},
			},
		}},
	}
}

func render(t *testing.T, frame playback.Frame, opts terminal.Options) string {
	t.Helper()
	var buf bytes.Buffer
	if opts.Columns == 0 {
		opts.Columns = 60
	}
	if err := terminal.New(&buf, opts).Render(frame); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRenderCompletedSection(t *testing.T) {
	frame, err := playback.FrameAt(sampleLesson(), 0, 1, reveal.DefaultOptions())
	if err != nil {
		t.Fatalf("FrameAt: %v", err)
	}
	out := render(t, frame, terminal.Options{})
	for _, want := range []string{
		"Go Basics",
		"Section 1/1 · Hello",
		"Hello world\n",
		"• one",
		"• two",
		"┌─ Go ",
		"│ fmt.Println(1)",
		"[diagram]",
		"  A-->B",
		"100%",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no escape codes without color:\n%q", out)
	}
	if strings.Contains(out, "▌") {
		t.Fatalf("expected no caret on completed text:\n%s", out)
	}
}

func TestRenderPartialShowsCaretAndHidesLaterBlocks(t *testing.T) {
	// Four blocks: progress 0.125 puts the paragraph halfway.
	frame, _ := playback.FrameAt(sampleLesson(), 0, 0.125, reveal.DefaultOptions())
	out := render(t, frame, terminal.Options{})
	if !strings.Contains(out, "Hello▌") {
		t.Fatalf("expected typed prefix with caret:\n%s", out)
	}
	for _, hidden := range []string{"• one", "┌", "[diagram]"} {
		if strings.Contains(out, hidden) {
			t.Fatalf("expected %q hidden before its block starts:\n%s", hidden, out)
		}
	}
}

func TestRenderColorAndRepaint(t *testing.T) {
	text.EnableColors()
	frame, _ := playback.FrameAt(sampleLesson(), 0, 1, reveal.DefaultOptions())
	out := render(t, frame, terminal.Options{Color: true, Interactive: true})
	if !strings.HasPrefix(out, "\x1b[H\x1b[2J") {
		t.Fatalf("expected clear-screen prefix, got %q", out[:min(len(out), 20)])
	}
	if !strings.Contains(out, "\x1b[") {
		t.Fatal("expected ANSI styling when color is enabled")
	}
}

func TestRenderEmptyLesson(t *testing.T) {
	player := playback.NewPlayer(&lesson.Content{Title: "Nothing"}, playback.DefaultOptions())
	defer player.Close()
	out := render(t, player.Frame(), terminal.Options{})
	if !strings.Contains(out, "This lesson has no sections.") {
		t.Fatalf("expected empty state:\n%s", out)
	}
}

func TestSlideIndentShrinks(t *testing.T) {
	content := &lesson.Content{Sections: []lesson.Section{{
		Heading:         "Slide",
		DurationSeconds: 1,
		Blocks: []lesson.Block{
			{Type: lesson.ContentParagraph, Content: "moving", Animation: lesson.AnimationSlideIn},
		},
	}}}
	half, _ := playback.FrameAt(content, 0, 0.5, reveal.DefaultOptions())
	done, _ := playback.FrameAt(content, 0, 1, reveal.DefaultOptions())
	if !strings.Contains(render(t, half, terminal.Options{}), "\n   moving\n") {
		t.Fatalf("expected a 3-column indent at half progress:\n%s", render(t, half, terminal.Options{}))
	}
	if !strings.Contains(render(t, done, terminal.Options{}), "\nmoving\n") {
		t.Fatalf("expected no indent at full progress:\n%s", render(t, done, terminal.Options{}))
	}
}

type failingDiagrams struct{}

func (failingDiagrams) RenderDiagram(string) ([]string, error) {
	return nil, errors.New("renderer offline")
}

func TestDiagramRendererErrorIsShown(t *testing.T) {
	frame, _ := playback.FrameAt(sampleLesson(), 0, 1, reveal.DefaultOptions())
	out := render(t, frame, terminal.Options{Diagrams: failingDiagrams{}})
	if !strings.Contains(out, "[diagram unavailable: renderer offline]") {
		t.Fatalf("expected diagram error placeholder:\n%s", out)
	}
}

func TestCellMeasurerCountsWideRunes(t *testing.T) {
	if got := (terminal.CellMeasurer{}).Measure("日本"); got != 4 {
		t.Fatalf("expected 4 cells, got %v", got)
	}
}

func TestDetectColumnsFallsBack(t *testing.T) {
	if got := terminal.DetectColumns(&bytes.Buffer{}); got != terminal.DefaultColumns {
		t.Fatalf("expected default columns, got %d", got)
	}
	if terminal.IsTerminal(&bytes.Buffer{}) {
		t.Fatal("buffer is not a terminal")
	}
}
