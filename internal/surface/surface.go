package surface

import (
	"strings"

	"lessonreel/internal/playback"
	"lessonreel/internal/textutil"
)

// Surface paints one frame. Implementations are called from a single
// goroutine at a time.
type Surface interface {
	Render(frame playback.Frame) error
}

// Measurer reports the width of text in surface units.
type Measurer interface {
	Measure(text string) float64
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(string) float64

func (f MeasureFunc) Measure(text string) float64 { return f(text) }

// GraphemeMeasurer counts grapheme clusters, one unit each.
var GraphemeMeasurer Measurer = MeasureFunc(func(text string) float64 {
	return float64(textutil.GraphemeCount(text))
})

// DiagramRenderer turns diagram source into lines a surface can paint.
type DiagramRenderer interface {
	RenderDiagram(source string) ([]string, error)
}

// SourceDiagrams shows diagram source as-is, one line per source line.
type SourceDiagrams struct{}

func (SourceDiagrams) RenderDiagram(source string) ([]string, error) {
	lines := textutil.SplitLines(textutil.NormalizeText(source))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.TrimRight(line, " \t"))
	}
	return out, nil
}
