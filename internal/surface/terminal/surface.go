package terminal

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lessonreel/internal/lesson"
	"lessonreel/internal/playback"
	"lessonreel/internal/reveal"
	"lessonreel/internal/surface"
)

const (
	caret      = "▌"
	penMarker  = "✎"
	bullet     = "•"
	clearFrame = "\x1b[H\x1b[2J"
	// pxPerCell converts a slide offset in pixels to terminal columns.
	pxPerCell = 10.0
	barWidth  = 24
)

// Options configures a terminal Surface.
type Options struct {
	// Columns is the paint width. Zero detects it from Writer.
	Columns int
	// Color enables ANSI styling. Interactive enables clear-and-repaint.
	Color       bool
	Interactive bool
	Diagrams    surface.DiagramRenderer
}

// Surface writes frames to a terminal or any io.Writer.
type Surface struct {
	mu      sync.Mutex
	out     io.Writer
	opts    Options
	measure surface.Measurer
	title   cases.Caser
}

// New returns a surface writing to w. With a zero Options, color and
// repainting follow whether w is a terminal.
func New(w io.Writer, opts Options) *Surface {
	if opts.Columns <= 0 {
		opts.Columns = DetectColumns(w)
	}
	if opts.Diagrams == nil {
		opts.Diagrams = surface.SourceDiagrams{}
	}
	return &Surface{
		out:     w,
		opts:    opts,
		measure: CellMeasurer{},
		title:   cases.Title(language.English),
	}
}

// Auto returns Options that color and repaint only on a terminal.
func Auto(w io.Writer) Options {
	tty := IsTerminal(w)
	return Options{Color: tty, Interactive: tty}
}

// SetColumns changes the paint width, for example after a resize.
func (s *Surface) SetColumns(columns int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if columns > 0 {
		s.opts.Columns = columns
	}
}

// Render paints frame.
func (s *Surface) Render(frame playback.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := bufio.NewWriter(s.out)
	if s.opts.Interactive {
		w.WriteString(clearFrame)
	}
	for _, line := range s.lines(frame) {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	if !s.opts.Interactive {
		w.WriteByte('\n')
	}
	return w.Flush()
}

func (s *Surface) lines(frame playback.Frame) []string {
	width := s.opts.Columns
	var out []string
	if frame.Title != "" {
		out = append(out, s.style(frame.Title, text.Bold, text.FgHiWhite))
	}
	if frame.Empty {
		out = append(out, "", s.style("This lesson has no sections.", text.Faint))
		return out
	}
	out = append(out, s.style(fmt.Sprintf("Section %d/%d · %s", frame.SectionIndex+1, frame.SectionCount, frame.Heading), text.FgCyan, text.Bold))
	out = append(out, s.style(strings.Repeat("─", min(width, 60)), text.FgHiBlack), "")

	for _, block := range frame.Blocks {
		out = append(out, s.block(block, width)...)
		out = append(out, "")
	}
	out = append(out, s.status(frame))
	return out
}

func (s *Surface) block(out reveal.Output, width int) []string {
	switch {
	case out.Items != nil || out.Type == lesson.ContentList:
		return s.list(out, width)
	case out.Code != nil:
		return s.code(out, width)
	case out.Diagram != nil:
		return s.diagram(out, width)
	default:
		return s.span(out.Span, width)
	}
}

func (s *Surface) span(span reveal.Span, width int) []string {
	if span.Opacity <= 0 || (span.Text == "" && !span.Cursor) {
		return nil
	}
	indent := slideIndent(span.OffsetX)
	body := span.Text
	switch {
	case span.Cursor:
		body += caret
	case span.Marker:
		body += " " + penMarker
	}
	wrapped := surface.Wrap(body, float64(width-indent), s.measure)
	lines := make([]string, 0, len(wrapped))
	for _, line := range wrapped {
		lines = append(lines, strings.Repeat(" ", indent)+s.fade(line, span.Opacity))
	}
	return lines
}

func (s *Surface) list(out reveal.Output, width int) []string {
	var lines []string
	for _, item := range out.Items {
		if item.Opacity <= 0 {
			continue
		}
		indent := slideIndent(item.OffsetX)
		prefix := strings.Repeat(" ", indent) + bullet + " "
		wrapped := surface.Wrap(item.Text, float64(width-runewidth.StringWidth(prefix)), s.measure)
		for i, line := range wrapped {
			lead := prefix
			if i > 0 {
				lead = strings.Repeat(" ", runewidth.StringWidth(prefix))
			}
			lines = append(lines, lead+s.fade(line, item.Opacity))
		}
	}
	return lines
}

func (s *Surface) code(out reveal.Output, width int) []string {
	if out.Progress <= 0 {
		return nil
	}
	inner := max(width-4, 8)
	top := "┌" + strings.Repeat("─", inner+2) + "┐"
	if out.Code.LabelVisible {
		label := "─ " + s.title.String(out.Code.Language) + " "
		fill := max(inner+2-runewidth.StringWidth(label), 0)
		top = "┌" + label + strings.Repeat("─", fill) + "┐"
	}
	lines := []string{s.style(top, text.FgHiBlack)}
	for _, line := range out.Code.Lines {
		body := line.Text
		if line.Cursor {
			body += caret
		}
		body = runewidth.Truncate(strings.ReplaceAll(body, "\t", "    "), inner, "…")
		pad := max(inner-runewidth.StringWidth(body), 0)
		painted := s.fade(body, line.Opacity)
		if line.Opacity >= 0.5 {
			painted = s.style(body, text.FgGreen)
		}
		lines = append(lines, s.style("│ ", text.FgHiBlack)+painted+strings.Repeat(" ", pad)+s.style(" │", text.FgHiBlack))
	}
	lines = append(lines, s.style("└"+strings.Repeat("─", inner+2)+"┘", text.FgHiBlack))
	return lines
}

func (s *Surface) diagram(out reveal.Output, width int) []string {
	if !out.Diagram.Visible {
		return nil
	}
	rendered, err := s.opts.Diagrams.RenderDiagram(out.Diagram.Source)
	if err != nil {
		return []string{s.style("[diagram unavailable: "+err.Error()+"]", text.FgYellow)}
	}
	lines := []string{s.style("[diagram]", text.FgMagenta)}
	for _, line := range rendered {
		lines = append(lines, "  "+runewidth.Truncate(line, max(width-2, 1), "…"))
	}
	return lines
}

func (s *Surface) status(frame playback.Frame) string {
	filled := int(math.Round(float64(frame.PercentComplete) / 100 * barWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	state := "⏸ paused"
	switch {
	case frame.Completed:
		state = "■ done"
	case frame.Playing:
		state = "▶ playing"
	}
	line := fmt.Sprintf("%s %3d%%  %s  %.2gx", bar, frame.PercentComplete, state, frame.Speed)
	return s.style(line, text.FgHiBlack)
}

// fade maps opacity to terminal intensity: hidden at 0, faint below one half.
func (s *Surface) fade(value string, opacity float64) string {
	switch {
	case opacity <= 0:
		return strings.Repeat(" ", runewidth.StringWidth(value))
	case opacity < 0.5:
		return s.style(value, text.Faint)
	default:
		return value
	}
}

func (s *Surface) style(value string, colors ...text.Color) string {
	if !s.opts.Color || value == "" {
		return value
	}
	return text.Colors(colors).Sprint(value)
}

func slideIndent(offsetPx float64) int {
	return int(math.Round(math.Abs(offsetPx) / pxPerCell))
}
