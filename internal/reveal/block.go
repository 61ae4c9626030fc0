package reveal

import (
	"math"
	"strings"

	"lessonreel/internal/lesson"
	"lessonreel/internal/textutil"
)

// Output is everything a surface needs to paint one block for one frame.
// Span holds the block-level text; list, code, and diagram blocks add their
// structured parts.
type Output struct {
	Type     lesson.ContentType
	Style    lesson.AnimationType
	Progress float64
	Span
	Items   []Item
	Code    *Code
	Diagram *Diagram
	// Fallback is set when the block's content or animation type is unknown
	// and the opacity-only reveal was used.
	Fallback bool
}

// Item is one revealed list item. Only items that have started appear.
type Item struct {
	Index    int
	Text     string
	Progress float64
	Opacity  float64
	OffsetX  float64
}

// Code is the structured part of a code block.
type Code struct {
	Language     string
	LabelVisible bool
	Lines        []Line
}

// Line is one revealed code line. Only lines that have started appear.
type Line struct {
	Text     string
	Progress float64
	Opacity  float64
	Cursor   bool
}

// Diagram gates a diagram source for a delegated renderer.
type Diagram struct {
	Source  string
	Visible bool
}

// Block reveals block at progress. It never panics on unknown types; those
// degrade to the opacity-only reveal with Fallback set.
func Block(block lesson.Block, progress float64, opts Options) Output {
	progress = Clamp(progress)
	style := StyleFor(block.Animation)
	out := Output{
		Type:     block.Type,
		Style:    style.Name(),
		Progress: progress,
		Fallback: !block.Animation.Known(),
	}

	switch block.Type {
	case lesson.ContentParagraph, lesson.ContentText:
		out.Span = style.apply(block.Content, progress, opts)
	case lesson.ContentList:
		revealList(&out, block.Content, progress, opts)
	case lesson.ContentCode:
		revealCode(&out, block, style, progress, opts)
	case lesson.ContentMermaid:
		revealDiagram(&out, block.Content, progress, opts)
	default:
		out.Style = Opacity{}.Name()
		out.Fallback = true
		out.Span = Opacity{}.apply(block.Content, progress, opts)
	}
	return out
}

func revealList(out *Output, content string, progress float64, opts Options) {
	items := textutil.SplitListItems(content)
	visible := make([]string, 0, len(items))
	for i, text := range items {
		itemProgress := Ramp(progress, len(items), i)
		if itemProgress <= 0 {
			continue
		}
		out.Items = append(out.Items, Item{
			Index:    i,
			Text:     text,
			Progress: itemProgress,
			Opacity:  itemProgress,
			OffsetX:  slideOffset(itemProgress, opts.SlideOffsetPx),
		})
		visible = append(visible, text)
	}
	out.Span = Span{
		Text:    strings.Join(visible, "\n"),
		Opacity: 1,
	}
}

func revealCode(out *Output, block lesson.Block, style Style, progress float64, opts Options) {
	lines := textutil.SplitLines(block.Content)
	code := &Code{
		Language:     block.Language,
		LabelVisible: block.Language != "" && progress > opts.LabelThreshold,
	}
	_, typing := style.(Typing)
	visible := make([]string, 0, len(lines))
	cursor := false
	for i, text := range lines {
		lineProgress := Ramp(progress, len(lines), i)
		if lineProgress <= 0 {
			continue
		}
		line := Line{Progress: lineProgress}
		if typing {
			count := int(math.Floor(float64(textutil.GraphemeCount(text)) * lineProgress))
			line.Text = textutil.TruncateGraphemes(text, count)
			line.Cursor = Partial(lineProgress)
			line.Opacity = 1
		} else {
			line.Text = text
			line.Opacity = lineProgress
		}
		cursor = cursor || line.Cursor
		code.Lines = append(code.Lines, line)
		visible = append(visible, line.Text)
	}
	out.Code = code
	out.Span = Span{
		Text:    strings.Join(visible, "\n"),
		Cursor:  cursor,
		Opacity: 1,
	}
}

func revealDiagram(out *Output, source string, progress float64, opts Options) {
	visible := progress > opts.DiagramThreshold
	out.Diagram = &Diagram{Source: source, Visible: visible}
	out.Span = Span{Text: source}
	if visible {
		out.Span.Opacity = 1
	}
}
