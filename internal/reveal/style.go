package reveal

import (
	"math"
	"strings"

	"lessonreel/internal/lesson"
	"lessonreel/internal/textutil"
)

// Options tunes surface-dependent reveal constants.
type Options struct {
	// SlideOffsetPx is the starting horizontal offset of slide_in content.
	// Negative values enter from the left.
	SlideOffsetPx float64
	// LabelThreshold is the block progress after which a code block's
	// language label is shown.
	LabelThreshold float64
	// DiagramThreshold is the block progress after which a diagram is shown.
	DiagramThreshold float64
}

// DefaultOptions returns the constants used when a host does not override them.
func DefaultOptions() Options {
	return Options{
		SlideOffsetPx:    -50,
		LabelThreshold:   0.2,
		DiagramThreshold: 0.3,
	}
}

// Span is the partially revealed form of a run of text.
type Span struct {
	Text    string
	Cursor  bool
	Marker  bool
	Opacity float64
	OffsetX float64
}

// Style is one reveal strategy. The set is closed: only the variants in this
// package implement it.
type Style interface {
	Name() lesson.AnimationType
	apply(text string, progress float64, opts Options) Span
}

// Typing reveals a prefix of the text, one grapheme cluster at a time.
type Typing struct{}

// Drawing reveals whole words left to right.
type Drawing struct{}

// FadeIn shows the full text with opacity equal to progress.
type FadeIn struct{}

// SlideIn shows the full text sliding in from SlideOffsetPx while fading in.
type SlideIn struct{}

// Opacity is the fallback for unknown animation types.
type Opacity struct{}

func (Typing) Name() lesson.AnimationType  { return lesson.AnimationTyping }
func (Drawing) Name() lesson.AnimationType { return lesson.AnimationDrawing }
func (FadeIn) Name() lesson.AnimationType  { return lesson.AnimationFadeIn }
func (SlideIn) Name() lesson.AnimationType { return lesson.AnimationSlideIn }
func (Opacity) Name() lesson.AnimationType { return "opacity" }

func (Typing) apply(text string, progress float64, _ Options) Span {
	visible := int(math.Floor(float64(textutil.GraphemeCount(text)) * progress))
	return Span{
		Text:    textutil.TruncateGraphemes(text, visible),
		Cursor:  Partial(progress),
		Opacity: 1,
	}
}

func (Drawing) apply(text string, progress float64, _ Options) Span {
	words := strings.Fields(text)
	visible := int(math.Floor(float64(len(words)) * progress))
	return Span{
		Text:    strings.Join(words[:visible], " "),
		Marker:  Partial(progress),
		Opacity: 1,
	}
}

func (FadeIn) apply(text string, progress float64, _ Options) Span {
	return Span{Text: text, Opacity: progress}
}

func (SlideIn) apply(text string, progress float64, opts Options) Span {
	return Span{
		Text:    text,
		Opacity: progress,
		OffsetX: slideOffset(progress, opts.SlideOffsetPx),
	}
}

func (Opacity) apply(text string, progress float64, _ Options) Span {
	return Span{Text: text, Opacity: progress}
}

// StyleFor maps an animation type to its style, falling back to Opacity.
func StyleFor(animation lesson.AnimationType) Style {
	switch animation {
	case lesson.AnimationTyping:
		return Typing{}
	case lesson.AnimationDrawing:
		return Drawing{}
	case lesson.AnimationFadeIn:
		return FadeIn{}
	case lesson.AnimationSlideIn:
		return SlideIn{}
	default:
		return Opacity{}
	}
}

// Apply reveals text with style at progress. Progress is clamped to [0, 1].
func Apply(style Style, text string, progress float64, opts Options) Span {
	if style == nil {
		style = Opacity{}
	}
	return style.apply(text, Clamp(progress), opts)
}

func slideOffset(progress, offset float64) float64 {
	if progress >= 1 {
		return 0
	}
	return (1 - progress) * offset
}
