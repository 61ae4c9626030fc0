package playback

import (
	"lessonreel/internal/lesson"
	"lessonreel/internal/reveal"
)

// Frame is everything a surface needs to paint the current moment.
type Frame struct {
	Title           string
	SectionIndex    int
	SectionCount    int
	Heading         string
	Progress        float64
	PercentComplete int
	BlockProgress   []float64
	Blocks          []reveal.Output
	Status          Status
	Playing         bool
	Completed       bool
	Speed           float64
	// Empty is set for a lesson without sections; surfaces show an empty state.
	Empty bool
}

// BuildFrame reveals every block of the active section at its ramped progress.
func BuildFrame(s Scheduler, opts reveal.Options) Frame {
	frame := Frame{
		SectionIndex:    s.Index(),
		SectionCount:    s.SectionCount(),
		Progress:        s.Progress(),
		PercentComplete: s.PercentComplete(),
		Status:          s.Status(),
		Playing:         s.Playing(),
		Completed:       s.Completed(),
		Speed:           s.Speed(),
		Empty:           s.Content().Empty(),
	}
	if content := s.Content(); content != nil {
		frame.Title = content.Title
	}
	section, ok := s.Section()
	if !ok {
		return frame
	}
	frame.Heading = section.Heading
	frame.BlockProgress = s.BlockProgress()
	frame.Blocks = make([]reveal.Output, len(section.Blocks))
	for i, block := range section.Blocks {
		frame.Blocks[i] = reveal.Block(block, frame.BlockProgress[i], opts)
	}
	return frame
}

// FrameAt builds the frame for section index at a fixed section progress,
// without running the clock. It is used to render stills.
func FrameAt(content *lesson.Content, index int, progress float64, opts reveal.Options) (Frame, error) {
	s, err := NewScheduler(content, DefaultConfig()).Seek(0, index)
	if err != nil {
		return Frame{}, err
	}
	s.progress = reveal.Clamp(progress)
	s.finished = s.progress >= 1
	return BuildFrame(s, opts), nil
}
