package playback

import (
	"errors"
	"fmt"
	"math"

	"lessonreel/internal/lesson"
	"lessonreel/internal/reveal"
)

var (
	// ErrSectionOutOfRange reports a seek target outside the lesson.
	ErrSectionOutOfRange = errors.New("section index out of range")
	// ErrInvalidSpeed reports a speed multiplier outside (0, MaxSpeed].
	ErrInvalidSpeed = errors.New("invalid speed multiplier")
)

const (
	// DefaultHoldMs is the pause between a finished section and auto-advance.
	DefaultHoldMs = 1500.0
	// MaxSpeed bounds SetSpeed.
	MaxSpeed = 16.0
)

// Status is the coarse playback state.
type Status int

const (
	StatusNotStarted Status = iota
	StatusPlaying
	StatusPaused
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusCompleted:
		return "completed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Config holds the scheduler's tunables.
type Config struct {
	AutoAdvance bool
	HoldMs      float64
	Speed       float64
}

// DefaultConfig returns auto-advance on, a 1500 ms hold, and normal speed.
func DefaultConfig() Config {
	return Config{AutoAdvance: true, HoldMs: DefaultHoldMs, Speed: 1}
}

// Scheduler is one lesson's playback state.
//
// While playing, section progress is anchorProgress plus the time since
// baselineMs scaled by speed. Pause, resume, and speed changes fold the
// current progress into the anchor and re-baseline, so paused wall time is
// excluded and earlier time is never rescaled.
type Scheduler struct {
	content *lesson.Content
	cfg     Config

	index     int
	started   bool
	playing   bool
	completed bool
	finished  bool

	progress       float64
	anchorProgress float64
	baselineMs     float64
	lastNowMs      float64

	advancePending bool
	advanceAtMs    float64
}

// NewScheduler returns a not-started scheduler for content. An empty lesson
// is completed from the start.
func NewScheduler(content *lesson.Content, cfg Config) Scheduler {
	if cfg.Speed <= 0 || math.IsNaN(cfg.Speed) {
		cfg.Speed = 1
	}
	if cfg.HoldMs < 0 || math.IsNaN(cfg.HoldMs) {
		cfg.HoldMs = 0
	}
	s := Scheduler{content: content, cfg: cfg}
	if content.Empty() {
		s.completed = true
	}
	return s
}

func (s Scheduler) Content() *lesson.Content { return s.content }
func (s Scheduler) Config() Config           { return s.cfg }
func (s Scheduler) Index() int               { return s.index }
func (s Scheduler) SectionCount() int        { return s.content.SectionCount() }
func (s Scheduler) Started() bool            { return s.started }
func (s Scheduler) Playing() bool            { return s.playing }
func (s Scheduler) Completed() bool          { return s.completed }
func (s Scheduler) Speed() float64           { return s.cfg.Speed }
func (s Scheduler) Progress() float64        { return s.progress }

// SectionFinished reports whether the active section's reveal has reached 1.
func (s Scheduler) SectionFinished() bool { return s.finished }

// AdvanceAt returns the time an auto-advance is due, if one is pending.
func (s Scheduler) AdvanceAt() (float64, bool) {
	return s.advanceAtMs, s.advancePending
}

// Section returns the active section.
func (s Scheduler) Section() (lesson.Section, bool) {
	return s.content.Section(s.index)
}

// ElapsedMs is the active section's elapsed animation time at normal speed.
func (s Scheduler) ElapsedMs() float64 {
	section, ok := s.Section()
	if !ok {
		return 0
	}
	return s.progress * section.DurationMs()
}

func (s Scheduler) Status() Status {
	switch {
	case s.completed:
		return StatusCompleted
	case s.playing:
		return StatusPlaying
	case s.started:
		return StatusPaused
	default:
		return StatusNotStarted
	}
}

// BlockProgress returns each active block's share of section progress. Block
// i ramps from 0 to 1 while progress moves from i/N to (i+1)/N.
func (s Scheduler) BlockProgress() []float64 {
	section, ok := s.Section()
	if !ok || len(section.Blocks) == 0 {
		return nil
	}
	out := make([]float64, len(section.Blocks))
	for i := range out {
		out[i] = reveal.Ramp(s.progress, len(out), i)
	}
	return out
}

// PercentComplete is round((index+1)/count*100), or 0 for an empty lesson.
func (s Scheduler) PercentComplete() int {
	return percentComplete(s.index, s.SectionCount())
}

func percentComplete(index, count int) int {
	if count <= 0 {
		return 0
	}
	return int(math.Round(float64(index+1) / float64(count) * 100))
}

// Start begins playback at section 0. It is a no-op once started.
func (s Scheduler) Start(nowMs float64) Scheduler {
	if s.started || s.completed {
		return s
	}
	s.started = true
	s.playing = true
	s.resetSection(0, nowMs)
	return s
}

// Pause stops the clock and keeps the section's progress.
func (s Scheduler) Pause(nowMs float64) Scheduler {
	if !s.playing {
		return s
	}
	nowMs = s.clampNow(nowMs)
	if !s.finished {
		s.progress = math.Max(s.progress, s.progressAt(nowMs))
	}
	s.playing = false
	s.advancePending = false
	return s
}

// Resume continues from the paused progress. Resuming a not-started lesson
// starts it; resuming a completed lesson replays it from the first section.
func (s Scheduler) Resume(nowMs float64) Scheduler {
	switch {
	case s.playing:
		return s
	case !s.started && !s.completed:
		return s.Start(nowMs)
	case s.completed:
		if s.content.Empty() {
			return s
		}
		s.started = true
		s.completed = false
		s.resetSection(0, nowMs)
		s.playing = true
		return s
	}
	nowMs = s.clampNow(nowMs)
	s.playing = true
	s.anchorProgress = s.progress
	s.baselineMs = nowMs
	if s.finished {
		if !s.cfg.AutoAdvance && s.index < s.SectionCount()-1 {
			return s.advance(nowMs)
		}
		return s.finishSection(nowMs)
	}
	return s
}

// Toggle pauses a playing lesson and resumes any other.
func (s Scheduler) Toggle(nowMs float64) Scheduler {
	if s.playing {
		return s.Pause(nowMs)
	}
	return s.Resume(nowMs)
}

// Seek moves to index, resets its elapsed time and pauses. Seeking to the
// active section only restarts it.
func (s Scheduler) Seek(nowMs float64, index int) (Scheduler, error) {
	if index < 0 || index >= s.SectionCount() {
		return s, fmt.Errorf("seek to %d of %d: %w", index, s.SectionCount(), ErrSectionOutOfRange)
	}
	s.started = true
	s.playing = false
	s.completed = false
	s.resetSection(index, s.clampNow(nowMs))
	return s, nil
}

// Next seeks to the following section.
func (s Scheduler) Next(nowMs float64) (Scheduler, error) {
	return s.Seek(nowMs, s.index+1)
}

// Prev seeks to the preceding section.
func (s Scheduler) Prev(nowMs float64) (Scheduler, error) {
	return s.Seek(nowMs, s.index-1)
}

// SetSpeed changes the multiplier for time after nowMs.
func (s Scheduler) SetSpeed(nowMs, speed float64) (Scheduler, error) {
	if math.IsNaN(speed) || speed <= 0 || speed > MaxSpeed {
		return s, fmt.Errorf("speed %v: %w", speed, ErrInvalidSpeed)
	}
	if s.playing && !s.finished {
		nowMs = s.clampNow(nowMs)
		s.progress = math.Max(s.progress, s.progressAt(nowMs))
		s.anchorProgress = s.progress
		s.baselineMs = nowMs
	}
	s.cfg.Speed = speed
	return s, nil
}

// Tick advances the clock to nowMs. Times earlier than the last observed
// time are treated as that time, so progress never decreases.
func (s Scheduler) Tick(nowMs float64) Scheduler {
	if !s.playing {
		return s
	}
	nowMs = s.clampNow(nowMs)
	if s.advancePending {
		if nowMs >= s.advanceAtMs {
			return s.advance(nowMs)
		}
		return s
	}
	if s.finished {
		return s
	}
	s.progress = math.Max(s.progress, s.progressAt(nowMs))
	if s.progress >= 1 {
		return s.finishSection(nowMs)
	}
	return s
}

func (s Scheduler) finishSection(nowMs float64) Scheduler {
	s.progress = 1
	s.anchorProgress = 1
	s.finished = true
	switch {
	case s.index >= s.SectionCount()-1:
		s.playing = false
		s.completed = true
	case s.cfg.AutoAdvance:
		s.advancePending = true
		s.advanceAtMs = nowMs + s.cfg.HoldMs
		if nowMs >= s.advanceAtMs {
			return s.advance(nowMs)
		}
	default:
		s.playing = false
	}
	return s
}

// advance moves to the next section without pausing.
func (s Scheduler) advance(nowMs float64) Scheduler {
	s.resetSection(s.index+1, nowMs)
	return s
}

func (s *Scheduler) resetSection(index int, nowMs float64) {
	s.index = index
	s.progress = 0
	s.anchorProgress = 0
	s.finished = false
	s.advancePending = false
	s.advanceAtMs = 0
	s.baselineMs = nowMs
	if nowMs > s.lastNowMs {
		s.lastNowMs = nowMs
	}
}

func (s *Scheduler) clampNow(nowMs float64) float64 {
	if math.IsNaN(nowMs) || nowMs < s.lastNowMs {
		return s.lastNowMs
	}
	s.lastNowMs = nowMs
	return nowMs
}

func (s Scheduler) progressAt(nowMs float64) float64 {
	section, ok := s.Section()
	if !ok {
		return 1
	}
	duration := section.DurationMs()
	if duration <= 0 {
		return 1
	}
	elapsed := nowMs - s.baselineMs
	if elapsed < 0 {
		elapsed = 0
	}
	return reveal.Clamp(s.anchorProgress + elapsed*s.cfg.Speed/duration)
}
