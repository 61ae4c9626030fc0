package playback

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"lessonreel/internal/lesson"
	"lessonreel/internal/logging"
	"lessonreel/internal/reveal"
)

// ErrClosed is returned by Player operations after Close.
var ErrClosed = errors.New("player closed")

// DefaultTickInterval is roughly one frame at 30 fps.
const DefaultTickInterval = 33 * time.Millisecond

// Options configures a Player.
type Options struct {
	Config Config
	Reveal reveal.Options
	Clock  Clock
	// TickInterval is the tick loop period. Zero or negative disables the
	// loop; the host then calls Tick itself.
	TickInterval time.Duration
	Logger       *slog.Logger
	// OnFrame is called with every frame the Player produces. It runs while
	// the Player's lock is held and must not call back into the Player.
	OnFrame func(Frame)
}

// DefaultOptions returns the scheduler defaults with a wall clock and the
// default tick interval.
func DefaultOptions() Options {
	return Options{
		Config:       DefaultConfig(),
		Reveal:       reveal.DefaultOptions(),
		Clock:        SystemClock{},
		TickInterval: DefaultTickInterval,
	}
}

// Player owns one Scheduler and drives it from a clock.
type Player struct {
	opts   Options
	logger *slog.Logger
	epoch  time.Time

	mu          sync.Mutex
	state       Scheduler
	subscribers []chan Event
	cancel      context.CancelFunc
	closed      bool
	wg          sync.WaitGroup
}

// NewPlayer returns a not-started player for content.
func NewPlayer(content *lesson.Content, opts Options) *Player {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	p := &Player{
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "playback"),
		epoch:  opts.Clock.Now(),
		state:  NewScheduler(content, opts.Config),
	}
	if content != nil {
		p.logger = p.logger.With(logging.String(logging.FieldLesson, content.Title))
	}
	return p
}

// State returns a copy of the current scheduler state.
func (p *Player) State() Scheduler {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Frame builds the frame for the current state.
func (p *Player) Frame() Frame {
	p.mu.Lock()
	defer p.mu.Unlock()
	return BuildFrame(p.state, p.opts.Reveal)
}

// Play starts or resumes playback and runs the tick loop.
func (p *Player) Play() error {
	return p.apply("play", func(s Scheduler, now float64) (Scheduler, error) {
		return s.Resume(now), nil
	})
}

// Pause stops playback, keeping section progress.
func (p *Player) Pause() error {
	return p.apply("pause", func(s Scheduler, now float64) (Scheduler, error) {
		return s.Pause(now), nil
	})
}

// Toggle pauses when playing and plays otherwise.
func (p *Player) Toggle() error {
	return p.apply("toggle", func(s Scheduler, now float64) (Scheduler, error) {
		return s.Toggle(now), nil
	})
}

// Seek jumps to a section and pauses there.
func (p *Player) Seek(index int) error {
	return p.apply("seek", func(s Scheduler, now float64) (Scheduler, error) {
		return s.Seek(now, index)
	})
}

// Next seeks to the following section.
func (p *Player) Next() error {
	return p.apply("next", func(s Scheduler, now float64) (Scheduler, error) {
		return s.Next(now)
	})
}

// Prev seeks to the preceding section.
func (p *Player) Prev() error {
	return p.apply("prev", func(s Scheduler, now float64) (Scheduler, error) {
		return s.Prev(now)
	})
}

// SetSpeed changes the playback speed multiplier.
func (p *Player) SetSpeed(speed float64) error {
	return p.apply("speed", func(s Scheduler, now float64) (Scheduler, error) {
		return s.SetSpeed(now, speed)
	})
}

// Tick advances playback to the clock's current time.
func (p *Player) Tick() error {
	return p.apply("tick", func(s Scheduler, now float64) (Scheduler, error) {
		return s.Tick(now), nil
	})
}

// Subscribe returns a channel of transport events. Sends never block; events
// are dropped for a subscriber whose buffer is full. The channel is closed by
// Close.
func (p *Player) Subscribe(buffer int) <-chan Event {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		close(ch)
		return ch
	}
	p.subscribers = append(p.subscribers, ch)
	return ch
}

// Close stops the tick loop and closes subscriber channels. It waits for the
// loop goroutine to exit; no state changes happen after it returns.
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.stopLoopLocked()
	for _, ch := range p.subscribers {
		close(ch)
	}
	p.subscribers = nil
	p.mu.Unlock()
	p.wg.Wait()
	return nil
}

// Wait blocks until the lesson completes, the player is closed, or ctx ends.
func (p *Player) Wait(ctx context.Context) error {
	events := p.Subscribe(8)
	if p.State().Completed() {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return ErrClosed
			}
			if ev.Type == EventCompleted {
				return nil
			}
		}
	}
}

func (p *Player) nowMs() float64 {
	return float64(p.opts.Clock.Now().Sub(p.epoch)) / float64(time.Millisecond)
}

func (p *Player) apply(op string, fn func(Scheduler, float64) (Scheduler, error)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return p.applyLocked(op, fn)
}

func (p *Player) applyLocked(op string, fn func(Scheduler, float64) (Scheduler, error)) error {
	prev := p.state
	next, err := fn(prev, p.nowMs())
	if err != nil {
		p.logger.Debug("playback operation rejected",
			logging.String(logging.FieldOperation, op),
			logging.Error(err),
		)
		return err
	}
	p.state = next

	events := diffEvents(prev, next, p.opts.Clock.Now())
	for _, ev := range events {
		p.logger.Debug("playback event",
			logging.String(logging.FieldEventType, string(ev.Type)),
			logging.Int(logging.FieldSectionIndex, ev.SectionIndex),
			logging.Int(logging.FieldSectionCount, ev.SectionCount),
			logging.String("status", ev.Status.String()),
		)
		p.publishLocked(ev)
	}

	if next.Playing() {
		p.startLoopLocked()
	} else {
		p.stopLoopLocked()
	}
	if p.opts.OnFrame != nil {
		p.opts.OnFrame(BuildFrame(next, p.opts.Reveal))
	}
	return nil
}

func (p *Player) publishLocked(ev Event) {
	for _, ch := range p.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (p *Player) startLoopLocked() {
	if p.cancel != nil || p.closed || p.opts.TickInterval <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.wg.Add(1)
	go p.loop(ctx, p.opts.TickInterval)
}

func (p *Player) stopLoopLocked() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	p.cancel = nil
}

func (p *Player) loop(ctx context.Context, interval time.Duration) {
	defer p.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.mu.Lock()
			// A loop cancelled while waiting for the lock must not touch state.
			if ctx.Err() == nil && !p.closed {
				_ = p.applyLocked("tick", func(s Scheduler, now float64) (Scheduler, error) {
					return s.Tick(now), nil
				})
			}
			p.mu.Unlock()
		}
	}
}
