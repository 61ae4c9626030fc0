package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/schollz/progressbar/v3"

	"lessonreel/internal/lesson"
	"lessonreel/internal/logging"
	"lessonreel/internal/playback"
	"lessonreel/internal/reveal"
	"lessonreel/internal/surface"
	"lessonreel/internal/surface/canvas"
	"lessonreel/internal/textutil"
)

// ErrLocked is returned when another export holds the output directory.
var ErrLocked = errors.New("output directory is locked by another export")

const (
	lockFileName = ".lessonreel-export.lock"
	// DefaultMaxFrames bounds an export at ten minutes of 30 fps video.
	DefaultMaxFrames = 18000
)

// FrameSurface paints a frame and encodes it.
type FrameSurface interface {
	surface.Surface
	EncodePNG(w io.Writer) error
}

// Options configures Run.
type Options struct {
	OutDir    string
	FPS       int
	MaxFrames int
	Playback  playback.Config
	Reveal    reveal.Options
	// Surface paints frames. Nil builds a canvas from Canvas.
	Surface FrameSurface
	Canvas  canvas.Options
	// Progress receives a progress bar when set.
	Progress io.Writer
	Logger   *slog.Logger
}

// Summary describes a finished export.
type Summary struct {
	Dir       string
	Frames    int
	Bytes     int64
	Simulated time.Duration
	// Truncated is set when MaxFrames stopped the export before completion.
	Truncated bool
}

func (s Summary) String() string {
	out := fmt.Sprintf("%s frames (%s, %s of playback) in %s",
		humanize.Comma(int64(s.Frames)),
		humanize.Bytes(uint64(max(s.Bytes, 0))),
		s.Simulated.Round(time.Millisecond),
		s.Dir,
	)
	if s.Truncated {
		out += " (truncated)"
	}
	return out
}

// DirName turns a lesson title into a directory name.
func DirName(title string) string {
	return textutil.SanitizeToken(title)
}

// FrameName is the file name of frame index.
func FrameName(index int) string {
	return fmt.Sprintf("frame_%05d.png", index)
}

// EstimateFrames is the number of frames a full export of content produces
// when every section auto-advances.
func EstimateFrames(content *lesson.Content, cfg playback.Config, fps int) int {
	if content.Empty() || fps <= 0 {
		return 1
	}
	speed := cfg.Speed
	if speed <= 0 {
		speed = 1
	}
	var ms float64
	for _, section := range content.Sections {
		ms += section.DurationMs() / speed
	}
	ms += float64(content.SectionCount()-1) * max(cfg.HoldMs, 0)
	return int(math.Ceil(ms/1000*float64(fps))) + 1
}

// Run renders content frame by frame into opts.OutDir.
func Run(ctx context.Context, content *lesson.Content, opts Options) (Summary, error) {
	if opts.FPS <= 0 {
		return Summary{}, fmt.Errorf("fps %d must be positive", opts.FPS)
	}
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = DefaultMaxFrames
	}
	logger := logging.NewComponentLogger(opts.Logger, "export")
	if content != nil {
		logger = logger.With(logging.String(logging.FieldLesson, content.Title))
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("create output directory: %w", err)
	}
	lock := flock.New(filepath.Join(opts.OutDir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return Summary{}, fmt.Errorf("%s: %w", opts.OutDir, ErrLocked)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release export lock", logging.Error(err))
		}
	}()

	paint := opts.Surface
	if paint == nil {
		c, err := canvas.New(opts.Canvas)
		if err != nil {
			return Summary{}, err
		}
		paint = c
	}

	// Manual-advance sections would stop the export after the first one.
	cfg := opts.Playback
	cfg.AutoAdvance = true

	clock := playback.NewManualClock(time.Unix(0, 0))
	player := playback.NewPlayer(content, playback.Options{
		Config: cfg,
		Reveal: opts.Reveal,
		Clock:  clock,
		Logger: opts.Logger,
	})
	defer player.Close()
	if err := player.Play(); err != nil {
		return Summary{}, err
	}

	estimate := min(EstimateFrames(content, cfg, opts.FPS), opts.MaxFrames)
	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(estimate,
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("exporting frames"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	logger.Info("export started",
		logging.String("dir", opts.OutDir),
		logging.Int("fps", opts.FPS),
		logging.Int("estimated_frames", estimate),
	)

	step := time.Second / time.Duration(opts.FPS)
	sampler := logging.NewProgressSampler(10)
	summary := Summary{Dir: opts.OutDir}
	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		frame := player.Frame()
		if err := paint.Render(frame); err != nil {
			return summary, fmt.Errorf("render frame %d: %w", summary.Frames, err)
		}
		written, err := writeFrame(paint, filepath.Join(opts.OutDir, FrameName(summary.Frames)))
		if err != nil {
			return summary, err
		}
		summary.Frames++
		summary.Bytes += written
		if bar != nil {
			_ = bar.Add(1)
		}
		percent := float64(summary.Frames) / float64(estimate) * 100
		if sampler.ShouldLog(percent, frame.SectionIndex) {
			logger.Debug("export progress",
				logging.Section(frame.SectionIndex, frame.SectionCount),
				logging.Int("frames", summary.Frames),
				logging.Percent("percent", math.Min(percent, 100)),
			)
		}

		if frame.Completed {
			break
		}
		if summary.Frames >= opts.MaxFrames {
			summary.Truncated = true
			break
		}
		clock.Advance(step)
		summary.Simulated += step
		if err := player.Tick(); err != nil {
			return summary, err
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	logger.Info("export finished",
		logging.Int("frames", summary.Frames),
		logging.String("size", humanize.Bytes(uint64(summary.Bytes))),
		logging.Bool("truncated", summary.Truncated),
	)
	return summary, nil
}

func writeFrame(paint FrameSurface, path string) (int64, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create frame: %w", err)
	}
	counter := &countingWriter{w: file}
	if err := paint.EncodePNG(counter); err != nil {
		file.Close()
		return 0, fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("close frame: %w", err)
	}
	return counter.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
