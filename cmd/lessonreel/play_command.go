package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lessonreel/internal/lesson"
	"lessonreel/internal/logging"
	"lessonreel/internal/playback"
	"lessonreel/internal/reveal"
	"lessonreel/internal/surface/terminal"
)

type playOptions struct {
	speed   float64
	manual  bool
	start   int
	columns int
	plain   bool
}

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var opts playOptions

	cmd := &cobra.Command{
		Use:   "play <lesson>",
		Short: "Play a lesson in the terminal",
		Long: `Play a lesson file or library task in the terminal.

Keys while playing: space pause/resume, n next section, p previous section,
+/- change speed, r restart, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			content, err := loadLesson(cmd.Context(), ctx, args[0])
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			pcfg := playbackConfig(cfg)
			if opts.speed > 0 {
				pcfg.Speed = opts.speed
			}
			if opts.manual {
				pcfg.AutoAdvance = false
			}
			if opts.columns <= 0 {
				opts.columns = cfg.Render.Columns
			}

			session := &playSession{
				content: content,
				config:  pcfg,
				opts:    opts,
				logger:  logger,
				out:     cmd.OutOrStdout(),
				in:      cmd.InOrStdin(),
			}
			session.reveal = revealOptions(cfg)
			session.tick = tickInterval(cfg)
			return session.run(cmd.Context())
		},
	}

	cmd.Flags().Float64Var(&opts.speed, "speed", 0, "Playback speed multiplier (default from config)")
	cmd.Flags().BoolVar(&opts.manual, "manual", false, "Wait for a key press between sections")
	cmd.Flags().IntVar(&opts.start, "start", 1, "Section number to start from")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "Paint width in columns (default: detect)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print each section once it is fully revealed instead of animating")
	return cmd
}

type playSession struct {
	content *lesson.Content
	config  playback.Config
	reveal  reveal.Options
	tick    time.Duration
	opts    playOptions
	logger  *slog.Logger
	out     io.Writer
	in      io.Reader
}

func (s *playSession) run(ctx context.Context) error {
	keys, restore, err := s.attachKeyboard()
	if err != nil {
		return err
	}
	defer restore()

	out := s.out
	if keys != nil {
		out = crlfWriter{w: s.out}
	}
	surfaceOpts := terminal.Auto(s.out)
	if s.opts.plain {
		surfaceOpts = terminal.Options{}
	}
	surfaceOpts.Columns = s.opts.columns
	surf := terminal.New(out, surfaceOpts)

	if keys == nil && !s.config.AutoAdvance {
		logging.Warn(s.logger, "manual advance needs an interactive terminal; sections will advance automatically",
			"play_manual_unavailable", "run play from a terminal to use --manual")
		s.config.AutoAdvance = true
	}

	// Log lines would tear through the repainted frame.
	logger := s.logger
	if surfaceOpts.Interactive {
		logger = logging.WithMinLevel(logger, slog.LevelError)
	}
	logger = logger.With(logging.String(logging.FieldLesson, s.content.Title))

	playerOpts := playback.Options{
		Config:       s.config,
		Reveal:       s.reveal,
		Clock:        playback.SystemClock{},
		TickInterval: s.tick,
		Logger:       logger,
	}
	render := func(frame playback.Frame) {
		if err := surf.Render(frame); err != nil {
			logger.Error("render frame failed", logging.Error(err))
		}
	}
	if surfaceOpts.Interactive {
		playerOpts.OnFrame = render
	} else {
		// Print each section once, fully revealed. A zero hold can advance
		// within the tick that finishes a section, so a section left before
		// it was printed is rebuilt at full progress.
		last, printed := -1, -1
		playerOpts.OnFrame = func(frame playback.Frame) {
			if frame.Empty {
				return
			}
			if last >= 0 && frame.SectionIndex != last && printed != last {
				if done, err := playback.FrameAt(s.content, last, 1, s.reveal); err == nil {
					done.Status, done.Playing, done.Speed = frame.Status, frame.Playing, frame.Speed
					render(done)
				}
				printed = last
			}
			last = frame.SectionIndex
			if frame.Progress >= 1 && printed != frame.SectionIndex {
				printed = frame.SectionIndex
				render(frame)
			}
		}
	}
	player := playback.NewPlayer(s.content, playerOpts)
	defer player.Close()
	events := player.Subscribe(64)

	if s.opts.start > 1 {
		if err := player.Seek(s.opts.start - 1); err != nil {
			return fmt.Errorf("start at section %d: %w", s.opts.start, err)
		}
	}
	if err := player.Play(); err != nil {
		return err
	}
	logger.Info("playback started",
		logging.Section(player.State().Index(), player.State().SectionCount()),
		logging.Float64("speed", s.config.Speed),
	)
	if player.State().Completed() {
		return surf.Render(player.Frame())
	}

	resize := notifyResize(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-resize:
			surf.SetColumns(terminal.DetectColumns(s.out))
			if err := surf.Render(player.Frame()); err != nil {
				return err
			}
		case b, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			quit, err := applyKey(player, actionForKey(b))
			if err != nil && !errors.Is(err, playback.ErrSectionOutOfRange) {
				return err
			}
			if quit {
				logger.Info("playback stopped", logging.Int("percent", player.State().PercentComplete()))
				return nil
			}
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if player.State().Completed() && keys == nil {
				logger.Info("playback finished", logging.Int("sections", ev.SectionCount))
				return nil
			}
		}
	}
}

// attachKeyboard puts stdin into raw mode when it is a terminal and streams
// key presses. keys is nil when no keyboard is available.
func (s *playSession) attachKeyboard() (<-chan byte, func(), error) {
	noop := func() {}
	if s.opts.plain {
		return nil, noop, nil
	}
	file, ok := s.in.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) || !terminal.IsTerminal(s.out) {
		return nil, noop, nil
	}
	state, err := term.MakeRaw(int(file.Fd()))
	if err != nil {
		return nil, noop, fmt.Errorf("enable raw terminal: %w", err)
	}
	keys := make(chan byte, 16)
	go func() {
		defer close(keys)
		buf := make([]byte, 1)
		for {
			n, err := file.Read(buf)
			if err != nil {
				return
			}
			if n == 1 {
				keys <- buf[0]
			}
		}
	}()
	restore := func() {
		_ = term.Restore(int(file.Fd()), state)
		fmt.Fprintln(s.out)
	}
	return keys, restore, nil
}
