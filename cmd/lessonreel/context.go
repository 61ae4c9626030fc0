package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"lessonreel/internal/config"
	"lessonreel/internal/library"
	"lessonreel/internal/logging"
	"lessonreel/internal/playback"
	"lessonreel/internal/reveal"
	"lessonreel/internal/surface/canvas"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger builds a logger writing to w, which is the command's stderr.
func (c *commandContext) logger(w io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, w)
}

func (c *commandContext) withStore(fn func(*library.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := library.Open(cfg)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func playbackConfig(cfg *config.Config) playback.Config {
	return playback.Config{
		AutoAdvance: cfg.Playback.AutoAdvance,
		HoldMs:      float64(cfg.Playback.AdvanceHoldMs),
		Speed:       cfg.Playback.Speed,
	}
}

func revealOptions(cfg *config.Config) reveal.Options {
	return reveal.Options{
		SlideOffsetPx:    cfg.Render.SlideOffsetPx,
		LabelThreshold:   cfg.Render.LabelThreshold,
		DiagramThreshold: cfg.Render.DiagramThreshold,
	}
}

func canvasOptions(cfg *config.Config) canvas.Options {
	return canvas.Options{
		Width:    cfg.Render.Width,
		Height:   cfg.Render.Height,
		FontPath: cfg.Render.FontPath,
		FontSize: cfg.Render.FontSize,
	}
}

func tickInterval(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Playback.TickIntervalMs) * time.Millisecond
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
