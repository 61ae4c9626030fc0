package config

import (
	"errors"
	"fmt"
	"math"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePlayback(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validatePlayback() error {
	if c.Playback.AdvanceHoldMs < 0 {
		return errors.New("playback.advance_hold_ms must be >= 0")
	}
	if math.IsNaN(c.Playback.Speed) || c.Playback.Speed <= 0 || c.Playback.Speed > maxSpeed {
		return fmt.Errorf("playback.speed must be in (0, %g]", maxSpeed)
	}
	if c.Playback.TickIntervalMs < 1 {
		return errors.New("playback.tick_interval_ms must be positive")
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.LabelThreshold < 0 || c.Render.LabelThreshold > 1 {
		return errors.New("render.label_threshold must be between 0 and 1")
	}
	if c.Render.DiagramThreshold < 0 || c.Render.DiagramThreshold > 1 {
		return errors.New("render.diagram_threshold must be between 0 and 1")
	}
	if c.Render.Columns < 0 {
		return errors.New("render.columns must be >= 0")
	}
	if c.Render.Width < 64 || c.Render.Width > maxCanvasSide {
		return fmt.Errorf("render.width must be between 64 and %d", maxCanvasSide)
	}
	if c.Render.Height < 64 || c.Render.Height > maxCanvasSide {
		return fmt.Errorf("render.height must be between 64 and %d", maxCanvasSide)
	}
	if c.Render.FontSize < 4 {
		return errors.New("render.font_size must be at least 4")
	}
	if c.Render.FPS < 1 || c.Render.FPS > 120 {
		return errors.New("render.fps must be between 1 and 120")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}
