package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeRender(); err != nil {
		return err
	}
	c.normalizePlayback()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir()
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.FramesDir) == "" {
		c.Paths.FramesDir = filepath.Join(c.Paths.DataDir, defaultFramesDirName)
	}
	if c.Paths.FramesDir, err = expandPath(c.Paths.FramesDir); err != nil {
		return fmt.Errorf("paths.frames_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePlayback() {
	if c.Playback.Speed == 0 {
		c.Playback.Speed = defaultSpeed
	}
	if c.Playback.TickIntervalMs == 0 {
		c.Playback.TickIntervalMs = defaultTickIntervalMs
	}
}

func (c *Config) normalizeRender() error {
	c.Render.FontPath = strings.TrimSpace(c.Render.FontPath)
	if c.Render.FontPath != "" {
		expanded, err := expandPath(c.Render.FontPath)
		if err != nil {
			return fmt.Errorf("render.font_path: %w", err)
		}
		c.Render.FontPath = expanded
	}
	if c.Render.FontSize == 0 {
		c.Render.FontSize = defaultFontSize
	}
	if c.Render.FPS == 0 {
		c.Render.FPS = defaultFPS
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if value, ok := os.LookupEnv("LESSONREEL_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.File != "" {
		if expanded, err := expandPath(strings.TrimSpace(c.Logging.File)); err == nil {
			c.Logging.File = expanded
		}
	}
}
