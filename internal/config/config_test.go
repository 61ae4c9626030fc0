package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"lessonreel/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("LESSONREEL_LOG_LEVEL", "")
	t.Setenv("LESSONREEL_CONFIG", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "lessonreel", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "lessonreel")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.FramesDir != filepath.Join(wantData, "frames") {
		t.Fatalf("unexpected frames dir: %q", cfg.Paths.FramesDir)
	}
	if cfg.LibraryPath() != filepath.Join(wantData, "library.db") {
		t.Fatalf("unexpected library path: %q", cfg.LibraryPath())
	}
	if !cfg.Playback.AutoAdvance || cfg.Playback.AdvanceHoldMs != 1500 || cfg.Playback.Speed != 1 {
		t.Fatalf("unexpected playback defaults: %+v", cfg.Playback)
	}
	if cfg.Render.SlideOffsetPx != -50 || cfg.Render.LabelThreshold != 0.2 || cfg.Render.DiagramThreshold != 0.3 {
		t.Fatalf("unexpected render defaults: %+v", cfg.Render)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.DataDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected data dir to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("LESSONREEL_LOG_LEVEL", "")
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "lessonreel.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Playback struct {
			AutoAdvance   bool    `toml:"auto_advance"`
			AdvanceHoldMs int     `toml:"advance_hold_ms"`
			Speed         float64 `toml:"speed"`
		} `toml:"playback"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Playback.AutoAdvance = false
	custom.Playback.AdvanceHoldMs = 1000
	custom.Playback.Speed = 1.5
	custom.Logging.Format = " JSON "
	custom.Logging.Level = "DEBUG"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Paths.DataDir != filepath.Join(tempDir, "data") {
		t.Fatalf("unexpected data dir %q", cfg.Paths.DataDir)
	}
	if cfg.Playback.AutoAdvance || cfg.Playback.AdvanceHoldMs != 1000 || cfg.Playback.Speed != 1.5 {
		t.Fatalf("unexpected playback %+v", cfg.Playback)
	}
	if cfg.Playback.TickIntervalMs != config.Default().Playback.TickIntervalMs {
		t.Fatalf("expected default tick interval to survive, got %d", cfg.Playback.TickIntervalMs)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
}

func TestProjectConfigIsFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LESSONREEL_CONFIG", "")
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile("lessonreel.toml", []byte("[playback]\nspeed = 2.0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || filepath.Base(resolved) != "lessonreel.toml" || cfg.Playback.Speed != 2 {
		t.Fatalf("expected project config, got %q exists=%v speed=%v", resolved, exists, cfg.Playback.Speed)
	}
}

func TestConfigEnvPathBeatsProjectConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LESSONREEL_LOG_LEVEL", "")
	t.Chdir(t.TempDir())
	if err := os.WriteFile("lessonreel.toml", []byte("[playback]\nspeed = 2.0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	envPath := filepath.Join(t.TempDir(), "env.toml")
	if err := os.WriteFile(envPath, []byte("[playback]\nspeed = 3.0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("LESSONREEL_CONFIG", envPath)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != envPath || cfg.Playback.Speed != 3 {
		t.Fatalf("expected env config, got %q exists=%v speed=%v", resolved, exists, cfg.Playback.Speed)
	}
}

func TestEnvOverridesLogLevel(t *testing.T) {
	t.Setenv("LESSONREEL_LOG_LEVEL", "Warn")
	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env log level, got %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("LESSONREEL_LOG_LEVEL", "")
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"negative hold", "[playback]\nadvance_hold_ms = -1\n", "advance_hold_ms"},
		{"speed too high", "[playback]\nspeed = 40.0\n", "playback.speed"},
		{"negative speed", "[playback]\nspeed = -1.0\n", "playback.speed"},
		{"label threshold", "[render]\nlabel_threshold = 1.5\n", "label_threshold"},
		{"tiny canvas", "[render]\nwidth = 10\n", "render.width"},
		{"bad level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"unknown key", "[playback]\nautoplay = true\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lessonreel.toml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateSampleLoads(t *testing.T) {
	t.Setenv("LESSONREEL_LOG_LEVEL", "")
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	defaults := config.Default()
	if cfg.Playback != defaults.Playback {
		t.Fatalf("sample playback %+v differs from defaults %+v", cfg.Playback, defaults.Playback)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/lessons")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "lessons") {
		t.Fatalf("unexpected expansion %q", got)
	}
}
