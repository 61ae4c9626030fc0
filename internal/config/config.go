package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains data directory configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	FramesDir string `toml:"frames_dir"`
}

// Playback contains scheduler settings.
type Playback struct {
	AutoAdvance bool `toml:"auto_advance"`
	// AdvanceHoldMs is the pause between a finished section and the next one.
	AdvanceHoldMs  int     `toml:"advance_hold_ms"`
	Speed          float64 `toml:"speed"`
	TickIntervalMs int     `toml:"tick_interval_ms"`
}

// Render contains surface settings shared by the terminal and canvas.
type Render struct {
	SlideOffsetPx    float64 `toml:"slide_offset_px"`
	LabelThreshold   float64 `toml:"label_threshold"`
	DiagramThreshold float64 `toml:"diagram_threshold"`
	// Columns overrides the detected terminal width. Zero means detect.
	Columns  int     `toml:"columns"`
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	FontPath string  `toml:"font_path"`
	FontSize float64 `toml:"font_size"`
	FPS      int     `toml:"fps"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// File receives a JSON copy of every log line when set.
	File string `toml:"file"`
}

// Config encapsulates all configuration values for lessonreel.
//
// Configuration sections by subsystem:
//   - Paths: library database and exported frame locations
//   - Playback: auto-advance, hold, speed, and tick rate
//   - Render: reveal constants and surface geometry
//   - Logging: log format, level, and optional JSON file
type Config struct {
	Paths    Paths    `toml:"paths"`
	Playback Playback `toml:"playback"`
	Render   Render   `toml:"render"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, fmt.Errorf("parse config: %s", strict.String())
			}
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath picks the file Load reads. An explicit path (flag or
// LESSONREEL_CONFIG) is returned even when missing so defaults apply; otherwise
// the first existing candidate wins and the user config path is the fallback.
func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv("LESSONREEL_CONFIG"))
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		exists, err := fileExists(expanded)
		if err != nil {
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, exists, nil
	}

	candidates := make([]string, 0, 2)
	for _, raw := range []string{defaultConfigPath, projectConfigName} {
		expanded, err := expandPath(raw)
		if err != nil {
			return "", false, err
		}
		candidates = append(candidates, expanded)
	}
	for _, candidate := range candidates {
		if ok, _ := fileExists(candidate); ok {
			return candidate, true, nil
		}
	}
	return candidates[0], false, nil
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return !info.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// EnsureDirectories creates the data directory.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.DataDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.DataDir, err)
	}
	return nil
}

// LibraryPath is the SQLite database holding imported lessons.
func (c *Config) LibraryPath() string {
	return filepath.Join(c.Paths.DataDir, "library.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultDataDir() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "lessonreel")
	}
	return "~/.local/share/lessonreel"
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
