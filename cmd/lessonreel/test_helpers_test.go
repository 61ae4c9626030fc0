package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lessonreel/internal/config"
	"lessonreel/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

// quickLessonJSON plays to completion in about a tenth of a second.
const quickLessonJSON = `{
  "title": "Quick Tour",
  "sections": [
    {"heading": "First", "duration_seconds": 0.05, "content_blocks": [{"content_type": "paragraph", "content": "alpha beta"}]},
    {"heading": "Second", "duration_seconds": 0.05, "animation_type": "fade_in", "content_blocks": [{"content_type": "list", "content": "- one\n- two"}]}
  ]
}`

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithCanvasSize(160, 120))
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("LESSONREEL_LOG_LEVEL", "")
	t.Setenv("LESSONREEL_CONFIG", "")

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
data_dir = %q
frames_dir = %q

[playback]
advance_hold_ms = 0
tick_interval_ms = 5

[render]
width = %d
height = %d
fps = 5

[logging]
level = "error"
`,
		cfg.Paths.DataDir,
		cfg.Paths.FramesDir,
		cfg.Render.Width,
		cfg.Render.Height,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
