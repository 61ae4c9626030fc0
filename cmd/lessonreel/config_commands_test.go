package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.cfg.Paths.DataDir)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShowPrintsEffectiveValues(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"[playback]", "tick_interval_ms = 5", "auto_advance = true", "[render]", "fps = 5"} {
		requireContains(t, out, want)
	}
	if _, _, err := runCLI(t, []string{"config", "show", "extra"}, env.configPath); err == nil {
		t.Fatal("expected show to reject arguments")
	}
}

func TestInvalidConfigFailsCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.WriteFile(env.configPath, []byte("[playback]\nspeed = 99\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	lessonPath := filepath.Join(env.baseDir, "quick.json")
	if err := os.WriteFile(lessonPath, []byte(quickLessonJSON), 0o644); err != nil {
		t.Fatalf("write lesson: %v", err)
	}
	if _, _, err := runCLI(t, []string{"inspect", lessonPath}, env.configPath); err == nil {
		t.Fatal("expected invalid config to fail")
	}
}
