package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"lessonreel/internal/config"
	"lessonreel/internal/library"
	"lessonreel/internal/surface/canvas"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkAccess(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCreatableDirectory passes when path is an accessible directory, or
// does not exist yet and its nearest existing parent is accessible.
func CheckCreatableDirectory(name, path string) Result {
	if _, err := os.Stat(path); err == nil || !os.IsNotExist(err) {
		return CheckDirectoryAccess(name, path)
	}
	parent := parentDir(path)
	for {
		if _, err := os.Stat(parent); err == nil {
			break
		}
		next := parentDir(parent)
		if next == parent {
			break
		}
		parent = next
	}
	result := CheckDirectoryAccess(name, parent)
	if !result.Passed {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s)", path, parent)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckCanvas loads the configured canvas font at the configured size.
func CheckCanvas(cfg *config.Config) Result {
	const name = "Canvas font"
	label := cfg.Render.FontPath
	if label == "" {
		label = "built-in Go font"
	}
	_, err := canvas.New(canvas.Options{
		Width:    cfg.Render.Width,
		Height:   cfg.Render.Height,
		FontPath: cfg.Render.FontPath,
		FontSize: cfg.Render.FontSize,
	})
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", label, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s at %gpt, %dx%d", label, cfg.Render.FontSize, cfg.Render.Width, cfg.Render.Height)}
}

// CheckLibrary opens the library database and counts its tasks.
func CheckLibrary(ctx context.Context, path string) Result {
	const name = "Library"
	store, err := library.OpenPath(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer store.Close()
	stats, err := store.Stats(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	total := 0
	for _, count := range stats {
		total += count
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d tasks)", path, total)}
}

func parentDir(path string) string {
	return filepath.Dir(filepath.Clean(path))
}
