package preflight

import (
	"context"

	"lessonreel/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckCreatableDirectory("Frames directory", cfg.Paths.FramesDir),
		CheckCanvas(cfg),
	}
	if cfg.Logging.File != "" {
		results = append(results, CheckCreatableDirectory("Log directory", parentDir(cfg.Logging.File)))
	}
	results = append(results, CheckLibrary(ctx, cfg.LibraryPath()))
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}
