package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"lessonreel/internal/config"
	"lessonreel/internal/lesson"
	"lessonreel/internal/library"
)

// loadLesson resolves arg as a lesson file, or as a library task ID or
// unique ID prefix when no such file exists.
func loadLesson(ctx context.Context, cmdCtx *commandContext, arg string) (*lesson.Content, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, errors.New("lesson file or library id is required")
	}

	path, err := config.ExpandPath(arg)
	if err != nil {
		return nil, err
	}
	if info, statErr := os.Stat(path); statErr == nil {
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", path)
		}
		return lesson.Load(path)
	}

	var content *lesson.Content
	err = cmdCtx.withStore(func(store *library.Store) error {
		task, err := store.Resolve(ctx, arg)
		if err != nil {
			if errors.Is(err, library.ErrNotFound) {
				return fmt.Errorf("no lesson file or library task named %q", arg)
			}
			return err
		}
		content, err = task.Lesson()
		return err
	})
	return content, err
}
