package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"lessonreel/internal/config"
	"lessonreel/internal/lesson"
	"lessonreel/internal/library"
)

type taskView struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Status       string  `json:"status"`
	Progress     float64 `json:"progress"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Sections     int     `json:"sections,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func newTaskView(task *library.Task) taskView {
	view := taskView{
		ID:           task.ID,
		Title:        task.Title,
		Status:       string(task.Status),
		Progress:     task.Progress,
		ErrorMessage: task.ErrorMessage,
		CreatedAt:    task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    task.UpdatedAt.Format(time.RFC3339),
	}
	if content, err := task.Lesson(); err == nil {
		view.Sections = content.SectionCount()
	}
	return view
}

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Manage stored lesson-generation tasks",
	}

	libraryCmd.AddCommand(newLibraryImportCommand(ctx))
	libraryCmd.AddCommand(newLibraryListCommand(ctx))
	libraryCmd.AddCommand(newLibraryShowCommand(ctx))
	libraryCmd.AddCommand(newLibraryStatusCommand(ctx))
	libraryCmd.AddCommand(newLibraryUpdateCommand(ctx))
	libraryCmd.AddCommand(newLibraryRemoveCommand(ctx))
	libraryCmd.AddCommand(newLibrarySearchCommand(ctx))

	return libraryCmd
}

func loadEnvelopeArg(arg string) (lesson.Envelope, error) {
	path, err := config.ExpandPath(strings.TrimSpace(arg))
	if err != nil {
		return lesson.Envelope{}, err
	}
	return lesson.LoadEnvelope(path)
}

func newLibraryImportCommand(ctx *commandContext) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import lesson payloads or task envelopes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if title != "" && len(args) > 1 {
				return fmt.Errorf("--title applies to a single file, got %d", len(args))
			}
			return ctx.withStore(func(store *library.Store) error {
				out := cmd.OutOrStdout()
				for _, arg := range args {
					env, err := loadEnvelopeArg(arg)
					if err != nil {
						return fmt.Errorf("%s: %w", arg, err)
					}
					task, err := store.Import(cmd.Context(), env, title)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Imported %s %q (%s)\n", task.ShortID(), task.Title, task.Status)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title to store instead of the lesson's own")
	return cmd
}

func newLibraryListCommand(ctx *commandContext) *cobra.Command {
	var statusFlags []string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := make([]lesson.Status, 0, len(statusFlags))
			for _, raw := range statusFlags {
				status, ok := lesson.ParseStatus(raw)
				if !ok {
					return fmt.Errorf("unknown status %q", raw)
				}
				statuses = append(statuses, status)
			}
			return ctx.withStore(func(store *library.Store) error {
				tasks, err := store.List(cmd.Context(), statuses...)
				if err != nil {
					return err
				}
				if jsonOutput {
					views := make([]taskView, 0, len(tasks))
					for _, task := range tasks {
						views = append(views, newTaskView(task))
					}
					return writeJSON(cmd, views)
				}

				out := cmd.OutOrStdout()
				if len(tasks) == 0 {
					fmt.Fprintln(out, "Library is empty")
					return nil
				}
				rows := make([][]string, 0, len(tasks))
				for _, task := range tasks {
					rows = append(rows, []string{
						task.ShortID(),
						task.Title,
						string(task.Status),
						fmt.Sprintf("%.0f%%", task.Progress),
						humanize.Time(task.UpdatedAt),
					})
				}
				fmt.Fprintln(out, renderTable([]column{
					{header: "ID"},
					{header: "Title", wide: true},
					{header: "Status"},
					{header: "Progress", right: true},
					{header: "Updated"},
				}, rows, shouldColorize(out)))

				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				parts := make([]string, 0, len(stats))
				for _, status := range []lesson.Status{lesson.StatusCompleted, lesson.StatusProcessing, lesson.StatusPending, lesson.StatusFailed} {
					if count := stats[status]; count > 0 {
						parts = append(parts, fmt.Sprintf("%d %s", count, strings.ToLower(string(status))))
					}
				}
				fmt.Fprintln(out, strings.Join(parts, ", "))
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&statusFlags, "status", nil, "Only list tasks with these statuses")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newLibraryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one stored task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				task, err := store.Resolve(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				view := newTaskView(task)
				if jsonOutput {
					return writeJSON(cmd, view)
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader(task.Title, colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintf(out, "ID:       %s\n", task.ID)
				fmt.Fprintln(out, renderStatusLine("Status", taskStatusKind(task.Status), fmt.Sprintf("%s %.0f%%", task.Status, task.Progress), colorize))
				if task.ErrorMessage != "" {
					fmt.Fprintln(out, renderStatusLine("Error", statusError, task.ErrorMessage, colorize))
				}
				if view.Sections > 0 {
					fmt.Fprintf(out, "Sections: %d\n", view.Sections)
				}
				fmt.Fprintf(out, "Created:  %s\n", humanize.Time(task.CreatedAt))
				fmt.Fprintf(out, "Updated:  %s\n", humanize.Time(task.UpdatedAt))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newLibraryStatusCommand(ctx *commandContext) *cobra.Command {
	var progress float64
	var message string

	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Record a generation status report for a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, ok := lesson.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("unknown status %q", args[1])
			}
			return ctx.withStore(func(store *library.Store) error {
				task, err := store.Resolve(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := store.UpdateStatus(cmd.Context(), task.ID, status, progress, message); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", task.ShortID(), status)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&progress, "progress", 0, "Progress percent")
	cmd.Flags().StringVar(&message, "message", "", "Failure message")
	return cmd
}

func newLibraryUpdateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <file>",
		Short: "Replace a task's state with a newer envelope",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvelopeArg(args[1])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *library.Store) error {
				task, err := store.Resolve(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				updated, err := store.Apply(cmd.Context(), task.ID, env)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", updated.ShortID(), updated.Status)
				return nil
			})
		},
	}
}

func newLibraryRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>...",
		Aliases: []string{"rm"},
		Short:   "Remove stored tasks",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				out := cmd.OutOrStdout()
				for _, arg := range args {
					task, err := store.Resolve(cmd.Context(), arg)
					if err != nil {
						return err
					}
					removed, err := store.Remove(cmd.Context(), task.ID)
					if err != nil {
						return err
					}
					if removed {
						fmt.Fprintf(out, "Removed %s %q\n", task.ShortID(), task.Title)
					}
				}
				return nil
			})
		},
	}
}

func newLibrarySearchCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Find completed lessons by their text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				results, err := store.Search(cmd.Context(), strings.Join(args, " "), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					type hit struct {
						taskView
						Score float64 `json:"score"`
					}
					hits := make([]hit, 0, len(results))
					for _, result := range results {
						hits = append(hits, hit{taskView: newTaskView(result.Task), Score: result.Score})
					}
					return writeJSON(cmd, hits)
				}

				out := cmd.OutOrStdout()
				if len(results) == 0 {
					fmt.Fprintln(out, "No matching lessons")
					return nil
				}
				rows := make([][]string, 0, len(results))
				for _, result := range results {
					rows = append(rows, []string{
						result.Task.ShortID(),
						result.Task.Title,
						strconv.FormatFloat(result.Score, 'f', 3, 64),
					})
				}
				fmt.Fprintln(out, renderTable([]column{
					{header: "ID"},
					{header: "Title", wide: true},
					{header: "Score", right: true},
				}, rows, shouldColorize(out)))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum results")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
