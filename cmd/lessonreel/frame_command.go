package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lessonreel/internal/config"
	"lessonreel/internal/playback"
	"lessonreel/internal/surface/canvas"
	"lessonreel/internal/surface/terminal"
	"lessonreel/internal/textutil"
)

func newFrameCommand(ctx *commandContext) *cobra.Command {
	var (
		section  int
		progress float64
		outPath  string
		columns  int
	)

	cmd := &cobra.Command{
		Use:   "frame <lesson>",
		Short: "Render a single moment of a lesson",
		Long: `Render one section of a lesson at a given progress (0 to 1).

Without --out the frame is printed as text; with --out it is written as a PNG.
When --out names a directory the file is named after the lesson title.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if progress < 0 || progress > 1 {
				return fmt.Errorf("progress %v must be between 0 and 1", progress)
			}
			content, err := loadLesson(cmd.Context(), ctx, args[0])
			if err != nil {
				return err
			}
			frame, err := playback.FrameAt(content, section-1, progress, revealOptions(cfg))
			if err != nil {
				return fmt.Errorf("section %d: %w", section, err)
			}

			target := strings.TrimSpace(outPath)
			if target == "" {
				out := cmd.OutOrStdout()
				opts := terminal.Options{Columns: columns, Color: shouldColorize(out)}
				if opts.Columns <= 0 {
					opts.Columns = cfg.Render.Columns
				}
				return terminal.New(out, opts).Render(frame)
			}

			target, err = config.ExpandPath(target)
			if err != nil {
				return err
			}
			if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
				target = filepath.Join(target, stillName(content.Title, section, progress))
			}
			surf, err := canvas.New(canvasOptions(cfg))
			if err != nil {
				return err
			}
			if err := surf.Render(frame); err != nil {
				return err
			}
			if err := surf.WritePNG(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (section %d/%d at %.0f%%)\n",
				target, frame.SectionIndex+1, frame.SectionCount, progress*100)
			return nil
		},
	}

	cmd.Flags().IntVarP(&section, "section", "s", 1, "Section number")
	cmd.Flags().Float64Var(&progress, "at", 1, "Section progress between 0 and 1")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write a PNG to this path instead of printing text")
	cmd.Flags().IntVar(&columns, "columns", 0, "Text width in columns")
	return cmd
}

// stillName names a PNG still inside a directory.
func stillName(title string, section int, progress float64) string {
	base := textutil.SanitizeFileName(title)
	if base == "" {
		base = "lesson"
	}
	return fmt.Sprintf("%s - section %d at %d%%.png", base, section, int(math.Round(progress*100)))
}
