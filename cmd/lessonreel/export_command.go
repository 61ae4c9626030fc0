package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lessonreel/internal/config"
	"lessonreel/internal/export"
	"lessonreel/internal/surface/terminal"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var (
		outDir     string
		fps        int
		maxFrames  int
		speed      float64
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "export <lesson>",
		Short: "Render a lesson to a sequence of PNG frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			content, err := loadLesson(cmd.Context(), ctx, args[0])
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			dir := strings.TrimSpace(outDir)
			if dir == "" {
				dir = filepath.Join(cfg.Paths.FramesDir, export.DirName(content.Title))
			} else if dir, err = config.ExpandPath(dir); err != nil {
				return err
			}
			if fps <= 0 {
				fps = cfg.Render.FPS
			}
			pcfg := playbackConfig(cfg)
			if speed > 0 {
				pcfg.Speed = speed
			}

			var progress io.Writer
			if stderr := cmd.ErrOrStderr(); terminal.IsTerminal(stderr) && !jsonOutput {
				progress = stderr
			}

			summary, err := export.Run(cmd.Context(), content, export.Options{
				OutDir:    dir,
				FPS:       fps,
				MaxFrames: maxFrames,
				Playback:  pcfg,
				Reveal:    revealOptions(cfg),
				Canvas:    canvasOptions(cfg),
				Progress:  progress,
				Logger:    logger,
			})
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"dir":               summary.Dir,
					"frames":            summary.Frames,
					"bytes":             summary.Bytes,
					"simulated_seconds": summary.Simulated.Seconds(),
					"truncated":         summary.Truncated,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: frames_dir/<lesson title>)")
	cmd.Flags().IntVar(&fps, "fps", 0, "Frames per second (default from config)")
	cmd.Flags().IntVar(&maxFrames, "max-frames", export.DefaultMaxFrames, "Stop after this many frames")
	cmd.Flags().Float64Var(&speed, "speed", 0, "Playback speed multiplier (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the summary as JSON")
	return cmd
}
