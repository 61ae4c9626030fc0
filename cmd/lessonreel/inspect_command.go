package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lessonreel/internal/lesson"
)

type inspectSection struct {
	Index           int      `json:"index"`
	Heading         string   `json:"heading"`
	DurationSeconds float64  `json:"duration_seconds"`
	Animation       string   `json:"animation_type"`
	Blocks          []string `json:"content_types"`
}

type inspectOutput struct {
	Title        string           `json:"title"`
	Sections     int              `json:"sections"`
	Blocks       int              `json:"blocks"`
	TotalSeconds float64          `json:"total_seconds"`
	ByType       map[string]int   `json:"blocks_by_type"`
	Detail       []inspectSection `json:"section_detail"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect <lesson>",
		Short: "Summarize a lesson's sections and blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := loadLesson(cmd.Context(), ctx, args[0])
			if err != nil {
				return err
			}
			summary := buildInspectOutput(content)
			if jsonOutput {
				return writeJSON(cmd, summary)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			title := summary.Title
			if title == "" {
				title = "Untitled lesson"
			}
			for _, line := range renderSectionHeader(title, colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintf(out, "%d sections, %d blocks, %.1fs of animation\n", summary.Sections, summary.Blocks, summary.TotalSeconds)
			if summary.Sections == 0 {
				return nil
			}
			if len(summary.ByType) > 0 {
				parts := make([]string, 0, len(summary.ByType))
				for _, kind := range sortedTypes(summary.ByType) {
					parts = append(parts, fmt.Sprintf("%s %d", kind, summary.ByType[kind]))
				}
				fmt.Fprintf(out, "Blocks by type: %s\n", strings.Join(parts, ", "))
			}

			rows := make([][]string, 0, len(summary.Detail))
			for _, section := range summary.Detail {
				rows = append(rows, []string{
					strconv.Itoa(section.Index + 1),
					section.Heading,
					strconv.FormatFloat(section.DurationSeconds, 'f', -1, 64) + "s",
					section.Animation,
					strings.Join(section.Blocks, ", "),
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{header: "#", right: true},
				{header: "Heading", wide: true},
				{header: "Duration", right: true},
				{header: "Animation"},
				{header: "Blocks", wide: true},
			}, rows, colorize))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func buildInspectOutput(content *lesson.Content) inspectOutput {
	stats := content.Stats()
	out := inspectOutput{
		Title:        content.Title,
		Sections:     stats.Sections,
		Blocks:       stats.Blocks,
		TotalSeconds: stats.TotalSeconds,
		ByType:       make(map[string]int, len(stats.ByType)),
		Detail:       make([]inspectSection, 0, stats.Sections),
	}
	for kind, count := range stats.ByType {
		out.ByType[string(kind)] = count
	}
	for i, section := range content.Sections {
		types := make([]string, 0, len(section.Blocks))
		for _, block := range section.Blocks {
			types = append(types, string(block.Type))
		}
		out.Detail = append(out.Detail, inspectSection{
			Index:           i,
			Heading:         section.Heading,
			DurationSeconds: section.DurationSeconds,
			Animation:       string(section.Animation),
			Blocks:          types,
		})
	}
	return out
}

// sortedTypes lists block types by descending count, then name.
func sortedTypes(byType map[string]int) []string {
	keys := make([]string, 0, len(byType))
	for key := range byType {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if byType[keys[i]] != byType[keys[j]] {
			return byType[keys[i]] > byType[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
