package surface

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Wrap breaks text into lines no wider than maxWidth. Lines break at spaces
// where possible; a word wider than maxWidth is split between grapheme
// clusters. Existing newlines are kept. A non-positive maxWidth or nil
// measurer returns the text split on newlines only.
func Wrap(text string, maxWidth float64, m Measurer) []string {
	paragraphs := strings.Split(text, "\n")
	if maxWidth <= 0 || m == nil {
		return paragraphs
	}
	var lines []string
	for _, paragraph := range paragraphs {
		lines = append(lines, wrapParagraph(paragraph, maxWidth, m)...)
	}
	return lines
}

func wrapParagraph(paragraph string, maxWidth float64, m Measurer) []string {
	if m.Measure(paragraph) <= maxWidth {
		return []string{paragraph}
	}
	var lines []string
	current := ""
	for _, word := range strings.Fields(paragraph) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if m.Measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if m.Measure(word) <= maxWidth {
			current = word
			continue
		}
		pieces := breakWord(word, maxWidth, m)
		lines = append(lines, pieces[:len(pieces)-1]...)
		current = pieces[len(pieces)-1]
	}
	if current != "" || len(lines) == 0 {
		lines = append(lines, current)
	}
	return lines
}

// breakWord splits word between grapheme clusters. A single cluster wider
// than maxWidth gets a line of its own.
func breakWord(word string, maxWidth float64, m Measurer) []string {
	var pieces []string
	current := ""
	gr := uniseg.NewGraphemes(word)
	for gr.Next() {
		cluster := gr.Str()
		if current != "" && m.Measure(current+cluster) > maxWidth {
			pieces = append(pieces, current)
			current = ""
		}
		current += cluster
	}
	return append(pieces, current)
}
