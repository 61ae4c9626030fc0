package textutil

import "github.com/rivo/uniseg"

// GraphemeCount returns the number of user-perceived characters in value.
func GraphemeCount(value string) int {
	if value == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(value)
}

// TruncateGraphemes returns the first n grapheme clusters of value. Negative
// n yields the empty string; n beyond the cluster count yields value.
func TruncateGraphemes(value string, n int) string {
	if n <= 0 || value == "" {
		return ""
	}
	gr := uniseg.NewGraphemes(value)
	end := 0
	for count := 0; count < n && gr.Next(); count++ {
		_, end = gr.Positions()
	}
	return value[:end]
}
