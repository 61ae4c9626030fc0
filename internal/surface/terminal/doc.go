// Package terminal paints lesson frames as text.
//
// Opacity becomes faint or hidden text, a slide offset becomes a shrinking
// indent, and typing and drawing reveals end with a caret or pen marker.
// Colors are only emitted when the writer is a terminal.
package terminal
