package terminal

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// DefaultColumns is used when the width cannot be detected.
const DefaultColumns = 80

// CellMeasurer measures text in terminal cells, counting wide characters
// as two.
type CellMeasurer struct{}

func (CellMeasurer) Measure(text string) float64 {
	return float64(runewidth.StringWidth(text))
}

// IsTerminal reports whether w writes to a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// DetectColumns returns the terminal width of w, or DefaultColumns.
func DetectColumns(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok || !IsTerminal(w) {
		return DefaultColumns
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return DefaultColumns
	}
	return width
}
