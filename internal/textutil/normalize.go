package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var lineEndingReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeText folds CRLF and CR line endings to LF and applies Unicode NFC
// composition so combining sequences count as the characters a reader sees.
func NormalizeText(value string) string {
	if value == "" {
		return ""
	}
	return norm.NFC.String(lineEndingReplacer.Replace(value))
}
