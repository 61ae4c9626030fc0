package textutil

import (
	"strings"
	"unicode"
)

var bulletPrefixes = []string{"- ", "* ", "+ ", "• ", "· ", "– "}

// SplitListItems splits list content on line breaks, strips bullet or
// ordinal markers, and drops blank lines.
func SplitListItems(content string) []string {
	lines := strings.Split(content, "\n")
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		item := StripBullet(line)
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// StripBullet removes a leading markdown bullet ("-", "*", "+", "•") or an
// ordinal marker such as "1." or "2)" from a single line.
func StripBullet(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimSpace(trimmed[len(prefix):])
		}
	}
	switch trimmed {
	case "-", "*", "+", "•":
		return ""
	}
	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(trimmed) && (trimmed[digits] == '.' || trimmed[digits] == ')') {
		rest := trimmed[digits+1:]
		if rest == "" || unicode.IsSpace(rune(rest[0])) {
			return strings.TrimSpace(rest)
		}
	}
	return trimmed
}

// SplitLines splits text on LF without dropping blank lines. A trailing
// newline does not produce an extra empty line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}
