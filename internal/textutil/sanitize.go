package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxFileNameBytes leaves room for the " - section N at P%.png" suffix under
// the common 255 byte limit.
const maxFileNameBytes = 200

var fileNameReplacer = strings.NewReplacer(
	": ", " - ",
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName makes a lesson title usable as a file name while keeping
// it readable: "Go: Channels/Select?" becomes "Go - Channels-Select".
// Whitespace runs collapse to one space and control characters are dropped.
func SanitizeFileName(name string) string {
	name = fileNameReplacer.Replace(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, name)
	name = strings.Join(strings.Fields(name), " ")
	if len(name) > maxFileNameBytes {
		cut := maxFileNameBytes
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		name = strings.TrimSpace(name[:cut])
	}
	return name
}

// SanitizeToken lowercases value into an ASCII token of letters, digits,
// dashes and underscores, used for export directory names. Runs of anything
// else become a single underscore. It returns "unknown" when nothing usable
// remains.
func SanitizeToken(value string) string {
	var b strings.Builder
	pending := false
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		case r >= 'A' && r <= 'Z':
			r = unicode.ToLower(r)
		default:
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte('_')
			pending = false
		}
		b.WriteRune(r)
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "unknown"
	}
	return out
}
