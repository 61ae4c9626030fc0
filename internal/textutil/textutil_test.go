package textutil

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNormalizeTextComposesAndFoldsLineEndings(t *testing.T) {
	decomposed := "Cafe\u0301\r\nnext\rline"
	got := NormalizeText(decomposed)
	want := "Caf\u00e9\nnext\nline"
	if got != want {
		t.Fatalf("NormalizeText() = %q, want %q", got, want)
	}
	if GraphemeCount(got) != len([]rune(want)) {
		t.Fatalf("unexpected grapheme count %d", GraphemeCount(got))
	}
}

func TestTruncateGraphemes(t *testing.T) {
	tests := []struct {
		name  string
		value string
		n     int
		want  string
	}{
		{"ascii prefix", "Hello world", 5, "Hello"},
		{"zero", "Hello", 0, ""},
		{"negative", "Hello", -2, ""},
		{"beyond end", "Hi", 10, "Hi"},
		{"emoji cluster kept whole", "a👍🏽b", 2, "a👍🏽"},
		{"empty", "", 3, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateGraphemes(tt.value, tt.n); got != tt.want {
				t.Errorf("TruncateGraphemes(%q, %d) = %q, want %q", tt.value, tt.n, got, tt.want)
			}
		})
	}
}

func TestGraphemeCountEmoji(t *testing.T) {
	if got := GraphemeCount("a👍🏽b"); got != 3 {
		t.Fatalf("GraphemeCount = %d, want 3", got)
	}
}

func TestSplitListItemsStripsMarkers(t *testing.T) {
	content := "- first\n* second\n\n3. third\n4) fourth\n• fifth\nplain"
	got := SplitListItems(content)
	want := []string{"first", "second", "third", "fourth", "fifth", "plain"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitListItems() = %#v, want %#v", got, want)
	}
}

func TestStripBulletKeepsNumbersWithoutMarker(t *testing.T) {
	tests := map[string]string{
		"2024 was a year": "2024 was a year",
		"3.14 is pi":      "3.14 is pi",
		"-":               "",
		"   ":             "",
		"10. tenth":       "tenth",
	}
	for input, want := range tests {
		if got := StripBullet(input); got != want {
			t.Errorf("StripBullet(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSplitLines(t *testing.T) {
	if got := SplitLines(""); got != nil {
		t.Fatalf("expected nil for empty content, got %#v", got)
	}
	got := SplitLines("a\n\nb\n")
	want := []string{"a", "", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitLines() = %#v, want %#v", got, want)
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"  Intro: Go/Channels?  ": "Intro - Go-Channels",
		"Tabs\tand\nnewlines":    "Tabs and newlines",
		"Lesson <draft> | v2":     "Lesson draft v2",
	}
	for in, want := range cases {
		if got := SanitizeFileName(in); got != want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
	long := SanitizeFileName(strings.Repeat("é", 150))
	if len(long) > 200 || !utf8.ValidString(long) {
		t.Fatalf("expected a truncated valid name, got %d bytes", len(long))
	}
	if got := SanitizeFileName("   "); got != "" {
		t.Fatalf("SanitizeFileName(blank) = %q", got)
	}
}

func TestSanitizeToken(t *testing.T) {
	cases := map[string]string{
		"Intro to Go!":      "intro_to_go",
		"  ":                "unknown",
		"???":               "unknown",
		"v2-release_notes":  "v2-release_notes",
		"Go Basics: Part 1": "go_basics_part_1",
	}
	for in, want := range cases {
		if got := SanitizeToken(in); got != want {
			t.Fatalf("SanitizeToken(%q) = %q, want %q", in, got, want)
		}
	}
}
