package layout

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// monospace makes every rune one unit wide regardless of size.
func monospace(text string, _ float64) float64 {
	return float64(utf8.RuneCountInString(text))
}

func TestWrap(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{name: "fits", text: "one two", width: 20, want: []string{"one two"}},
		{name: "breaks at words", text: "aaa bbb ccc", width: 7, want: []string{"aaa bbb", "ccc"}},
		{name: "exact width fits", text: "ab cd", width: 5, want: []string{"ab cd"}},
		{name: "long word alone", text: "a verylongword b", width: 5, want: []string{"a", "verylongword", "b"}},
		{name: "collapses whitespace", text: "  a   b  ", width: 10, want: []string{"a b"}},
		{name: "newline ends line", text: "a b\nc", width: 10, want: []string{"a b", "c"}},
		{name: "blank", text: "   ", width: 10, want: nil},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Wrap(tc.text, tc.width, 10, monospace)
			if strings.Join(got, "|") != strings.Join(tc.want, "|") || len(got) != len(tc.want) {
				t.Fatalf("Wrap(%q, %v): got=%q want=%q", tc.text, tc.width, got, tc.want)
			}
		})
	}
}

func TestWrapPreservesWords(t *testing.T) {
	text := "Learn about JavaScript functions including declarations, expressions, arrow functions, closures and the surprisingly-long-hyphenated-identifier that will not fit"
	for _, width := range []float64{5, 12, 25, 40, 200} {
		lines := Wrap(text, width, 10, monospace)
		if got, want := strings.Fields(strings.Join(lines, " ")), strings.Fields(text); strings.Join(got, " ") != strings.Join(want, " ") {
			t.Fatalf("width=%v: words changed\n got=%q\nwant=%q", width, got, want)
		}
		for _, line := range lines {
			if monospace(line, 10) > width && len(strings.Fields(line)) != 1 {
				t.Fatalf("width=%v: overlong line %q holds more than one word", width, line)
			}
		}
	}
}

func TestWrapDefaultsToApproxMeasure(t *testing.T) {
	lines := Wrap("alpha beta gamma delta", 10, 12, nil)
	if len(lines) < 2 {
		t.Fatalf("expected approximate metrics to force a wrap, got %q", lines)
	}
}
