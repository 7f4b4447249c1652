package layout

import (
	"strings"
	"unicode/utf8"
)

// MeasureFunc returns the rendered width of text at fontSize, in the same
// units as the page geometry. The renderer that will draw the commands
// supplies it.
type MeasureFunc func(text string, fontSize float64) float64

const mmPerPoint = 25.4 / 72

// ApproxMeasure assumes every glyph is half an em wide. It is good enough for
// previews when no font metrics are at hand.
func ApproxMeasure(text string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(text)) * fontSize * 0.5 * mmPerPoint
}

// Wrap breaks text into lines no wider than maxWidth, breaking only between
// words. A word that alone exceeds maxWidth gets a line of its own. Newlines
// in text always end a line; blank text produces no lines.
func Wrap(text string, maxWidth, fontSize float64, measure MeasureFunc) []string {
	if measure == nil {
		measure = ApproxMeasure
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if measure(candidate, fontSize) <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}
