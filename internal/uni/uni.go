// Package uni measures and truncates text by terminal display width,
// iterating grapheme clusters so multi-rune clusters are never split.
package uni

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

var cond = defaultCondition()

func defaultCondition() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	c.StrictEmojiNeutral = true
	return c
}

// TextWidth returns the display width of s for monospace fonts in terminals.
func TextWidth(s string) int {
	return cond.StringWidth(s)
}

// Truncate returns s cut down to at most maxWidth display columns, appending
// tail when anything was cut. The tail's own width counts against maxWidth.
// Grapheme clusters are kept whole.
func Truncate(s string, maxWidth int, tail string) string {
	if maxWidth <= 0 {
		return ""
	}
	if TextWidth(s) <= maxWidth {
		return s
	}

	budget := maxWidth - TextWidth(tail)
	if budget < 0 {
		budget = 0
	}

	width := 0
	end := 0
	iter := graphemes.FromString(s)
	for iter.Next() {
		w := cond.StringWidth(iter.Value())
		if width+w > budget {
			break
		}
		width += w
		end = iter.End()
	}
	return s[:end] + tail
}
