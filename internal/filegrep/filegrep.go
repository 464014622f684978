// Package filegrep searches file text with a regexp and reports hits as
// anchored LINE:HASH|content lines, so a hit can be fed straight back into an
// anchor-based edit without re-reading the file.
package filegrep

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/anchoredit/anchoredit/internal/hashline"
	"github.com/anchoredit/anchoredit/internal/uni"
)

// displayWidth bounds how much of each listed line is shown.
const displayWidth = 160

// Match is one matching line.
type Match struct {
	Line int // 1-based
	Text string
}

// Search returns every line of content matching pattern, in order. A
// maxMatches of 0 means unlimited.
func Search(content, pattern string, maxMatches int) ([]Match, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad pattern: %w", err)
	}
	var matches []Match
	for i, line := range splitLines(content) {
		if !re.MatchString(line) {
			continue
		}
		matches = append(matches, Match{Line: i + 1, Text: line})
		if maxMatches > 0 && len(matches) >= maxMatches {
			break
		}
	}
	return matches, nil
}

// Render lists the matches with contextLines of surrounding context, every
// line in LINE:HASH|content form, matching lines marked ">>>". Overlapping
// windows merge; distant groups are separated with "...". Returns "" when
// there are no matches.
func Render(content string, matches []Match, contextLines int) string {
	if len(matches) == 0 {
		return ""
	}
	lines := splitLines(content)
	marked := make(map[int]bool, len(matches))
	for _, m := range matches {
		marked[m.Line] = true
	}

	var b strings.Builder
	prevHi := 0
	for _, m := range matches {
		lo := m.Line - contextLines
		if lo < 1 {
			lo = 1
		}
		hi := m.Line + contextLines
		if hi > len(lines) {
			hi = len(lines)
		}
		if lo <= prevHi {
			lo = prevHi + 1
		} else if prevHi > 0 {
			b.WriteString("...\n")
		}
		for n := lo; n <= hi; n++ {
			if marked[n] {
				b.WriteString(">>> ")
			} else {
				b.WriteString("    ")
			}
			fmt.Fprintf(&b, "%d:%s|%s\n", n, hashline.Hash(lines[n-1]), uni.Truncate(lines[n-1], displayWidth, "…"))
		}
		if hi > prevHi {
			prevHi = hi
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}
