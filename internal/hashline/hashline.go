// Package hashline computes the short content hashes ("anchors") used to
// reference lines of a file, and parses/formats the LINE:HASH references built
// from them.
//
// A hash is two lowercase hex digits computed over the line with ALL
// whitespace removed (not just trimmed). Reformatting a line therefore keeps
// its anchor stable; the tiny 256-value space means collisions across
// different content are routine and expected, so disambiguation always pairs
// the hash with a 1-based line number.
package hashline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// hashMultiplier is the odd constant for the rolling hash. Order-sensitive:
// h = h*hashMultiplier ^ ch for each rune of the whitespace-stripped line.
const hashMultiplier = 0x01000193

// Hash returns the two-hex-digit hash of line. The line must not include a
// trailing newline; a trailing carriage return is stripped before hashing.
func Hash(line string) string {
	line = strings.TrimSuffix(line, "\r")
	var h uint32
	for _, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		h = h*hashMultiplier ^ uint32(r)
	}
	return fmt.Sprintf("%02x", byte(h))
}

// StripWhitespace removes every whitespace rune from s. This is the exact
// normalization Hash applies before digesting, exported because the repair
// heuristics compare lines under the same equivalence.
func StripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Ref is a parsed LINE:HASH anchor reference. Line is 1-based. Line may be
// rewritten during validation if the engine relocates the anchor.
type Ref struct {
	Line int
	Hash string
}

// String renders the reference in its canonical LINE:HASH form.
func (r Ref) String() string {
	return fmt.Sprintf("%d:%s", r.Line, r.Hash)
}

var refPattern = regexp.MustCompile(`^(\d+):([0-9a-f]{2})$`)

// ParseRef parses an anchor reference like "12:ab". Callers sometimes echo a
// full display line ("12:ab|content") or pad the colon with spaces; both are
// tolerated. Anything else is rejected.
func ParseRef(s string) (Ref, error) {
	orig := s
	// Drop any echoed |content payload.
	if i := strings.IndexByte(s, '|'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	// Collapse a space-padded colon ("12 : ab" -> "12:ab").
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = strings.TrimSpace(s[:i]) + ":" + strings.TrimSpace(s[i+1:])
	}
	m := refPattern.FindStringSubmatch(s)
	if m == nil {
		return Ref{}, fmt.Errorf("invalid anchor reference %q: expected LINE:HASH (e.g. \"12:ab\")", orig)
	}
	line, err := strconv.Atoi(m[1])
	if err != nil || line < 1 {
		return Ref{}, fmt.Errorf("invalid anchor reference %q: line number must be >= 1", orig)
	}
	return Ref{Line: line, Hash: m[2]}, nil
}

// Format renders one line in the LINE:HASH|content display form.
func Format(lineNum int, line string) string {
	return fmt.Sprintf("%d:%s|%s", lineNum, Hash(line), line)
}

// FormatLines renders lines (with 1-based numbering starting at offset+1) in
// the LINE:HASH|content display form, one per line.
func FormatLines(lines []string, offset int) string {
	var sb strings.Builder
	for i, line := range lines {
		sb.WriteString(Format(offset+i+1, line))
		sb.WriteByte('\n')
	}
	return sb.String()
}
