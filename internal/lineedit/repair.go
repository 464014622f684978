package lineedit

import (
	"strings"
	"unicode/utf8"

	"github.com/anchoredit/anchoredit/internal/hashline"
)

const (
	// mergeLengthTolerance bounds how many extra stripped characters a
	// merged replacement may carry beyond its two source lines.
	mergeLengthTolerance = 8

	// Wrapped-line restoration collapses runs of up to wrapMaxRun
	// replacement lines back to an original line when their stripped
	// concatenation equals it; the original must be unique in the file and
	// at least wrapMinStripped chars when stripped.
	wrapMaxRun      = 10
	wrapMinStripped = 6
)

// stripEntry is one whitespace-stripped original line: its full text and how
// many lines of the file share the stripped form.
type stripEntry struct {
	text  string
	count int
}

// buildStrippedIndex maps the whitespace-stripped form of every original line
// to its text and occurrence count, for wrapped-line restoration.
func buildStrippedIndex(lines []string) map[string]stripEntry {
	m := make(map[string]stripEntry, len(lines))
	for _, line := range lines {
		s := hashline.StripWhitespace(line)
		e := m[s]
		e.count++
		if e.count == 1 {
			e.text = line
		}
		m[s] = e
	}
	return m
}

// repairEdit runs the repair heuristics over one resolved edit, in order:
// merge detection, boundary echo stripping, wrapped-line restoration,
// indentation recovery, confusable-hyphen normalization. It never mutates
// lines or the input edit; the returned edit carries the repaired span and
// replacement.
func repairEdit(lines []string, re resolvedEdit, targeted map[int]bool, stripped map[string]stripEntry) resolvedEdit {
	re.repl = append([]string(nil), re.repl...)

	if merged, ok := tryMerge(lines, re, targeted); ok {
		re = merged
	}

	re.repl = stripBoundaryEchoes(lines, re)

	if len(re.repl) > 0 {
		re.repl = restoreWrapped(re.repl, stripped)
	}

	if !re.insert && len(re.repl) == re.span() {
		for i := range re.repl {
			orig := lines[re.start-1+i]
			if re.repl[i] != "" && leadingWhitespace(re.repl[i]) == "" && leadingWhitespace(orig) != "" {
				re.repl[i] = leadingWhitespace(orig) + re.repl[i]
			}
		}
	}

	if !re.insert {
		re.repl = normalizeConfusableDashes(lines, re)
	}
	return re
}

// isNoop reports whether the repaired edit would leave the file unchanged.
func isNoop(lines []string, re resolvedEdit) bool {
	if re.insert {
		return len(re.repl) == 0
	}
	if len(re.repl) != re.span() {
		return false
	}
	for i, r := range re.repl {
		if r != lines[re.start-1+i] {
			return false
		}
	}
	return true
}

// tryMerge detects a 2-for-1 merge: a single-line replacement that actually
// joins the anchored line with its continuation neighbor. On detection the
// edit's span widens to cover both lines, so the single replacement line
// stands in for the pair.
func tryMerge(lines []string, re resolvedEdit, targeted map[int]bool) (resolvedEdit, bool) {
	if re.insert || re.start != re.end || len(re.repl) != 1 {
		return re, false
	}
	replStripped := hashline.StripWhitespace(re.repl[0])
	if replStripped == "" {
		return re, false
	}
	anchorStripped := stripContinuation(hashline.StripWhitespace(lines[re.start-1]))
	if anchorStripped == "" {
		return re, false
	}

	// A neighbor pairs with the anchor only if the leading line of the pair
	// ends in continuation tokens (it visibly runs on), and only if no other
	// edit in the batch targets the neighbor.
	for _, neighbor := range []int{re.start - 1, re.start + 1} {
		if neighbor < 1 || neighbor > len(lines) || targeted[neighbor] {
			continue
		}
		neighborFull := hashline.StripWhitespace(lines[neighbor-1])
		neighborStripped := stripContinuation(neighborFull)
		if neighborStripped == "" {
			continue
		}

		var first, second string
		var leadFull, leadStripped string
		if neighbor < re.start {
			first, second = neighborStripped, anchorStripped
			leadFull, leadStripped = neighborFull, neighborStripped
		} else {
			first, second = anchorStripped, neighborStripped
			leadFull = hashline.StripWhitespace(lines[re.start-1])
			leadStripped = anchorStripped
		}
		// The leading line must actually end with continuation tokens.
		if len(leadStripped) >= len(leadFull) {
			continue
		}

		i := strings.Index(replStripped, first)
		if i < 0 {
			continue
		}
		if !strings.Contains(replStripped[i+len(first):], second) {
			continue
		}
		if len(replStripped) > len(first)+len(second)+mergeLengthTolerance {
			continue
		}

		if neighbor < re.start {
			re.start = neighbor
		} else {
			re.end = neighbor
		}
		return re, true
	}
	return re, false
}

// leadingWhitespace returns the run of spaces and tabs at the start of s.
func leadingWhitespace(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return s[:i]
		}
	}
	return s
}

// continuationTokens are trailing characters that indicate a line logically
// continues onto the next: operators, commas, open brackets, colons.
const continuationTokens = "+-*/%=<>&|^~?,.([{:"

func stripContinuation(s string) string {
	for s != "" {
		r, size := utf8.DecodeLastRuneInString(s)
		if !strings.ContainsRune(continuationTokens, r) {
			break
		}
		s = s[:len(s)-size]
	}
	return s
}

// stripBoundaryEchoes drops a leading/trailing replacement line that merely
// echoes the line immediately outside the target span. Applies only while
// the replacement is longer than the span it covers.
func stripBoundaryEchoes(lines []string, re resolvedEdit) []string {
	repl := re.repl

	var beforeIdx, afterIdx int // 1-based line numbers just outside the span
	if re.insert {
		beforeIdx, afterIdx = re.start, re.start+1
	} else {
		beforeIdx, afterIdx = re.start-1, re.end+1
	}

	if len(repl) > re.span() && beforeIdx >= 1 && beforeIdx <= len(lines) {
		if echoes(repl[0], lines[beforeIdx-1]) {
			repl = repl[1:]
		}
	}
	if len(repl) > re.span() && afterIdx >= 1 && afterIdx <= len(lines) {
		if echoes(repl[len(repl)-1], lines[afterIdx-1]) {
			repl = repl[:len(repl)-1]
		}
	}
	return repl
}

// echoes reports whether a replacement line matches a boundary line modulo
// whitespace. Blank lines never count as echoes.
func echoes(replLine, boundary string) bool {
	a := hashline.StripWhitespace(replLine)
	return a != "" && a == hashline.StripWhitespace(boundary)
}

// restoreWrapped collapses any contiguous run of 2..10 replacement lines
// whose stripped concatenation equals a unique original line back to that
// original line, undoing accidental re-wrapping of a long statement. Longer
// runs are preferred. The degenerate run of 1 restores a single replacement
// line to the exact text (indentation included) of the unique original line
// it reproduces.
func restoreWrapped(repl []string, stripped map[string]stripEntry) []string {
	out := make([]string, 0, len(repl))
	i := 0
	for i < len(repl) {
		collapsed := false
		maxRun := wrapMaxRun
		if rest := len(repl) - i; rest < maxRun {
			maxRun = rest
		}
		for run := maxRun; run >= 1; run-- {
			var b strings.Builder
			for k := i; k < i+run; k++ {
				b.WriteString(hashline.StripWhitespace(repl[k]))
			}
			concat := b.String()
			if len(concat) < wrapMinStripped {
				continue
			}
			if e, ok := stripped[concat]; ok && e.count == 1 {
				out = append(out, e.text)
				i += run
				collapsed = true
				break
			}
		}
		if !collapsed {
			out = append(out, repl[i])
			i++
		}
	}
	return out
}

// confusableDashes are unicode hyphen/dash variants folded to ASCII '-' when
// they are the only difference between a replacement and its target.
var confusableDashes = map[rune]bool{
	'‐': true, // hyphen
	'‑': true, // non-breaking hyphen
	'‒': true, // figure dash
	'–': true, // en dash
	'—': true, // em dash
	'―': true, // horizontal bar
	'−': true, // minus sign
}

func foldDashes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if confusableDashes[r] {
			b.WriteByte('-')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeConfusableDashes is the last-resort repair: when the replacement
// equals the target span except for unicode dash variants, those variants are
// folded to ASCII '-'.
func normalizeConfusableDashes(lines []string, re resolvedEdit) []string {
	if len(re.repl) != re.span() {
		return re.repl
	}
	joined := strings.Join(re.repl, "\n")
	orig := strings.Join(lines[re.start-1:re.end], "\n")
	if joined == orig || foldDashes(joined) != foldDashes(orig) {
		return re.repl
	}
	return strings.Split(foldDashes(joined), "\n")
}
