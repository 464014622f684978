// Package fuzzyreplace performs substring replacement that tolerates the
// punctuation drift common in LLM-supplied text: curly quotes for straight
// quotes, unicode dashes for hyphens, exotic spaces, and stray trailing
// whitespace. Exact matches are always preferred; normalization only runs
// when an exact search finds nothing.
package fuzzyreplace

import (
	"fmt"
	"strings"
)

// foldRune maps visually similar unicode punctuation to a canonical ASCII
// form. Runes not in the table are kept as-is.
var foldRune = map[rune]string{
	'—': "-", // em dash
	'–': "-", // en dash
	'―': "-", // horizontal bar
	'−': "-", // minus sign
	'“': `"`,
	'”': `"`,
	'‘': "'",
	'’': "'",
	'\u00a0': " ", // no-break space
	'\u2007': " ", // figure space
	'\u202f': " ", // narrow no-break space
	'\u3000': " ", // ideographic space
	'…': "...",
}

// Replace replaces oldText with newText in content. When all is false only
// the first occurrence is replaced; otherwise every non-overlapping occurrence
// is, scanning left to right. The returned count is the number of splices
// performed.
//
// If no exact occurrence exists, both needle and haystack are normalized
// (per-line trailing whitespace trimmed, confusable punctuation folded) and
// the search is retried; match spans are mapped back to the original text
// before splicing. A zero-match result is a *NotFoundError.
func Replace(content, oldText, newText string, all bool) (string, int, error) {
	if oldText == "" {
		return "", 0, fmt.Errorf("replace: old text must not be empty")
	}

	spans := exactSpans(content, oldText, all)
	if len(spans) == 0 {
		spans = normalizedSpans(content, oldText, all)
	}
	if len(spans) == 0 {
		return "", 0, newNotFoundError(content, oldText)
	}

	// Splice back to front so earlier spans keep their offsets.
	out := content
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		out = out[:s.start] + newText + out[s.end:]
	}
	return out, len(spans), nil
}

// FirstMatchOffset reports the byte offset in content at which the first
// (exact or normalized) occurrence of oldText starts, or -1.
func FirstMatchOffset(content, oldText string) int {
	spans := exactSpans(content, oldText, false)
	if len(spans) == 0 {
		spans = normalizedSpans(content, oldText, false)
	}
	if len(spans) == 0 {
		return -1
	}
	return spans[0].start
}

type span struct {
	start, end int // byte offsets into the original content
}

func exactSpans(content, needle string, all bool) []span {
	var spans []span
	from := 0
	for {
		i := strings.Index(content[from:], needle)
		if i < 0 {
			break
		}
		start := from + i
		spans = append(spans, span{start: start, end: start + len(needle)})
		if !all {
			break
		}
		from = start + len(needle)
	}
	return spans
}

func normalizedSpans(content, needle string, all bool) []span {
	normNeedle, _, _ := normalize(needle)
	if normNeedle == "" {
		return nil
	}
	normContent, starts, ends := normalize(content)

	var spans []span
	from := 0
	for {
		i := strings.Index(normContent[from:], normNeedle)
		if i < 0 {
			break
		}
		m := from + i
		last := m + len(normNeedle) - 1
		spans = append(spans, span{start: starts[m], end: ends[last]})
		if !all {
			break
		}
		from = m + len(normNeedle)
	}
	return spans
}

// normalize trims trailing whitespace from every line and folds confusable
// punctuation. It returns the normalized text plus, for every byte of it, the
// start and end byte offsets of the original rune it came from, so match
// spans can be mapped back onto the original text.
func normalize(text string) (norm string, starts, ends []int) {
	var b strings.Builder
	b.Grow(len(text))
	starts = make([]int, 0, len(text))
	ends = make([]int, 0, len(text))

	emit := func(s string, origStart, origEnd int) {
		b.WriteString(s)
		for range len(s) {
			starts = append(starts, origStart)
			ends = append(ends, origEnd)
		}
	}

	off := 0
	for {
		nl := strings.IndexByte(text[off:], '\n')
		var line string
		if nl < 0 {
			line = text[off:]
		} else {
			line = text[off : off+nl]
		}

		core := strings.TrimRight(line, " \t\r")
		for p, r := range core {
			size := len(string(r))
			if folded, ok := foldRune[r]; ok {
				emit(folded, off+p, off+p+size)
			} else {
				emit(core[p:p+size], off+p, off+p+size)
			}
		}

		if nl < 0 {
			break
		}
		emit("\n", off+nl, off+nl+1)
		off += nl + 1
	}
	return b.String(), starts, ends
}
