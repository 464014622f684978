package lineedit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/anchoredit/anchoredit/internal/hashline"
	"github.com/anchoredit/anchoredit/internal/uni"
)

const (
	// mismatchContext is how many lines around each mismatched anchor the
	// report includes.
	mismatchContext = 2

	// reportLineWidth bounds the displayed content of each report line.
	reportLineWidth = 160
)

// buildMismatchReport renders the combined failure message for a batch with
// stale anchors: a summary, then every line within ±mismatchContext of a
// mismatched anchor in LINE:HASH|content form, with the mismatched lines
// marked ">>>" so the caller can re-anchor without re-reading the file.
func buildMismatchReport(lines []string, mismatches []Mismatch, scopeNotes []string) string {
	marked := make(map[int]bool, len(mismatches))
	for _, mm := range mismatches {
		marked[mm.Line] = true
	}
	lineNums := make([]int, 0, len(marked))
	for ln := range marked {
		lineNums = append(lineNums, ln)
	}
	sort.Ints(lineNums)

	var b strings.Builder
	fmt.Fprintf(&b, "%d line(s) changed since these anchors were computed (relocation searched ±%d lines). Current anchors:\n",
		len(lineNums), RelocationWindow)
	for _, note := range scopeNotes {
		b.WriteString(note)
		b.WriteByte('\n')
	}

	prevHi := 0
	for _, ln := range lineNums {
		lo := ln - mismatchContext
		if lo < 1 {
			lo = 1
		}
		hi := ln + mismatchContext
		if hi > len(lines) {
			hi = len(lines)
		}
		if lo <= prevHi {
			// Overlaps the previous window; continue where it stopped.
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
			// Hash the full line; truncation is display-only.
			fmt.Fprintf(&b, "%d:%s|%s\n", n, hashline.Hash(lines[n-1]), uni.Truncate(lines[n-1], reportLineWidth, "…"))
		}
		if hi > prevHi {
			prevHi = hi
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// noopPreview renders the diagnostic for a batch in which every edit resolved
// to a no-op, previewing what each target currently contains.
func noopPreview(noops []NoopRecord) string {
	var b strings.Builder
	b.WriteString("every edit in the batch matches the current content; nothing to change.\n")
	for _, n := range noops {
		fmt.Fprintf(&b, "edit %d (%s) is already:\n", n.EditIndex+1, n.Location)
		if n.CurrentContent == "" {
			b.WriteString("  (empty)\n")
			continue
		}
		for _, line := range strings.Split(n.CurrentContent, "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
