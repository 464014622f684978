// Package linediff renders a compact line-level diff between two versions of
// a file.
//
// The alignment is a greedy resynchronization, not a shortest-edit-script
// diff: it is linear-ish and can misalign in pathological inputs, which is
// acceptable for display. Edit application never consults the diff.
package linediff

import (
	"fmt"
	"strings"
)

// Kind classifies one diff entry.
type Kind int

const (
	Same Kind = iota
	Add
	Remove
)

// Entry is one line of the computed diff. OldLine is the 1-based position in
// the old text (0 for additions); NewLine is the 1-based position in the new
// text (0 for removals).
type Entry struct {
	Kind    Kind
	Text    string
	OldLine int
	NewLine int
}

const (
	// DefaultContext is the number of unchanged lines shown around each
	// changed region when rendering.
	DefaultContext = 4

	// resyncWindow bounds how far ahead the aligner searches for a matching
	// line pair after a divergence.
	resyncWindow = 50
)

// Compute aligns oldLines and newLines and returns the full entry stream,
// including Same entries for unchanged lines.
func Compute(oldLines, newLines []string) []Entry {
	var entries []Entry
	i, j := 0, 0

	emitRemovals := func(to int) {
		for ; i < to; i++ {
			entries = append(entries, Entry{Kind: Remove, Text: oldLines[i], OldLine: i + 1})
		}
	}
	emitAdditions := func(to int) {
		for ; j < to; j++ {
			entries = append(entries, Entry{Kind: Add, Text: newLines[j], NewLine: j + 1})
		}
	}

	for i < len(oldLines) || j < len(newLines) {
		switch {
		case i >= len(oldLines):
			emitAdditions(len(newLines))
		case j >= len(newLines):
			emitRemovals(len(oldLines))
		case oldLines[i] == newLines[j]:
			entries = append(entries, Entry{Kind: Same, Text: oldLines[i], OldLine: i + 1, NewLine: j + 1})
			i++
			j++
		default:
			ri, rj, ok := findResync(oldLines, newLines, i, j)
			if !ok {
				// No resynchronization point within the window: emit the
				// remainder as a block removal followed by a block addition.
				emitRemovals(len(oldLines))
				emitAdditions(len(newLines))
				return entries
			}
			emitRemovals(ri)
			emitAdditions(rj)
		}
	}
	return entries
}

// findResync searches outward from the divergence at (i, j) for the nearest
// position pair where a line of one sequence matches a line of the other.
// Candidates are examined in rings of growing skip distance so the first hit
// is the cheapest realignment.
func findResync(oldLines, newLines []string, i, j int) (ri, rj int, ok bool) {
	for k := 1; k <= resyncWindow; k++ {
		if i+k < len(oldLines) {
			for b := 0; b <= k && j+b < len(newLines); b++ {
				if oldLines[i+k] == newLines[j+b] {
					return i + k, j + b, true
				}
			}
		}
		if j+k < len(newLines) {
			for a := 0; a < k && i+a < len(oldLines); a++ {
				if oldLines[i+a] == newLines[j+k] {
					return i + a, j + k, true
				}
			}
		}
	}
	return 0, 0, false
}

// ChangedLines counts the Add and Remove entries.
func ChangedLines(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.Kind != Same {
			n++
		}
	}
	return n
}

// Render formats entries with ' '/'-'/'+' prefixes, keeping context unchanged
// lines around each changed region and eliding the rest with "..." markers.
// Removals carry their old line number; context and additions carry their new
// line number. If nothing changed, Render returns "".
func Render(entries []Entry, context int) string {
	if context < 0 {
		context = DefaultContext
	}

	// Mark entries to keep: every change plus `context` Same entries around it.
	keep := make([]bool, len(entries))
	anyChange := false
	for idx, e := range entries {
		if e.Kind == Same {
			continue
		}
		anyChange = true
		lo := idx - context
		if lo < 0 {
			lo = 0
		}
		hi := idx + context
		if hi > len(entries)-1 {
			hi = len(entries) - 1
		}
		for k := lo; k <= hi; k++ {
			keep[k] = true
		}
	}
	if !anyChange {
		return ""
	}

	var out []string
	elided := false
	for idx, e := range entries {
		if !keep[idx] {
			elided = true
			continue
		}
		if elided && len(out) > 0 {
			out = append(out, "...")
		}
		elided = false
		switch e.Kind {
		case Same:
			out = append(out, fmt.Sprintf("  %d %s", e.NewLine, e.Text))
		case Remove:
			out = append(out, fmt.Sprintf("- %d %s", e.OldLine, e.Text))
		case Add:
			out = append(out, fmt.Sprintf("+ %d %s", e.NewLine, e.Text))
		}
	}
	return strings.Join(out, "\n")
}
