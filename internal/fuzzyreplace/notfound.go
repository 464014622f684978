package fuzzyreplace

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// NotFoundError reports that neither exact nor normalized search matched. It
// carries the closest candidate region found while scanning, so the caller
// can see what the file actually contains near-misses against.
type NotFoundError struct {
	Needle     string
	Closest    string  // closest candidate region, "" when nothing scored
	Similarity float64 // 0..1 Levenshtein similarity of Closest
	Line       int     // 1-based first line of Closest, 0 when Closest is ""
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("old text not found (%d chars, exact and normalized search)", len(e.Needle))
	if e.Closest == "" {
		return msg
	}
	return fmt.Sprintf("%s; closest candidate at line %d (%.0f%% similar):\n%s", msg, e.Line, e.Similarity*100, e.Closest)
}

func newNotFoundError(content, needle string) error {
	e := &NotFoundError{Needle: needle}
	e.Closest, e.Similarity, e.Line = closestCandidate(content, needle)
	return e
}

// closestCandidate slides a window of len(needle lines) over content and
// scores each candidate with a Levenshtein similarity ratio.
func closestCandidate(content, needle string) (string, float64, int) {
	if content == "" || needle == "" {
		return "", 0, 0
	}
	contentLines := strings.Split(content, "\n")
	window := len(strings.Split(needle, "\n"))
	if window > len(contentLines) {
		window = len(contentLines)
	}

	bestSim := 0.0
	bestStart := -1
	for i := 0; i+window <= len(contentLines); i++ {
		candidate := strings.Join(contentLines[i:i+window], "\n")
		if sim := similarity(candidate, needle); sim > bestSim {
			bestSim = sim
			bestStart = i
		}
	}
	if bestStart < 0 {
		return "", 0, 0
	}
	return strings.Join(contentLines[bestStart:bestStart+window], "\n"), bestSim, bestStart + 1
}

// similarity returns a 0..1 ratio derived from the Levenshtein distance
// between a and b.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}
	dmp := diffmatchpatch.New()
	distance := dmp.DiffLevenshtein(dmp.DiffMain(a, b, false))
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1.0 - float64(distance)/float64(maxLen)
}
