package lineedit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anchoredit/anchoredit/internal/hashline"
)

// RelocationWindow is how far (in lines, each direction) validation searches
// for a line carrying an anchor's expected hash when the stated position no
// longer matches. A lone in-window candidate relocates the anchor; zero or
// several candidates are a mismatch.
const RelocationWindow = 20

// Mismatch records an anchor that could not be validated or relocated.
type Mismatch struct {
	Line         int
	ExpectedHash string
	ActualHash   string
}

// resolvedEdit is an anchor edit after reference resolution: a concrete line
// span plus its replacement lines.
type resolvedEdit struct {
	index  int      // position in the caller's batch
	insert bool     // insert-after semantics: repl goes after line start
	start  int      // 1-based; for insert, the anchored line
	end    int      // 1-based inclusive; == start for single-line and insert
	repl   []string // replacement lines; empty means delete (or empty insert)
}

// span returns the number of original lines the edit covers.
func (re resolvedEdit) span() int {
	if re.insert {
		return 0
	}
	return re.end - re.start + 1
}

// location renders the edit target for diagnostics.
func (re resolvedEdit) location() string {
	switch {
	case re.insert:
		return fmt.Sprintf("after line %d", re.start)
	case re.start == re.end:
		return fmt.Sprintf("line %d", re.start)
	default:
		return fmt.Sprintf("lines %d-%d", re.start, re.end)
	}
}

// fuzzyOp is a Replace operation waiting to run after the anchor edits.
type fuzzyOp struct {
	index int
	op    Replace
}

// validateBatch parses and resolves every anchor in the batch. Hash
// mismatches are collected across the whole batch and reported as one
// combined failure; malformed references, out-of-range lines, and inverted
// ranges fail immediately.
func validateBatch(ctx context.Context, lines []string, idx *hashline.Index, edits []Edit) ([]resolvedEdit, []fuzzyOp, []string, error) {
	var (
		resolved   []resolvedEdit
		fuzzyOps   []fuzzyOp
		warnings   []string
		mismatches []Mismatch
		scopeNotes []string
	)

	for i, e := range edits {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}
		switch op := e.(type) {
		case SetLine:
			ref, err := parseAndBound(op.Anchor, i, idx)
			if err != nil {
				return nil, nil, nil, err
			}
			line, note, mm := resolveRef(idx, ref)
			if mm != nil {
				mismatches = append(mismatches, *mm)
				continue
			}
			if note != "" {
				warnings = append(warnings, note)
			}
			resolved = append(resolved, resolvedEdit{
				index: i,
				start: line,
				end:   line,
				repl:  replacementLines(normalizeReplacement(op.NewText)),
			})

		case InsertAfter:
			ref, err := parseAndBound(op.Anchor, i, idx)
			if err != nil {
				return nil, nil, nil, err
			}
			line, note, mm := resolveRef(idx, ref)
			if mm != nil {
				mismatches = append(mismatches, *mm)
				continue
			}
			if note != "" {
				warnings = append(warnings, note)
			}
			resolved = append(resolved, resolvedEdit{
				index:  i,
				insert: true,
				start:  line,
				end:    line,
				repl:   replacementLines(normalizeReplacement(op.Text)),
			})

		case ReplaceLines:
			startRef, err := parseAndBound(op.StartAnchor, i, idx)
			if err != nil {
				return nil, nil, nil, err
			}
			endRef, err := parseAndBound(op.EndAnchor, i, idx)
			if err != nil {
				return nil, nil, nil, err
			}
			statedSpan := endRef.Line - startRef.Line

			startLine, startNote, startMM := resolveRef(idx, startRef)
			endLine, endNote, endMM := resolveRef(idx, endRef)
			if startMM != nil || endMM != nil {
				if startMM != nil {
					mismatches = append(mismatches, *startMM)
				}
				if endMM != nil {
					mismatches = append(mismatches, *endMM)
				}
				continue
			}
			if endLine-startLine != statedSpan {
				// Relocation changed the range's length. Never apply a range
				// whose scope silently grew or shrank: discard the relocation
				// and report both endpoints.
				mismatches = append(mismatches,
					Mismatch{Line: startRef.Line, ExpectedHash: startRef.Hash, ActualHash: idx.HashAt(startRef.Line)},
					Mismatch{Line: endRef.Line, ExpectedHash: endRef.Hash, ActualHash: idx.HashAt(endRef.Line)},
				)
				scopeNotes = append(scopeNotes, fmt.Sprintf(
					"edit %d: relocating %s..%s would change the range from %d to %d lines; both anchors need refreshing",
					i+1, startRef, endRef, statedSpan+1, endLine-startLine+1))
				continue
			}
			if startLine > endLine {
				return nil, nil, nil, kindError(ErrRangeInverted, fmt.Errorf(
					"edit %d: start anchor %s resolves after end anchor %s", i+1, startRef, endRef))
			}
			if startNote != "" {
				warnings = append(warnings, startNote)
			}
			if endNote != "" {
				warnings = append(warnings, endNote)
			}
			resolved = append(resolved, resolvedEdit{
				index: i,
				start: startLine,
				end:   endLine,
				repl:  replacementLines(normalizeReplacement(op.NewText)),
			})

		case Replace:
			fuzzyOps = append(fuzzyOps, fuzzyOp{index: i, op: op})

		default:
			return nil, nil, nil, fmt.Errorf("edit %d: unknown operation type %T", i+1, e)
		}
	}

	if len(mismatches) > 0 {
		report := buildMismatchReport(lines, mismatches, scopeNotes)
		err := kindError(ErrHashMismatch, errors.New(report))
		if len(scopeNotes) > 0 {
			err = errors.Join(ErrScopeChanged, err)
		}
		return nil, nil, nil, err
	}
	return resolved, fuzzyOps, warnings, nil
}

// parseAndBound parses one anchor string and applies the fatal bounds check.
func parseAndBound(anchor string, editIdx int, idx *hashline.Index) (hashline.Ref, error) {
	ref, err := hashline.ParseRef(anchor)
	if err != nil {
		return hashline.Ref{}, kindError(ErrInvalidReference, fmt.Errorf("edit %d: %w", editIdx+1, err))
	}
	if ref.Line > idx.Len() {
		return hashline.Ref{}, kindError(ErrLineOutOfRange, fmt.Errorf(
			"edit %d: anchor %s references line %d but the file has %d lines", editIdx+1, ref, ref.Line, idx.Len()))
	}
	return ref, nil
}

// resolveRef validates ref against the index. A hash match at the stated line
// is accepted as-is (never relocated, even if the same hash appears
// elsewhere). On mismatch, a lone in-window candidate relocates the
// reference; zero or several candidates produce a Mismatch.
func resolveRef(idx *hashline.Index, ref hashline.Ref) (line int, note string, mm *Mismatch) {
	actual := idx.HashAt(ref.Line)
	if actual == ref.Hash {
		return ref.Line, "", nil
	}
	candidates := idx.LinesWithHashNear(ref.Hash, ref.Line, RelocationWindow)
	if len(candidates) == 1 {
		return candidates[0], fmt.Sprintf("anchor %s: content drifted; relocated to line %d", ref, candidates[0]), nil
	}
	return 0, "", &Mismatch{Line: ref.Line, ExpectedHash: ref.Hash, ActualHash: actual}
}

// replacementLines splits edit-supplied text into lines. A single trailing
// newline is dropped (engine lines never carry one); empty text means no
// lines at all.
func replacementLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
