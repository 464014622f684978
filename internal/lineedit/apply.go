package lineedit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/anchoredit/anchoredit/internal/fuzzyreplace"
	"github.com/anchoredit/anchoredit/internal/hashline"
	"github.com/anchoredit/anchoredit/internal/linediff"
)

// reformatWarnFactor triggers the reformat-scope warning when the diff
// changes more than this many lines per edit operation.
const reformatWarnFactor = 4

// NoopRecord describes an edit whose repaired replacement was textually
// identical to the content it targeted, so nothing was applied.
type NoopRecord struct {
	EditIndex      int    // position in the caller's batch
	Location       string // e.g. "line 12", "lines 3-5", "after line 7"
	CurrentContent string // what the target currently contains
}

// Result is the outcome of a successful Apply.
type Result struct {
	NewContent       string
	FirstChangedLine int // lowest line touched by a non-no-op edit; 0 if none
	Warnings         []string
	Noops            []NoopRecord
	Diff             string
}

// Apply validates and applies a batch of edits to content, returning the new
// text plus a diff, warnings, and no-op records. content must already be
// LF-normalized and BOM-free (see package textfile).
//
// The whole batch is validated before anything mutates: any failure
// (malformed anchor, stale hash, impossible replace) returns an error and
// content is untouched. Anchor edits apply bottom-up in one pass; fuzzy
// Replace operations then run against the edited text in batch order.
func Apply(ctx context.Context, content string, edits []Edit) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trailingNL := strings.HasSuffix(content, "\n")
	var lines []string
	if content != "" {
		body := strings.TrimSuffix(content, "\n")
		lines = strings.Split(body, "\n")
	}
	idx := hashline.NewIndex(lines)

	resolved, fuzzyOps, warnings, err := validateBatch(ctx, lines, idx, edits)
	if err != nil {
		return nil, err
	}
	resolved = dedupe(resolved)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Lines claimed by any edit; the merge heuristic must not consume a
	// neighbor some other edit targets.
	targeted := make(map[int]bool)
	for _, re := range resolved {
		for n := re.start; n <= re.end; n++ {
			targeted[n] = true
		}
	}

	stripped := buildStrippedIndex(lines)
	var live []resolvedEdit
	var noops []NoopRecord
	for _, re := range resolved {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		re = repairEdit(lines, re, targeted, stripped)
		if isNoop(lines, re) {
			noops = append(noops, NoopRecord{
				EditIndex:      re.index,
				Location:       re.location(),
				CurrentContent: currentContent(lines, re),
			})
			continue
		}
		live = append(live, re)
	}

	if len(live) == 0 && len(fuzzyOps) == 0 {
		return nil, kindError(ErrNoChangeProduced, errors.New(noopPreview(noops)))
	}

	// Bottom-up application keeps pending line numbers valid: descending
	// start line, insertions after same-line edits, then batch order.
	sort.Slice(live, func(i, j int) bool {
		a, b := live[i], live[j]
		if a.start != b.start {
			return a.start > b.start
		}
		if a.insert != b.insert {
			return !a.insert
		}
		return a.index < b.index
	})

	out := append([]string(nil), lines...)
	firstChanged := 0
	for _, re := range live {
		if re.insert {
			out = splice(out, re.start, re.start, re.repl)
			firstChanged = minChanged(firstChanged, re.start+1)
		} else {
			out = splice(out, re.start-1, re.end, re.repl)
			firstChanged = minChanged(firstChanged, re.start)
		}
	}

	newContent := strings.Join(out, "\n")
	if trailingNL && newContent != "" {
		newContent += "\n"
	}

	// Fuzzy replaces run against the already-anchor-edited text.
	for _, f := range fuzzyOps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		off := fuzzyreplace.FirstMatchOffset(newContent, f.op.OldText)
		replaced, _, err := fuzzyreplace.Replace(newContent, f.op.OldText, f.op.NewText, f.op.All)
		if err != nil {
			var nf *fuzzyreplace.NotFoundError
			if errors.As(err, &nf) {
				return nil, kindError(ErrReplaceNotFound, fmt.Errorf("edit %d: %w", f.index+1, err))
			}
			return nil, fmt.Errorf("edit %d: %w", f.index+1, err)
		}
		firstChanged = minChanged(firstChanged, 1+strings.Count(newContent[:off], "\n"))
		newContent = replaced
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	finalLines := splitContent(newContent)
	entries := linediff.Compute(lines, finalLines)
	if changed := linediff.ChangedLines(entries); len(edits) > 0 && changed > reformatWarnFactor*len(edits) {
		warnings = append(warnings, fmt.Sprintf(
			"%d lines changed across %d edit(s); the batch may have reformatted beyond its stated scope", changed, len(edits)))
	}

	return &Result{
		NewContent:       newContent,
		FirstChangedLine: firstChanged,
		Warnings:         warnings,
		Noops:            noops,
		Diff:             linediff.Render(entries, linediff.DefaultContext),
	}, nil
}

// dedupe drops exact-duplicate edits (same resolved target, same replacement),
// keeping the first occurrence in batch order.
func dedupe(resolved []resolvedEdit) []resolvedEdit {
	seen := make(map[string]bool, len(resolved))
	out := resolved[:0]
	for _, re := range resolved {
		key := fmt.Sprintf("%v|%d|%d|%s", re.insert, re.start, re.end, strings.Join(re.repl, "\n"))
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, re)
	}
	return out
}

func currentContent(lines []string, re resolvedEdit) string {
	if re.insert {
		return lines[re.start-1]
	}
	return strings.Join(lines[re.start-1:re.end], "\n")
}

// splice replaces lines[from:to] (0-based, half-open) with repl.
func splice(lines []string, from, to int, repl []string) []string {
	out := make([]string, 0, len(lines)-(to-from)+len(repl))
	out = append(out, lines[:from]...)
	out = append(out, repl...)
	out = append(out, lines[to:]...)
	return out
}

func splitContent(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

func minChanged(current, candidate int) int {
	if current == 0 || candidate < current {
		return candidate
	}
	return current
}
