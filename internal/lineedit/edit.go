// Package lineedit applies batches of anchor-based edit operations to file
// text. Lines are referenced as LINE:HASH anchors (see package hashline);
// stale anchors relocate within a bounded window or fail with a refreshed
// report, replacement text runs through a layered set of repair heuristics,
// and the whole batch applies atomically or not at all.
package lineedit

import (
	"encoding/json"
	"fmt"
)

// Edit is one operation of a batch: SetLine, ReplaceLines, InsertAfter, or
// Replace.
type Edit interface {
	isEdit()
}

// SetLine replaces (or, with empty NewText, deletes) the single anchored
// line. NewText may span multiple lines.
type SetLine struct {
	Anchor  string
	NewText string
}

// ReplaceLines replaces the inclusive range between two anchored lines. It
// degenerates to SetLine behavior when both anchors resolve to the same line.
type ReplaceLines struct {
	StartAnchor string
	EndAnchor   string
	NewText     string
}

// InsertAfter inserts zero or more lines after the anchored line.
type InsertAfter struct {
	Anchor string
	Text   string
}

// Replace is the anchor-free fuzzy substring replacement, applied after all
// anchor-based edits.
type Replace struct {
	OldText string
	NewText string
	All     bool
}

func (SetLine) isEdit()      {}
func (ReplaceLines) isEdit() {}
func (InsertAfter) isEdit()  {}
func (Replace) isEdit()      {}

type setLinePayload struct {
	Anchor  string `json:"anchor"`
	NewText string `json:"new_text"`
}

type replaceLinesPayload struct {
	StartAnchor string `json:"start_anchor"`
	EndAnchor   string `json:"end_anchor"`
	NewText     string `json:"new_text"`
}

type insertAfterPayload struct {
	Anchor string `json:"anchor"`
	Text   string `json:"text"`
}

type replacePayload struct {
	OldText string `json:"old_text"`
	NewText string `json:"new_text"`
	All     bool   `json:"all"`
}

// rawEdit is the wire form of an edit: exactly one variant key must be set.
type rawEdit struct {
	SetLine      *setLinePayload      `json:"set_line"`
	ReplaceLines *replaceLinesPayload `json:"replace_lines"`
	InsertAfter  *insertAfterPayload  `json:"insert_after"`
	Replace      *replacePayload      `json:"replace"`
}

// DecodeBatch parses a JSON array of tagged edit operations. A payload with
// zero or more than one variant tag is rejected.
func DecodeBatch(data []byte) ([]Edit, error) {
	var raws []rawEdit
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode edits: %w", err)
	}
	edits := make([]Edit, 0, len(raws))
	for i, r := range raws {
		e, err := r.decode()
		if err != nil {
			return nil, fmt.Errorf("edit %d: %w", i+1, err)
		}
		edits = append(edits, e)
	}
	return edits, nil
}

func (r rawEdit) decode() (Edit, error) {
	var decoded Edit
	tags := 0
	if r.SetLine != nil {
		tags++
		decoded = SetLine{Anchor: r.SetLine.Anchor, NewText: r.SetLine.NewText}
	}
	if r.ReplaceLines != nil {
		tags++
		decoded = ReplaceLines{StartAnchor: r.ReplaceLines.StartAnchor, EndAnchor: r.ReplaceLines.EndAnchor, NewText: r.ReplaceLines.NewText}
	}
	if r.InsertAfter != nil {
		tags++
		decoded = InsertAfter{Anchor: r.InsertAfter.Anchor, Text: r.InsertAfter.Text}
	}
	if r.Replace != nil {
		tags++
		decoded = Replace{OldText: r.Replace.OldText, NewText: r.Replace.NewText, All: r.Replace.All}
	}
	switch tags {
	case 0:
		return nil, fmt.Errorf("operation has no variant tag (want one of set_line, replace_lines, insert_after, replace)")
	case 1:
		return decoded, nil
	default:
		return nil, fmt.Errorf("operation has %d variant tags, want exactly one", tags)
	}
}
