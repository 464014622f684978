package edittools

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anchoredit/anchoredit/internal/lineedit"
	"github.com/anchoredit/anchoredit/internal/textfile"
)

//go:embed edit_file.md
var descriptionEditFile string

const ToolNameEditFile = "edit_file"

type ParamsEditFile struct {
	Path  string          `json:"path"`
	Edits json.RawMessage `json:"edits"`
}

type toolEditFile struct{}

func NewEditFileTool() Tool {
	return &toolEditFile{}
}

func (t *toolEditFile) Name() string {
	return ToolNameEditFile
}

func (t *toolEditFile) Info() ToolInfo {
	return ToolInfo{
		Name:        ToolNameEditFile,
		Description: strings.TrimSpace(descriptionEditFile),
		Parameters: map[string]any{
			"path": map[string]any{
				"type":        "string",
				"description": "The path of the file to edit",
			},
			"edits": map[string]any{
				"type":        "array",
				"description": "The edit operations, each tagged set_line, replace_lines, insert_after, or replace",
			},
		},
		Required: []string{"path", "edits"},
	}
}

func (t *toolEditFile) Run(ctx context.Context, call ToolCall) ToolResult {
	var params ParamsEditFile
	if err := json.Unmarshal([]byte(call.Input), &params); err != nil {
		return errorResult(call, fmt.Sprintf("error parsing parameters: %s", err), err)
	}
	if strings.TrimSpace(params.Path) == "" {
		return errorResult(call, "path is required", nil)
	}

	edits, err := lineedit.DecodeBatch(params.Edits)
	if err != nil {
		return errorResult(call, err.Error(), err)
	}
	if len(edits) == 0 {
		return errorResult(call, "edits must contain at least one operation", nil)
	}

	f, err := textfile.Load(params.Path)
	if err != nil {
		return errorResult(call, err.Error(), err)
	}

	res, err := lineedit.Apply(ctx, f.Content, edits)
	if err != nil {
		logger().Debug().Str("tool", ToolNameEditFile).Str("path", params.Path).Err(err).Msg("apply failed")
		return errorResult(call, err.Error(), err)
	}
	if err := f.Save(res.NewContent); err != nil {
		return errorResult(call, err.Error(), err)
	}

	logger().Debug().Str("tool", ToolNameEditFile).Str("path", params.Path).
		Int("edits", len(edits)).Int("first_changed_line", res.FirstChangedLine).Msg("applied")

	var b strings.Builder
	fmt.Fprintf(&b, "edited %s", params.Path)
	if res.FirstChangedLine > 0 {
		fmt.Fprintf(&b, " (first change at line %d)", res.FirstChangedLine)
	}
	b.WriteByte('\n')
	for _, w := range res.Warnings {
		fmt.Fprintf(&b, "warning: %s\n", w)
	}
	for _, n := range res.Noops {
		fmt.Fprintf(&b, "note: edit %d (%s) was already applied\n", n.EditIndex+1, n.Location)
	}
	if res.Diff != "" {
		b.WriteString(res.Diff)
		b.WriteByte('\n')
	}
	return okResult(call, strings.TrimSuffix(b.String(), "\n"))
}
