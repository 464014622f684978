package edittools

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anchoredit/anchoredit/internal/hashline"
	"github.com/anchoredit/anchoredit/internal/textfile"
)

//go:embed read_file.md
var descriptionReadFile string

const (
	ToolNameReadFile = "read_file"

	// ReadFilePageLines is how many lines each read_file page carries.
	ReadFilePageLines = 100
)

type ParamsReadFile struct {
	Path string `json:"path"`
	Page int    `json:"page"` // 1-based; 0 means 1
}

type toolReadFile struct{}

func NewReadFileTool() Tool {
	return &toolReadFile{}
}

func (t *toolReadFile) Name() string {
	return ToolNameReadFile
}

func (t *toolReadFile) Info() ToolInfo {
	return ToolInfo{
		Name:        ToolNameReadFile,
		Description: strings.TrimSpace(descriptionReadFile),
		Parameters: map[string]any{
			"path": map[string]any{
				"type":        "string",
				"description": "The path of the file to read",
			},
			"page": map[string]any{
				"type":        "integer",
				"description": "1-based page of 100 lines to return (default 1)",
			},
		},
		Required: []string{"path"},
	}
}

func (t *toolReadFile) Run(ctx context.Context, call ToolCall) ToolResult {
	var params ParamsReadFile
	if err := json.Unmarshal([]byte(call.Input), &params); err != nil {
		return errorResult(call, fmt.Sprintf("error parsing parameters: %s", err), err)
	}
	if strings.TrimSpace(params.Path) == "" {
		return errorResult(call, "path is required", nil)
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	f, err := textfile.Load(params.Path)
	if err != nil {
		return errorResult(call, err.Error(), err)
	}

	var lines []string
	if f.Content != "" {
		lines = strings.Split(strings.TrimSuffix(f.Content, "\n"), "\n")
	}
	totalPages := (len(lines) + ReadFilePageLines - 1) / ReadFilePageLines
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		return errorResult(call, fmt.Sprintf("page %d is out of range: %s has %d line(s), %d page(s)",
			page, params.Path, len(lines), totalPages), nil)
	}

	lo := (page - 1) * ReadFilePageLines
	hi := lo + ReadFilePageLines
	if hi > len(lines) {
		hi = len(lines)
	}

	logger().Debug().Str("tool", ToolNameReadFile).Str("path", params.Path).Int("page", page).Msg("read")

	var b strings.Builder
	fmt.Fprintf(&b, "%s: lines %d-%d of %d (page %d/%d)\n", params.Path, lo+1, hi, len(lines), page, totalPages)
	b.WriteString(hashline.FormatLines(lines[lo:hi], lo))
	return okResult(call, b.String())
}
