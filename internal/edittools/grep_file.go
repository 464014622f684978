package edittools

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anchoredit/anchoredit/internal/filegrep"
	"github.com/anchoredit/anchoredit/internal/textfile"
)

//go:embed grep_file.md
var descriptionGrepFile string

const (
	ToolNameGrepFile = "grep_file"

	defaultGrepContext = 2
	maxGrepMatches     = 200
)

type ParamsGrepFile struct {
	Path    string `json:"path"`
	Pattern string `json:"pattern"`
	Context int    `json:"context"` // lines around each match; 0 means 2
}

type toolGrepFile struct{}

func NewGrepFileTool() Tool {
	return &toolGrepFile{}
}

func (t *toolGrepFile) Name() string {
	return ToolNameGrepFile
}

func (t *toolGrepFile) Info() ToolInfo {
	return ToolInfo{
		Name:        ToolNameGrepFile,
		Description: strings.TrimSpace(descriptionGrepFile),
		Parameters: map[string]any{
			"path": map[string]any{
				"type":        "string",
				"description": "The path of the file to search",
			},
			"pattern": map[string]any{
				"type":        "string",
				"description": "Go regular expression to search for",
			},
			"context": map[string]any{
				"type":        "integer",
				"description": "Context lines around each match (default 2)",
			},
		},
		Required: []string{"path", "pattern"},
	}
}

func (t *toolGrepFile) Run(ctx context.Context, call ToolCall) ToolResult {
	var params ParamsGrepFile
	if err := json.Unmarshal([]byte(call.Input), &params); err != nil {
		return errorResult(call, fmt.Sprintf("error parsing parameters: %s", err), err)
	}
	if strings.TrimSpace(params.Path) == "" {
		return errorResult(call, "path is required", nil)
	}
	if params.Pattern == "" {
		return errorResult(call, "pattern is required", nil)
	}
	contextLines := params.Context
	if contextLines <= 0 {
		contextLines = defaultGrepContext
	}

	f, err := textfile.Load(params.Path)
	if err != nil {
		return errorResult(call, err.Error(), err)
	}

	matches, err := filegrep.Search(f.Content, params.Pattern, maxGrepMatches)
	if err != nil {
		return errorResult(call, err.Error(), err)
	}

	logger().Debug().Str("tool", ToolNameGrepFile).Str("path", params.Path).
		Str("pattern", params.Pattern).Int("matches", len(matches)).Msg("grep")

	if len(matches) == 0 {
		return okResult(call, fmt.Sprintf("no matches for %q in %s", params.Pattern, params.Path))
	}
	header := fmt.Sprintf("%d match(es) for %q in %s", len(matches), params.Pattern, params.Path)
	if len(matches) == maxGrepMatches {
		header += fmt.Sprintf(" (stopped at %d)", maxGrepMatches)
	}
	return okResult(call, header+"\n"+filegrep.Render(f.Content, matches, contextLines))
}
