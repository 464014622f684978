// Package edittools exposes the edit engine as LLM-callable tools: read_file
// (anchored listing), edit_file (apply an edit batch), and grep_file (anchored
// search). The types mirror the usual function-calling tool shape so the
// package can be dropped behind any streaming layer.
package edittools

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// ToolInfo describes a tool to the model. Parameters maps argument name to a
// JSON-schema-ish object ({"type": ..., "description": ...}); Required lists
// the mandatory keys.
type ToolInfo struct {
	Name        string
	Description string
	Parameters  map[string]any
	Required    []string
}

// ToolCall is one invocation: Input is the JSON-serialized parameters.
type ToolCall struct {
	CallID string
	Name   string
	Input  string
}

// ToolResult is the outcome of a ToolCall. On IsError, Result holds a message
// for the model; SourceErr optionally carries the underlying Go error for
// internal use and is never sent to the model.
type ToolResult struct {
	CallID    string
	Name      string
	Result    string
	IsError   bool
	SourceErr error
}

// Tool is one callable tool.
type Tool interface {
	Name() string
	Info() ToolInfo
	Run(ctx context.Context, call ToolCall) ToolResult
}

// All returns every tool in this package.
func All() []Tool {
	return []Tool{NewReadFileTool(), NewEditFileTool(), NewGrepFileTool()}
}

func errorResult(call ToolCall, msg string, src error) ToolResult {
	return ToolResult{CallID: call.CallID, Name: call.Name, Result: msg, IsError: true, SourceErr: src}
}

func okResult(call ToolCall, body string) ToolResult {
	return ToolResult{CallID: call.CallID, Name: call.Name, Result: body}
}

var (
	logOnce sync.Once
	log     zerolog.Logger
)

// logger returns the package logger. It writes to the file named by
// ANCHOREDIT_LOG_FILE; when that is unset or unopenable, logging is a no-op.
func logger() *zerolog.Logger {
	logOnce.Do(func() {
		log = zerolog.Nop()
		path := os.Getenv("ANCHOREDIT_LOG_FILE")
		if path == "" {
			return
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		log = zerolog.New(f).With().Timestamp().Logger()
	})
	return &log
}
