// Package tools implements the Yardstick MCP tool handlers.
//
// Each tool is a struct holding its dependencies, injected through its
// constructor. Definition returns the mcp.Tool schema and Handle serves
// a call. Invalid arguments come back as tool errors, never Go errors.
package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// maxHistoryLimit caps how many entries one yardstick_history call lists.
const maxHistoryLimit = 100

// Output formats accepted by yardstick_evaluate.
const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

// limitArg reads a positive count argument capped at max. It returns 0
// when the key is missing, not a number, or below 1, so callers fall back
// to their own default.
func limitArg(req mcp.CallToolRequest, key string, max int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok || math.IsNaN(v) || v < 1 {
		return 0
	}
	if v >= float64(max) {
		return max
	}
	return int(v)
}

// jsonResult marshals v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
