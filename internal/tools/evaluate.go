package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/HendryAvila/yardstick/internal/logging"
	"github.com/HendryAvila/yardstick/internal/pipeline"
	"github.com/HendryAvila/yardstick/internal/render"
)

// EvaluateTool handles the yardstick_evaluate MCP tool.
// It scores a scenario and its planned response and optionally records
// the result to history.
type EvaluateTool struct {
	cache    *pipeline.Cache
	recorder Recorder
	log      *zap.Logger
}

// NewEvaluateTool creates an EvaluateTool. A nil cache evaluates every
// call directly.
func NewEvaluateTool(cache *pipeline.Cache) *EvaluateTool {
	return &EvaluateTool{cache: cache, log: logging.New("tools.evaluate")}
}

// SetRecorder wires an optional history recorder.
func (t *EvaluateTool) SetRecorder(r Recorder) {
	t.recorder = r
}

// Definition returns the MCP tool definition for registration.
func (t *EvaluateTool) Definition() mcp.Tool {
	return mcp.NewTool("yardstick_evaluate",
		mcp.WithDescription(
			"Evaluate a use case and its planned implementation against five ethical frameworks "+
				"(Justice & Equity, Transparency & Trust, Accountability, Respect for Persons, "+
				"Non-Maleficence). Returns per-framework scores from 0 to 5, concerns, an overall "+
				"score, a risk level and up to 7 prioritized recommendations.",
		),
		mcp.WithString("scenario",
			mcp.Required(),
			mcp.Description("The use case or situation being evaluated"),
		),
		mcp.WithString("response",
			mcp.Description("The planned response or implementation approach (optional)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: markdown (default) or json"),
			mcp.Enum(formatMarkdown, formatJSON),
		),
		mcp.WithBoolean("save",
			mcp.Description("Record the evaluation to history (default: true)"),
		),
	)
}

// Handle processes the yardstick_evaluate tool call.
func (t *EvaluateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := pipeline.Input{
		Scenario: req.GetString("scenario", ""),
		Response: req.GetString("response", ""),
	}
	if strings.TrimSpace(in.Scenario) == "" {
		return mcp.NewToolResultError("'scenario' is required"), nil
	}

	format := strings.ToLower(strings.TrimSpace(req.GetString("format", formatMarkdown)))
	if format != formatMarkdown && format != formatJSON {
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q: use markdown or json", format)), nil
	}

	report, err := t.cache.Evaluate(in.Scenario, in.Response)
	if errors.Is(err, pipeline.ErrInvalidInput) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("evaluating scenario: %w", err)
	}

	var entryID string
	if req.GetBool("save", true) {
		if e := record(t.recorder, t.log, in, report); e != nil {
			entryID = e.ID
		}
	}

	if format == formatJSON {
		return jsonResult(report)
	}

	md, err := render.Markdown(in, report)
	if err != nil {
		return nil, err
	}
	if entryID != "" {
		md += fmt.Sprintf("\n---\n\n_Saved to history as `%s`._\n", entryID)
	}
	return mcp.NewToolResultText(md), nil
}
