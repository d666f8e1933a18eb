package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/yardstick/internal/history"
	"github.com/HendryAvila/yardstick/internal/render"
)

// HistoryTool handles the yardstick_history MCP tool.
type HistoryTool struct {
	store *history.Store
}

// NewHistoryTool creates a HistoryTool with the given history store.
func NewHistoryTool(store *history.Store) *HistoryTool {
	return &HistoryTool{store: store}
}

// Definition returns the MCP tool definition for yardstick_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("yardstick_history",
		mcp.WithDescription(
			"List saved evaluations, newest first. Pass an id to show one saved report in full.",
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to list (default: configured history limit)"),
			mcp.Min(1),
			mcp.Max(maxHistoryLimit),
		),
		mcp.WithString("id",
			mcp.Description("Entry ID to show in full instead of listing"),
		),
	)
}

// Handle processes the yardstick_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if id := strings.TrimSpace(req.GetString("id", "")); id != "" {
		return t.show(id)
	}

	entries, err := t.store.Recent(limitArg(req, "limit", maxHistoryLimit))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list history: %v", err)), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("No saved evaluations yet."), nil
	}

	now := timeNow()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Recent Evaluations (%d)\n\n", len(entries)))
	for _, e := range entries {
		sb.WriteString("- `")
		sb.WriteString(render.HistoryLine(e, now))
		sb.WriteString("`\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (t *HistoryTool) show(id string) (*mcp.CallToolResult, error) {
	e, err := t.store.Get(id)
	if errors.Is(err, history.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("no saved evaluation with id %q", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load evaluation: %v", err)), nil
	}

	md, err := render.Markdown(e.Input, e.Report)
	if err != nil {
		return nil, err
	}
	header := fmt.Sprintf("_Saved %s (`%s`)_\n\n", e.CreatedAt.Format("2006-01-02 15:04 MST"), e.ID)
	return mcp.NewToolResultText(header + md), nil
}
