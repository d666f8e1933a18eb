package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/yardstick/internal/pipeline"
)

// FrameworksTool handles the yardstick_frameworks MCP tool.
// It describes the scoring tables so hosts can explain a score.
type FrameworksTool struct{}

// NewFrameworksTool creates a FrameworksTool.
func NewFrameworksTool() *FrameworksTool {
	return &FrameworksTool{}
}

// Definition returns the MCP tool definition for yardstick_frameworks.
func (t *FrameworksTool) Definition() mcp.Tool {
	return mcp.NewTool("yardstick_frameworks",
		mcp.WithDescription(
			"Describe the five ethical frameworks and the keyword rules that move each score "+
				"up or down from the base score of 3.",
		),
		mcp.WithString("framework",
			mcp.Description("Show only this framework (case-insensitive name)"),
		),
	)
}

// Handle processes the yardstick_frameworks tool call.
func (t *FrameworksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := strings.TrimSpace(req.GetString("framework", ""))

	var sb strings.Builder
	sb.WriteString("## Ethical Frameworks\n\n")
	sb.WriteString(fmt.Sprintf("Every framework starts at %d and is clamped to %d–%d. "+
		"Each rule applies at most once.\n", pipeline.BaseScore, pipeline.MinScore, pipeline.MaxScore))

	found := false
	for _, f := range pipeline.Frameworks() {
		if filter != "" && !strings.EqualFold(filter, string(f.Name)) {
			continue
		}
		found = true
		writeFramework(&sb, f)
	}
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("unknown framework %q", filter)), nil
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func writeFramework(sb *strings.Builder, f pipeline.Framework) {
	sb.WriteString(fmt.Sprintf("\n### %s\n\n", f.Name))
	for _, r := range f.Rules {
		sb.WriteString(fmt.Sprintf("- %+d `%s`\n", r.Delta, r.Label))
	}
	sb.WriteString("\n**Concern keywords:** ")
	keywords := make([]string, len(f.Concerns))
	for i, c := range f.Concerns {
		keywords[i] = "`" + c.Keyword + "`"
	}
	sb.WriteString(strings.Join(keywords, ", "))
	sb.WriteString("\n")
}
