package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/yardstick/internal/history"
	"github.com/HendryAvila/yardstick/internal/pipeline"
)

// riskOrder is the display order for per-risk counts.
var riskOrder = []pipeline.RiskLevel{
	pipeline.RiskLow, pipeline.RiskMedium, pipeline.RiskConcerning, pipeline.RiskHigh,
}

// StatsTool handles the yardstick_stats MCP tool.
type StatsTool struct {
	store *history.Store
	cache *pipeline.Cache
}

// NewStatsTool creates a StatsTool. cache may be nil.
func NewStatsTool(store *history.Store, cache *pipeline.Cache) *StatsTool {
	return &StatsTool{store: store, cache: cache}
}

// Definition returns the MCP tool definition for yardstick_stats.
func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("yardstick_stats",
		mcp.WithDescription(
			"Show evaluation statistics: saved evaluations, average overall score, counts per risk level and cache usage.",
		),
	)
}

// Handle processes the yardstick_stats tool call.
func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := t.store.Stats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get stats: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("## Evaluation Statistics\n\n")
	sb.WriteString(fmt.Sprintf("- **Evaluations**: %d\n", stats.Total))
	if stats.Total > 0 {
		sb.WriteString(fmt.Sprintf("- **Average score**: %.2f\n", stats.AverageScore))
		for _, level := range riskOrder {
			sb.WriteString(fmt.Sprintf("- **%s risk**: %d\n", level, stats.ByRisk[level]))
		}
	}

	cs := t.cache.Stats()
	sb.WriteString(fmt.Sprintf("- **Cache**: %d hits, %d misses, %d entries\n", cs.Hits, cs.Misses, cs.Entries))

	return mcp.NewToolResultText(sb.String()), nil
}
