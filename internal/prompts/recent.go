package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// RecentPrompt handles the yardstick-recent MCP prompt.
// It instructs the AI to summarize the saved evaluation history.
type RecentPrompt struct{}

// NewRecentPrompt creates a RecentPrompt.
func NewRecentPrompt() *RecentPrompt {
	return &RecentPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *RecentPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("yardstick-recent",
		mcp.WithPromptDescription(
			"Summarize recent ethical evaluations: scores, risk levels "+
				"and recurring concerns across saved reviews.",
		),
	)
}

// Handle processes the yardstick-recent prompt request.
func (p *RecentPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Yardstick Recent Evaluations",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `yardstick_stats` and `yardstick_history` to see my saved evaluations.\n\n" +
						"Then:\n" +
						"1. Summarize how many evaluations I have and the average score\n" +
						"2. Point out any high-risk or concerning evaluations\n" +
						"3. Open the most recent one with `yardstick_history` and its id, and recap its key recommendations\n" +
						"4. Call out concerns that recur across evaluations",
				),
			},
		},
	}, nil
}
