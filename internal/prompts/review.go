// Package prompts implements the Yardstick MCP prompt handlers.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to run a specific sequence of tool calls.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the yardstick-review MCP prompt.
// It guides the AI to gather a scenario and planned response, evaluate
// them and walk the user through the result.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("yardstick-review",
		mcp.WithPromptDescription(
			"Run an ethical review of a use case. "+
				"Collects the scenario and planned implementation, scores them against "+
				"five ethical frameworks and explains the top recommendations.",
		),
		mcp.WithArgument("scenario",
			mcp.ArgumentDescription("The use case or situation to review"),
		),
		mcp.WithArgument("response",
			mcp.ArgumentDescription("The planned response or implementation approach"),
		),
	)
}

// Handle processes the yardstick-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	scenario := argument(req, "scenario")
	response := argument(req, "response")

	var sb strings.Builder
	sb.WriteString("I want an ethical review of ")
	if scenario == "" {
		sb.WriteString("a use case.\n\n" +
			"First, ask me to describe:\n" +
			"1. The scenario: who is affected and what the system does\n" +
			"2. How I plan to implement or respond to it (optional)\n\n" +
			"Then call")
	} else {
		sb.WriteString(fmt.Sprintf("this use case.\n\n**Scenario:** %s\n", scenario))
		if response != "" {
			sb.WriteString(fmt.Sprintf("**Planned response:** %s\n", response))
		}
		sb.WriteString("\nCall")
	}
	sb.WriteString(" `yardstick_evaluate` with the scenario and response.\n\n" +
		"When presenting the result:\n" +
		"1. Lead with the overall score, interpretation and risk level\n" +
		"2. Name the weakest frameworks and the concerns behind them\n" +
		"3. Walk me through the key recommendations in order\n" +
		"4. Suggest concrete changes to my plan that would raise the weakest scores, " +
		"and offer to re-evaluate the revised plan")

	return &mcp.GetPromptResult{
		Description: "Yardstick Ethical Review",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(sb.String()),
			},
		},
	}, nil
}

// argument returns a trimmed prompt argument, or "" when absent.
func argument(req mcp.GetPromptRequest, name string) string {
	if args := req.Params.Arguments; args != nil {
		return strings.TrimSpace(args[name])
	}
	return ""
}
