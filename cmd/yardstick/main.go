// Yardstick: ethical review of AI and software use cases.
//
// Scores a scenario and its planned implementation against five ethical
// frameworks and produces prioritized recommendations, either as an MCP
// server for AI coding tools or directly from the command line.
//
// Usage:
//
//	yardstick serve                            # Start MCP server (stdio transport)
//	yardstick evaluate --scenario "..."        # Evaluate one use case
//	yardstick batch cases.yaml                 # Evaluate many use cases
//	yardstick history [id]                     # List or show saved evaluations
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
