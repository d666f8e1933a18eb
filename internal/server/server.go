// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates the concrete cache and history
// store and injects them into the tools, prompts and resources that use
// them. No scoring logic lives here, only wiring.
package server

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/HendryAvila/yardstick/internal/config"
	"github.com/HendryAvila/yardstick/internal/history"
	"github.com/HendryAvila/yardstick/internal/pipeline"
	"github.com/HendryAvila/yardstick/internal/prompts"
	"github.com/HendryAvila/yardstick/internal/resources"
	"github.com/HendryAvila/yardstick/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// openHistory is a package-level var so tests can force a history failure.
var openHistory = history.New

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the history database and must be
// called on shutdown (typically via defer). It is always non-nil and
// safe to call even if history init failed.
func New(cfg config.Config, log *zap.Logger) (*server.MCPServer, func(), error) {
	if log == nil {
		log = zap.NewNop()
	}

	// --- Create shared dependencies ---

	cache := pipeline.NewCache(cfg.CacheSize)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"yardstick",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	// --- Register scoring tools ---

	evaluateTool := tools.NewEvaluateTool(cache)
	s.AddTool(evaluateTool.Definition(), evaluateTool.Handle)

	frameworksTool := tools.NewFrameworksTool()
	s.AddTool(frameworksTool.Definition(), frameworksTool.Handle)

	// --- Register history tools ---
	//
	// History is an independent subsystem: if it fails to open, the
	// scoring tools keep working and history tools are not registered.

	cleanup := noop
	store, err := openHistory(history.Config{DataDir: cfg.DataDir, DefaultLimit: cfg.HistoryLimit})
	if err != nil {
		log.Warn("history disabled", zap.String("data_dir", cfg.DataDir), zap.Error(err))
	} else {
		cleanup = func() {
			if err := store.Close(); err != nil {
				log.Warn("history close", zap.Error(err))
			}
		}
		evaluateTool.SetRecorder(store)

		historyTool := tools.NewHistoryTool(store)
		s.AddTool(historyTool.Definition(), historyTool.Handle)

		statsTool := tools.NewStatsTool(store, cache)
		s.AddTool(statsTool.Definition(), statsTool.Handle)
	}

	// --- Register prompts ---

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	if store != nil {
		recentPrompt := prompts.NewRecentPrompt()
		s.AddPrompt(recentPrompt.Definition(), recentPrompt.Handle)
	}

	// --- Register resources ---

	resourceHandler := resources.NewHandler(store)
	s.AddResource(resourceHandler.FrameworksResource(), resourceHandler.HandleFrameworks)
	s.AddResource(resourceHandler.LatestResource(), resourceHandler.HandleLatest)

	log.Info("server ready",
		zap.String("version", Version),
		zap.Bool("history", store != nil),
		zap.Int("cache_size", cfg.CacheSize),
	)
	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when history
// is disabled.
func noop() {}

// serverInstructions tells the AI how to use Yardstick.
const serverInstructions = `You have access to Yardstick, an ethical review MCP server.

## WHEN TO USE Yardstick

Suggest an ethical review when the user:
- Plans a system that makes or supports decisions about people
- Works in healthcare, hiring, lending, policing, education or with children
- Collects personal, biometric or location data
- Automates something a human used to decide

## How scoring works
yardstick_evaluate scores the scenario and planned response against five
frameworks: Justice & Equity, Transparency & Trust, Accountability,
Respect for Persons and Non-Maleficence. Each starts at 3 and moves with
keyword rules, clamped to 0-5. The overall score is their mean:
- 4.5 and above: Extremely Ethical (low risk)
- 3.5 and above: Mostly Ethical (medium risk)
- 2.0 and above: Ethically Concerning
- below 2.0: Not Ethical at All (high risk)

Scoring is keyword based. Describe the scenario and the safeguards in
plain words: mention consent, oversight, audits and transparency when
they are part of the plan, so the score reflects them.

## Workflow
1. Ask the user for the scenario and how they plan to implement it
2. Call yardstick_evaluate with both
3. Present the overall score, the weakest frameworks and the key
   recommendations in order
4. Help the user revise the plan and evaluate again
5. Use yardstick_frameworks to explain why a score moved
6. Use yardstick_history and yardstick_stats to review past evaluations

NEVER present the score as a final verdict. It is a yardstick for
discussion, not a substitute for human ethical review.`
