// Package resources implements the Yardstick MCP resource handlers.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (yardstick://...) following MCP conventions.
package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/yardstick/internal/history"
	"github.com/HendryAvila/yardstick/internal/pipeline"
)

// Resource URIs.
const (
	FrameworksURI    = "yardstick://frameworks"
	LatestHistoryURI = "yardstick://history/latest"
)

// Handler manages Yardstick resource endpoints.
type Handler struct {
	store *history.Store
}

// NewHandler creates a resource Handler. store may be nil when history
// is unavailable; the history resource then reports an error text.
func NewHandler(store *history.Store) *Handler {
	return &Handler{store: store}
}

// FrameworksResource returns the MCP resource definition for the
// framework scoring tables.
func (h *Handler) FrameworksResource() mcp.Resource {
	return mcp.NewResource(
		FrameworksURI,
		"Ethical Frameworks",
		mcp.WithResourceDescription("The five ethical frameworks with their scoring rules, concern keywords and recommendations"),
		mcp.WithMIMEType(mimeJSON),
	)
}

// HandleFrameworks returns the framework tables as JSON.
func (h *Handler) HandleFrameworks(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, pipeline.Frameworks())
}

// LatestResource returns the MCP resource definition for the most
// recent saved evaluation.
func (h *Handler) LatestResource() mcp.Resource {
	return mcp.NewResource(
		LatestHistoryURI,
		"Most Recent Evaluation",
		mcp.WithResourceDescription("The most recently saved evaluation: input, report and timestamp"),
		mcp.WithMIMEType(mimeJSON),
	)
}

// HandleLatest returns the latest history entry as JSON.
func (h *Handler) HandleLatest(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	if h.store == nil {
		return errorResource(req.Params.URI, "evaluation history is disabled"), nil
	}
	e, err := h.store.Latest()
	if errors.Is(err, history.ErrNotFound) {
		return errorResource(req.Params.URI, "no saved evaluations yet"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading latest evaluation: %w", err)
	}
	return jsonResource(req.Params.URI, e)
}
