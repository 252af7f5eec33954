// Package tools wires the MCP tool surface: schema definitions, argument
// decoding, and the per-tool orchestration of identifier normalization,
// query building, the request gateway, and response formatting. Every
// failure becomes a one-line textual result; no error crosses the tool
// boundary as a protocol fault.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/helixir/openalex-mcp/internal/config"
	"github.com/helixir/openalex-mcp/internal/observability"
	"github.com/helixir/openalex-mcp/internal/openalex"
	"github.com/helixir/openalex-mcp/internal/pdf"
)

// Handler owns the shared collaborators behind all eight tools.
type Handler struct {
	client     *openalex.Client
	downloader *pdf.Downloader
	cfg        *config.Config
	logger     zerolog.Logger
	metrics    *observability.Metrics
}

// New creates a Handler. The metrics argument may be nil.
func New(client *openalex.Client, downloader *pdf.Downloader, cfg *config.Config, logger zerolog.Logger, metrics *observability.Metrics) *Handler {
	return &Handler{
		client:     client,
		downloader: downloader,
		cfg:        cfg,
		logger:     logger,
		metrics:    metrics,
	}
}

// Register adds all tools to the MCP server.
func (h *Handler) Register(s *server.MCPServer) {
	register := func(name, description, schema string, fn toolFunc) {
		s.AddTool(
			mcp.NewToolWithRawSchema(name, description, json.RawMessage(schema)),
			h.wrap(name, fn),
		)
	}

	register("search_works",
		"Search for scholarly works (papers, articles, books) in OpenAlex",
		searchWorksSchema, h.searchWorks)
	register("search_authors",
		"Search for authors/researchers in OpenAlex",
		searchAuthorsSchema, h.searchAuthors)
	register("search_institutions",
		"Search for academic institutions in OpenAlex",
		searchInstitutionsSchema, h.searchInstitutions)
	register("search_sources",
		"Search for journals, conferences, and other publication venues in OpenAlex",
		searchSourcesSchema, h.searchSources)
	register("get_work_details",
		"Get detailed information about a specific work by its OpenAlex ID or DOI",
		getWorkDetailsSchema, h.getWorkDetails)
	register("get_author_profile",
		"Get detailed profile information about a specific author by their OpenAlex ID or ORCID",
		getAuthorProfileSchema, h.getAuthorProfile)
	register("get_citations",
		"Get works that cite a specific work, useful for citation analysis",
		getCitationsSchema, h.getCitations)
	register("download_paper",
		"Download a paper's PDF if available through open access",
		downloadPaperSchema, h.downloadPaper)
}

// toolFunc is the shape of one tool's orchestration: arguments in, exactly
// one text payload out.
type toolFunc func(ctx context.Context, logger zerolog.Logger, args map[string]any) string

// wrap adapts a toolFunc to the MCP handler signature, attaching a per-call
// request ID to the log context and recording invocation metrics.
func (h *Handler) wrap(name string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		logger := observability.WithToolContext(h.logger, name, uuid.NewString())
		if h.metrics != nil {
			h.metrics.ToolCallsTotal.WithLabelValues(name).Inc()
		}
		logger.Debug().Msg("tool invoked")

		text := fn(ctx, logger, req.GetArguments())

		if h.metrics != nil {
			h.metrics.ToolDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		}
		return mcp.NewToolResultText(text), nil
	}
}

// errorText converts a gateway failure into the tool's textual error
// result and records it.
func (h *Handler) errorText(logger zerolog.Logger, tool, doing string, err error) string {
	logger.Error().Err(err).Msg("tool failed")
	if h.metrics != nil {
		h.metrics.ToolErrorsTotal.WithLabelValues(tool).Inc()
	}
	return fmt.Sprintf("Error %s: %v", doing, err)
}

// strArg extracts an optional string argument.
func strArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// intArg extracts an optional integer argument. JSON numbers decode as
// float64, so both representations are accepted.
func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return 0
}

// boolArg extracts an optional boolean argument.
func boolArg(args map[string]any, key string) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return false
}
