// Package observability provides logging and metrics support for the
// OpenAlex MCP server.
//
// # Logging
//
// Create a logger from configuration:
//
//	logger := observability.NewLogger(cfg.Logging)
//	logger.Info().Str("tool", "search_works").Msg("tool invoked")
//
// Log output defaults to stderr so the MCP JSON-RPC stream on stdout stays
// clean.
//
// # Metrics
//
// Initialize metrics once at startup:
//
//	metrics := observability.NewMetrics("openalex_mcp")
//	metrics.ToolCallsTotal.WithLabelValues("search_works").Inc()
package observability
