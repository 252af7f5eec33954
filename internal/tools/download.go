package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/helixir/openalex-mcp/internal/openalex"
	"github.com/helixir/openalex-mcp/internal/pdf"
	"github.com/helixir/openalex-mcp/internal/query"
)

func (h *Handler) downloadPaper(ctx context.Context, logger zerolog.Logger, args map[string]any) string {
	id := query.NormalizeWorkID(strArg(args, "work_id"))

	work, err := h.client.GetWork(ctx, id)
	if err != nil {
		var nf *openalex.NotFoundError
		if errors.As(err, &nf) {
			logger.Warn().Str("work_id", id).Msg("work not found")
			return nf.Error()
		}
		return h.errorText(logger, "download_paper", "downloading paper", err)
	}

	outputDir := strArg(args, "output_path")
	if outputDir == "" {
		outputDir = h.cfg.Download.OutputDir
	}
	outcome := h.downloader.Download(ctx, work, outputDir, strArg(args, "filename"))

	switch outcome.State {
	case pdf.StateSaved:
		return fmt.Sprintf("Successfully downloaded: %s\nFile: %s\nSize: %.2f MB\nSource: %s",
			outcome.Title, outcome.Path, outcome.SizeMB(), outcome.SourceURL)
	case pdf.StateNoPDF:
		return fmt.Sprintf("No open access PDF available for: %s\nThis paper may be behind a paywall or not available in PDF format.",
			outcome.Title)
	default:
		if h.metrics != nil {
			h.metrics.ToolErrorsTotal.WithLabelValues("download_paper").Inc()
		}
		logger.Error().Err(outcome.Err).Str("url", outcome.SourceURL).Msg("download failed")
		return fmt.Sprintf("Failed to download PDF for: %s\nURL: %s\nCheck logs for detailed error information.",
			outcome.Title, outcome.SourceURL)
	}
}
