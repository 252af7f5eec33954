package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/helixir/openalex-mcp/internal/format"
	"github.com/helixir/openalex-mcp/internal/openalex"
	"github.com/helixir/openalex-mcp/internal/query"
)

func (h *Handler) getWorkDetails(ctx context.Context, logger zerolog.Logger, args map[string]any) string {
	id := query.NormalizeWorkID(strArg(args, "work_id"))

	work, err := h.client.GetWork(ctx, id)
	if err != nil {
		var nf *openalex.NotFoundError
		if errors.As(err, &nf) {
			logger.Warn().Str("work_id", id).Msg("work not found")
			return nf.Error()
		}
		return h.errorText(logger, "get_work_details", "getting work details", err)
	}
	return format.WorkDetails(work)
}

func (h *Handler) getAuthorProfile(ctx context.Context, logger zerolog.Logger, args map[string]any) string {
	id := query.NormalizeAuthorID(strArg(args, "author_id"))

	author, err := h.client.GetAuthor(ctx, id)
	if err != nil {
		var nf *openalex.NotFoundError
		if errors.As(err, &nf) {
			logger.Warn().Str("author_id", id).Msg("author not found")
			return nf.Error()
		}
		return h.errorText(logger, "get_author_profile", "getting author profile", err)
	}
	return format.AuthorProfile(author)
}

func (h *Handler) getCitations(ctx context.Context, logger zerolog.Logger, args map[string]any) string {
	id := query.NormalizeWorkID(strArg(args, "work_id"))
	spec := query.Citations(id, strArg(args, "sort"), intArg(args, "limit"))

	resp, err := h.client.ListWorks(ctx, spec.Values(h.cfg.OpenAlex.MaxPageSize))
	if err != nil {
		return h.errorText(logger, "get_citations", "getting citations", err)
	}
	if len(resp.Results) == 0 {
		return fmt.Sprintf("No citations found for work: %s", id)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d works citing %s:\n\n", totalCount(resp.Meta, len(resp.Results)), id)
	for i := range resp.Results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, format.WorkSummary(&resp.Results[i]))
	}
	return b.String()
}
