package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/helixir/openalex-mcp/internal/format"
	"github.com/helixir/openalex-mcp/internal/openalex"
	"github.com/helixir/openalex-mcp/internal/query"
)

func (h *Handler) searchWorks(ctx context.Context, logger zerolog.Logger, args map[string]any) string {
	a := query.WorksArgs{
		Query:      strArg(args, "query"),
		Author:     strArg(args, "author"),
		YearFrom:   intArg(args, "year_from"),
		YearTo:     intArg(args, "year_to"),
		Venue:      strArg(args, "venue"),
		Topic:      strArg(args, "topic"),
		OpenAccess: boolArg(args, "open_access"),
		Sort:       strArg(args, "sort"),
		Limit:      intArg(args, "limit"),
	}
	spec := query.Works(a)

	resp, err := h.client.ListWorks(ctx, spec.Values(h.cfg.OpenAlex.MaxPageSize))
	if err != nil {
		return h.errorText(logger, "search_works", "searching works", err)
	}
	if len(resp.Results) == 0 {
		return fmt.Sprintf("No works found for query: '%s'", a.Query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d works for '%s':\n\n", totalCount(resp.Meta, len(resp.Results)), a.Query)
	for i := range resp.Results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, format.WorkSummary(&resp.Results[i]))
	}
	appendGroupBy(&b, resp.GroupBy)
	return b.String()
}

func (h *Handler) searchAuthors(ctx context.Context, logger zerolog.Logger, args map[string]any) string {
	a := query.AuthorsArgs{
		Query:         strArg(args, "query"),
		Institution:   strArg(args, "institution"),
		Topic:         strArg(args, "topic"),
		HIndexMin:     intArg(args, "h_index_min"),
		WorksCountMin: intArg(args, "works_count_min"),
		Sort:          strArg(args, "sort"),
		Limit:         intArg(args, "limit"),
	}
	spec := query.Authors(a)

	resp, err := h.client.ListAuthors(ctx, spec.Values(h.cfg.OpenAlex.MaxPageSize))
	if err != nil {
		return h.errorText(logger, "search_authors", "searching authors", err)
	}
	if len(resp.Results) == 0 {
		return fmt.Sprintf("No authors found for query: '%s'", a.Query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d authors for '%s':\n\n", totalCount(resp.Meta, len(resp.Results)), a.Query)
	for i := range resp.Results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, format.AuthorSummary(&resp.Results[i]))
	}
	appendGroupBy(&b, resp.GroupBy)
	return b.String()
}

func (h *Handler) searchInstitutions(ctx context.Context, logger zerolog.Logger, args map[string]any) string {
	a := query.InstitutionsArgs{
		Query:         strArg(args, "query"),
		Country:       strArg(args, "country"),
		Type:          strArg(args, "institution_type"),
		WorksCountMin: intArg(args, "works_count_min"),
		Sort:          strArg(args, "sort"),
		Limit:         intArg(args, "limit"),
	}
	spec := query.Institutions(a)

	resp, err := h.client.ListInstitutions(ctx, spec.Values(h.cfg.OpenAlex.MaxPageSize))
	if err != nil {
		return h.errorText(logger, "search_institutions", "searching institutions", err)
	}
	if len(resp.Results) == 0 {
		return fmt.Sprintf("No institutions found for query: '%s'", a.Query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d institutions for '%s':\n\n", totalCount(resp.Meta, len(resp.Results)), a.Query)
	for i := range resp.Results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, format.InstitutionSummary(&resp.Results[i]))
	}
	appendGroupBy(&b, resp.GroupBy)
	return b.String()
}

func (h *Handler) searchSources(ctx context.Context, logger zerolog.Logger, args map[string]any) string {
	a := query.SourcesArgs{
		Query:         strArg(args, "query"),
		Type:          strArg(args, "source_type"),
		Publisher:     strArg(args, "publisher"),
		OpenAccess:    boolArg(args, "open_access"),
		WorksCountMin: intArg(args, "works_count_min"),
		Sort:          strArg(args, "sort"),
		Limit:         intArg(args, "limit"),
	}
	spec := query.Sources(a)

	resp, err := h.client.ListSources(ctx, spec.Values(h.cfg.OpenAlex.MaxPageSize))
	if err != nil {
		return h.errorText(logger, "search_sources", "searching sources", err)
	}
	if len(resp.Results) == 0 {
		return fmt.Sprintf("No sources found for query: '%s'", a.Query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d sources for '%s':\n\n", totalCount(resp.Meta, len(resp.Results)), a.Query)
	for i := range resp.Results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, format.SourceSummary(&resp.Results[i]))
	}
	appendGroupBy(&b, resp.GroupBy)
	return b.String()
}

// totalCount prefers the upstream total, falling back to the page size when
// the meta block is absent.
func totalCount(meta openalex.Meta, fallback int) int {
	if meta.Count > 0 {
		return meta.Count
	}
	return fallback
}

// appendGroupBy renders an aggregation breakdown when the response carries
// one. Keys stay opaque.
func appendGroupBy(b *strings.Builder, groups []openalex.GroupBy) {
	if len(groups) == 0 {
		return
	}
	b.WriteString("\nBreakdown:\n")
	for _, g := range groups {
		name := g.KeyDisplayName
		if name == "" {
			name = g.Key
		}
		fmt.Fprintf(b, "- %s: %d\n", name, g.Count)
	}
}
