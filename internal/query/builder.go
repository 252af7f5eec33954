// Package query translates tool arguments into the OpenAlex query grammar:
// search strings, filter expressions, sort keys, and pagination. It also
// normalizes user-supplied entity identifiers into canonical form.
package query

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Entity identifies which OpenAlex collection a query targets.
type Entity string

// Query target collections.
const (
	EntityWorks        Entity = "works"
	EntityAuthors      Entity = "authors"
	EntityInstitutions Entity = "institutions"
	EntitySources      Entity = "sources"
)

// Tool-level result limits and defaults.
const (
	// MaxToolLimit caps how many results a single tool call may request.
	MaxToolLimit = 50
	// DefaultSearchLimit is the default result count for search tools.
	DefaultSearchLimit = 10
	// DefaultCitationsLimit is the default result count for get_citations.
	DefaultCitationsLimit = 20
)

// Spec is a fully-built query against one entity collection. Filter keys
// are unique; their rendered order is deterministic regardless of map
// iteration order.
type Spec struct {
	Entity  Entity
	Search  string
	Filters map[string]string
	Sort    string
	Page    int
	PerPage int
	Select  []string
}

// Values renders the spec as request query parameters. The page defaults
// to 1 and per_page is clamped into [1, maxPerPage]. Filters are joined as
// comma-separated key:value pairs in sorted key order.
func (s Spec) Values(maxPerPage int) url.Values {
	v := url.Values{}

	page := s.Page
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))

	perPage := s.PerPage
	if perPage < 1 {
		perPage = 1
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	v.Set("per_page", strconv.Itoa(perPage))

	if s.Search != "" {
		v.Set("search", s.Search)
	}
	if s.Sort != "" {
		v.Set("sort", s.Sort)
	}
	if len(s.Select) > 0 {
		v.Set("select", strings.Join(s.Select, ","))
	}
	if len(s.Filters) > 0 {
		keys := make([]string, 0, len(s.Filters))
		for key := range s.Filters {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, key+":"+s.Filters[key])
		}
		v.Set("filter", strings.Join(parts, ","))
	}

	return v
}

// WorksArgs are the search_works tool arguments.
type WorksArgs struct {
	Query      string
	Author     string
	YearFrom   int
	YearTo     int
	Venue      string
	Topic      string
	OpenAccess bool
	Sort       string
	Limit      int
}

// Works builds a works search query. Year handling has three cases: both
// bounds present produce a closed date-range filter pair, a single bound
// produces a one-sided publication_year comparison, and neither produces
// no year filter at all. The default sort is empty, leaving ranking to
// upstream relevance.
func Works(args WorksArgs) Spec {
	filters := map[string]string{}

	if args.Author != "" {
		filters["raw_author_name.search"] = args.Author
	}

	switch {
	case args.YearFrom != 0 && args.YearTo != 0:
		filters["from_publication_date"] = fmt.Sprintf("%d-01-01", args.YearFrom)
		filters["to_publication_date"] = fmt.Sprintf("%d-12-31", args.YearTo)
	case args.YearFrom != 0:
		filters["publication_year"] = fmt.Sprintf(">=%d", args.YearFrom)
	case args.YearTo != 0:
		filters["publication_year"] = fmt.Sprintf("<=%d", args.YearTo)
	}

	if args.Venue != "" {
		filters["primary_location.source.display_name.search"] = args.Venue
	}
	if args.Topic != "" {
		filters["topics.display_name.search"] = args.Topic
	}
	if args.OpenAccess {
		filters["is_oa"] = "true"
	}

	return Spec{
		Entity:  EntityWorks,
		Search:  args.Query,
		Filters: filters,
		Sort:    args.Sort,
		Page:    1,
		PerPage: clampLimit(args.Limit, DefaultSearchLimit),
	}
}

// AuthorsArgs are the search_authors tool arguments.
type AuthorsArgs struct {
	Query         string
	Institution   string
	Topic         string
	HIndexMin     int
	WorksCountMin int
	Sort          string
	Limit         int
}

// Authors builds an authors search query. The default sort is
// cited_by_count.
func Authors(args AuthorsArgs) Spec {
	filters := map[string]string{}

	if args.Institution != "" {
		filters["last_known_institution.display_name.search"] = args.Institution
	}
	if args.Topic != "" {
		filters["topics.display_name.search"] = args.Topic
	}
	if args.HIndexMin > 0 {
		filters["h_index"] = fmt.Sprintf(">=%d", args.HIndexMin)
	}
	if args.WorksCountMin > 0 {
		filters["works_count"] = fmt.Sprintf(">=%d", args.WorksCountMin)
	}

	return Spec{
		Entity:  EntityAuthors,
		Search:  args.Query,
		Filters: filters,
		Sort:    defaultSort(args.Sort, "cited_by_count"),
		Page:    1,
		PerPage: clampLimit(args.Limit, DefaultSearchLimit),
	}
}

// InstitutionsArgs are the search_institutions tool arguments.
type InstitutionsArgs struct {
	Query         string
	Country       string
	Type          string
	WorksCountMin int
	Sort          string
	Limit         int
}

// Institutions builds an institutions search query. The default sort is
// cited_by_count.
func Institutions(args InstitutionsArgs) Spec {
	filters := map[string]string{}

	if args.Country != "" {
		filters["country_code"] = args.Country
	}
	if args.Type != "" {
		filters["type"] = args.Type
	}
	if args.WorksCountMin > 0 {
		filters["works_count"] = fmt.Sprintf(">=%d", args.WorksCountMin)
	}

	return Spec{
		Entity:  EntityInstitutions,
		Search:  args.Query,
		Filters: filters,
		Sort:    defaultSort(args.Sort, "cited_by_count"),
		Page:    1,
		PerPage: clampLimit(args.Limit, DefaultSearchLimit),
	}
}

// SourcesArgs are the search_sources tool arguments.
type SourcesArgs struct {
	Query         string
	Type          string
	Publisher     string
	OpenAccess    bool
	WorksCountMin int
	Sort          string
	Limit         int
}

// Sources builds a sources search query. The default sort is
// cited_by_count.
func Sources(args SourcesArgs) Spec {
	filters := map[string]string{}

	if args.Type != "" {
		filters["type"] = args.Type
	}
	if args.Publisher != "" {
		filters["host_organization_name.search"] = args.Publisher
	}
	if args.OpenAccess {
		filters["is_oa"] = "true"
	}
	if args.WorksCountMin > 0 {
		filters["works_count"] = fmt.Sprintf(">=%d", args.WorksCountMin)
	}

	return Spec{
		Entity:  EntitySources,
		Search:  args.Query,
		Filters: filters,
		Sort:    defaultSort(args.Sort, "cited_by_count"),
		Page:    1,
		PerPage: clampLimit(args.Limit, DefaultSearchLimit),
	}
}

// Citations builds the query for works citing the given (already
// normalized) work identifier. The default sort is publication_date.
func Citations(workID, sortKey string, limit int) Spec {
	return Spec{
		Entity:  EntityWorks,
		Filters: map[string]string{"cites": workID},
		Sort:    defaultSort(sortKey, "publication_date"),
		Page:    1,
		PerPage: clampLimit(limit, DefaultCitationsLimit),
	}
}

// clampLimit applies the tool default and the tool-level maximum.
func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxToolLimit {
		return MaxToolLimit
	}
	return limit
}

// defaultSort returns the fallback when no sort key was supplied.
func defaultSort(sortKey, fallback string) string {
	if sortKey == "" {
		return fallback
	}
	return sortKey
}
