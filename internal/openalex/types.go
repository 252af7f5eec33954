// Package openalex provides the request gateway for the OpenAlex API.
//
// OpenAlex is a free, open catalog of scholarly works, authors, venues,
// institutions, and topics. This package owns all outbound HTTP to the API:
// listing entities, fetching single records, and downloading open-access
// PDF bytes, all behind one bounded-concurrency admission gate.
//
// API Documentation: https://docs.openalex.org/
package openalex

// Meta contains metadata about a list response including pagination info.
type Meta struct {
	Count   int `json:"count"`
	DBTime  int `json:"db_response_time_ms"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// GroupBy is one bucket of an aggregated (group_by) response.
// Keys are opaque; the server passes them through untouched.
type GroupBy struct {
	Key            string `json:"key"`
	KeyDisplayName string `json:"key_display_name"`
	Count          int    `json:"count"`
}

// WorksResponse is the response from the works list endpoint.
// Result order is exactly as returned by the upstream; it is never
// re-sorted locally.
type WorksResponse struct {
	Meta    Meta      `json:"meta"`
	Results []Work    `json:"results"`
	GroupBy []GroupBy `json:"group_by"`
}

// AuthorsResponse is the response from the authors list endpoint.
type AuthorsResponse struct {
	Meta    Meta      `json:"meta"`
	Results []Author  `json:"results"`
	GroupBy []GroupBy `json:"group_by"`
}

// InstitutionsResponse is the response from the institutions list endpoint.
type InstitutionsResponse struct {
	Meta    Meta          `json:"meta"`
	Results []Institution `json:"results"`
	GroupBy []GroupBy     `json:"group_by"`
}

// SourcesResponse is the response from the sources list endpoint.
type SourcesResponse struct {
	Meta    Meta      `json:"meta"`
	Results []Source  `json:"results"`
	GroupBy []GroupBy `json:"group_by"`
}

// Work represents a scholarly work (paper, article, book).
// Most fields are optional in the upstream record; absent fields decode to
// zero values and formatting applies documented fallbacks.
type Work struct {
	ID              string       `json:"id"`
	DOI             string       `json:"doi"`
	Title           string       `json:"title"`
	DisplayName     string       `json:"display_name"`
	PublicationYear int          `json:"publication_year"`
	PublicationDate string       `json:"publication_date"`
	Type            string       `json:"type"`
	CitedByCount    int          `json:"cited_by_count"`
	IsOA            bool         `json:"is_oa"`
	OpenAccess      *OpenAccess  `json:"open_access"`
	Authorships     []Authorship `json:"authorships"`
	Topics          []Topic      `json:"topics"`
	PrimaryLocation *Location    `json:"primary_location"`
	BestOALocation  *Location    `json:"best_oa_location"`
	Locations       []Location   `json:"locations"`
	ReferencedWorks []string     `json:"referenced_works"`

	// Abstract is stored as an inverted index mapping words to positions.
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
}

// OpenAccess contains open access information for a work.
type OpenAccess struct {
	IsOA     bool   `json:"is_oa"`
	OAURL    string `json:"oa_url"`
	OAStatus string `json:"oa_status"`
}

// Authorship represents one author's contribution to a work.
type Authorship struct {
	AuthorPosition string           `json:"author_position"`
	Author         *AuthorRef       `json:"author"`
	Institutions   []InstitutionRef `json:"institutions"`
}

// AuthorRef is the author reference embedded in an authorship.
type AuthorRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Orcid       string `json:"orcid"`
}

// InstitutionRef is a compact institution reference.
type InstitutionRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Topic is a classification label assigned to a work or author.
type Topic struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Location represents where a work is available.
type Location struct {
	Source  *SourceRef `json:"source"`
	PDFURL  string     `json:"pdf_url"`
	IsOA    bool       `json:"is_oa"`
	Version string     `json:"version"`
}

// SourceRef is the venue reference embedded in a location.
type SourceRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
}

// Author represents a researcher record.
type Author struct {
	ID                      string          `json:"id"`
	DisplayName             string          `json:"display_name"`
	Orcid                   string          `json:"orcid"`
	WorksCount              int             `json:"works_count"`
	CitedByCount            int             `json:"cited_by_count"`
	HIndex                  int             `json:"h_index"`
	LastKnownInstitution    *InstitutionRef `json:"last_known_institution"`
	Topics                  []Topic         `json:"topics"`
	CountsByYear            []YearCount     `json:"counts_by_year"`
	DisplayNameAlternatives []string        `json:"display_name_alternatives"`
}

// YearCount is one year of an author's publication/citation activity.
type YearCount struct {
	Year         int `json:"year"`
	WorksCount   int `json:"works_count"`
	CitedByCount int `json:"cited_by_count"`
}

// Institution represents an academic institution record.
type Institution struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	CountryCode  string `json:"country_code"`
	Type         string `json:"type"`
	WorksCount   int    `json:"works_count"`
	CitedByCount int    `json:"cited_by_count"`
	ROR          string `json:"ror"`
	HomepageURL  string `json:"homepage_url"`
}

// Source represents a publication venue record (journal, conference,
// repository).
type Source struct {
	ID                   string `json:"id"`
	DisplayName          string `json:"display_name"`
	Type                 string `json:"type"`
	ISSNL                string `json:"issn_l"`
	IsOA                 bool   `json:"is_oa"`
	WorksCount           int    `json:"works_count"`
	CitedByCount         int    `json:"cited_by_count"`
	HIndex               int    `json:"h_index"`
	HostOrganizationName string `json:"host_organization_name"`
}
