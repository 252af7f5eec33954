package query

import "strings"

const (
	// doiPrefix is the URL prefix that OpenAlex uses for DOIs.
	doiPrefix = "https://doi.org/"

	// orcidPrefix is the URL prefix for ORCID identifiers.
	orcidPrefix = "https://orcid.org/"

	// openAlexPrefix is the URL prefix for OpenAlex IDs.
	openAlexPrefix = "https://openalex.org/"
)

// NormalizeWorkID rewrites a user-supplied work reference into a form the
// API accepts: a bare DOI gains the DOI URI prefix, an already-qualified
// reference passes through, anything else is assumed to be a bare OpenAlex
// ID and gains the W prefix. Only the format is disambiguated; a garbled ID
// passes through and surfaces as an upstream not-found.
func NormalizeWorkID(raw string) string {
	switch {
	case strings.HasPrefix(raw, "10."):
		return doiPrefix + raw
	case strings.HasPrefix(raw, "W"),
		strings.HasPrefix(raw, openAlexPrefix+"W"),
		strings.HasPrefix(raw, doiPrefix):
		return raw
	default:
		return "W" + raw
	}
}

// NormalizeAuthorID rewrites a user-supplied author reference: a bare ORCID
// gains the ORCID URI prefix, an already-qualified reference passes
// through, anything else gains the A prefix.
func NormalizeAuthorID(raw string) string {
	switch {
	case strings.HasPrefix(raw, "0000-"):
		return orcidPrefix + raw
	case strings.HasPrefix(raw, "A"),
		strings.HasPrefix(raw, openAlexPrefix+"A"),
		strings.HasPrefix(raw, orcidPrefix):
		return raw
	default:
		return "A" + raw
	}
}
