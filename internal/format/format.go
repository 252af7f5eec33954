// Package format renders OpenAlex records as fixed-shape, human-readable
// summaries. All functions are pure: the same record always formats to the
// same bytes, and absent fields produce documented fallback strings rather
// than errors.
package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/helixir/openalex-mcp/internal/openalex"
)

// Fallback strings for absent fields. Tool output is asserted against
// these literals, so they must not drift.
const (
	unknownTitle       = "Unknown Title"
	unknownVenue       = "Unknown Venue"
	unknownAuthor      = "Unknown Author"
	unknownInstitution = "Unknown Institution"
	unknownSource      = "Unknown Source"
	unknownPublisher   = "Unknown Publisher"
	unknownType        = "Unknown Type"
	noTopics           = "No topics"
	noID               = "N/A"

	maxAuthorsShown = 5
	maxTopicsShown  = 3
)

// WorkSummary formats a work into its multi-line summary.
func WorkSummary(work *openalex.Work) string {
	title := work.Title
	if title == "" {
		title = work.DisplayName
	}
	if title == "" {
		title = unknownTitle
	}

	var authors []string
	for _, authorship := range work.Authorships {
		if authorship.Author == nil || authorship.Author.DisplayName == "" {
			continue
		}
		authors = append(authors, authorship.Author.DisplayName)
	}
	if len(authors) > maxAuthorsShown {
		authors = authors[:maxAuthorsShown]
	}
	authorsStr := strings.Join(authors, ", ")
	if len(work.Authorships) > maxAuthorsShown {
		authorsStr += " et al."
	}

	year := "Unknown"
	if work.PublicationYear != 0 {
		year = strconv.Itoa(work.PublicationYear)
	}

	venue := unknownVenue
	if work.PrimaryLocation != nil && work.PrimaryLocation.Source != nil &&
		work.PrimaryLocation.Source.DisplayName != "" {
		venue = work.PrimaryLocation.Source.DisplayName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", title)
	fmt.Fprintf(&b, "Authors: %s\n", authorsStr)
	fmt.Fprintf(&b, "Year: %s | Citations: %d\n", year, work.CitedByCount)
	fmt.Fprintf(&b, "Venue: %s\n", venue)
	fmt.Fprintf(&b, "Topics: %s\n", topicList(work.Topics))
	fmt.Fprintf(&b, "OpenAlex ID: %s\n", orNA(work.ID))
	return b.String()
}

// WorkDetails formats a work summary plus the detail sections: DOI,
// abstract presence, open-access status with a PDF URL when resolvable,
// and the reference count.
func WorkDetails(work *openalex.Work) string {
	var b strings.Builder
	b.WriteString(WorkSummary(work))

	if work.DOI != "" {
		fmt.Fprintf(&b, "DOI: %s\n", work.DOI)
	}

	if len(work.AbstractInvertedIndex) > 0 {
		b.WriteString("Has abstract: Yes\n")
	} else {
		b.WriteString("Has abstract: No\n")
	}

	if work.IsOA {
		b.WriteString("Open Access: Yes\n")
		if work.BestOALocation != nil && work.BestOALocation.PDFURL != "" {
			fmt.Fprintf(&b, "PDF URL: %s\n", work.BestOALocation.PDFURL)
		}
	}

	fmt.Fprintf(&b, "References: %d works\n", len(work.ReferencedWorks))
	return b.String()
}

// AuthorSummary formats an author into its multi-line summary.
func AuthorSummary(author *openalex.Author) string {
	name := author.DisplayName
	if name == "" {
		name = unknownAuthor
	}

	orcid := author.Orcid
	if orcid == "" {
		orcid = "No ORCID"
	}

	institution := unknownInstitution
	if author.LastKnownInstitution != nil && author.LastKnownInstitution.DisplayName != "" {
		institution = author.LastKnownInstitution.DisplayName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", name)
	fmt.Fprintf(&b, "ORCID: %s\n", orcid)
	fmt.Fprintf(&b, "Institution: %s\n", institution)
	fmt.Fprintf(&b, "Works: %d | Citations: %d | h-index: %d\n",
		author.WorksCount, author.CitedByCount, author.HIndex)
	fmt.Fprintf(&b, "Research areas: %s\n", topicList(author.Topics))
	fmt.Fprintf(&b, "OpenAlex ID: %s\n", orNA(author.ID))
	return b.String()
}

// AuthorProfile formats an author summary plus a recent year-by-year
// activity section (up to five years, most recent first) and up to three
// alternative display names.
func AuthorProfile(author *openalex.Author) string {
	var b strings.Builder
	b.WriteString(AuthorSummary(author))

	if len(author.CountsByYear) > 0 {
		years := make([]openalex.YearCount, len(author.CountsByYear))
		copy(years, author.CountsByYear)
		sort.SliceStable(years, func(i, j int) bool {
			return years[i].Year > years[j].Year
		})
		if len(years) > 5 {
			years = years[:5]
		}
		b.WriteString("\n**Recent Publication Activity:**\n")
		for _, yc := range years {
			fmt.Fprintf(&b, "- %d: %d works, %d citations\n",
				yc.Year, yc.WorksCount, yc.CitedByCount)
		}
	}

	if len(author.DisplayNameAlternatives) > 0 {
		alts := author.DisplayNameAlternatives
		if len(alts) > 3 {
			alts = alts[:3]
		}
		fmt.Fprintf(&b, "\n**Alternative names:** %s\n", strings.Join(alts, ", "))
	}

	return b.String()
}

// InstitutionSummary formats an institution into its multi-line summary.
func InstitutionSummary(inst *openalex.Institution) string {
	name := inst.DisplayName
	if name == "" {
		name = unknownInstitution
	}
	country := inst.CountryCode
	if country == "" {
		country = "Unknown"
	}
	instType := inst.Type
	if instType == "" {
		instType = unknownType
	}
	ror := inst.ROR
	if ror == "" {
		ror = "No ROR"
	}
	homepage := inst.HomepageURL
	if homepage == "" {
		homepage = "No homepage"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", name)
	fmt.Fprintf(&b, "Type: %s | Country: %s\n", instType, country)
	fmt.Fprintf(&b, "Works: %d | Citations: %d\n", inst.WorksCount, inst.CitedByCount)
	fmt.Fprintf(&b, "ROR: %s\n", ror)
	fmt.Fprintf(&b, "Homepage: %s\n", homepage)
	fmt.Fprintf(&b, "OpenAlex ID: %s\n", orNA(inst.ID))
	return b.String()
}

// SourceSummary formats a publication venue into its multi-line summary.
func SourceSummary(src *openalex.Source) string {
	name := src.DisplayName
	if name == "" {
		name = unknownSource
	}
	srcType := src.Type
	if srcType == "" {
		srcType = unknownType
	}
	issn := src.ISSNL
	if issn == "" {
		issn = "No ISSN"
	}
	publisher := src.HostOrganizationName
	if publisher == "" {
		publisher = unknownPublisher
	}
	oa := "No"
	if src.IsOA {
		oa = "Yes"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", name)
	fmt.Fprintf(&b, "Type: %s | Publisher: %s\n", srcType, publisher)
	fmt.Fprintf(&b, "ISSN-L: %s | Open Access: %s\n", issn, oa)
	fmt.Fprintf(&b, "Works: %d | Citations: %d | h-index: %d\n",
		src.WorksCount, src.CitedByCount, src.HIndex)
	fmt.Fprintf(&b, "OpenAlex ID: %s\n", orNA(src.ID))
	return b.String()
}

// topicList joins the first few topic names, or returns the no-topics
// fallback.
func topicList(topics []openalex.Topic) string {
	if len(topics) > maxTopicsShown {
		topics = topics[:maxTopicsShown]
	}
	var names []string
	for _, topic := range topics {
		if topic.DisplayName == "" {
			continue
		}
		names = append(names, topic.DisplayName)
	}
	if len(names) == 0 {
		return noTopics
	}
	return strings.Join(names, ", ")
}

func orNA(id string) string {
	if id == "" {
		return noID
	}
	return id
}
