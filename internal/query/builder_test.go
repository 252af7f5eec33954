package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecValues(t *testing.T) {
	t.Run("defaults page to 1", func(t *testing.T) {
		v := Spec{Entity: EntityWorks, PerPage: 10}.Values(200)
		assert.Equal(t, "1", v.Get("page"))
	})

	t.Run("clamps per_page to the API maximum", func(t *testing.T) {
		v := Spec{Entity: EntityWorks, PerPage: 300}.Values(200)
		assert.Equal(t, "200", v.Get("per_page"))
	})

	t.Run("clamps per_page up to 1", func(t *testing.T) {
		v := Spec{Entity: EntityWorks, PerPage: -5}.Values(200)
		assert.Equal(t, "1", v.Get("per_page"))
	})

	t.Run("renders filters in sorted key order", func(t *testing.T) {
		spec := Spec{
			Entity: EntityWorks,
			Filters: map[string]string{
				"to_publication_date":   "2020-12-31",
				"from_publication_date": "2018-01-01",
				"is_oa":                 "true",
			},
			PerPage: 10,
		}
		want := "from_publication_date:2018-01-01,is_oa:true,to_publication_date:2020-12-31"
		for i := 0; i < 20; i++ {
			assert.Equal(t, want, spec.Values(200).Get("filter"))
		}
	})

	t.Run("omits empty search sort and filter", func(t *testing.T) {
		v := Spec{Entity: EntityWorks, PerPage: 10}.Values(200)
		assert.False(t, v.Has("search"))
		assert.False(t, v.Has("sort"))
		assert.False(t, v.Has("filter"))
	})

	t.Run("renders select as a comma-joined list", func(t *testing.T) {
		v := Spec{Entity: EntityWorks, PerPage: 10, Select: []string{"id", "display_name"}}.Values(200)
		assert.Equal(t, "id,display_name", v.Get("select"))
	})
}

func TestWorks(t *testing.T) {
	t.Run("both year bounds produce a closed date range", func(t *testing.T) {
		spec := Works(WorksArgs{Query: "crispr", YearFrom: 2018, YearTo: 2020})

		assert.Equal(t, "2018-01-01", spec.Filters["from_publication_date"])
		assert.Equal(t, "2020-12-31", spec.Filters["to_publication_date"])
		assert.NotContains(t, spec.Filters, "publication_year")
	})

	t.Run("only year_from produces a one-sided comparison", func(t *testing.T) {
		spec := Works(WorksArgs{Query: "crispr", YearFrom: 2018})

		assert.Equal(t, ">=2018", spec.Filters["publication_year"])
		assert.NotContains(t, spec.Filters, "from_publication_date")
	})

	t.Run("only year_to produces a one-sided comparison", func(t *testing.T) {
		spec := Works(WorksArgs{Query: "crispr", YearTo: 2020})

		assert.Equal(t, "<=2020", spec.Filters["publication_year"])
		assert.NotContains(t, spec.Filters, "to_publication_date")
	})

	t.Run("no year bounds produce no year filter", func(t *testing.T) {
		spec := Works(WorksArgs{Query: "crispr"})

		assert.NotContains(t, spec.Filters, "publication_year")
		assert.NotContains(t, spec.Filters, "from_publication_date")
		assert.NotContains(t, spec.Filters, "to_publication_date")
	})

	t.Run("maps author venue topic and open access filters", func(t *testing.T) {
		spec := Works(WorksArgs{
			Query:      "transformers",
			Author:     "Vaswani",
			Venue:      "NeurIPS",
			Topic:      "attention",
			OpenAccess: true,
		})

		assert.Equal(t, "Vaswani", spec.Filters["raw_author_name.search"])
		assert.Equal(t, "NeurIPS", spec.Filters["primary_location.source.display_name.search"])
		assert.Equal(t, "attention", spec.Filters["topics.display_name.search"])
		assert.Equal(t, "true", spec.Filters["is_oa"])
	})

	t.Run("defaults to upstream relevance sort", func(t *testing.T) {
		spec := Works(WorksArgs{Query: "crispr"})
		assert.Empty(t, spec.Sort)
	})

	t.Run("applies default and maximum limit", func(t *testing.T) {
		assert.Equal(t, DefaultSearchLimit, Works(WorksArgs{Query: "q"}).PerPage)
		assert.Equal(t, MaxToolLimit, Works(WorksArgs{Query: "q", Limit: 100}).PerPage)
		assert.Equal(t, 25, Works(WorksArgs{Query: "q", Limit: 25}).PerPage)
	})
}

func TestAuthors(t *testing.T) {
	t.Run("maps filters and defaults sort to cited_by_count", func(t *testing.T) {
		spec := Authors(AuthorsArgs{
			Query:         "hinton",
			Institution:   "Toronto",
			Topic:         "deep learning",
			HIndexMin:     50,
			WorksCountMin: 100,
		})

		assert.Equal(t, EntityAuthors, spec.Entity)
		assert.Equal(t, "Toronto", spec.Filters["last_known_institution.display_name.search"])
		assert.Equal(t, "deep learning", spec.Filters["topics.display_name.search"])
		assert.Equal(t, ">=50", spec.Filters["h_index"])
		assert.Equal(t, ">=100", spec.Filters["works_count"])
		assert.Equal(t, "cited_by_count", spec.Sort)
	})

	t.Run("explicit sort wins over the default", func(t *testing.T) {
		spec := Authors(AuthorsArgs{Query: "hinton", Sort: "works_count"})
		assert.Equal(t, "works_count", spec.Sort)
	})
}

func TestInstitutions(t *testing.T) {
	spec := Institutions(InstitutionsArgs{
		Query:         "mit",
		Country:       "us",
		Type:          "education",
		WorksCountMin: 1000,
	})

	require.Equal(t, EntityInstitutions, spec.Entity)
	assert.Equal(t, "us", spec.Filters["country_code"])
	assert.Equal(t, "education", spec.Filters["type"])
	assert.Equal(t, ">=1000", spec.Filters["works_count"])
	assert.Equal(t, "cited_by_count", spec.Sort)
}

func TestSources(t *testing.T) {
	spec := Sources(SourcesArgs{
		Query:      "nature",
		Type:       "journal",
		Publisher:  "Springer",
		OpenAccess: true,
	})

	require.Equal(t, EntitySources, spec.Entity)
	assert.Equal(t, "journal", spec.Filters["type"])
	assert.Equal(t, "Springer", spec.Filters["host_organization_name.search"])
	assert.Equal(t, "true", spec.Filters["is_oa"])
	assert.Equal(t, "cited_by_count", spec.Sort)
}

func TestCitations(t *testing.T) {
	t.Run("filters on the cited work", func(t *testing.T) {
		spec := Citations("W2741809807", "", 0)

		assert.Equal(t, EntityWorks, spec.Entity)
		assert.Equal(t, "W2741809807", spec.Filters["cites"])
		assert.Empty(t, spec.Search)
	})

	t.Run("defaults sort to publication_date and limit to 20", func(t *testing.T) {
		spec := Citations("W2741809807", "", 0)

		assert.Equal(t, "publication_date", spec.Sort)
		assert.Equal(t, DefaultCitationsLimit, spec.PerPage)
	})

	t.Run("caps the limit", func(t *testing.T) {
		assert.Equal(t, MaxToolLimit, Citations("W1", "", 500).PerPage)
	})
}
