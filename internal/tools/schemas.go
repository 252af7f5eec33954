package tools

// Raw JSON schemas for the tool inputs. Kept as literal documents rather
// than built through the typed option API so the advertised contract is
// visible in one place.

const searchWorksSchema = `{
  "type": "object",
  "properties": {
    "query": {
      "type": "string",
      "description": "Search query for works (searches title, abstract, and full text)"
    },
    "author": {
      "type": "string",
      "description": "Filter by author name"
    },
    "year_from": {
      "type": "integer",
      "description": "Filter works published from this year onwards"
    },
    "year_to": {
      "type": "integer",
      "description": "Filter works published up to this year"
    },
    "venue": {
      "type": "string",
      "description": "Filter by publication venue (journal or conference) name"
    },
    "topic": {
      "type": "string",
      "description": "Filter by topic name"
    },
    "open_access": {
      "type": "boolean",
      "description": "Filter for open access works only"
    },
    "sort": {
      "type": "string",
      "description": "Sort order: relevance_score, cited_by_count, publication_date",
      "enum": ["relevance_score", "cited_by_count", "publication_date"]
    },
    "limit": {
      "type": "integer",
      "description": "Number of results to return (max 50)",
      "minimum": 1,
      "maximum": 50
    }
  },
  "required": ["query"]
}`

const searchAuthorsSchema = `{
  "type": "object",
  "properties": {
    "query": {
      "type": "string",
      "description": "Author name to search for"
    },
    "institution": {
      "type": "string",
      "description": "Filter by institution name"
    },
    "topic": {
      "type": "string",
      "description": "Filter by research topic name"
    },
    "h_index_min": {
      "type": "integer",
      "description": "Minimum h-index"
    },
    "works_count_min": {
      "type": "integer",
      "description": "Minimum number of works"
    },
    "sort": {
      "type": "string",
      "description": "Sort order: relevance_score, works_count, cited_by_count",
      "enum": ["relevance_score", "works_count", "cited_by_count"]
    },
    "limit": {
      "type": "integer",
      "description": "Number of results to return (max 50)",
      "minimum": 1,
      "maximum": 50
    }
  },
  "required": ["query"]
}`

const searchInstitutionsSchema = `{
  "type": "object",
  "properties": {
    "query": {
      "type": "string",
      "description": "Institution name to search for"
    },
    "country": {
      "type": "string",
      "description": "Filter by country code (e.g., 'us', 'gb', 'de')"
    },
    "institution_type": {
      "type": "string",
      "description": "Filter by institution type",
      "enum": ["education", "healthcare", "company", "archive", "nonprofit", "government", "facility", "other"]
    },
    "works_count_min": {
      "type": "integer",
      "description": "Minimum number of works"
    },
    "sort": {
      "type": "string",
      "description": "Sort order: relevance_score, works_count, cited_by_count",
      "enum": ["relevance_score", "works_count", "cited_by_count"]
    },
    "limit": {
      "type": "integer",
      "description": "Number of results to return (max 50)",
      "minimum": 1,
      "maximum": 50
    }
  },
  "required": ["query"]
}`

const searchSourcesSchema = `{
  "type": "object",
  "properties": {
    "query": {
      "type": "string",
      "description": "Source name to search for (journal, conference, etc.)"
    },
    "source_type": {
      "type": "string",
      "description": "Filter by source type",
      "enum": ["journal", "conference", "repository", "ebook platform", "book series"]
    },
    "publisher": {
      "type": "string",
      "description": "Filter by publisher name"
    },
    "open_access": {
      "type": "boolean",
      "description": "Filter for open access sources only"
    },
    "works_count_min": {
      "type": "integer",
      "description": "Minimum number of works"
    },
    "sort": {
      "type": "string",
      "description": "Sort order: relevance_score, works_count, cited_by_count",
      "enum": ["relevance_score", "works_count", "cited_by_count"]
    },
    "limit": {
      "type": "integer",
      "description": "Number of results to return (max 50)",
      "minimum": 1,
      "maximum": 50
    }
  },
  "required": ["query"]
}`

const getWorkDetailsSchema = `{
  "type": "object",
  "properties": {
    "work_id": {
      "type": "string",
      "description": "OpenAlex work ID (e.g., 'W2741809807') or DOI (e.g., '10.7717/peerj.4375')"
    }
  },
  "required": ["work_id"]
}`

const getAuthorProfileSchema = `{
  "type": "object",
  "properties": {
    "author_id": {
      "type": "string",
      "description": "OpenAlex author ID (e.g., 'A5023888391') or ORCID (e.g., '0000-0003-1613-5981')"
    }
  },
  "required": ["author_id"]
}`

const getCitationsSchema = `{
  "type": "object",
  "properties": {
    "work_id": {
      "type": "string",
      "description": "OpenAlex work ID or DOI of the work to find citations for"
    },
    "sort": {
      "type": "string",
      "description": "Sort order: publication_date, cited_by_count",
      "enum": ["publication_date", "cited_by_count"]
    },
    "limit": {
      "type": "integer",
      "description": "Number of citing works to return (max 50)",
      "minimum": 1,
      "maximum": 50
    }
  },
  "required": ["work_id"]
}`

const downloadPaperSchema = `{
  "type": "object",
  "properties": {
    "work_id": {
      "type": "string",
      "description": "OpenAlex work ID or DOI of the paper to download"
    },
    "output_path": {
      "type": "string",
      "description": "Directory to save the PDF to (defaults to current directory)"
    },
    "filename": {
      "type": "string",
      "description": "Filename for the saved PDF (defaults to a name derived from the title)"
    }
  },
  "required": ["work_id"]
}`
