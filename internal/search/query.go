package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query string // User's search query

	// Filters
	AlbumID string   // Restrict results to one album
	Tags    []string // Filter by exact tags

	// Pagination
	Limit  int
	Offset int

	// Sorting
	SortBy    string // "relevance", "name", "recent"
	SortOrder string // "asc", "desc"

	// Options
	Highlight bool // Include match highlighting
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:     20,
		Offset:    0,
		SortBy:    "relevance",
		SortOrder: "desc",
		Highlight: true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string      `json:"query"`
	Total  uint64      `json:"total"`
	TookMs int64       `json:"took_ms"`
	Hits   []SearchHit `json:"hits"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Name       string            `json:"name"`
	Filename   string            `json:"filename,omitempty"`
	Tags       []string          `json:"tags,omitempty"`
	UploadedAt int64             `json:"uploaded_at,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Search executes a search query.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	addSorting(searchRequest, params)

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("name")
	}

	searchRequest.Fields = []string{"id", "name", "filename", "tags", "uploaded_at"}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		if n, ok := hit.Fields["name"].(string); ok {
			searchHit.Name = n
		}
		if f, ok := hit.Fields["filename"].(string); ok {
			searchHit.Filename = f
		}
		if ua, ok := hit.Fields["uploaded_at"].(float64); ok {
			searchHit.UploadedAt = int64(ua)
		}
		// Tags come back as a string for single values, a slice otherwise.
		switch tags := hit.Fields["tags"].(type) {
		case string:
			searchHit.Tags = []string{tags}
		case []interface{}:
			for _, tag := range tags {
				if t, ok := tag.(string); ok {
					searchHit.Tags = append(searchHit.Tags, t)
				}
			}
		}

		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	// Main text query over name and filename.
	if params.Query != "" {
		textQueries := []query.Query{}

		// Name match with highest boost
		nameMatch := bleve.NewMatchQuery(params.Query)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		textQueries = append(textQueries, nameMatch)

		// Tag match (analyzed field, so case folds and compounds split)
		tagMatch := bleve.NewMatchQuery(params.Query)
		tagMatch.SetField("tags_text")
		tagMatch.SetBoost(2.0)
		textQueries = append(textQueries, tagMatch)

		// Filename match
		filenameMatch := bleve.NewMatchQuery(params.Query)
		filenameMatch.SetField("filename")
		filenameMatch.SetBoost(1.5)
		textQueries = append(textQueries, filenameMatch)

		// Fuzzy matching for typo tolerance on name
		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("name")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for autocomplete (minimum 2 chars)
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("name")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Album filter (exact match)
	if params.AlbumID != "" {
		albumQuery := bleve.NewTermQuery(params.AlbumID)
		albumQuery.SetField("album_ids")
		queries = append(queries, albumQuery)
	}

	// Tag filter (exact match, OR across tags)
	if len(params.Tags) > 0 {
		tagQueries := make([]query.Query, len(params.Tags))
		for i, tag := range params.Tags {
			tq := bleve.NewTermQuery(tag)
			tq.SetField("tags")
			tagQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(tagQueries...))
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting applies sort order to the search request.
func addSorting(req *bleve.SearchRequest, params SearchParams) {
	desc := params.SortOrder != "asc"

	switch params.SortBy {
	case "name":
		field := "name"
		if desc {
			field = "-name"
		}
		req.SortBy([]string{field, "-_score"})
	case "recent":
		field := "uploaded_at"
		if desc {
			field = "-uploaded_at"
		}
		req.SortBy([]string{field, "-_score"})
	default:
		// Relevance: bleve's default score ordering.
		req.SortBy([]string{"-_score"})
	}
}
