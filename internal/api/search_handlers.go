package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/photovault/photovault-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchPhotos",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search photos",
		Description: "Full-text photo search with fuzzy and prefix matching",
		Tags:        []string{"Search"},
	}, s.handleSearchPhotos)
}

// SearchInput contains parameters for searching photos.
type SearchInput struct {
	Query  string `query:"q" required:"true" doc:"Search query"`
	Album  string `query:"album" doc:"Restrict results to one album"`
	Tag    string `query:"tag" doc:"Filter by exact tag"`
	Sort   string `query:"sort" enum:"relevance,name,recent" doc:"Sort order (default relevance)"`
	Limit  int    `query:"limit" minimum:"1" maximum:"100" doc:"Max results (default 20)"`
	Offset int    `query:"offset" minimum:"0" doc:"Results to skip"`
}

// SearchOutput wraps the search result for Huma.
type SearchOutput struct {
	Body search.SearchResult
}

func (s *Server) handleSearchPhotos(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if s.search == nil {
		return nil, huma.Error503ServiceUnavailable("Search index unavailable")
	}

	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.AlbumID = input.Album
	if input.Tag != "" {
		params.Tags = []string{input.Tag}
	}
	if input.Sort != "" {
		params.SortBy = input.Sort
	}
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	params.Offset = input.Offset

	result, err := s.search.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Body: *result}, nil
}
