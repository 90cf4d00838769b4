package domain

import "time"

// SearchOptions configures a search request
type SearchOptions struct {
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
	Filters IndexFilters `json:"filters,omitempty"`

	// IncludeHidden lifts the default hidden-document exclusion.
	// Only honoured for admin callers.
	IncludeHidden bool `json:"include_hidden,omitempty"`

	// MultiTenant enables tenant-scoped filtering. Set by the search
	// service from team settings together with Filters.TenantID so the
	// two cannot disagree; never taken from the request.
	MultiTenant bool `json:"-"`
}

// DefaultSearchOptions returns sensible defaults
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Limit:  20,
		Offset: 0,
	}
}

// SearchResult represents the result of a search query
type SearchResult struct {
	Query      string         `json:"query"`
	Results    []*RankedChunk `json:"results"`
	TotalCount int            `json:"total_count"`
	Took       time.Duration  `json:"took"`
}

// RankedChunk represents a search result with relevance score
type RankedChunk struct {
	Chunk *Chunk  `json:"chunk"`
	Score float64 `json:"score"`
}
