package driving

import (
	"context"

	"github.com/photon-labs/glance/internal/core/domain"
)

// SearchService ranks the gallery against free-text queries.
type SearchService interface {
	// Search returns a relevance-ordered result list for the query.
	// Empty or whitespace-only queries yield an empty list.
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)

	// Suggestions returns up to five distinct tags containing the query.
	Suggestions(query string) []string

	// RecentSearches returns the recent query list.
	RecentSearches() []string

	// SuggestedSearches returns the curated starter query list.
	SuggestedSearches() []string

	// IsSearching reports whether a search is in flight. Meant for UI
	// spinners, not synchronisation.
	IsSearching() bool
}
