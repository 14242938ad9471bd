package service

import (
	"log/slog"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"jellyterm/internal/domain"
)

// SearchService fuzzy-filters catalog items by title
type SearchService struct {
	logger *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{logger: logger}
}

// Filter returns the items matching the query, best match first. An empty
// query returns the input unchanged.
func (s *SearchService) Filter(query string, items []domain.MediaItem) []domain.MediaItem {
	if query == "" {
		return items
	}

	// Cheap normalized prefilter before ranking the survivors
	candidates := make([]domain.MediaItem, 0, len(items))
	for _, item := range items {
		if lfuzzy.MatchNormalizedFold(query, item.Name) {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	titles := make([]string, len(candidates))
	for i, item := range candidates {
		titles[i] = item.Name
	}

	matches := fuzzy.Find(query, titles)
	results := make([]domain.MediaItem, 0, len(matches))
	for _, match := range matches {
		results = append(results, candidates[match.Index])
	}

	return results
}
