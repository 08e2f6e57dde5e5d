package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/photon-labs/glance/internal/core/domain"
	"github.com/photon-labs/glance/internal/core/ports/driving"
	"github.com/photon-labs/glance/internal/logger"
)

// Ensure Searcher implements the interface.
var _ driving.SearchService = (*Searcher)(nil)

// ImageLister supplies the candidate collection for ranking. Satisfied
// by the gallery service.
type ImageLister interface {
	Images() []domain.Image
}

// Scoring weights. The accumulation is additive across signals, so a
// total can exceed 1; scores are relevance magnitudes, not
// probabilities.
const (
	captionWeight  = 0.9
	tagWeight      = 0.8
	textWeight     = 0.7
	peopleWeight   = 0.8
	objectsWeight  = 0.6
	fileNameWeight = 0.5
	semanticWeight = 0.4
)

// maxSuggestions caps tag suggestions.
const maxSuggestions = 5

// semanticKeywords is the fixed dictionary for the fallback scoring
// path. Only exact query matches against a key expand; everything else
// scores 0 when no direct signal fired.
var semanticKeywords = map[string][]string{
	"sunset":   {"orange", "evening", "sky", "horizon"},
	"beach":    {"sand", "ocean", "water", "waves"},
	"mountain": {"peak", "landscape", "hiking", "nature"},
	"city":     {"urban", "buildings", "lights", "skyline"},
	"nature":   {"trees", "flowers", "outdoor", "landscape"},
	"coffee":   {"morning", "drink", "cozy", "lifestyle"},
}

// recentSearches and suggestedSearches seed the search UI.
var (
	recentSearches = []string{
		"sunset beach",
		"mountain landscape",
		"city lights",
		"coffee morning",
		"flower garden",
	}

	suggestedSearches = []string{
		"nature photos",
		"people smiling",
		"food and drinks",
		"animals",
		"night photos",
		"text in images",
	}
)

// Searcher ranks the in-memory image collection against free-text
// queries. It is pure with respect to state: each call consumes one
// snapshot of the collection and performs no I/O.
type Searcher struct {
	gallery ImageLister

	mu        sync.RWMutex
	searching bool
}

// NewSearcher creates a search service over the given collection.
func NewSearcher(gallery ImageLister) *Searcher {
	return &Searcher{gallery: gallery}
}

// Search scores every image against the query and returns hits in
// non-increasing score order. Empty and whitespace-only queries return
// an empty list. Equal scores tie-break ascending by image id so the
// ordering is deterministic.
func (s *Searcher) Search(_ context.Context, query string) ([]domain.SearchResult, error) {
	s.setSearching(true)
	defer s.setSearching(false)

	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	images := s.gallery.Images()
	results := make([]domain.SearchResult, 0)

	for i := range images {
		score, matchType := scoreImage(&images[i], term)
		if score > 0 {
			results = append(results, domain.SearchResult{
				Item:      images[i],
				Score:     score,
				MatchType: matchType,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score == results[j].Score {
			return results[i].Item.ID < results[j].Item.ID
		}
		return results[i].Score > results[j].Score
	})

	logger.Info("Search %q: %d results from %d images", term, len(results), len(images))
	return results, nil
}

// scoreImage accumulates the multi-signal score for one image.
//
// Signals are additive and not mutually exclusive. The match type label
// is last-write-wins in check order (caption, tags, text content,
// people, objects), so a later check can relabel a hit whose score came
// mostly from an earlier one. That ordering is kept as-is for
// compatibility with established result labelling.
func scoreImage(img *domain.Image, term string) (float64, domain.MatchType) {
	var score float64
	matchType := domain.MatchTypeText

	if img.Caption != "" && strings.Contains(strings.ToLower(img.Caption), term) {
		score += captionWeight
		matchType = domain.MatchTypeCaption
	}

	if len(img.Tags) > 0 {
		matches := 0
		for _, tag := range img.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				matches++
			}
		}
		if matches > 0 {
			// Proportion of matching tags, not raw count: one matching
			// tag out of one outranks one out of ten.
			score += tagWeight * float64(matches) / float64(len(img.Tags))
			matchType = domain.MatchTypeTag
		}
	}

	if img.Metadata.TextContent != "" && strings.Contains(strings.ToLower(img.Metadata.TextContent), term) {
		score += textWeight
		matchType = domain.MatchTypeText
	}

	if containsTerm(img.Metadata.People, term) {
		score += peopleWeight
		matchType = domain.MatchTypeSemantic
	}

	if containsTerm(img.Metadata.Objects, term) {
		score += objectsWeight
		matchType = domain.MatchTypeSemantic
	}

	if strings.Contains(strings.ToLower(img.FileName), term) {
		score += fileNameWeight
	}

	// Dictionary fallback only when no direct signal fired.
	if score == 0 {
		if keywords, ok := semanticKeywords[term]; ok {
			matched := 0
			for _, keyword := range keywords {
				if tagOrCaptionContains(img, keyword) {
					matched++
				}
			}
			if matched > 0 {
				score = semanticWeight * float64(matched) / float64(len(keywords))
				matchType = domain.MatchTypeSemantic
			}
		}
	}

	return score, matchType
}

// containsTerm reports whether any entry contains the term.
func containsTerm(values []string, term string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

// tagOrCaptionContains reports whether a dictionary keyword appears in
// the image's tags or caption.
func tagOrCaptionContains(img *domain.Image, keyword string) bool {
	for _, tag := range img.Tags {
		if strings.Contains(strings.ToLower(tag), keyword) {
			return true
		}
	}
	return img.Caption != "" && strings.Contains(strings.ToLower(img.Caption), keyword)
}

// Suggestions returns up to five distinct tags containing the query,
// sorted alphabetically.
func (s *Searcher) Suggestions(query string) []string {
	query = strings.ToLower(query)
	images := s.gallery.Images()

	seen := make(map[string]bool)
	for i := range images {
		for _, tag := range images[i].Tags {
			if strings.Contains(strings.ToLower(tag), query) {
				seen[tag] = true
			}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	if len(tags) > maxSuggestions {
		tags = tags[:maxSuggestions]
	}
	return tags
}

// RecentSearches returns the recent query list.
func (s *Searcher) RecentSearches() []string {
	return recentSearches
}

// SuggestedSearches returns the curated starter query list.
func (s *Searcher) SuggestedSearches() []string {
	return suggestedSearches
}

// IsSearching reports whether a search is in flight.
func (s *Searcher) IsSearching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searching
}

func (s *Searcher) setSearching(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searching = v
}
