package domain

// MatchType labels which matching rule most recently contributed to a
// search result's score. The label follows check order, so a later,
// lower-weight check can relabel a result whose score came mostly from
// an earlier check.
type MatchType string

// Available match types.
const (
	// MatchTypeText is the default, and marks OCR text-content matches.
	MatchTypeText MatchType = "text"

	// MatchTypeTag marks tag substring matches.
	MatchTypeTag MatchType = "tag"

	// MatchTypeCaption marks caption substring matches.
	MatchTypeCaption MatchType = "caption"

	// MatchTypeSemantic marks people, object and dictionary-fallback matches.
	MatchTypeSemantic MatchType = "semantic"
)

// IsValid returns true if the match type is recognised.
func (m MatchType) IsValid() bool {
	switch m {
	case MatchTypeText, MatchTypeTag, MatchTypeCaption, MatchTypeSemantic:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m MatchType) String() string {
	return string(m)
}

// SearchResult is a single ranked search hit.
type SearchResult struct {
	// Item is the matched image.
	Item Image `json:"item"`

	// Score is the accumulated relevance magnitude. Non-negative and
	// unbounded above; not a probability.
	Score float64 `json:"score"`

	// MatchType labels the last matching rule that fired.
	MatchType MatchType `json:"matchType"`
}
