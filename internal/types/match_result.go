// Package types provides type definitions for structured data used throughout the ats-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// MatchResult is the report produced by one scoring call.
// Every normalized job keyword lands in exactly one of MatchedExact, MatchedFuzzy or Missing.
type MatchResult struct {
	MatchedExact      []string           `json:"matched_exact"`
	MatchedFuzzy      []string           `json:"matched_fuzzy"`
	FuzzyPairs        []FuzzyPair        `json:"fuzzy_pairs"`
	Missing           []string           `json:"missing"`
	Score             float64            `json:"score"`
	Suggestions       []string           `json:"suggestions"`
	SectionScores     *SectionScores     `json:"section_scores,omitempty"`
	MissingByPriority *MissingByPriority `json:"missing_by_priority,omitempty"`
	Recommendations   *Recommendations   `json:"recommendations,omitempty"`
}

// FuzzyPair records which resume keyword satisfied a fuzzy-matched job keyword
type FuzzyPair struct {
	JobKeyword    string  `json:"job_keyword"`
	ResumeKeyword string  `json:"resume_keyword"`
	Similarity    float64 `json:"similarity"` // 0-100
}

// SectionScores holds per-section scores (0-100) for the extended scoring mode
type SectionScores struct {
	Skills         float64 `json:"skills"`
	Experience     float64 `json:"experience"`
	Education      float64 `json:"education"`
	KeywordDensity float64 `json:"keyword_density"`
}

// MissingByPriority buckets missing job keywords by the tier they were declared in
type MissingByPriority struct {
	Critical []string `json:"critical"`
	Moderate []string `json:"moderate"`
	Minor    []string `json:"minor"`
}

// Recommendations groups remediation hints by impact
type Recommendations struct {
	HighPriority   []string `json:"high_priority"`
	MediumPriority []string `json:"medium_priority"`
	LowPriority    []string `json:"low_priority"`
}

// MatchedCount returns the number of job keywords satisfied exactly or fuzzily.
func (r *MatchResult) MatchedCount() int {
	return len(r.MatchedExact) + len(r.MatchedFuzzy)
}
