package matching

import (
	"github.com/jonathan/ats-matcher/internal/types"
)

// Scorer compares keyword collections under a fixed, validated configuration.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	cfg types.ScoreConfig
}

// NewScorer validates cfg and returns a Scorer. A nil cfg uses DefaultScoreConfig.
func NewScorer(cfg *types.ScoreConfig) (*Scorer, error) {
	if cfg == nil {
		cfg = types.DefaultScoreConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InvalidInputError{
			Field:   "config",
			Message: "score configuration out of range",
			Cause:   err,
		}
	}
	return &Scorer{cfg: *cfg}, nil
}

// Config returns a copy of the scorer's configuration
func (s *Scorer) Config() types.ScoreConfig {
	return s.cfg
}

// Score is a convenience wrapper around NewScorer(cfg).Score.
func Score(resumeSkills, jobSkills []string, cfg *types.ScoreConfig) (*types.MatchResult, error) {
	s, err := NewScorer(cfg)
	if err != nil {
		return nil, err
	}
	return s.Score(resumeSkills, jobSkills)
}

// Score classifies every job keyword as exact, fuzzy or missing and computes
// score = 100 * matched / max(|job keywords|, 1).
func (s *Scorer) Score(resumeSkills, jobSkills []string) (*types.MatchResult, error) {
	resume := NewSkillSet(resumeSkills)
	job := NewSkillSet(jobSkills)

	result := s.classify(resume, job)
	result.Score = keywordRatio(result, job.Len()) * 100
	result.Suggestions = s.suggestions(result, false)
	return result, nil
}

// ScoreJob scores against tiered job keywords. On top of Score it buckets the
// missing keywords by tier and builds prioritized recommendations.
func (s *Scorer) ScoreJob(resumeSkills []string, job types.JobKeywords) (*types.MatchResult, error) {
	result, err := s.Score(resumeSkills, job.All())
	if err != nil {
		return nil, err
	}
	tiers := keywordTiers(job)
	result.MissingByPriority = bucketMissing(result.Missing, tiers)
	result.Recommendations = recommend(result.MissingByPriority, result.FuzzyPairs)
	return result, nil
}

// classify partitions the job set into exact, fuzzy and missing keywords,
// walking it in first-seen order.
func (s *Scorer) classify(resume, job *SkillSet) *types.MatchResult {
	result := &types.MatchResult{
		MatchedExact: make([]string, 0),
		MatchedFuzzy: make([]string, 0),
		FuzzyPairs:   make([]types.FuzzyPair, 0),
		Missing:      make([]string, 0),
		Suggestions:  make([]string, 0),
	}

	for _, keyword := range job.items {
		if _, ok := resume.index[keyword]; ok {
			result.MatchedExact = append(result.MatchedExact, keyword)
			continue
		}

		candidate, similarity, ok := bestMatch(keyword, resume.items)
		if ok && similarity >= s.cfg.FuzzyThreshold {
			result.MatchedFuzzy = append(result.MatchedFuzzy, keyword)
			result.FuzzyPairs = append(result.FuzzyPairs, types.FuzzyPair{
				JobKeyword:    keyword,
				ResumeKeyword: candidate,
				Similarity:    similarity,
			})
			continue
		}

		result.Missing = append(result.Missing, keyword)
	}

	return result
}

// keywordRatio returns the matched fraction (0-1) of total job keywords.
func keywordRatio(result *types.MatchResult, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(result.MatchedCount()) / float64(total)
}
