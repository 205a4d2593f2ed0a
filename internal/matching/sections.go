package matching

import (
	"fmt"

	"github.com/jonathan/ats-matcher/internal/types"
)

// ScoreSections runs the extended mode: the skills ratio comes from keyword
// matching, the other section ratios come from the caller, and the overall
// score is their weighted mean scaled to 0-100.
func (s *Scorer) ScoreSections(in *types.SectionInput) (*types.MatchResult, error) {
	if in == nil {
		return nil, &InvalidInputError{Field: "sections", Message: "input is nil"}
	}
	ratios := map[string]float64{
		"experience_match": in.ExperienceMatch,
		"education_match":  in.EducationMatch,
		"keyword_density":  in.KeywordDensity,
	}
	for _, field := range []string{"experience_match", "education_match", "keyword_density"} {
		if r := ratios[field]; !(r >= 0 && r <= 1) {
			return nil, &InvalidInputError{
				Field:   field,
				Message: fmt.Sprintf("ratio must be within [0, 1], got %v", r),
			}
		}
	}

	resume := NewSkillSet(in.ResumeSkills)
	job := NewSkillSet(in.Job.All())
	result := s.classify(resume, job)

	skills := keywordRatio(result, job.Len())
	w := s.cfg.Weights
	weighted := w.Skills*skills + w.Experience*in.ExperienceMatch +
		w.Education*in.EducationMatch + w.KeywordDensity*in.KeywordDensity

	result.Score = 100 * weighted / w.Sum()
	result.SectionScores = &types.SectionScores{
		Skills:         100 * skills,
		Experience:     100 * in.ExperienceMatch,
		Education:      100 * in.EducationMatch,
		KeywordDensity: 100 * in.KeywordDensity,
	}
	result.Suggestions = s.suggestions(result, NewSkillSet(in.Education).Len() == 0)

	tiers := keywordTiers(in.Job)
	result.MissingByPriority = bucketMissing(result.Missing, tiers)
	result.Recommendations = recommend(result.MissingByPriority, result.FuzzyPairs)
	return result, nil
}
