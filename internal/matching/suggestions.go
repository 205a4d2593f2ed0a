package matching

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-matcher/internal/types"
)

const (
	suggestionTailorExperience = "Tailor your experience descriptions to mirror the responsibilities and terminology in the job description"
	suggestionAddEducation     = "Add an education section listing your degrees, institutions and relevant certifications"
)

// suggestions builds the ordered remediation list:
// missing keywords, then the low-score hint, then the education hint.
func (s *Scorer) suggestions(result *types.MatchResult, educationEmpty bool) []string {
	out := make([]string, 0, 3)
	if len(result.Missing) > 0 {
		out = append(out, fmt.Sprintf("Add the missing keywords: %s", strings.Join(result.Missing, ", ")))
	}
	if result.Score < s.cfg.LowThresholdSuggestion {
		out = append(out, suggestionTailorExperience)
	}
	if educationEmpty {
		out = append(out, suggestionAddEducation)
	}
	return out
}

// keywordTiers maps each normalized job keyword to the highest tier it was declared in.
func keywordTiers(job types.JobKeywords) map[string]types.Priority {
	tiers := make(map[string]types.Priority)
	assign := func(keywords []string, p types.Priority) {
		for _, k := range keywords {
			n := Normalize(k)
			if n == "" {
				continue
			}
			if p > tiers[n] {
				tiers[n] = p
			}
		}
	}
	assign(job.Required, types.PriorityCritical)
	assign(job.Preferred, types.PriorityModerate)
	assign(job.Keywords, types.PriorityMinor)
	return tiers
}

func bucketMissing(missing []string, tiers map[string]types.Priority) *types.MissingByPriority {
	buckets := &types.MissingByPriority{
		Critical: make([]string, 0),
		Moderate: make([]string, 0),
		Minor:    make([]string, 0),
	}
	for _, k := range missing {
		switch tiers[k] {
		case types.PriorityCritical:
			buckets.Critical = append(buckets.Critical, k)
		case types.PriorityModerate:
			buckets.Moderate = append(buckets.Moderate, k)
		default:
			buckets.Minor = append(buckets.Minor, k)
		}
	}
	return buckets
}

// recommend turns missing tiers into prioritized hints. Fuzzy matches become
// low-priority wording fixes so the resume uses the job's exact term.
func recommend(missing *types.MissingByPriority, pairs []types.FuzzyPair) *types.Recommendations {
	recs := &types.Recommendations{
		HighPriority:   make([]string, 0, len(missing.Critical)),
		MediumPriority: make([]string, 0, len(missing.Moderate)),
		LowPriority:    make([]string, 0, len(missing.Minor)+len(pairs)),
	}
	for _, k := range missing.Critical {
		recs.HighPriority = append(recs.HighPriority, fmt.Sprintf("Add required skill %q with concrete evidence in your experience section", k))
	}
	for _, k := range missing.Moderate {
		recs.MediumPriority = append(recs.MediumPriority, fmt.Sprintf("Mention preferred skill %q if you have any exposure to it", k))
	}
	for _, k := range missing.Minor {
		recs.LowPriority = append(recs.LowPriority, fmt.Sprintf("Work the keyword %q into your summary or skills list", k))
	}
	for _, p := range pairs {
		recs.LowPriority = append(recs.LowPriority, fmt.Sprintf("Use the job's wording %q instead of %q", p.JobKeyword, p.ResumeKeyword))
	}
	return recs
}
