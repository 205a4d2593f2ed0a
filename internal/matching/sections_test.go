package matching

import (
	"errors"
	"testing"

	"github.com/jonathan/ats-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreSections_WeightedScore(t *testing.T) {
	s, err := NewScorer(nil)
	require.NoError(t, err)

	result, err := s.ScoreSections(&types.SectionInput{
		ResumeSkills:    []string{"Go", "SQL"},
		Job:             types.JobKeywords{Required: []string{"go"}, Preferred: []string{"docker"}},
		ExperienceMatch: 1.0,
		EducationMatch:  0.0,
		KeywordDensity:  0.5,
	})
	require.NoError(t, err)

	require.NotNil(t, result.SectionScores)
	assert.InDelta(t, 50.0, result.SectionScores.Skills, 0.001)
	assert.InDelta(t, 100.0, result.SectionScores.Experience, 0.001)
	assert.InDelta(t, 0.0, result.SectionScores.Education, 0.001)
	assert.InDelta(t, 50.0, result.SectionScores.KeywordDensity, 0.001)
	// 0.40*0.5 + 0.35*1 + 0.15*0 + 0.10*0.5
	assert.InDelta(t, 60.0, result.Score, 0.001)

	require.Len(t, result.Suggestions, 3)
	assert.Equal(t, "Add the missing keywords: docker", result.Suggestions[0])
	assert.Equal(t, suggestionTailorExperience, result.Suggestions[1])
	assert.Equal(t, suggestionAddEducation, result.Suggestions[2])
	assert.Equal(t, []string{"docker"}, result.MissingByPriority.Moderate)
}

func TestScoreSections_NoEducationSuggestionWhenPresent(t *testing.T) {
	s, err := NewScorer(nil)
	require.NoError(t, err)

	result, err := s.ScoreSections(&types.SectionInput{
		ResumeSkills:    []string{"go"},
		Job:             types.JobKeywords{Keywords: []string{"go"}},
		ExperienceMatch: 1,
		EducationMatch:  1,
		KeywordDensity:  1,
		Education:       []string{"BSc Computer Science"},
	})
	require.NoError(t, err)

	assert.InDelta(t, 100.0, result.Score, 0.001)
	assert.Empty(t, result.Suggestions)
}

func TestScoreSections_BlankEducationCountsAsEmpty(t *testing.T) {
	s, err := NewScorer(nil)
	require.NoError(t, err)

	result, err := s.ScoreSections(&types.SectionInput{
		ResumeSkills:    []string{"go"},
		Job:             types.JobKeywords{Keywords: []string{"go"}},
		ExperienceMatch: 1,
		EducationMatch:  1,
		KeywordDensity:  1,
		Education:       []string{"  "},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{suggestionAddEducation}, result.Suggestions)
}

func TestScoreSections_CustomWeights(t *testing.T) {
	cfg := types.DefaultScoreConfig()
	cfg.Weights = types.SectionWeights{Skills: 1}
	s, err := NewScorer(cfg)
	require.NoError(t, err)

	result, err := s.ScoreSections(&types.SectionInput{
		ResumeSkills:    []string{"go"},
		Job:             types.JobKeywords{Keywords: []string{"go", "rust"}},
		ExperienceMatch: 1,
		Education:       []string{"MSc"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 50.0, result.Score, 0.001)
}

func TestScoreSections_InvalidRatio(t *testing.T) {
	s, err := NewScorer(nil)
	require.NoError(t, err)

	_, err = s.ScoreSections(&types.SectionInput{ExperienceMatch: 1.5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	var inputErr *InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "experience_match", inputErr.Field)
}

func TestScoreSections_NilInput(t *testing.T) {
	s, err := NewScorer(nil)
	require.NoError(t, err)

	_, err = s.ScoreSections(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
