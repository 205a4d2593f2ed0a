// Package types provides type definitions for structured data used throughout the ats-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// Default scoring parameters
const (
	DefaultFuzzyThreshold         = 80.0
	DefaultLowThresholdSuggestion = 70.0
)

// ScoreConfig controls how resume and job keywords are compared and scored
type ScoreConfig struct {
	FuzzyThreshold         float64        `json:"fuzzy_threshold" mapstructure:"fuzzy-threshold" validate:"gte=0,lte=100"`
	Weights                SectionWeights `json:"weights" mapstructure:"weights"`
	LowThresholdSuggestion float64        `json:"low_threshold_suggestion" mapstructure:"low-threshold-suggestion" validate:"gte=0,lte=100"`
}

// SectionWeights are the fractions each section contributes in extended scoring mode
type SectionWeights struct {
	Skills         float64 `json:"skills" mapstructure:"skills" validate:"gte=0,lte=1"`
	Experience     float64 `json:"experience" mapstructure:"experience" validate:"gte=0,lte=1"`
	Education      float64 `json:"education" mapstructure:"education" validate:"gte=0,lte=1"`
	KeywordDensity float64 `json:"keyword_density" mapstructure:"keyword-density" validate:"gte=0,lte=1"`
}

// Sum returns the total of all section weights
func (w SectionWeights) Sum() float64 {
	return w.Skills + w.Experience + w.Education + w.KeywordDensity
}

var validate = validator.New()

// weightSumTolerance is how far the weight total may drift from 1.0
const weightSumTolerance = 0.01

// Validate checks value ranges with the validator and that the weights sum to roughly 1.
func (c *ScoreConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if sum := c.Weights.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("section weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}

// DefaultSectionWeights returns the 40/35/15/10 split
func DefaultSectionWeights() SectionWeights {
	return SectionWeights{
		Skills:         0.40,
		Experience:     0.35,
		Education:      0.15,
		KeywordDensity: 0.10,
	}
}

// DefaultScoreConfig returns the default scoring configuration
func DefaultScoreConfig() *ScoreConfig {
	return &ScoreConfig{
		FuzzyThreshold:         DefaultFuzzyThreshold,
		Weights:                DefaultSectionWeights(),
		LowThresholdSuggestion: DefaultLowThresholdSuggestion,
	}
}

// SectionInput is the input for extended scoring, where the caller supplies
// per-section match ratios alongside the keyword lists.
type SectionInput struct {
	ResumeSkills    []string    `json:"resume_skills"`
	Job             JobKeywords `json:"job"`
	ExperienceMatch float64     `json:"experience_match"` // 0-1
	EducationMatch  float64     `json:"education_match"`  // 0-1
	KeywordDensity  float64     `json:"keyword_density"`  // 0-1
	Education       []string    `json:"education"`        // resume education entries
}
