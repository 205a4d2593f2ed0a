package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-matcher/internal/matching"
	"github.com/jonathan/ats-matcher/internal/types"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, *types.DefaultScoreConfig(), cfg.Scoring)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.False(t, cfg.Log.JSON)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "ats_agent.yaml", `
scoring:
  fuzzy-threshold: 90
  low-threshold-suggestion: 50
  weights:
    skills: 0.5
    experience: 0.3
    education: 0.1
    keyword-density: 0.1
llm:
  model: gemini-2.5-pro
concurrency: 8
log:
  json: true
`)

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, 90.0, cfg.Scoring.FuzzyThreshold)
	assert.Equal(t, 50.0, cfg.Scoring.LowThresholdSuggestion)
	assert.Equal(t, 0.5, cfg.Scoring.Weights.Skills)
	assert.Equal(t, 0.1, cfg.Scoring.Weights.KeywordDensity)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeConfig(t, "config.json", `{"scoring": {"fuzzy-threshold": 85}}`)

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, 85.0, cfg.Scoring.FuzzyThreshold)
	assert.Equal(t, types.DefaultSectionWeights(), cfg.Scoring.Weights)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ATS_SCORING_FUZZY_THRESHOLD", "72")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("DATABASE_URL", "postgres://localhost/ats")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, 72.0, cfg.Scoring.FuzzyThreshold)
	assert.Equal(t, "test-key", cfg.LLM.APIKey)
	assert.Equal(t, "postgres://localhost/ats", cfg.DatabaseURL)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(New(), "/nonexistent/path/ats_agent.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_OutOfRangeThreshold(t *testing.T) {
	path := writeConfig(t, "bad.yaml", "scoring:\n  fuzzy-threshold: 120\n")

	cfg, err := Load(New(), path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config error")
	assert.ErrorIs(t, err, matching.ErrInvalidInput)
}

func TestLoad_WeightsMustSumToOne(t *testing.T) {
	path := writeConfig(t, "bad.yaml", `
scoring:
  weights:
    skills: 0.9
    experience: 0.9
`)

	_, err := Load(New(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")
	assert.ErrorIs(t, err, matching.ErrInvalidInput)
}

func TestValidate_Concurrency(t *testing.T) {
	cfg := &Config{Scoring: *types.DefaultScoreConfig(), Concurrency: 0}
	assert.Error(t, cfg.Validate())

	cfg.Concurrency = 2
	assert.NoError(t, cfg.Validate())
}
