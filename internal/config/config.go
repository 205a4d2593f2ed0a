// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/ats-matcher/internal/matching"
	"github.com/jonathan/ats-matcher/internal/types"
)

var validate = validator.New()

const (
	// AppName is used for the default config file name and the env prefix
	AppName = "ats_agent"
	// EnvPrefix prefixes every environment override, e.g. ATS_SCORING_FUZZY_THRESHOLD
	EnvPrefix = "ATS"
)

// Config is the full CLI configuration.
// Values come from defaults, then the config file, then environment variables.
type Config struct {
	Scoring     types.ScoreConfig `mapstructure:"scoring"`
	LLM         LLMConfig         `mapstructure:"llm"`
	DatabaseURL string            `mapstructure:"database-url"`
	Concurrency int               `mapstructure:"concurrency" validate:"gte=1,lte=64"`
	Log         LogConfig         `mapstructure:"log"`
}

// LLMConfig configures the extraction model
type LLMConfig struct {
	APIKey string `mapstructure:"api-key"`
	Model  string `mapstructure:"model"` // overrides the standard tier model when set
}

// LogConfig configures the zap logger
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// New returns a viper instance with defaults and environment bindings applied.
func New() *viper.Viper {
	v := viper.New()

	defaults := types.DefaultScoreConfig()
	v.SetDefault("scoring.fuzzy-threshold", defaults.FuzzyThreshold)
	v.SetDefault("scoring.low-threshold-suggestion", defaults.LowThresholdSuggestion)
	v.SetDefault("scoring.weights.skills", defaults.Weights.Skills)
	v.SetDefault("scoring.weights.experience", defaults.Weights.Experience)
	v.SetDefault("scoring.weights.education", defaults.Weights.Education)
	v.SetDefault("scoring.weights.keyword-density", defaults.Weights.KeywordDensity)
	v.SetDefault("llm.api-key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("database-url", "")
	v.SetDefault("concurrency", 4)
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Conventional names used by the rest of the toolchain
	_ = v.BindEnv("llm.api-key", EnvPrefix+"_LLM_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("database-url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")

	return v
}

// Load reads the config file at path into v and decodes the result.
// An empty path looks for ats_agent.yaml in the working directory and
// carries on with defaults when it does not exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = New()
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges. Scoring ranges and the weight sum are
// delegated to ScoreConfig.Validate. Failures match matching.ErrInvalidInput.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &matching.InvalidInputError{Message: "config error", Cause: err}
	}
	if err := c.Scoring.Validate(); err != nil {
		return &matching.InvalidInputError{Field: "scoring", Message: "config error", Cause: err}
	}
	return nil
}
