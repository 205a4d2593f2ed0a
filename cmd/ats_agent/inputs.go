package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/ats-matcher/internal/db"
	"github.com/jonathan/ats-matcher/internal/extraction"
	"github.com/jonathan/ats-matcher/internal/llm"
	"github.com/jonathan/ats-matcher/internal/matching"
	"github.com/jonathan/ats-matcher/internal/pipeline"
	"github.com/jonathan/ats-matcher/internal/types"
)

// keywordFile is a resume or job keyword file: either a bare JSON array of
// keywords or an object with named lists
type keywordFile struct {
	Tiered bool // false when the file was a bare array
	Resume types.ResumeKeywords
	Job    types.JobKeywords
}

type rawKeywords struct {
	Company   string          `json:"company"`
	RoleTitle string          `json:"role_title"`
	Skills    json.RawMessage `json:"skills"`
	Education json.RawMessage `json:"education"`
	Required  json.RawMessage `json:"required"`
	Preferred json.RawMessage `json:"preferred"`
	Keywords  json.RawMessage `json:"keywords"`
}

// readKeywordFile loads path; field names the input in error messages.
func readKeywordFile(path, field string) (*keywordFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s file: %w", field, err)
	}
	return parseKeywords(data, field)
}

func parseKeywords(data []byte, field string) (*keywordFile, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		list, err := matching.DecodeKeywords(field, trimmed)
		if err != nil {
			return nil, err
		}
		return &keywordFile{
			Resume: types.ResumeKeywords{Skills: list},
			Job:    types.JobKeywords{Keywords: list},
		}, nil
	}

	var raw rawKeywords
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &matching.InvalidInputError{
			Field:   field,
			Message: "expected a JSON array of strings or an object of keyword lists",
			Cause:   err,
		}
	}

	out := &keywordFile{Tiered: true}
	out.Job.Company, out.Job.RoleTitle = raw.Company, raw.RoleTitle
	lists := []struct {
		name string
		raw  json.RawMessage
		dest *[]string
	}{
		{"skills", raw.Skills, &out.Resume.Skills},
		{"education", raw.Education, &out.Resume.Education},
		{"required", raw.Required, &out.Job.Required},
		{"preferred", raw.Preferred, &out.Job.Preferred},
		{"keywords", raw.Keywords, &out.Job.Keywords},
	}
	for _, l := range lists {
		if len(l.raw) == 0 || string(l.raw) == "null" {
			continue
		}
		values, err := matching.DecodeKeywords(field+"."+l.name, l.raw)
		if err != nil {
			return nil, err
		}
		*l.dest = values
	}
	return out, nil
}

// readSections loads per-section ratios for the weighted scoring mode
func readSections(path string) (*pipeline.SectionRatios, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sections file: %w", err)
	}
	var ratios pipeline.SectionRatios
	if err := json.Unmarshal(data, &ratios); err != nil {
		return nil, &matching.InvalidInputError{Field: "sections", Message: "invalid sections file", Cause: err}
	}
	return &ratios, nil
}

// writeJSON writes v to path, or to w when path is empty
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func newScorer() (*matching.Scorer, error) {
	return matching.NewScorer(&appConfig.Scoring)
}

// newExtractor builds the model-backed extractor; the caller closes the client
func newExtractor(ctx context.Context, apiKey string) (*extraction.LLMExtractor, llm.Client, error) {
	if apiKey == "" {
		apiKey = appConfig.LLM.APIKey
	}
	if apiKey == "" {
		return nil, nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	llmCfg := llm.DefaultConfig()
	if appConfig.LLM.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, appConfig.LLM.Model)
	}
	client, err := llm.NewGeminiClient(ctx, llmCfg, apiKey, appLogger)
	if err != nil {
		return nil, nil, err
	}
	return extraction.NewLLMExtractor(client, appLogger), client, nil
}

// openDB connects using the configured database URL and prepares the schema
func openDB(ctx context.Context) (*db.DB, error) {
	if appConfig.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for this command")
	}
	database, err := db.Connect(ctx, appConfig.DatabaseURL, appLogger)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
