// Package extraction turns resume and job description text into keyword lists.
// The heavy lifting is done by a language model; this package builds the
// prompt, checks the response and reports failures as typed errors.
package extraction

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/ats-matcher/internal/llm"
	"github.com/jonathan/ats-matcher/internal/logger"
	"github.com/jonathan/ats-matcher/internal/prompts"
	"github.com/jonathan/ats-matcher/internal/types"
)

const (
	promptFile      = "extraction.json"
	maxLoggedLength = 500
)

// Extractor pulls keywords out of free text
type Extractor interface {
	ResumeKeywords(ctx context.Context, text string) (*types.ResumeKeywords, error)
	JobKeywords(ctx context.Context, text string) (*types.JobKeywords, error)
}

// LLMExtractor implements Extractor on top of an llm.Client
type LLMExtractor struct {
	client llm.Client
	logger *zap.Logger
}

// NewLLMExtractor wires an extractor to client. A nil logger discards output.
func NewLLMExtractor(client llm.Client, log *zap.Logger) *LLMExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &LLMExtractor{client: client, logger: log}
}

// ResumeKeywords extracts skills and education entries from resume text.
func (e *LLMExtractor) ResumeKeywords(ctx context.Context, text string) (*types.ResumeKeywords, error) {
	var out types.ResumeKeywords
	if err := e.extract(ctx, "resume_skills", text, &out); err != nil {
		return nil, err
	}
	out.Skills = compact(out.Skills)
	out.Education = compact(out.Education)
	if len(out.Skills) == 0 {
		return nil, &ParseError{Message: "model returned no resume skills"}
	}
	return &out, nil
}

// JobKeywords extracts tiered keywords from job description text.
func (e *LLMExtractor) JobKeywords(ctx context.Context, text string) (*types.JobKeywords, error) {
	var out types.JobKeywords
	if err := e.extract(ctx, "job_keywords", text, &out); err != nil {
		return nil, err
	}
	out.Required = compact(out.Required)
	out.Preferred = compact(out.Preferred)
	out.Keywords = compact(out.Keywords)
	out.Company = strings.TrimSpace(out.Company)
	out.RoleTitle = strings.TrimSpace(out.RoleTitle)
	if out.IsEmpty() {
		return nil, &ParseError{Message: "model returned no job keywords"}
	}
	return &out, nil
}

func (e *LLMExtractor) extract(ctx context.Context, key, text string, dest any) error {
	if strings.TrimSpace(text) == "" {
		return &ParseError{Message: "input text is empty"}
	}

	template, err := prompts.Get(promptFile, key)
	if err != nil {
		return err
	}
	prompt := prompts.Format(template, map[string]string{"Text": text})

	response, err := e.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return &APICallError{Message: key, Cause: err}
	}
	e.logger.Debug("model response", zap.String("prompt", key), zap.String("response", logger.Truncate(response, maxLoggedLength)))

	jsonText, err := llm.ExtractJSON(response)
	if err != nil {
		return &ParseError{Message: "no JSON in model response", Cause: err}
	}
	if err := json.Unmarshal([]byte(jsonText), dest); err != nil {
		return &ParseError{Message: "failed to decode model response", Cause: err}
	}
	return nil
}

// compact trims entries and drops empty ones, keeping order.
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Static is an Extractor that returns fixed keywords regardless of input.
type Static struct {
	Resume types.ResumeKeywords
	Job    types.JobKeywords
}

// ResumeKeywords returns a copy of s.Resume
func (s *Static) ResumeKeywords(_ context.Context, _ string) (*types.ResumeKeywords, error) {
	out := types.ResumeKeywords{
		Skills:    append([]string(nil), s.Resume.Skills...),
		Education: append([]string(nil), s.Resume.Education...),
	}
	return &out, nil
}

// JobKeywords returns a copy of s.Job
func (s *Static) JobKeywords(_ context.Context, _ string) (*types.JobKeywords, error) {
	out := s.Job
	out.Required = append([]string(nil), s.Job.Required...)
	out.Preferred = append([]string(nil), s.Job.Preferred...)
	out.Keywords = append([]string(nil), s.Job.Keywords...)
	return &out, nil
}
