package pipeline

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-matcher/internal/db"
	"github.com/jonathan/ats-matcher/internal/extraction"
	"github.com/jonathan/ats-matcher/internal/logger"
	"github.com/jonathan/ats-matcher/internal/pipeline/steps"
	"github.com/jonathan/ats-matcher/internal/types"
)

type failingExtractor struct{}

func (failingExtractor) ResumeKeywords(context.Context, string) (*types.ResumeKeywords, error) {
	return nil, &extraction.APICallError{Message: "resume_skills", Cause: errors.New("quota exceeded")}
}

func (failingExtractor) JobKeywords(context.Context, string) (*types.JobKeywords, error) {
	return nil, &extraction.APICallError{Message: "job_keywords", Cause: errors.New("quota exceeded")}
}

type memoryStore struct {
	mu      sync.Mutex
	reports []*db.Report
	err     error
}

func (m *memoryStore) SaveReport(_ context.Context, report *db.Report) (uuid.UUID, error) {
	if m.err != nil {
		return uuid.Nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	report.ID = uuid.New()
	m.reports = append(m.reports, report)
	return report.ID, nil
}

func staticExtractor() *extraction.Static {
	return &extraction.Static{
		Resume: types.ResumeKeywords{Skills: []string{"Python", "SQL", "Docker"}},
		Job: types.JobKeywords{
			Required:  []string{"python", "kubernetes"},
			Preferred: []string{"sql"},
		},
	}
}

func TestRun_ScoresInlineText(t *testing.T) {
	var mu sync.Mutex
	var events []ProgressEvent

	result, err := Run(context.Background(), RunOptions{
		ResumeText: "Python developer with SQL and Docker",
		JobText:    "Backend Engineer at Acme\nRequired: Python, Kubernetes",
		Extractor:  staticExtractor(),
		OnProgress: func(e ProgressEvent) {
			mu.Lock()
			events = append(events, e)
			mu.Unlock()
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme", result.Company)
	assert.Equal(t, []string{"python", "sql"}, result.Match.MatchedExact)
	assert.Equal(t, []string{"kubernetes"}, result.Match.Missing)
	assert.InDelta(t, 66.6667, result.Match.Score, 0.001)
	require.NotNil(t, result.Match.MissingByPriority)
	assert.Equal(t, []string{"kubernetes"}, result.Match.MissingByPriority.Critical)
	assert.Empty(t, result.Fallbacks)
	assert.Equal(t, uuid.Nil, result.ReportID)

	stepNames := make([]string, 0, len(events))
	for _, e := range events {
		stepNames = append(stepNames, e.Step)
		assert.Equal(t, steps.StepRegistry[e.Step].Category, e.Category)
	}
	assert.ElementsMatch(t, []string{steps.LoadResume, steps.LoadJob, steps.ExtractResume, steps.ExtractJob, steps.Score}, stepNames)
	assert.Equal(t, steps.Score, stepNames[len(stepNames)-1])
}

func TestRun_CompanyFromExtraction(t *testing.T) {
	ext := staticExtractor()
	ext.Job.Company = "Globex"

	result, err := Run(context.Background(), RunOptions{
		ResumeText: "resume",
		JobText:    "Engineer at Acme",
		Extractor:  ext,
	})
	require.NoError(t, err)
	assert.Equal(t, "Globex", result.Company)
}

func TestRun_SectionMode(t *testing.T) {
	result, err := Run(context.Background(), RunOptions{
		ResumeText: "resume",
		JobText:    "job",
		Extractor:  staticExtractor(),
		Sections:   &SectionRatios{ExperienceMatch: 1, EducationMatch: 1, KeywordDensity: 1},
	})
	require.NoError(t, err)

	require.NotNil(t, result.Match.SectionScores)
	// skills 2/3, everything else full
	assert.InDelta(t, 100*(0.40*2.0/3.0+0.35+0.15+0.10), result.Match.Score, 1e-6)
	assert.Contains(t, result.Match.Suggestions, "Add an education section listing your degrees, institutions and relevant certifications")
}

func TestRun_InvalidSectionRatio(t *testing.T) {
	_, err := Run(context.Background(), RunOptions{
		ResumeText: "resume",
		JobText:    "job",
		Extractor:  staticExtractor(),
		Sections:   &SectionRatios{ExperienceMatch: 1.5},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scoring failed")
}

func TestRun_ExtractionFailureWithoutFallback(t *testing.T) {
	_, err := Run(context.Background(), RunOptions{
		ResumeText: "resume",
		JobText:    "job",
		Extractor:  failingExtractor{},
	})
	require.Error(t, err)

	var apiErr *extraction.APICallError
	assert.True(t, errors.As(err, &apiErr))
}

func TestRun_ExplicitFallback(t *testing.T) {
	var logs bytes.Buffer

	result, err := Run(context.Background(), RunOptions{
		Logger:         logger.NewWriter(&logs, logger.Options{}),
		ResumeText:     "resume",
		JobText:        "Data Engineer @ Initech",
		Extractor:      failingExtractor{},
		FallbackResume: &types.ResumeKeywords{Skills: []string{"go"}},
		FallbackJob:    &types.JobKeywords{Keywords: []string{"go", "rust"}},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{steps.ExtractResume, steps.ExtractJob}, result.Fallbacks)
	assert.InDelta(t, 50, result.Match.Score, 1e-9)
	assert.Equal(t, "Initech", result.Company)
	assert.Contains(t, logs.String(), "resume extraction failed, using fallback keywords")
	assert.Contains(t, logs.String(), "job extraction failed, using fallback keywords")
}

func TestRun_SavesReport(t *testing.T) {
	store := &memoryStore{}

	result, err := Run(context.Background(), RunOptions{
		ResumeText: "resume",
		JobText:    "Engineer at Acme",
		Extractor:  staticExtractor(),
		Store:      store,
	})
	require.NoError(t, err)

	require.Len(t, store.reports, 1)
	assert.Equal(t, store.reports[0].ID, result.ReportID)
	assert.Equal(t, "Acme", store.reports[0].Label)
	assert.Same(t, result.Match, store.reports[0].Result)
}

func TestRun_StoreError(t *testing.T) {
	_, err := Run(context.Background(), RunOptions{
		ResumeText: "resume",
		JobText:    "job",
		Extractor:  staticExtractor(),
		Store:      &memoryStore{err: errors.New("connection refused")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving report failed")
}

func TestRun_LoadsFilesAndURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><main><h1>Platform Engineer</h1><p>Kubernetes and Python</p></main></body></html>`))
	}))
	defer server.Close()

	resumePath := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte("Python, SQL"), 0o644))

	result, err := Run(context.Background(), RunOptions{
		ResumePath: resumePath,
		JobURL:     server.URL,
		Extractor:  staticExtractor(),
	})
	require.NoError(t, err)

	assert.Equal(t, resumePath, result.ResumeSource.Source)
	assert.Equal(t, server.URL, result.JobSource.Source)
}

func TestRun_MissingSources(t *testing.T) {
	_, err := Run(context.Background(), RunOptions{JobText: "job", Extractor: staticExtractor()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no resume source")

	_, err = Run(context.Background(), RunOptions{ResumeText: "resume", Extractor: staticExtractor()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no job description source")

	_, err = Run(context.Background(), RunOptions{ResumeText: "resume", JobText: "job"})
	require.Error(t, err)
}

func TestReportFileName(t *testing.T) {
	at := time.Date(2025, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "ats_report_Acme_Corp_20250309_140507.json", ReportFileName("Acme_Corp", at))
	assert.Equal(t, "ats_report_Company_20250309_140507.json", ReportFileName("", at))
}

func TestReportFileName_StripsPathSeparators(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	name := ReportFileName("../../Acme Corp/Inc", at)
	assert.Equal(t, "ats_report_Acme_Corp_Inc_20260102_030405.json", name)
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "..")

	outDir := filepath.Join("out", "reports")
	assert.Equal(t, outDir, filepath.Dir(filepath.Join(outDir, name)))
	assert.Equal(t, "ats_report_Company_20260102_030405.json", ReportFileName("../", at))
}
