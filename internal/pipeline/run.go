// Package pipeline orchestrates one resume analysis: load both documents,
// extract keywords from them in parallel, score the match and optionally
// persist the report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-matcher/internal/db"
	"github.com/jonathan/ats-matcher/internal/extraction"
	"github.com/jonathan/ats-matcher/internal/fetch"
	"github.com/jonathan/ats-matcher/internal/ingestion"
	"github.com/jonathan/ats-matcher/internal/matching"
	"github.com/jonathan/ats-matcher/internal/pipeline/steps"
	"github.com/jonathan/ats-matcher/internal/types"
)

// ReportTimeLayout is the timestamp layout used in report file names
const ReportTimeLayout = "20060102_150405"

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. Loading and
// extraction run concurrently, so it may be called from several goroutines.
type ProgressCallback func(event ProgressEvent)

// ReportStore persists match reports; *db.DB implements it
type ReportStore interface {
	SaveReport(ctx context.Context, report *db.Report) (uuid.UUID, error)
}

// SectionRatios switches scoring to the weighted section mode
type SectionRatios struct {
	ExperienceMatch float64 `json:"experience_match"`
	EducationMatch  float64 `json:"education_match"`
	KeywordDensity  float64 `json:"keyword_density"`
}

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	// Resume source: ResumeText wins over ResumePath
	ResumePath string
	ResumeText string

	// Job source: JobText, then JobURL, then JobPath
	JobPath string
	JobURL  string
	JobText string

	Fetch     *fetch.Options
	Extractor extraction.Extractor
	Scorer    *matching.Scorer // nil uses the default configuration
	Sections  *SectionRatios

	// Used only when the corresponding extraction fails
	FallbackResume *types.ResumeKeywords
	FallbackJob    *types.JobKeywords

	Store ReportStore // nil skips persistence
	Label string

	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// Result is the outcome of a pipeline run
type Result struct {
	Company  string               `json:"company"`
	Resume   *types.ResumeKeywords `json:"resume"`
	Job      *types.JobKeywords    `json:"job"`
	Match    *types.MatchResult    `json:"match"`
	ReportID uuid.UUID            `json:"report_id,omitempty"`

	ResumeSource *ingestion.Metadata `json:"resume_source,omitempty"`
	JobSource    *ingestion.Metadata `json:"job_source,omitempty"`

	// Names of the extraction steps that fell back to caller-supplied keywords
	Fallbacks []string `json:"fallbacks,omitempty"`
}

// ReportFileName names a report after the company and the time it was produced.
// The company is reduced to file-name safe characters, so the result never
// contains a path separator.
func ReportFileName(company string, at time.Time) string {
	return fmt.Sprintf("ats_report_%s_%s.json", ingestion.SafeName(company), at.Format(ReportTimeLayout))
}

type runner struct {
	opts    *RunOptions
	log     *zap.Logger
	tracker *steps.Tracker
}

// emitProgress marks step completed and calls the progress callback if configured
func (r *runner) emitProgress(step, message string, content any) {
	r.tracker.Complete(step)
	r.log.Info(message, zap.String("step", step))
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: steps.StepRegistry[step].Category,
			Message:  message,
			Content:  content,
		})
	}
}

// Run executes the analysis pipeline
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if opts.Extractor == nil {
		return nil, errors.New("pipeline: extractor is required")
	}
	scorer := opts.Scorer
	if scorer == nil {
		var err error
		if scorer, err = matching.NewScorer(nil); err != nil {
			return nil, err
		}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	r := &runner{opts: &opts, log: log, tracker: steps.NewTracker()}
	result := &Result{}

	// Load and extract both documents in parallel
	g, gCtx := errgroup.WithContext(ctx)
	var fallbacks [2]string

	g.Go(func() error {
		doc, err := r.loadResume()
		if err != nil {
			return fmt.Errorf("loading resume failed: %w", err)
		}
		result.ResumeSource = doc.Metadata
		r.emitProgress(steps.LoadResume, "Loaded resume", doc.Metadata)

		resume, err := opts.Extractor.ResumeKeywords(gCtx, doc.Text)
		if err != nil {
			if opts.FallbackResume == nil || gCtx.Err() != nil {
				return fmt.Errorf("resume extraction failed: %w", err)
			}
			log.Warn("resume extraction failed, using fallback keywords", zap.Error(err))
			resume = copyResume(opts.FallbackResume)
			fallbacks[0] = steps.ExtractResume
		}
		result.Resume = resume
		r.emitProgress(steps.ExtractResume, fmt.Sprintf("Extracted %d resume skills", len(resume.Skills)), resume)
		return nil
	})

	g.Go(func() error {
		doc, err := r.loadJob(gCtx)
		if err != nil {
			return fmt.Errorf("loading job description failed: %w", err)
		}
		result.JobSource = doc.Metadata
		r.emitProgress(steps.LoadJob, "Loaded job description", doc.Metadata)

		job, err := opts.Extractor.JobKeywords(gCtx, doc.Text)
		if err != nil {
			if opts.FallbackJob == nil || gCtx.Err() != nil {
				return fmt.Errorf("job extraction failed: %w", err)
			}
			log.Warn("job extraction failed, using fallback keywords", zap.Error(err))
			job = copyJob(opts.FallbackJob)
			fallbacks[1] = steps.ExtractJob
		}
		result.Job = job
		result.Company = job.Company
		if result.Company == "" {
			result.Company = ingestion.ExtractCompanyName(doc.Text)
		}
		r.emitProgress(steps.ExtractJob, fmt.Sprintf("Extracted %d job keywords", len(job.All())), job)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, f := range fallbacks {
		if f != "" {
			result.Fallbacks = append(result.Fallbacks, f)
		}
	}

	if err := r.tracker.ValidateDependencies(steps.Score); err != nil {
		return nil, err
	}
	match, err := r.score(scorer, result)
	if err != nil {
		return nil, fmt.Errorf("scoring failed: %w", err)
	}
	result.Match = match
	r.emitProgress(steps.Score, fmt.Sprintf("Scored match: %.1f", match.Score), match)

	if opts.Store != nil {
		label := opts.Label
		if label == "" {
			label = result.Company
		}
		id, err := opts.Store.SaveReport(ctx, db.NewReport(label, result.Job, match))
		if err != nil {
			return nil, fmt.Errorf("saving report failed: %w", err)
		}
		result.ReportID = id
		r.emitProgress(steps.SaveReport, fmt.Sprintf("Saved report %s", id), nil)
	}

	return result, nil
}

func (r *runner) loadResume() (*ingestion.Document, error) {
	if r.opts.ResumeText != "" {
		return inlineDocument(r.opts.ResumeText, "inline:resume")
	}
	if r.opts.ResumePath == "" {
		return nil, errors.New("no resume source given")
	}
	return ingestion.LoadFile(r.opts.ResumePath)
}

func (r *runner) loadJob(ctx context.Context) (*ingestion.Document, error) {
	switch {
	case r.opts.JobText != "":
		return inlineDocument(r.opts.JobText, "inline:job")
	case r.opts.JobURL != "":
		return ingestion.LoadURL(ctx, r.opts.JobURL, r.opts.Fetch)
	case r.opts.JobPath != "":
		return ingestion.LoadFile(r.opts.JobPath)
	default:
		return nil, errors.New("no job description source given")
	}
}

func (r *runner) score(scorer *matching.Scorer, result *Result) (*types.MatchResult, error) {
	if s := r.opts.Sections; s != nil {
		return scorer.ScoreSections(&types.SectionInput{
			ResumeSkills:    result.Resume.Skills,
			Job:             *result.Job,
			ExperienceMatch: s.ExperienceMatch,
			EducationMatch:  s.EducationMatch,
			KeywordDensity:  s.KeywordDensity,
			Education:       result.Resume.Education,
		})
	}
	return scorer.ScoreJob(result.Resume.Skills, *result.Job)
}

func inlineDocument(text, source string) (*ingestion.Document, error) {
	clean := ingestion.CleanText(text)
	if clean == "" {
		return nil, fmt.Errorf("no text found in %s", source)
	}
	return &ingestion.Document{Text: clean, Metadata: ingestion.NewMetadata(clean, source, ingestion.KindText)}, nil
}

func copyResume(in *types.ResumeKeywords) *types.ResumeKeywords {
	return &types.ResumeKeywords{
		Skills:    append([]string(nil), in.Skills...),
		Education: append([]string(nil), in.Education...),
	}
}

func copyJob(in *types.JobKeywords) *types.JobKeywords {
	out := *in
	out.Required = append([]string(nil), in.Required...)
	out.Preferred = append([]string(nil), in.Preferred...)
	out.Keywords = append([]string(nil), in.Keywords...)
	return &out
}
