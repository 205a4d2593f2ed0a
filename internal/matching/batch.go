package matching

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-matcher/internal/types"
)

// NamedJob is one job description's keywords with a label for reporting
type NamedJob struct {
	Name string
	Job  types.JobKeywords
}

// BatchResult pairs a job label with its match report
type BatchResult struct {
	Name   string             `json:"name"`
	Result *types.MatchResult `json:"result"`
}

// ScoreBatch scores one resume against many jobs with at most concurrency
// jobs in flight. Results keep the order of jobs.
func ScoreBatch(ctx context.Context, s *Scorer, resumeSkills []string, jobs []NamedJob, concurrency int) ([]BatchResult, error) {
	if s == nil {
		return nil, fmt.Errorf("scorer is nil")
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]BatchResult, len(jobs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			res, err := s.ScoreJob(resumeSkills, job.Job)
			if err != nil {
				return fmt.Errorf("scoring %s failed: %w", job.Name, err)
			}
			// each goroutine owns its own index
			results[i] = BatchResult{Name: job.Name, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
