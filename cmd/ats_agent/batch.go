package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-matcher/internal/matching"
	"github.com/jonathan/ats-matcher/internal/observability"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score one resume against every job keyword file in a directory",
	RunE:  runBatch,
}

var (
	batchResumeFile  string
	batchJobsDir     string
	batchConcurrency int
	batchOutputFile  string
)

func init() {
	batchCmd.Flags().StringVarP(&batchResumeFile, "resume", "r", "", "Path to resume keywords JSON (required)")
	batchCmd.Flags().StringVar(&batchJobsDir, "jobs", "", "Directory of job keywords *.json files (required)")
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 0, "Jobs scored in parallel (default from config)")
	batchCmd.Flags().StringVarP(&batchOutputFile, "out", "o", "", "Also write all results as JSON to this file")

	_ = batchCmd.MarkFlagRequired("resume")
	_ = batchCmd.MarkFlagRequired("jobs")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	resume, err := readKeywordFile(batchResumeFile, "resume")
	if err != nil {
		return err
	}
	jobs, err := loadJobDir(batchJobsDir)
	if err != nil {
		return err
	}

	scorer, err := newScorer()
	if err != nil {
		return err
	}
	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = appConfig.Concurrency
	}

	results, err := matching.ScoreBatch(context.Background(), scorer, resume.Resume.Skills, jobs, concurrency)
	if err != nil {
		return err
	}

	ranked := rankResults(results)
	observability.NewPrinter(cmd.OutOrStdout()).PrintRanking(ranked)

	if batchOutputFile != "" {
		return writeJSON(cmd.OutOrStdout(), batchOutputFile, results)
	}
	return nil
}

// loadJobDir reads every *.json file in dir, sorted by name
func loadJobDir(dir string) ([]matching.NamedJob, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	if len(paths) == 0 {
		if _, statErr := os.Stat(dir); statErr != nil {
			return nil, fmt.Errorf("jobs directory not found: %w", statErr)
		}
		return nil, fmt.Errorf("no *.json job files in %s", dir)
	}
	sort.Strings(paths)

	jobs := make([]matching.NamedJob, 0, len(paths))
	for _, path := range paths {
		kw, err := readKeywordFile(path, filepath.Base(path))
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, matching.NamedJob{Name: filepath.Base(path), Job: kw.Job})
	}
	return jobs, nil
}

// rankResults orders results by score, best first; ties keep file order
func rankResults(results []matching.BatchResult) []observability.RankedJob {
	rows := make([]observability.RankedJob, 0, len(results))
	for _, r := range results {
		rows = append(rows, observability.RankedJob{Name: r.Name, Score: r.Result.Score, Missing: len(r.Result.Missing)})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
	return rows
}
