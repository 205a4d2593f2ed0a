package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-matcher/internal/fetch"
	"github.com/jonathan/ats-matcher/internal/observability"
	"github.com/jonathan/ats-matcher/internal/pipeline"
	"github.com/jonathan/ats-matcher/internal/schemas"
	"github.com/jonathan/ats-matcher/internal/types"
	root "github.com/jonathan/ats-matcher/schemas"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full analysis: load, extract, score and write a report",
	Long: `Load a resume and a job description, extract keywords from both with the language model,
score the match and write ats_report_<Company>_<timestamp>.json plus a text summary.`,
	RunE: runAnalyze,
}

var (
	analyzeResumeFile     string
	analyzeJobFile        string
	analyzeJobURL         string
	analyzeSectionsFile   string
	analyzeOutputDir      string
	analyzeSave           bool
	analyzeLabel          string
	analyzeAPIKey         string
	analyzeFallbackResume string
	analyzeFallbackJob    string
	analyzeVerbose        bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumeFile, "resume", "r", "", "Path to resume (.txt, .md, .tex or .pdf, required)")
	analyzeCmd.Flags().StringVarP(&analyzeJobFile, "job", "j", "", "Path to job description")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "Job posting URL")
	analyzeCmd.Flags().StringVar(&analyzeSectionsFile, "sections", "", "Path to section ratios JSON")
	analyzeCmd.Flags().StringVar(&analyzeOutputDir, "out-dir", ".", "Directory for the report files")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Store the result in the database")
	analyzeCmd.Flags().StringVar(&analyzeLabel, "label", "", "Label for the stored report (default: company)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	analyzeCmd.Flags().StringVar(&analyzeFallbackResume, "fallback-resume", "", "Resume keywords JSON to use if extraction fails")
	analyzeCmd.Flags().StringVar(&analyzeFallbackJob, "fallback-job", "", "Job keywords JSON to use if extraction fails")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print job keywords and the match summary")

	_ = analyzeCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if (analyzeJobFile == "") == (analyzeJobURL == "") {
		return fmt.Errorf("provide exactly one of --job or --job-url")
	}

	ctx := context.Background()

	opts := pipeline.RunOptions{
		ResumePath: analyzeResumeFile,
		JobPath:    analyzeJobFile,
		JobURL:     analyzeJobURL,
		Fetch:      fetch.DefaultOptions(),
		Label:      analyzeLabel,
		Logger:     appLogger,
	}

	var err error
	if opts.Sections, err = readSections(analyzeSectionsFile); err != nil {
		return err
	}
	if analyzeFallbackResume != "" {
		kw, err := readKeywordFile(analyzeFallbackResume, "fallback-resume")
		if err != nil {
			return err
		}
		opts.FallbackResume = &kw.Resume
	}
	if analyzeFallbackJob != "" {
		kw, err := readKeywordFile(analyzeFallbackJob, "fallback-job")
		if err != nil {
			return err
		}
		opts.FallbackJob = &kw.Job
	}
	if opts.Scorer, err = newScorer(); err != nil {
		return err
	}

	extractor, client, err := newExtractor(ctx, analyzeAPIKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()
	opts.Extractor = extractor

	if analyzeSave {
		database, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer database.Close()
		opts.Store = database
	}

	stderr := cmd.ErrOrStderr()
	opts.OnProgress = func(e pipeline.ProgressEvent) {
		_, _ = fmt.Fprintf(stderr, "[%s] %s\n", e.Category, e.Message)
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	if err := schemas.ValidateValue(root.MatchResult, result.Match); err != nil {
		appLogger.Warn("match result does not validate against schema", zap.Error(err))
	}

	printer := observability.NewPrinter(stderr)
	if analyzeVerbose {
		printer.PrintJobKeywords(result.Job)
	}

	now := time.Now()
	reportPath := filepath.Join(analyzeOutputDir, pipeline.ReportFileName(result.Company, now))
	if err := writeJSON(cmd.OutOrStdout(), reportPath, result); err != nil {
		return err
	}
	summaryPath := strings.TrimSuffix(reportPath, ".json") + ".txt"
	if err := writeSummary(summaryPath, result.Match); err != nil {
		return err
	}

	printer.PrintMatchResult(result.Match)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Report: %s\nSummary: %s\n", reportPath, summaryPath)
	return nil
}

// writeSummary stores the boxed human-readable match summary next to the report
func writeSummary(path string, result *types.MatchResult) error {
	var buf bytes.Buffer
	observability.NewPrinter(&buf).PrintMatchResult(result)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
