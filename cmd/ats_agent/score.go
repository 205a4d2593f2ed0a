package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-matcher/internal/db"
	"github.com/jonathan/ats-matcher/internal/observability"
	"github.com/jonathan/ats-matcher/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score resume keywords against job keywords",
	Long: `Score already-extracted keywords. Each input is either a JSON array of strings or an object:
  resume: {"skills": [...], "education": [...]}
  job:    {"company": "...", "required": [...], "preferred": [...], "keywords": [...]}
A tiered job object adds missing-by-priority buckets and recommendations; --sections switches
to the weighted section score.`,
	RunE: runScore,
}

var (
	scoreResumeFile   string
	scoreJobFile      string
	scoreSectionsFile string
	scoreOutputFile   string
	scoreSave         bool
	scoreLabel        string
	scoreVerbose      bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResumeFile, "resume", "r", "", "Path to resume keywords JSON (required)")
	scoreCmd.Flags().StringVarP(&scoreJobFile, "job", "j", "", "Path to job keywords JSON (required)")
	scoreCmd.Flags().StringVar(&scoreSectionsFile, "sections", "", "Path to section ratios JSON (experience_match, education_match, keyword_density)")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Write the match result to this file instead of stdout")
	scoreCmd.Flags().BoolVar(&scoreSave, "save", false, "Store the result in the database")
	scoreCmd.Flags().StringVar(&scoreLabel, "label", "", "Label for the stored report")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a summary to stderr")

	_ = scoreCmd.MarkFlagRequired("resume")
	_ = scoreCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	resume, err := readKeywordFile(scoreResumeFile, "resume")
	if err != nil {
		return err
	}
	job, err := readKeywordFile(scoreJobFile, "job")
	if err != nil {
		return err
	}
	sections, err := readSections(scoreSectionsFile)
	if err != nil {
		return err
	}

	scorer, err := newScorer()
	if err != nil {
		return err
	}

	var result *types.MatchResult
	switch {
	case sections != nil:
		result, err = scorer.ScoreSections(&types.SectionInput{
			ResumeSkills:    resume.Resume.Skills,
			Job:             job.Job,
			ExperienceMatch: sections.ExperienceMatch,
			EducationMatch:  sections.EducationMatch,
			KeywordDensity:  sections.KeywordDensity,
			Education:       resume.Resume.Education,
		})
	case job.Tiered:
		result, err = scorer.ScoreJob(resume.Resume.Skills, job.Job)
	default:
		result, err = scorer.Score(resume.Resume.Skills, job.Job.All())
	}
	if err != nil {
		return err
	}
	appLogger.Debug("scored", zap.Float64("score", result.Score), zap.Int("missing", len(result.Missing)))

	if scoreVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintMatchResult(result)
	}

	if scoreSave {
		ctx := context.Background()
		database, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		id, err := database.SaveReport(ctx, db.NewReport(scoreLabel, &job.Job, result))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved report %s\n", id)
	}

	return writeJSON(cmd.OutOrStdout(), scoreOutputFile, result)
}
