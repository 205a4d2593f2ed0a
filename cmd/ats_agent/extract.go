package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-matcher/internal/fetch"
	"github.com/jonathan/ats-matcher/internal/ingestion"
	"github.com/jonathan/ats-matcher/internal/observability"
	"github.com/jonathan/ats-matcher/internal/schemas"
	root "github.com/jonathan/ats-matcher/schemas"
)

const (
	kindResume = "resume"
	kindJob    = "job"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract keywords from a resume or job description with the language model",
	Long:  "Extract keywords from a text, LaTeX or PDF file (or a job posting URL) and write them as JSON that the score command accepts.",
	RunE:  runExtract,
}

var (
	extractInputFile  string
	extractURL        string
	extractKind       string
	extractOutputFile string
	extractAPIKey     string
	extractVerbose    bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "input", "i", "", "Path to the document")
	extractCmd.Flags().StringVar(&extractURL, "url", "", "Job posting URL (implies --kind job)")
	extractCmd.Flags().StringVarP(&extractKind, "kind", "k", kindJob, "Document kind: resume or job")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Write keywords to this file instead of stdout")
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print a summary to stderr")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	if (extractInputFile == "") == (extractURL == "") {
		return fmt.Errorf("provide exactly one of --input or --url")
	}
	if extractURL != "" {
		extractKind = kindJob
	}
	if extractKind != kindResume && extractKind != kindJob {
		return fmt.Errorf("invalid --kind %q: must be resume or job", extractKind)
	}

	ctx := context.Background()

	var doc *ingestion.Document
	var err error
	if extractURL != "" {
		doc, err = ingestion.LoadURL(ctx, extractURL, fetch.DefaultOptions())
	} else {
		doc, err = ingestion.LoadFile(extractInputFile)
	}
	if err != nil {
		return err
	}

	extractor, client, err := newExtractor(ctx, extractAPIKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	var out any
	schemaName := root.ResumeKeywords
	if extractKind == kindResume {
		out, err = extractor.ResumeKeywords(ctx, doc.Text)
	} else {
		schemaName = root.JobKeywords
		job, jobErr := extractor.JobKeywords(ctx, doc.Text)
		if jobErr == nil && job.Company == "" {
			job.Company = ingestion.ExtractCompanyName(doc.Text)
		}
		if jobErr == nil && extractVerbose {
			observability.NewPrinter(cmd.ErrOrStderr()).PrintJobKeywords(job)
		}
		out, err = job, jobErr
	}
	if err != nil {
		return fmt.Errorf("failed to extract %s keywords: %w", extractKind, err)
	}

	if err := schemas.ValidateValue(schemaName, out); err != nil {
		return fmt.Errorf("extracted keywords do not validate against schema: %w", err)
	}

	return writeJSON(cmd.OutOrStdout(), extractOutputFile, out)
}
