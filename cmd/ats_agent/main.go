// Package main provides the ats_agent command line tool, which scores how well
// a resume's keywords cover a job description.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-matcher/internal/config"
	"github.com/jonathan/ats-matcher/internal/logger"
	"github.com/jonathan/ats-matcher/internal/matching"
)

// exitInvalidInput is the exit status for rejected input or configuration
const exitInvalidInput = 2

var (
	configPath string
	appConfig  *config.Config
	appLogger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "ats_agent",
	Short:         "ATS keyword matcher",
	Long:          "ats_agent extracts keywords from resumes and job descriptions and scores how well the resume covers the job, the way an applicant tracking system would.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		settings := config.New()
		flags := cmd.Root().PersistentFlags()
		if err := settings.BindPFlag("log.debug", flags.Lookup("debug")); err != nil {
			return err
		}
		if err := settings.BindPFlag("log.json", flags.Lookup("json-log")); err != nil {
			return err
		}

		cfg, err := config.Load(settings, configPath)
		if err != nil {
			return err
		}
		log, err := logger.New(logger.Options{JSON: cfg.Log.JSON, Debug: cfg.Log.Debug})
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		appConfig, appLogger = cfg, log
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = appLogger.Sync()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to config file (default ./ats_agent.yaml if present)")
	flags.Bool("debug", false, "Enable debug logging")
	flags.Bool("json-log", false, "Log as JSON instead of console text")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, matching.ErrInvalidInput) {
			os.Exit(exitInvalidInput)
		}
		os.Exit(1)
	}
}
