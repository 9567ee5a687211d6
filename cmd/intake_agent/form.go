package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-intake/internal/config"
	"github.com/jonathan/candidate-intake/internal/export"
	"github.com/jonathan/candidate-intake/internal/forms"
	"github.com/jonathan/candidate-intake/internal/llm"
	"github.com/jonathan/candidate-intake/internal/observability"
)

var formCmd = &cobra.Command{
	Use:   "form [candidate-id]",
	Short: "Fill a recruitment form for a stored candidate",
	Long:  "Fill a form template from a stored candidate record, save it alongside the candidate, and optionally export it as an Excel workbook.",
	Args:  cobra.ExactArgs(1),
	RunE:  runForm,
}

var (
	formType         string
	formOutputDir    string
	formAPIKey       string
	formDatabaseURL  string
	formDatabasePath string
	formVerbose      bool
)

func init() {
	formCmd.Flags().StringVarP(&formType, "form", "f", config.DefaultFormType, "Form template to fill (standard_hr_form or interview_assessment)")
	formCmd.Flags().StringVarP(&formOutputDir, "output", "o", "", "Directory for the exported Excel form")
	formCmd.Flags().StringVar(&formAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	formCmd.Flags().StringVar(&formDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	formCmd.Flags().StringVar(&formDatabasePath, "db-path", "", "SQLite database file path (used when no PostgreSQL URL is set)")
	formCmd.Flags().BoolVarP(&formVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(formCmd)
}

func runForm(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	candidateID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid candidate ID %q: %w", args[0], err)
	}

	template, ok := forms.TemplateByName(formType)
	if !ok {
		return fmt.Errorf("unknown form type: %s", formType)
	}

	cfg := config.Config{
		DatabaseURL:  formDatabaseURL,
		DatabasePath: formDatabasePath,
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	candidate, err := store.GetCandidate(ctx, candidateID)
	if err != nil {
		return fmt.Errorf("failed to load candidate: %w", err)
	}

	logger, err := newLogger(formVerbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	apiKey := formAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	var client llm.Client
	if apiKey != "" {
		client, err = llm.NewClient(ctx, llm.DefaultGeminiConfig(), apiKey)
		if err != nil {
			logger.Warn("LLM client unavailable, filling form from the record", zap.Error(err))
			client = nil
		}
	}
	if closer, ok := client.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	filler := forms.NewFiller(client, forms.WithLogger(logger))
	form, err := filler.Fill(ctx, template, candidate.Record)
	if err != nil {
		return fmt.Errorf("failed to fill form: %w", err)
	}

	var outputPath string
	if formOutputDir != "" {
		if err := os.MkdirAll(formOutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		outputPath = filepath.Join(formOutputDir, form.FormType+".xlsx")
		if err := export.FormToExcel(form, template, outputPath); err != nil {
			return fmt.Errorf("failed to export form: %w", err)
		}
	}

	if _, err := store.SaveForm(ctx, candidate.ID, form.FormType, form, outputPath); err != nil {
		return fmt.Errorf("failed to save form: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintForm(form.FormType, form.Sections)
	if outputPath != "" {
		fmt.Fprintf(os.Stdout, "Exported form: %s\n", outputPath)
	}

	return nil
}
