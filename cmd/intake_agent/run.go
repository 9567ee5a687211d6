package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-intake/internal/config"
	"github.com/jonathan/candidate-intake/internal/pipeline"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full candidate intake pipeline end-to-end",
	Long: `Orchestrates the entire intake process: document ingestion -> field extraction -> profile scraping -> record merging -> storage -> form filling -> export.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath   string
	runResume       string
	runProfileURL   string
	runFormType     string
	runOutputDir    string
	runAPIKey       string
	runUseBrowser   bool
	runVerbose      bool
	runDatabaseURL  string
	runDatabasePath string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runResume, "resume", "r", "", "Path to resume document (txt, md or pdf)")
	runCommand.Flags().StringVarP(&runProfileURL, "profile-url", "p", "", "Candidate profile URL to scrape")
	runCommand.Flags().StringVarP(&runFormType, "form", "f", "", "Form template to fill (standard_hr_form or interview_assessment)")
	runCommand.Flags().StringVarP(&runOutputDir, "output", "o", "", "Directory for exported Excel forms")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for dynamic profile pages (requires Chrome)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Storage selection: PostgreSQL URL wins over the SQLite file path
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	runCommand.Flags().StringVar(&runDatabasePath, "db-path", "", "SQLite database file path (used when no PostgreSQL URL is set)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = runResume
	}
	if cmd.Flags().Changed("profile-url") {
		cfg.ProfileURL = runProfileURL
	}
	if cmd.Flags().Changed("form") {
		cfg.FormType = runFormType
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = runOutputDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("db-path") {
		cfg.DatabasePath = runDatabasePath
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		DatabasePath: config.DefaultDatabasePath,
		FormType:     config.DefaultFormType,
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.Resume == "" && cfg.ProfileURL == "" {
		return fmt.Errorf("either --resume or --profile-url must be provided (via flag or config)")
	}

	// Step 5: API Key handling. The pipeline degrades to record-based form
	// filling without one, so missing keys only warn.
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" && cfg.Verbose {
		_, _ = fmt.Fprintln(os.Stdout, "No Gemini API key set; forms will be filled from the record directly")
	}

	// Step 6: Database URL handling
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	opts := pipeline.RunOptions{
		ResumePath: cfg.Resume,
		ProfileURL: cfg.ProfileURL,
		FormType:   cfg.FormType,
		OutputDir:  cfg.OutputDir,
		APIKey:     cfg.APIKey,
		UseBrowser: cfg.UseBrowser,
		Verbose:    cfg.Verbose,
		Store:      store,
		Logger:     logger,
	}

	result, err := pipeline.RunPipeline(ctx, opts)
	if err != nil {
		return err
	}

	if result.Candidate != nil {
		_, _ = fmt.Fprintf(os.Stdout, "Stored candidate: %s\n", result.Candidate.ID)
	}
	if result.FormPath != "" {
		_, _ = fmt.Fprintf(os.Stdout, "Exported form: %s\n", result.FormPath)
	}

	return nil
}
