package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-intake/internal/config"
	"github.com/jonathan/candidate-intake/internal/pipeline"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Batch-ingest a directory of resume documents",
	Long:  "Walk a directory of resume documents, extract a candidate record from each one, and store the results. Unreadable or unsupported files are skipped.",
	RunE:  runIngest,
}

var (
	ingestDir          string
	ingestDatabaseURL  string
	ingestDatabasePath string
	ingestVerbose      bool
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestDir, "dir", "d", "", "Directory containing resume documents (required)")
	ingestCmd.Flags().StringVar(&ingestDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	ingestCmd.Flags().StringVar(&ingestDatabasePath, "db-path", "", "SQLite database file path (used when no PostgreSQL URL is set)")
	ingestCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print detailed debug information")

	ingestCmd.MarkFlagRequired("dir")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.Config{
		DatabaseURL:  ingestDatabaseURL,
		DatabasePath: ingestDatabasePath,
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	logger, err := newLogger(ingestVerbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	candidates, err := pipeline.IngestDirectory(ctx, ingestDir, store, logger)
	if err != nil {
		return fmt.Errorf("failed to ingest directory: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Ingested %d candidate(s) from %s\n", len(candidates), ingestDir)
	for _, candidate := range candidates {
		fmt.Fprintf(os.Stdout, "  %s  %s\n", candidate.ID, candidate.Record.Name)
	}

	return nil
}
