package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-intake/internal/config"
	"github.com/jonathan/candidate-intake/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored candidates to an Excel workbook",
	RunE:  runExport,
}

var (
	exportOut          string
	exportQuery        string
	exportDatabaseURL  string
	exportDatabasePath string
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "candidates.xlsx", "Output workbook path")
	exportCmd.Flags().StringVarP(&exportQuery, "query", "q", "", "Only export candidates matching this search query")
	exportCmd.Flags().StringVar(&exportDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	exportCmd.Flags().StringVar(&exportDatabasePath, "db-path", "", "SQLite database file path (used when no PostgreSQL URL is set)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.Config{
		DatabaseURL:  exportDatabaseURL,
		DatabasePath: exportDatabasePath,
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	candidates, err := store.ListCandidates(ctx)
	if exportQuery != "" {
		candidates, err = store.SearchCandidates(ctx, exportQuery)
	}
	if err != nil {
		return fmt.Errorf("failed to load candidates: %w", err)
	}
	if len(candidates) == 0 {
		return fmt.Errorf("no candidates to export")
	}

	if err := export.CandidatesToExcel(candidates, exportOut); err != nil {
		return fmt.Errorf("failed to export candidates: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Exported %d candidate(s) to %s\n", len(candidates), exportOut)
	return nil
}
