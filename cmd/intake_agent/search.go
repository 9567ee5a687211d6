package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-intake/internal/config"
	"github.com/jonathan/candidate-intake/internal/observability"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stored candidates",
	Long:  "Search stored candidates by name, skill, position, company, or education. With no query, all candidates are listed newest first.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

var (
	searchDatabaseURL  string
	searchDatabasePath string
	searchFull         bool
)

func init() {
	searchCmd.Flags().StringVar(&searchDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	searchCmd.Flags().StringVar(&searchDatabasePath, "db-path", "", "SQLite database file path (used when no PostgreSQL URL is set)")
	searchCmd.Flags().BoolVar(&searchFull, "full", false, "Print the full record for each match")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := config.Config{
		DatabaseURL:  searchDatabaseURL,
		DatabasePath: searchDatabasePath,
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var query string
	if len(args) > 0 {
		query = strings.TrimSpace(args[0])
	}

	candidates, err := store.ListCandidates(ctx)
	if query != "" {
		candidates, err = store.SearchCandidates(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(candidates) == 0 {
		fmt.Fprintln(os.Stdout, "No candidates found")
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	for _, candidate := range candidates {
		if searchFull {
			record := candidate.Record
			printer.PrintRecord(&record)
			continue
		}
		fmt.Fprintf(os.Stdout, "%s  %-24s %s\n", candidate.ID, candidate.Record.Name, candidate.Record.CurrentPosition)
	}

	return nil
}
