package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-intake/internal/extract"
	"github.com/jonathan/candidate-intake/internal/ingestion"
	"github.com/jonathan/candidate-intake/internal/observability"
)

var parseCmd = &cobra.Command{
	Use:   "parse [resume-path]",
	Short: "Extract a candidate record from a resume document",
	Long:  "Read a resume document, extract the candidate record, and print it without storing anything. Pass --json to emit raw JSON instead of the boxed summary.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var parseJSON bool

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print the extracted record as JSON")

	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	text, _, err := ingestion.ReadDocument(args[0])
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	record := extract.NewBuilder().BuildRecord(text)

	if parseJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(record)
	}

	observability.NewPrinter(os.Stdout).PrintRecord(&record)
	return nil
}
