// Package main provides the entry point for the candidate intake agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "intake_agent",
	Short: "Candidate Intake Agent",
	Long:  "Candidate Intake Agent extracts structured candidate records from resume documents and public profiles, stores them, and fills recruitment forms via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
