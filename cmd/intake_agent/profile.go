package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-intake/internal/observability"
	"github.com/jonathan/candidate-intake/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Scrape a candidate profile page",
	Long:  "Fetch a public candidate profile page, extract the structured fields, and print them. Pass --json to emit raw JSON instead of the boxed summary.",
	RunE:  runProfile,
}

var (
	profileURL        string
	profileUseBrowser bool
	profileJSON       bool
	profileVerbose    bool
)

func init() {
	profileCmd.Flags().StringVarP(&profileURL, "url", "u", "", "Profile URL to scrape (required)")
	profileCmd.Flags().BoolVar(&profileUseBrowser, "use-browser", false, "Use headless browser for dynamic profile pages (requires Chrome)")
	profileCmd.Flags().BoolVar(&profileJSON, "json", false, "Print the scraped profile as JSON")
	profileCmd.Flags().BoolVarP(&profileVerbose, "verbose", "v", false, "Print detailed debug information")

	profileCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	logger, err := newLogger(profileVerbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	options := []profile.ScraperOption{profile.WithLogger(logger)}
	if !profileUseBrowser {
		options = append(options, profile.WithoutBrowser())
	}
	scraper := profile.NewScraper(options...)

	data, err := scraper.GetProfileData(ctx, profileURL)
	if err != nil {
		return fmt.Errorf("failed to scrape profile: %w", err)
	}

	if profileJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}

	observability.NewPrinter(os.Stdout).PrintProfile(data)
	return nil
}
