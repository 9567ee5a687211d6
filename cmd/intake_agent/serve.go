package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-intake/internal/config"
	"github.com/jonathan/candidate-intake/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for ingesting candidates, searching records, and generating forms. Bearer token auth is enabled when JWT_SECRET is set.`,
	RunE:  runServe,
}

var (
	serveAddr         string
	serveUseBrowser   bool
	serveDatabaseURL  string
	serveDatabasePath string
	serveVerbose      bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", config.DefaultServerAddr, "Address to listen on")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for dynamic profile pages (requires Chrome)")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&serveDatabasePath, "db-path", "", "SQLite database file path (used when no PostgreSQL URL is set)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.Config{
		DatabaseURL:  serveDatabaseURL,
		DatabasePath: serveDatabasePath,
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	logger, err := newLogger(serveVerbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	// Bearer auth is opt-in: configured only when JWT_SECRET is present.
	var jwtCfg *config.JWTConfig
	if os.Getenv("JWT_SECRET") != "" {
		jwtCfg, err = config.NewJWTConfig()
		if err != nil {
			return fmt.Errorf("failed to load JWT config: %w", err)
		}
		logger.Info("bearer token auth enabled")
	} else {
		logger.Warn("JWT_SECRET not set, API endpoints are unauthenticated")
	}

	srv, err := server.New(store, server.Config{
		Addr:       serveAddr,
		APIKey:     os.Getenv("GEMINI_API_KEY"),
		UseBrowser: serveUseBrowser,
		Logger:     logger,
		JWT:        jwtCfg,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
