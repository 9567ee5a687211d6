package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-intake/internal/config"
	"github.com/jonathan/candidate-intake/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an API bearer token",
	Long:  "Mint a signed JWT for calling the REST API. Requires JWT_SECRET to be set to the same value the server uses.",
	RunE:  runToken,
}

var tokenClientID string

func init() {
	tokenCmd.Flags().StringVar(&tokenClientID, "client-id", "", "Client UUID to embed in the token (optional, generated if omitted)")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to load JWT config: %w", err)
	}

	clientID := uuid.New()
	if tokenClientID != "" {
		clientID, err = uuid.Parse(tokenClientID)
		if err != nil {
			return fmt.Errorf("invalid client ID %q: %w", tokenClientID, err)
		}
	}

	token, err := server.NewJWTService(jwtCfg).GenerateToken(clientID)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Client ID: %s\n", clientID)
	fmt.Fprintf(os.Stdout, "Token:     %s\n", token)
	return nil
}
