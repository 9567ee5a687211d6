// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Inputs
	Resume     string `json:"resume,omitempty"`      // Path to a resume document
	ResumeDir  string `json:"resume_dir,omitempty"`  // Directory of resume documents
	ProfileURL string `json:"profile_url,omitempty"` // Candidate profile URL

	// Storage
	DatabaseURL  string `json:"database_url,omitempty"`  // PostgreSQL connection URL
	DatabasePath string `json:"database_path,omitempty"` // SQLite file path

	// Output
	OutputDir string `json:"output_dir,omitempty"` // Directory for exports and filled forms
	FormType  string `json:"form_type,omitempty"`  // Default form template name

	// Behavior
	APIKey     string `json:"api_key,omitempty"`     // Gemini API key
	UseBrowser bool   `json:"use_browser,omitempty"` // Use headless browser for profile pages
	Verbose    bool   `json:"verbose,omitempty"`     // Print detailed debug information

	// Server
	ServerAddr string `json:"server_addr,omitempty"` // Listen address for the HTTP API
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required-field checks happen after flag merging, not here.
func (c *Config) Validate() error {
	if c.Resume != "" && c.ResumeDir != "" {
		return fmt.Errorf("config error: 'resume' and 'resume_dir' are mutually exclusive")
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.ResumeDir != "" {
		info, err := os.Stat(c.ResumeDir)
		if os.IsNotExist(err) {
			return fmt.Errorf("config error: resume directory not found: %s", c.ResumeDir)
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: 'resume_dir' is not a directory: %s", c.ResumeDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Config file values act as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.ResumeDir == "" {
		result.ResumeDir = defaults.ResumeDir
	}
	if result.ProfileURL == "" {
		result.ProfileURL = defaults.ProfileURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.DatabasePath == "" {
		result.DatabasePath = defaults.DatabasePath
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.FormType == "" {
		result.FormType = defaults.FormType
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ServerAddr == "" {
		result.ServerAddr = defaults.ServerAddr
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// DefaultDatabasePath is the SQLite file used when no storage is configured.
const DefaultDatabasePath = "candidate_intake.db"

// DefaultServerAddr is the HTTP API listen address.
const DefaultServerAddr = ":8080"

// DefaultFormType is the form template used when none is requested.
const DefaultFormType = "standard_hr_form"
