// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the agent configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults, environment
// variables, or CLI flags.
type Config struct {
	// Google credentials
	CredentialsPath string `json:"credentials_path,omitempty"` // OAuth client JSON (installed app)
	TokenPath       string `json:"token_path,omitempty"`       // Saved OAuth token
	StatePath       string `json:"state_path,omitempty"`       // Campaign state document
	DownloadDir     string `json:"download_dir,omitempty"`     // Local resume cache

	// Integrations
	GeminiAPIKey  string `json:"gemini_api_key,omitempty"`   // Gemini API key for JD generation
	LinkedInToken string `json:"linkedin_token,omitempty"`   // LinkedIn bearer token
	LinkedInURN   string `json:"linkedin_urn,omitempty"`     // LinkedIn author URN
	OrganizerName string `json:"organizer_name,omitempty"`   // Name on interview invites
	Timezone      string `json:"timezone,omitempty"`         // IANA zone for scheduling

	// Limits
	ShortlistSize int `json:"shortlist_size,omitempty"` // Top-N candidates on the shortlist tab
	MaxPages      int `json:"max_pages,omitempty"`      // Per-resume text extraction page cap
	SlotMinutes   int `json:"slot_minutes,omitempty"`   // Interview slot length
	GapMinutes    int `json:"gap_minutes,omitempty"`    // Gap between interviews

	// Behavior
	RetryFailedDownloads bool   `json:"retry_failed_downloads,omitempty"` // Retry download_error responses on later syncs
	Verbose              bool   `json:"verbose,omitempty"`                // Print detailed progress
	ListenAddr           string `json:"listen_addr,omitempty"`            // HTTP server bind address
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// FromEnv overlays environment variables onto the config. Env values win
// over file values so CI secrets never need to live in the config file.
func (c *Config) FromEnv() {
	overlay := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	overlay(&c.GeminiAPIKey, "GEMINI_API_KEY")
	overlay(&c.LinkedInToken, "LINKEDIN_ACCESS_TOKEN")
	overlay(&c.LinkedInURN, "LINKEDIN_AUTHOR_URN")
	overlay(&c.CredentialsPath, "GOOGLE_CREDENTIALS_PATH")
	overlay(&c.TokenPath, "GOOGLE_TOKEN_PATH")
	overlay(&c.OrganizerName, "ORGANIZER_NAME")
}

// Validate checks that the configuration has valid values.
// Required fields are enforced later, per command, after merging.
func (c *Config) Validate() error {
	if c.ShortlistSize < 0 {
		return fmt.Errorf("config error: 'shortlist_size' must be non-negative")
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("config error: 'max_pages' must be non-negative")
	}
	if c.SlotMinutes < 0 || c.GapMinutes < 0 {
		return fmt.Errorf("config error: slot and gap minutes must be non-negative")
	}

	// CredentialsPath is not checked here: commands that never touch the
	// Google APIs (generate-jd) must work without it.

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	merge := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	merge(&result.CredentialsPath, defaults.CredentialsPath)
	merge(&result.TokenPath, defaults.TokenPath)
	merge(&result.StatePath, defaults.StatePath)
	merge(&result.DownloadDir, defaults.DownloadDir)
	merge(&result.GeminiAPIKey, defaults.GeminiAPIKey)
	merge(&result.LinkedInToken, defaults.LinkedInToken)
	merge(&result.LinkedInURN, defaults.LinkedInURN)
	merge(&result.OrganizerName, defaults.OrganizerName)
	merge(&result.Timezone, defaults.Timezone)
	merge(&result.ListenAddr, defaults.ListenAddr)

	if result.ShortlistSize == 0 {
		result.ShortlistSize = defaults.ShortlistSize
	}
	if result.MaxPages == 0 {
		result.MaxPages = defaults.MaxPages
	}
	if result.SlotMinutes == 0 {
		result.SlotMinutes = defaults.SlotMinutes
	}
	if result.GapMinutes == 0 {
		result.GapMinutes = defaults.GapMinutes
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		CredentialsPath: "credentials.json",
		TokenPath:       "token.json",
		StatePath:       "campaign_state.json",
		DownloadDir:     "cv_pdfs",
		OrganizerName:   "Recruiting Team",
		Timezone:        "Asia/Kolkata",
		ShortlistSize:   5,
		MaxPages:        15,
		SlotMinutes:     45,
		GapMinutes:      15,
		ListenAddr:      ":8080",
	}
}
