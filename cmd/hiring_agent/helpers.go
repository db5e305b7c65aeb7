package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/jonathan/hiring-agent/internal/config"
	"github.com/jonathan/hiring-agent/internal/document"
	"github.com/jonathan/hiring-agent/internal/google"
	"github.com/jonathan/hiring-agent/internal/llm"
	"github.com/jonathan/hiring-agent/internal/pipeline"
	"github.com/jonathan/hiring-agent/internal/state"
)

var (
	successText = color.New(color.FgGreen, color.Bold).SprintFunc()
	warnText    = color.New(color.FgYellow).SprintFunc()
	labelText   = color.New(color.FgCyan).SprintFunc()
)

// loadAgentConfig resolves the effective config: defaults, then the config
// file when given, then environment variables.
func loadAgentConfig() (config.Config, error) {
	cfg := config.Defaults()
	if flagConfig != "" {
		fileCfg, err := config.LoadConfig(flagConfig)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// buildClients authorizes against Google and constructs the service clients.
func buildClients(ctx context.Context, cfg config.Config) (*google.Clients, error) {
	httpClient, err := google.HTTPClient(ctx, cfg.CredentialsPath, cfg.TokenPath)
	if err != nil {
		return nil, err
	}
	return google.NewClients(ctx, httpClient)
}

// buildSyncer wires the intake pipeline over live Google clients.
func buildSyncer(cfg config.Config, clients *google.Clients) *pipeline.Syncer {
	return &pipeline.Syncer{
		Responses:            google.NewFormsSource(clients.Forms),
		Files:                google.NewDriveFiles(clients.Drive),
		Sheets:               google.NewSheetsSink(clients.Sheets),
		Store:                state.NewFileStore(cfg.StatePath),
		DownloadDir:          cfg.DownloadDir,
		MaxPages:             cfg.MaxPages,
		ShortlistSize:        cfg.ShortlistSize,
		RetryFailedDownloads: cfg.RetryFailedDownloads,
		ExtractText:          document.ExtractText,
	}
}

// buildLLM creates a Gemini client when an API key is configured. A nil
// client is valid: JD generation then falls back to the static template.
func buildLLM(ctx context.Context, cfg config.Config) llm.Client {
	if cfg.GeminiAPIKey == "" {
		return nil
	}
	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		fmt.Println(warnText(fmt.Sprintf("Gemini unavailable (%v); using fallback JD", err)))
		return nil
	}
	return client
}

// timezone resolves the configured zone, defaulting to local time.
func timezone(cfg config.Config) *time.Location {
	if cfg.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		fmt.Println(warnText(fmt.Sprintf("unknown timezone %q; using local time", cfg.Timezone)))
		return time.Local
	}
	return loc
}
