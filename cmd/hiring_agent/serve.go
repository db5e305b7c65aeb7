package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/hiring-agent/internal/campaign"
	"github.com/jonathan/hiring-agent/internal/google"
	"github.com/jonathan/hiring-agent/internal/outcomes"
	"github.com/jonathan/hiring-agent/internal/schedule"
	"github.com/jonathan/hiring-agent/internal/server"
	"github.com/jonathan/hiring-agent/internal/social"
	"github.com/jonathan/hiring-agent/internal/state"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for the full campaign workflow.`,
	RunE:  runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAgentConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	clients, err := buildClients(ctx, cfg)
	if err != nil {
		return err
	}

	store := state.NewFileStore(cfg.StatePath)
	mailer := google.NewGmailMailer(clients.Gmail, cfg.OrganizerName)
	sheets := google.NewSheetsSink(clients.Sheets)

	creator := &campaign.Creator{
		Forms:  google.NewFormsAdmin(clients.Forms),
		Sheets: sheets,
		Store:  store,
	}
	if cfg.LinkedInToken != "" && cfg.LinkedInURN != "" {
		creator.Publisher = social.NewClient(cfg.LinkedInToken)
		creator.LinkedInURN = cfg.LinkedInURN
	}

	deps := server.Deps{
		Store:     store,
		Campaigns: creator,
		Syncer:    buildSyncer(cfg, clients),
		Invites: &schedule.Sender{
			Mailer:   mailer,
			Store:    store,
			Location: timezone(cfg),
		},
		Outcomes: &outcomes.Sender{
			Mailer: mailer,
			Sheets: sheets,
			Store:  store,
		},
		LLM: buildLLM(ctx, cfg),
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.ListenAddr
	}
	return server.New(server.Config{Addr: addr}, deps).Start()
}
