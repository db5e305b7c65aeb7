package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiring-agent/internal/google"
	"github.com/jonathan/hiring-agent/internal/outcomes"
	"github.com/jonathan/hiring-agent/internal/state"
	"github.com/jonathan/hiring-agent/internal/types"
)

var outcomesCmd = &cobra.Command{
	Use:   "outcomes",
	Short: "Send offer and regret emails to every candidate",
	Long:  "Emails an offer to each hired candidate and a regret to everyone else, then logs each send to the Outcomes tab of the campaign spreadsheet.",
	RunE:  runOutcomes,
}

var (
	outcomesHired     []string
	outcomesOrganizer string
)

func init() {
	outcomesCmd.Flags().StringSliceVar(&outcomesHired, "hired", nil, "Emails of hired candidates (everyone else gets a regret)")
	outcomesCmd.Flags().StringVar(&outcomesOrganizer, "organizer", "", "Organizer name (default from config)")
	rootCmd.AddCommand(outcomesCmd)
}

func runOutcomes(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAgentConfig()
	if err != nil {
		return err
	}

	clients, err := buildClients(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	organizer := outcomesOrganizer
	if organizer == "" {
		organizer = cfg.OrganizerName
	}

	req := types.OutcomesRequest{HiredEmails: outcomesHired, Organizer: organizer}
	if err := req.Validate(); err != nil {
		return err
	}

	sheets := google.NewSheetsSink(clients.Sheets)
	sender := &outcomes.Sender{
		Mailer: google.NewGmailMailer(clients.Gmail, organizer),
		Sheets: sheets,
		Store:  state.NewFileStore(cfg.StatePath),
	}
	results, err := sender.SendOutcomes(cmd.Context(), outcomesHired, organizer)
	if err != nil {
		return err
	}

	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Println(warnText(fmt.Sprintf("FAILED %s: %v", r.Email, r.Err)))
		case r.Status == outcomes.StatusSkippedEmail:
			fmt.Println(warnText(fmt.Sprintf("Skipped %s: no email address", r.Name)))
		default:
			fmt.Println(successText(r.Status+":"), r.Email)
		}
	}
	return nil
}
