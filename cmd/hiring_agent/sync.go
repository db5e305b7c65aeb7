package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiring-agent/internal/observability"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull new form responses and score resumes",
	Long:  "Fetches new form responses, downloads and scores each resume, appends the raw log to the spreadsheet, and rewrites the shortlist tab.",
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAgentConfig()
	if err != nil {
		return err
	}

	clients, err := buildClients(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	syncer := buildSyncer(cfg, clients)
	result, err := syncer.Sync(cmd.Context())
	if err != nil {
		return err
	}

	if flagVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintSyncSummary(result.NewRows, result.NewCandidates)
		printer.PrintCampaign(result.State)
		return nil
	}

	fmt.Println(successText("Sync complete."),
		fmt.Sprintf("%d new responses, %d new candidates, %d candidates total",
			len(result.NewRows), len(result.NewCandidates), len(result.State.Candidates)))
	return nil
}
