package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiring-agent/internal/observability"
	"github.com/jonathan/hiring-agent/internal/pipeline"
	"github.com/jonathan/hiring-agent/internal/state"
)

var shortlistCmd = &cobra.Command{
	Use:   "shortlist",
	Short: "Show the top candidates by score",
	RunE:  runShortlist,
}

var shortlistN int

func init() {
	shortlistCmd.Flags().IntVarP(&shortlistN, "top", "n", 0, "Number of candidates to show (default from config)")
	rootCmd.AddCommand(shortlistCmd)
}

func runShortlist(_ *cobra.Command, _ []string) error {
	cfg, err := loadAgentConfig()
	if err != nil {
		return err
	}

	st, err := state.NewFileStore(cfg.StatePath).Load()
	if err != nil {
		return err
	}
	if !st.HasCampaign() {
		return fmt.Errorf("no active campaign (run create-campaign first)")
	}

	n := shortlistN
	if n <= 0 {
		n = cfg.ShortlistSize
	}

	top := pipeline.Shortlist(st.Candidates, n)
	if len(top) == 0 {
		fmt.Println(warnText("No candidates yet. Run sync after responses come in."))
		return nil
	}

	observability.NewPrinter(os.Stdout).PrintShortlist(top)
	return nil
}
