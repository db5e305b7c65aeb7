package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiring-agent/internal/google"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize access to Google Forms, Drive, Sheets and Gmail",
	Long:  "Runs the OAuth consent flow in the browser and saves the resulting token for later commands.",
	RunE:  runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAgentConfig()
	if err != nil {
		return err
	}

	if err := google.Authorize(cmd.Context(), cfg.CredentialsPath, cfg.TokenPath); err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	fmt.Println(successText("Authorized."), "Token saved to", cfg.TokenPath)
	return nil
}
