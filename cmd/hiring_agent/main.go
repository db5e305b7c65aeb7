// Package main provides the entry point for the hiring agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hiring_agent",
	Short: "Recruiting workflow automation",
	Long:  "Hiring agent runs a recruiting campaign end to end: job description drafting, application form and spreadsheet setup, LinkedIn announcement, resume intake and scoring, interview scheduling, and outcome notifications.",
}

var (
	flagConfig  string
	flagVerbose bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed progress")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
