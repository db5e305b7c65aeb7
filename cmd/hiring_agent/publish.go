package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiring-agent/internal/jd"
	"github.com/jonathan/hiring-agent/internal/social"
	"github.com/jonathan/hiring-agent/internal/state"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Announce the active campaign on LinkedIn",
	Long:  "Builds an announcement post from the active campaign's role, application link and job description, and publishes it to LinkedIn.",
	RunE:  runPublish,
}

var publishJDFile string

func init() {
	publishCmd.Flags().StringVar(&publishJDFile, "jd", "", "JD file to include in the post (optional, LLM-condensed when configured)")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAgentConfig()
	if err != nil {
		return err
	}
	if cfg.LinkedInToken == "" || cfg.LinkedInURN == "" {
		return fmt.Errorf("LINKEDIN_ACCESS_TOKEN and LINKEDIN_AUTHOR_URN are required")
	}

	store := state.NewFileStore(cfg.StatePath)
	st, err := store.Load()
	if err != nil {
		return err
	}
	if !st.HasCampaign() {
		return fmt.Errorf("no active campaign (run create-campaign first)")
	}

	var jdText string
	if publishJDFile != "" {
		data, err := os.ReadFile(publishJDFile)
		if err != nil {
			return fmt.Errorf("failed to read JD file: %w", err)
		}
		jdText = string(data)

		// Condense long JDs for the post budget when a model is available.
		if client := buildLLM(cmd.Context(), cfg); client != nil {
			defer client.Close()
			if condensed, err := jd.OptimizeForLinkedIn(cmd.Context(), client, jdText); err == nil {
				jdText = condensed
			}
		}
	}

	text := social.BuildPostContent(st.Role, jdText, st.FormURL)
	result, err := social.NewClient(cfg.LinkedInToken).Publish(cmd.Context(), cfg.LinkedInURN, text)
	if err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}

	if _, err := store.Save(map[string]any{"linkedin_post_id": result.ID}); err != nil {
		fmt.Println(warnText(fmt.Sprintf("post published but state save failed: %v", err)))
	}

	fmt.Println(successText("Published."), labelText("Post:"), result.ID)
	if result.URL != "" {
		fmt.Println(labelText("URL: "), result.URL)
	}
	return nil
}
