package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiring-agent/internal/campaign"
	"github.com/jonathan/hiring-agent/internal/google"
	"github.com/jonathan/hiring-agent/internal/jd"
	"github.com/jonathan/hiring-agent/internal/social"
	"github.com/jonathan/hiring-agent/internal/state"
)

var createCampaignCmd = &cobra.Command{
	Use:   "create-campaign",
	Short: "Create the form, spreadsheet and announcement for a new role",
	Long:  "Creates a collecting spreadsheet and an application form carrying the job description, optionally announces the role on LinkedIn, and resets local campaign state.",
	RunE:  runCreateCampaign,
}

var (
	campaignRole       string
	campaignExperience string
	campaignJDFile     string
	campaignNoLinkedIn bool
)

func init() {
	createCampaignCmd.Flags().StringVarP(&campaignRole, "role", "r", "", "Role title (required)")
	createCampaignCmd.Flags().StringVarP(&campaignExperience, "experience", "e", "", "Required experience for the generated JD")
	createCampaignCmd.Flags().StringVar(&campaignJDFile, "jd", "", "Use this JD file instead of generating one")
	createCampaignCmd.Flags().BoolVar(&campaignNoLinkedIn, "no-linkedin", false, "Skip the LinkedIn announcement")

	if err := createCampaignCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}

	rootCmd.AddCommand(createCampaignCmd)
}

func runCreateCampaign(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAgentConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	clients, err := buildClients(ctx, cfg)
	if err != nil {
		return err
	}

	var jdText string
	if campaignJDFile != "" {
		data, err := os.ReadFile(campaignJDFile)
		if err != nil {
			return fmt.Errorf("failed to read JD file: %w", err)
		}
		jdText = string(data)
	} else {
		client := buildLLM(ctx, cfg)
		if client != nil {
			defer client.Close()
		}
		jdText = jd.Generate(ctx, client, campaignRole, campaignExperience)
	}

	creator := &campaign.Creator{
		Forms:  google.NewFormsAdmin(clients.Forms),
		Sheets: google.NewSheetsSink(clients.Sheets),
		Store:  state.NewFileStore(cfg.StatePath),
	}
	if !campaignNoLinkedIn && cfg.LinkedInToken != "" && cfg.LinkedInURN != "" {
		creator.Publisher = social.NewClient(cfg.LinkedInToken)
		creator.LinkedInURN = cfg.LinkedInURN
	}

	st, err := creator.Create(ctx, campaignRole, jdText)
	if err != nil {
		return err
	}

	fmt.Println(successText("Campaign created."))
	fmt.Println(labelText("Form: "), st.FormURL)
	fmt.Println(labelText("Sheet:"), st.SheetURL)
	if st.LinkedInPostID != "" {
		fmt.Println(labelText("Post: "), st.LinkedInPostID)
	} else if !campaignNoLinkedIn {
		fmt.Println(warnText("LinkedIn announcement skipped (no credentials or post failed)"))
	}
	return nil
}
