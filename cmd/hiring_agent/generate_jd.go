package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiring-agent/internal/jd"
)

var generateJDCmd = &cobra.Command{
	Use:   "generate-jd",
	Short: "Draft a job description for a role",
	Long:  "Drafts an inclusive job description with Gemini. Without an API key a static template is produced instead.",
	RunE:  runGenerateJD,
}

var (
	jdRole       string
	jdExperience string
	jdFeedback   string
	jdInFile     string
	jdOutFile    string
)

func init() {
	generateJDCmd.Flags().StringVarP(&jdRole, "role", "r", "", "Role title (required)")
	generateJDCmd.Flags().StringVarP(&jdExperience, "experience", "e", "", "Required experience, e.g. '3+ years Go'")
	generateJDCmd.Flags().StringVar(&jdFeedback, "refine", "", "Refine an existing JD with this feedback (requires --in)")
	generateJDCmd.Flags().StringVar(&jdInFile, "in", "", "Existing JD file to refine")
	generateJDCmd.Flags().StringVarP(&jdOutFile, "out", "o", "", "Write the JD to this file instead of stdout")

	if err := generateJDCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}

	rootCmd.AddCommand(generateJDCmd)
}

func runGenerateJD(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAgentConfig()
	if err != nil {
		return err
	}

	client := buildLLM(cmd.Context(), cfg)
	if client != nil {
		defer client.Close()
	}

	var text string
	if jdFeedback != "" {
		if jdInFile == "" {
			return fmt.Errorf("--refine requires --in with the JD to refine")
		}
		current, err := os.ReadFile(jdInFile)
		if err != nil {
			return fmt.Errorf("failed to read JD file: %w", err)
		}
		text, err = jd.Refine(cmd.Context(), client, string(current), jdFeedback)
		if err != nil {
			return fmt.Errorf("failed to refine JD: %w", err)
		}
	} else {
		text = jd.Generate(cmd.Context(), client, jdRole, jdExperience)
	}

	if jdOutFile != "" {
		if err := os.WriteFile(jdOutFile, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write JD: %w", err)
		}
		fmt.Println(successText("JD written to"), jdOutFile)
		return nil
	}

	fmt.Println(text)
	return nil
}
