package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiring-agent/internal/google"
	"github.com/jonathan/hiring-agent/internal/schedule"
	"github.com/jonathan/hiring-agent/internal/state"
	"github.com/jonathan/hiring-agent/internal/types"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Allocate interview slots and email calendar invites",
	Long:  "Allocates back-to-back interview slots on the given day and sends each candidate a calendar invite over Gmail.",
	RunE:  runSchedule,
}

var (
	scheduleEmails    []string
	scheduleDate      string
	scheduleStart     string
	scheduleOrganizer string
)

func init() {
	scheduleCmd.Flags().StringSliceVar(&scheduleEmails, "emails", nil, "Candidate emails, in interview order (required)")
	scheduleCmd.Flags().StringVar(&scheduleDate, "date", "", "Interview day, YYYY-MM-DD (required)")
	scheduleCmd.Flags().StringVar(&scheduleStart, "start", "", "First slot start, HH:MM (default 10:00)")
	scheduleCmd.Flags().StringVar(&scheduleOrganizer, "organizer", "", "Organizer name (default from config)")

	if err := scheduleCmd.MarkFlagRequired("emails"); err != nil {
		panic(fmt.Sprintf("failed to mark emails flag as required: %v", err))
	}
	if err := scheduleCmd.MarkFlagRequired("date"); err != nil {
		panic(fmt.Sprintf("failed to mark date flag as required: %v", err))
	}

	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	cfg, err := loadAgentConfig()
	if err != nil {
		return err
	}

	clients, err := buildClients(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	organizer := scheduleOrganizer
	if organizer == "" {
		organizer = cfg.OrganizerName
	}

	req := types.ScheduleRequest{
		Emails:      scheduleEmails,
		Organizer:   organizer,
		Date:        scheduleDate,
		StartTime:   scheduleStart,
		SlotMinutes: cfg.SlotMinutes,
		GapMinutes:  cfg.GapMinutes,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	sender := &schedule.Sender{
		Mailer:   google.NewGmailMailer(clients.Gmail, organizer),
		Store:    state.NewFileStore(cfg.StatePath),
		Location: timezone(cfg),
	}
	results, err := sender.SendInvites(cmd.Context(), req)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Println(warnText(fmt.Sprintf("FAILED %s: %v", r.Email, r.Err)))
			continue
		}
		fmt.Println(successText("Invited"), r.Email, "at", r.Start.Format("2006-01-02 15:04"))
	}
	return nil
}
