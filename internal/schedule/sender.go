package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/hiring-agent/internal/pipeline"
	"github.com/jonathan/hiring-agent/internal/state"
	"github.com/jonathan/hiring-agent/internal/types"
)

// SendResult is the delivery outcome for one invite.
type SendResult struct {
	Email     string
	Start     time.Time
	MessageID string
	Err       error
}

// Sender allocates interview slots and mails the calendar invites.
type Sender struct {
	Mailer   pipeline.Mailer
	Store    state.Store
	Location *time.Location
}

// SendInvites allocates one slot per requested email, in request order, and
// sends each invite. Per-invite failures are reported in the results and do
// not stop the batch.
func (s *Sender) SendInvites(ctx context.Context, req types.ScheduleRequest) ([]SendResult, error) {
	st, err := s.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign state: %w", err)
	}
	if !st.HasCampaign() {
		return nil, fmt.Errorf("no active campaign")
	}

	base, err := DayStart(req.Date, req.StartTime, s.Location)
	if err != nil {
		return nil, err
	}

	sender, err := s.Mailer.SenderAddress(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sender address: %w", err)
	}

	byEmail := make(map[string]types.CandidateRecord, len(st.Candidates))
	for _, c := range st.Candidates {
		if _, seen := byEmail[c.Email]; !seen && c.Email != "" {
			byEmail[c.Email] = c
		}
	}

	selected := make([]types.CandidateRecord, 0, len(req.Emails))
	for _, email := range req.Emails {
		if c, ok := byEmail[email]; ok {
			selected = append(selected, c)
			continue
		}
		selected = append(selected, types.CandidateRecord{Name: "Candidate", Email: email})
	}

	slots := Allocate(selected, base, req.SlotMinutes, req.GapMinutes, req.MaxCandidates)

	slotMin := req.SlotMinutes
	if slotMin <= 0 {
		slotMin = DefaultSlotMinutes
	}

	results := make([]SendResult, 0, len(slots))
	for _, slot := range slots {
		ics := RenderICS(Invite{
			Slot:          slot,
			Role:          st.Role,
			OrganizerName: req.Organizer,
			SenderEmail:   sender,
			DurationMin:   slotMin,
		})
		subject := fmt.Sprintf("Interview: %s — %s", st.Role, slot.CandidateName)
		body := InviteBody(slot.CandidateName, st.Role, req.Organizer)

		msgID, err := s.Mailer.Send(ctx, slot.CandidateEmail, subject, body, ics)
		results = append(results, SendResult{
			Email:     slot.CandidateEmail,
			Start:     slot.Start,
			MessageID: msgID,
			Err:       err,
		})
	}
	return results, nil
}
