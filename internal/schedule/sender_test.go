package schedule

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiring-agent/internal/types"
)

type sentMail struct {
	to      string
	subject string
	body    string
	ics     string
}

type fakeMailer struct {
	sent    []sentMail
	failFor string
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body, ics string) (string, error) {
	if to == m.failFor {
		return "", fmt.Errorf("mailbox unavailable")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body, ics: ics})
	return fmt.Sprintf("msg-%d", len(m.sent)), nil
}

func (m *fakeMailer) SenderAddress(context.Context) (string, error) {
	return "hr@example.com", nil
}

type stubStore struct {
	state types.CampaignState
}

func (s *stubStore) Load() (*types.CampaignState, error)               { st := s.state; return &st, nil }
func (s *stubStore) Save(map[string]any) (*types.CampaignState, error) { st := s.state; return &st, nil }
func (s *stubStore) Replace(st *types.CampaignState) error             { s.state = *st; return nil }
func (s *stubStore) Reset(st *types.CampaignState) error               { s.state = *st; return nil }

func scheduledCampaign() types.CampaignState {
	return types.CampaignState{
		Role:   "Backend Engineer",
		FormID: "form-1",
		Candidates: []types.CandidateRecord{
			{Name: "alice.pdf", Email: "alice@example.com", Score: 5},
			{Name: "bob.pdf", Email: "bob@example.com", Score: 3},
		},
	}
}

func TestSendInvites(t *testing.T) {
	mailer := &fakeMailer{}
	sender := &Sender{
		Mailer:   mailer,
		Store:    &stubStore{state: scheduledCampaign()},
		Location: time.UTC,
	}

	req := types.ScheduleRequest{
		Emails:    []string{"alice@example.com", "bob@example.com"},
		Organizer: "Sam",
		Date:      "2026-09-01",
		StartTime: "10:00",
	}
	results, err := sender.SendInvites(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Slot i starts at base + i*(45+15) minutes.
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, base, results[0].Start)
	assert.Equal(t, base.Add(60*time.Minute), results[1].Start)
	assert.Equal(t, "msg-1", results[0].MessageID)

	require.Len(t, mailer.sent, 2)
	first := mailer.sent[0]
	assert.Equal(t, "alice@example.com", first.to)
	assert.Equal(t, "Interview: Backend Engineer — alice.pdf", first.subject)
	assert.Contains(t, first.body, "Hi alice.pdf,")
	assert.Contains(t, first.ics, "METHOD:REQUEST")
	assert.Contains(t, first.ics, "DTSTART:20260901T100000Z")
	assert.Contains(t, first.ics, "mailto:hr@example.com")
}

func TestSendInvites_UnknownEmailGetsGenericName(t *testing.T) {
	mailer := &fakeMailer{}
	sender := &Sender{Mailer: mailer, Store: &stubStore{state: scheduledCampaign()}, Location: time.UTC}

	req := types.ScheduleRequest{
		Emails:    []string{"stranger@example.com"},
		Organizer: "Sam",
		Date:      "2026-09-01",
	}
	_, err := sender.SendInvites(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].body, "Hi Candidate,")
}

func TestSendInvites_PartialFailure(t *testing.T) {
	mailer := &fakeMailer{failFor: "alice@example.com"}
	sender := &Sender{Mailer: mailer, Store: &stubStore{state: scheduledCampaign()}, Location: time.UTC}

	req := types.ScheduleRequest{
		Emails:    []string{"alice@example.com", "bob@example.com"},
		Organizer: "Sam",
		Date:      "2026-09-01",
	}
	results, err := sender.SendInvites(context.Background(), req)
	require.NoError(t, err, "one failed send must not abort the batch")
	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "bob@example.com", mailer.sent[0].to)
}

func TestSendInvites_Errors(t *testing.T) {
	sender := &Sender{Mailer: &fakeMailer{}, Store: &stubStore{}, Location: time.UTC}

	_, err := sender.SendInvites(context.Background(), types.ScheduleRequest{
		Emails: []string{"a@b.com"}, Organizer: "Sam", Date: "2026-09-01",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active campaign")

	sender.Store = &stubStore{state: scheduledCampaign()}
	_, err = sender.SendInvites(context.Background(), types.ScheduleRequest{
		Emails: []string{"a@b.com"}, Organizer: "Sam", Date: "not-a-date",
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to parse interview day"))
}
