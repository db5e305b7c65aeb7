package outcomes

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/hiring-agent/internal/pipeline"
	"github.com/jonathan/hiring-agent/internal/state"
	"github.com/jonathan/hiring-agent/internal/types"
)

// OutcomesTab is the audit tab recording every outcome email.
const OutcomesTab = "Outcomes"

// SendResult is the delivery outcome for one candidate.
type SendResult struct {
	Name      string
	Email     string
	Status    string
	MessageID string
	Err       error
}

// Sender notifies every candidate of their outcome and logs each send to
// the spreadsheet audit tab.
type Sender struct {
	Mailer pipeline.Mailer
	Sheets pipeline.TabularSink
	Store  state.Store

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// SendOutcomes emails every candidate with an address: an offer for those in
// hiredEmails, a regret otherwise. Candidates without an email are skipped
// and reported. Per-candidate failures do not stop the batch.
func (s *Sender) SendOutcomes(ctx context.Context, hiredEmails []string, organizer string) ([]SendResult, error) {
	st, err := s.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign state: %w", err)
	}
	if !st.HasCampaign() {
		return nil, fmt.Errorf("no active campaign")
	}

	acceptedList, rejected, skipped := Partition(st.Candidates, AcceptedSet(hiredEmails))

	var results []SendResult
	for _, c := range acceptedList {
		results = append(results, s.deliver(ctx, c, StatusSentAccept,
			AcceptanceSubject(st.Role), AcceptanceBody(c.Name, st.Role, organizer)))
	}
	for _, c := range rejected {
		results = append(results, s.deliver(ctx, c, StatusSentRegret,
			RegretSubject(st.Role), RegretBody(c.Name, st.Role, organizer)))
	}
	for _, c := range skipped {
		results = append(results, SendResult{Name: c.Name, Email: c.Email, Status: StatusSkippedEmail})
	}

	s.logOutcomes(ctx, st.SheetID, results)
	return results, nil
}

func (s *Sender) deliver(ctx context.Context, c types.CandidateRecord, status, subject, body string) SendResult {
	msgID, err := s.Mailer.Send(ctx, c.Email, subject, body, "")
	return SendResult{Name: c.Name, Email: c.Email, Status: status, MessageID: msgID, Err: err}
}

// logOutcomes appends one audit row per send. Best effort: the emails are
// already out, so a sheet failure is only logged.
func (s *Sender) logOutcomes(ctx context.Context, sheetID string, results []SendResult) {
	if s.Sheets == nil || len(results) == 0 {
		return
	}
	if _, err := s.Sheets.EnsureTab(ctx, sheetID, OutcomesTab); err != nil {
		log.Printf("WARNING: failed to ensure outcomes tab: %v", err)
		return
	}

	now := s.Now
	if now == nil {
		now = time.Now
	}
	ts := now().Format("2006-01-02 15:04:05")

	rows := make([][]any, 0, len(results))
	for _, r := range results {
		status := r.Status
		if r.Err != nil {
			status = "send_error:" + r.Err.Error()
		}
		rows = append(rows, []any{ts, r.Name, r.Email, status, r.MessageID})
	}
	if err := s.Sheets.AppendRows(ctx, sheetID, OutcomesTab, rows); err != nil {
		log.Printf("WARNING: failed to log outcomes to sheet: %v", err)
	}
}
