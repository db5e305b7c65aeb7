package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/jonathan/hiring-agent/internal/types"
)

func candidates(n int) []types.CandidateRecord {
	out := make([]types.CandidateRecord, n)
	for i := range out {
		out[i] = types.CandidateRecord{
			Name:  "Candidate",
			Email: "c@example.com",
		}
	}
	return out
}

func TestAllocate_SlotStarts(t *testing.T) {
	base := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	slots := Allocate(candidates(3), base, 45, 15, 8)

	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}

	wantStarts := []time.Time{
		base,
		base.Add(60 * time.Minute),
		base.Add(120 * time.Minute),
	}
	for i, slot := range slots {
		if !slot.Start.Equal(wantStarts[i]) {
			t.Errorf("slot %d start = %v, want %v", i, slot.Start, wantStarts[i])
		}
	}
}

func TestAllocate_ZeroParamsUseDefaults(t *testing.T) {
	base := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	slots := Allocate(candidates(2), base, 0, 0, 0)

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	want := base.Add(time.Duration(DefaultSlotMinutes+DefaultGapMinutes) * time.Minute)
	if !slots[1].Start.Equal(want) {
		t.Errorf("slot 1 start = %v, want %v (default slot + gap stride)", slots[1].Start, want)
	}
}

func TestAllocate_MaxCountBounds(t *testing.T) {
	base := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	if got := len(Allocate(candidates(12), base, 45, 15, 8)); got != 8 {
		t.Errorf("expected max 8 slots, got %d", got)
	}
	if got := len(Allocate(candidates(2), base, 45, 15, 8)); got != 2 {
		t.Errorf("expected 2 slots, got %d", got)
	}
	if got := len(Allocate(nil, base, 45, 15, 8)); got != 0 {
		t.Errorf("expected 0 slots for empty shortlist, got %d", got)
	}
}

func TestAllocate_Deterministic(t *testing.T) {
	base := time.Date(2026, 9, 14, 9, 30, 0, 0, time.UTC)
	a := Allocate(candidates(4), base, 30, 10, 8)
	b := Allocate(candidates(4), base, 30, 10, 8)
	for i := range a {
		if !a[i].Start.Equal(b[i].Start) {
			t.Errorf("slot %d differs between identical calls", i)
		}
	}
}

func TestDayStart(t *testing.T) {
	got, err := DayStart("2026-09-14", "10:00", time.UTC)
	if err != nil {
		t.Fatalf("DayStart: %v", err)
	}
	want := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DayStart = %v, want %v", got, want)
	}

	if _, err := DayStart("14-09-2026", "10:00", time.UTC); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestRenderICS_Structure(t *testing.T) {
	slot := types.InterviewSlot{
		CandidateName:  "Jane Doe",
		CandidateEmail: "jane@example.com",
		Start:          time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
	}
	ics := RenderICS(Invite{
		Slot:          slot,
		Role:          "Backend Engineer",
		OrganizerName: "Sam Recruiter",
		SenderEmail:   "recruiter@example.com",
		DurationMin:   45,
	})

	wantLines := []string{
		"BEGIN:VCALENDAR",
		"METHOD:REQUEST",
		"DTSTART:20260914T100000Z",
		"DTEND:20260914T104500Z",
		"SUMMARY:Interview: Backend Engineer — Jane Doe",
		"ORGANIZER;CN=Sam Recruiter:mailto:recruiter@example.com",
		"ATTENDEE;CN=Jane Doe;ROLE=REQ-PARTICIPANT;PARTSTAT=NEEDS-ACTION;RSVP=TRUE:mailto:jane@example.com",
		"END:VCALENDAR",
	}
	for _, line := range wantLines {
		if !strings.Contains(ics, line) {
			t.Errorf("ICS missing line %q\n%s", line, ics)
		}
	}

	if !strings.Contains(ics, "@hiring-agent") {
		t.Error("ICS UID should carry the hiring-agent suffix")
	}
}

func TestRenderICS_StableExceptUIDAndStamp(t *testing.T) {
	slot := types.InterviewSlot{
		CandidateName:  "Jane Doe",
		CandidateEmail: "jane@example.com",
		Start:          time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC),
	}
	inv := Invite{
		Slot:          slot,
		Role:          "Backend Engineer",
		OrganizerName: "Sam",
		SenderEmail:   "s@example.com",
		MeetLink:      "https://meet.google.com/abc-defg-hij",
	}

	strip := func(ics string) []string {
		var out []string
		for _, line := range strings.Split(ics, "\n") {
			if strings.HasPrefix(line, "UID:") || strings.HasPrefix(line, "DTSTAMP:") {
				continue
			}
			out = append(out, line)
		}
		return out
	}

	a := strip(RenderICS(inv))
	b := strip(RenderICS(inv))
	if strings.Join(a, "\n") != strings.Join(b, "\n") {
		t.Error("ICS output should be byte-stable apart from UID and DTSTAMP")
	}
}

func TestRenderICS_MeetLinkFallback(t *testing.T) {
	ics := RenderICS(Invite{
		Slot: types.InterviewSlot{CandidateName: "X", CandidateEmail: "x@y.io",
			Start: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)},
		Role: "Role", OrganizerName: "O", SenderEmail: "o@y.io",
	})
	if !strings.Contains(ics, "https://meet.google.com/lookup/") {
		t.Error("expected generated meet link placeholder")
	}
}
