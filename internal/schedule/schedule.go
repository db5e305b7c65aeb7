// Package schedule allocates interview slots and renders calendar invites.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/hiring-agent/internal/types"
)

// Default slot parameters for a single interview day.
const (
	DefaultSlotMinutes = 45
	DefaultGapMinutes  = 15
	DefaultMaxPerDay   = 8
	DefaultDayStart    = "10:00"
)

// Allocate maps an ordered candidate list onto a deterministic sequence of
// non-overlapping slots. Slot i starts at base + i*(slot+gap). At most
// maxCount slots are produced. Pure function: no persistence, no collision
// detection against externally booked calendars.
func Allocate(candidates []types.CandidateRecord, base time.Time, slotMinutes, gapMinutes, maxCount int) []types.InterviewSlot {
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}
	if gapMinutes <= 0 {
		gapMinutes = DefaultGapMinutes
	}
	if maxCount <= 0 {
		maxCount = DefaultMaxPerDay
	}

	n := len(candidates)
	if n > maxCount {
		n = maxCount
	}

	stride := time.Duration(slotMinutes+gapMinutes) * time.Minute
	slots := make([]types.InterviewSlot, 0, n)
	for i := 0; i < n; i++ {
		slots = append(slots, types.InterviewSlot{
			CandidateName:  candidates[i].Name,
			CandidateEmail: candidates[i].Email,
			Start:          base.Add(time.Duration(i) * stride),
		})
	}
	return slots
}

// DayStart builds the base time for an interview day from a date string
// (YYYY-MM-DD), a start-of-day string (HH:MM) and a location.
func DayStart(date, startHHMM string, loc *time.Location) (time.Time, error) {
	if startHHMM == "" {
		startHHMM = DefaultDayStart
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+startHHMM, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse interview day %q %q: %w", date, startHHMM, err)
	}
	return t, nil
}

// Invite holds everything needed to render one calendar invite.
type Invite struct {
	Slot          types.InterviewSlot
	Role          string
	OrganizerName string
	SenderEmail   string
	DurationMin   int
	Location      string
	MeetLink      string
}

const icsTimeFormat = "20060102T150405Z"

func utcFmt(t time.Time) string {
	return t.UTC().Format(icsTimeFormat)
}

// RenderICS renders a METHOD:REQUEST calendar event as text. The output is
// reproducible byte-for-byte for the same inputs, except for the UID and the
// DTSTAMP line.
func RenderICS(inv Invite) string {
	if inv.DurationMin <= 0 {
		inv.DurationMin = DefaultSlotMinutes
	}
	if inv.Location == "" {
		inv.Location = "Google Meet"
	}
	meetLink := inv.MeetLink
	if meetLink == "" {
		meetLink = "https://meet.google.com/lookup/" + uuid.New().String()[:8]
	}

	uid := strings.ReplaceAll(uuid.New().String(), "-", "") + "@hiring-agent"
	start := inv.Slot.Start
	end := start.Add(time.Duration(inv.DurationMin) * time.Minute)

	lines := []string{
		"BEGIN:VCALENDAR",
		"PRODID:-//HiringAgent//EN",
		"VERSION:2.0",
		"CALSCALE:GREGORIAN",
		"METHOD:REQUEST",
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTAMP:" + utcFmt(time.Now()),
		"DTSTART:" + utcFmt(start),
		"DTEND:" + utcFmt(end),
		fmt.Sprintf("SUMMARY:Interview: %s — %s", inv.Role, inv.Slot.CandidateName),
		fmt.Sprintf("DESCRIPTION:Interview for %s\\nJoin: %s", inv.Role, meetLink),
		"LOCATION:" + inv.Location,
		fmt.Sprintf("ORGANIZER;CN=%s:mailto:%s", inv.OrganizerName, inv.SenderEmail),
		fmt.Sprintf("ATTENDEE;CN=%s;ROLE=REQ-PARTICIPANT;PARTSTAT=NEEDS-ACTION;RSVP=TRUE:mailto:%s",
			inv.Slot.CandidateName, inv.Slot.CandidateEmail),
		"SEQUENCE:0",
		"STATUS:CONFIRMED",
		"TRANSP:OPAQUE",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, "\n")
}

// InviteBody renders the plain-text email body that accompanies an invite.
func InviteBody(candidateName, role, organizerName string) string {
	return fmt.Sprintf(`Hi %s,

We'd like to invite you for an interview for %s.
Please accept the attached calendar invite to confirm.

Thanks,
%s
`, candidateName, role, organizerName)
}
