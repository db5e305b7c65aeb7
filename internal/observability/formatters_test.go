package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/hiring-agent/internal/types"
)

func TestPrintCampaign(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintCampaign(&types.CampaignState{
		Role:         "Backend Engineer",
		FormID:       "form-1",
		FormURL:      "https://forms.example/abc",
		SheetURL:     "https://sheets.example/xyz",
		ProcessedIDs: []string{"r1", "r2"},
	})

	out := buf.String()
	if !strings.Contains(out, "ACTIVE CAMPAIGN") {
		t.Error("missing box title")
	}
	if !strings.Contains(out, "Backend Engineer") {
		t.Error("missing role")
	}
	if !strings.Contains(out, "Processed responses: 2") {
		t.Error("missing processed count")
	}
}

func TestPrintCampaign_NoCampaign(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCampaign(&types.CampaignState{})
	if buf.Len() != 0 {
		t.Errorf("expected no output without an active campaign, got %q", buf.String())
	}
}

func TestPrintSyncSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rows := []types.RawRow{
		{ResponseID: "r1", Status: types.StatusDownloaded},
		{ResponseID: "r2", Status: types.StatusMissingResume},
	}
	candidates := []types.CandidateRecord{
		{Name: "resume.pdf", Score: 4},
	}
	p.PrintSyncSummary(rows, candidates)

	out := buf.String()
	for _, want := range []string{"SYNC COMPLETE", "New responses:  2", "New candidates: 1", "Without resume: 1", "resume.pdf"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintShortlist(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintShortlist([]types.CandidateRecord{
		{Name: "a.pdf", Email: "a@example.com", Score: 5},
		{Name: "b.pdf", Score: 2},
	})

	out := buf.String()
	if !strings.Contains(out, "#1  a.pdf") || !strings.Contains(out, "#2  b.pdf") {
		t.Errorf("shortlist rank lines missing:\n%s", out)
	}
	if !strings.Contains(out, "<a@example.com>") {
		t.Error("missing candidate email")
	}
}
