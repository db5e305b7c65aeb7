// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/hiring-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCampaign outputs a human-readable summary of the active campaign.
func (p *Printer) PrintCampaign(st *types.CampaignState) {
	if st == nil || !st.HasCampaign() {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:   %s\n", st.Role))
	sb.WriteString(fmt.Sprintf("Form:   %s\n", st.FormURL))
	sb.WriteString(fmt.Sprintf("Sheet:  %s\n", st.SheetURL))
	if st.LinkedInPostID != "" {
		sb.WriteString(fmt.Sprintf("Post:   %s\n", st.LinkedInPostID))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Processed responses: %d\n", len(st.ProcessedIDs)))
	sb.WriteString(fmt.Sprintf("Candidates:          %d", len(st.Candidates)))

	p.printBox("ACTIVE CAMPAIGN", sb.String())
}

// PrintSyncSummary outputs what one sync pass did: how many new rows were
// logged and which of them became candidates.
func (p *Printer) PrintSyncSummary(rows []types.RawRow, candidates []types.CandidateRecord) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("New responses:  %d\n", len(rows)))
	sb.WriteString(fmt.Sprintf("New candidates: %d\n", len(candidates)))

	failed := 0
	for _, r := range rows {
		if r.Status != types.StatusDownloaded {
			failed++
		}
	}
	sb.WriteString(fmt.Sprintf("Without resume: %d", failed))

	if len(candidates) > 0 {
		sb.WriteString("\n\n")
		count := min(len(candidates), maxItemsToShow)
		for i := 0; i < count; i++ {
			c := candidates[i]
			sb.WriteString(fmt.Sprintf("  • %s (score %.0f)", c.Name, c.Score))
			if i < count-1 {
				sb.WriteString("\n")
			}
		}
		if len(candidates) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("\n  ... and %d more", len(candidates)-maxItemsToShow))
		}
	}

	p.printBox("SYNC COMPLETE", sb.String())
}

// PrintShortlist outputs the ranked shortlist with scores and emails.
func (p *Printer) PrintShortlist(candidates []types.CandidateRecord) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	for i, c := range candidates {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, c.Name))
		sb.WriteString(fmt.Sprintf("    Score: %.0f", c.Score))
		if c.Email != "" {
			sb.WriteString(fmt.Sprintf("  <%s>", c.Email))
		}
		if i < len(candidates)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SHORTLIST", sb.String())
}
