// Package types provides type definitions for structured data used throughout the hiring-agent system.
package types

import "time"

// CandidateRecord is one processed applicant with a resolvable resume.
type CandidateRecord struct {
	ResponseID  string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	FileID      string  `json:"file_id,omitempty"`
	Score       float64 `json:"score"`
	TextPreview string  `json:"text_preview"`
	ResumeLink  string  `json:"resume_link"`
	ViewLink    string  `json:"cv_link,omitempty"`
}

// CampaignState is the single mutable record tracked per hiring campaign.
// It is persisted as a human-readable JSON document so it can be inspected
// or edited between syncs.
type CampaignState struct {
	Role           string            `json:"role,omitempty"`
	FormID         string            `json:"form_id,omitempty"`
	FormURL        string            `json:"form_url,omitempty"`
	SheetID        string            `json:"sheet_id,omitempty"`
	SheetURL       string            `json:"sheet_url,omitempty"`
	DriveQID       string            `json:"drive_qid,omitempty"`
	EmailQID       string            `json:"email_qid,omitempty"`
	LinkedInPostID string            `json:"linkedin_post_id,omitempty"`
	ProcessedIDs   []string          `json:"processed_ids"`
	Candidates     []CandidateRecord `json:"candidates"`
}

// HasCampaign reports whether an active campaign has been created.
func (s *CampaignState) HasCampaign() bool {
	return s != nil && s.FormID != ""
}

// Processed reports whether a response id has already been folded into state.
func (s *CampaignState) Processed(responseID string) bool {
	for _, id := range s.ProcessedIDs {
		if id == responseID {
			return true
		}
	}
	return false
}

// InterviewSlot is an allocated interview time for one candidate.
// Slots are computed on demand and never persisted.
type InterviewSlot struct {
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	Start          time.Time `json:"start"`
}

// Raw-log status values written to the spreadsheet audit tab.
const (
	StatusDownloaded    = "downloaded"
	StatusMissingResume = "missing_resume"
)

// RawRow is one audit row for the "Raw" spreadsheet tab. Every response
// produces exactly one row, including responses that never become candidates.
type RawRow struct {
	ResponseID string
	Timestamp  string
	Email      string
	FileID     string
	ViewLink   string
	Status     string
}

// Values returns the row in spreadsheet column order.
func (r RawRow) Values() []any {
	return []any{r.ResponseID, r.Timestamp, r.Email, r.FileID, r.ViewLink, r.Status}
}

// RawHeader is the header row for the "Raw" tab.
func RawHeader() []any {
	return []any{"responseId", "timestamp", "email", "fileId", "fileViewLink", "status"}
}
