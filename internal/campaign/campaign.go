// Package campaign creates the per-role application surface: a collecting
// spreadsheet, an application form carrying the job description, and an
// optional LinkedIn announcement. Creating a campaign resets the persisted
// state so each role starts with a clean candidate list.
package campaign

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/hiring-agent/internal/social"
	"github.com/jonathan/hiring-agent/internal/state"
	"github.com/jonathan/hiring-agent/internal/types"
)

// Standard question titles on the application form. Question ids are looked
// up by title after creation, so these strings are the contract between
// form setup and response ingestion.
const (
	QuestionFullName   = "Full name"
	QuestionEmail      = "Email"
	QuestionExperience = "Years of experience"
	QuestionResumeLink = "Resume Google Drive link (PDF)"
	QuestionLinkedIn   = "LinkedIn URL"
)

// maxFormDescription is the Forms API limit on the description field.
const maxFormDescription = 4000

// FormItem is one form question as reported by form metadata.
type FormItem struct {
	Title      string
	QuestionID string
}

// FormMetadata is the post-creation view of a form.
type FormMetadata struct {
	ResponderURI string
	Items        []FormItem
}

// QuestionID finds a question id by title, matching case-insensitively with
// surrounding whitespace ignored. Returns "" when no question matches.
func (m *FormMetadata) QuestionID(title string) string {
	want := strings.ToLower(strings.TrimSpace(title))
	for _, item := range m.Items {
		if strings.ToLower(strings.TrimSpace(item.Title)) == want {
			return item.QuestionID
		}
	}
	return ""
}

// FormService creates and configures application forms.
type FormService interface {
	CreateForm(ctx context.Context, title string) (formID string, err error)
	ApplyTemplate(ctx context.Context, formID, role, description string) error
	Metadata(ctx context.Context, formID string) (*FormMetadata, error)
}

// SheetService creates collecting spreadsheets.
type SheetService interface {
	CreateSpreadsheet(ctx context.Context, title string) (id, url string, err error)
}

// Publisher posts a job announcement. Satisfied by social.Client.
type Publisher interface {
	Publish(ctx context.Context, authorURN, text string) (*social.PostResult, error)
}

// Creator orchestrates campaign creation.
type Creator struct {
	Forms  FormService
	Sheets SheetService
	Store  state.Store

	// Publisher and LinkedInURN enable the announcement post. Leaving
	// either unset skips LinkedIn without error.
	Publisher   Publisher
	LinkedInURN string
}

// Create builds the spreadsheet and form for a role, publishes the optional
// announcement, and resets persisted state to the new campaign. A failed
// LinkedIn post is logged and skipped; everything else is fatal.
func (c *Creator) Create(ctx context.Context, role, jd string) (*types.CampaignState, error) {
	sheetID, sheetURL, err := c.Sheets.CreateSpreadsheet(ctx, "Applications — "+role)
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	formID, err := c.Forms.CreateForm(ctx, "Application — "+role)
	if err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	if err := c.Forms.ApplyTemplate(ctx, formID, role, TruncateDescription(jd)); err != nil {
		return nil, fmt.Errorf("failed to configure form: %w", err)
	}

	meta, err := c.Forms.Metadata(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("failed to read form metadata: %w", err)
	}

	formURL := meta.ResponderURI
	if formURL == "" {
		formURL = fmt.Sprintf("https://docs.google.com/forms/d/%s/viewform", formID)
	}

	st := &types.CampaignState{
		Role:     role,
		FormID:   formID,
		FormURL:  formURL,
		SheetID:  sheetID,
		SheetURL: sheetURL,
		DriveQID: meta.QuestionID(QuestionResumeLink),
		EmailQID: meta.QuestionID(QuestionEmail),
	}
	if st.DriveQID == "" {
		return nil, fmt.Errorf("form is missing the %q question", QuestionResumeLink)
	}

	if c.Publisher != nil && c.LinkedInURN != "" {
		text := social.BuildPostContent(role, jd, formURL)
		result, err := c.Publisher.Publish(ctx, c.LinkedInURN, text)
		if err != nil {
			// Announcement is best effort; the campaign works without it.
			log.Printf("WARNING: failed to publish LinkedIn post: %v", err)
		} else {
			st.LinkedInPostID = result.ID
		}
	}

	if err := c.Store.Reset(st); err != nil {
		return nil, fmt.Errorf("failed to persist campaign state: %w", err)
	}
	return st, nil
}

// TruncateDescription fits the job description into the form description
// field, clipping with an ellipsis when over the limit.
func TruncateDescription(jd string) string {
	if len(jd) <= maxFormDescription {
		return jd
	}
	return jd[:maxFormDescription-4] + " ..."
}
