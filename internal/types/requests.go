package types

import "github.com/go-playground/validator/v10"

// CreateCampaignRequest is the payload for starting a new hiring campaign.
type CreateCampaignRequest struct {
	Role           string `json:"role" validate:"required,min=1"`
	Experience     string `json:"experience,omitempty"`
	JD             string `json:"jd,omitempty"`
	LinkedInToken  string `json:"linkedin_token,omitempty"`
	LinkedInAuthor string `json:"linkedin_author,omitempty"`
}

// ScheduleRequest is the payload for allocating and sending interview invites.
type ScheduleRequest struct {
	Emails        []string `json:"emails" validate:"required,min=1,dive,email"`
	Organizer     string   `json:"organizer" validate:"required"`
	Date          string   `json:"date" validate:"required"`     // YYYY-MM-DD
	StartTime     string   `json:"start_time,omitempty"`         // HH:MM, default 10:00
	SlotMinutes   int      `json:"slot_minutes,omitempty"`       // default 45
	GapMinutes    int      `json:"gap_minutes,omitempty"`        // default 15
	MaxCandidates int      `json:"max_candidates,omitempty"`     // default 8
}

// OutcomesRequest is the payload for sending accept/regret emails.
type OutcomesRequest struct {
	HiredEmails []string `json:"hired_emails" validate:"dive,email"`
	Organizer   string   `json:"organizer" validate:"required"`
}

// Validate validates the CreateCampaignRequest using the validator.
func (r *CreateCampaignRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ScheduleRequest using the validator.
func (r *ScheduleRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the OutcomesRequest using the validator.
func (r *OutcomesRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
