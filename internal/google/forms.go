package google

import (
	"context"
	"fmt"

	"google.golang.org/api/forms/v1"

	"github.com/jonathan/hiring-agent/internal/campaign"
	"github.com/jonathan/hiring-agent/internal/pipeline"
)

const responsePageSize = 200

// FormsSource reads form responses through the Forms API.
type FormsSource struct {
	svc *forms.Service
}

func NewFormsSource(svc *forms.Service) *FormsSource {
	return &FormsSource{svc: svc}
}

// ListResponses fetches every response for the form, following pagination.
func (s *FormsSource) ListResponses(ctx context.Context, formID string) ([]pipeline.FormResponse, error) {
	var out []pipeline.FormResponse
	token := ""
	for {
		call := s.svc.Forms.Responses.List(formID).PageSize(responsePageSize).Context(ctx)
		if token != "" {
			call = call.PageToken(token)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list responses for form %s: %w", formID, err)
		}
		for _, r := range resp.Responses {
			out = append(out, toFormResponse(r))
		}
		token = resp.NextPageToken
		if token == "" {
			break
		}
	}
	return out, nil
}

func toFormResponse(r *forms.FormResponse) pipeline.FormResponse {
	answers := make(map[string]string, len(r.Answers))
	for qid, a := range r.Answers {
		if a.TextAnswers != nil && len(a.TextAnswers.Answers) > 0 {
			answers[qid] = a.TextAnswers.Answers[0].Value
		}
	}
	return pipeline.FormResponse{
		ID:              r.ResponseId,
		CreateTime:      r.CreateTime,
		RespondentEmail: r.RespondentEmail,
		Answers:         answers,
	}
}

// FormsAdmin creates and configures application forms.
type FormsAdmin struct {
	svc *forms.Service
}

func NewFormsAdmin(svc *forms.Service) *FormsAdmin {
	return &FormsAdmin{svc: svc}
}

// CreateForm creates an empty form with the given title and returns its id.
func (a *FormsAdmin) CreateForm(ctx context.Context, title string) (string, error) {
	fm, err := a.svc.Forms.Create(&forms.Form{
		Info: &forms.Info{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create form: %w", err)
	}
	return fm.FormId, nil
}

// ApplyTemplate injects the job description and adds the standard question
// set in a single batch update.
func (a *FormsAdmin) ApplyTemplate(ctx context.Context, formID, role, description string) error {
	requests := []*forms.Request{
		{
			UpdateFormInfo: &forms.UpdateFormInfoRequest{
				Info:       &forms.Info{Description: description},
				UpdateMask: "description",
			},
		},
		textQuestion(campaign.QuestionFullName, "", false, true, 0),
		textQuestion(campaign.QuestionEmail, "", false, true, 1),
		{
			CreateItem: &forms.CreateItemRequest{
				Item: &forms.Item{
					Title: campaign.QuestionExperience,
					QuestionItem: &forms.QuestionItem{
						Question: &forms.Question{
							Required: true,
							ChoiceQuestion: &forms.ChoiceQuestion{
								Type: "RADIO",
								Options: []*forms.Option{
									{Value: "0"}, {Value: "1"}, {Value: "2"},
								},
								Shuffle: false,
							},
						},
					},
				},
				Location: itemLocation(2),
			},
		},
		textQuestion(fmt.Sprintf("Why are you a fit for %s?", role), "", true, true, 3),
		textQuestion(
			campaign.QuestionResumeLink,
			"Paste a Google Drive link to your PDF resume. Ensure 'Anyone with the link' can view.",
			false, true, 4,
		),
		textQuestion(campaign.QuestionLinkedIn, "", false, false, 5),
	}

	_, err := a.svc.Forms.BatchUpdate(formID, &forms.BatchUpdateFormRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update form %s: %w", formID, err)
	}
	return nil
}

// Metadata fetches the responder URL and question ids for the form.
func (a *FormsAdmin) Metadata(ctx context.Context, formID string) (*campaign.FormMetadata, error) {
	fm, err := a.svc.Forms.Get(formID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch form metadata: %w", err)
	}

	meta := &campaign.FormMetadata{ResponderURI: fm.ResponderUri}
	for _, item := range fm.Items {
		fi := campaign.FormItem{Title: item.Title}
		if item.QuestionItem != nil && item.QuestionItem.Question != nil {
			fi.QuestionID = item.QuestionItem.Question.QuestionId
		}
		meta.Items = append(meta.Items, fi)
	}
	return meta, nil
}

func textQuestion(title, description string, paragraph, required bool, index int64) *forms.Request {
	return &forms.Request{
		CreateItem: &forms.CreateItemRequest{
			Item: &forms.Item{
				Title:       title,
				Description: description,
				QuestionItem: &forms.QuestionItem{
					Question: &forms.Question{
						Required:     required,
						TextQuestion: &forms.TextQuestion{Paragraph: paragraph},
					},
				},
			},
			Location: itemLocation(index),
		},
	}
}

// itemLocation forces Index onto the wire; index 0 would otherwise be
// dropped as a zero value.
func itemLocation(index int64) *forms.Location {
	return &forms.Location{Index: index, ForceSendFields: []string{"Index"}}
}
