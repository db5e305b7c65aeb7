package campaign

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiring-agent/internal/social"
	"github.com/jonathan/hiring-agent/internal/types"
)

type fakeForms struct {
	appliedRole string
	appliedDesc string
	meta        *FormMetadata
	createErr   error
}

func (f *fakeForms) CreateForm(_ context.Context, title string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	return "form-123", nil
}

func (f *fakeForms) ApplyTemplate(_ context.Context, _, role, description string) error {
	f.appliedRole = role
	f.appliedDesc = description
	return nil
}

func (f *fakeForms) Metadata(_ context.Context, _ string) (*FormMetadata, error) {
	return f.meta, nil
}

type fakeSheets struct{}

func (fakeSheets) CreateSpreadsheet(_ context.Context, title string) (string, string, error) {
	return "sheet-123", "https://sheets.example/" + title, nil
}

type fakeStore struct {
	reset *types.CampaignState
}

func (s *fakeStore) Load() (*types.CampaignState, error)                      { return &types.CampaignState{}, nil }
func (s *fakeStore) Save(map[string]any) (*types.CampaignState, error)        { return nil, nil }
func (s *fakeStore) Replace(*types.CampaignState) error                       { return nil }
func (s *fakeStore) Reset(st *types.CampaignState) error                      { s.reset = st; return nil }

type fakePublisher struct {
	text string
	urn  string
	err  error
}

func (p *fakePublisher) Publish(_ context.Context, authorURN, text string) (*social.PostResult, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.urn = authorURN
	p.text = text
	return &social.PostResult{ID: "urn:li:share:42"}, nil
}

func standardMetadata() *FormMetadata {
	return &FormMetadata{
		ResponderURI: "https://docs.google.com/forms/d/e/abc/viewform",
		Items: []FormItem{
			{Title: "Full name", QuestionID: "q1"},
			{Title: "EMAIL ", QuestionID: "q2"},
			{Title: "Years of experience", QuestionID: "q3"},
			{Title: "Why are you a fit for Backend Engineer?", QuestionID: "q4"},
			{Title: "resume google drive link (pdf)", QuestionID: "q5"},
			{Title: "LinkedIn URL", QuestionID: "q6"},
		},
	}
}

func TestCreate(t *testing.T) {
	forms := &fakeForms{meta: standardMetadata()}
	store := &fakeStore{}
	creator := &Creator{Forms: forms, Sheets: fakeSheets{}, Store: store}

	st, err := creator.Create(context.Background(), "Backend Engineer", "Great role.")
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", st.Role)
	assert.Equal(t, "form-123", st.FormID)
	assert.Equal(t, "https://docs.google.com/forms/d/e/abc/viewform", st.FormURL)
	assert.Equal(t, "sheet-123", st.SheetID)
	assert.Equal(t, "q5", st.DriveQID, "question lookup is case-insensitive")
	assert.Equal(t, "q2", st.EmailQID, "question lookup ignores surrounding whitespace")
	assert.Empty(t, st.LinkedInPostID)

	require.NotNil(t, store.reset, "new campaign must reset state, not merge")
	assert.Equal(t, st, store.reset)
	assert.Equal(t, "Backend Engineer", forms.appliedRole)
}

func TestCreate_PublishesAnnouncement(t *testing.T) {
	forms := &fakeForms{meta: standardMetadata()}
	pub := &fakePublisher{}
	creator := &Creator{
		Forms:       forms,
		Sheets:      fakeSheets{},
		Store:       &fakeStore{},
		Publisher:   pub,
		LinkedInURN: "urn:li:person:me",
	}

	st, err := creator.Create(context.Background(), "Backend Engineer", "Great role.")
	require.NoError(t, err)

	assert.Equal(t, "urn:li:share:42", st.LinkedInPostID)
	assert.Equal(t, "urn:li:person:me", pub.urn)
	assert.Contains(t, pub.text, "We're hiring: Backend Engineer")
	assert.Contains(t, pub.text, st.FormURL)
}

func TestCreate_PublishFailureIsNotFatal(t *testing.T) {
	creator := &Creator{
		Forms:       &fakeForms{meta: standardMetadata()},
		Sheets:      fakeSheets{},
		Store:       &fakeStore{},
		Publisher:   &fakePublisher{err: fmt.Errorf("token expired")},
		LinkedInURN: "urn:li:person:me",
	}

	st, err := creator.Create(context.Background(), "Backend Engineer", "Great role.")
	require.NoError(t, err)
	assert.Empty(t, st.LinkedInPostID)
}

func TestCreate_MissingResumeQuestionFails(t *testing.T) {
	meta := &FormMetadata{Items: []FormItem{{Title: "Email", QuestionID: "q2"}}}
	creator := &Creator{Forms: &fakeForms{meta: meta}, Sheets: fakeSheets{}, Store: &fakeStore{}}

	_, err := creator.Create(context.Background(), "Backend Engineer", "jd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Resume Google Drive link")
}

func TestCreate_ResponderURIFallback(t *testing.T) {
	meta := standardMetadata()
	meta.ResponderURI = ""
	creator := &Creator{Forms: &fakeForms{meta: meta}, Sheets: fakeSheets{}, Store: &fakeStore{}}

	st, err := creator.Create(context.Background(), "Backend Engineer", "jd")
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/forms/d/form-123/viewform", st.FormURL)
}

func TestTruncateDescription(t *testing.T) {
	short := "short description"
	assert.Equal(t, short, TruncateDescription(short))

	long := strings.Repeat("x", 5000)
	got := TruncateDescription(long)
	assert.Len(t, got, 4000)
	assert.True(t, strings.HasSuffix(got, " ..."))
}
