// Package pipeline provides the candidate intake and scoring orchestration.
//
// The pipeline talks to its external collaborators only through the ports
// defined here; concrete Google-backed implementations live in
// internal/google and tests inject fakes.
package pipeline

import "context"

// FormResponse is one applicant submission to the intake form. Answers maps
// question id to the first text answer.
type FormResponse struct {
	ID              string
	CreateTime      string
	RespondentEmail string
	Answers         map[string]string
}

// ResponseSource lists form responses. Implementations handle pagination and
// expose the complete, ordered sequence.
type ResponseSource interface {
	ListResponses(ctx context.Context, formID string) ([]FormResponse, error)
}

// FileMetadata describes a stored resume file.
type FileMetadata struct {
	Name     string
	MimeType string
	ViewLink string
}

// FileStore reads resume files out of cloud storage.
type FileStore interface {
	GetMetadata(ctx context.Context, fileID string) (*FileMetadata, error)
	Download(ctx context.Context, fileID, destPath string) error
}

// TabularSink appends audit and shortlist rows to spreadsheet tabs.
type TabularSink interface {
	// EnsureTab creates the named tab if missing. created reports whether a
	// new tab was added, so callers know to write a header row.
	EnsureTab(ctx context.Context, sheetID, title string) (created bool, err error)
	AppendRows(ctx context.Context, sheetID, tab string, rows [][]any) error
	ReplaceRows(ctx context.Context, sheetID, tab string, rows [][]any) error
}

// Mailer sends outcome and invite email. A non-empty ics is attached as a
// text/calendar part.
type Mailer interface {
	Send(ctx context.Context, to, subject, body, ics string) (messageID string, err error)
	SenderAddress(ctx context.Context) (string, error)
}
