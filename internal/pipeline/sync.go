package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/hiring-agent/internal/document"
	"github.com/jonathan/hiring-agent/internal/identity"
	"github.com/jonathan/hiring-agent/internal/scoring"
	"github.com/jonathan/hiring-agent/internal/state"
	"github.com/jonathan/hiring-agent/internal/types"
)

// Spreadsheet tab names written by the pipeline.
const (
	RawTab       = "Raw"
	ShortlistTab = "Shortlist"
)

const (
	previewLength        = 200
	defaultShortlistSize = 5
)

var unsafeNameRe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Syncer pulls new form responses, resolves identity and resume text, scores
// candidates, and appends results to durable tabular storage.
//
// A Syncer performs no internal locking; callers must guarantee at most one
// in-flight Sync per campaign.
type Syncer struct {
	Responses ResponseSource
	Files     FileStore
	Sheets    TabularSink
	Store     state.Store

	// DownloadDir is the local resume cache, keyed by file id. Safe to share
	// across syncs because writes are idempotent (same id, same content).
	DownloadDir string

	// MaxPages bounds text extraction per resume (default 15).
	MaxPages int

	// Keywords overrides the default scoring vocabulary when non-nil.
	Keywords []string

	// ShortlistSize is the top-N written to the shortlist tab (default 5).
	ShortlistSize int

	// RetryFailedDownloads controls what happens to a response whose resume
	// download fails: false (default) marks it processed anyway and it is
	// never retried; true leaves it unprocessed so the next sync retries it.
	RetryFailedDownloads bool

	// ExtractText is injectable for tests; defaults to document.ExtractText.
	ExtractText func(path string, maxPages int) string
}

// Result reports what one Sync pass did.
type Result struct {
	State         *types.CampaignState
	NewRows       []types.RawRow
	NewCandidates []types.CandidateRecord
}

// Sync performs one intake pass over the active campaign. Per-response
// failures are isolated into raw-log status strings; campaign-level sink
// failures abort the pass with persisted state unchanged.
func (s *Syncer) Sync(ctx context.Context) (*Result, error) {
	st, err := s.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign state: %w", err)
	}
	if !st.HasCampaign() {
		return nil, fmt.Errorf("no active campaign")
	}

	responses, err := s.Responses.ListResponses(ctx, st.FormID)
	if err != nil {
		return nil, fmt.Errorf("failed to list form responses: %w", err)
	}

	if s.DownloadDir != "" {
		if err := os.MkdirAll(s.DownloadDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create download directory: %w", err)
		}
	}

	processed := make(map[string]bool, len(st.ProcessedIDs))
	for _, id := range st.ProcessedIDs {
		processed[id] = true
	}

	var (
		newRows       []types.RawRow
		newCandidates []types.CandidateRecord
		newProcessed  []string
	)

	for _, resp := range responses {
		if processed[resp.ID] {
			continue
		}

		row, candidate := s.handleResponse(ctx, st, resp)
		newRows = append(newRows, row)
		if candidate != nil {
			newCandidates = append(newCandidates, *candidate)
		}

		if s.RetryFailedDownloads && strings.HasPrefix(row.Status, "download_error") {
			// Left out of the processed set so a later sync retries it.
			continue
		}
		processed[resp.ID] = true
		newProcessed = append(newProcessed, resp.ID)
	}

	if len(newRows) > 0 {
		if err := s.appendRaw(ctx, st.SheetID, newRows); err != nil {
			return nil, fmt.Errorf("failed to append raw log: %w", err)
		}
	}

	st.ProcessedIDs = append(st.ProcessedIDs, newProcessed...)
	st.Candidates = append(st.Candidates, newCandidates...)
	// Persist only the sync delta through the merge path so hand-added keys
	// in the state document survive.
	if _, err := s.Store.Save(map[string]any{
		"processed_ids": st.ProcessedIDs,
		"candidates":    st.Candidates,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist campaign state: %w", err)
	}

	// The shortlist is derived data, rebuilt from full state on every sync.
	// Its failure is logged rather than propagated: the next sync rewrites
	// it from scratch and the raw log already carries every row.
	if err := s.writeShortlist(ctx, st); err != nil {
		log.Printf("WARNING: failed to write shortlist tab: %v", err)
	}

	return &Result{State: st, NewRows: newRows, NewCandidates: newCandidates}, nil
}

// handleResponse resolves one response into a raw-log row and, when a resume
// is resolvable, a candidate record. It never fails; every error becomes a
// status string on the row.
func (s *Syncer) handleResponse(ctx context.Context, st *types.CampaignState, resp FormResponse) (types.RawRow, *types.CandidateRecord) {
	email := identity.ValidEmail(resp.Answers[st.EmailQID])
	if email == "" {
		email = identity.ValidEmail(resp.RespondentEmail)
	}

	resumeLink := resp.Answers[st.DriveQID]
	fileID := identity.ExtractFileID(resumeLink)

	row := types.RawRow{
		ResponseID: resp.ID,
		Timestamp:  resp.CreateTime,
		Email:      email,
		FileID:     fileID,
		Status:     types.StatusMissingResume,
	}

	if fileID == "" {
		return row, nil
	}

	meta, err := s.Files.GetMetadata(ctx, fileID)
	if err != nil {
		row.Status = "download_error:" + err.Error()
		return row, nil
	}
	row.ViewLink = meta.ViewLink

	localPath := s.cachePath(fileID, meta.Name)
	if _, statErr := os.Stat(localPath); statErr != nil {
		if err := s.Files.Download(ctx, fileID, localPath); err != nil {
			row.Status = "download_error:" + err.Error()
			return row, nil
		}
	}
	row.Status = types.StatusDownloaded

	maxPages := s.MaxPages
	if maxPages <= 0 {
		maxPages = document.DefaultMaxPages
	}
	extract := s.ExtractText
	if extract == nil {
		extract = document.ExtractText
	}
	text := extract(localPath, maxPages)

	// Last resort: pull an address out of the resume itself.
	if email == "" {
		email = identity.ValidEmail(identity.ExtractAnyEmail(text))
		row.Email = email
	}

	keywords := s.Keywords
	if keywords == nil {
		keywords = scoring.Keywords()
	}
	score := scoring.Score(text, keywords)

	name := meta.Name
	if name == "" {
		name = "Candidate"
	}

	preview := text
	if len(preview) > previewLength {
		preview = preview[:previewLength]
	}

	return row, &types.CandidateRecord{
		ResponseID:  resp.ID,
		Name:        name,
		Email:       email,
		FileID:      fileID,
		Score:       float64(score),
		TextPreview: preview,
		ResumeLink:  resumeLink,
		ViewLink:    meta.ViewLink,
	}
}

// cachePath builds the deterministic local path for a resume, keyed by file
// id so repeat syncs reuse the downloaded copy. The Drive file name's
// extension is kept when it has one so text extraction can route on it;
// extensionless names default to .pdf.
func (s *Syncer) cachePath(fileID, name string) string {
	if name == "" {
		name = fileID
	}
	if filepath.Ext(name) == "" {
		name += ".pdf"
	}
	safe := unsafeNameRe.ReplaceAllString(name, "_")
	return filepath.Join(s.DownloadDir, fileID+"_"+safe)
}

func (s *Syncer) appendRaw(ctx context.Context, sheetID string, rows []types.RawRow) error {
	created, err := s.Sheets.EnsureTab(ctx, sheetID, RawTab)
	if err != nil {
		return err
	}

	values := make([][]any, 0, len(rows)+1)
	if created {
		values = append(values, types.RawHeader())
	}
	for _, row := range rows {
		values = append(values, row.Values())
	}
	return s.Sheets.AppendRows(ctx, sheetID, RawTab, values)
}

// writeShortlist replaces the shortlist tab with the campaign's current
// top-N candidates by score. Ranking happens here, at read time; the state
// keeps candidates in sync order.
func (s *Syncer) writeShortlist(ctx context.Context, st *types.CampaignState) error {
	if _, err := s.Sheets.EnsureTab(ctx, st.SheetID, ShortlistTab); err != nil {
		return err
	}

	size := s.ShortlistSize
	if size <= 0 {
		size = defaultShortlistSize
	}

	shortlist := Shortlist(st.Candidates, size)
	rows := [][]any{{"Name", "Email", "Score", "CV link"}}
	for _, c := range shortlist {
		rows = append(rows, []any{c.Name, c.Email, c.Score, c.ViewLink})
	}
	return s.Sheets.ReplaceRows(ctx, st.SheetID, ShortlistTab, rows)
}

// Shortlist returns the top-N candidates ranked by descending score. Ties
// keep sync order. The input slice is not modified.
func Shortlist(candidates []types.CandidateRecord, n int) []types.CandidateRecord {
	ranked := make([]types.CandidateRecord, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
