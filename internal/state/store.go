// Package state persists the mutable campaign record between syncs.
//
// The store is a single JSON document on disk. Loading is fail-open: a
// missing or unreadable document yields an empty default state so that a
// broken file never takes the pipeline down, at the cost of losing dedup
// history. Corruption is logged loudly because it causes duplicate
// processing downstream.
package state

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	ischemas "github.com/jonathan/hiring-agent/internal/schemas"
	"github.com/jonathan/hiring-agent/internal/types"
	"github.com/jonathan/hiring-agent/schemas"
)

// Store is the persistence port for campaign state. The pipeline only ever
// talks to this interface; tests inject an in-memory implementation.
type Store interface {
	// Load returns the current state, or an empty default when nothing
	// usable is persisted. It never fails on corrupt input.
	Load() (*types.CampaignState, error)
	// Save shallow-merges partial into the persisted document and writes it
	// back atomically. Keys absent from partial are left untouched, so a
	// hand-edited document survives a save.
	Save(partial map[string]any) (*types.CampaignState, error)
	// Replace overwrites the whole document with the given state.
	Replace(s *types.CampaignState) error
	// Reset starts a new campaign: candidates and processed ids are cleared
	// and the new campaign identifiers installed.
	Reset(s *types.CampaignState) error
}

// FileStore implements Store over a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the persisted document.
func (fs *FileStore) Path() string {
	return fs.path
}

// Load reads the persisted state. Missing file, unreadable JSON, or a
// document that fails schema validation all degrade to an empty default.
func (fs *FileStore) Load() (*types.CampaignState, error) {
	doc, err := fs.loadDocument()
	if err != nil {
		return emptyState(), nil
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return emptyState(), nil
	}

	var s types.CampaignState
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("WARNING: campaign state at %s is corrupt (%v); starting from empty state, dedup history lost", fs.path, err)
		return emptyState(), nil
	}
	if s.ProcessedIDs == nil {
		s.ProcessedIDs = []string{}
	}
	if s.Candidates == nil {
		s.Candidates = []types.CandidateRecord{}
	}
	return &s, nil
}

// loadDocument reads the raw keyed document, preserving keys the typed state
// does not know about. Schema validation failures are treated as corruption.
func (fs *FileStore) loadDocument() (map[string]any, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARNING: cannot read campaign state at %s: %v; starting from empty state", fs.path, err)
		}
		return map[string]any{}, err
	}

	if err := ischemas.ValidateJSONString(schemas.CampaignState, string(data)); err != nil {
		log.Printf("WARNING: campaign state at %s failed schema validation (%v); starting from empty state, dedup history lost", fs.path, err)
		return map[string]any{}, err
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("WARNING: campaign state at %s is not valid JSON (%v); starting from empty state, dedup history lost", fs.path, err)
		return map[string]any{}, err
	}
	return doc, nil
}

// Save merges partial into the current document (shallow key overwrite) and
// writes the result atomically via a temp file and rename, so a concurrent
// reader never observes a partially written file.
func (fs *FileStore) Save(partial map[string]any) (*types.CampaignState, error) {
	doc, _ := fs.loadDocument()
	for k, v := range partial {
		doc[k] = v
	}

	if err := fs.writeDocument(doc); err != nil {
		return nil, err
	}
	return fs.Load()
}

// Replace overwrites the persisted document with s.
func (fs *FileStore) Replace(s *types.CampaignState) error {
	doc, err := stateToDocument(s)
	if err != nil {
		return err
	}
	return fs.writeDocument(doc)
}

// Reset installs a new campaign. Candidates and processed ids are always
// written as empty, regardless of what the caller passed in.
func (fs *FileStore) Reset(s *types.CampaignState) error {
	fresh := *s
	fresh.ProcessedIDs = []string{}
	fresh.Candidates = []types.CandidateRecord{}
	return fs.Replace(&fresh)
}

func (fs *FileStore) writeDocument(doc map[string]any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode campaign state: %w", err)
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".campaign_state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write campaign state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tmpName, fs.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace campaign state: %w", err)
	}
	return nil
}

func stateToDocument(s *types.CampaignState) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode campaign state: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to re-decode campaign state: %w", err)
	}
	// omitempty drops these when empty; the persisted document always
	// carries them so the reset is visible in the file.
	if _, ok := doc["processed_ids"]; !ok {
		doc["processed_ids"] = []string{}
	}
	if _, ok := doc["candidates"]; !ok {
		doc["candidates"] = []types.CandidateRecord{}
	}
	return doc, nil
}

func emptyState() *types.CampaignState {
	return &types.CampaignState{
		ProcessedIDs: []string{},
		Candidates:   []types.CandidateRecord{},
	}
}
