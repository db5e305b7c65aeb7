package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/hiring-agent/internal/jd"
	"github.com/jonathan/hiring-agent/internal/pipeline"
	"github.com/jonathan/hiring-agent/internal/types"
)

// generateJDRequest is the payload for POST /jd.
type generateJDRequest struct {
	Role       string `json:"role"`
	Experience string `json:"experience"`
}

// handleGenerateJD drafts a job description for a role. Falls back to a
// static template when no model is configured.
func (s *Server) handleGenerateJD(w http.ResponseWriter, r *http.Request) {
	var req generateJDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Role == "" {
		s.errorResponse(w, http.StatusBadRequest, "role is required")
		return
	}

	text := jd.Generate(r.Context(), s.deps.LLM, req.Role, req.Experience)
	s.jsonResponse(w, http.StatusOK, map[string]string{"role": req.Role, "jd": text})
}

// handleCreateCampaign starts a new campaign: spreadsheet, form, optional
// LinkedIn post, and a state reset. The JD is generated when not supplied.
func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req types.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	jdText := req.JD
	if jdText == "" {
		jdText = jd.Generate(r.Context(), s.deps.LLM, req.Role, req.Experience)
	}

	st, err := s.deps.Campaigns.Create(r.Context(), req.Role, jdText)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"role":             st.Role,
		"form_url":         st.FormURL,
		"sheet_url":        st.SheetURL,
		"linkedin_post_id": st.LinkedInPostID,
		"jd":               jdText,
	})
}

// handleCurrentCampaign returns the persisted campaign state.
func (s *Server) handleCurrentCampaign(w http.ResponseWriter, r *http.Request) {
	st, err := s.deps.Store.Load()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !st.HasCampaign() {
		s.errorResponse(w, http.StatusNotFound, (&ErrNoCampaign{}).Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, st)
}

// handleSync runs one intake pass. Concurrent requests share a single pass
// through the singleflight group.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	v, err, shared := s.syncGroup.Do("sync", func() (any, error) {
		return s.deps.Syncer.Sync(r.Context())
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result := v.(*pipeline.Result)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"new_responses":  len(result.NewRows),
		"new_candidates": result.NewCandidates,
		"total":          len(result.State.Candidates),
		"shared":         shared,
	})
}

// handleShortlist returns the current top-N candidates by score.
func (s *Server) handleShortlist(w http.ResponseWriter, r *http.Request) {
	st, err := s.deps.Store.Load()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !st.HasCampaign() {
		s.errorResponse(w, http.StatusNotFound, (&ErrNoCampaign{}).Error())
		return
	}

	n := 5
	if raw := r.URL.Query().Get("n"); raw != "" {
		if parsed, err := parsePositiveInt(raw); err == nil {
			n = parsed
		}
	}
	s.jsonResponse(w, http.StatusOK, pipeline.Shortlist(st.Candidates, n))
}

// handleSchedule allocates interview slots and mails calendar invites.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req types.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.deps.Invites.SendInvites(r.Context(), req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	invites := make([]map[string]any, 0, len(results))
	failed := 0
	for _, res := range results {
		entry := map[string]any{"email": res.Email, "start": res.Start.Format(time.RFC3339)}
		if res.Err != nil {
			entry["error"] = res.Err.Error()
			failed++
		}
		invites = append(invites, entry)
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"invites": invites, "failed": failed})
}

// handleOutcomes mails accept/regret email to every candidate.
func (s *Server) handleOutcomes(w http.ResponseWriter, r *http.Request) {
	var req types.OutcomesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.deps.Outcomes.SendOutcomes(r.Context(), req.HiredEmails, req.Organizer)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	out := make([]map[string]any, 0, len(results))
	for _, res := range results {
		entry := map[string]any{"email": res.Email, "status": res.Status}
		if res.Err != nil {
			entry["error"] = res.Err.Error()
		}
		out = append(out, entry)
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"results": out})
}

func parsePositiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, &ErrValidation{Field: "n", Message: "must be positive"}
	}
	return n, nil
}
