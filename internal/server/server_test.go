package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/hiring-agent/internal/outcomes"
	"github.com/jonathan/hiring-agent/internal/pipeline"
	"github.com/jonathan/hiring-agent/internal/schedule"
	"github.com/jonathan/hiring-agent/internal/types"
)

type memStore struct {
	mu    sync.Mutex
	state types.CampaignState
}

func (m *memStore) Load() (*types.CampaignState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state
	return &st, nil
}

func (m *memStore) Save(map[string]any) (*types.CampaignState, error) { return m.Load() }

func (m *memStore) Replace(st *types.CampaignState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = *st
	return nil
}

func (m *memStore) Reset(st *types.CampaignState) error { return m.Replace(st) }

type fakeCreator struct {
	err error
}

func (f *fakeCreator) Create(_ context.Context, role, jdText string) (*types.CampaignState, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &types.CampaignState{
		Role:     role,
		FormID:   "form-1",
		FormURL:  "https://forms.example/form-1",
		SheetURL: "https://sheets.example/sheet-1",
	}, nil
}

type fakeSyncer struct {
	mu    sync.Mutex
	calls int
	delay time.Duration
	err   error
}

func (f *fakeSyncer) Sync(context.Context) (*pipeline.Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &pipeline.Result{
		State:   &types.CampaignState{FormID: "form-1", Candidates: []types.CandidateRecord{{ResponseID: "r1"}}},
		NewRows: []types.RawRow{{ResponseID: "r1"}},
	}, nil
}

type fakeInvites struct {
	req types.ScheduleRequest
}

func (f *fakeInvites) SendInvites(_ context.Context, req types.ScheduleRequest) ([]schedule.SendResult, error) {
	f.req = req
	return []schedule.SendResult{
		{Email: req.Emails[0], Start: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC), MessageID: "msg-1"},
	}, nil
}

type fakeOutcomes struct{}

func (fakeOutcomes) SendOutcomes(_ context.Context, hired []string, _ string) ([]outcomes.SendResult, error) {
	res := []outcomes.SendResult{{Email: "a@example.com", Status: outcomes.StatusSentRegret}}
	for _, h := range hired {
		res = append(res, outcomes.SendResult{Email: h, Status: outcomes.StatusSentAccept})
	}
	return res, nil
}

func newTestServer(t *testing.T, deps Deps) *Server {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	if deps.Store == nil {
		deps.Store = &memStore{}
	}
	return New(Config{Addr: ":0"}, deps)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Deps{})
	rec := do(t, s.Handler(), "GET", "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateCampaign(t *testing.T) {
	s := newTestServer(t, Deps{Campaigns: &fakeCreator{}})

	rec := do(t, s.Handler(), "POST", "/campaigns", `{"role":"Backend Engineer","jd":"A fine role."}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Backend Engineer", resp["role"])
	assert.Equal(t, "https://forms.example/form-1", resp["form_url"])
	assert.Equal(t, "A fine role.", resp["jd"], "supplied JD is used verbatim")
}

func TestCreateCampaign_Validation(t *testing.T) {
	s := newTestServer(t, Deps{Campaigns: &fakeCreator{}})
	h := s.Handler()

	rec := do(t, h, "POST", "/campaigns", `{"role":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, "POST", "/campaigns", `{bad json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateJD_WithoutModelFallsBack(t *testing.T) {
	s := newTestServer(t, Deps{})

	rec := do(t, s.Handler(), "POST", "/jd", `{"role":"Backend Engineer","experience":"3 years"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["jd"], "Backend Engineer")
}

func TestCurrentCampaign(t *testing.T) {
	store := &memStore{state: types.CampaignState{Role: "Backend Engineer", FormID: "form-1"}}
	s := newTestServer(t, Deps{Store: store})
	h := s.Handler()

	rec := do(t, h, "GET", "/campaigns/current", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var st types.CampaignState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "Backend Engineer", st.Role)
}

func TestCurrentCampaign_NotFound(t *testing.T) {
	s := newTestServer(t, Deps{})
	rec := do(t, s.Handler(), "GET", "/campaigns/current", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSync(t *testing.T) {
	syncer := &fakeSyncer{}
	s := newTestServer(t, Deps{Syncer: syncer})

	rec := do(t, s.Handler(), "POST", "/campaigns/sync", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["new_responses"])
	assert.Equal(t, 1, syncer.calls)
}

func TestSync_NoCampaignMapsToConflict(t *testing.T) {
	s := newTestServer(t, Deps{Syncer: &fakeSyncer{err: fmt.Errorf("no active campaign")}})
	rec := do(t, s.Handler(), "POST", "/campaigns/sync", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSync_ConcurrentRequestsShareOnePass(t *testing.T) {
	syncer := &fakeSyncer{delay: 50 * time.Millisecond}
	s := newTestServer(t, Deps{Syncer: syncer})
	h := s.Handler()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := do(t, h, "POST", "/campaigns/sync", "")
			assert.Equal(t, http.StatusOK, rec.Code)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, syncer.calls, "concurrent syncs must collapse into one pass")
}

func TestShortlist(t *testing.T) {
	store := &memStore{state: types.CampaignState{
		FormID: "form-1",
		Candidates: []types.CandidateRecord{
			{ResponseID: "low", Score: 1},
			{ResponseID: "high", Score: 9},
			{ResponseID: "mid", Score: 4},
		},
	}}
	s := newTestServer(t, Deps{Store: store})

	rec := do(t, s.Handler(), "GET", "/campaigns/shortlist?n=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []types.CandidateRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].ResponseID)
	assert.Equal(t, "mid", got[1].ResponseID)
}

func TestSchedule(t *testing.T) {
	invites := &fakeInvites{}
	s := newTestServer(t, Deps{Invites: invites})

	body := `{"emails":["a@example.com"],"organizer":"Sam","date":"2026-09-01"}`
	rec := do(t, s.Handler(), "POST", "/campaigns/schedule", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(0), resp["failed"])
	assert.Equal(t, []string{"a@example.com"}, invites.req.Emails)
}

func TestSchedule_Validation(t *testing.T) {
	s := newTestServer(t, Deps{Invites: &fakeInvites{}})
	h := s.Handler()

	// Missing organizer.
	rec := do(t, h, "POST", "/campaigns/schedule", `{"emails":["a@example.com"],"date":"2026-09-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Malformed email.
	rec = do(t, h, "POST", "/campaigns/schedule", `{"emails":["nope"],"organizer":"Sam","date":"2026-09-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOutcomes(t *testing.T) {
	s := newTestServer(t, Deps{Outcomes: fakeOutcomes{}})

	body := `{"hired_emails":["w@example.com"],"organizer":"Sam"}`
	rec := do(t, s.Handler(), "POST", "/campaigns/outcomes", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 2)
}

func TestRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	s := New(Config{Addr: ":0"}, Deps{Campaigns: &fakeCreator{}, Store: &memStore{}})
	h := s.Handler()

	// Campaign creation has burst capacity 2; the third immediate request
	// must be rejected.
	body := `{"role":"Backend Engineer","jd":"x"}`
	for i := 0; i < 2; i++ {
		rec := do(t, h, "POST", "/campaigns", body)
		require.Equal(t, http.StatusCreated, rec.Code, "request %d should pass", i+1)
	}
	rec := do(t, h, "POST", "/campaigns", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, Deps{})
	rec := do(t, s.Handler(), "OPTIONS", "/campaigns", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
