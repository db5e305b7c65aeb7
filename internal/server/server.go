package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonathan/hiring-agent/internal/llm"
	"github.com/jonathan/hiring-agent/internal/outcomes"
	"github.com/jonathan/hiring-agent/internal/pipeline"
	"github.com/jonathan/hiring-agent/internal/schedule"
	"github.com/jonathan/hiring-agent/internal/server/ratelimit"
	"github.com/jonathan/hiring-agent/internal/state"
	"github.com/jonathan/hiring-agent/internal/types"
)

// CampaignCreator starts a new campaign. Satisfied by campaign.Creator.
type CampaignCreator interface {
	Create(ctx context.Context, role, jd string) (*types.CampaignState, error)
}

// SyncRunner performs one intake pass. Satisfied by pipeline.Syncer.
type SyncRunner interface {
	Sync(ctx context.Context) (*pipeline.Result, error)
}

// InviteSender mails interview invites. Satisfied by schedule.Sender.
type InviteSender interface {
	SendInvites(ctx context.Context, req types.ScheduleRequest) ([]schedule.SendResult, error)
}

// OutcomeSender mails accept/regret email. Satisfied by outcomes.Sender.
type OutcomeSender interface {
	SendOutcomes(ctx context.Context, hiredEmails []string, organizer string) ([]outcomes.SendResult, error)
}

// Deps are the collaborators the server dispatches to.
type Deps struct {
	Store     state.Store
	Campaigns CampaignCreator
	Syncer    SyncRunner
	Invites   InviteSender
	Outcomes  OutcomeSender
	LLM       llm.Client // nil disables JD generation
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	deps        Deps
	rateLimiter *ratelimit.Limiter

	// syncGroup collapses concurrent sync requests into one pass; callers
	// arriving while a sync runs share its result.
	syncGroup singleflight.Group
}

// Config holds server configuration
type Config struct {
	Addr string
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	s := &Server{deps: deps}
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Sync can download many resumes
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler builds the routed handler with middleware applied. Exposed so
// tests can drive the full stack through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /jd", s.handleGenerateJD)

	mux.HandleFunc("POST /campaigns", s.handleCreateCampaign)
	mux.HandleFunc("GET /campaigns/current", s.handleCurrentCampaign)
	mux.HandleFunc("POST /campaigns/sync", s.handleSync)
	mux.HandleFunc("GET /campaigns/shortlist", s.handleShortlist)
	mux.HandleFunc("POST /campaigns/schedule", s.handleSchedule)
	mux.HandleFunc("POST /campaigns/outcomes", s.handleOutcomes)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.deps.LLM != nil {
		if err := s.deps.LLM.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
// In the future, this could use X-Forwarded-For header (only from trusted proxies).
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
