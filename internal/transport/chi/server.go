// Package chi exposes the HTTP API: session lifecycle, hybrid property
// search, health, and metrics.
package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/allenmylath/propvoice/internal/domain/notify"
	"github.com/allenmylath/propvoice/internal/domain/search/filter"
	"github.com/allenmylath/propvoice/internal/domain/search/request"
	"github.com/allenmylath/propvoice/internal/session"
	healthuc "github.com/allenmylath/propvoice/internal/usecase/health"
	searchuc "github.com/allenmylath/propvoice/internal/usecase/search"
)

// Server hosts the HTTP handlers.
type Server struct {
	search   *searchuc.Service
	health   *healthuc.Service
	sessions *session.Manager
	logger   *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, sessions *session.Manager, logger *zap.Logger) *Server {
	return &Server{
		search:   search,
		health:   health,
		sessions: sessions,
		logger:   logger,
	}
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Post("/v1/sessions", s.createSession)
	r.Get("/v1/sessions/{id}/messages", s.sessionMessages)
	r.Delete("/v1/sessions/{id}", s.deleteSession)
	r.Post("/v1/search", s.runSearch)
	r.Get("/healthz", s.healthz)
	r.Get("/metrics", s.metricsHandler)
}

// searchRequest is the POST /v1/search body. Absent filter fields mean
// "no constraint".
type searchRequest struct {
	Query            string   `json:"query"`
	MinPrice         *float64 `json:"min_price,omitempty"`
	MaxPrice         *float64 `json:"max_price,omitempty"`
	Bedrooms         *string  `json:"bedrooms,omitempty"`
	Bathrooms        *string  `json:"bathrooms,omitempty"`
	PropertyType     *string  `json:"property_type,omitempty"`
	LocationKeywords *string  `json:"location_keywords,omitempty"`
	MLSGenuine       *bool    `json:"mls_genuine,omitempty"`
	Limit            int      `json:"limit,omitempty"`
	Index            string   `json:"index,omitempty"`
	SessionID        string   `json:"session_id,omitempty"`
}

// runSearch handles POST /v1/search. The search itself never fails the
// HTTP call: any search-level failure is encoded in the outcome body.
func (s *Server) runSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var sess notify.Session
	if req.SessionID != "" {
		live, ok := s.sessions.Get(req.SessionID)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown session")
			return
		}
		sess = live
	}

	oc := s.search.Execute(r.Context(), request.New(req.Query, filter.Params{
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		PropertyType: req.PropertyType,
		Location:     req.LocationKeywords,
		MLSGenuine:   req.MLSGenuine,
	}, req.Limit, req.Index), sess)

	writeJSON(w, http.StatusOK, oc)
}

// createSession handles POST /v1/sessions.
func (s *Server) createSession(w http.ResponseWriter, _ *http.Request) {
	live := s.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": live.ID()})
}

// sessionMessages handles GET /v1/sessions/{id}/messages. It drains and
// returns every envelope currently queued for the session.
func (s *Server) sessionMessages(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	live, ok := s.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	envelopes := live.Drain()
	if envelopes == nil {
		envelopes = []notify.Envelope{}
	}
	writeJSON(w, http.StatusOK, envelopes)
}

// deleteSession handles DELETE /v1/sessions/{id}.
func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.sessions.Remove(id) {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// healthz handles GET /healthz.
func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
