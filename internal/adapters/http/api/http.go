// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/momentum/internal/adapters/repository"
	service "github.com/okian/momentum/internal/app"
	"github.com/okian/momentum/internal/domain/model"
)

const defaultMaxLimit = 100

// Dependencies required by HTTP handlers.
type Dependencies interface {
	MomentDependencies
	LeaderboardDependencies
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = repository.Entry

// Bundle is the scored moment returned by the API.
type Bundle = service.Bundle

// Option configures the Server.
type Option func(*Server)

// WithMaxLimit caps the leaderboard limit parameter.
func WithMaxLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxLimit = n
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	maxLimit           int
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	momentsHandler     *MomentsHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{maxLimit: defaultMaxLimit}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.momentsHandler = NewMomentsHandler(deps)
	s.leaderboardHandler = NewLeaderboardHandler(deps, s.maxLimit)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("POST /moments", MetricsMiddleware(s.momentsHandler.HandleSubmit, "moments"))
	mux.HandleFunc("POST /moments/score", MetricsMiddleware(s.momentsHandler.HandleScore, "moments_score"))
	mux.HandleFunc("GET /moments/{id}", MetricsMiddleware(s.momentsHandler.HandleGet, "moment"))
	mux.HandleFunc("GET /leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
}

// momentRequest is the body of POST /moments and POST /moments/score.
type momentRequest = model.Moment

type ackResponse struct {
	Status    string `json:"status"`
	MomentID  string `json:"moment_id"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
