// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/showdown/internal/domain/dedupe"
	"github.com/okian/showdown/internal/domain/model"
	"github.com/okian/showdown/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Submit pushes a hand for async evaluation. Returns false on backpressure.
	Submit(ctx context.Context, h model.Hand) bool

	// Evaluate synchronously evaluates hole and board text.
	Evaluate(ctx context.Context, hole, board string) (model.Evaluation, error)

	// Read operations expose showcase data.
	Showcase(ctx context.Context, n int) ([]Entry, error)
	Best(ctx context.Context, handID string) (Entry, error)
}

// Entry mirrors the read shape returned by showcase queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	handsHandler    *HandsHandler
	handHandler     *HandHandler
	evaluateHandler *EvaluateHandler
	showcaseHandler *ShowcaseHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxShowcaseLimit int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		handsHandler:    NewHandsHandler(deps),
		handHandler:     NewHandHandler(deps),
		evaluateHandler: NewEvaluateHandler(deps),
		showcaseHandler: NewShowcaseHandler(deps, maxShowcaseLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/hands", MetricsMiddleware(s.handsHandler.HandlePostHand, "hands"))
	mux.HandleFunc("/hands/", MetricsMiddleware(s.handHandler.HandleGetHand, "hand"))
	mux.HandleFunc("/evaluate", MetricsMiddleware(s.evaluateHandler.HandlePostEvaluate, "evaluate"))
	mux.HandleFunc("/showcase", MetricsMiddleware(s.showcaseHandler.HandleGetShowcase, "showcase"))
}

// handRequest mirrors the OpenAPI schema for POST /hands.
type handRequest struct {
	HandID string `json:"hand_id"`
	Hole   string `json:"hole"`
	Board  string `json:"board"`
	TS     string `json:"ts"`
}

func (h handRequest) validate() error {
	switch {
	case strings.TrimSpace(h.HandID) == "":
		return errors.New("missing hand_id")
	case strings.TrimSpace(h.Hole) == "":
		return errors.New("missing hole")
	case strings.TrimSpace(h.TS) == "":
		return errors.New("missing ts")
	}
	if _, err := time.Parse(time.RFC3339, h.TS); err != nil {
		return errors.New("invalid ts; must be RFC3339")
	}
	return nil
}

// evaluateRequest mirrors the OpenAPI schema for POST /evaluate.
type evaluateRequest struct {
	Hole  string `json:"hole"`
	Board string `json:"board"`
}

func (e evaluateRequest) validate() error {
	if strings.TrimSpace(e.Hole) == "" && strings.TrimSpace(e.Board) == "" {
		return errors.New("missing hole and board")
	}
	return nil
}

// evaluateResponse is the rendered result of a synchronous evaluation.
type evaluateResponse struct {
	Category    string `json:"category"`
	Strength    uint32 `json:"strength"`
	Description string `json:"description"`
	Street      string `json:"street"`
	CardsUsed   int    `json:"cards_used"`
}

type ackResponse struct {
	Status    string `json:"status"`
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
