package api

import (
	"context"
	"net/http"
	"strconv"
)

// ShowcaseDependencies defines the interface for showcase reads.
type ShowcaseDependencies interface {
	Showcase(ctx context.Context, n int) ([]Entry, error)
}

// ShowcaseHandler handles showcase requests.
type ShowcaseHandler struct {
	deps     ShowcaseDependencies
	maxLimit int
}

// NewShowcaseHandler creates a new showcase handler.
func NewShowcaseHandler(deps ShowcaseDependencies, maxLimit int) *ShowcaseHandler {
	return &ShowcaseHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetShowcase handles GET /showcase?limit=N requests.
func (h *ShowcaseHandler) HandleGetShowcase(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_showcase"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.Showcase(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
