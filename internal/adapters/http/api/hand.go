package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/showdown/internal/adapters/repository"
)

// HandLookupDependencies defines the interface for hand lookups.
type HandLookupDependencies interface {
	Best(ctx context.Context, handID string) (Entry, error)
}

// HandHandler handles single-hand lookups.
type HandHandler struct {
	deps HandLookupDependencies
}

// NewHandHandler creates a new hand handler.
func NewHandHandler(deps HandLookupDependencies) *HandHandler {
	return &HandHandler{deps: deps}
}

// HandleGetHand handles GET /hands/{hand_id} requests.
func (h *HandHandler) HandleGetHand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/hands/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	entry, err := h.deps.Best(r.Context(), path)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
