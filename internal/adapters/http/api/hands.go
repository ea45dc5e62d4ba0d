package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/okian/showdown/internal/domain/dedupe"
	"github.com/okian/showdown/internal/domain/model"
)

// HandSubmitDependencies defines the interface for hand submission.
type HandSubmitDependencies interface {
	dedupe.Deduper
	Submit(ctx context.Context, h model.Hand) bool
}

// HandsHandler handles hand submissions.
type HandsHandler struct {
	deps HandSubmitDependencies
}

// NewHandsHandler creates a new hands handler.
func NewHandsHandler(deps HandSubmitDependencies) *HandsHandler {
	return &HandsHandler{deps: deps}
}

// HandlePostHand handles POST /hands requests.
func (h *HandsHandler) HandlePostHand(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_hand"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req handRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check, mark as seen first.
	if h.deps.SeenAndRecord(r.Context(), req.HandID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	ts, _ := time.Parse(time.RFC3339, req.TS)
	hand := model.Hand{
		HandID: req.HandID,
		Hole:   req.Hole,
		Board:  req.Board,
		TS:     ts,
	}

	if ok := h.deps.Submit(r.Context(), hand); !ok {
		// Roll back the seen status since the submit failed.
		h.deps.Unrecord(r.Context(), req.HandID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}
