package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/showdown/internal/domain/eval"
	"github.com/okian/showdown/internal/domain/model"
)

// EvaluateDependencies defines the interface for synchronous evaluation.
type EvaluateDependencies interface {
	Evaluate(ctx context.Context, hole, board string) (model.Evaluation, error)
}

// EvaluateHandler handles synchronous evaluation requests.
type EvaluateHandler struct {
	deps EvaluateDependencies
}

// NewEvaluateHandler creates a new evaluate handler.
func NewEvaluateHandler(deps EvaluateDependencies) *EvaluateHandler {
	return &EvaluateHandler{deps: deps}
}

// HandlePostEvaluate handles POST /evaluate requests.
func (h *EvaluateHandler) HandlePostEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_evaluate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	ev, err := h.deps.Evaluate(r.Context(), req.Hole, req.Board)
	if err != nil {
		if errors.Is(err, eval.ErrInsufficientCards) {
			writeError(w, http.StatusUnprocessableEntity, "insufficient_cards", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, evaluateResponse{
		Category:    ev.Category,
		Strength:    ev.Strength,
		Description: ev.Description,
		Street:      ev.Street,
		CardsUsed:   ev.CardsUsed,
	})
}
