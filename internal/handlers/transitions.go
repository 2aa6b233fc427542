// internal/handlers/transitions.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/ports"
)

// TransitionHandler handles batch tag-change HTTP requests
type TransitionHandler struct {
	service ports.TransitionService
	logger  *slog.Logger
}

// NewTransitionHandler creates a new transition handler
func NewTransitionHandler(service ports.TransitionService, logger *slog.Logger) *TransitionHandler {
	return &TransitionHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "transitions")),
	}
}

// Retag handles POST /api/v1/units/retag
//
// Moves a batch of units to a new tag. Transitions that re-enter sellable
// stock are rejected with 428 until the caller repeats the request with
// confirm=true.
func (h *TransitionHandler) Retag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RetagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := req.ToParams(actorFromRequest(r))
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Retag(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to retag units",
			slog.String("target", req.Target),
			slog.Int("unit_count", len(req.UnitIDs)),
			slog.String("error", err.Error()))
		respondDomainError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "units retagged",
		slog.String("target", req.Target),
		slog.Int("updated", result.Updated))

	respondJSON(h.logger, w, http.StatusOK, result)
}

// RetagRequest represents the request body for a batch tag change
type RetagRequest struct {
	UnitIDs []string `json:"unit_ids"`
	Target  string   `json:"target"`
	Confirm bool     `json:"confirm,omitempty"`
}

// Validate validates the retag request
func (r *RetagRequest) Validate() error {
	if len(r.UnitIDs) == 0 {
		return fmt.Errorf("unit_ids is required")
	}
	if r.Target == "" {
		return fmt.Errorf("target is required")
	}
	return nil
}

// ToParams converts the request to service parameters
func (r *RetagRequest) ToParams(actor string) (ports.RetagParams, error) {
	ids := make([]uuid.UUID, 0, len(r.UnitIDs))
	for _, raw := range r.UnitIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ports.RetagParams{}, fmt.Errorf("invalid unit id format: %s", raw)
		}
		ids = append(ids, id)
	}

	return ports.RetagParams{
		UnitIDs: ids,
		Target:  domain.Tag(r.Target),
		Actor:   actor,
		Confirm: r.Confirm,
	}, nil
}
