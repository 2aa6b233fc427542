// internal/handlers/moveout.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/stockline/stockline-be/internal/core/ports"
)

// MoveOutHandler handles defective-stock disposal HTTP requests
type MoveOutHandler struct {
	service ports.MoveOutService
	logger  *slog.Logger
}

// NewMoveOutHandler creates a new move-out handler
func NewMoveOutHandler(service ports.MoveOutService, logger *slog.Logger) *MoveOutHandler {
	return &MoveOutHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "moveout")),
	}
}

// MoveOut handles POST /api/v1/move-outs
//
// Disposes every defective unit of the selected products in one batch and
// books the purchase-price loss as a negative stock adjustment.
func (h *MoveOutHandler) MoveOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MoveOutRequest
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

	batch, err := h.service.MoveOut(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to move out defective units",
			slog.String("store_id", req.StoreID),
			slog.Int("product_count", len(req.ProductIDs)),
			slog.String("error", err.Error()))
		respondDomainError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "move-out batch created",
		slog.String("batch_id", batch.ID.String()),
		slog.Int("unit_count", len(batch.UnitIDs)),
		slog.String("total_loss", batch.TotalLoss.String()))

	respondJSON(h.logger, w, http.StatusCreated, batch)
}

// MoveOutRequest represents the request body for a disposal batch
type MoveOutRequest struct {
	StoreID    string   `json:"store_id"`
	ProductIDs []string `json:"product_ids"`
	Reason     string   `json:"reason"`
	Notes      string   `json:"notes,omitempty"`
}

// Validate validates the move-out request
func (r *MoveOutRequest) Validate() error {
	if r.StoreID == "" {
		return fmt.Errorf("store_id is required")
	}
	if len(r.ProductIDs) == 0 {
		return fmt.Errorf("product_ids is required")
	}
	if r.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	return nil
}

// ToParams converts the request to service parameters
func (r *MoveOutRequest) ToParams(actor string) (ports.MoveOutParams, error) {
	storeID, err := uuid.Parse(r.StoreID)
	if err != nil {
		return ports.MoveOutParams{}, fmt.Errorf("invalid store_id format")
	}

	ids := make([]uuid.UUID, 0, len(r.ProductIDs))
	for _, raw := range r.ProductIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ports.MoveOutParams{}, fmt.Errorf("invalid product id format: %s", raw)
		}
		ids = append(ids, id)
	}

	return ports.MoveOutParams{
		StoreID:    storeID,
		ProductIDs: ids,
		Reason:     r.Reason,
		Notes:      r.Notes,
		Actor:      actor,
	}, nil
}
