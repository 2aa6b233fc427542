// internal/handlers/carts.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/stockline/stockline-be/internal/core/ports"
)

// CartHandler handles cart reservation HTTP requests
type CartHandler struct {
	service ports.ReservationService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service ports.ReservationService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "carts")),
	}
}

// Reserve handles POST /api/v1/carts/{id}/reserve
//
// Withholds the oldest sellable units of a product for the cart. Units
// stay reserved until checkout commits, the cart releases them, or the
// sweeper reclaims an idle cart.
func (h *CartHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cartID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid cart ID format")
		return
	}

	var req ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid product_id format")
		return
	}

	reservations, err := h.service.Reserve(ctx, cartID, productID, req.Quantity, actorFromRequest(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to reserve units",
			slog.String("cart_id", cartID.String()),
			slog.String("product_id", req.ProductID),
			slog.Int("quantity", req.Quantity),
			slog.String("error", err.Error()))
		respondDomainError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "units reserved",
		slog.String("cart_id", cartID.String()),
		slog.String("product_id", req.ProductID),
		slog.Int("count", len(reservations)))

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"cart_id":      cartID,
		"reservations": reservations,
		"count":        len(reservations),
	})
}

// Release handles POST /api/v1/carts/{id}/release
//
// Returns every unit the cart holds to sellable stock.
func (h *CartHandler) Release(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cartID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid cart ID format")
		return
	}

	released, err := h.service.Release(ctx, cartID, actorFromRequest(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to release cart",
			slog.String("cart_id", cartID.String()),
			slog.String("error", err.Error()))
		respondDomainError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "cart released",
		slog.String("cart_id", cartID.String()),
		slog.Int("released", released))

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"cart_id":  cartID,
		"released": released,
	})
}

// Commit handles POST /api/v1/carts/{id}/commit
//
// Converts the cart's reservations into a sale against an invoice. The
// commit is all-or-nothing: a single stale reservation fails the whole
// checkout with 409.
func (h *CartHandler) Commit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cartID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid cart ID format")
		return
	}

	var req CommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	invoiceID, err := uuid.Parse(req.InvoiceID)
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid invoice_id format")
		return
	}

	committed, err := h.service.Commit(ctx, cartID, invoiceID, actorFromRequest(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to commit cart",
			slog.String("cart_id", cartID.String()),
			slog.String("invoice_id", req.InvoiceID),
			slog.String("error", err.Error()))
		respondDomainError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "cart committed",
		slog.String("cart_id", cartID.String()),
		slog.String("invoice_id", req.InvoiceID),
		slog.Int("committed", committed))

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"cart_id":    cartID,
		"invoice_id": invoiceID,
		"committed":  committed,
	})
}

// Request DTOs

// ReserveRequest represents the request body for reserving units
type ReserveRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Validate validates the reserve request
func (r *ReserveRequest) Validate() error {
	if r.ProductID == "" {
		return fmt.Errorf("product_id is required")
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be greater than zero")
	}
	return nil
}

// CommitRequest represents the request body for committing a cart
type CommitRequest struct {
	InvoiceID string `json:"invoice_id"`
}

// Validate validates the commit request
func (r *CommitRequest) Validate() error {
	if r.InvoiceID == "" {
		return fmt.Errorf("invoice_id is required")
	}
	return nil
}
