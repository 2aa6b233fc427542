// internal/handlers/quantities.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/ports"
)

// QuantityHandler handles derived-quantity HTTP requests
type QuantityHandler struct {
	service ports.AggregateService
	logger  *slog.Logger
}

// NewQuantityHandler creates a new quantity handler
func NewQuantityHandler(service ports.AggregateService, logger *slog.Logger) *QuantityHandler {
	return &QuantityHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "quantities")),
	}
}

// GetQuantities handles GET /api/v1/products/{id}/quantities
//
// Products live in an external catalog, so the caller passes the fields
// the classification needs as query parameters rather than this service
// fetching the product itself.
func (h *QuantityHandler) GetQuantities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product := domain.ProductRef{
		ID:             productID,
		TrackInventory: true,
	}

	if track := r.URL.Query().Get("track_inventory"); track != "" {
		if val, err := strconv.ParseBool(track); err == nil {
			product.TrackInventory = val
		}
	}

	if threshold := r.URL.Query().Get("low_stock_threshold"); threshold != "" {
		if val, err := strconv.Atoi(threshold); err == nil && val >= 0 {
			product.LowStockThreshold = val
		}
	}

	result, err := h.service.Quantities(ctx, product)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to derive quantities",
			slog.String("product_id", productID.String()),
			slog.String("error", err.Error()))
		respondDomainError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, result)
}
