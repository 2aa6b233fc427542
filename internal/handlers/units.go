// internal/handlers/units.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockline/stockline-be/internal/core/ports"
)

// UnitHandler handles barcode-unit HTTP requests
type UnitHandler struct {
	service ports.UnitService
	logger  *slog.Logger
}

// NewUnitHandler creates a new unit handler
func NewUnitHandler(service ports.UnitService, logger *slog.Logger) *UnitHandler {
	return &UnitHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "units")),
	}
}

// CreateUnits handles POST /api/v1/units
//
// Called by purchase finalization: one unit is materialized per purchased
// item quantity, each with a freshly generated barcode.
func (h *UnitHandler) CreateUnits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateUnitsRequest
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

	units, err := h.service.CreateUnits(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create units",
			slog.String("product_id", req.ProductID),
			slog.String("error", err.Error()))
		respondDomainError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "units created",
		slog.String("product_id", req.ProductID),
		slog.String("purchase_id", req.PurchaseID),
		slog.Int("count", len(units)))

	respondJSON(h.logger, w, http.StatusCreated, map[string]interface{}{
		"units": units,
		"count": len(units),
	})
}

// ListUnits handles GET /api/v1/units
func (h *UnitHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := h.parseListParams(r)

	result, err := h.service.List(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list units",
			slog.String("error", err.Error()))
		respondDomainError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, result)
}

// GetByCode handles GET /api/v1/units/code/{code}
//
// Used by the POS scanner path: resolve a scanned barcode to its unit.
func (h *UnitHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := r.PathValue("code")

	if code == "" {
		respondError(h.logger, w, http.StatusBadRequest, "Barcode is required")
		return
	}

	unit, err := h.service.GetByCode(ctx, code)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve barcode",
			slog.String("code", code),
			slog.String("error", err.Error()))
		respondDomainError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, unit)
}

// parseListParams parses query parameters for listing units
func (h *UnitHandler) parseListParams(r *http.Request) ports.UnitListParams {
	params := ports.UnitListParams{
		Page:      1,
		PageSize:  50,
		SortBy:    "created_at",
		SortOrder: "asc",
	}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			if l > 100 {
				params.PageSize = 100
			} else {
				params.PageSize = l
			}
		}
	}

	if id := r.URL.Query().Get("product_id"); id != "" {
		if parsed, err := uuid.Parse(id); err == nil {
			params.ProductID = &parsed
		}
	}

	if id := r.URL.Query().Get("purchase_id"); id != "" {
		if parsed, err := uuid.Parse(id); err == nil {
			params.PurchaseID = &parsed
		}
	}

	if id := r.URL.Query().Get("invoice_id"); id != "" {
		if parsed, err := uuid.Parse(id); err == nil {
			params.InvoiceID = &parsed
		}
	}

	params.Tag = r.URL.Query().Get("tag")
	params.Code = r.URL.Query().Get("code")

	if disposed := r.URL.Query().Get("include_disposed"); disposed != "" {
		if val, err := strconv.ParseBool(disposed); err == nil {
			params.IncludeDisposed = val
		}
	}

	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		params.SortBy = sortBy
	}

	if order := r.URL.Query().Get("order"); order == "asc" || order == "desc" {
		params.SortOrder = order
	}

	return params
}

// actorFromRequest identifies who is acting, for the audit trail. Falls
// back to "api" when the caller did not identify itself.
func actorFromRequest(r *http.Request) string {
	if actor := r.Header.Get("X-Actor"); actor != "" {
		return actor
	}
	return "api"
}

// Request/Response DTOs

// CreateUnitsRequest represents the request body for materializing units
// from a finalized purchase
type CreateUnitsRequest struct {
	ProductID  string          `json:"product_id"`
	PurchaseID string          `json:"purchase_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// Validate validates the create units request
func (r *CreateUnitsRequest) Validate() error {
	if r.ProductID == "" {
		return fmt.Errorf("product_id is required")
	}
	if r.PurchaseID == "" {
		return fmt.Errorf("purchase_id is required")
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("quantity must be greater than zero")
	}
	if r.UnitPrice.IsNegative() {
		return fmt.Errorf("unit_price cannot be negative")
	}
	return nil
}

// ToParams converts the request to service parameters
func (r *CreateUnitsRequest) ToParams(actor string) (ports.CreateUnitsParams, error) {
	productID, err := uuid.Parse(r.ProductID)
	if err != nil {
		return ports.CreateUnitsParams{}, fmt.Errorf("invalid product_id format")
	}

	purchaseID, err := uuid.Parse(r.PurchaseID)
	if err != nil {
		return ports.CreateUnitsParams{}, fmt.Errorf("invalid purchase_id format")
	}

	return ports.CreateUnitsParams{
		ProductID:  productID,
		PurchaseID: purchaseID,
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
		Actor:      actor,
	}, nil
}
