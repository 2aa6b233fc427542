// internal/handlers/replacements.go
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

// ReplacementHandler handles post-sale replacement HTTP requests
type ReplacementHandler struct {
	service ports.ReplacementService
	logger  *slog.Logger
}

// NewReplacementHandler creates a new replacement handler
func NewReplacementHandler(service ports.ReplacementService, logger *slog.Logger) *ReplacementHandler {
	return &ReplacementHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "replacements")),
	}
}

// Lookup handles GET /api/v1/replacements/lookup
//
// Resolves a scanned barcode to the invoice it was sold on, returning the
// invoice's lines with their remaining replaceable quantities.
func (h *ReplacementHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	barcode := r.URL.Query().Get("barcode")
	if barcode == "" {
		respondError(h.logger, w, http.StatusBadRequest, "barcode query parameter is required")
		return
	}

	result, err := h.service.FindInvoiceUnits(ctx, barcode)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to look up invoice by barcode",
			slog.String("barcode", barcode),
			slog.String("error", err.Error()))
		respondDomainError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, result)
}

// Process handles POST /api/v1/replacements
//
// Exchanges sold units on an invoice for fresh stock, line by line.
func (h *ReplacementHandler) Process(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ProcessReplacementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	invoiceID, lines, err := req.ToDomain()
	if err != nil {
		respondError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.service.ProcessReplacement(ctx, invoiceID, lines, actorFromRequest(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to process replacement",
			slog.String("invoice_id", req.InvoiceID),
			slog.Int("line_count", len(req.Items)),
			slog.String("error", err.Error()))
		respondDomainError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "replacement processed",
		slog.String("invoice_id", req.InvoiceID),
		slog.String("record_id", record.ID.String()),
		slog.Int("replaced_units", len(record.ReplacedUnits)))

	respondJSON(h.logger, w, http.StatusCreated, record)
}

// Request DTOs

// ReplacementItemRequest is one line of a replacement request
type ReplacementItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// ProcessReplacementRequest represents the request body for processing
// a replacement against an invoice
type ProcessReplacementRequest struct {
	InvoiceID string                   `json:"invoice_id"`
	Items     []ReplacementItemRequest `json:"items"`
}

// Validate validates the replacement request
func (r *ProcessReplacementRequest) Validate() error {
	if r.InvoiceID == "" {
		return fmt.Errorf("invoice_id is required")
	}
	if len(r.Items) == 0 {
		return fmt.Errorf("items is required")
	}
	for i, item := range r.Items {
		if item.ProductID == "" {
			return fmt.Errorf("items[%d].product_id is required", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("items[%d].quantity must be greater than zero", i)
		}
	}
	return nil
}

// ToDomain converts the request to domain values
func (r *ProcessReplacementRequest) ToDomain() (uuid.UUID, []domain.ReplacementLine, error) {
	invoiceID, err := uuid.Parse(r.InvoiceID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("invalid invoice_id format")
	}

	lines := make([]domain.ReplacementLine, 0, len(r.Items))
	for _, item := range r.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return uuid.Nil, nil, fmt.Errorf("invalid product id format: %s", item.ProductID)
		}
		lines = append(lines, domain.ReplacementLine{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	return invoiceID, lines, nil
}
