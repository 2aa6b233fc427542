// internal/core/ports/services.go
package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockline/stockline-be/internal/core/domain"
)

// TransitionService is the sole authority for changing unit tags.
type TransitionService interface {
	Retag(ctx context.Context, params RetagParams) (*RetagResult, error)
}

// RetagParams describes one batch tag change. All units must share a tag
// that is a valid source for Target; mixed batches are rejected wholesale.
type RetagParams struct {
	UnitIDs []uuid.UUID
	Target  domain.Tag
	Actor   string
	Confirm bool
}

// RetagResult reports how many units actually changed. Unchanged no-op
// units count toward Updated so idempotent retries look identical.
type RetagResult struct {
	Updated int `json:"updated"`
}

// ReservationService withholds units from availability while a cart is
// open, without changing their durable tag until checkout commits.
type ReservationService interface {
	Reserve(ctx context.Context, cartID, productID uuid.UUID, quantity int, actor string) ([]domain.CartReservation, error)
	Release(ctx context.Context, cartID uuid.UUID, actor string) (int, error)
	Commit(ctx context.Context, cartID, invoiceID uuid.UUID, actor string) (int, error)
}

// AggregateService derives presented quantities on demand. Read-only.
type AggregateService interface {
	Quantities(ctx context.Context, product domain.ProductRef) (*QuantitiesResult, error)
}

// QuantitiesResult is the aggregate view plus its stock-level classification.
type QuantitiesResult struct {
	domain.ProductQuantities
	Level domain.StockLevel `json:"stock_level"`
}

// ReplacementService handles post-sale exchanges against a specific invoice.
type ReplacementService interface {
	FindInvoiceUnits(ctx context.Context, barcodeOrSKU string) (*InvoiceUnitsResult, error)
	ProcessReplacement(ctx context.Context, invoiceID uuid.UUID, items []domain.ReplacementLine, actor string) (*domain.ReplacementRecord, error)
}

// InvoiceUnitsResult is the invoice located by a barcode lookup together
// with its replaceable lines.
type InvoiceUnitsResult struct {
	InvoiceID uuid.UUID            `json:"invoice_id"`
	Lines     []domain.InvoiceLine `json:"lines"`
}

// MoveOutService batch-disposes defective units into a financial write-off.
type MoveOutService interface {
	MoveOut(ctx context.Context, params MoveOutParams) (*domain.MoveOutBatch, error)
}

// MoveOutParams describes one disposal batch request.
type MoveOutParams struct {
	StoreID    uuid.UUID
	ProductIDs []uuid.UUID
	Reason     string
	Notes      string
	Actor      string
}

// UnitService covers the unit-store boundary: purchase finalization
// materializing new units, and read-only listings for the label subsystem.
type UnitService interface {
	CreateUnits(ctx context.Context, params CreateUnitsParams) ([]domain.BarcodeUnit, error)
	GetByCode(ctx context.Context, code string) (*domain.BarcodeUnit, error)
	List(ctx context.Context, params UnitListParams) (*UnitListResult, error)
}

// CreateUnitsParams is supplied by purchase finalization: one unit is
// materialized per purchased item quantity.
type CreateUnitsParams struct {
	ProductID  uuid.UUID
	PurchaseID uuid.UUID
	Quantity   int
	UnitPrice  decimal.Decimal
	Actor      string
}

// UnitListResult represents paginated unit listings.
type UnitListResult struct {
	Units      []*domain.BarcodeUnit `json:"units"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalCount int64                 `json:"total_count"`
	TotalPages int                   `json:"total_pages"`
}
