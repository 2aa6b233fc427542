// internal/core/ports/units.go
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockline/stockline-be/internal/core/domain"
)

// UnitRepository is the persistence port for the barcode unit store.
// Read methods run against a single statement snapshot; every
// read-then-write sequence goes through InTx so the involved unit rows are
// locked together (select-for-update on exactly those rows, never a table
// lock). Lock conflicts surface as domain.ErrContended.
type UnitRepository interface {
	// InTx runs fn inside one serializable transaction.
	InTx(ctx context.Context, fn func(StockTx) error) error

	CreateBatch(ctx context.Context, units []domain.BarcodeUnit) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.BarcodeUnit, error)
	FindByCode(ctx context.Context, code string) (*domain.BarcodeUnit, error)
	List(ctx context.Context, params UnitListParams) ([]*domain.BarcodeUnit, int64, error)

	// Quantities derives all per-product counts from one snapshot.
	Quantities(ctx context.Context, productID uuid.UUID) (*domain.ProductQuantities, error)

	// IdleCarts returns carts whose most recent reservation is older than
	// cutoff. Consumed by the idle-cart sweeper.
	IdleCarts(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
}

// StockTx exposes the row-level operations available inside a unit-store
// transaction. Services compose these into the engine's semantics; the
// adapter only moves rows.
type StockTx interface {
	// LockUnits locks exactly the given unit rows (NOWAIT) and returns
	// them, disposed units included so callers can reject them explicitly.
	LockUnits(ctx context.Context, ids []uuid.UUID) ([]domain.BarcodeUnit, error)

	// LockOldestByTag locks up to limit non-disposed units of the product
	// carrying tag, oldest created_at first.
	LockOldestByTag(ctx context.Context, productID uuid.UUID, tag domain.Tag, limit int) ([]domain.BarcodeUnit, error)

	// LockDefective locks every non-disposed defective unit of the products.
	LockDefective(ctx context.Context, productIDs []uuid.UUID) ([]domain.BarcodeUnit, error)

	// LockInvoiceLineUnits locks up to limit units sold on the given
	// invoice for the given product, oldest first.
	LockInvoiceLineUnits(ctx context.Context, invoiceID, productID uuid.UUID, limit int) ([]domain.BarcodeUnit, error)

	UpdateTags(ctx context.Context, ids []uuid.UUID, tag domain.Tag, now time.Time) (int64, error)
	SetInvoice(ctx context.Context, ids []uuid.UUID, invoiceID uuid.UUID, now time.Time) error
	ClearInvoice(ctx context.Context, ids []uuid.UUID, now time.Time) error
	MarkDisposed(ctx context.Context, ids []uuid.UUID, at time.Time) error

	InsertReservations(ctx context.Context, reservations []domain.CartReservation) error
	LockReservations(ctx context.Context, cartID uuid.UUID) ([]domain.CartReservation, error)
	DeleteReservations(ctx context.Context, cartID uuid.UUID) (int64, error)
	DeleteUnitReservations(ctx context.Context, unitIDs []uuid.UUID) (int64, error)

	InsertMoveOutBatch(ctx context.Context, batch *domain.MoveOutBatch) error
	InsertReplacement(ctx context.Context, record *domain.ReplacementRecord) error

	// InvoiceLines returns the sold/replaced counts per product line of the
	// invoice, derived from the unit population and replacement records.
	InvoiceLines(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceLine, error)
}

// UnitListParams holds filters for listing barcode units.
type UnitListParams struct {
	ProductID       *uuid.UUID
	PurchaseID      *uuid.UUID
	InvoiceID       *uuid.UUID
	Tag             string
	Code            string
	IncludeDisposed bool
	SortBy          string
	SortOrder       string
	Page            int
	PageSize        int
}
