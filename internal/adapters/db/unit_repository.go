// internal/adapters/db/unit_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/ports"
)

const unitColumns = `
	id, product_id, code, tag, purchase_id, purchase_unit_price,
	invoice_id, disposed_at, created_at, updated_at`

// unitRepository implements ports.UnitRepository
type unitRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewUnitRepository creates a new barcode unit repository
func NewUnitRepository(db *Database, logger *slog.Logger) ports.UnitRepository {
	return &unitRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "units")),
	}
}

// InTx runs fn inside one serializable transaction. Lock conflicts on unit
// rows surface as domain.ErrContended.
func (r *unitRepository) InTx(ctx context.Context, fn func(ports.StockTx) error) error {
	err := r.db.SerializableTransaction(ctx, func(tx pgx.Tx) error {
		return fn(&stockTx{tx: tx})
	})
	return MapLockError(err)
}

// CreateBatch inserts units materialized by purchase finalization.
func (r *unitRepository) CreateBatch(ctx context.Context, units []domain.BarcodeUnit) error {
	if len(units) == 0 {
		return nil
	}

	query := `
		INSERT INTO barcode_units (
			id, product_id, code, tag, purchase_id, purchase_unit_price,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for i := range units {
			u := &units[i]
			batch.Queue(query,
				u.ID, u.ProductID, u.Code, u.Tag, u.PurchaseID,
				u.PurchaseUnitPrice, u.CreatedAt, u.UpdatedAt,
			)
		}

		br := tx.SendBatch(ctx, batch)
		defer br.Close()

		for i := range units {
			if _, err := br.Exec(); err != nil {
				if IsUniqueViolation(err) {
					return fmt.Errorf("barcode %s already exists: %w", units[i].Code, err)
				}
				return fmt.Errorf("failed to insert unit %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "barcode units created",
		slog.Int("count", len(units)))

	return nil
}

// FindByID retrieves a unit by ID
func (r *unitRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.BarcodeUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM barcode_units WHERE id = $1`

	unit, err := scanUnit(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("unit %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find unit: %w", err)
	}
	return unit, nil
}

// FindByCode retrieves a unit by its scannable barcode
func (r *unitRepository) FindByCode(ctx context.Context, code string) (*domain.BarcodeUnit, error) {
	query := `SELECT ` + unitColumns + ` FROM barcode_units WHERE code = $1`

	unit, err := scanUnit(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("code %q: %w", code, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find unit by code: %w", err)
	}
	return unit, nil
}

// List retrieves units with filtering and pagination
func (r *unitRepository) List(ctx context.Context, params ports.UnitListParams) ([]*domain.BarcodeUnit, int64, error) {
	qb := squirrel.Select(
		"id", "product_id", "code", "tag", "purchase_id", "purchase_unit_price",
		"invoice_id", "disposed_at", "created_at", "updated_at",
	).From("barcode_units").
		PlaceholderFormat(squirrel.Dollar)

	if !params.IncludeDisposed {
		qb = qb.Where("disposed_at IS NULL")
	}
	if params.ProductID != nil {
		qb = qb.Where(squirrel.Eq{"product_id": *params.ProductID})
	}
	if params.PurchaseID != nil {
		qb = qb.Where(squirrel.Eq{"purchase_id": *params.PurchaseID})
	}
	if params.InvoiceID != nil {
		qb = qb.Where(squirrel.Eq{"invoice_id": *params.InvoiceID})
	}
	if params.Tag != "" {
		qb = qb.Where(squirrel.Eq{"tag": params.Tag})
	}
	if params.Code != "" {
		qb = qb.Where(squirrel.Eq{"code": params.Code})
	}

	countQb := qb.Column("COUNT(*) OVER()").Limit(1)
	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	row := r.db.QueryRow(ctx, countSQL, countArgs...)
	if _, err := scanUnitWithCount(row, &totalCount); err != nil && err != pgx.ErrNoRows {
		return nil, 0, fmt.Errorf("failed to count units: %w", err)
	}

	orderBy := "created_at ASC"
	if params.SortBy != "" {
		direction := "ASC"
		if params.SortOrder == "desc" {
			direction = "DESC"
		}
		switch params.SortBy {
		case "code":
			orderBy = fmt.Sprintf("code %s", direction)
		case "updated":
			orderBy = fmt.Sprintf("updated_at %s", direction)
		default:
			orderBy = fmt.Sprintf("created_at %s", direction)
		}
	}
	qb = qb.OrderBy(orderBy)

	if params.PageSize > 0 {
		qb = qb.Limit(uint64(params.PageSize))
		if params.Page > 1 {
			qb = qb.Offset(uint64((params.Page - 1) * params.PageSize))
		}
	}

	listSQL, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	var units []*domain.BarcodeUnit
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return units, totalCount, nil
}

// Quantities derives every per-product count in one statement so the
// result always reflects a single snapshot of the unit population.
func (r *unitRepository) Quantities(ctx context.Context, productID uuid.UUID) (*domain.ProductQuantities, error) {
	// Reserving retags a unit to in-cart, so reserved units are already
	// outside the stock count; available is the stock units that carry no
	// open reservation. cart_reservations.unit_id is unique, so the left
	// join never fans out.
	query := `
		SELECT
			COUNT(*) FILTER (WHERE u.tag IN ('new', 'returned') AND u.disposed_at IS NULL),
			COUNT(*) FILTER (WHERE u.tag IN ('new', 'returned') AND u.disposed_at IS NULL AND cr.unit_id IS NULL),
			COUNT(*) FILTER (WHERE u.tag = 'sold' AND u.disposed_at IS NULL),
			COUNT(*) FILTER (WHERE u.tag = 'defective' AND u.disposed_at IS NULL),
			COUNT(cr.unit_id)
		FROM barcode_units u
		LEFT JOIN cart_reservations cr ON cr.unit_id = u.id
		WHERE u.product_id = $1`

	q := &domain.ProductQuantities{ProductID: productID}
	err := r.db.QueryRow(ctx, query, productID).Scan(
		&q.Stock, &q.Available, &q.Sold, &q.Defective, &q.Reserved,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate quantities: %w", err)
	}

	q.Clamp()
	return q, nil
}

// IdleCarts returns carts whose newest reservation predates cutoff.
func (r *unitRepository) IdleCarts(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	query := `
		SELECT cart_id FROM cart_reservations
		GROUP BY cart_id
		HAVING MAX(reserved_at) < $1`

	rows, err := r.db.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query idle carts: %w", err)
	}
	defer rows.Close()

	var carts []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan cart id: %w", err)
		}
		carts = append(carts, id)
	}
	return carts, rows.Err()
}

// scanner abstracts pgx.Row / pgx.Rows for unit scanning
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanUnit(row scanner) (*domain.BarcodeUnit, error) {
	u := &domain.BarcodeUnit{}
	err := row.Scan(
		&u.ID, &u.ProductID, &u.Code, &u.Tag, &u.PurchaseID,
		&u.PurchaseUnitPrice, &u.InvoiceID, &u.DisposedAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func scanUnitWithCount(row scanner, count *int64) (*domain.BarcodeUnit, error) {
	u := &domain.BarcodeUnit{}
	err := row.Scan(
		&u.ID, &u.ProductID, &u.Code, &u.Tag, &u.PurchaseID,
		&u.PurchaseUnitPrice, &u.InvoiceID, &u.DisposedAt,
		&u.CreatedAt, &u.UpdatedAt, count,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}
