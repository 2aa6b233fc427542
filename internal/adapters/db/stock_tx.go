// internal/adapters/db/stock_tx.go
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/ports"
)

// stockTx implements ports.StockTx on top of one pgx transaction. Every
// lock statement uses FOR UPDATE NOWAIT on exactly the rows involved so a
// losing caller fails fast with a lock error instead of queueing behind
// the winner.
type stockTx struct {
	tx pgx.Tx
}

var _ ports.StockTx = (*stockTx)(nil)

func (t *stockTx) LockUnits(ctx context.Context, ids []uuid.UUID) ([]domain.BarcodeUnit, error) {
	query := `
		SELECT ` + unitColumns + `
		FROM barcode_units
		WHERE id = ANY($1)
		ORDER BY created_at ASC
		FOR UPDATE NOWAIT`

	return t.queryUnits(ctx, query, ids)
}

func (t *stockTx) LockOldestByTag(ctx context.Context, productID uuid.UUID, tag domain.Tag, limit int) ([]domain.BarcodeUnit, error) {
	query := `
		SELECT ` + unitColumns + `
		FROM barcode_units
		WHERE product_id = $1 AND tag = $2 AND disposed_at IS NULL
		ORDER BY created_at ASC
		LIMIT $3
		FOR UPDATE NOWAIT`

	return t.queryUnits(ctx, query, productID, tag, limit)
}

func (t *stockTx) LockDefective(ctx context.Context, productIDs []uuid.UUID) ([]domain.BarcodeUnit, error) {
	query := `
		SELECT ` + unitColumns + `
		FROM barcode_units
		WHERE product_id = ANY($1) AND tag = 'defective' AND disposed_at IS NULL
		ORDER BY created_at ASC
		FOR UPDATE NOWAIT`

	return t.queryUnits(ctx, query, productIDs)
}

func (t *stockTx) LockInvoiceLineUnits(ctx context.Context, invoiceID, productID uuid.UUID, limit int) ([]domain.BarcodeUnit, error) {
	query := `
		SELECT ` + unitColumns + `
		FROM barcode_units
		WHERE invoice_id = $1 AND product_id = $2 AND tag = 'sold' AND disposed_at IS NULL
		ORDER BY created_at ASC
		LIMIT $3
		FOR UPDATE NOWAIT`

	return t.queryUnits(ctx, query, invoiceID, productID, limit)
}

func (t *stockTx) UpdateTags(ctx context.Context, ids []uuid.UUID, tag domain.Tag, now time.Time) (int64, error) {
	query := `
		UPDATE barcode_units
		SET tag = $2, updated_at = $3
		WHERE id = ANY($1) AND disposed_at IS NULL`

	cmd, err := t.tx.Exec(ctx, query, ids, tag, now)
	if err != nil {
		return 0, fmt.Errorf("failed to update tags: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (t *stockTx) SetInvoice(ctx context.Context, ids []uuid.UUID, invoiceID uuid.UUID, now time.Time) error {
	query := `
		UPDATE barcode_units
		SET invoice_id = $2, updated_at = $3
		WHERE id = ANY($1)`

	if _, err := t.tx.Exec(ctx, query, ids, invoiceID, now); err != nil {
		return fmt.Errorf("failed to stamp invoice: %w", err)
	}
	return nil
}

func (t *stockTx) ClearInvoice(ctx context.Context, ids []uuid.UUID, now time.Time) error {
	query := `
		UPDATE barcode_units
		SET invoice_id = NULL, updated_at = $2
		WHERE id = ANY($1)`

	if _, err := t.tx.Exec(ctx, query, ids, now); err != nil {
		return fmt.Errorf("failed to clear invoice: %w", err)
	}
	return nil
}

func (t *stockTx) MarkDisposed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	query := `
		UPDATE barcode_units
		SET disposed_at = $2, updated_at = $2
		WHERE id = ANY($1) AND disposed_at IS NULL`

	cmd, err := t.tx.Exec(ctx, query, ids, at)
	if err != nil {
		return fmt.Errorf("failed to mark disposed: %w", err)
	}
	if cmd.RowsAffected() != int64(len(ids)) {
		return fmt.Errorf("disposed %d of %d units", cmd.RowsAffected(), len(ids))
	}
	return nil
}

func (t *stockTx) InsertReservations(ctx context.Context, reservations []domain.CartReservation) error {
	if len(reservations) == 0 {
		return nil
	}

	query := `
		INSERT INTO cart_reservations (cart_id, unit_id, product_id, reserved_at)
		VALUES ($1, $2, $3, $4)`

	batch := &pgx.Batch{}
	for _, res := range reservations {
		batch.Queue(query, res.CartID, res.UnitID, res.ProductID, res.ReservedAt)
	}

	br := t.tx.SendBatch(ctx, batch)
	defer br.Close()

	for range reservations {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert reservation: %w", err)
		}
	}
	return nil
}

func (t *stockTx) LockReservations(ctx context.Context, cartID uuid.UUID) ([]domain.CartReservation, error) {
	query := `
		SELECT cart_id, unit_id, product_id, reserved_at
		FROM cart_reservations
		WHERE cart_id = $1
		ORDER BY reserved_at ASC
		FOR UPDATE NOWAIT`

	rows, err := t.tx.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock reservations: %w", err)
	}
	defer rows.Close()

	var reservations []domain.CartReservation
	for rows.Next() {
		var res domain.CartReservation
		if err := rows.Scan(&res.CartID, &res.UnitID, &res.ProductID, &res.ReservedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (t *stockTx) DeleteReservations(ctx context.Context, cartID uuid.UUID) (int64, error) {
	cmd, err := t.tx.Exec(ctx, `DELETE FROM cart_reservations WHERE cart_id = $1`, cartID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reservations: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (t *stockTx) DeleteUnitReservations(ctx context.Context, unitIDs []uuid.UUID) (int64, error) {
	cmd, err := t.tx.Exec(ctx, `DELETE FROM cart_reservations WHERE unit_id = ANY($1)`, unitIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete unit reservations: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (t *stockTx) InsertMoveOutBatch(ctx context.Context, batch *domain.MoveOutBatch) error {
	query := `
		INSERT INTO move_out_batches (
			id, store_id, reason, notes, unit_ids, invoice_id,
			total_loss, total_adjustment, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := t.tx.Exec(ctx, query,
		batch.ID, batch.StoreID, batch.Reason, batch.Notes, batch.UnitIDs,
		batch.InvoiceID, batch.TotalLoss, batch.TotalAdjustment, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert move-out batch: %w", err)
	}
	return nil
}

func (t *stockTx) InsertReplacement(ctx context.Context, record *domain.ReplacementRecord) error {
	query := `
		INSERT INTO replacement_records (id, source_invoice_id, created_at)
		VALUES ($1, $2, $3)`

	if _, err := t.tx.Exec(ctx, query, record.ID, record.SourceInvoiceID, record.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert replacement record: %w", err)
	}

	unitIDs := make([]uuid.UUID, 0, len(record.ReplacedUnits))
	for unitID := range record.ReplacedUnits {
		unitIDs = append(unitIDs, unitID)
	}

	// One row per replaced unit keeps provenance queryable per line.
	itemQuery := `
		INSERT INTO replacement_items (record_id, unit_id, product_id, quantity)
		SELECT $1, id, product_id, 1
		FROM barcode_units
		WHERE id = ANY($2)`

	cmd, err := t.tx.Exec(ctx, itemQuery, record.ID, unitIDs)
	if err != nil {
		return fmt.Errorf("failed to insert replacement items: %w", err)
	}
	if cmd.RowsAffected() != int64(len(unitIDs)) {
		return fmt.Errorf("inserted %d of %d replacement items", cmd.RowsAffected(), len(unitIDs))
	}
	return nil
}

// InvoiceLines derives per-line sold and replaced counts for the invoice.
// Units consumed by an earlier replacement keep their invoice stamp and a
// replacement_items row, so sold-on-line stays the historical figure while
// replaced-on-line grows with each exchange.
func (t *stockTx) InvoiceLines(ctx context.Context, invoiceID uuid.UUID) ([]domain.InvoiceLine, error) {
	query := `
		SELECT
			u.product_id,
			COUNT(*) FILTER (WHERE u.tag = 'sold') + COUNT(ri.unit_id),
			COUNT(ri.unit_id)
		FROM barcode_units u
		LEFT JOIN replacement_items ri ON ri.unit_id = u.id
		WHERE u.invoice_id = $1 AND u.disposed_at IS NULL
		GROUP BY u.product_id
		ORDER BY u.product_id`

	rows, err := t.tx.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.InvoiceLine
	for rows.Next() {
		line := domain.InvoiceLine{InvoiceID: invoiceID}
		if err := rows.Scan(&line.ProductID, &line.Sold, &line.Replaced); err != nil {
			return nil, fmt.Errorf("failed to scan invoice line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (t *stockTx) queryUnits(ctx context.Context, query string, args ...interface{}) ([]domain.BarcodeUnit, error) {
	rows, err := t.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to lock units: %w", err)
	}
	defer rows.Close()

	var units []domain.BarcodeUnit
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, *unit)
	}
	return units, rows.Err()
}
