// internal/core/services/moveout.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/ports"
)

// MoveOutService writes off defective stock. Disposal is a disposed_at
// stamp, not a tag change: the unit keeps its defective tag for audit and
// drops out of every aggregate and transition path.
type MoveOutService struct {
	repo   ports.UnitRepository
	audit  ports.AuditSink
	ledger ports.LedgerSink
	cache  ports.CacheRepository
	logger *slog.Logger
}

// Statically assert that *MoveOutService implements the MoveOutService interface.
var _ ports.MoveOutService = (*MoveOutService)(nil)

// NewMoveOutService creates a new move-out service
func NewMoveOutService(repo ports.UnitRepository, audit ports.AuditSink, ledger ports.LedgerSink, cache ports.CacheRepository, logger *slog.Logger) *MoveOutService {
	return &MoveOutService{
		repo:   repo,
		audit:  audit,
		ledger: ledger,
		cache:  cache,
		logger: logger.With(slog.String("service", "moveout")),
	}
}

// MoveOut disposes every defective unit of the selected products in one
// batch. The set of units is decided inside the transaction from locked
// rows, so a unit retagged concurrently is never swept up. Products with
// no defective units at that point fail with NothingToMoveOut.
func (s *MoveOutService) MoveOut(ctx context.Context, params ports.MoveOutParams) (*domain.MoveOutBatch, error) {
	if len(params.ProductIDs) == 0 {
		return nil, fmt.Errorf("at least one product id is required")
	}
	if params.StoreID == uuid.Nil {
		return nil, fmt.Errorf("store_id is required")
	}
	if params.Reason == "" {
		return nil, fmt.Errorf("reason is required")
	}

	var batch *domain.MoveOutBatch
	var events []domain.AuditEvent
	var ledgerRecord *domain.LedgerRecord

	err := s.repo.InTx(ctx, func(tx ports.StockTx) error {
		units, err := tx.LockDefective(ctx, params.ProductIDs)
		if err != nil {
			return err
		}
		if len(units) == 0 {
			return domain.ErrNothingToMoveOut
		}

		now := time.Now().UTC()
		ids := make([]uuid.UUID, 0, len(units))
		totalLoss := decimal.Zero
		perProduct := make(map[uuid.UUID]*domain.LedgerLine)
		events = make([]domain.AuditEvent, 0, len(units))

		for i := range units {
			ids = append(ids, units[i].ID)
			totalLoss = totalLoss.Add(units[i].PurchaseUnitPrice)
			line, ok := perProduct[units[i].ProductID]
			if !ok {
				line = &domain.LedgerLine{ProductID: units[i].ProductID}
				perProduct[units[i].ProductID] = line
			}
			line.Quantity++
			line.Amount = line.Amount.Add(units[i].PurchaseUnitPrice)
			events = append(events, domain.AuditEvent{
				UnitID:    units[i].ID,
				Before:    domain.TagDefective,
				After:     domain.TagDefective,
				Actor:     params.Actor,
				Operation: domain.OpMoveOut,
				At:        now,
			})
		}

		// The batch's invoice id is the id of the write-off ledger record
		// published for it, so the two sides reference each other.
		ledgerID := uuid.New()
		batch = &domain.MoveOutBatch{
			ID:              uuid.New(),
			StoreID:         params.StoreID,
			Reason:          params.Reason,
			Notes:           params.Notes,
			UnitIDs:         ids,
			InvoiceID:       ledgerID,
			TotalLoss:       totalLoss,
			TotalAdjustment: totalLoss.Neg(),
			CreatedAt:       now,
		}
		if err := batch.Validate(); err != nil {
			return fmt.Errorf("invalid move-out batch: %w", err)
		}

		if err := tx.ClearInvoice(ctx, ids, now); err != nil {
			return fmt.Errorf("failed to clear invoice references: %w", err)
		}
		if err := tx.MarkDisposed(ctx, ids, now); err != nil {
			return fmt.Errorf("failed to mark units disposed: %w", err)
		}
		if err := tx.InsertMoveOutBatch(ctx, batch); err != nil {
			return fmt.Errorf("failed to insert move-out batch: %w", err)
		}

		ledgerLines := make([]domain.LedgerLine, 0, len(perProduct))
		for _, line := range perProduct {
			ledgerLines = append(ledgerLines, *line)
		}
		ledgerRecord = &domain.LedgerRecord{
			ID:        ledgerID,
			Kind:      domain.LedgerKindMoveOut,
			SourceID:  batch.ID,
			Lines:     ledgerLines,
			Total:     totalLoss,
			CreatedAt: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	emitAudit(ctx, s.logger, s.audit, events)
	if s.ledger != nil {
		if err := s.ledger.Publish(ctx, ledgerRecord); err != nil {
			s.logger.WarnContext(ctx, "ledger publish failed",
				slog.String("batch_id", batch.ID.String()),
				slog.String("error", err.Error()))
		}
	}
	invalidateQuantities(ctx, s.logger, s.cache, params.ProductIDs...)

	s.logger.InfoContext(ctx, "moved out defective units",
		slog.String("batch_id", batch.ID.String()),
		slog.String("store_id", params.StoreID.String()),
		slog.Int("units", len(batch.UnitIDs)),
		slog.String("total_loss", batch.TotalLoss.String()))

	return batch, nil
}
