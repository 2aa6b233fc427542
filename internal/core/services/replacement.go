// internal/core/services/replacement.go
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

// ReplacementService handles post-sale exchanges. A replacement is scoped
// to one source invoice: the units it consumes were sold on that invoice,
// and each line's replaceable quantity shrinks as replacements accumulate.
type ReplacementService struct {
	repo   ports.UnitRepository
	audit  ports.AuditSink
	ledger ports.LedgerSink
	cache  ports.CacheRepository
	logger *slog.Logger
}

// Statically assert that *ReplacementService implements the ReplacementService interface.
var _ ports.ReplacementService = (*ReplacementService)(nil)

// NewReplacementService creates a new replacement service
func NewReplacementService(repo ports.UnitRepository, audit ports.AuditSink, ledger ports.LedgerSink, cache ports.CacheRepository, logger *slog.Logger) *ReplacementService {
	return &ReplacementService{
		repo:   repo,
		audit:  audit,
		ledger: ledger,
		cache:  cache,
		logger: logger.With(slog.String("service", "replacement")),
	}
}

// FindInvoiceUnits resolves a scanned barcode to the invoice it was sold on
// and returns that invoice's lines with their remaining replaceable
// quantities. Units never sold (no invoice stamp) resolve to not found.
func (s *ReplacementService) FindInvoiceUnits(ctx context.Context, barcodeOrSKU string) (*ports.InvoiceUnitsResult, error) {
	if barcodeOrSKU == "" {
		return nil, fmt.Errorf("barcode is required")
	}

	unit, err := s.repo.FindByCode(ctx, barcodeOrSKU)
	if err != nil {
		return nil, err
	}
	if unit.InvoiceID == nil {
		return nil, fmt.Errorf("unit %s was never sold on an invoice: %w", unit.Code, domain.ErrNotFound)
	}
	invoiceID := *unit.InvoiceID

	var lines []domain.InvoiceLine
	err = s.repo.InTx(ctx, func(tx ports.StockTx) error {
		var txErr error
		lines, txErr = tx.InvoiceLines(ctx, invoiceID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return &ports.InvoiceUnitsResult{InvoiceID: invoiceID, Lines: lines}, nil
}

// ProcessReplacement consumes sold units of the invoice, oldest first per
// line, and returns them to inspection (tag unknown). Requests beyond a
// line's remaining replaceable quantity fail wholesale with
// ExceedsAvailable; nothing is partially applied.
func (s *ReplacementService) ProcessReplacement(ctx context.Context, invoiceID uuid.UUID, items []domain.ReplacementLine, actor string) (*domain.ReplacementRecord, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one replacement line is required")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("product %s: replacement quantity must be positive, got %d", item.ProductID, item.Quantity)
		}
	}

	var record *domain.ReplacementRecord
	var events []domain.AuditEvent
	var ledgerRecord *domain.LedgerRecord

	err := s.repo.InTx(ctx, func(tx ports.StockTx) error {
		lines, err := tx.InvoiceLines(ctx, invoiceID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return fmt.Errorf("invoice %s: %w", invoiceID, domain.ErrNotFound)
		}
		byProduct := make(map[uuid.UUID]domain.InvoiceLine, len(lines))
		for _, line := range lines {
			byProduct[line.ProductID] = line
		}

		now := time.Now().UTC()
		record = &domain.ReplacementRecord{
			ID:              uuid.New(),
			SourceInvoiceID: invoiceID,
			ReplacedUnits:   make(map[uuid.UUID]int),
			Lines:           items,
			CreatedAt:       now,
		}

		var allIDs []uuid.UUID
		var ledgerLines []domain.LedgerLine
		total := decimal.Zero
		events = make([]domain.AuditEvent, 0)

		for _, item := range items {
			line, ok := byProduct[item.ProductID]
			if !ok {
				return fmt.Errorf("invoice %s has no line for product %s: %w", invoiceID, item.ProductID, domain.ErrNotFound)
			}
			if item.Quantity > line.Available() {
				return &domain.ExceedsAvailableError{
					InvoiceID: invoiceID,
					ProductID: item.ProductID,
					Requested: item.Quantity,
					Available: line.Available(),
				}
			}

			units, err := tx.LockInvoiceLineUnits(ctx, invoiceID, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if len(units) < item.Quantity {
				return &domain.ExceedsAvailableError{
					InvoiceID: invoiceID,
					ProductID: item.ProductID,
					Requested: item.Quantity,
					Available: len(units),
				}
			}

			lineAmount := decimal.Zero
			for i := range units {
				allIDs = append(allIDs, units[i].ID)
				record.ReplacedUnits[units[i].ID] = 1
				lineAmount = lineAmount.Add(units[i].PurchaseUnitPrice)
				events = append(events, domain.AuditEvent{
					UnitID:    units[i].ID,
					Before:    domain.TagSold,
					After:     domain.TagUnknown,
					Actor:     actor,
					Operation: domain.OpReplacement,
					At:        now,
				})
			}
			ledgerLines = append(ledgerLines, domain.LedgerLine{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Amount:    lineAmount,
			})
			total = total.Add(lineAmount)
		}

		if _, err := tx.UpdateTags(ctx, allIDs, domain.TagUnknown, now); err != nil {
			return fmt.Errorf("failed to move replaced units to inspection: %w", err)
		}
		if err := tx.InsertReplacement(ctx, record); err != nil {
			return fmt.Errorf("failed to insert replacement record: %w", err)
		}

		ledgerRecord = &domain.LedgerRecord{
			ID:        uuid.New(),
			Kind:      domain.LedgerKindReplacement,
			SourceID:  record.ID,
			Lines:     ledgerLines,
			Total:     total,
			CreatedAt: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	emitAudit(ctx, s.logger, s.audit, events)
	s.publishLedger(ctx, ledgerRecord)
	productIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	invalidateQuantities(ctx, s.logger, s.cache, productIDs...)

	s.logger.InfoContext(ctx, "processed replacement",
		slog.String("invoice_id", invoiceID.String()),
		slog.String("record_id", record.ID.String()),
		slog.Int("units", len(record.ReplacedUnits)))

	return record, nil
}

func (s *ReplacementService) publishLedger(ctx context.Context, record *domain.LedgerRecord) {
	if s.ledger == nil || record == nil {
		return
	}
	if err := s.ledger.Publish(ctx, record); err != nil {
		s.logger.WarnContext(ctx, "ledger publish failed",
			slog.String("record_id", record.ID.String()),
			slog.String("kind", string(record.Kind)),
			slog.String("error", err.Error()))
	}
}
