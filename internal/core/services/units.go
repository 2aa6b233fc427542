// internal/core/services/units.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/ports"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// UnitService materializes units at purchase finalization and serves the
// read side of the unit store (barcode lookups, label listings).
type UnitService struct {
	repo   ports.UnitRepository
	audit  ports.AuditSink
	cache  ports.CacheRepository
	logger *slog.Logger
}

// Statically assert that *UnitService implements the UnitService interface.
var _ ports.UnitService = (*UnitService)(nil)

// NewUnitService creates a new unit service
func NewUnitService(repo ports.UnitRepository, audit ports.AuditSink, cache ports.CacheRepository, logger *slog.Logger) *UnitService {
	return &UnitService{
		repo:   repo,
		audit:  audit,
		cache:  cache,
		logger: logger.With(slog.String("service", "units")),
	}
}

// CreateUnits materializes one barcode unit per purchased item. Every unit
// starts tagged new with a freshly generated code; the purchase id and unit
// price are stamped on for later provenance and loss accounting.
func (s *UnitService) CreateUnits(ctx context.Context, params ports.CreateUnitsParams) ([]domain.BarcodeUnit, error) {
	if params.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %d", params.Quantity)
	}
	if params.ProductID == uuid.Nil {
		return nil, fmt.Errorf("product_id is required")
	}
	if params.PurchaseID == uuid.Nil {
		return nil, fmt.Errorf("purchase_id is required")
	}
	if params.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("unit_price cannot be negative")
	}

	now := time.Now().UTC()
	purchaseID := params.PurchaseID
	units := make([]domain.BarcodeUnit, 0, params.Quantity)
	events := make([]domain.AuditEvent, 0, params.Quantity)
	for i := 0; i < params.Quantity; i++ {
		unit := domain.BarcodeUnit{
			ID:                uuid.New(),
			ProductID:         params.ProductID,
			Code:              generateBarcode(),
			Tag:               domain.TagNew,
			PurchaseID:        &purchaseID,
			PurchaseUnitPrice: params.UnitPrice,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		units = append(units, unit)
		events = append(events, domain.AuditEvent{
			UnitID:    unit.ID,
			Before:    unit.Tag,
			After:     unit.Tag,
			Actor:     params.Actor,
			Operation: domain.OpCreateUnits,
			At:        now,
		})
	}

	if err := s.repo.CreateBatch(ctx, units); err != nil {
		return nil, fmt.Errorf("failed to create units: %w", err)
	}

	emitAudit(ctx, s.logger, s.audit, events)
	invalidateQuantities(ctx, s.logger, s.cache, params.ProductID)

	s.logger.InfoContext(ctx, "created units",
		slog.String("product_id", params.ProductID.String()),
		slog.String("purchase_id", params.PurchaseID.String()),
		slog.Int("quantity", params.Quantity))

	return units, nil
}

// GetByCode looks a unit up by its barcode.
func (s *UnitService) GetByCode(ctx context.Context, code string) (*domain.BarcodeUnit, error) {
	if code == "" {
		return nil, fmt.Errorf("barcode is required")
	}
	return s.repo.FindByCode(ctx, code)
}

// List returns a filtered, paginated unit listing.
func (s *UnitService) List(ctx context.Context, params ports.UnitListParams) (*ports.UnitListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = defaultPageSize
	}
	if params.PageSize > maxPageSize {
		params.PageSize = maxPageSize
	}
	if params.Tag != "" && !domain.ValidTag(params.Tag) {
		return nil, fmt.Errorf("unknown tag filter %q", params.Tag)
	}

	units, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}

	totalPages := int(total) / params.PageSize
	if int(total)%params.PageSize > 0 {
		totalPages++
	}

	return &ports.UnitListResult{
		Units:      units,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}
