// internal/core/services/transition.go
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

// TransitionService is the single write path for unit tags. Every tag
// change, from any caller, goes through Retag so the transition graph and
// the confirmation rule are enforced in exactly one place.
type TransitionService struct {
	repo   ports.UnitRepository
	audit  ports.AuditSink
	cache  ports.CacheRepository
	logger *slog.Logger
}

// Statically assert that *TransitionService implements the TransitionService interface.
var _ ports.TransitionService = (*TransitionService)(nil)

// NewTransitionService creates a new transition service
func NewTransitionService(repo ports.UnitRepository, audit ports.AuditSink, cache ports.CacheRepository, logger *slog.Logger) *TransitionService {
	return &TransitionService{
		repo:   repo,
		audit:  audit,
		cache:  cache,
		logger: logger.With(slog.String("service", "transition")),
	}
}

// Retag applies one batch tag change. The batch is all-or-nothing: every
// unit must currently carry the same tag, that tag must be a valid source
// for the target, and inventory-increasing targets need Confirm. Retag
// never moves units into or out of sold; those edges belong to cart
// commit and replacement. Units already carrying the target tag are
// counted as updated so retries are idempotent.
func (s *TransitionService) Retag(ctx context.Context, params ports.RetagParams) (*ports.RetagResult, error) {
	if len(params.UnitIDs) == 0 {
		return nil, fmt.Errorf("at least one unit id is required")
	}
	if !domain.ValidTag(string(params.Target)) {
		return nil, fmt.Errorf("unknown target tag %q", params.Target)
	}

	var events []domain.AuditEvent
	var productIDs []uuid.UUID

	err := s.repo.InTx(ctx, func(tx ports.StockTx) error {
		units, err := tx.LockUnits(ctx, params.UnitIDs)
		if err != nil {
			return err
		}
		if len(units) != len(params.UnitIDs) {
			return fmt.Errorf("%d of %d units: %w", len(params.UnitIDs)-len(units), len(params.UnitIDs), domain.ErrNotFound)
		}

		source := units[0].Tag
		var offending []uuid.UUID
		for i := range units {
			if units[i].Tag != source {
				offending = append(offending, units[i].ID)
			}
		}
		if len(offending) > 0 {
			return &domain.MixedSourceTagError{Target: params.Target, OffendingIDs: offending}
		}
		for i := range units {
			if units[i].Disposed() {
				return &domain.InvalidTransitionError{UnitID: units[i].ID, From: units[i].Tag, To: params.Target}
			}
		}
		// Sold is entered only by cart commit and left only by
		// replacement; Retag never crosses it in either direction.
		if source == domain.TagSold || params.Target == domain.TagSold {
			return &domain.InvalidTransitionError{UnitID: units[0].ID, From: source, To: params.Target}
		}
		if source != params.Target && !domain.CanTransition(source, params.Target) {
			return &domain.InvalidTransitionError{UnitID: units[0].ID, From: source, To: params.Target}
		}
		if domain.RequiresConfirmation(source, params.Target) && !params.Confirm {
			return &domain.ConfirmationRequiredError{From: source, To: params.Target}
		}

		now := time.Now().UTC()
		if source != params.Target {
			if _, err := tx.UpdateTags(ctx, params.UnitIDs, params.Target, now); err != nil {
				return fmt.Errorf("failed to update tags: %w", err)
			}
			// A unit leaving in-cart surrenders its reservation row in
			// the same transaction; every in-cart unit has exactly one.
			if source == domain.TagInCart {
				deleted, err := tx.DeleteUnitReservations(ctx, params.UnitIDs)
				if err != nil {
					return fmt.Errorf("failed to release reservations: %w", err)
				}
				if deleted != int64(len(params.UnitIDs)) {
					return fmt.Errorf("released %d of %d reservations", deleted, len(params.UnitIDs))
				}
			}
		}

		events = make([]domain.AuditEvent, 0, len(units))
		productIDs = make([]uuid.UUID, 0, len(units))
		for i := range units {
			events = append(events, domain.AuditEvent{
				UnitID:    units[i].ID,
				Before:    source,
				After:     params.Target,
				Actor:     params.Actor,
				Operation: domain.OpRetag,
				At:        now,
			})
			productIDs = append(productIDs, units[i].ProductID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	emitAudit(ctx, s.logger, s.audit, events)
	invalidateQuantities(ctx, s.logger, s.cache, productIDs...)

	s.logger.InfoContext(ctx, "retagged units",
		slog.Int("count", len(params.UnitIDs)),
		slog.String("target", string(params.Target)),
		slog.String("actor", params.Actor))

	return &ports.RetagResult{Updated: len(params.UnitIDs)}, nil
}
