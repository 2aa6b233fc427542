// internal/workers/sweeper_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	redis_a "github.com/stockline/stockline-be/internal/adapters/redis_adapter"
	"github.com/stockline/stockline-be/internal/core/ports"
	"github.com/stockline/stockline-be/internal/pkg/config"
)

// SweeperProcessor releases carts that have been idle past the configured
// window. The reservation rows are the source of truth for idleness; the
// Redis activity marker is only a cheap veto that spares a cart whose
// marker is still live (a reservation landed after the snapshot).
type SweeperProcessor struct {
	repo         ports.UnitRepository
	reservations ports.ReservationService
	cache        ports.CacheRepository
	config       *config.Config
	logger       *slog.Logger
}

// NewSweeperProcessor creates a new cart sweeper
func NewSweeperProcessor(repo ports.UnitRepository, reservations ports.ReservationService, cache ports.CacheRepository, cfg *config.Config, logger *slog.Logger) *SweeperProcessor {
	return &SweeperProcessor{
		repo:         repo,
		reservations: reservations,
		cache:        cache,
		config:       cfg,
		logger:       logger.With(slog.String("processor", "sweeper")),
	}
}

// SweepIdleCarts releases every cart whose oldest reservation predates the
// idle window. Each cart is released independently; one contended cart does
// not abort the sweep.
func (p *SweeperProcessor) SweepIdleCarts(ctx context.Context, t *asynq.Task) error {
	cutoff := time.Now().UTC().Add(-p.config.Engine.CartIdleAfter)

	cartIDs, err := p.repo.IdleCarts(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to find idle carts: %w", err)
	}
	if len(cartIDs) == 0 {
		return nil
	}

	p.logger.InfoContext(ctx, "sweeping idle carts",
		slog.Int("candidates", len(cartIDs)),
		slog.Time("cutoff", cutoff))

	var swept, skipped, failed int
	for _, cartID := range cartIDs {
		if p.cartStillActive(ctx, cartID) {
			skipped++
			continue
		}

		released, err := p.reservations.Release(ctx, cartID, "sweeper")
		if err != nil {
			failed++
			p.logger.WarnContext(ctx, "failed to release idle cart",
				slog.String("cart_id", cartID.String()),
				slog.String("error", err.Error()))
			continue
		}
		if released > 0 {
			swept++
		}
	}

	p.logger.InfoContext(ctx, "cart sweep completed",
		slog.Int("swept", swept),
		slog.Int("skipped", skipped),
		slog.Int("failed", failed))

	return nil
}

func (p *SweeperProcessor) cartStillActive(ctx context.Context, cartID uuid.UUID) bool {
	if p.cache == nil {
		return false
	}
	key := redis_a.BuildKey(redis_a.PrefixCart, "activity", cartID.String())
	active, err := p.cache.Exists(ctx, key)
	if err != nil {
		// On a cache error fall through to the database verdict.
		return false
	}
	return active
}
