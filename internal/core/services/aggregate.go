// internal/core/services/aggregate.go
package services

import (
	"context"
	"log/slog"

	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/ports"
)

// AggregateService derives presented per-product quantities on demand.
// Read-only: nothing here ever writes a count back to the product.
type AggregateService struct {
	repo   ports.UnitRepository
	cache  ports.CacheRepository
	logger *slog.Logger
}

// Statically assert that *AggregateService implements the AggregateService interface.
var _ ports.AggregateService = (*AggregateService)(nil)

// NewAggregateService creates a new aggregate service
func NewAggregateService(repo ports.UnitRepository, cache ports.CacheRepository, logger *slog.Logger) *AggregateService {
	return &AggregateService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("service", "aggregate")),
	}
}

// Quantities returns the aggregate view for the product plus its stock
// level. Counts are derived from the unit population the same way for
// every product, tracked or not. The cached projection is a short-TTL
// read-through; every mutation path invalidates it.
func (s *AggregateService) Quantities(ctx context.Context, product domain.ProductRef) (*ports.QuantitiesResult, error) {
	key := quantitiesKey(product.ID)
	if s.cache != nil {
		var cached domain.ProductQuantities
		if err := s.cache.Get(ctx, key, &cached); err == nil && cached.ProductID == product.ID {
			return &ports.QuantitiesResult{
				ProductQuantities: cached,
				Level:             domain.ClassifyStock(cached.Stock, product.LowStockThreshold),
			}, nil
		}
	}

	q, err := s.repo.Quantities(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, key, q, quantitiesCacheTTL); err != nil {
			s.logger.WarnContext(ctx, "quantities cache write failed",
				slog.String("product_id", product.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	return &ports.QuantitiesResult{
		ProductQuantities: *q,
		Level:             domain.ClassifyStock(q.Stock, product.LowStockThreshold),
	}, nil
}
