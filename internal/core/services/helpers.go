// internal/core/services/helpers.go
package services

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/ports"
)

const (
	quantitiesKeyPrefix  = "stockline:quantities:"
	cartActivityKeyFmt   = "stockline:cart:activity:%s"
	quantitiesCacheTTL   = 30 * time.Second
	defaultCartIdleAfter = 30 * time.Minute
)

func quantitiesKey(productID uuid.UUID) string {
	return quantitiesKeyPrefix + productID.String()
}

func cartActivityKey(cartID uuid.UUID) string {
	return fmt.Sprintf(cartActivityKeyFmt, cartID)
}

// emitAudit delivers events after the owning transaction has committed.
// Failures are logged and swallowed; the sink never affects the outcome of
// the operation that produced the events.
func emitAudit(ctx context.Context, logger *slog.Logger, sink ports.AuditSink, events []domain.AuditEvent) {
	if sink == nil || len(events) == 0 {
		return
	}
	if err := sink.Emit(ctx, events); err != nil {
		logger.WarnContext(ctx, "audit emit failed",
			slog.Int("events", len(events)),
			slog.String("error", err.Error()))
	}
}

// invalidateQuantities drops the cached aggregate view for the products a
// mutation touched. Best-effort; the next read recomputes from the store.
func invalidateQuantities(ctx context.Context, logger *slog.Logger, cache ports.CacheRepository, productIDs ...uuid.UUID) {
	if cache == nil {
		return
	}
	seen := make(map[uuid.UUID]struct{}, len(productIDs))
	for _, id := range productIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if err := cache.Delete(ctx, quantitiesKey(id)); err != nil {
			logger.WarnContext(ctx, "quantities cache invalidation failed",
				slog.String("product_id", id.String()),
				slog.String("error", err.Error()))
		}
	}
}

// generateBarcode produces a 13-digit in-store code (leading 2 per the
// EAN-13 restricted-circulation range). The units table enforces uniqueness.
func generateBarcode() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand does not fail on supported platforms; fall back to
		// a time-derived value rather than panicking mid-request.
		binary.BigEndian.PutUint64(buf[:], uint64(time.Now().UnixNano()))
	}
	n := binary.BigEndian.Uint64(buf[:]) % 1_000_000_000_000
	return fmt.Sprintf("2%012d", n)
}
