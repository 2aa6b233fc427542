// internal/core/ports/audit.go
package ports

import (
	"context"

	"github.com/stockline/stockline-be/internal/core/domain"
)

// AuditSink receives one event per tag change, reservation, commit,
// replacement and move-out. Delivery is best-effort and happens after the
// owning transaction commits; the sink never participates in engine
// correctness.
type AuditSink interface {
	Emit(ctx context.Context, events []domain.AuditEvent) error
}

// LedgerSink receives the derived financial records produced by move-out
// and replacement. The concrete transport/format is an external concern.
type LedgerSink interface {
	Publish(ctx context.Context, record *domain.LedgerRecord) error
}
