// internal/workers/audit_processor.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"

	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/ports"
)

const (
	TypeAuditRecord    = "audit:record"
	TypeCartSweep      = "cart:sweep"
	TypeCleanupOldData = "cleanup:old_data"
)

// AuditJobPayload carries one batch of lifecycle events from a committed
// operation to the activity log.
type AuditJobPayload struct {
	Events []domain.AuditEvent `json:"events"`
}

// AuditProcessor persists audit events into the activity log
type AuditProcessor struct {
	db     ports.Database
	logger *slog.Logger
}

// NewAuditProcessor creates a new audit processor
func NewAuditProcessor(db ports.Database, logger *slog.Logger) *AuditProcessor {
	return &AuditProcessor{
		db:     db,
		logger: logger.With(slog.String("processor", "audit")),
	}
}

// RecordEvents writes the batch into activity_log. The insert is plain
// append-only rows; a retried task inserts duplicates rather than losing
// events, and the log is read for history, not invariants.
func (p *AuditProcessor) RecordEvents(ctx context.Context, t *asynq.Task) error {
	var payload AuditJobPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	if len(payload.Events) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO activity_log (unit_id, before_tag, after_tag, actor, operation, occurred_at) VALUES `)

	args := make([]interface{}, 0, len(payload.Events)*6)
	for i, ev := range payload.Events {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 6
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6)
		args = append(args, ev.UnitID, ev.Before, ev.After, ev.Actor, ev.Operation, ev.At)
	}

	result, err := p.db.Exec(ctx, sb.String(), args...)
	if err != nil {
		return fmt.Errorf("failed to insert activity log rows: %w", err)
	}

	p.logger.InfoContext(ctx, "audit events recorded",
		slog.Int64("rows_inserted", result.RowsAffected()))

	return nil
}
