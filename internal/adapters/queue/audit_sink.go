// internal/adapters/queue/audit_sink.go
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/ports"
	"github.com/stockline/stockline-be/internal/workers"
)

// AsynqAuditSink delivers audit events to the activity log by way of the
// task queue. Services call Emit after their transaction commits; the
// worker writes the rows, so a slow or unavailable log never sits on the
// request path.
type AsynqAuditSink struct {
	client *asynq.Client
	logger *slog.Logger
}

// Statically assert that *AsynqAuditSink implements the AuditSink interface.
var _ ports.AuditSink = (*AsynqAuditSink)(nil)

// NewAsynqAuditSink creates a new queue-backed audit sink
func NewAsynqAuditSink(client *asynq.Client, logger *slog.Logger) *AsynqAuditSink {
	return &AsynqAuditSink{
		client: client,
		logger: logger.With(slog.String("sink", "asynq_audit")),
	}
}

// Emit enqueues one task carrying the whole event batch.
func (s *AsynqAuditSink) Emit(ctx context.Context, events []domain.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}

	payload, err := json.Marshal(workers.AuditJobPayload{Events: events})
	if err != nil {
		return fmt.Errorf("failed to marshal audit events: %w", err)
	}

	task := asynq.NewTask(workers.TypeAuditRecord, payload)
	info, err := s.client.EnqueueContext(ctx, task,
		asynq.Queue("default"),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue audit task: %w", err)
	}

	s.logger.DebugContext(ctx, "audit events enqueued",
		slog.String("task_id", info.ID),
		slog.Int("events", len(events)))

	return nil
}
