// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/stockline/stockline-be/internal/core/ports"
	"github.com/stockline/stockline-be/internal/pkg/config"
)

// CleanupProcessor handles retention tasks
type CleanupProcessor struct {
	db     ports.Database
	config *config.Config
	logger *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(db ports.Database, config *config.Config, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		db:     db,
		config: config,
		logger: logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupOldData trims the activity log to the configured retention window.
// Disposed units and ledger records are kept forever; only the per-unit
// event log ages out.
func (p *CleanupProcessor) CleanupOldData(ctx context.Context, t *asynq.Task) error {
	retention := p.config.Engine.AuditRetention

	p.logger.InfoContext(ctx, "cleaning up old activity log entries",
		slog.Duration("retention", retention))

	cutoff := time.Now().UTC().Add(-retention)
	query := `DELETE FROM activity_log WHERE created_at < $1`

	result, err := p.db.Exec(ctx, query, cutoff)
	if err != nil {
		return fmt.Errorf("failed to cleanup activity log: %w", err)
	}

	p.logger.InfoContext(ctx, "old activity log entries removed",
		slog.Int64("rows_deleted", result.RowsAffected()))

	return nil
}
