// internal/core/domain/audit.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditOperation identifies which engine operation produced an event
type AuditOperation string

// Audit operation constants
const (
	OpRetag       AuditOperation = "retag"
	OpCreateUnits AuditOperation = "create_units"
	OpReserve     AuditOperation = "reserve"
	OpRelease     AuditOperation = "release"
	OpCommit      AuditOperation = "commit"
	OpReplacement AuditOperation = "replacement"
	OpMoveOut     AuditOperation = "move_out"
)

// AuditEvent is one tag-change record for the external activity log.
// One event is emitted per unit per mutation.
type AuditEvent struct {
	UnitID    uuid.UUID      `json:"unit_id"`
	Before    Tag            `json:"before"`
	After     Tag            `json:"after"`
	Actor     string         `json:"actor"`
	Operation AuditOperation `json:"operation"`
	At        time.Time      `json:"at"`
}
