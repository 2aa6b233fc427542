// internal/core/domain/moveout.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MoveOutBatch is a batch write-off of defective units. Every unit in the
// batch was tagged defective at creation time and is stamped disposed_at
// atomically with the batch row.
type MoveOutBatch struct {
	ID              uuid.UUID       `json:"id"`
	StoreID         uuid.UUID       `json:"store_id"`
	Reason          string          `json:"reason"`
	Notes           string          `json:"notes,omitempty"`
	UnitIDs         []uuid.UUID     `json:"unit_ids"`
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	TotalLoss       decimal.Decimal `json:"total_loss"`
	TotalAdjustment decimal.Decimal `json:"total_adjustment"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Validate performs domain validation on the batch.
func (b *MoveOutBatch) Validate() error {
	if b.StoreID == uuid.Nil {
		return fmt.Errorf("store_id is required")
	}
	if b.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	if len(b.UnitIDs) == 0 {
		return fmt.Errorf("batch must contain at least one unit")
	}
	if b.TotalLoss.IsNegative() {
		return fmt.Errorf("total_loss cannot be negative")
	}
	return nil
}

// LedgerRecord is the derived financial record handed to the external
// ledger. The engine supplies line items, never presentation.
type LedgerRecord struct {
	ID        uuid.UUID        `json:"id"`
	Kind      LedgerRecordKind `json:"kind"`
	SourceID  uuid.UUID        `json:"source_id"`
	Lines     []LedgerLine     `json:"lines"`
	Total     decimal.Decimal  `json:"total"`
	CreatedAt time.Time        `json:"created_at"`
}

// LedgerRecordKind distinguishes derived record types
type LedgerRecordKind string

const (
	LedgerKindMoveOut     LedgerRecordKind = "move_out"
	LedgerKindReplacement LedgerRecordKind = "replacement"
)

// LedgerLine is one line item of a derived financial record.
type LedgerLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}
