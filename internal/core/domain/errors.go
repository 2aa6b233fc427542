// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Sentinel errors for conditions that carry no per-id payload.
var (
	// ErrContended is returned when a competing transaction holds a lock on
	// one of the unit rows an operation needs. Callers retry or fail fast;
	// the engine never blocks on a contended row.
	ErrContended = errors.New("unit rows locked by a concurrent operation")

	// ErrNotFound is returned for unknown unit, product, cart or invoice ids.
	ErrNotFound = errors.New("not found")

	// ErrNothingToMoveOut is returned when the selected products have no
	// defective units in the snapshot used for selection.
	ErrNothingToMoveOut = errors.New("no defective units to move out")
)

// InvalidTransitionError reports a tag change outside the transition graph.
type InvalidTransitionError struct {
	UnitID uuid.UUID
	From   Tag
	To     Tag
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s for unit %s", e.From, e.To, e.UnitID)
}

// MixedSourceTagError reports a retag batch whose units do not share a
// single valid source tag. The whole batch is rejected.
type MixedSourceTagError struct {
	Target       Tag
	OffendingIDs []uuid.UUID
}

func (e *MixedSourceTagError) Error() string {
	return fmt.Sprintf("retag to %s rejected: %d unit(s) do not share a valid source tag", e.Target, len(e.OffendingIDs))
}

// ConfirmationRequiredError reports an inventory-increasing retag that was
// attempted without confirm=true.
type ConfirmationRequiredError struct {
	From Tag
	To   Tag
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("transition %s -> %s re-enters sellable stock and requires confirmation", e.From, e.To)
}

// InsufficientStockError reports a reservation request larger than the
// number of eligible units.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Requested int
	Eligible  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product %s: requested %d unit(s), %d eligible", e.ProductID, e.Requested, e.Eligible)
}

// ReservationStaleError reports a commit that referenced a unit no longer
// reserved in the cart (e.g. concurrently released).
type ReservationStaleError struct {
	CartID  uuid.UUID
	UnitIDs []uuid.UUID
}

func (e *ReservationStaleError) Error() string {
	return fmt.Sprintf("cart %s: %d reserved unit(s) are no longer in-cart", e.CartID, len(e.UnitIDs))
}

// ExceedsAvailableError reports a replacement request beyond a line's
// remaining replaceable quantity.
type ExceedsAvailableError struct {
	InvoiceID uuid.UUID
	ProductID uuid.UUID
	Requested int
	Available int
}

func (e *ExceedsAvailableError) Error() string {
	return fmt.Sprintf("invoice %s line %s: requested %d replacement(s), %d available", e.InvoiceID, e.ProductID, e.Requested, e.Available)
}
