// internal/core/domain/cart.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartReservation is a temporary hold on one unit while a cart is open.
// A unit appears in at most one active reservation, and a unit tagged
// in-cart has exactly one.
type CartReservation struct {
	CartID     uuid.UUID `json:"cart_id"`
	UnitID     uuid.UUID `json:"unit_id"`
	ProductID  uuid.UUID `json:"product_id"`
	ReservedAt time.Time `json:"reserved_at"`
}
