// internal/core/domain/product.go
package domain

import "github.com/google/uuid"

// StockLevel classifies a product's stock position
type StockLevel string

// Stock level constants
const (
	StockLevelOK         StockLevel = "ok"
	StockLevelLow        StockLevel = "low"
	StockLevelOutOfStock StockLevel = "out_of_stock"
)

// ProductRef carries the product fields the engine needs. Products are an
// external aggregate; quantities are never stored on them, only derived.
type ProductRef struct {
	ID                uuid.UUID `json:"id"`
	TrackInventory    bool      `json:"track_inventory"`
	LowStockThreshold int       `json:"low_stock_threshold"`
}

// ProductQuantities is the aggregate view derived from the unit population.
// All counts come from a single consistent snapshot. Available is the
// number of stock-counted units with no open reservation: reserving
// retags a unit to in-cart, which already removes it from Stock, so a
// reservation must never be subtracted from Stock a second time.
type ProductQuantities struct {
	ProductID uuid.UUID `json:"product_id"`
	Stock     int       `json:"stock_quantity"`
	Reserved  int       `json:"reserved_quantity"`
	Available int       `json:"available_quantity"`
	Sold      int       `json:"sold_quantity"`
	Defective int       `json:"defective_quantity"`
}

// Clamp floors Available at zero. The floor only bites when a race lets a
// reservation land on a unit still counted as stock; callers must never
// see the transient negative delta.
func (q *ProductQuantities) Clamp() {
	if q.Available < 0 {
		q.Available = 0
	}
}

// ClassifyStock returns the stock level for the given threshold.
// Out-of-stock takes precedence over low; the two are mutually exclusive.
func ClassifyStock(stock, threshold int) StockLevel {
	switch {
	case stock == 0:
		return StockLevelOutOfStock
	case threshold > 0 && stock <= threshold:
		return StockLevelLow
	default:
		return StockLevelOK
	}
}
