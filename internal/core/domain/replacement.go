// internal/core/domain/replacement.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceLine is the replacement view of one sold line item: the units of
// one product sold on one specific invoice. A replacement consumes units
// of this exact invoice, never an arbitrary sold unit of the product.
type InvoiceLine struct {
	InvoiceID uuid.UUID `json:"invoice_id"`
	ProductID uuid.UUID `json:"product_id"`
	Sold      int       `json:"sold_quantity"`
	Replaced  int       `json:"replaced_quantity"`
}

// Available returns the remaining replaceable quantity on the line.
func (l InvoiceLine) Available() int {
	return l.Sold - l.Replaced
}

// ReplacementRecord captures one post-sale exchange: which sold units of a
// source invoice were returned to inspection (tag unknown).
type ReplacementRecord struct {
	ID              uuid.UUID           `json:"id"`
	SourceInvoiceID uuid.UUID           `json:"source_invoice_id"`
	ReplacedUnits   map[uuid.UUID]int   `json:"replaced_units"`
	Lines           []ReplacementLine   `json:"lines"`
	CreatedAt       time.Time           `json:"created_at"`
}

// ReplacementLine is one line of a replacement request/record.
type ReplacementLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}
