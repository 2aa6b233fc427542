// internal/core/domain/unit.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tag represents the lifecycle state of a barcode unit
type Tag string

// Tag constants
const (
	TagNew       Tag = "new"
	TagInCart    Tag = "in-cart"
	TagSold      Tag = "sold"
	TagReturned  Tag = "returned"
	TagDefective Tag = "defective"
	TagUnknown   Tag = "unknown"
)

// allowedTransitions is the complete tag transition graph. A unit's tag
// changes only along these edges; everything else is InvalidTransition.
var allowedTransitions = map[Tag][]Tag{
	TagUnknown:   {TagReturned, TagDefective},
	TagReturned:  {TagNew},
	TagDefective: {TagNew},
	TagInCart:    {TagNew, TagSold},
	TagSold:      {TagUnknown},
	TagNew:       {TagInCart, TagUnknown},
}

// inventoryIncreasing marks the edges that put a unit back into sellable
// stock. These require an explicit double-acknowledgement (confirm=true)
// before they are applied.
var inventoryIncreasing = map[[2]Tag]bool{
	{TagReturned, TagNew}:  true,
	{TagDefective, TagNew}: true,
	{TagInCart, TagNew}:    true,
}

// ValidTag reports whether s is one of the known tag values.
func ValidTag(s string) bool {
	switch Tag(s) {
	case TagNew, TagInCart, TagSold, TagReturned, TagDefective, TagUnknown:
		return true
	}
	return false
}

// CanTransition reports whether the edge from -> to exists in the graph.
func CanTransition(from, to Tag) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// SourcesFor returns every tag that may transition into target.
func SourcesFor(target Tag) []Tag {
	var sources []Tag
	for from, tos := range allowedTransitions {
		for _, to := range tos {
			if to == target {
				sources = append(sources, from)
			}
		}
	}
	return sources
}

// RequiresConfirmation reports whether the from -> to edge is classified as
// inventory-increasing. No-op retags (from == to) keep the contract uniform:
// re-tagging to `new` always needs confirmation, even when nothing changes.
func RequiresConfirmation(from, to Tag) bool {
	if from == to {
		return to == TagNew
	}
	return inventoryIncreasing[[2]Tag{from, to}]
}

// CountsAsStock reports whether a unit with this tag contributes to
// stock_quantity.
func (t Tag) CountsAsStock() bool {
	return t == TagNew || t == TagReturned
}

// BarcodeUnit is one physical, individually barcoded inventory item.
// Code is globally unique and never reassigned for the life of the unit.
type BarcodeUnit struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	Code              string          `json:"code"`
	Tag               Tag             `json:"tag"`
	PurchaseID        *uuid.UUID      `json:"purchase_id,omitempty"`
	PurchaseUnitPrice decimal.Decimal `json:"purchase_unit_price"`
	InvoiceID         *uuid.UUID      `json:"invoice_id,omitempty"`
	DisposedAt        *time.Time      `json:"disposed_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Disposed reports whether the unit has been consumed by a move-out batch.
// Disposed units keep their last tag for audit but are excluded from every
// aggregate count and from transition eligibility.
func (u *BarcodeUnit) Disposed() bool {
	return u.DisposedAt != nil
}

// Transition validates and applies a tag change in memory. Repositories
// persist the result; services own the batch-level rules (shared source,
// confirmation) on top of this.
func (u *BarcodeUnit) Transition(to Tag, now time.Time) error {
	if u.Disposed() {
		return &InvalidTransitionError{UnitID: u.ID, From: u.Tag, To: to}
	}
	if u.Tag == to {
		return nil
	}
	if !CanTransition(u.Tag, to) {
		return &InvalidTransitionError{UnitID: u.ID, From: u.Tag, To: to}
	}
	u.Tag = to
	u.UpdatedAt = now
	return nil
}
