// internal/core/domain/unit_test.go
package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockline/stockline-be/internal/core/domain"
)

func TestCanTransition_Graph(t *testing.T) {
	allowed := map[domain.Tag][]domain.Tag{
		domain.TagUnknown:   {domain.TagReturned, domain.TagDefective},
		domain.TagReturned:  {domain.TagNew},
		domain.TagDefective: {domain.TagNew},
		domain.TagInCart:    {domain.TagNew, domain.TagSold},
		domain.TagSold:      {domain.TagUnknown},
		domain.TagNew:       {domain.TagInCart, domain.TagUnknown},
	}

	all := []domain.Tag{
		domain.TagNew, domain.TagInCart, domain.TagSold,
		domain.TagReturned, domain.TagDefective, domain.TagUnknown,
	}

	// Every pair: allowed iff listed, forbidden otherwise.
	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, domain.CanTransition(from, to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestSourcesFor(t *testing.T) {
	sources := domain.SourcesFor(domain.TagNew)
	assert.ElementsMatch(t,
		[]domain.Tag{domain.TagReturned, domain.TagDefective, domain.TagInCart},
		sources)

	assert.ElementsMatch(t,
		[]domain.Tag{domain.TagInCart},
		domain.SourcesFor(domain.TagSold))

	assert.ElementsMatch(t,
		[]domain.Tag{domain.TagSold, domain.TagNew},
		domain.SourcesFor(domain.TagUnknown))
}

func TestRequiresConfirmation(t *testing.T) {
	tests := []struct {
		name string
		from domain.Tag
		to   domain.Tag
		want bool
	}{
		{"returned_to_new_increases_stock", domain.TagReturned, domain.TagNew, true},
		{"defective_to_new_increases_stock", domain.TagDefective, domain.TagNew, true},
		{"in_cart_to_new_increases_stock", domain.TagInCart, domain.TagNew, true},
		{"unknown_to_defective_does_not", domain.TagUnknown, domain.TagDefective, false},
		{"unknown_to_returned_does_not", domain.TagUnknown, domain.TagReturned, false},
		{"in_cart_to_sold_does_not", domain.TagInCart, domain.TagSold, false},
		{"noop_on_new_still_requires_confirm", domain.TagNew, domain.TagNew, true},
		{"noop_on_defective_does_not", domain.TagDefective, domain.TagDefective, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.RequiresConfirmation(tt.from, tt.to))
		})
	}
}

func TestBarcodeUnit_Transition(t *testing.T) {
	now := time.Now()

	t.Run("valid_edge_updates_tag_and_timestamp", func(t *testing.T) {
		u := &domain.BarcodeUnit{ID: uuid.New(), Tag: domain.TagNew}
		err := u.Transition(domain.TagInCart, now)
		require.NoError(t, err)
		assert.Equal(t, domain.TagInCart, u.Tag)
		assert.Equal(t, now, u.UpdatedAt)
	})

	t.Run("invalid_edge_leaves_state_unchanged", func(t *testing.T) {
		u := &domain.BarcodeUnit{ID: uuid.New(), Tag: domain.TagSold}
		err := u.Transition(domain.TagNew, now)

		var invalid *domain.InvalidTransitionError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, domain.TagSold, invalid.From)
		assert.Equal(t, domain.TagNew, invalid.To)
		assert.Equal(t, domain.TagSold, u.Tag)
		assert.True(t, u.UpdatedAt.IsZero())
	})

	t.Run("noop_succeeds", func(t *testing.T) {
		u := &domain.BarcodeUnit{ID: uuid.New(), Tag: domain.TagDefective}
		require.NoError(t, u.Transition(domain.TagDefective, now))
		assert.Equal(t, domain.TagDefective, u.Tag)
	})

	t.Run("disposed_unit_rejects_everything", func(t *testing.T) {
		disposed := now
		u := &domain.BarcodeUnit{ID: uuid.New(), Tag: domain.TagDefective, DisposedAt: &disposed}

		var invalid *domain.InvalidTransitionError
		err := u.Transition(domain.TagNew, now)
		require.True(t, errors.As(err, &invalid))
	})
}

func TestTag_CountsAsStock(t *testing.T) {
	assert.True(t, domain.TagNew.CountsAsStock())
	assert.True(t, domain.TagReturned.CountsAsStock())
	assert.False(t, domain.TagInCart.CountsAsStock())
	assert.False(t, domain.TagSold.CountsAsStock())
	assert.False(t, domain.TagDefective.CountsAsStock())
	assert.False(t, domain.TagUnknown.CountsAsStock())
}

func TestValidTag(t *testing.T) {
	assert.True(t, domain.ValidTag("in-cart"))
	assert.False(t, domain.ValidTag("in_cart"))
	assert.False(t, domain.ValidTag(""))
	assert.False(t, domain.ValidTag("disposed"))
}
