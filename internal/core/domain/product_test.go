// internal/core/domain/product_test.go
package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockline/stockline-be/internal/core/domain"
)

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		threshold int
		want      domain.StockLevel
	}{
		{"zero_stock_is_out_of_stock", 0, 3, domain.StockLevelOutOfStock},
		{"zero_stock_wins_over_low", 0, 10, domain.StockLevelOutOfStock},
		{"at_threshold_is_low", 3, 3, domain.StockLevelLow},
		{"below_threshold_is_low", 2, 3, domain.StockLevelLow},
		{"above_threshold_is_ok", 4, 3, domain.StockLevelOK},
		{"zero_threshold_never_low", 1, 0, domain.StockLevelOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyStock(tt.stock, tt.threshold))
		})
	}
}

func TestProductQuantities_Clamp(t *testing.T) {
	// Reserved units are already out of Stock; a large reservation count
	// must not be subtracted from Stock a second time.
	q := domain.ProductQuantities{Stock: 2, Reserved: 8, Available: 2}
	q.Clamp()
	assert.Equal(t, 2, q.Available)

	// A reservation/stock race can transiently drive the computed value
	// negative; availability must still floor at zero.
	q = domain.ProductQuantities{Stock: 1, Reserved: 4, Available: -1}
	q.Clamp()
	assert.Equal(t, 0, q.Available)
}
