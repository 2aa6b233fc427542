// internal/handlers/quantities_handler_test.go
package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/ports"
	"github.com/stockline/stockline-be/internal/handlers"
	"github.com/stockline/stockline-be/test/helpers"
	"github.com/stockline/stockline-be/test/mocks"
)

func TestQuantityHandler_GetQuantities(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name           string
		productID      string
		queryParams    map[string]string
		setupMocks     func(*mocks.MockAggregateService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name:      "successfully_derives_quantities",
			productID: productID.String(),
			queryParams: map[string]string{
				"low_stock_threshold": "5",
			},
			setupMocks: func(m *mocks.MockAggregateService) {
				m.EXPECT().
					Quantities(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, product domain.ProductRef) (*ports.QuantitiesResult, error) {
						assert.Equal(t, productID, product.ID)
						assert.True(t, product.TrackInventory)
						assert.Equal(t, 5, product.LowStockThreshold)

						return &ports.QuantitiesResult{
							ProductQuantities: domain.ProductQuantities{
								ProductID: product.ID,
								Stock:     3,
								Reserved:  1,
								Available: 2,
								Sold:      7,
							},
							Level: domain.StockLevelLow,
						}, nil
					})
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var response ports.QuantitiesResult
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, productID, response.ProductID)
				assert.Equal(t, 3, response.Stock)
				assert.Equal(t, 2, response.Available)
				assert.Equal(t, domain.StockLevelLow, response.Level)
			},
		},
		{
			name:        "untracked_product_forwarded",
			productID:   productID.String(),
			queryParams: map[string]string{"track_inventory": "false"},
			setupMocks: func(m *mocks.MockAggregateService) {
				m.EXPECT().
					Quantities(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, product domain.ProductRef) (*ports.QuantitiesResult, error) {
						assert.False(t, product.TrackInventory)
						return &ports.QuantitiesResult{
							ProductQuantities: domain.ProductQuantities{ProductID: product.ID},
							Level:             domain.StockLevelOK,
						}, nil
					})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid_product_id",
			productID:      "not-a-uuid",
			setupMocks:     func(m *mocks.MockAggregateService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "Invalid product ID format", response["error"])
			},
		},
		{
			name:      "service_error",
			productID: productID.String(),
			setupMocks: func(m *mocks.MockAggregateService) {
				m.EXPECT().
					Quantities(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database connection failed"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockAggregateService(ctrl)
			logger := helpers.TestLogger()
			handler := handlers.NewQuantityHandler(mockService, logger)

			tt.setupMocks(mockService)

			req := httptest.NewRequest("GET", "/api/v1/products/"+tt.productID+"/quantities", nil)
			req.SetPathValue("id", tt.productID)
			q := req.URL.Query()
			for k, v := range tt.queryParams {
				q.Set(k, v)
			}
			req.URL.RawQuery = q.Encode()
			w := httptest.NewRecorder()

			handler.GetQuantities(w, req)

			resp := w.Result()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}
