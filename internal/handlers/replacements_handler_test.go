// internal/handlers/replacements_handler_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func TestReplacementHandler_Lookup(t *testing.T) {
	invoiceID := uuid.New()
	productID := uuid.New()

	tests := []struct {
		name           string
		barcode        string
		setupMocks     func(*mocks.MockReplacementService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name:    "successfully_resolves_barcode_to_invoice",
			barcode: "2000000000017",
			setupMocks: func(m *mocks.MockReplacementService) {
				m.EXPECT().
					FindInvoiceUnits(gomock.Any(), "2000000000017").
					Return(&ports.InvoiceUnitsResult{
						InvoiceID: invoiceID,
						Lines: []domain.InvoiceLine{
							{InvoiceID: invoiceID, ProductID: productID, Sold: 3, Replaced: 1},
						},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body []byte) {
				var response ports.InvoiceUnitsResult
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, invoiceID, response.InvoiceID)
				require.Len(t, response.Lines, 1)
				assert.Equal(t, 3, response.Lines[0].Sold)
				assert.Equal(t, 1, response.Lines[0].Replaced)
			},
		},
		{
			name:           "missing_barcode_parameter",
			barcode:        "",
			setupMocks:     func(m *mocks.MockReplacementService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "barcode query parameter is required", response["error"])
			},
		},
		{
			name:    "unknown_barcode_maps_to_404",
			barcode: "2999999999999",
			setupMocks: func(m *mocks.MockReplacementService) {
				m.EXPECT().
					FindInvoiceUnits(gomock.Any(), "2999999999999").
					Return(nil, fmt.Errorf("barcode 2999999999999: %w", domain.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockReplacementService(ctrl)
			logger := helpers.TestLogger()
			handler := handlers.NewReplacementHandler(mockService, logger)

			tt.setupMocks(mockService)

			url := "/api/v1/replacements/lookup"
			if tt.barcode != "" {
				url += "?barcode=" + tt.barcode
			}
			req := httptest.NewRequest("GET", url, nil)
			w := httptest.NewRecorder()

			handler.Lookup(w, req)

			resp := w.Result()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}

func TestReplacementHandler_Process(t *testing.T) {
	invoiceID := uuid.New()
	productID := uuid.New()

	validBody := map[string]interface{}{
		"invoice_id": invoiceID.String(),
		"items": []map[string]interface{}{
			{"product_id": productID.String(), "quantity": 2},
		},
	}

	tests := []struct {
		name           string
		body           interface{}
		rawBody        string
		setupMocks     func(*mocks.MockReplacementService)
		expectedStatus int
		validateBody   func(*testing.T, []byte)
	}{
		{
			name: "successfully_processes_replacement",
			body: validBody,
			setupMocks: func(m *mocks.MockReplacementService) {
				m.EXPECT().
					ProcessReplacement(gomock.Any(), invoiceID, gomock.Any(), "api").
					DoAndReturn(func(ctx context.Context, id uuid.UUID, lines []domain.ReplacementLine, actor string) (*domain.ReplacementRecord, error) {
						require.Len(t, lines, 1)
						assert.Equal(t, productID, lines[0].ProductID)
						assert.Equal(t, 2, lines[0].Quantity)

						return &domain.ReplacementRecord{
							ID:              uuid.New(),
							SourceInvoiceID: id,
							ReplacedUnits:   map[uuid.UUID]int{uuid.New(): 1, uuid.New(): 1},
							Lines:           lines,
							CreatedAt:       time.Now().UTC(),
						}, nil
					})
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body []byte) {
				var response domain.ReplacementRecord
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, invoiceID, response.SourceInvoiceID)
				assert.Len(t, response.ReplacedUnits, 2)
			},
		},
		{
			name:           "invalid_request_body",
			rawBody:        "{not json",
			setupMocks:     func(m *mocks.MockReplacementService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "empty_item_list",
			body: map[string]interface{}{
				"invoice_id": invoiceID.String(),
				"items":      []map[string]interface{}{},
			},
			setupMocks:     func(m *mocks.MockReplacementService) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Equal(t, "items is required", response["error"])
			},
		},
		{
			name: "zero_quantity_line_rejected",
			body: map[string]interface{}{
				"invoice_id": invoiceID.String(),
				"items": []map[string]interface{}{
					{"product_id": productID.String(), "quantity": 0},
				},
			},
			setupMocks:     func(m *mocks.MockReplacementService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "exceeds_available_maps_to_409",
			body: validBody,
			setupMocks: func(m *mocks.MockReplacementService) {
				m.EXPECT().
					ProcessReplacement(gomock.Any(), invoiceID, gomock.Any(), "api").
					Return(nil, &domain.ExceedsAvailableError{
						InvoiceID: invoiceID,
						ProductID: productID,
						Requested: 2,
						Available: 1,
					})
			},
			expectedStatus: http.StatusConflict,
			validateBody: func(t *testing.T, body []byte) {
				var response map[string]string
				err := json.Unmarshal(body, &response)
				require.NoError(t, err)
				assert.Contains(t, response["error"], "1 available")
			},
		},
		{
			name: "unknown_invoice_maps_to_404",
			body: validBody,
			setupMocks: func(m *mocks.MockReplacementService) {
				m.EXPECT().
					ProcessReplacement(gomock.Any(), invoiceID, gomock.Any(), "api").
					Return(nil, fmt.Errorf("invoice %s: %w", invoiceID, domain.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := mocks.NewMockReplacementService(ctrl)
			logger := helpers.TestLogger()
			handler := handlers.NewReplacementHandler(mockService, logger)

			tt.setupMocks(mockService)

			var bodyReader *bytes.Reader
			if tt.rawBody != "" {
				bodyReader = bytes.NewReader([]byte(tt.rawBody))
			} else {
				raw, err := json.Marshal(tt.body)
				require.NoError(t, err)
				bodyReader = bytes.NewReader(raw)
			}

			req := httptest.NewRequest("POST", "/api/v1/replacements", bodyReader)
			w := httptest.NewRecorder()

			handler.Process(w, req)

			resp := w.Result()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.validateBody != nil {
				tt.validateBody(t, w.Body.Bytes())
			}
		})
	}
}
