// internal/core/services/replacement_service_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/services"
	"github.com/stockline/stockline-be/test/helpers"
	"github.com/stockline/stockline-be/test/mocks"
)

func TestReplacementService_FindInvoiceUnits(t *testing.T) {
	invoiceID := uuid.New()
	productID := uuid.New()
	soldUnit := helpers.CreateTestUnit(func(u *domain.BarcodeUnit) {
		u.ProductID = productID
		u.Tag = domain.TagSold
		u.InvoiceID = &invoiceID
	})
	neverSold := helpers.CreateTestUnit()
	lines := []domain.InvoiceLine{
		{InvoiceID: invoiceID, ProductID: productID, Sold: 3, Replaced: 1},
	}

	tests := []struct {
		name          string
		barcode       string
		setupMocks    func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx)
		checkError    func(t *testing.T, err error)
		expectedLines int
	}{
		{
			name:    "resolves_barcode_to_invoice_lines",
			barcode: soldUnit.Code,
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx) {
				repo.EXPECT().FindByCode(gomock.Any(), soldUnit.Code).Return(soldUnit, nil)
				expectInTx(repo, tx)
				tx.EXPECT().InvoiceLines(gomock.Any(), invoiceID).Return(lines, nil)
			},
			expectedLines: 1,
		},
		{
			name:    "rejects_empty_barcode",
			barcode: "",
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx) {
			},
			checkError: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "barcode is required")
			},
		},
		{
			name:    "unknown_barcode_not_found",
			barcode: "2999999999999",
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx) {
				repo.EXPECT().FindByCode(gomock.Any(), "2999999999999").Return(nil, domain.ErrNotFound)
			},
			checkError: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrNotFound)
			},
		},
		{
			name:    "unit_never_sold_not_found",
			barcode: neverSold.Code,
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx) {
				repo.EXPECT().FindByCode(gomock.Any(), neverSold.Code).Return(neverSold, nil)
			},
			checkError: func(t *testing.T, err error) {
				require.ErrorIs(t, err, domain.ErrNotFound)
				assert.Contains(t, err.Error(), "never sold")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockUnitRepository(ctrl)
			mockTx := mocks.NewMockStockTx(ctrl)
			mockAudit := mocks.NewMockAuditSink(ctrl)
			mockLedger := mocks.NewMockLedgerSink(ctrl)
			mockCache := mocks.NewMockCacheRepository(ctrl)

			service := services.NewReplacementService(mockRepo, mockAudit, mockLedger, mockCache, helpers.TestLogger())

			tt.setupMocks(mockRepo, mockTx)

			result, err := service.FindInvoiceUnits(context.Background(), tt.barcode)

			if tt.checkError != nil {
				require.Error(t, err)
				tt.checkError(t, err)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, invoiceID, result.InvoiceID)
				assert.Len(t, result.Lines, tt.expectedLines)
			}
		})
	}
}

func TestReplacementService_ProcessReplacement(t *testing.T) {
	invoiceID := uuid.New()
	productID := uuid.New()

	soldUnits := helpers.CreateTestUnits(2, productID, domain.TagSold)
	for i := range soldUnits {
		soldUnits[i].InvoiceID = &invoiceID
		soldUnits[i].PurchaseUnitPrice = decimal.NewFromFloat(25.00)
	}
	lines := []domain.InvoiceLine{
		{InvoiceID: invoiceID, ProductID: productID, Sold: 3, Replaced: 1},
	}

	tests := []struct {
		name       string
		items      []domain.ReplacementLine
		setupMocks func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, ledger *mocks.MockLedgerSink, cache *mocks.MockCacheRepository)
		checkError func(t *testing.T, err error)
		check      func(t *testing.T, record *domain.ReplacementRecord)
	}{
		{
			name:  "replaces_units_and_publishes_ledger",
			items: []domain.ReplacementLine{{ProductID: productID, Quantity: 2}},
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, ledger *mocks.MockLedgerSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().InvoiceLines(gomock.Any(), invoiceID).Return(lines, nil)
				tx.EXPECT().
					LockInvoiceLineUnits(gomock.Any(), invoiceID, productID, 2).
					Return(soldUnits, nil)
				tx.EXPECT().
					UpdateTags(gomock.Any(), []uuid.UUID{soldUnits[0].ID, soldUnits[1].ID}, domain.TagUnknown, gomock.Any()).
					Return(int64(2), nil)
				tx.EXPECT().InsertReplacement(gomock.Any(), gomock.Any()).Return(nil)
				audit.EXPECT().Emit(gomock.Any(), gomock.Len(2)).Return(nil)
				ledger.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, rec *domain.LedgerRecord) error {
						assert.Equal(t, domain.LedgerKindReplacement, rec.Kind)
						assert.True(t, rec.Total.Equal(decimal.NewFromFloat(50.00)),
							"Expected total 50.00, got %s", rec.Total)
						require.Len(t, rec.Lines, 1)
						assert.Equal(t, 2, rec.Lines[0].Quantity)
						return nil
					})
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, record *domain.ReplacementRecord) {
				assert.Equal(t, invoiceID, record.SourceInvoiceID)
				assert.Len(t, record.ReplacedUnits, 2)
			},
		},
		{
			name:  "rejects_empty_line_list",
			items: nil,
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, ledger *mocks.MockLedgerSink, cache *mocks.MockCacheRepository) {
			},
			checkError: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "at least one replacement line")
			},
		},
		{
			name:  "rejects_non_positive_quantity",
			items: []domain.ReplacementLine{{ProductID: productID, Quantity: 0}},
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, ledger *mocks.MockLedgerSink, cache *mocks.MockCacheRepository) {
			},
			checkError: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "quantity must be positive")
			},
		},
		{
			name:  "unknown_invoice_not_found",
			items: []domain.ReplacementLine{{ProductID: productID, Quantity: 1}},
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, ledger *mocks.MockLedgerSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().InvoiceLines(gomock.Any(), invoiceID).Return(nil, nil)
			},
			checkError: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrNotFound)
			},
		},
		{
			name:  "product_not_on_invoice_not_found",
			items: []domain.ReplacementLine{{ProductID: uuid.New(), Quantity: 1}},
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, ledger *mocks.MockLedgerSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().InvoiceLines(gomock.Any(), invoiceID).Return(lines, nil)
			},
			checkError: func(t *testing.T, err error) {
				require.ErrorIs(t, err, domain.ErrNotFound)
				assert.Contains(t, err.Error(), "no line for product")
			},
		},
		{
			name:  "request_beyond_replaceable_quantity_rejected",
			items: []domain.ReplacementLine{{ProductID: productID, Quantity: 3}},
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, ledger *mocks.MockLedgerSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().InvoiceLines(gomock.Any(), invoiceID).Return(lines, nil)
			},
			checkError: func(t *testing.T, err error) {
				var exceedsErr *domain.ExceedsAvailableError
				require.ErrorAs(t, err, &exceedsErr)
				assert.Equal(t, 3, exceedsErr.Requested)
				assert.Equal(t, 2, exceedsErr.Available)
			},
		},
		{
			name:  "fewer_lockable_units_than_requested_rejected",
			items: []domain.ReplacementLine{{ProductID: productID, Quantity: 2}},
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, ledger *mocks.MockLedgerSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().InvoiceLines(gomock.Any(), invoiceID).Return(lines, nil)
				tx.EXPECT().
					LockInvoiceLineUnits(gomock.Any(), invoiceID, productID, 2).
					Return(soldUnits[:1], nil)
			},
			checkError: func(t *testing.T, err error) {
				var exceedsErr *domain.ExceedsAvailableError
				require.ErrorAs(t, err, &exceedsErr)
				assert.Equal(t, 1, exceedsErr.Available)
			},
		},
		{
			name:  "ledger_failure_does_not_fail_replacement",
			items: []domain.ReplacementLine{{ProductID: productID, Quantity: 2}},
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, ledger *mocks.MockLedgerSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().InvoiceLines(gomock.Any(), invoiceID).Return(lines, nil)
				tx.EXPECT().LockInvoiceLineUnits(gomock.Any(), invoiceID, productID, 2).Return(soldUnits, nil)
				tx.EXPECT().UpdateTags(gomock.Any(), gomock.Any(), domain.TagUnknown, gomock.Any()).Return(int64(2), nil)
				tx.EXPECT().InsertReplacement(gomock.Any(), gomock.Any()).Return(nil)
				audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)
				ledger.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("bucket unavailable"))
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, record *domain.ReplacementRecord) {
				assert.Len(t, record.ReplacedUnits, 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockUnitRepository(ctrl)
			mockTx := mocks.NewMockStockTx(ctrl)
			mockAudit := mocks.NewMockAuditSink(ctrl)
			mockLedger := mocks.NewMockLedgerSink(ctrl)
			mockCache := mocks.NewMockCacheRepository(ctrl)

			service := services.NewReplacementService(mockRepo, mockAudit, mockLedger, mockCache, helpers.TestLogger())

			tt.setupMocks(mockRepo, mockTx, mockAudit, mockLedger, mockCache)

			record, err := service.ProcessReplacement(context.Background(), invoiceID, tt.items, "manager-1")

			if tt.checkError != nil {
				require.Error(t, err)
				tt.checkError(t, err)
			} else {
				require.NoError(t, err)
				require.NotNil(t, record)
				tt.check(t, record)
			}
		})
	}
}
