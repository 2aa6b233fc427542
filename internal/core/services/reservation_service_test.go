// internal/core/services/reservation_service_test.go
package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stockline/stockline-be/internal/core/domain"
	"github.com/stockline/stockline-be/internal/core/services"
	"github.com/stockline/stockline-be/test/helpers"
	"github.com/stockline/stockline-be/test/mocks"
)

func newReservationService(t *testing.T, ctrl *gomock.Controller) (*services.ReservationService, *mocks.MockUnitRepository, *mocks.MockStockTx, *mocks.MockAuditSink, *mocks.MockCacheRepository) {
	t.Helper()
	mockRepo := mocks.NewMockUnitRepository(ctrl)
	mockTx := mocks.NewMockStockTx(ctrl)
	mockAudit := mocks.NewMockAuditSink(ctrl)
	mockCache := mocks.NewMockCacheRepository(ctrl)
	svc := services.NewReservationService(mockRepo, mockAudit, mockCache, 30*time.Minute, helpers.TestLogger())
	return svc, mockRepo, mockTx, mockAudit, mockCache
}

func TestReservationService_Reserve(t *testing.T) {
	cartID := uuid.New()
	productID := uuid.New()
	units := helpers.CreateTestUnits(3, productID)

	tests := []struct {
		name          string
		quantity      int
		setupMocks    func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, cache *mocks.MockCacheRepository)
		checkError    func(t *testing.T, err error)
		expectedCount int
	}{
		{
			name:     "reserves_oldest_units_first",
			quantity: 3,
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().
					LockOldestByTag(gomock.Any(), productID, domain.TagNew, 3).
					Return(units, nil)
				tx.EXPECT().
					UpdateTags(gomock.Any(), []uuid.UUID{units[0].ID, units[1].ID, units[2].ID}, domain.TagInCart, gomock.Any()).
					Return(int64(3), nil)
				tx.EXPECT().
					InsertReservations(gomock.Any(), gomock.Len(3)).
					Return(nil)
				audit.EXPECT().Emit(gomock.Any(), gomock.Len(3)).Return(nil)
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				cache.EXPECT().Touch(gomock.Any(), gomock.Any(), 30*time.Minute).Return(nil)
			},
			expectedCount: 3,
		},
		{
			name:     "rejects_non_positive_quantity",
			quantity: 0,
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, cache *mocks.MockCacheRepository) {
			},
			checkError: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "quantity must be positive")
			},
		},
		{
			name:     "insufficient_stock_reserves_nothing",
			quantity: 5,
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().
					LockOldestByTag(gomock.Any(), productID, domain.TagNew, 5).
					Return(units, nil)
				// No UpdateTags or InsertReservations on the failing path.
			},
			checkError: func(t *testing.T, err error) {
				var stockErr *domain.InsufficientStockError
				require.ErrorAs(t, err, &stockErr)
				assert.Equal(t, 5, stockErr.Requested)
				assert.Equal(t, 3, stockErr.Eligible)
			},
		},
		{
			name:     "lock_contention_surfaces",
			quantity: 1,
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().
					LockOldestByTag(gomock.Any(), productID, domain.TagNew, 1).
					Return(nil, domain.ErrContended)
			},
			checkError: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrContended)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, mockTx, mockAudit, mockCache := newReservationService(t, ctrl)
			tt.setupMocks(mockRepo, mockTx, mockAudit, mockCache)

			reservations, err := svc.Reserve(context.Background(), cartID, productID, tt.quantity, "clerk-1")

			if tt.checkError != nil {
				require.Error(t, err)
				tt.checkError(t, err)
				assert.Nil(t, reservations)
			} else {
				require.NoError(t, err)
				require.Len(t, reservations, tt.expectedCount)
				for i, r := range reservations {
					assert.Equal(t, cartID, r.CartID)
					assert.Equal(t, productID, r.ProductID)
					assert.Equal(t, units[i].ID, r.UnitID)
				}
			}
		})
	}
}

func TestReservationService_Reserve_TouchFallsBackToSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cartID := uuid.New()
	productID := uuid.New()
	units := helpers.CreateTestUnits(1, productID)

	svc, mockRepo, mockTx, mockAudit, mockCache := newReservationService(t, ctrl)

	expectInTx(mockRepo, mockTx)
	mockTx.EXPECT().LockOldestByTag(gomock.Any(), productID, domain.TagNew, 1).Return(units, nil)
	mockTx.EXPECT().UpdateTags(gomock.Any(), gomock.Any(), domain.TagInCart, gomock.Any()).Return(int64(1), nil)
	mockTx.EXPECT().InsertReservations(gomock.Any(), gomock.Any()).Return(nil)
	mockAudit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	// First reservation for a cart has no marker to refresh yet.
	gomock.InOrder(
		mockCache.EXPECT().
			Touch(gomock.Any(), gomock.Any(), 30*time.Minute).
			Return(assert.AnError),
		mockCache.EXPECT().
			SetWithTTL(gomock.Any(), gomock.Any(), gomock.Any(), 30*time.Minute).
			Return(nil),
	)

	_, err := svc.Reserve(context.Background(), cartID, productID, 1, "clerk-1")
	require.NoError(t, err)
}

func TestReservationService_Release(t *testing.T) {
	cartID := uuid.New()
	productID := uuid.New()
	units := helpers.CreateTestUnits(2, productID, domain.TagInCart)
	reservations := []domain.CartReservation{
		helpers.CreateTestReservation(cartID, &units[0]),
		helpers.CreateTestReservation(cartID, &units[1]),
	}

	tests := []struct {
		name          string
		setupMocks    func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, cache *mocks.MockCacheRepository)
		checkError    func(t *testing.T, err error)
		expectedCount int
	}{
		{
			name: "releases_all_reserved_units",
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().LockReservations(gomock.Any(), cartID).Return(reservations, nil)
				tx.EXPECT().
					LockUnits(gomock.Any(), []uuid.UUID{units[0].ID, units[1].ID}).
					Return(units, nil)
				tx.EXPECT().
					UpdateTags(gomock.Any(), []uuid.UUID{units[0].ID, units[1].ID}, domain.TagNew, gomock.Any()).
					Return(int64(2), nil)
				tx.EXPECT().DeleteReservations(gomock.Any(), cartID).Return(int64(2), nil)
				audit.EXPECT().Emit(gomock.Any(), gomock.Len(2)).Return(nil)
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(2).Return(nil)
			},
			expectedCount: 2,
		},
		{
			name: "empty_cart_is_a_noop",
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().LockReservations(gomock.Any(), cartID).Return(nil, nil)
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedCount: 0,
		},
		{
			name: "units_no_longer_in_cart_are_skipped",
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().LockReservations(gomock.Any(), cartID).Return(reservations, nil)
				drifted := []domain.BarcodeUnit{units[0], units[1]}
				drifted[1].Tag = domain.TagSold
				tx.EXPECT().LockUnits(gomock.Any(), gomock.Any()).Return(drifted, nil)
				tx.EXPECT().
					UpdateTags(gomock.Any(), []uuid.UUID{units[0].ID}, domain.TagNew, gomock.Any()).
					Return(int64(1), nil)
				tx.EXPECT().DeleteReservations(gomock.Any(), cartID).Return(int64(2), nil)
				audit.EXPECT().Emit(gomock.Any(), gomock.Len(1)).Return(nil)
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(2).Return(nil)
			},
			expectedCount: 1,
		},
		{
			name: "lock_contention_surfaces",
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().LockReservations(gomock.Any(), cartID).Return(nil, domain.ErrContended)
			},
			checkError: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrContended)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, mockTx, mockAudit, mockCache := newReservationService(t, ctrl)
			tt.setupMocks(mockRepo, mockTx, mockAudit, mockCache)

			released, err := svc.Release(context.Background(), cartID, "clerk-1")

			if tt.checkError != nil {
				require.Error(t, err)
				tt.checkError(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedCount, released)
			}
		})
	}
}

func TestReservationService_Commit(t *testing.T) {
	cartID := uuid.New()
	invoiceID := uuid.New()
	productID := uuid.New()
	units := helpers.CreateTestUnits(2, productID, domain.TagInCart)
	reservations := []domain.CartReservation{
		helpers.CreateTestReservation(cartID, &units[0]),
		helpers.CreateTestReservation(cartID, &units[1]),
	}

	tests := []struct {
		name          string
		setupMocks    func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, cache *mocks.MockCacheRepository)
		checkError    func(t *testing.T, err error)
		expectedCount int
	}{
		{
			name: "commits_reserved_units_to_invoice",
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().LockReservations(gomock.Any(), cartID).Return(reservations, nil)
				tx.EXPECT().
					LockUnits(gomock.Any(), []uuid.UUID{units[0].ID, units[1].ID}).
					Return(units, nil)
				tx.EXPECT().
					UpdateTags(gomock.Any(), []uuid.UUID{units[0].ID, units[1].ID}, domain.TagSold, gomock.Any()).
					Return(int64(2), nil)
				tx.EXPECT().
					SetInvoice(gomock.Any(), []uuid.UUID{units[0].ID, units[1].ID}, invoiceID, gomock.Any()).
					Return(nil)
				tx.EXPECT().DeleteReservations(gomock.Any(), cartID).Return(int64(2), nil)
				audit.EXPECT().Emit(gomock.Any(), gomock.Len(2)).Return(nil)
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(2).Return(nil)
			},
			expectedCount: 2,
		},
		{
			name: "empty_cart_commits_as_noop",
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().LockReservations(gomock.Any(), cartID).Return(nil, nil)
				cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedCount: 0,
		},
		{
			name: "stale_reservation_fails_whole_commit",
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().LockReservations(gomock.Any(), cartID).Return(reservations, nil)
				drifted := []domain.BarcodeUnit{units[0], units[1]}
				drifted[1].Tag = domain.TagNew
				tx.EXPECT().LockUnits(gomock.Any(), gomock.Any()).Return(drifted, nil)
			},
			checkError: func(t *testing.T, err error) {
				var staleErr *domain.ReservationStaleError
				require.ErrorAs(t, err, &staleErr)
				assert.Equal(t, cartID, staleErr.CartID)
				assert.Equal(t, []uuid.UUID{units[1].ID}, staleErr.UnitIDs)
			},
		},
		{
			name: "missing_reserved_unit_fails_whole_commit",
			setupMocks: func(repo *mocks.MockUnitRepository, tx *mocks.MockStockTx, audit *mocks.MockAuditSink, cache *mocks.MockCacheRepository) {
				expectInTx(repo, tx)
				tx.EXPECT().LockReservations(gomock.Any(), cartID).Return(reservations, nil)
				tx.EXPECT().
					LockUnits(gomock.Any(), gomock.Any()).
					Return([]domain.BarcodeUnit{units[0]}, nil)
			},
			checkError: func(t *testing.T, err error) {
				var staleErr *domain.ReservationStaleError
				assert.ErrorAs(t, err, &staleErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, mockTx, mockAudit, mockCache := newReservationService(t, ctrl)
			tt.setupMocks(mockRepo, mockTx, mockAudit, mockCache)

			committed, err := svc.Commit(context.Background(), cartID, invoiceID, "clerk-1")

			if tt.checkError != nil {
				require.Error(t, err)
				tt.checkError(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedCount, committed)
			}
		})
	}
}
