// internal/workers/sweeper_processor_test.go
package workers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/stockline/stockline-be/internal/workers"
	"github.com/stockline/stockline-be/test/helpers"
	"github.com/stockline/stockline-be/test/mocks"
)

func TestSweeperProcessor_SweepIdleCarts(t *testing.T) {
	cartA := uuid.New()
	cartB := uuid.New()

	tests := []struct {
		name          string
		setupMocks    func(repo *mocks.MockUnitRepository, res *mocks.MockReservationService, cache *mocks.MockCacheRepository)
		expectedError bool
	}{
		{
			name: "no idle carts is a no-op",
			setupMocks: func(repo *mocks.MockUnitRepository, res *mocks.MockReservationService, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					IdleCarts(gomock.Any(), gomock.Any()).
					Return(nil, nil)
			},
		},
		{
			name: "releases every idle cart",
			setupMocks: func(repo *mocks.MockUnitRepository, res *mocks.MockReservationService, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					IdleCarts(gomock.Any(), gomock.Any()).
					Return([]uuid.UUID{cartA, cartB}, nil)
				cache.EXPECT().
					Exists(gomock.Any(), gomock.Any()).
					Return(false, nil).
					Times(2)
				res.EXPECT().
					Release(gomock.Any(), cartA, "sweeper").
					Return(2, nil)
				res.EXPECT().
					Release(gomock.Any(), cartB, "sweeper").
					Return(1, nil)
			},
		},
		{
			name: "live activity marker spares the cart",
			setupMocks: func(repo *mocks.MockUnitRepository, res *mocks.MockReservationService, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					IdleCarts(gomock.Any(), gomock.Any()).
					Return([]uuid.UUID{cartA, cartB}, nil)
				cache.EXPECT().
					Exists(gomock.Any(), gomock.Any()).
					Return(true, nil)
				cache.EXPECT().
					Exists(gomock.Any(), gomock.Any()).
					Return(false, nil)
				res.EXPECT().
					Release(gomock.Any(), cartB, "sweeper").
					Return(3, nil)
			},
		},
		{
			name: "one contended cart does not abort the sweep",
			setupMocks: func(repo *mocks.MockUnitRepository, res *mocks.MockReservationService, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					IdleCarts(gomock.Any(), gomock.Any()).
					Return([]uuid.UUID{cartA, cartB}, nil)
				cache.EXPECT().
					Exists(gomock.Any(), gomock.Any()).
					Return(false, nil).
					Times(2)
				res.EXPECT().
					Release(gomock.Any(), cartA, "sweeper").
					Return(0, errors.New("unit rows locked by a concurrent operation"))
				res.EXPECT().
					Release(gomock.Any(), cartB, "sweeper").
					Return(1, nil)
			},
		},
		{
			name: "idle cart query failure surfaces for retry",
			setupMocks: func(repo *mocks.MockUnitRepository, res *mocks.MockReservationService, cache *mocks.MockCacheRepository) {
				repo.EXPECT().
					IdleCarts(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockUnitRepository(ctrl)
			res := mocks.NewMockReservationService(ctrl)
			cache := mocks.NewMockCacheRepository(ctrl)
			tt.setupMocks(repo, res, cache)

			processor := workers.NewSweeperProcessor(
				repo, res, cache, helpers.LoadTestConfig(), helpers.TestLogger())

			task := asynq.NewTask(workers.TypeCartSweep, nil)
			err := processor.SweepIdleCarts(context.Background(), task)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
