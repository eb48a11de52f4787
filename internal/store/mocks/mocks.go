package mocks

import (
	"context"

	"github.com/mateusw12/chaotic-game-sub002/domain"

	"github.com/stretchr/testify/mock"
)

type MockStoreUsecase struct {
	mock.Mock
}

func (m *MockStoreUsecase) GetStoreFront(ctx context.Context, subject string) (*domain.StoreFront, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.StoreFront), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStoreUsecase) PurchasePack(ctx context.Context, subject string, packID int64) (*domain.ProgressionResult, error) {
	args := m.Called(ctx, subject, packID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ProgressionResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// Mock для StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) GetUserBySubject(ctx context.Context, subject string) (*domain.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStoreRepository) ListActivePacks(ctx context.Context) ([]domain.StorePack, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.StorePack), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStoreRepository) GetPack(ctx context.Context, packID int64) (*domain.StorePack, error) {
	args := m.Called(ctx, packID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.StorePack), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStoreRepository) GetWallet(ctx context.Context, userUUID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userUUID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Wallet), args.Error(1)
	}
	return nil, args.Error(1)
}
