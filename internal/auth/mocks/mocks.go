package mocks

import (
	"context"

	"github.com/mateusw12/chaotic-game-sub002/domain"

	"github.com/stretchr/testify/mock"
)

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) SyncUser(ctx context.Context, claims domain.SessionClaims) (*domain.User, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthUsecase) GetMe(ctx context.Context, subject string) (*domain.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthUsecase) ListUsers(ctx context.Context, actorSubject string) ([]domain.User, error) {
	args := m.Called(ctx, actorSubject)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthUsecase) UpdateUserRole(ctx context.Context, actorSubject string, userUUID string, role string) (*domain.User, error) {
	args := m.Called(ctx, actorSubject, userUUID, role)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// Mock для AuthRepository
type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) SyncUser(ctx context.Context, claims domain.SessionClaims) (*domain.User, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthRepository) GetUserBySubject(ctx context.Context, subject string) (*domain.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAuthRepository) UpdateUserRole(ctx context.Context, userUUID string, role string) (*domain.User, error) {
	args := m.Called(ctx, userUUID, role)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}
