package mocks

import (
	"context"

	"github.com/mateusw12/chaotic-game-sub002/domain"

	"github.com/stretchr/testify/mock"
)

type MockTrialsUsecase struct {
	mock.Mock
}

func (m *MockTrialsUsecase) AwardCard(ctx context.Context, subject string, req domain.AwardCardRequest) (*domain.ProgressionResult, error) {
	args := m.Called(ctx, subject, req)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ProgressionResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTrialsUsecase) ClaimPack(ctx context.Context, subject string, req domain.ClaimPackRequest) (*domain.ProgressionResult, error) {
	args := m.Called(ctx, subject, req)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ProgressionResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTrialsUsecase) ClaimedLeagues(ctx context.Context, subject string) ([]string, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) != nil {
		return args.Get(0).([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTrialsUsecase) IsClaimed(ctx context.Context, userUUID string, league string) bool {
	args := m.Called(ctx, userUUID, league)
	return args.Bool(0)
}

// Mock для TrialsRepository
type MockTrialsRepository struct {
	mock.Mock
}

func (m *MockTrialsRepository) GetUserBySubject(ctx context.Context, subject string) (*domain.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTrialsRepository) ListClaimEvents(ctx context.Context, userUUID string, limit int) ([]domain.ProgressionEvent, error) {
	args := m.Called(ctx, userUUID, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ProgressionEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTrialsRepository) CachedClaimedLeagues(ctx context.Context, userUUID string) ([]string, bool) {
	args := m.Called(ctx, userUUID)
	if args.Get(0) != nil {
		return args.Get(0).([]string), args.Bool(1)
	}
	return nil, args.Bool(1)
}

func (m *MockTrialsRepository) StoreClaimedLeagues(ctx context.Context, userUUID string, leagues []string) {
	m.Called(ctx, userUUID, leagues)
}

func (m *MockTrialsRepository) InvalidateClaimedLeagues(ctx context.Context, userUUID string) {
	m.Called(ctx, userUUID)
}

// Mock для CardCatalog
type MockCardCatalog struct {
	mock.Mock
}

func (m *MockCardCatalog) ListCards(ctx context.Context, cardType string) ([]domain.CatalogCard, error) {
	args := m.Called(ctx, cardType)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.CatalogCard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCardCatalog) CardExists(ctx context.Context, cardType string, cardID int64) (bool, error) {
	args := m.Called(ctx, cardType, cardID)
	return args.Bool(0), args.Error(1)
}
