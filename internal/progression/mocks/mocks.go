package mocks

import (
	"context"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/mock"
)

type MockProgressionUsecase struct {
	mock.Mock
}

func (m *MockProgressionUsecase) ApplyEvent(ctx context.Context, userUUID string, source string, deltas domain.EventDeltas, card *domain.CardRef, referenceID string) (*domain.ProgressionResult, error) {
	args := m.Called(ctx, userUUID, source, deltas, card, referenceID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ProgressionResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressionUsecase) BattleVictory(ctx context.Context, subject string, req domain.BattleVictoryRequest) (*domain.ProgressionResult, error) {
	args := m.Called(ctx, subject, req)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ProgressionResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressionUsecase) DiscardCard(ctx context.Context, subject string, req domain.DiscardRequest) (*domain.ProgressionResult, error) {
	args := m.Called(ctx, subject, req)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ProgressionResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressionUsecase) GetOverview(ctx context.Context, subject string) (*domain.ProgressionOverview, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ProgressionOverview), args.Error(1)
	}
	return nil, args.Error(1)
}

// Mock для ProgressionRepository
type MockProgressionRepository struct {
	mock.Mock
}

func (m *MockProgressionRepository) GetUserBySubject(ctx context.Context, subject string) (*domain.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressionRepository) ApplyEvent(ctx context.Context, event *domain.ProgressionEvent) (*domain.ProgressionState, *domain.Wallet, error) {
	args := m.Called(ctx, event)
	var state *domain.ProgressionState
	var wallet *domain.Wallet
	if args.Get(0) != nil {
		state = args.Get(0).(*domain.ProgressionState)
	}
	if args.Get(1) != nil {
		wallet = args.Get(1).(*domain.Wallet)
	}
	return state, wallet, args.Error(2)
}

func (m *MockProgressionRepository) GetOverview(ctx context.Context, userUUID string) (*domain.ProgressionOverview, error) {
	args := m.Called(ctx, userUUID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ProgressionOverview), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProgressionRepository) ListRecentEvents(ctx context.Context, userUUID string, sources []string, limit int) ([]domain.ProgressionEvent, error) {
	args := m.Called(ctx, userUUID, sources, limit)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.ProgressionEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

// Mock для ProgressionService (используется в trials/store/decks)
type MockProgressionService struct {
	mock.Mock
}

func (m *MockProgressionService) ApplyEvent(ctx context.Context, userUUID string, source string, deltas domain.EventDeltas, card *domain.CardRef, referenceID string) (*domain.ProgressionResult, error) {
	args := m.Called(ctx, userUUID, source, deltas, card, referenceID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.ProgressionResult), args.Error(1)
	}
	return nil, args.Error(1)
}

// Mock для JWT
type MockJwtTokenService struct {
	mock.Mock
}

func (m *MockJwtTokenService) Create(claims middleware.SessionClaimsInput, tokenExpTime int64) (string, error) {
	args := m.Called(claims, tokenExpTime)
	return args.String(0), args.Error(1)
}

func (m *MockJwtTokenService) Validate(tokenString string) (*middleware.JwtSessionClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) != nil {
		return args.Get(0).(*middleware.JwtSessionClaims), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJwtTokenService) ParseSecretGetter(token *jwt.Token) (interface{}, error) {
	args := m.Called(token)
	return args.Get(0), args.Error(1)
}
