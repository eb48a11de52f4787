package mocks

import (
	"context"

	"github.com/mateusw12/chaotic-game-sub002/domain"

	"github.com/stretchr/testify/mock"
)

type MockCatalogUsecase struct {
	mock.Mock
}

func (m *MockCatalogUsecase) ListCards(ctx context.Context, cardType string) ([]domain.CatalogCard, error) {
	args := m.Called(ctx, cardType)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.CatalogCard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogUsecase) CardExists(ctx context.Context, cardType string, cardID int64) (bool, error) {
	args := m.Called(ctx, cardType, cardID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogUsecase) Search(ctx context.Context, cardType string, query string) ([]domain.CatalogCard, error) {
	args := m.Called(ctx, cardType, query)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.CatalogCard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogUsecase) CreateCard(ctx context.Context, actorSubject string, cardType string, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, actorSubject, cardType, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogUsecase) UpdateCard(ctx context.Context, actorSubject string, cardType string, cardID int64, fields map[string]interface{}) error {
	args := m.Called(ctx, actorSubject, cardType, cardID, fields)
	return args.Error(0)
}

func (m *MockCatalogUsecase) DeleteCard(ctx context.Context, actorSubject string, cardType string, cardID int64) error {
	args := m.Called(ctx, actorSubject, cardType, cardID)
	return args.Error(0)
}

// Mock для CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetUserBySubject(ctx context.Context, subject string) (*domain.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogRepository) ListCards(ctx context.Context, cardType string) ([]domain.CatalogCard, error) {
	args := m.Called(ctx, cardType)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.CatalogCard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogRepository) GetCard(ctx context.Context, cardType string, cardID int64) (*domain.CatalogCard, error) {
	args := m.Called(ctx, cardType, cardID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.CatalogCard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogRepository) CreateCard(ctx context.Context, cardType string, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, cardType, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) UpdateCard(ctx context.Context, cardType string, cardID int64, fields map[string]interface{}) error {
	args := m.Called(ctx, cardType, cardID, fields)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteCard(ctx context.Context, cardType string, cardID int64) error {
	args := m.Called(ctx, cardType, cardID)
	return args.Error(0)
}
