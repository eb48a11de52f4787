package mocks

import (
	"context"

	"github.com/mateusw12/chaotic-game-sub002/domain"

	"github.com/stretchr/testify/mock"
)

type MockDecksUsecase struct {
	mock.Mock
}

func (m *MockDecksUsecase) ListCollection(ctx context.Context, subject string) ([]domain.UserCard, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.UserCard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDecksUsecase) ListDecks(ctx context.Context, subject string) ([]domain.DeckWithCards, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.DeckWithCards), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDecksUsecase) CreateDeck(ctx context.Context, subject string, name string) (*domain.Deck, error) {
	args := m.Called(ctx, subject, name)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDecksUsecase) AddCard(ctx context.Context, subject string, deckID int64, req domain.AddDeckCardRequest) error {
	args := m.Called(ctx, subject, deckID, req)
	return args.Error(0)
}

func (m *MockDecksUsecase) RemoveCard(ctx context.Context, subject string, deckID int64, cardType string, cardID int64) error {
	args := m.Called(ctx, subject, deckID, cardType, cardID)
	return args.Error(0)
}

// Mock для CollectionRepository
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) GetUserBySubject(ctx context.Context, subject string) (*domain.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollectionRepository) ListUserCards(ctx context.Context, userUUID string) ([]domain.UserCard, error) {
	args := m.Called(ctx, userUUID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.UserCard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollectionRepository) ListDecks(ctx context.Context, userUUID string) ([]domain.Deck, error) {
	args := m.Called(ctx, userUUID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollectionRepository) CreateDeck(ctx context.Context, userUUID string, name string) (*domain.Deck, error) {
	args := m.Called(ctx, userUUID, name)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollectionRepository) GetDeck(ctx context.Context, deckID int64) (*domain.Deck, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) != nil {
		return args.Get(0).(*domain.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollectionRepository) ListDeckCards(ctx context.Context, deckID int64) ([]domain.DeckCard, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.DeckCard), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCollectionRepository) AddDeckCard(ctx context.Context, deckID int64, cardType string, cardID int64, quantity int) error {
	args := m.Called(ctx, deckID, cardType, cardID, quantity)
	return args.Error(0)
}

func (m *MockCollectionRepository) RemoveDeckCard(ctx context.Context, deckID int64, cardType string, cardID int64) (int, error) {
	args := m.Called(ctx, deckID, cardType, cardID)
	return args.Int(0), args.Error(1)
}
