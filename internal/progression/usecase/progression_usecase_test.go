package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/progression/mocks"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/config"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestApplyEvent(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	mockRepo := new(mocks.MockProgressionRepository)
	uc := NewProgressionUsecase(mockRepo, config.Default().Rewards)

	ctx := context.Background()
	userUUID := "6d2c1f1e-0b3a-4f6e-9e5d-67f1a2b3c4d5"
	expectedState := &domain.ProgressionState{OwnerID: userUUID, TotalXP: 50, Level: 1, NextLevelAt: 100}
	expectedWallet := &domain.Wallet{OwnerID: userUUID, Coins: 25}

	t.Run("Success", func(t *testing.T) {
		expectedEvent := &domain.ProgressionEvent{
			OwnerID:     userUUID,
			Source:      domain.SourceBattleVictory,
			XPDelta:     50,
			CoinsDelta:  25,
			ReferenceID: "battle-42",
		}
		mockRepo.On("ApplyEvent", ctx, expectedEvent).Return(expectedState, expectedWallet, nil)

		result, err := uc.ApplyEvent(ctx, userUUID, domain.SourceBattleVictory, domain.EventDeltas{XP: 50, Coins: 25}, nil, "battle-42")
		assert.NoError(t, err)
		assert.Equal(t, *expectedState, result.Progression)
		assert.Equal(t, *expectedWallet, result.Wallet)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown Source", func(t *testing.T) {
		_, err := uc.ApplyEvent(ctx, userUUID, "lottery", domain.EventDeltas{XP: 10}, nil, "")
		assert.Error(t, err)
		assert.Equal(t, "invalid event source", err.Error())
	})

	t.Run("Bad Reference ID", func(t *testing.T) {
		_, err := uc.ApplyEvent(ctx, userUUID, domain.SourceBattleVictory, domain.EventDeltas{}, nil, strings.Repeat("x", 65))
		assert.Error(t, err)
		assert.Equal(t, "invalid reference id", err.Error())
	})

	t.Run("Unknown Card Type", func(t *testing.T) {
		card := &domain.CardRef{CardType: "spell", CardID: 7, Quantity: 1}
		_, err := uc.ApplyEvent(ctx, userUUID, domain.SourceCardAward, domain.EventDeltas{}, card, "")
		assert.Error(t, err)
		assert.Equal(t, "invalid card type", err.Error())
	})

	t.Run("Missing Card ID", func(t *testing.T) {
		card := &domain.CardRef{CardType: domain.CardTypeCreature, Quantity: 1}
		_, err := uc.ApplyEvent(ctx, userUUID, domain.SourceCardAward, domain.EventDeltas{}, card, "")
		assert.Error(t, err)
		assert.Equal(t, "missing card id", err.Error())
	})

	t.Run("Zero Card Quantity", func(t *testing.T) {
		card := &domain.CardRef{CardType: domain.CardTypeCreature, CardID: 7}
		_, err := uc.ApplyEvent(ctx, userUUID, domain.SourceCardAward, domain.EventDeltas{}, card, "")
		assert.Error(t, err)
		assert.Equal(t, "amount must be greater than 0", err.Error())
	})
}

func TestBattleVictory(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	mockRepo := new(mocks.MockProgressionRepository)
	uc := NewProgressionUsecase(mockRepo, config.Default().Rewards)

	ctx := context.Background()
	validSubject := "auth0|user123"
	invalidSubject := "/invalid~user"
	user := &domain.User{UUID: "6d2c1f1e-0b3a-4f6e-9e5d-67f1a2b3c4d5", Subject: validSubject}

	t.Run("Success", func(t *testing.T) {
		expectedEvent := &domain.ProgressionEvent{
			OwnerID:     user.UUID,
			Source:      domain.SourceBattleVictory,
			XPDelta:     50,
			CoinsDelta:  25,
			ReferenceID: "battle-42",
		}
		state := &domain.ProgressionState{OwnerID: user.UUID, TotalXP: 50, Level: 1, NextLevelAt: 100}
		wallet := &domain.Wallet{OwnerID: user.UUID, Coins: 25}
		mockRepo.On("GetUserBySubject", ctx, validSubject).Return(user, nil)
		mockRepo.On("ApplyEvent", ctx, expectedEvent).Return(state, wallet, nil)

		result, err := uc.BattleVictory(ctx, validSubject, domain.BattleVictoryRequest{ReferenceID: "battle-42"})
		assert.NoError(t, err)
		assert.Equal(t, int64(50), result.Progression.TotalXP)
		assert.Equal(t, int64(25), result.Wallet.Coins)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Opponent Becomes Reference", func(t *testing.T) {
		mockRepo := new(mocks.MockProgressionRepository)
		uc := NewProgressionUsecase(mockRepo, config.Default().Rewards)

		expectedEvent := &domain.ProgressionEvent{
			OwnerID:     user.UUID,
			Source:      domain.SourceBattleVictory,
			XPDelta:     50,
			CoinsDelta:  25,
			ReferenceID: "battle:rival789",
		}
		state := &domain.ProgressionState{OwnerID: user.UUID, TotalXP: 50, Level: 1, NextLevelAt: 100}
		wallet := &domain.Wallet{OwnerID: user.UUID, Coins: 25}
		mockRepo.On("GetUserBySubject", ctx, validSubject).Return(user, nil)
		mockRepo.On("ApplyEvent", ctx, expectedEvent).Return(state, wallet, nil)

		_, err := uc.BattleVictory(ctx, validSubject, domain.BattleVictoryRequest{OpponentID: "rival789"})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Explicit Reference Wins Over Opponent", func(t *testing.T) {
		mockRepo := new(mocks.MockProgressionRepository)
		uc := NewProgressionUsecase(mockRepo, config.Default().Rewards)

		expectedEvent := &domain.ProgressionEvent{
			OwnerID:     user.UUID,
			Source:      domain.SourceBattleVictory,
			XPDelta:     50,
			CoinsDelta:  25,
			ReferenceID: "battle-42",
		}
		state := &domain.ProgressionState{OwnerID: user.UUID}
		wallet := &domain.Wallet{OwnerID: user.UUID}
		mockRepo.On("GetUserBySubject", ctx, validSubject).Return(user, nil)
		mockRepo.On("ApplyEvent", ctx, expectedEvent).Return(state, wallet, nil)

		_, err := uc.BattleVictory(ctx, validSubject, domain.BattleVictoryRequest{OpponentID: "rival789", ReferenceID: "battle-42"})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid Subject", func(t *testing.T) {
		_, err := uc.BattleVictory(ctx, invalidSubject, domain.BattleVictoryRequest{})
		assert.Error(t, err)
		assert.Equal(t, "Input contains invalid characters", err.Error())
	})

	t.Run("User Not Found", func(t *testing.T) {
		mockRepo := new(mocks.MockProgressionRepository)
		uc := NewProgressionUsecase(mockRepo, config.Default().Rewards)
		mockRepo.On("GetUserBySubject", ctx, validSubject).Return(nil, errors.New("user not found"))

		_, err := uc.BattleVictory(ctx, validSubject, domain.BattleVictoryRequest{})
		assert.Error(t, err)
		assert.Equal(t, "user not found", err.Error())
	})
}

func TestDiscardCard(t *testing.T) {
	logger.AccessLogger = zap.NewNop()

	ctx := context.Background()
	validSubject := "auth0|user123"
	user := &domain.User{UUID: "6d2c1f1e-0b3a-4f6e-9e5d-67f1a2b3c4d5", Subject: validSubject}

	t.Run("Success - Default Quantity Refunds Sell Value", func(t *testing.T) {
		mockRepo := new(mocks.MockProgressionRepository)
		uc := NewProgressionUsecase(mockRepo, config.Default().Rewards)

		expectedEvent := &domain.ProgressionEvent{
			OwnerID:       user.UUID,
			Source:        domain.SourceCardDiscard,
			CoinsDelta:    5,
			CardType:      domain.CardTypeCreature,
			CardID:        12,
			QuantityDelta: -1,
		}
		state := &domain.ProgressionState{OwnerID: user.UUID, Level: 1, NextLevelAt: 100}
		wallet := &domain.Wallet{OwnerID: user.UUID, Coins: 5}
		mockRepo.On("GetUserBySubject", ctx, validSubject).Return(user, nil)
		mockRepo.On("ApplyEvent", ctx, expectedEvent).Return(state, wallet, nil)

		result, err := uc.DiscardCard(ctx, validSubject, domain.DiscardRequest{
			CardType: domain.CardTypeCreature,
			CardID:   12,
			Rarity:   "common",
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(5), result.Wallet.Coins)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Rare Batch", func(t *testing.T) {
		mockRepo := new(mocks.MockProgressionRepository)
		uc := NewProgressionUsecase(mockRepo, config.Default().Rewards)

		expectedEvent := &domain.ProgressionEvent{
			OwnerID:       user.UUID,
			Source:        domain.SourceCardDiscard,
			CoinsDelta:    domain.SellValues["rare"] * 3,
			CardType:      domain.CardTypeAttack,
			CardID:        4,
			QuantityDelta: -3,
		}
		state := &domain.ProgressionState{OwnerID: user.UUID, Level: 1, NextLevelAt: 100}
		wallet := &domain.Wallet{OwnerID: user.UUID, Coins: domain.SellValues["rare"] * 3}
		mockRepo.On("GetUserBySubject", ctx, validSubject).Return(user, nil)
		mockRepo.On("ApplyEvent", ctx, expectedEvent).Return(state, wallet, nil)

		_, err := uc.DiscardCard(ctx, validSubject, domain.DiscardRequest{
			CardType: domain.CardTypeAttack,
			CardID:   4,
			Rarity:   "rare",
			Quantity: 3,
		})
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing Card Type", func(t *testing.T) {
		mockRepo := new(mocks.MockProgressionRepository)
		uc := NewProgressionUsecase(mockRepo, config.Default().Rewards)

		_, err := uc.DiscardCard(ctx, validSubject, domain.DiscardRequest{CardID: 12, Rarity: "common"})
		assert.Error(t, err)
		assert.Equal(t, "missing card type", err.Error())
	})

	t.Run("Invalid Rarity", func(t *testing.T) {
		mockRepo := new(mocks.MockProgressionRepository)
		uc := NewProgressionUsecase(mockRepo, config.Default().Rewards)

		_, err := uc.DiscardCard(ctx, validSubject, domain.DiscardRequest{
			CardType: domain.CardTypeCreature,
			CardID:   12,
			Rarity:   "legendary",
		})
		assert.Error(t, err)
		assert.Equal(t, "invalid rarity", err.Error())
	})

	t.Run("Negative Quantity", func(t *testing.T) {
		mockRepo := new(mocks.MockProgressionRepository)
		uc := NewProgressionUsecase(mockRepo, config.Default().Rewards)

		_, err := uc.DiscardCard(ctx, validSubject, domain.DiscardRequest{
			CardType: domain.CardTypeCreature,
			CardID:   12,
			Rarity:   "common",
			Quantity: -2,
		})
		assert.Error(t, err)
		assert.Equal(t, "amount must be greater than 0", err.Error())
	})
}

func TestGetOverview(t *testing.T) {
	logger.AccessLogger = zap.NewNop()
	mockRepo := new(mocks.MockProgressionRepository)
	uc := NewProgressionUsecase(mockRepo, config.Default().Rewards)

	ctx := context.Background()
	validSubject := "auth0|user123"
	user := &domain.User{UUID: "6d2c1f1e-0b3a-4f6e-9e5d-67f1a2b3c4d5", Subject: validSubject}
	expectedOverview := &domain.ProgressionOverview{
		Progression: domain.ProgressionState{OwnerID: user.UUID, TotalXP: 150, Level: 2, LevelFloor: 100, NextLevelAt: 250},
		Wallet:      domain.Wallet{OwnerID: user.UUID, Coins: 75, Diamonds: 5},
		RecentEvents: []domain.ProgressionEvent{
			{OwnerID: user.UUID, Source: domain.SourceBattleVictory, XPDelta: 50, CoinsDelta: 25},
		},
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo.On("GetUserBySubject", ctx, validSubject).Return(user, nil)
		mockRepo.On("GetOverview", ctx, user.UUID).Return(expectedOverview, nil)

		overview, err := uc.GetOverview(ctx, validSubject)
		assert.NoError(t, err)
		assert.Equal(t, expectedOverview, overview)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid Subject", func(t *testing.T) {
		_, err := uc.GetOverview(ctx, "/invalid~user")
		assert.Error(t, err)
		assert.Equal(t, "Input contains invalid characters", err.Error())
	})
}

func TestLevelForXP(t *testing.T) {
	t.Run("Fresh Account", func(t *testing.T) {
		level, floor, next := domain.LevelForXP(0)
		assert.Equal(t, 1, level)
		assert.Equal(t, int64(0), floor)
		assert.Equal(t, int64(100), next)
	})

	t.Run("Exact Threshold Levels Up", func(t *testing.T) {
		level, floor, next := domain.LevelForXP(100)
		assert.Equal(t, 2, level)
		assert.Equal(t, int64(100), floor)
		assert.Equal(t, int64(250), next)
	})

	t.Run("Mid Level", func(t *testing.T) {
		level, floor, next := domain.LevelForXP(300)
		assert.Equal(t, 3, level)
		assert.Equal(t, int64(250), floor)
		assert.Equal(t, int64(450), next)
	})
}
