package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	progressionmocks "github.com/mateusw12/chaotic-game-sub002/internal/progression/mocks"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/config"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/trials/mocks"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestAwardCard(t *testing.T) {
	logger.AccessLogger = zap.NewNop()

	ctx := context.Background()
	validSubject := "auth0|user123"
	user := &domain.User{UUID: "user-uuid", Subject: validSubject}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.MockTrialsRepository)
		mockProgression := new(progressionmocks.MockProgressionService)
		mockCatalog := new(mocks.MockCardCatalog)
		uc := NewTrialsUsecase(mockRepo, mockProgression, mockCatalog, config.Default().Rewards)

		card := &domain.CardRef{CardType: "creature", CardID: 12, Quantity: 1}
		result := &domain.ProgressionResult{Progression: domain.ProgressionState{TotalXP: 10, Level: 1, NextLevelAt: 100}}
		mockCatalog.On("CardExists", ctx, "creature", int64(12)).Return(true, nil)
		mockRepo.On("GetUserBySubject", ctx, validSubject).Return(user, nil)
		mockProgression.On("ApplyEvent", ctx, user.UUID, domain.SourceCardAward, domain.EventDeltas{XP: 10}, card, "trial-7").Return(result, nil)

		got, err := uc.AwardCard(ctx, validSubject, domain.AwardCardRequest{
			CardType:    "creature",
			CardID:      12,
			Rarity:      "common",
			ReferenceID: "trial-7",
		})
		assert.NoError(t, err)
		assert.Equal(t, result, got)
		mockRepo.AssertExpectations(t)
		mockProgression.AssertExpectations(t)
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Card Not In Catalog", func(t *testing.T) {
		mockRepo := new(mocks.MockTrialsRepository)
		mockProgression := new(progressionmocks.MockProgressionService)
		mockCatalog := new(mocks.MockCardCatalog)
		uc := NewTrialsUsecase(mockRepo, mockProgression, mockCatalog, config.Default().Rewards)

		mockCatalog.On("CardExists", ctx, "creature", int64(999)).Return(false, nil)

		_, err := uc.AwardCard(ctx, validSubject, domain.AwardCardRequest{
			CardType: "creature",
			CardID:   999,
			Rarity:   "common",
		})
		assert.Error(t, err)
		assert.Equal(t, "card not found", err.Error())
	})

	t.Run("Invalid Card Type", func(t *testing.T) {
		mockRepo := new(mocks.MockTrialsRepository)
		mockProgression := new(progressionmocks.MockProgressionService)
		mockCatalog := new(mocks.MockCardCatalog)
		uc := NewTrialsUsecase(mockRepo, mockProgression, mockCatalog, config.Default().Rewards)

		_, err := uc.AwardCard(ctx, validSubject, domain.AwardCardRequest{
			CardType: "spell",
			CardID:   12,
			Rarity:   "common",
		})
		assert.Error(t, err)
		assert.Equal(t, "invalid card type", err.Error())
	})

	t.Run("Invalid Rarity", func(t *testing.T) {
		mockRepo := new(mocks.MockTrialsRepository)
		mockProgression := new(progressionmocks.MockProgressionService)
		mockCatalog := new(mocks.MockCardCatalog)
		uc := NewTrialsUsecase(mockRepo, mockProgression, mockCatalog, config.Default().Rewards)

		_, err := uc.AwardCard(ctx, validSubject, domain.AwardCardRequest{
			CardType: "creature",
			CardID:   12,
			Rarity:   "mythic",
		})
		assert.Error(t, err)
		assert.Equal(t, "invalid rarity", err.Error())
	})
}

func TestClaimPack(t *testing.T) {
	logger.AccessLogger = zap.NewNop()

	ctx := context.Background()
	validSubject := "auth0|user123"
	user := &domain.User{UUID: "user-uuid", Subject: validSubject}
	rewards := config.Default().Rewards

	t.Run("Success - League Normalized To Lowercase", func(t *testing.T) {
		mockRepo := new(mocks.MockTrialsRepository)
		mockProgression := new(progressionmocks.MockProgressionService)
		mockCatalog := new(mocks.MockCardCatalog)
		uc := NewTrialsUsecase(mockRepo, mockProgression, mockCatalog, rewards)

		deltas := domain.EventDeltas{XP: 100, Coins: 150, Diamonds: 5}
		result := &domain.ProgressionResult{Wallet: domain.Wallet{Coins: 150, Diamonds: 5}}
		mockRepo.On("GetUserBySubject", ctx, validSubject).Return(user, nil)
		mockRepo.On("ListClaimEvents", ctx, user.UUID, domain.ClaimScanWindow).Return([]domain.ProgressionEvent{}, nil)
		mockProgression.On("ApplyEvent", ctx, user.UUID, domain.SourcePackClaim, deltas, (*domain.CardRef)(nil), "codex-pack:meridian").Return(result, nil)
		mockRepo.On("InvalidateClaimedLeagues", ctx, user.UUID).Return()

		got, err := uc.ClaimPack(ctx, validSubject, domain.ClaimPackRequest{League: "Meridian"})
		assert.NoError(t, err)
		assert.Equal(t, result, got)
		mockRepo.AssertExpectations(t)
		mockProgression.AssertExpectations(t)
	})

	t.Run("Already Claimed", func(t *testing.T) {
		mockRepo := new(mocks.MockTrialsRepository)
		mockProgression := new(progressionmocks.MockProgressionService)
		mockCatalog := new(mocks.MockCardCatalog)
		uc := NewTrialsUsecase(mockRepo, mockProgression, mockCatalog, rewards)

		claimed := []domain.ProgressionEvent{
			{OwnerID: user.UUID, Source: domain.SourcePackClaim, ReferenceID: "codex-pack:meridian"},
		}
		mockRepo.On("GetUserBySubject", ctx, validSubject).Return(user, nil)
		mockRepo.On("ListClaimEvents", ctx, user.UUID, domain.ClaimScanWindow).Return(claimed, nil)

		_, err := uc.ClaimPack(ctx, validSubject, domain.ClaimPackRequest{League: "meridian"})
		assert.Error(t, err)
		assert.Equal(t, "pack already claimed", err.Error())
	})

	t.Run("Longer League Name Does Not Shadow Shorter", func(t *testing.T) {
		mockRepo := new(mocks.MockTrialsRepository)
		mockProgression := new(progressionmocks.MockProgressionService)
		mockCatalog := new(mocks.MockCardCatalog)
		uc := NewTrialsUsecase(mockRepo, mockProgression, mockCatalog, rewards)

		claimed := []domain.ProgressionEvent{
			{OwnerID: user.UUID, Source: domain.SourcePackClaim, ReferenceID: "codex-pack:firestorm"},
		}
		deltas := domain.EventDeltas{XP: rewards.PackClaimXP, Coins: rewards.PackClaimCoins, Diamonds: rewards.PackClaimDiamonds}
		result := &domain.ProgressionResult{}
		mockRepo.On("GetUserBySubject", ctx, validSubject).Return(user, nil)
		mockRepo.On("ListClaimEvents", ctx, user.UUID, domain.ClaimScanWindow).Return(claimed, nil)
		mockProgression.On("ApplyEvent", ctx, user.UUID, domain.SourcePackClaim, deltas, (*domain.CardRef)(nil), "codex-pack:fire").Return(result, nil)
		mockRepo.On("InvalidateClaimedLeagues", ctx, user.UUID).Return()

		_, err := uc.ClaimPack(ctx, validSubject, domain.ClaimPackRequest{League: "fire"})
		assert.NoError(t, err)
		mockProgression.AssertExpectations(t)
	})

	t.Run("Invalid League", func(t *testing.T) {
		mockRepo := new(mocks.MockTrialsRepository)
		mockProgression := new(progressionmocks.MockProgressionService)
		mockCatalog := new(mocks.MockCardCatalog)
		uc := NewTrialsUsecase(mockRepo, mockProgression, mockCatalog, rewards)

		_, err := uc.ClaimPack(ctx, validSubject, domain.ClaimPackRequest{League: "no spaces allowed"})
		assert.Error(t, err)
		assert.Equal(t, "invalid league", err.Error())
	})

	t.Run("Storage Error Degrades To Not Claimed", func(t *testing.T) {
		mockRepo := new(mocks.MockTrialsRepository)
		mockProgression := new(progressionmocks.MockProgressionService)
		mockCatalog := new(mocks.MockCardCatalog)
		uc := NewTrialsUsecase(mockRepo, mockProgression, mockCatalog, rewards)

		deltas := domain.EventDeltas{XP: 100, Coins: 150, Diamonds: 5}
		result := &domain.ProgressionResult{}
		mockRepo.On("GetUserBySubject", ctx, validSubject).Return(user, nil)
		mockRepo.On("ListClaimEvents", ctx, user.UUID, domain.ClaimScanWindow).Return(nil, errors.New("database error"))
		mockProgression.On("ApplyEvent", ctx, user.UUID, domain.SourcePackClaim, deltas, (*domain.CardRef)(nil), "codex-pack:meridian").Return(result, nil)
		mockRepo.On("InvalidateClaimedLeagues", ctx, user.UUID).Return()

		_, err := uc.ClaimPack(ctx, validSubject, domain.ClaimPackRequest{League: "meridian"})
		assert.NoError(t, err)
		mockProgression.AssertExpectations(t)
	})
}

func TestClaimedLeagues(t *testing.T) {
	logger.AccessLogger = zap.NewNop()

	ctx := context.Background()
	validSubject := "auth0|user123"
	user := &domain.User{UUID: "user-uuid", Subject: validSubject}
	rewards := config.Default().Rewards

	t.Run("Cache Hit", func(t *testing.T) {
		mockRepo := new(mocks.MockTrialsRepository)
		mockProgression := new(progressionmocks.MockProgressionService)
		mockCatalog := new(mocks.MockCardCatalog)
		uc := NewTrialsUsecase(mockRepo, mockProgression, mockCatalog, rewards)

		mockRepo.On("GetUserBySubject", ctx, validSubject).Return(user, nil)
		mockRepo.On("CachedClaimedLeagues", ctx, user.UUID).Return([]string{"meridian", "ashkar"}, true)

		leagues, err := uc.ClaimedLeagues(ctx, validSubject)
		assert.NoError(t, err)
		assert.Equal(t, []string{"meridian", "ashkar"}, leagues)
		mockRepo.AssertNotCalled(t, "ListClaimEvents")
	})

	t.Run("Cache Miss - Scan Dedupes And Stores", func(t *testing.T) {
		mockRepo := new(mocks.MockTrialsRepository)
		mockProgression := new(progressionmocks.MockProgressionService)
		mockCatalog := new(mocks.MockCardCatalog)
		uc := NewTrialsUsecase(mockRepo, mockProgression, mockCatalog, rewards)

		events := []domain.ProgressionEvent{
			{Source: domain.SourcePackClaim, ReferenceID: "codex-pack:meridian"},
			{Source: domain.SourceCardAward, ReferenceID: "trial-7"},
			{Source: domain.SourcePackClaim, ReferenceID: "codex-pack:Meridian"},
			{Source: domain.SourcePackClaim, ReferenceID: "codex-pack:ashkar"},
		}
		mockRepo.On("GetUserBySubject", ctx, validSubject).Return(user, nil)
		mockRepo.On("CachedClaimedLeagues", ctx, user.UUID).Return(nil, false)
		mockRepo.On("ListClaimEvents", ctx, user.UUID, domain.ClaimScanWindow).Return(events, nil)
		mockRepo.On("StoreClaimedLeagues", ctx, user.UUID, []string{"meridian", "ashkar"}).Return()

		leagues, err := uc.ClaimedLeagues(ctx, validSubject)
		assert.NoError(t, err)
		assert.Equal(t, []string{"meridian", "ashkar"}, leagues)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid Subject", func(t *testing.T) {
		mockRepo := new(mocks.MockTrialsRepository)
		mockProgression := new(progressionmocks.MockProgressionService)
		mockCatalog := new(mocks.MockCardCatalog)
		uc := NewTrialsUsecase(mockRepo, mockProgression, mockCatalog, rewards)

		_, err := uc.ClaimedLeagues(ctx, "/invalid~user")
		assert.Error(t, err)
		assert.Equal(t, "Input contains invalid characters", err.Error())
	})
}
