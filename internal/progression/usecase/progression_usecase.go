package usecase

import (
	"context"
	"errors"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/config"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/validation"

	"go.uber.org/zap"
)

type ProgressionUsecase interface {
	domain.ProgressionService
	BattleVictory(ctx context.Context, subject string, req domain.BattleVictoryRequest) (*domain.ProgressionResult, error)
	DiscardCard(ctx context.Context, subject string, req domain.DiscardRequest) (*domain.ProgressionResult, error)
	GetOverview(ctx context.Context, subject string) (*domain.ProgressionOverview, error)
}

type progressionUsecase struct {
	progressionRepository domain.ProgressionRepository
	rewards               config.RewardsConfig
}

func NewProgressionUsecase(progressionRepository domain.ProgressionRepository, rewards config.RewardsConfig) ProgressionUsecase {
	return &progressionUsecase{
		progressionRepository: progressionRepository,
		rewards:               rewards,
	}
}

// ApplyEvent — единая точка записи наград и списаний
func (uc *progressionUsecase) ApplyEvent(ctx context.Context, userUUID string, source string, deltas domain.EventDeltas, card *domain.CardRef, referenceID string) (*domain.ProgressionResult, error) {
	requestID := middleware.GetRequestID(ctx)

	if !domain.EventSources[source] {
		logger.AccessLogger.Warn("Unknown event source", zap.String("request_id", requestID), zap.String("source", source))
		return nil, errors.New("invalid event source")
	}
	if !validation.ValidateReferenceID(referenceID) {
		logger.AccessLogger.Warn("Bad reference id", zap.String("request_id", requestID))
		return nil, errors.New("invalid reference id")
	}

	event := &domain.ProgressionEvent{
		OwnerID:       userUUID,
		Source:        source,
		XPDelta:       deltas.XP,
		CoinsDelta:    deltas.Coins,
		DiamondsDelta: deltas.Diamonds,
		ReferenceID:   referenceID,
	}

	if card != nil {
		if !domain.CardTypes[card.CardType] {
			logger.AccessLogger.Warn("Unknown card type", zap.String("request_id", requestID), zap.String("card_type", card.CardType))
			return nil, errors.New("invalid card type")
		}
		if card.CardID <= 0 {
			logger.AccessLogger.Warn("Missing card id", zap.String("request_id", requestID))
			return nil, errors.New("missing card id")
		}
		if card.Quantity == 0 {
			logger.AccessLogger.Warn("Zero card quantity", zap.String("request_id", requestID))
			return nil, errors.New("amount must be greater than 0")
		}
		event.CardType = card.CardType
		event.CardID = card.CardID
		event.QuantityDelta = card.Quantity
	}

	state, wallet, err := uc.progressionRepository.ApplyEvent(ctx, event)
	if err != nil {
		return nil, err
	}

	return &domain.ProgressionResult{Progression: *state, Wallet: *wallet}, nil
}

func (uc *progressionUsecase) BattleVictory(ctx context.Context, subject string, req domain.BattleVictoryRequest) (*domain.ProgressionResult, error) {
	requestID := middleware.GetRequestID(ctx)

	if !validation.ValidateSubject(subject) {
		logger.AccessLogger.Warn("Input contains invalid characters", zap.String("request_id", requestID))
		return nil, errors.New("Input contains invalid characters")
	}

	user, err := uc.progressionRepository.GetUserBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}

	deltas := domain.EventDeltas{
		XP:    uc.rewards.BattleVictoryXP,
		Coins: uc.rewards.BattleVictoryCoins,
	}
	// без явного reference id побеждённый соперник сам служит ссылкой события
	referenceID := req.ReferenceID
	if referenceID == "" && req.OpponentID != "" {
		referenceID = "battle:" + req.OpponentID
	}
	return uc.ApplyEvent(ctx, user.UUID, domain.SourceBattleVictory, deltas, nil, referenceID)
}

func (uc *progressionUsecase) DiscardCard(ctx context.Context, subject string, req domain.DiscardRequest) (*domain.ProgressionResult, error) {
	requestID := middleware.GetRequestID(ctx)

	if !validation.ValidateSubject(subject) {
		logger.AccessLogger.Warn("Input contains invalid characters", zap.String("request_id", requestID))
		return nil, errors.New("Input contains invalid characters")
	}
	if req.CardType == "" {
		return nil, errors.New("missing card type")
	}
	if !domain.CardTypes[req.CardType] {
		return nil, errors.New("invalid card type")
	}
	if req.CardID <= 0 {
		return nil, errors.New("missing card id")
	}
	if !domain.Rarities[req.Rarity] {
		return nil, errors.New("invalid rarity")
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1 // по умолчанию сбрасывается одна карта
	}
	if quantity < 0 {
		return nil, errors.New("amount must be greater than 0")
	}

	user, err := uc.progressionRepository.GetUserBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}

	refund := domain.SellValues[req.Rarity] * int64(quantity)
	deltas := domain.EventDeltas{Coins: refund}
	card := &domain.CardRef{
		CardType: req.CardType,
		CardID:   req.CardID,
		Quantity: -quantity,
	}
	return uc.ApplyEvent(ctx, user.UUID, domain.SourceCardDiscard, deltas, card, "")
}

func (uc *progressionUsecase) GetOverview(ctx context.Context, subject string) (*domain.ProgressionOverview, error) {
	requestID := middleware.GetRequestID(ctx)

	if !validation.ValidateSubject(subject) {
		logger.AccessLogger.Warn("Input contains invalid characters", zap.String("request_id", requestID))
		return nil, errors.New("Input contains invalid characters")
	}

	user, err := uc.progressionRepository.GetUserBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}

	return uc.progressionRepository.GetOverview(ctx, user.UUID)
}
