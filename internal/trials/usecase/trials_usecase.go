package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/config"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/validation"

	"go.uber.org/zap"
)

type TrialsUsecase interface {
	AwardCard(ctx context.Context, subject string, req domain.AwardCardRequest) (*domain.ProgressionResult, error)
	ClaimPack(ctx context.Context, subject string, req domain.ClaimPackRequest) (*domain.ProgressionResult, error)
	ClaimedLeagues(ctx context.Context, subject string) ([]string, error)
	IsClaimed(ctx context.Context, userUUID string, league string) bool
}

type trialsUsecase struct {
	trialsRepository domain.TrialsRepository
	progression      domain.ProgressionService
	catalog          domain.CardCatalog
	rewards          config.RewardsConfig
}

func NewTrialsUsecase(trialsRepository domain.TrialsRepository, progression domain.ProgressionService, catalog domain.CardCatalog, rewards config.RewardsConfig) TrialsUsecase {
	return &trialsUsecase{
		trialsRepository: trialsRepository,
		progression:      progression,
		catalog:          catalog,
		rewards:          rewards,
	}
}

func (uc *trialsUsecase) AwardCard(ctx context.Context, subject string, req domain.AwardCardRequest) (*domain.ProgressionResult, error) {
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
		quantity = 1
	}
	if quantity < 0 {
		return nil, errors.New("amount must be greater than 0")
	}

	exists, err := uc.catalog.CardExists(ctx, req.CardType, req.CardID)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.AccessLogger.Warn("Card not found in catalog",
			zap.String("request_id", requestID),
			zap.String("card_type", req.CardType),
			zap.Int64("card_id", req.CardID),
		)
		return nil, errors.New("card not found")
	}

	user, err := uc.trialsRepository.GetUserBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}

	deltas := domain.EventDeltas{XP: uc.rewards.AwardCardXP}
	card := &domain.CardRef{
		CardType: req.CardType,
		CardID:   req.CardID,
		Quantity: quantity,
	}
	return uc.progression.ApplyEvent(ctx, user.UUID, domain.SourceCardAward, deltas, card, req.ReferenceID)
}

func (uc *trialsUsecase) ClaimPack(ctx context.Context, subject string, req domain.ClaimPackRequest) (*domain.ProgressionResult, error) {
	requestID := middleware.GetRequestID(ctx)

	if !validation.ValidateSubject(subject) {
		logger.AccessLogger.Warn("Input contains invalid characters", zap.String("request_id", requestID))
		return nil, errors.New("Input contains invalid characters")
	}
	league := strings.ToLower(req.League)
	if !validation.ValidateLeague(league) {
		return nil, errors.New("invalid league")
	}

	user, err := uc.trialsRepository.GetUserBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}

	if uc.IsClaimed(ctx, user.UUID, league) {
		logger.AccessLogger.Warn("Pack already claimed",
			zap.String("request_id", requestID),
			zap.String("league", league),
		)
		return nil, errors.New("pack already claimed")
	}

	deltas := domain.EventDeltas{
		XP:       uc.rewards.PackClaimXP,
		Coins:    uc.rewards.PackClaimCoins,
		Diamonds: uc.rewards.PackClaimDiamonds,
	}
	result, err := uc.progression.ApplyEvent(ctx, user.UUID, domain.SourcePackClaim, deltas, nil, domain.PackClaimReferencePrefix+league)
	if err != nil {
		return nil, err
	}

	uc.trialsRepository.InvalidateClaimedLeagues(ctx, user.UUID)
	return result, nil
}

func (uc *trialsUsecase) ClaimedLeagues(ctx context.Context, subject string) ([]string, error) {
	requestID := middleware.GetRequestID(ctx)

	if !validation.ValidateSubject(subject) {
		logger.AccessLogger.Warn("Input contains invalid characters", zap.String("request_id", requestID))
		return nil, errors.New("Input contains invalid characters")
	}

	user, err := uc.trialsRepository.GetUserBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}

	if leagues, ok := uc.trialsRepository.CachedClaimedLeagues(ctx, user.UUID); ok {
		return leagues, nil
	}

	events, err := uc.trialsRepository.ListClaimEvents(ctx, user.UUID, domain.ClaimScanWindow)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	leagues := make([]string, 0)
	for _, event := range events {
		reference := strings.ToLower(event.ReferenceID)
		if !strings.HasPrefix(reference, domain.PackClaimReferencePrefix) {
			continue
		}
		league := strings.TrimPrefix(reference, domain.PackClaimReferencePrefix)
		if league == "" || seen[league] {
			continue
		}
		seen[league] = true
		leagues = append(leagues, league)
	}

	uc.trialsRepository.StoreClaimedLeagues(ctx, user.UUID, leagues)
	return leagues, nil
}

// IsClaimed сканирует хвост журнала событий; при ошибке хранилища считает
// набор невыданным, чтобы не блокировать игрока на чтении
func (uc *trialsUsecase) IsClaimed(ctx context.Context, userUUID string, league string) bool {
	events, err := uc.trialsRepository.ListClaimEvents(ctx, userUUID, domain.ClaimScanWindow)
	if err != nil {
		logger.AccessLogger.Warn("Claim check degraded to not-claimed",
			zap.String("request_id", middleware.GetRequestID(ctx)),
			zap.Error(err),
		)
		return false
	}

	// точное совпадение: приставка "fire" не должна засчитывать "firestorm"
	needle := domain.PackClaimReferencePrefix + strings.ToLower(league)
	for _, event := range events {
		if strings.EqualFold(event.ReferenceID, needle) {
			return true
		}
	}
	return false
}
