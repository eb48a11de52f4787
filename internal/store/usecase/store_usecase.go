package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/validation"

	"go.uber.org/zap"
)

type StoreUsecase interface {
	GetStoreFront(ctx context.Context, subject string) (*domain.StoreFront, error)
	PurchasePack(ctx context.Context, subject string, packID int64) (*domain.ProgressionResult, error)
}

type storeUsecase struct {
	storeRepository domain.StoreRepository
	progression     domain.ProgressionService
}

func NewStoreUsecase(storeRepository domain.StoreRepository, progression domain.ProgressionService) StoreUsecase {
	return &storeUsecase{
		storeRepository: storeRepository,
		progression:     progression,
	}
}

func (uc *storeUsecase) GetStoreFront(ctx context.Context, subject string) (*domain.StoreFront, error) {
	requestID := middleware.GetRequestID(ctx)

	if !validation.ValidateSubject(subject) {
		logger.AccessLogger.Warn("Input contains invalid characters", zap.String("request_id", requestID))
		return nil, errors.New("Input contains invalid characters")
	}

	user, err := uc.storeRepository.GetUserBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}

	packs, err := uc.storeRepository.ListActivePacks(ctx)
	if err != nil {
		return nil, err
	}

	wallet, err := uc.storeRepository.GetWallet(ctx, user.UUID)
	if err != nil {
		return nil, err
	}

	return &domain.StoreFront{Packs: packs, Wallet: *wallet}, nil
}

// PurchasePack списывает цену набора; сами карты выдаются отдельными
// card_award-событиями после вскрытия
func (uc *storeUsecase) PurchasePack(ctx context.Context, subject string, packID int64) (*domain.ProgressionResult, error) {
	requestID := middleware.GetRequestID(ctx)

	if !validation.ValidateSubject(subject) {
		logger.AccessLogger.Warn("Input contains invalid characters", zap.String("request_id", requestID))
		return nil, errors.New("Input contains invalid characters")
	}
	if packID <= 0 {
		return nil, errors.New("missing pack id")
	}

	user, err := uc.storeRepository.GetUserBySubject(ctx, subject)
	if err != nil {
		return nil, err
	}

	pack, err := uc.storeRepository.GetPack(ctx, packID)
	if err != nil {
		return nil, err
	}
	if !pack.Active {
		return nil, errors.New("pack not found")
	}

	deltas := domain.EventDeltas{
		Coins:    -pack.PriceCoins,
		Diamonds: -pack.PriceDiamonds,
	}
	referenceID := fmt.Sprintf("store-pack:%d", pack.ID)
	return uc.progression.ApplyEvent(ctx, user.UUID, domain.SourcePackPurchase, deltas, nil, referenceID)
}
