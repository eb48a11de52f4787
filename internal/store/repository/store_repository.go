package repository

import (
	"context"
	"errors"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) domain.StoreRepository {
	return &storeRepository{
		db: db,
	}
}

func (r *storeRepository) GetUserBySubject(ctx context.Context, subject string) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)
	var user domain.User
	if err := r.db.WithContext(ctx).Where("subject = ?", subject).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.DBLogger.Warn("User not found", zap.String("request_id", requestID), zap.String("subject", subject))
			return nil, errors.New("user not found")
		}
		logger.DBLogger.Error("Failed to get user", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to fetch user")
	}
	return &user, nil
}

func (r *storeRepository) ListActivePacks(ctx context.Context) ([]domain.StorePack, error) {
	requestID := middleware.GetRequestID(ctx)

	var packs []domain.StorePack
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("price_coins ASC").Find(&packs).Error; err != nil {
		logger.DBLogger.Error("Failed to list store packs", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to list store packs")
	}
	return packs, nil
}

func (r *storeRepository) GetPack(ctx context.Context, packID int64) (*domain.StorePack, error) {
	requestID := middleware.GetRequestID(ctx)

	var pack domain.StorePack
	if err := r.db.WithContext(ctx).Where("id = ?", packID).First(&pack).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.DBLogger.Warn("Pack not found", zap.String("request_id", requestID), zap.Int64("pack_id", packID))
			return nil, errors.New("pack not found")
		}
		logger.DBLogger.Error("Failed to get pack", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to fetch pack")
	}
	return &pack, nil
}

func (r *storeRepository) GetWallet(ctx context.Context, userUUID string) (*domain.Wallet, error) {
	requestID := middleware.GetRequestID(ctx)

	var wallet domain.Wallet
	if err := r.db.WithContext(ctx).Where("owner_id = ?", userUUID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// кошелёк создаётся лениво первым начислением
			return &domain.Wallet{OwnerID: userUUID}, nil
		}
		logger.DBLogger.Error("Failed to get wallet", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to fetch wallet")
	}
	return &wallet, nil
}
