package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const recentEventsWindow = 20

type progressionRepository struct {
	db *gorm.DB
}

func NewProgressionRepository(db *gorm.DB) domain.ProgressionRepository {
	return &progressionRepository{
		db: db,
	}
}

func (r *progressionRepository) GetUserBySubject(ctx context.Context, subject string) (*domain.User, error) {
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

// ApplyEvent пишет событие и пересчитывает агрегаты одной транзакцией
func (r *progressionRepository) ApplyEvent(ctx context.Context, event *domain.ProgressionEvent) (*domain.ProgressionState, *domain.Wallet, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("ApplyEvent called",
		zap.String("request_id", requestID),
		zap.String("owner_id", event.OwnerID),
		zap.String("source", event.Source),
	)

	var state domain.ProgressionState
	var wallet domain.Wallet

	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event.CreatedAt = time.Now()
		if err := tx.Create(event).Error; err != nil {
			logger.DBLogger.Error("Failed to create progression event", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to create progression event")
		}

		if err := tx.Where("owner_id = ?", event.OwnerID).First(&state).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logger.DBLogger.Error("Failed to fetch progression state", zap.String("request_id", requestID), zap.Error(err))
				return errors.New("failed to fetch progression state")
			}
			state = domain.ProgressionState{OwnerID: event.OwnerID}
		}

		state.TotalXP += event.XPDelta
		if state.TotalXP < 0 {
			state.TotalXP = 0
		}
		state.Level, state.LevelFloor, state.NextLevelAt = domain.LevelForXP(state.TotalXP)

		if err := tx.Exec(`
			INSERT INTO `+domain.ProgressionState{}.TableName()+` (owner_id, total_xp, level, level_floor, next_level_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (owner_id)
			DO UPDATE SET total_xp = ?, level = ?, level_floor = ?, next_level_at = ?
		`, event.OwnerID, state.TotalXP, state.Level, state.LevelFloor, state.NextLevelAt,
			state.TotalXP, state.Level, state.LevelFloor, state.NextLevelAt).Error; err != nil {
			logger.DBLogger.Error("Failed to upsert progression state", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to update progression state")
		}

		if err := tx.Where("owner_id = ?", event.OwnerID).First(&wallet).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logger.DBLogger.Error("Failed to fetch wallet", zap.String("request_id", requestID), zap.Error(err))
				return errors.New("failed to fetch wallet")
			}
			wallet = domain.Wallet{OwnerID: event.OwnerID}
		}

		wallet.Coins += event.CoinsDelta
		wallet.Diamonds += event.DiamondsDelta
		if wallet.Coins < 0 {
			logger.DBLogger.Warn("Not enough coins", zap.String("request_id", requestID), zap.String("owner_id", event.OwnerID))
			return errors.New("not enough coins")
		}
		if wallet.Diamonds < 0 {
			logger.DBLogger.Warn("Not enough diamonds", zap.String("request_id", requestID), zap.String("owner_id", event.OwnerID))
			return errors.New("not enough diamonds")
		}

		if err := tx.Exec(`
			INSERT INTO `+domain.Wallet{}.TableName()+` (owner_id, coins, diamonds)
			VALUES (?, ?, ?)
			ON CONFLICT (owner_id)
			DO UPDATE SET coins = ?, diamonds = ?
		`, event.OwnerID, wallet.Coins, wallet.Diamonds, wallet.Coins, wallet.Diamonds).Error; err != nil {
			logger.DBLogger.Error("Failed to upsert wallet", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to update wallet")
		}

		if event.CardType != "" {
			var card domain.UserCard
			held := 0
			if err := tx.Where("owner_id = ? AND card_type = ? AND card_id = ?",
				event.OwnerID, event.CardType, event.CardID).First(&card).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					logger.DBLogger.Error("Failed to fetch user card", zap.String("request_id", requestID), zap.Error(err))
					return errors.New("failed to fetch user card")
				}
			} else {
				held = card.Quantity
			}

			quantity := held + event.QuantityDelta
			if quantity < 0 {
				logger.DBLogger.Warn("Insufficient quantity",
					zap.String("request_id", requestID),
					zap.String("owner_id", event.OwnerID),
					zap.String("card_type", event.CardType),
					zap.Int64("card_id", event.CardID),
				)
				return errors.New("insufficient quantity")
			}

			if err := tx.Exec(`
				INSERT INTO `+domain.UserCard{}.TableName()+` (owner_id, card_type, card_id, quantity)
				VALUES (?, ?, ?, ?)
				ON CONFLICT (owner_id, card_type, card_id)
				DO UPDATE SET quantity = ?
			`, event.OwnerID, event.CardType, event.CardID, quantity, quantity).Error; err != nil {
				logger.DBLogger.Error("Failed to upsert user card", zap.String("request_id", requestID), zap.Error(err))
				return errors.New("failed to update user card")
			}
		}

		return nil
	}); err != nil {
		return nil, nil, err
	}

	logger.DBLogger.Info("Event applied",
		zap.String("request_id", requestID),
		zap.String("owner_id", event.OwnerID),
		zap.String("source", event.Source),
		zap.Int64("xp_delta", event.XPDelta),
		zap.Int64("coins_delta", event.CoinsDelta),
	)
	return &state, &wallet, nil
}

func (r *progressionRepository) GetOverview(ctx context.Context, userUUID string) (*domain.ProgressionOverview, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("GetOverview called", zap.String("request_id", requestID), zap.String("owner_id", userUUID))

	var overview domain.ProgressionOverview

	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var state domain.ProgressionState
		if err := tx.Where("owner_id = ?", userUUID).First(&state).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logger.DBLogger.Error("Failed to fetch progression state", zap.String("request_id", requestID), zap.Error(err))
				return errors.New("failed to fetch progression state")
			}
			state = domain.ProgressionState{OwnerID: userUUID, Level: 1, NextLevelAt: domain.LevelBaseXP}
		}

		var wallet domain.Wallet
		if err := tx.Where("owner_id = ?", userUUID).First(&wallet).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logger.DBLogger.Error("Failed to fetch wallet", zap.String("request_id", requestID), zap.Error(err))
				return errors.New("failed to fetch wallet")
			}
			wallet = domain.Wallet{OwnerID: userUUID}
		}

		var events []domain.ProgressionEvent
		if err := tx.Where("owner_id = ?", userUUID).
			Order("created_at DESC").
			Limit(recentEventsWindow).
			Find(&events).Error; err != nil {
			logger.DBLogger.Error("Failed to fetch progression events", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to fetch progression events")
		}

		overview = domain.ProgressionOverview{
			Progression:  state,
			Wallet:       wallet,
			RecentEvents: events,
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return &overview, nil
}

func (r *progressionRepository) ListRecentEvents(ctx context.Context, userUUID string, sources []string, limit int) ([]domain.ProgressionEvent, error) {
	requestID := middleware.GetRequestID(ctx)

	query := r.db.WithContext(ctx).Where("owner_id = ?", userUUID)
	if len(sources) > 0 {
		query = query.Where("source IN ?", sources)
	}

	var events []domain.ProgressionEvent
	if err := query.Order("created_at DESC").Limit(limit).Find(&events).Error; err != nil {
		logger.DBLogger.Error("Failed to fetch progression events", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to fetch progression events")
	}
	return events, nil
}
