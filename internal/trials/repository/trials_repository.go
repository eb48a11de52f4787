package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const claimedLeaguesTTL = 5 * time.Minute

type trialsRepository struct {
	db *gorm.DB
}

func NewTrialsRepository(db *gorm.DB) domain.TrialsRepository {
	return &trialsRepository{
		db: db,
	}
}

func (r *trialsRepository) GetUserBySubject(ctx context.Context, subject string) (*domain.User, error) {
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

func (r *trialsRepository) ListClaimEvents(ctx context.Context, userUUID string, limit int) ([]domain.ProgressionEvent, error) {
	requestID := middleware.GetRequestID(ctx)

	var events []domain.ProgressionEvent
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND source IN ?", userUUID, []string{domain.SourcePackClaim, domain.SourceCardAward}).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		logger.DBLogger.Error("Failed to fetch claim events", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to fetch claim events")
	}
	return events, nil
}

func claimedLeaguesKey(userUUID string) string {
	return "claimed-leagues:" + userUUID
}

// Кэш читается и пишется без ошибок наружу: при недоступном Redis идём в базу
func (r *trialsRepository) CachedClaimedLeagues(ctx context.Context, userUUID string) ([]string, bool) {
	if middleware.RedisClient == nil {
		return nil, false
	}
	raw, err := middleware.RedisClient.Get(ctx, claimedLeaguesKey(userUUID)).Result()
	if err != nil {
		return nil, false
	}
	var leagues []string
	if err := json.Unmarshal([]byte(raw), &leagues); err != nil {
		return nil, false
	}
	return leagues, true
}

func (r *trialsRepository) StoreClaimedLeagues(ctx context.Context, userUUID string, leagues []string) {
	if middleware.RedisClient == nil {
		return
	}
	raw, err := json.Marshal(leagues)
	if err != nil {
		return
	}
	if err := middleware.RedisClient.Set(ctx, claimedLeaguesKey(userUUID), raw, claimedLeaguesTTL).Err(); err != nil {
		logger.DBLogger.Warn("Failed to cache claimed leagues",
			zap.String("request_id", middleware.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
}

func (r *trialsRepository) InvalidateClaimedLeagues(ctx context.Context, userUUID string) {
	if middleware.RedisClient == nil {
		return
	}
	if err := middleware.RedisClient.Del(ctx, claimedLeaguesKey(userUUID)).Err(); err != nil {
		logger.DBLogger.Warn("Failed to invalidate claimed leagues",
			zap.String("request_id", middleware.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
}
