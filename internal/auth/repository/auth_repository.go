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

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) domain.AuthRepository {
	return &authRepository{
		db: db,
	}
}

// SyncUser создаёт пользователя при первом входе и обновляет профиль при каждом следующем
func (r *authRepository) SyncUser(ctx context.Context, claims domain.SessionClaims) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("SyncUser called", zap.String("request_id", requestID), zap.String("subject", claims.Subject))

	var user domain.User
	if err := r.db.WithContext(ctx).Where("subject = ?", claims.Subject).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.DBLogger.Error("Failed to get user", zap.String("request_id", requestID), zap.Error(err))
			return nil, errors.New("failed to fetch user")
		}

		user = domain.User{
			Subject:    claims.Subject,
			Username:   claims.Username,
			Email:      claims.Email,
			Role:       domain.RoleUser,
			LastSeenAt: time.Now(),
		}
		if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
			logger.DBLogger.Error("Failed to create user", zap.String("request_id", requestID), zap.Error(err))
			return nil, errors.New("failed to create user")
		}
		logger.DBLogger.Info("User created", zap.String("request_id", requestID), zap.String("uuid", user.UUID))
		return &user, nil
	}

	updates := map[string]interface{}{
		"username":     claims.Username,
		"email":        claims.Email,
		"last_seen_at": time.Now(),
	}
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("uuid = ?", user.UUID).Updates(updates).Error; err != nil {
		logger.DBLogger.Error("Failed to update user", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to update user")
	}

	user.Username = claims.Username
	user.Email = claims.Email
	logger.DBLogger.Info("User synced", zap.String("request_id", requestID), zap.String("uuid", user.UUID))
	return &user, nil
}

func (r *authRepository) GetUserBySubject(ctx context.Context, subject string) (*domain.User, error) {
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

func (r *authRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	requestID := middleware.GetRequestID(ctx)

	var users []domain.User
	if err := r.db.WithContext(ctx).Order("last_seen_at DESC").Find(&users).Error; err != nil {
		logger.DBLogger.Error("Failed to list users", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to list users")
	}
	return users, nil
}

func (r *authRepository) UpdateUserRole(ctx context.Context, userUUID string, role string) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("UpdateUserRole called", zap.String("request_id", requestID), zap.String("uuid", userUUID), zap.String("role", role))

	var user domain.User
	if err := r.db.WithContext(ctx).Where("uuid = ?", userUUID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.DBLogger.Warn("User not found", zap.String("request_id", requestID), zap.String("uuid", userUUID))
			return nil, errors.New("user not found")
		}
		logger.DBLogger.Error("Failed to get user", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to fetch user")
	}

	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("uuid = ?", userUUID).Update("role", role).Error; err != nil {
		logger.DBLogger.Error("Failed to update role", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to update role")
	}

	user.Role = role
	return &user, nil
}
