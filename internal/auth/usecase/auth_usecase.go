package usecase

import (
	"context"
	"errors"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/validation"

	"go.uber.org/zap"
)

type AuthUsecase interface {
	SyncUser(ctx context.Context, claims domain.SessionClaims) (*domain.User, error)
	GetMe(ctx context.Context, subject string) (*domain.User, error)
	ListUsers(ctx context.Context, actorSubject string) ([]domain.User, error)
	UpdateUserRole(ctx context.Context, actorSubject string, userUUID string, role string) (*domain.User, error)
}

type authUsecase struct {
	authRepository domain.AuthRepository
}

func NewAuthUsecase(authRepository domain.AuthRepository) AuthUsecase {
	return &authUsecase{
		authRepository: authRepository,
	}
}

func (uc *authUsecase) SyncUser(ctx context.Context, claims domain.SessionClaims) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)
	const maxLen = 255

	if !validation.ValidateSubject(claims.Subject) {
		logger.AccessLogger.Warn("Input contains invalid characters", zap.String("request_id", requestID))
		return nil, errors.New("Input contains invalid characters")
	}
	if len(claims.Username) > maxLen || len(claims.Email) > maxLen {
		logger.AccessLogger.Warn("Input exceeds character limit", zap.String("request_id", requestID))
		return nil, errors.New("Input exceeds character limit")
	}
	if claims.Username == "" {
		claims.Username = claims.Subject
	}

	return uc.authRepository.SyncUser(ctx, claims)
}

func (uc *authUsecase) GetMe(ctx context.Context, subject string) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)

	if !validation.ValidateSubject(subject) {
		logger.AccessLogger.Warn("Input contains invalid characters", zap.String("request_id", requestID))
		return nil, errors.New("Input contains invalid characters")
	}

	return uc.authRepository.GetUserBySubject(ctx, subject)
}

// ListUsers доступен только администраторам; роль проверяется по строке в базе,
// а не по содержимому токена
func (uc *authUsecase) ListUsers(ctx context.Context, actorSubject string) ([]domain.User, error) {
	requestID := middleware.GetRequestID(ctx)

	actor, err := uc.authRepository.GetUserBySubject(ctx, actorSubject)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin {
		logger.AccessLogger.Warn("Forbidden", zap.String("request_id", requestID), zap.String("subject", actorSubject))
		return nil, errors.New("forbidden")
	}

	return uc.authRepository.ListUsers(ctx)
}

func (uc *authUsecase) UpdateUserRole(ctx context.Context, actorSubject string, userUUID string, role string) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)

	if role != domain.RoleUser && role != domain.RoleAdmin {
		logger.AccessLogger.Warn("Invalid role", zap.String("request_id", requestID), zap.String("role", role))
		return nil, errors.New("invalid role")
	}

	actor, err := uc.authRepository.GetUserBySubject(ctx, actorSubject)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin {
		logger.AccessLogger.Warn("Forbidden", zap.String("request_id", requestID), zap.String("subject", actorSubject))
		return nil, errors.New("forbidden")
	}

	return uc.authRepository.UpdateUserRole(ctx, userUUID, role)
}
