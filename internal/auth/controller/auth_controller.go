package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/auth/usecase"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"

	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type AuthHandler struct {
	usecase  usecase.AuthUsecase
	jwtToken middleware.JwtTokenService
}

func NewAuthHandler(usecase usecase.AuthUsecase, jwtToken middleware.JwtTokenService) *AuthHandler {
	return &AuthHandler{
		usecase:  usecase,
		jwtToken: jwtToken,
	}
}

func (h *AuthHandler) resolveSession(r *http.Request) (*middleware.JwtSessionClaims, error) {
	authHeader := r.Header.Get("JWT-Token")
	if authHeader == "" {
		return nil, errors.New("Missing JWT-Token header")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := h.jwtToken.Validate(tokenString)
	if err != nil {
		return nil, errors.New("Invalid JWT token")
	}
	return claims, nil
}

// SyncUser заводит или обновляет пользователя по данным сессионного токена
func (h *AuthHandler) SyncUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	sanitizer := bluemonday.UGCPolicy()
	defer cancel()

	logger.AccessLogger.Info("Received SyncUser request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	sessionClaims := domain.SessionClaims{
		Subject:  claims.Subject,
		Username: sanitizer.Sanitize(claims.Username),
		Email:    sanitizer.Sanitize(claims.Email),
	}

	user, err := h.usecase.SyncUser(ctx, sessionClaims)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	}, requestID)

	logger.AccessLogger.Info("Completed SyncUser request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received GetMe request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	user, err := h.usecase.GetMe(ctx, claims.Subject)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	}, requestID)

	logger.AccessLogger.Info("Completed GetMe request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received ListUsers request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	users, err := h.usecase.ListUsers(ctx, claims.Subject)
	if err != nil {
		// тело с пустым списком: админский список не отдаёт частичных данных
		h.handleErrorWithBody(w, err, requestID, map[string]interface{}{"users": []domain.User{}})
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   users,
	}, requestID)

	logger.AccessLogger.Info("Completed ListUsers request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *AuthHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	sanitizer := bluemonday.UGCPolicy()
	defer cancel()

	logger.AccessLogger.Info("Received UpdateUserRole request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	var data struct {
		Role string `json:"role"`
	}
	if err = json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.handleError(w, errors.New("invalid payload"), requestID)
		return
	}
	data.Role = sanitizer.Sanitize(data.Role)
	targetUUID := mux.Vars(r)["id"]

	user, err := h.usecase.UpdateUserRole(ctx, claims.Subject, targetUUID, data.Role)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	}, requestID)

	logger.AccessLogger.Info("Completed UpdateUserRole request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *AuthHandler) respond(w http.ResponseWriter, status int, body map[string]interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.AccessLogger.Error("Failed to encode response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

func (h *AuthHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	h.handleErrorWithBody(w, err, requestID, nil)
}

func (h *AuthHandler) handleErrorWithBody(w http.ResponseWriter, err error, requestID string, extra map[string]interface{}) {
	logger.AccessLogger.Error("Handling error",
		zap.String("request_id", requestID),
		zap.Error(err),
	)

	w.Header().Set("Content-Type", "application/json")
	errorResponse := map[string]interface{}{"success": false, "error": err.Error()}
	for key, value := range extra {
		errorResponse[key] = value
	}

	switch err.Error() {
	case "invalid payload", "invalid role", "Input contains invalid characters",
		"Input exceeds character limit":
		w.WriteHeader(http.StatusBadRequest)
	case "Invalid JWT token", "Missing JWT-Token header":
		w.WriteHeader(http.StatusUnauthorized)
	case "forbidden":
		w.WriteHeader(http.StatusForbidden)
	case "user not found":
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}

	if jsonErr := json.NewEncoder(w).Encode(errorResponse); jsonErr != nil {
		logger.AccessLogger.Error("Failed to encode error response",
			zap.String("request_id", requestID),
			zap.Error(jsonErr),
		)
		http.Error(w, jsonErr.Error(), http.StatusInternalServerError)
	}
}
