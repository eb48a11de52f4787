package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"
	"github.com/mateusw12/chaotic-game-sub002/internal/trials/usecase"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type TrialsHandler struct {
	usecase  usecase.TrialsUsecase
	jwtToken middleware.JwtTokenService
}

func NewTrialsHandler(usecase usecase.TrialsUsecase, jwtToken middleware.JwtTokenService) *TrialsHandler {
	return &TrialsHandler{
		usecase:  usecase,
		jwtToken: jwtToken,
	}
}

func (h *TrialsHandler) resolveSession(r *http.Request) (*middleware.JwtSessionClaims, error) {
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

func (h *TrialsHandler) AwardCard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	sanitizer := bluemonday.UGCPolicy()
	defer cancel()

	logger.AccessLogger.Info("Received AwardCard request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	var data domain.AwardCardRequest
	if err = json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.handleError(w, errors.New("invalid payload"), requestID)
		return
	}
	data.CardType = sanitizer.Sanitize(data.CardType)
	data.Rarity = sanitizer.Sanitize(data.Rarity)
	data.ReferenceID = sanitizer.Sanitize(data.ReferenceID)

	result, err := h.usecase.AwardCard(ctx, claims.Subject, data)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"progression": result.Progression,
		"wallet":      result.Wallet,
	}, requestID)

	logger.AccessLogger.Info("Completed AwardCard request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *TrialsHandler) ClaimPack(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	sanitizer := bluemonday.UGCPolicy()
	defer cancel()

	logger.AccessLogger.Info("Received ClaimPack request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	var data domain.ClaimPackRequest
	if err = json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.handleError(w, errors.New("invalid payload"), requestID)
		return
	}
	data.League = sanitizer.Sanitize(data.League)

	result, err := h.usecase.ClaimPack(ctx, claims.Subject, data)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"progression": result.Progression,
		"wallet":      result.Wallet,
	}, requestID)

	logger.AccessLogger.Info("Completed ClaimPack request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

// ClaimedLeagues всегда отвечает 200: при любой ошибке отдаём пустой список
func (h *TrialsHandler) ClaimedLeagues(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received ClaimedLeagues request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	leagues := make([]string, 0)
	if claims, err := h.resolveSession(r); err == nil {
		if found, err := h.usecase.ClaimedLeagues(ctx, claims.Subject); err == nil {
			leagues = found
		} else {
			logger.AccessLogger.Warn("ClaimedLeagues degraded to empty list",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
		}
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"leagues": leagues,
	}, requestID)

	logger.AccessLogger.Info("Completed ClaimedLeagues request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *TrialsHandler) respond(w http.ResponseWriter, status int, body map[string]interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.AccessLogger.Error("Failed to encode response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

func (h *TrialsHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	logger.AccessLogger.Error("Handling error",
		zap.String("request_id", requestID),
		zap.Error(err),
	)

	w.Header().Set("Content-Type", "application/json")
	errorResponse := map[string]interface{}{"success": false, "error": err.Error()}

	switch err.Error() {
	case "invalid payload", "missing card id", "missing card type", "invalid card type",
		"invalid rarity", "invalid league", "pack already claimed",
		"amount must be greater than 0", "Input contains invalid characters",
		"Input exceeds character limit", "not enough coins", "not enough diamonds",
		"insufficient quantity":
		w.WriteHeader(http.StatusBadRequest)
	case "Invalid JWT token", "Missing JWT-Token header":
		w.WriteHeader(http.StatusUnauthorized)
	case "user not found", "card not found":
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
