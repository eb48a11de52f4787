package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/progression/usecase"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type ProgressionHandler struct {
	usecase  usecase.ProgressionUsecase
	jwtToken middleware.JwtTokenService
}

func NewProgressionHandler(usecase usecase.ProgressionUsecase, jwtToken middleware.JwtTokenService) *ProgressionHandler {
	return &ProgressionHandler{
		usecase:  usecase,
		jwtToken: jwtToken,
	}
}

func (h *ProgressionHandler) resolveSession(r *http.Request) (*middleware.JwtSessionClaims, error) {
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

func (h *ProgressionHandler) BattleVictory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	sanitizer := bluemonday.UGCPolicy()
	defer cancel()

	logger.AccessLogger.Info("Received BattleVictory request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	var data domain.BattleVictoryRequest
	if err = json.NewDecoder(r.Body).Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		h.handleError(w, errors.New("invalid payload"), requestID)
		return
	}
	data.ReferenceID = sanitizer.Sanitize(data.ReferenceID)

	result, err := h.usecase.BattleVictory(ctx, claims.Subject, data)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"progression": result.Progression,
		"wallet":      result.Wallet,
	}, requestID)

	logger.AccessLogger.Info("Completed BattleVictory request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *ProgressionHandler) DiscardCard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	sanitizer := bluemonday.UGCPolicy()
	defer cancel()

	logger.AccessLogger.Info("Received DiscardCard request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	var data domain.DiscardRequest
	if err = json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.handleError(w, errors.New("invalid payload"), requestID)
		return
	}
	data.CardType = sanitizer.Sanitize(data.CardType)
	data.Rarity = sanitizer.Sanitize(data.Rarity)

	result, err := h.usecase.DiscardCard(ctx, claims.Subject, data)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"progression": result.Progression,
		"wallet":      result.Wallet,
	}, requestID)

	logger.AccessLogger.Info("Completed DiscardCard request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *ProgressionHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received GetOverview request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	overview, err := h.usecase.GetOverview(ctx, claims.Subject)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"progression":  overview.Progression,
		"wallet":       overview.Wallet,
		"recentEvents": overview.RecentEvents,
	}, requestID)

	logger.AccessLogger.Info("Completed GetOverview request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *ProgressionHandler) respond(w http.ResponseWriter, status int, body map[string]interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.AccessLogger.Error("Failed to encode response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

func (h *ProgressionHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	logger.AccessLogger.Error("Handling error",
		zap.String("request_id", requestID),
		zap.Error(err),
	)

	w.Header().Set("Content-Type", "application/json")
	errorResponse := map[string]interface{}{"success": false, "error": err.Error()}

	switch err.Error() {
	case "invalid payload", "missing card id", "missing card type", "invalid card type",
		"invalid rarity", "invalid event source", "invalid reference id",
		"insufficient quantity", "not enough coins", "not enough diamonds",
		"amount must be greater than 0", "Input contains invalid characters",
		"Input exceeds character limit":
		w.WriteHeader(http.StatusBadRequest)
	case "Invalid JWT token", "Missing JWT-Token header":
		w.WriteHeader(http.StatusUnauthorized)
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
