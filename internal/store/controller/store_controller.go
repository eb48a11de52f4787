package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"
	"github.com/mateusw12/chaotic-game-sub002/internal/store/usecase"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type StoreHandler struct {
	usecase  usecase.StoreUsecase
	jwtToken middleware.JwtTokenService
}

func NewStoreHandler(usecase usecase.StoreUsecase, jwtToken middleware.JwtTokenService) *StoreHandler {
	return &StoreHandler{
		usecase:  usecase,
		jwtToken: jwtToken,
	}
}

func (h *StoreHandler) resolveSession(r *http.Request) (*middleware.JwtSessionClaims, error) {
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

func (h *StoreHandler) GetPacks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received GetPacks request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	storeFront, err := h.usecase.GetStoreFront(ctx, claims.Subject)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"packs":   storeFront.Packs,
		"wallet":  storeFront.Wallet,
	}, requestID)

	logger.AccessLogger.Info("Completed GetPacks request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *StoreHandler) PurchasePack(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received PurchasePack request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	packID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.handleError(w, errors.New("missing pack id"), requestID)
		return
	}

	result, err := h.usecase.PurchasePack(ctx, claims.Subject, packID)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"progression": result.Progression,
		"wallet":      result.Wallet,
	}, requestID)

	logger.AccessLogger.Info("Completed PurchasePack request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *StoreHandler) respond(w http.ResponseWriter, status int, body map[string]interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.AccessLogger.Error("Failed to encode response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

func (h *StoreHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	logger.AccessLogger.Error("Handling error",
		zap.String("request_id", requestID),
		zap.Error(err),
	)

	w.Header().Set("Content-Type", "application/json")
	errorResponse := map[string]interface{}{"success": false, "error": err.Error()}

	switch err.Error() {
	case "missing pack id", "not enough coins", "not enough diamonds",
		"invalid event source", "Input contains invalid characters",
		"Input exceeds character limit":
		w.WriteHeader(http.StatusBadRequest)
	case "Invalid JWT token", "Missing JWT-Token header":
		w.WriteHeader(http.StatusUnauthorized)
	case "user not found", "pack not found":
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
