package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mateusw12/chaotic-game-sub002/internal/catalog/usecase"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"

	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	usecase  usecase.CatalogUsecase
	jwtToken middleware.JwtTokenService
}

func NewCatalogHandler(usecase usecase.CatalogUsecase, jwtToken middleware.JwtTokenService) *CatalogHandler {
	return &CatalogHandler{
		usecase:  usecase,
		jwtToken: jwtToken,
	}
}

func (h *CatalogHandler) resolveSession(r *http.Request) (*middleware.JwtSessionClaims, error) {
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

// ListCards открыт без сессии: каталог карт публичный
func (h *CatalogHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	sanitizer := bluemonday.UGCPolicy()
	defer cancel()

	logger.AccessLogger.Info("Received ListCards request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	cardType := mux.Vars(r)["type"]
	query := sanitizer.Sanitize(r.URL.Query().Get("q"))

	cards, err := h.usecase.Search(ctx, cardType, query)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"cards":   cards,
	}, requestID)

	logger.AccessLogger.Info("Completed ListCards request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *CatalogHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received CreateCard request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	var fields map[string]interface{}
	if err = json.NewDecoder(r.Body).Decode(&fields); err != nil {
		h.handleError(w, errors.New("invalid payload"), requestID)
		return
	}

	cardType := mux.Vars(r)["type"]
	id, err := h.usecase.CreateCard(ctx, claims.Subject, cardType, fields)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      id,
	}, requestID)

	logger.AccessLogger.Info("Completed CreateCard request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *CatalogHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received UpdateCard request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	vars := mux.Vars(r)
	cardID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.handleError(w, errors.New("missing card id"), requestID)
		return
	}

	var fields map[string]interface{}
	if err = json.NewDecoder(r.Body).Decode(&fields); err != nil {
		h.handleError(w, errors.New("invalid payload"), requestID)
		return
	}

	if err = h.usecase.UpdateCard(ctx, claims.Subject, vars["type"], cardID, fields); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{"success": true}, requestID)

	logger.AccessLogger.Info("Completed UpdateCard request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *CatalogHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received DeleteCard request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	vars := mux.Vars(r)
	cardID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.handleError(w, errors.New("missing card id"), requestID)
		return
	}

	if err = h.usecase.DeleteCard(ctx, claims.Subject, vars["type"], cardID); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{"success": true}, requestID)

	logger.AccessLogger.Info("Completed DeleteCard request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *CatalogHandler) respond(w http.ResponseWriter, status int, body map[string]interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.AccessLogger.Error("Failed to encode response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

func (h *CatalogHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	logger.AccessLogger.Error("Handling error",
		zap.String("request_id", requestID),
		zap.Error(err),
	)

	w.Header().Set("Content-Type", "application/json")
	errorResponse := map[string]interface{}{"success": false, "error": err.Error()}

	switch err.Error() {
	case "invalid payload", "invalid card type", "invalid rarity", "missing card id":
		w.WriteHeader(http.StatusBadRequest)
	case "Invalid JWT token", "Missing JWT-Token header":
		w.WriteHeader(http.StatusUnauthorized)
	case "forbidden":
		w.WriteHeader(http.StatusForbidden)
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
