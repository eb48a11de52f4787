package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/decks/usecase"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"

	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type DecksHandler struct {
	usecase  usecase.DecksUsecase
	jwtToken middleware.JwtTokenService
}

func NewDecksHandler(usecase usecase.DecksUsecase, jwtToken middleware.JwtTokenService) *DecksHandler {
	return &DecksHandler{
		usecase:  usecase,
		jwtToken: jwtToken,
	}
}

func (h *DecksHandler) resolveSession(r *http.Request) (*middleware.JwtSessionClaims, error) {
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

func (h *DecksHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received GetCollection request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	cards, err := h.usecase.ListCollection(ctx, claims.Subject)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"cards":   cards,
	}, requestID)

	logger.AccessLogger.Info("Completed GetCollection request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *DecksHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received ListDecks request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	decks, err := h.usecase.ListDecks(ctx, claims.Subject)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"decks":   decks,
	}, requestID)

	logger.AccessLogger.Info("Completed ListDecks request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *DecksHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	sanitizer := bluemonday.UGCPolicy()
	defer cancel()

	logger.AccessLogger.Info("Received CreateDeck request",
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
		Name string `json:"name"`
	}
	if err = json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.handleError(w, errors.New("invalid payload"), requestID)
		return
	}
	data.Name = sanitizer.Sanitize(data.Name)

	deck, err := h.usecase.CreateDeck(ctx, claims.Subject, data.Name)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"deck":    deck,
	}, requestID)

	logger.AccessLogger.Info("Completed CreateDeck request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *DecksHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	sanitizer := bluemonday.UGCPolicy()
	defer cancel()

	logger.AccessLogger.Info("Received AddCard request",
		zap.String("request_id", requestID),
		zap.String("method", r.Method),
		zap.String("url", r.URL.String()),
	)

	claims, err := h.resolveSession(r)
	if err != nil {
		h.handleError(w, err, requestID)
		return
	}

	deckID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.handleError(w, errors.New("invalid payload"), requestID)
		return
	}

	var data domain.AddDeckCardRequest
	if err = json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.handleError(w, errors.New("invalid payload"), requestID)
		return
	}
	data.CardType = sanitizer.Sanitize(data.CardType)

	if err = h.usecase.AddCard(ctx, claims.Subject, deckID, data); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{"success": true}, requestID)

	logger.AccessLogger.Info("Completed AddCard request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *DecksHandler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := middleware.GetRequestID(r.Context())
	ctx, cancel := middleware.WithTimeout(r.Context())
	defer cancel()

	logger.AccessLogger.Info("Received RemoveCard request",
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
	deckID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.handleError(w, errors.New("invalid payload"), requestID)
		return
	}
	cardID, err := strconv.ParseInt(vars["cardId"], 10, 64)
	if err != nil {
		h.handleError(w, errors.New("missing card id"), requestID)
		return
	}

	if err = h.usecase.RemoveCard(ctx, claims.Subject, deckID, vars["cardType"], cardID); err != nil {
		h.handleError(w, err, requestID)
		return
	}

	h.respond(w, http.StatusOK, map[string]interface{}{"success": true}, requestID)

	logger.AccessLogger.Info("Completed RemoveCard request",
		zap.String("request_id", requestID),
		zap.Duration("duration", time.Since(start)),
		zap.Int("status", http.StatusOK),
	)
}

func (h *DecksHandler) respond(w http.ResponseWriter, status int, body map[string]interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.AccessLogger.Error("Failed to encode response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

func (h *DecksHandler) handleError(w http.ResponseWriter, err error, requestID string) {
	logger.AccessLogger.Error("Handling error",
		zap.String("request_id", requestID),
		zap.Error(err),
	)

	w.Header().Set("Content-Type", "application/json")
	errorResponse := map[string]interface{}{"success": false, "error": err.Error()}

	switch err.Error() {
	case "invalid payload", "invalid deck name", "missing card id", "missing card type",
		"invalid card type", "insufficient quantity", "amount must be greater than 0",
		"Input contains invalid characters", "Input exceeds character limit":
		w.WriteHeader(http.StatusBadRequest)
	case "Invalid JWT token", "Missing JWT-Token header":
		w.WriteHeader(http.StatusUnauthorized)
	case "user not found", "deck not found", "card not found":
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
