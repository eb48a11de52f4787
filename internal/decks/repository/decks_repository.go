package repository

import (
	"context"
	"errors"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) domain.CollectionRepository {
	return &collectionRepository{
		db: db,
	}
}

func (r *collectionRepository) GetUserBySubject(ctx context.Context, subject string) (*domain.User, error) {
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

func (r *collectionRepository) ListUserCards(ctx context.Context, userUUID string) ([]domain.UserCard, error) {
	requestID := middleware.GetRequestID(ctx)

	var cards []domain.UserCard
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND quantity > 0", userUUID).
		Order("card_type, card_id").
		Find(&cards).Error; err != nil {
		logger.DBLogger.Error("Failed to list user cards", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to list user cards")
	}
	return cards, nil
}

func (r *collectionRepository) ListDecks(ctx context.Context, userUUID string) ([]domain.Deck, error) {
	requestID := middleware.GetRequestID(ctx)

	var decks []domain.Deck
	if err := r.db.WithContext(ctx).Where("owner_id = ?", userUUID).Order("id").Find(&decks).Error; err != nil {
		logger.DBLogger.Error("Failed to list decks", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to list decks")
	}
	return decks, nil
}

func (r *collectionRepository) CreateDeck(ctx context.Context, userUUID string, name string) (*domain.Deck, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("CreateDeck called", zap.String("request_id", requestID), zap.String("owner_id", userUUID))

	deck := domain.Deck{OwnerID: userUUID, Name: name}
	if err := r.db.WithContext(ctx).Create(&deck).Error; err != nil {
		logger.DBLogger.Error("Failed to create deck", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to create deck")
	}
	return &deck, nil
}

func (r *collectionRepository) GetDeck(ctx context.Context, deckID int64) (*domain.Deck, error) {
	requestID := middleware.GetRequestID(ctx)

	var deck domain.Deck
	if err := r.db.WithContext(ctx).Where("id = ?", deckID).First(&deck).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("deck not found")
		}
		logger.DBLogger.Error("Failed to get deck", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to fetch deck")
	}
	return &deck, nil
}

func (r *collectionRepository) ListDeckCards(ctx context.Context, deckID int64) ([]domain.DeckCard, error) {
	requestID := middleware.GetRequestID(ctx)

	var cards []domain.DeckCard
	if err := r.db.WithContext(ctx).Where("deck_id = ?", deckID).Order("card_type, card_id").Find(&cards).Error; err != nil {
		logger.DBLogger.Error("Failed to list deck cards", zap.String("request_id", requestID), zap.Error(err))
		return nil, errors.New("failed to list deck cards")
	}
	return cards, nil
}

func (r *collectionRepository) AddDeckCard(ctx context.Context, deckID int64, cardType string, cardID int64, quantity int) error {
	requestID := middleware.GetRequestID(ctx)

	if err := r.db.WithContext(ctx).Exec(`
		INSERT INTO `+domain.DeckCard{}.TableName()+` (deck_id, card_type, card_id, quantity)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (deck_id, card_type, card_id)
		DO UPDATE SET quantity = `+domain.DeckCard{}.TableName()+`.quantity + ?
	`, deckID, cardType, cardID, quantity, quantity).Error; err != nil {
		logger.DBLogger.Error("Failed to add deck card", zap.String("request_id", requestID), zap.Error(err))
		return errors.New("failed to add deck card")
	}
	return nil
}

// RemoveDeckCard удаляет строку и возвращает количество, которое уходит обратно в коллекцию
func (r *collectionRepository) RemoveDeckCard(ctx context.Context, deckID int64, cardType string, cardID int64) (int, error) {
	requestID := middleware.GetRequestID(ctx)

	removed := 0
	if err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card domain.DeckCard
		if err := tx.Where("deck_id = ? AND card_type = ? AND card_id = ?", deckID, cardType, cardID).First(&card).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("card not found")
			}
			logger.DBLogger.Error("Failed to fetch deck card", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to fetch deck card")
		}

		if err := tx.Where("deck_id = ? AND card_type = ? AND card_id = ?", deckID, cardType, cardID).
			Delete(&domain.DeckCard{}).Error; err != nil {
			logger.DBLogger.Error("Failed to delete deck card", zap.String("request_id", requestID), zap.Error(err))
			return errors.New("failed to delete deck card")
		}

		removed = card.Quantity
		return nil
	}); err != nil {
		return 0, err
	}

	return removed, nil
}
