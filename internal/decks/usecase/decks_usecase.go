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

type DecksUsecase interface {
	ListCollection(ctx context.Context, subject string) ([]domain.UserCard, error)
	ListDecks(ctx context.Context, subject string) ([]domain.DeckWithCards, error)
	CreateDeck(ctx context.Context, subject string, name string) (*domain.Deck, error)
	AddCard(ctx context.Context, subject string, deckID int64, req domain.AddDeckCardRequest) error
	RemoveCard(ctx context.Context, subject string, deckID int64, cardType string, cardID int64) error
}

type decksUsecase struct {
	collectionRepository domain.CollectionRepository
	progression          domain.ProgressionService
}

func NewDecksUsecase(collectionRepository domain.CollectionRepository, progression domain.ProgressionService) DecksUsecase {
	return &decksUsecase{
		collectionRepository: collectionRepository,
		progression:          progression,
	}
}

func (uc *decksUsecase) resolveUser(ctx context.Context, subject string) (*domain.User, error) {
	requestID := middleware.GetRequestID(ctx)
	if !validation.ValidateSubject(subject) {
		logger.AccessLogger.Warn("Input contains invalid characters", zap.String("request_id", requestID))
		return nil, errors.New("Input contains invalid characters")
	}
	return uc.collectionRepository.GetUserBySubject(ctx, subject)
}

func (uc *decksUsecase) ListCollection(ctx context.Context, subject string) ([]domain.UserCard, error) {
	user, err := uc.resolveUser(ctx, subject)
	if err != nil {
		return nil, err
	}
	return uc.collectionRepository.ListUserCards(ctx, user.UUID)
}

func (uc *decksUsecase) ListDecks(ctx context.Context, subject string) ([]domain.DeckWithCards, error) {
	user, err := uc.resolveUser(ctx, subject)
	if err != nil {
		return nil, err
	}

	decks, err := uc.collectionRepository.ListDecks(ctx, user.UUID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.DeckWithCards, 0, len(decks))
	for _, deck := range decks {
		cards, err := uc.collectionRepository.ListDeckCards(ctx, deck.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.DeckWithCards{Deck: deck, Cards: cards})
	}
	return result, nil
}

func (uc *decksUsecase) CreateDeck(ctx context.Context, subject string, name string) (*domain.Deck, error) {
	user, err := uc.resolveUser(ctx, subject)
	if err != nil {
		return nil, err
	}
	if !validation.ValidateDeckName(name) {
		return nil, errors.New("invalid deck name")
	}
	return uc.collectionRepository.CreateDeck(ctx, user.UUID, name)
}

func (uc *decksUsecase) ownedDeck(ctx context.Context, userUUID string, deckID int64) (*domain.Deck, error) {
	deck, err := uc.collectionRepository.GetDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}
	// чужая колода неотличима от несуществующей
	if deck.OwnerID != userUUID {
		return nil, errors.New("deck not found")
	}
	return deck, nil
}

func (uc *decksUsecase) AddCard(ctx context.Context, subject string, deckID int64, req domain.AddDeckCardRequest) error {
	user, err := uc.resolveUser(ctx, subject)
	if err != nil {
		return err
	}
	if req.CardType == "" {
		return errors.New("missing card type")
	}
	if !domain.CardTypes[req.CardType] {
		return errors.New("invalid card type")
	}
	if req.CardID <= 0 {
		return errors.New("missing card id")
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return errors.New("amount must be greater than 0")
	}

	if _, err := uc.ownedDeck(ctx, user.UUID, deckID); err != nil {
		return err
	}

	// списание из коллекции идёт через журнал событий с нулевыми дельтами баланса
	card := &domain.CardRef{CardType: req.CardType, CardID: req.CardID, Quantity: -quantity}
	if _, err := uc.progression.ApplyEvent(ctx, user.UUID, domain.SourceDeckAssembly, domain.EventDeltas{}, card, ""); err != nil {
		return err
	}

	if err := uc.collectionRepository.AddDeckCard(ctx, deckID, req.CardType, req.CardID, quantity); err != nil {
		// строка колоды не записалась: возвращаем списанное обратно в коллекцию
		refund := &domain.CardRef{CardType: req.CardType, CardID: req.CardID, Quantity: quantity}
		if _, refundErr := uc.progression.ApplyEvent(ctx, user.UUID, domain.SourceDeckReturn, domain.EventDeltas{}, refund, ""); refundErr != nil {
			logger.AccessLogger.Error("Failed to refund deck assembly",
				zap.String("request_id", middleware.GetRequestID(ctx)),
				zap.String("owner_id", user.UUID),
				zap.Error(refundErr),
			)
		}
		return err
	}
	return nil
}

func (uc *decksUsecase) RemoveCard(ctx context.Context, subject string, deckID int64, cardType string, cardID int64) error {
	user, err := uc.resolveUser(ctx, subject)
	if err != nil {
		return err
	}
	if !domain.CardTypes[cardType] {
		return errors.New("invalid card type")
	}

	if _, err := uc.ownedDeck(ctx, user.UUID, deckID); err != nil {
		return err
	}

	removed, err := uc.collectionRepository.RemoveDeckCard(ctx, deckID, cardType, cardID)
	if err != nil {
		return err
	}

	card := &domain.CardRef{CardType: cardType, CardID: cardID, Quantity: removed}
	if _, err := uc.progression.ApplyEvent(ctx, user.UUID, domain.SourceDeckReturn, domain.EventDeltas{}, card, ""); err != nil {
		// возврат в коллекцию не записался: восстанавливаем строку колоды
		if restoreErr := uc.collectionRepository.AddDeckCard(ctx, deckID, cardType, cardID, removed); restoreErr != nil {
			logger.AccessLogger.Error("Failed to restore deck card",
				zap.String("request_id", middleware.GetRequestID(ctx)),
				zap.String("owner_id", user.UUID),
				zap.Error(restoreErr),
			)
		}
		return err
	}
	return nil
}
