package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"
)

const cardExistsCacheSize = 1024

type CatalogUsecase interface {
	domain.CardCatalog
	Search(ctx context.Context, cardType string, query string) ([]domain.CatalogCard, error)
	CreateCard(ctx context.Context, actorSubject string, cardType string, fields map[string]interface{}) (int64, error)
	UpdateCard(ctx context.Context, actorSubject string, cardType string, cardID int64, fields map[string]interface{}) error
	DeleteCard(ctx context.Context, actorSubject string, cardType string, cardID int64) error
}

type catalogUsecase struct {
	catalogRepository domain.CatalogRepository
	existsCache       *lru.Cache
}

func NewCatalogUsecase(catalogRepository domain.CatalogRepository) CatalogUsecase {
	cache, _ := lru.New(cardExistsCacheSize)
	return &catalogUsecase{
		catalogRepository: catalogRepository,
		existsCache:       cache,
	}
}

func (uc *catalogUsecase) ListCards(ctx context.Context, cardType string) ([]domain.CatalogCard, error) {
	if !domain.CardTypes[cardType] {
		return nil, errors.New("invalid card type")
	}
	return uc.catalogRepository.ListCards(ctx, cardType)
}

// CardExists кэширует только подтверждённые карты: отрицательный ответ может
// устареть сразу после админского создания
func (uc *catalogUsecase) CardExists(ctx context.Context, cardType string, cardID int64) (bool, error) {
	if !domain.CardTypes[cardType] {
		return false, errors.New("invalid card type")
	}

	cacheKey := fmt.Sprintf("%s:%d", cardType, cardID)
	if _, ok := uc.existsCache.Get(cacheKey); ok {
		return true, nil
	}

	_, err := uc.catalogRepository.GetCard(ctx, cardType, cardID)
	if err != nil {
		if err.Error() == "card not found" {
			return false, nil
		}
		return false, err
	}

	uc.existsCache.Add(cacheKey, true)
	return true, nil
}

type catalogSource []domain.CatalogCard

func (s catalogSource) String(i int) string { return s[i].Name }
func (s catalogSource) Len() int            { return len(s) }

func (uc *catalogUsecase) Search(ctx context.Context, cardType string, query string) ([]domain.CatalogCard, error) {
	cards, err := uc.ListCards(ctx, cardType)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return cards, nil
	}

	matches := fuzzy.FindFrom(query, catalogSource(cards))
	result := make([]domain.CatalogCard, 0, len(matches))
	for _, match := range matches {
		result = append(result, cards[match.Index])
	}
	return result, nil
}

func (uc *catalogUsecase) requireAdmin(ctx context.Context, actorSubject string) error {
	requestID := middleware.GetRequestID(ctx)

	actor, err := uc.catalogRepository.GetUserBySubject(ctx, actorSubject)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleAdmin {
		logger.AccessLogger.Warn("Forbidden", zap.String("request_id", requestID), zap.String("subject", actorSubject))
		return errors.New("forbidden")
	}
	return nil
}

func (uc *catalogUsecase) validateFields(cardType string, fields map[string]interface{}, requireName bool) error {
	allowed, ok := domain.CatalogFields[cardType]
	if !ok {
		return errors.New("invalid card type")
	}
	if len(fields) == 0 {
		return errors.New("invalid payload")
	}
	for column := range fields {
		if !allowed[column] {
			return errors.New("invalid payload")
		}
	}
	if requireName {
		if name, ok := fields["name"].(string); !ok || name == "" {
			return errors.New("invalid payload")
		}
		rarity, ok := fields["rarity"].(string)
		if !ok || !domain.Rarities[rarity] {
			return errors.New("invalid rarity")
		}
	}
	if rarity, ok := fields["rarity"].(string); ok && !domain.Rarities[rarity] {
		return errors.New("invalid rarity")
	}
	return nil
}

func (uc *catalogUsecase) CreateCard(ctx context.Context, actorSubject string, cardType string, fields map[string]interface{}) (int64, error) {
	if err := uc.requireAdmin(ctx, actorSubject); err != nil {
		return 0, err
	}
	if err := uc.validateFields(cardType, fields, true); err != nil {
		return 0, err
	}
	return uc.catalogRepository.CreateCard(ctx, cardType, fields)
}

func (uc *catalogUsecase) UpdateCard(ctx context.Context, actorSubject string, cardType string, cardID int64, fields map[string]interface{}) error {
	if err := uc.requireAdmin(ctx, actorSubject); err != nil {
		return err
	}
	if cardID <= 0 {
		return errors.New("missing card id")
	}
	if err := uc.validateFields(cardType, fields, false); err != nil {
		return err
	}
	return uc.catalogRepository.UpdateCard(ctx, cardType, cardID, fields)
}

func (uc *catalogUsecase) DeleteCard(ctx context.Context, actorSubject string, cardType string, cardID int64) error {
	if err := uc.requireAdmin(ctx, actorSubject); err != nil {
		return err
	}
	if cardID <= 0 {
		return errors.New("missing card id")
	}
	if !domain.CardTypes[cardType] {
		return errors.New("invalid card type")
	}
	if err := uc.catalogRepository.DeleteCard(ctx, cardType, cardID); err != nil {
		return err
	}
	uc.existsCache.Remove(fmt.Sprintf("%s:%d", cardType, cardID))
	return nil
}
