package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) domain.CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

func tableFor(cardType string) (string, bool) {
	switch cardType {
	case domain.CardTypeCreature:
		return domain.Creature{}.TableName(), true
	case domain.CardTypeAttack:
		return domain.Attack{}.TableName(), true
	case domain.CardTypeMugic:
		return domain.Mugic{}.TableName(), true
	case domain.CardTypeBattlegear:
		return domain.Battlegear{}.TableName(), true
	case domain.CardTypeLocation:
		return domain.Location{}.TableName(), true
	}
	return "", false
}

func (r *catalogRepository) GetUserBySubject(ctx context.Context, subject string) (*domain.User, error) {
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

func (r *catalogRepository) ListCards(ctx context.Context, cardType string) ([]domain.CatalogCard, error) {
	requestID := middleware.GetRequestID(ctx)

	table, ok := tableFor(cardType)
	if !ok {
		return nil, errors.New("invalid card type")
	}

	var cards []domain.CatalogCard
	if err := r.db.WithContext(ctx).Table(table).
		Select("id, name, rarity").
		Order("name").
		Scan(&cards).Error; err != nil {
		logger.DBLogger.Error("Failed to list catalog", zap.String("request_id", requestID), zap.String("card_type", cardType), zap.Error(err))
		return nil, errors.New("failed to list catalog")
	}

	for i := range cards {
		cards[i].Type = cardType
	}
	return cards, nil
}

func (r *catalogRepository) GetCard(ctx context.Context, cardType string, cardID int64) (*domain.CatalogCard, error) {
	requestID := middleware.GetRequestID(ctx)

	table, ok := tableFor(cardType)
	if !ok {
		return nil, errors.New("invalid card type")
	}

	var card domain.CatalogCard
	result := r.db.WithContext(ctx).Table(table).
		Select("id, name, rarity").
		Where("id = ?", cardID).
		Limit(1).
		Scan(&card)
	if result.Error != nil {
		logger.DBLogger.Error("Failed to get catalog card", zap.String("request_id", requestID), zap.Error(result.Error))
		return nil, errors.New("failed to fetch catalog card")
	}
	if result.RowsAffected == 0 {
		return nil, errors.New("card not found")
	}

	card.Type = cardType
	return &card, nil
}

func (r *catalogRepository) CreateCard(ctx context.Context, cardType string, fields map[string]interface{}) (int64, error) {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("CreateCard called", zap.String("request_id", requestID), zap.String("card_type", cardType))

	table, ok := tableFor(cardType)
	if !ok {
		return 0, errors.New("invalid card type")
	}

	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	placeholders := make([]string, len(columns))
	values := make([]interface{}, len(columns))
	for i, column := range columns {
		placeholders[i] = "?"
		values[i] = fields[column]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	var id int64
	if err := r.db.WithContext(ctx).Raw(query, values...).Scan(&id).Error; err != nil {
		logger.DBLogger.Error("Failed to create catalog card", zap.String("request_id", requestID), zap.Error(err))
		return 0, errors.New("failed to create catalog card")
	}
	return id, nil
}

func (r *catalogRepository) UpdateCard(ctx context.Context, cardType string, cardID int64, fields map[string]interface{}) error {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("UpdateCard called", zap.String("request_id", requestID), zap.String("card_type", cardType), zap.Int64("card_id", cardID))

	table, ok := tableFor(cardType)
	if !ok {
		return errors.New("invalid card type")
	}

	result := r.db.WithContext(ctx).Table(table).Where("id = ?", cardID).Updates(fields)
	if result.Error != nil {
		logger.DBLogger.Error("Failed to update catalog card", zap.String("request_id", requestID), zap.Error(result.Error))
		return errors.New("failed to update catalog card")
	}
	if result.RowsAffected == 0 {
		return errors.New("card not found")
	}
	return nil
}

func (r *catalogRepository) DeleteCard(ctx context.Context, cardType string, cardID int64) error {
	requestID := middleware.GetRequestID(ctx)
	logger.DBLogger.Info("DeleteCard called", zap.String("request_id", requestID), zap.String("card_type", cardType), zap.Int64("card_id", cardID))

	table, ok := tableFor(cardType)
	if !ok {
		return errors.New("invalid card type")
	}

	result := r.db.WithContext(ctx).Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), cardID)
	if result.Error != nil {
		logger.DBLogger.Error("Failed to delete catalog card", zap.String("request_id", requestID), zap.Error(result.Error))
		return errors.New("failed to delete catalog card")
	}
	if result.RowsAffected == 0 {
		return errors.New("card not found")
	}
	return nil
}
