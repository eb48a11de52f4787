package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) (domain.ProgressionRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewProgressionRepository(gormDB), mock
}

func TestGetUserBySubject(t *testing.T) {
	logger.DBLogger = zap.NewNop()
	repo, mock := newTestRepo(t)
	ctx := context.Background()
	subject := "auth0|user123"

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"uuid", "subject", "username", "role"}).
			AddRow("user-uuid", subject, "Alice", "user")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE subject = $1 ORDER BY "users"."uuid" LIMIT $2`)).
			WithArgs(subject, 1).
			WillReturnRows(rows)

		user, err := repo.GetUserBySubject(ctx, subject)
		assert.NoError(t, err)
		assert.Equal(t, "user-uuid", user.UUID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Fail - User Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE subject = $1 ORDER BY "users"."uuid" LIMIT $2`)).
			WithArgs(subject, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.GetUserBySubject(ctx, subject)
		assert.Error(t, err)
		assert.Equal(t, "user not found", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApplyEvent(t *testing.T) {
	logger.DBLogger = zap.NewNop()
	repo, mock := newTestRepo(t)
	ctx := context.Background()
	ownerID := "user-uuid"

	t.Run("Success - First Event Creates State And Wallet", func(t *testing.T) {
		mock.ExpectBegin()

		mock.ExpectQuery(`INSERT INTO "progression_events"`).
			WillReturnRows(sqlmock.NewRows([]string{"uuid"}).AddRow("event-uuid"))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_progression" WHERE owner_id = $1 ORDER BY "user_progression"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		mock.ExpectExec(`INSERT INTO user_progression`).
			WithArgs(ownerID, int64(50), 1, int64(0), int64(100), int64(50), 1, int64(0), int64(100)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "wallets" WHERE owner_id = $1 ORDER BY "wallets"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		mock.ExpectExec(`INSERT INTO wallets`).
			WithArgs(ownerID, int64(25), int64(0), int64(25), int64(0)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		mock.ExpectCommit()

		event := &domain.ProgressionEvent{
			OwnerID:    ownerID,
			Source:     domain.SourceBattleVictory,
			XPDelta:    50,
			CoinsDelta: 25,
		}
		state, wallet, err := repo.ApplyEvent(ctx, event)
		assert.NoError(t, err)
		assert.Equal(t, int64(50), state.TotalXP)
		assert.Equal(t, 1, state.Level)
		assert.Equal(t, int64(100), state.NextLevelAt)
		assert.Equal(t, int64(25), wallet.Coins)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - XP Crosses Level Threshold", func(t *testing.T) {
		mock.ExpectBegin()

		mock.ExpectQuery(`INSERT INTO "progression_events"`).
			WillReturnRows(sqlmock.NewRows([]string{"uuid"}).AddRow("event-uuid"))

		stateRows := sqlmock.NewRows([]string{"id", "owner_id", "total_xp", "level", "level_floor", "next_level_at"}).
			AddRow(1, ownerID, 80, 1, 0, 100)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_progression" WHERE owner_id = $1 ORDER BY "user_progression"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnRows(stateRows)

		mock.ExpectExec(`INSERT INTO user_progression`).
			WithArgs(ownerID, int64(130), 2, int64(100), int64(250), int64(130), 2, int64(100), int64(250)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		walletRows := sqlmock.NewRows([]string{"id", "owner_id", "coins", "diamonds"}).
			AddRow(1, ownerID, 40, 0)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "wallets" WHERE owner_id = $1 ORDER BY "wallets"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnRows(walletRows)

		mock.ExpectExec(`INSERT INTO wallets`).
			WithArgs(ownerID, int64(65), int64(0), int64(65), int64(0)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		mock.ExpectCommit()

		event := &domain.ProgressionEvent{
			OwnerID:    ownerID,
			Source:     domain.SourceBattleVictory,
			XPDelta:    50,
			CoinsDelta: 25,
		}
		state, _, err := repo.ApplyEvent(ctx, event)
		assert.NoError(t, err)
		assert.Equal(t, 2, state.Level)
		assert.Equal(t, int64(100), state.LevelFloor)
		assert.Equal(t, int64(250), state.NextLevelAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Fail - Not Enough Coins", func(t *testing.T) {
		mock.ExpectBegin()

		mock.ExpectQuery(`INSERT INTO "progression_events"`).
			WillReturnRows(sqlmock.NewRows([]string{"uuid"}).AddRow("event-uuid"))

		stateRows := sqlmock.NewRows([]string{"id", "owner_id", "total_xp", "level", "level_floor", "next_level_at"}).
			AddRow(1, ownerID, 100, 2, 100, 250)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_progression" WHERE owner_id = $1 ORDER BY "user_progression"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnRows(stateRows)

		mock.ExpectExec(`INSERT INTO user_progression`).
			WithArgs(ownerID, int64(100), 2, int64(100), int64(250), int64(100), 2, int64(100), int64(250)).
			WillReturnResult(sqlmock.NewResult(1, 1))

		walletRows := sqlmock.NewRows([]string{"id", "owner_id", "coins", "diamonds"}).
			AddRow(1, ownerID, 10, 0)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "wallets" WHERE owner_id = $1 ORDER BY "wallets"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnRows(walletRows)

		mock.ExpectRollback()

		event := &domain.ProgressionEvent{
			OwnerID:    ownerID,
			Source:     domain.SourcePackPurchase,
			CoinsDelta: -100,
		}
		_, _, err := repo.ApplyEvent(ctx, event)
		assert.Error(t, err)
		assert.Equal(t, "not enough coins", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Fail - Insufficient Quantity", func(t *testing.T) {
		mock.ExpectBegin()

		mock.ExpectQuery(`INSERT INTO "progression_events"`).
			WillReturnRows(sqlmock.NewRows([]string{"uuid"}).AddRow("event-uuid"))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_progression" WHERE owner_id = $1 ORDER BY "user_progression"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		mock.ExpectExec(`INSERT INTO user_progression`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "wallets" WHERE owner_id = $1 ORDER BY "wallets"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		mock.ExpectExec(`INSERT INTO wallets`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		cardRows := sqlmock.NewRows([]string{"id", "owner_id", "card_type", "card_id", "quantity"}).
			AddRow(1, ownerID, "creature", 12, 1)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_cards" WHERE owner_id = $1 AND card_type = $2 AND card_id = $3 ORDER BY "user_cards"."id" LIMIT $4`)).
			WithArgs(ownerID, "creature", int64(12), 1).
			WillReturnRows(cardRows)

		mock.ExpectRollback()

		event := &domain.ProgressionEvent{
			OwnerID:       ownerID,
			Source:        domain.SourceCardDiscard,
			CoinsDelta:    10,
			CardType:      "creature",
			CardID:        12,
			QuantityDelta: -2,
		}
		_, _, err := repo.ApplyEvent(ctx, event)
		assert.Error(t, err)
		assert.Equal(t, "insufficient quantity", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Fail - Event Insert Error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "progression_events"`).
			WillReturnError(errors.New("database error"))
		mock.ExpectRollback()

		event := &domain.ProgressionEvent{OwnerID: ownerID, Source: domain.SourceBattleVictory}
		_, _, err := repo.ApplyEvent(ctx, event)
		assert.Error(t, err)
		assert.Equal(t, "failed to create progression event", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// Выдача карты и немедленный сброс той же карты возвращают количество к исходному,
// оставляя в журнале два события с противоположными дельтами
func TestAwardThenDiscardRestoresQuantity(t *testing.T) {
	logger.DBLogger = zap.NewNop()
	repo, mock := newTestRepo(t)
	ctx := context.Background()
	ownerID := "user-uuid"

	expectEvent := func(cardQuantityBefore int, cardQuantityAfter int) {
		mock.ExpectBegin()

		mock.ExpectQuery(`INSERT INTO "progression_events"`).
			WillReturnRows(sqlmock.NewRows([]string{"uuid"}).AddRow("event-uuid"))

		stateRows := sqlmock.NewRows([]string{"id", "owner_id", "total_xp", "level", "level_floor", "next_level_at"}).
			AddRow(1, ownerID, 100, 2, 100, 250)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_progression" WHERE owner_id = $1 ORDER BY "user_progression"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnRows(stateRows)

		mock.ExpectExec(`INSERT INTO user_progression`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		walletRows := sqlmock.NewRows([]string{"id", "owner_id", "coins", "diamonds"}).
			AddRow(1, ownerID, 40, 0)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "wallets" WHERE owner_id = $1 ORDER BY "wallets"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnRows(walletRows)

		mock.ExpectExec(`INSERT INTO wallets`).
			WillReturnResult(sqlmock.NewResult(1, 1))

		cardRows := sqlmock.NewRows([]string{"id", "owner_id", "card_type", "card_id", "quantity"}).
			AddRow(1, ownerID, "creature", 12, cardQuantityBefore)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_cards" WHERE owner_id = $1 AND card_type = $2 AND card_id = $3 ORDER BY "user_cards"."id" LIMIT $4`)).
			WithArgs(ownerID, "creature", int64(12), 1).
			WillReturnRows(cardRows)

		mock.ExpectExec(`INSERT INTO user_cards`).
			WithArgs(ownerID, "creature", int64(12), cardQuantityAfter, cardQuantityAfter).
			WillReturnResult(sqlmock.NewResult(1, 1))

		mock.ExpectCommit()
	}

	// выдача: 2 -> 3
	expectEvent(2, 3)
	award := &domain.ProgressionEvent{
		OwnerID:       ownerID,
		Source:        domain.SourceCardAward,
		XPDelta:       10,
		CardType:      "creature",
		CardID:        12,
		QuantityDelta: 1,
	}
	_, _, err := repo.ApplyEvent(ctx, award)
	assert.NoError(t, err)

	// сброс: 3 -> 2, количество вернулось к исходному
	expectEvent(3, 2)
	discard := &domain.ProgressionEvent{
		OwnerID:       ownerID,
		Source:        domain.SourceCardDiscard,
		CoinsDelta:    5,
		CardType:      "creature",
		CardID:        12,
		QuantityDelta: -1,
	}
	_, _, err = repo.ApplyEvent(ctx, discard)
	assert.NoError(t, err)

	assert.Equal(t, -award.QuantityDelta, discard.QuantityDelta)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOverview(t *testing.T) {
	logger.DBLogger = zap.NewNop()
	repo, mock := newTestRepo(t)
	ctx := context.Background()
	ownerID := "user-uuid"

	t.Run("Success - Defaults For Fresh User", func(t *testing.T) {
		mock.ExpectBegin()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_progression" WHERE owner_id = $1 ORDER BY "user_progression"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "wallets" WHERE owner_id = $1 ORDER BY "wallets"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "progression_events" WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2`)).
			WithArgs(ownerID, 20).
			WillReturnRows(sqlmock.NewRows([]string{"uuid", "owner_id", "source"}))

		mock.ExpectCommit()

		overview, err := repo.GetOverview(ctx, ownerID)
		assert.NoError(t, err)
		assert.Equal(t, 1, overview.Progression.Level)
		assert.Equal(t, int64(100), overview.Progression.NextLevelAt)
		assert.Equal(t, int64(0), overview.Wallet.Coins)
		assert.Empty(t, overview.RecentEvents)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Populated Overview", func(t *testing.T) {
		mock.ExpectBegin()

		stateRows := sqlmock.NewRows([]string{"id", "owner_id", "total_xp", "level", "level_floor", "next_level_at"}).
			AddRow(1, ownerID, 150, 2, 100, 250)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "user_progression" WHERE owner_id = $1 ORDER BY "user_progression"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnRows(stateRows)

		walletRows := sqlmock.NewRows([]string{"id", "owner_id", "coins", "diamonds"}).
			AddRow(1, ownerID, 75, 5)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "wallets" WHERE owner_id = $1 ORDER BY "wallets"."id" LIMIT $2`)).
			WithArgs(ownerID, 1).
			WillReturnRows(walletRows)

		eventRows := sqlmock.NewRows([]string{"uuid", "owner_id", "source", "xp_delta", "coins_delta"}).
			AddRow("event-1", ownerID, "battle_victory", 50, 25).
			AddRow("event-2", ownerID, "card_award", 10, 0)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "progression_events" WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2`)).
			WithArgs(ownerID, 20).
			WillReturnRows(eventRows)

		mock.ExpectCommit()

		overview, err := repo.GetOverview(ctx, ownerID)
		assert.NoError(t, err)
		assert.Equal(t, int64(150), overview.Progression.TotalXP)
		assert.Equal(t, int64(75), overview.Wallet.Coins)
		assert.Len(t, overview.RecentEvents, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListRecentEvents(t *testing.T) {
	logger.DBLogger = zap.NewNop()
	repo, mock := newTestRepo(t)
	ctx := context.Background()
	ownerID := "user-uuid"

	t.Run("Success - Filtered By Source", func(t *testing.T) {
		eventRows := sqlmock.NewRows([]string{"uuid", "owner_id", "source", "reference_id"}).
			AddRow("event-1", ownerID, "pack_claim", "codex-pack:meridian")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "progression_events" WHERE owner_id = $1 AND source IN ($2,$3) ORDER BY created_at DESC LIMIT $4`)).
			WithArgs(ownerID, "pack_claim", "card_award", 200).
			WillReturnRows(eventRows)

		events, err := repo.ListRecentEvents(ctx, ownerID, []string{"pack_claim", "card_award"}, 200)
		assert.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, "codex-pack:meridian", events[0].ReferenceID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Fail - Query Error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "progression_events" WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2`)).
			WithArgs(ownerID, 50).
			WillReturnError(errors.New("database error"))

		_, err := repo.ListRecentEvents(ctx, ownerID, nil, 50)
		assert.Error(t, err)
		assert.Equal(t, "failed to fetch progression events", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
