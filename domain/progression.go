package domain

import "context"

const (
	SourceBattleVictory = "battle_victory"
	SourceCardAward     = "card_award"
	SourceCardDiscard   = "card_discard"
	SourcePackPurchase  = "pack_purchase"
	SourcePackClaim     = "pack_claim"
	SourceDeckAssembly  = "deck_assembly"
	SourceDeckReturn    = "deck_return"
)

var EventSources = map[string]bool{
	SourceBattleVictory: true,
	SourceCardAward:     true,
	SourceCardDiscard:   true,
	SourcePackPurchase:  true,
	SourcePackClaim:     true,
	SourceDeckAssembly:  true,
	SourceDeckReturn:    true,
}

// PackClaimReferencePrefix + "<league>" помечает событие выдачи кодекс-набора
const PackClaimReferencePrefix = "codex-pack:"

var (
	LevelBaseXP int64 = 100
	LevelGrowth int64 = 50
)

// LevelForXP пересчитывает уровень и границы по суммарному опыту
func LevelForXP(totalXP int64) (level int, floor int64, next int64) {
	level = 1
	floor = 0
	next = LevelBaseXP
	for totalXP >= next {
		level++
		floor = next
		next += LevelBaseXP + LevelGrowth*int64(level-1)
	}
	return level, floor, next
}

type EventDeltas struct {
	XP       int64 `json:"xp"`
	Coins    int64 `json:"coins"`
	Diamonds int64 `json:"diamonds"`
}

type CardRef struct {
	CardType string `json:"cardType"`
	CardID   int64  `json:"cardID"`
	Quantity int    `json:"quantity"`
}

type ProgressionResult struct {
	Progression ProgressionState `json:"progression"`
	Wallet      Wallet           `json:"wallet"`
}

type ProgressionOverview struct {
	Progression  ProgressionState   `json:"progression"`
	Wallet       Wallet             `json:"wallet"`
	RecentEvents []ProgressionEvent `json:"recentEvents"`
}

type BattleVictoryRequest struct {
	OpponentID  string `json:"opponentID"`
	ReferenceID string `json:"referenceID"`
}

type DiscardRequest struct {
	CardType string `json:"cardType"`
	CardID   int64  `json:"cardID"`
	Rarity   string `json:"rarity"`
	Quantity int    `json:"quantity"`
}

type AwardCardRequest struct {
	CardType    string `json:"cardType"`
	CardID      int64  `json:"cardID"`
	Rarity      string `json:"rarity"`
	Quantity    int    `json:"quantity"`
	ReferenceID string `json:"referenceID"`
}

type ClaimPackRequest struct {
	League string `json:"league"`
}

type ProgressionService interface {
	ApplyEvent(ctx context.Context, userUUID string, source string, deltas EventDeltas, card *CardRef, referenceID string) (*ProgressionResult, error)
}

type ProgressionRepository interface {
	GetUserBySubject(ctx context.Context, subject string) (*User, error)
	ApplyEvent(ctx context.Context, event *ProgressionEvent) (*ProgressionState, *Wallet, error)
	GetOverview(ctx context.Context, userUUID string) (*ProgressionOverview, error)
	ListRecentEvents(ctx context.Context, userUUID string, sources []string, limit int) ([]ProgressionEvent, error)
}
