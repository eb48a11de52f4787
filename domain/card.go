package domain

import (
	"context"
	"time"
)

const (
	CardTypeCreature   = "creature"
	CardTypeAttack     = "attack"
	CardTypeMugic      = "mugic"
	CardTypeBattlegear = "battlegear"
	CardTypeLocation   = "location"
)

var CardTypes = map[string]bool{
	CardTypeCreature:   true,
	CardTypeAttack:     true,
	CardTypeMugic:      true,
	CardTypeBattlegear: true,
	CardTypeLocation:   true,
}

var Rarities = map[string]bool{
	"common":     true,
	"uncommon":   true,
	"rare":       true,
	"super-rare": true,
	"ultra-rare": true,
}

// SellValues определяет возврат монет при сбросе карты по редкости
var SellValues = map[string]int64{
	"common":     5,
	"uncommon":   10,
	"rare":       25,
	"super-rare": 50,
	"ultra-rare": 100,
}

type Creature struct {
	ID         int64  `gorm:"primary_key;auto_increment;column:id" json:"id"`
	Name       string `gorm:"type:varchar(255);not null;column:name" json:"name"`
	Tribe      string `gorm:"type:varchar(40);column:tribe" json:"tribe"`
	Rarity     string `gorm:"type:varchar(20);not null;column:rarity" json:"rarity"`
	Courage    int    `gorm:"type:int;column:courage" json:"courage"`
	Power      int    `gorm:"type:int;column:power" json:"power"`
	Wisdom     int    `gorm:"type:int;column:wisdom" json:"wisdom"`
	Speed      int    `gorm:"type:int;column:speed" json:"speed"`
	Energy     int    `gorm:"type:int;column:energy" json:"energy"`
	MugicCount int    `gorm:"type:int;column:mugic_count" json:"mugicCount"`
	ImageURL   string `gorm:"type:varchar(512);column:image_url" json:"imageURL"`
}

func (Creature) TableName() string {
	return tableFromEnv("CREATURES_TABLE", "creatures")
}

type Attack struct {
	ID          int64  `gorm:"primary_key;auto_increment;column:id" json:"id"`
	Name        string `gorm:"type:varchar(255);not null;column:name" json:"name"`
	Rarity      string `gorm:"type:varchar(20);not null;column:rarity" json:"rarity"`
	BuildPoints int    `gorm:"type:int;column:build_points" json:"buildPoints"`
	BaseDamage  int    `gorm:"type:int;column:base_damage" json:"baseDamage"`
	FireDamage  int    `gorm:"type:int;column:fire_damage" json:"fireDamage"`
	AirDamage   int    `gorm:"type:int;column:air_damage" json:"airDamage"`
	EarthDamage int    `gorm:"type:int;column:earth_damage" json:"earthDamage"`
	WaterDamage int    `gorm:"type:int;column:water_damage" json:"waterDamage"`
	ImageURL    string `gorm:"type:varchar(512);column:image_url" json:"imageURL"`
}

func (Attack) TableName() string {
	return tableFromEnv("ATTACKS_TABLE", "attacks")
}

type Mugic struct {
	ID       int64  `gorm:"primary_key;auto_increment;column:id" json:"id"`
	Name     string `gorm:"type:varchar(255);not null;column:name" json:"name"`
	Tribe    string `gorm:"type:varchar(40);column:tribe" json:"tribe"`
	Rarity   string `gorm:"type:varchar(20);not null;column:rarity" json:"rarity"`
	Cost     int    `gorm:"type:int;column:cost" json:"cost"`
	ImageURL string `gorm:"type:varchar(512);column:image_url" json:"imageURL"`
}

func (Mugic) TableName() string {
	return tableFromEnv("MUGIC_TABLE", "mugic")
}

type Battlegear struct {
	ID       int64  `gorm:"primary_key;auto_increment;column:id" json:"id"`
	Name     string `gorm:"type:varchar(255);not null;column:name" json:"name"`
	Rarity   string `gorm:"type:varchar(20);not null;column:rarity" json:"rarity"`
	Effect   string `gorm:"type:text;column:effect" json:"effect"`
	ImageURL string `gorm:"type:varchar(512);column:image_url" json:"imageURL"`
}

func (Battlegear) TableName() string {
	return tableFromEnv("BATTLEGEAR_TABLE", "battlegear")
}

type Location struct {
	ID         int64  `gorm:"primary_key;auto_increment;column:id" json:"id"`
	Name       string `gorm:"type:varchar(255);not null;column:name" json:"name"`
	Rarity     string `gorm:"type:varchar(20);not null;column:rarity" json:"rarity"`
	Initiative string `gorm:"type:varchar(40);column:initiative" json:"initiative"`
	Effect     string `gorm:"type:text;column:effect" json:"effect"`
	ImageURL   string `gorm:"type:varchar(512);column:image_url" json:"imageURL"`
}

func (Location) TableName() string {
	return tableFromEnv("LOCATIONS_TABLE", "locations")
}

type Tournament struct {
	ID       int64     `gorm:"primary_key;auto_increment;column:id" json:"id"`
	Name     string    `gorm:"type:varchar(255);not null;column:name" json:"name"`
	League   string    `gorm:"type:varchar(40);column:league" json:"league"`
	Status   string    `gorm:"type:varchar(20);not null;default:'upcoming';column:status" json:"status"`
	StartsAt time.Time `gorm:"column:starts_at" json:"startsAt"`
}

func (Tournament) TableName() string {
	return tableFromEnv("TOURNAMENTS_TABLE", "tournaments")
}

type StorePack struct {
	ID            int64  `gorm:"primary_key;auto_increment;column:id" json:"id"`
	Name          string `gorm:"type:varchar(255);not null;column:name" json:"name"`
	League        string `gorm:"type:varchar(40);column:league" json:"league"`
	PriceCoins    int64  `gorm:"type:bigint;not null;default:0;column:price_coins" json:"priceCoins"`
	PriceDiamonds int64  `gorm:"type:bigint;not null;default:0;column:price_diamonds" json:"priceDiamonds"`
	CardCount     int    `gorm:"type:int;not null;default:1;column:card_count" json:"cardCount"`
	Active        bool   `gorm:"not null;default:true;column:active" json:"active"`
}

func (StorePack) TableName() string {
	return tableFromEnv("STORE_PACKS_TABLE", "store_packs")
}

type UserCard struct {
	ID       int    `gorm:"primary_key;auto_increment;column:id" json:"-"`
	OwnerID  string `gorm:"type:uuid;not null;index:idx_owner_card,unique;column:owner_id" json:"ownerID"`
	CardType string `gorm:"type:varchar(20);not null;index:idx_owner_card,unique;column:card_type" json:"cardType"`
	CardID   int64  `gorm:"type:bigint;not null;index:idx_owner_card,unique;column:card_id" json:"cardID"`
	Quantity int    `gorm:"type:int;not null;column:quantity" json:"quantity"`
	User     User   `gorm:"foreignkey:OwnerID;references:UUID" json:"-"`
}

func (UserCard) TableName() string {
	return tableFromEnv("USER_CARDS_TABLE", "user_cards")
}

type Deck struct {
	ID      int64  `gorm:"primary_key;auto_increment;column:id" json:"id"`
	OwnerID string `gorm:"type:uuid;not null;index;column:owner_id" json:"ownerID"`
	Name    string `gorm:"type:varchar(100);not null;column:name" json:"name"`
	User    User   `gorm:"foreignkey:OwnerID;references:UUID" json:"-"`
}

func (Deck) TableName() string {
	return tableFromEnv("USER_DECKS_TABLE", "user_decks")
}

type DeckCard struct {
	ID       int    `gorm:"primary_key;auto_increment;column:id" json:"-"`
	DeckID   int64  `gorm:"not null;index:idx_deck_card,unique;column:deck_id" json:"deckID"`
	CardType string `gorm:"type:varchar(20);not null;index:idx_deck_card,unique;column:card_type" json:"cardType"`
	CardID   int64  `gorm:"type:bigint;not null;index:idx_deck_card,unique;column:card_id" json:"cardID"`
	Quantity int    `gorm:"type:int;not null;column:quantity" json:"quantity"`
	Deck     Deck   `gorm:"foreignkey:DeckID;references:ID" json:"-"`
}

func (DeckCard) TableName() string {
	return tableFromEnv("DECK_CARDS_TABLE", "deck_cards")
}

// CatalogCard — сокращённая строка каталога для списков и поиска
type CatalogCard struct {
	Type   string `json:"type"`
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
}

type CardCatalog interface {
	ListCards(ctx context.Context, cardType string) ([]CatalogCard, error)
	CardExists(ctx context.Context, cardType string, cardID int64) (bool, error)
}

// CatalogFields ограничивает набор колонок, доступных админскому CRUD
var CatalogFields = map[string]map[string]bool{
	CardTypeCreature: {
		"name": true, "tribe": true, "rarity": true, "courage": true, "power": true,
		"wisdom": true, "speed": true, "energy": true, "mugic_count": true, "image_url": true,
	},
	CardTypeAttack: {
		"name": true, "rarity": true, "build_points": true, "base_damage": true,
		"fire_damage": true, "air_damage": true, "earth_damage": true, "water_damage": true,
		"image_url": true,
	},
	CardTypeMugic: {
		"name": true, "tribe": true, "rarity": true, "cost": true, "image_url": true,
	},
	CardTypeBattlegear: {
		"name": true, "rarity": true, "effect": true, "image_url": true,
	},
	CardTypeLocation: {
		"name": true, "rarity": true, "initiative": true, "effect": true, "image_url": true,
	},
}

type CatalogRepository interface {
	GetUserBySubject(ctx context.Context, subject string) (*User, error)
	ListCards(ctx context.Context, cardType string) ([]CatalogCard, error)
	GetCard(ctx context.Context, cardType string, cardID int64) (*CatalogCard, error)
	CreateCard(ctx context.Context, cardType string, fields map[string]interface{}) (int64, error)
	UpdateCard(ctx context.Context, cardType string, cardID int64, fields map[string]interface{}) error
	DeleteCard(ctx context.Context, cardType string, cardID int64) error
}

type CollectionRepository interface {
	GetUserBySubject(ctx context.Context, subject string) (*User, error)
	ListUserCards(ctx context.Context, userUUID string) ([]UserCard, error)
	ListDecks(ctx context.Context, userUUID string) ([]Deck, error)
	CreateDeck(ctx context.Context, userUUID string, name string) (*Deck, error)
	GetDeck(ctx context.Context, deckID int64) (*Deck, error)
	ListDeckCards(ctx context.Context, deckID int64) ([]DeckCard, error)
	AddDeckCard(ctx context.Context, deckID int64, cardType string, cardID int64, quantity int) error
	RemoveDeckCard(ctx context.Context, deckID int64, cardType string, cardID int64) (int, error)
}

type StoreFront struct {
	Packs  []StorePack `json:"packs"`
	Wallet Wallet      `json:"wallet"`
}

type DeckWithCards struct {
	Deck  Deck       `json:"deck"`
	Cards []DeckCard `json:"cards"`
}

type AddDeckCardRequest struct {
	CardType string `json:"cardType"`
	CardID   int64  `json:"cardID"`
	Quantity int    `json:"quantity"`
}

type StoreRepository interface {
	GetUserBySubject(ctx context.Context, subject string) (*User, error)
	ListActivePacks(ctx context.Context) ([]StorePack, error)
	GetPack(ctx context.Context, packID int64) (*StorePack, error)
	GetWallet(ctx context.Context, userUUID string) (*Wallet, error)
}
