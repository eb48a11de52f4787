package domain

import (
	"context"
	"os"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// tableFromEnv разрешает переопределять имена таблиц через переменные окружения
func tableFromEnv(envKey, fallback string) string {
	if name := os.Getenv(envKey); name != "" {
		return name
	}
	return fallback
}

type User struct {
	UUID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:uuid" json:"id"`
	Subject    string    `gorm:"type:varchar(255);unique;not null;column:subject" json:"subject"`
	Username   string    `gorm:"type:varchar(100);not null;column:username" json:"username"`
	Email      string    `gorm:"type:varchar(255);column:email" json:"email"`
	Role       string    `gorm:"type:varchar(20);not null;default:'user';column:role" json:"role"`
	LastSeenAt time.Time `gorm:"column:last_seen_at" json:"lastSeenAt"`
}

func (User) TableName() string {
	return tableFromEnv("USERS_TABLE", "users")
}

type Wallet struct {
	ID       int    `gorm:"primary_key;auto_increment;column:id" json:"-"`
	OwnerID  string `gorm:"type:uuid;unique;not null;column:owner_id" json:"ownerID"`
	Coins    int64  `gorm:"type:bigint;not null;default:0;column:coins" json:"coins"`
	Diamonds int64  `gorm:"type:bigint;not null;default:0;column:diamonds" json:"diamonds"`
	User     User   `gorm:"foreignkey:OwnerID;references:UUID" json:"-"`
}

func (Wallet) TableName() string {
	return tableFromEnv("WALLETS_TABLE", "wallets")
}

type ProgressionState struct {
	ID          int    `gorm:"primary_key;auto_increment;column:id" json:"-"`
	OwnerID     string `gorm:"type:uuid;unique;not null;column:owner_id" json:"ownerID"`
	TotalXP     int64  `gorm:"type:bigint;not null;default:0;column:total_xp" json:"totalXP"`
	Level       int    `gorm:"type:int;not null;default:1;column:level" json:"level"`
	LevelFloor  int64  `gorm:"type:bigint;not null;default:0;column:level_floor" json:"levelFloor"`
	NextLevelAt int64  `gorm:"type:bigint;not null;column:next_level_at" json:"nextLevelAt"`
	User        User   `gorm:"foreignkey:OwnerID;references:UUID" json:"-"`
}

func (ProgressionState) TableName() string {
	return tableFromEnv("PROGRESSION_TABLE", "user_progression")
}

type ProgressionEvent struct {
	UUID          string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:uuid" json:"id"`
	OwnerID       string    `gorm:"type:uuid;not null;index;column:owner_id" json:"ownerID"`
	Source        string    `gorm:"type:varchar(40);not null;column:source" json:"source"`
	XPDelta       int64     `gorm:"type:bigint;not null;default:0;column:xp_delta" json:"xpDelta"`
	CoinsDelta    int64     `gorm:"type:bigint;not null;default:0;column:coins_delta" json:"coinsDelta"`
	DiamondsDelta int64     `gorm:"type:bigint;not null;default:0;column:diamonds_delta" json:"diamondsDelta"`
	CardType      string    `gorm:"type:varchar(20);column:card_type" json:"cardType,omitempty"`
	CardID        int64     `gorm:"type:bigint;column:card_id" json:"cardID,omitempty"`
	QuantityDelta int       `gorm:"type:int;column:quantity_delta" json:"quantityDelta,omitempty"`
	ReferenceID   string    `gorm:"type:varchar(64);column:reference_id" json:"referenceID,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	User          User      `gorm:"foreignkey:OwnerID;references:UUID" json:"-"`
}

func (ProgressionEvent) TableName() string {
	return tableFromEnv("PROGRESSION_EVENTS_TABLE", "progression_events")
}

type SessionClaims struct {
	Subject  string
	Username string
	Email    string
	Role     string
}

type AuthRepository interface {
	SyncUser(ctx context.Context, claims SessionClaims) (*User, error)
	GetUserBySubject(ctx context.Context, subject string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUserRole(ctx context.Context, userUUID string, role string) (*User, error)
}
