package main

import (
	"fmt"
	"log"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/dsn"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func migrate() (err error) {
	_ = godotenv.Load()
	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		return err
	}
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Wallet{},
		&domain.ProgressionState{},
		&domain.ProgressionEvent{},
		&domain.Creature{},
		&domain.Attack{},
		&domain.Mugic{},
		&domain.Battlegear{},
		&domain.Location{},
		&domain.Tournament{},
		&domain.StorePack{},
		&domain.UserCard{},
		&domain.Deck{},
		&domain.DeckCard{},
	)
	if err != nil {
		return err
	}
	fmt.Println("Database migrated")
	return nil
}

func main() {
	err := migrate()
	if err != nil {
		log.Fatal(err)
	}
}
