package main

import (
	authController "github.com/mateusw12/chaotic-game-sub002/internal/auth/controller"
	authRepository "github.com/mateusw12/chaotic-game-sub002/internal/auth/repository"
	authUsecase "github.com/mateusw12/chaotic-game-sub002/internal/auth/usecase"

	catalogController "github.com/mateusw12/chaotic-game-sub002/internal/catalog/controller"
	catalogRepository "github.com/mateusw12/chaotic-game-sub002/internal/catalog/repository"
	catalogUsecase "github.com/mateusw12/chaotic-game-sub002/internal/catalog/usecase"

	decksController "github.com/mateusw12/chaotic-game-sub002/internal/decks/controller"
	decksRepository "github.com/mateusw12/chaotic-game-sub002/internal/decks/repository"
	decksUsecase "github.com/mateusw12/chaotic-game-sub002/internal/decks/usecase"

	progressionController "github.com/mateusw12/chaotic-game-sub002/internal/progression/controller"
	progressionRepository "github.com/mateusw12/chaotic-game-sub002/internal/progression/repository"
	progressionUsecase "github.com/mateusw12/chaotic-game-sub002/internal/progression/usecase"

	storeController "github.com/mateusw12/chaotic-game-sub002/internal/store/controller"
	storeRepository "github.com/mateusw12/chaotic-game-sub002/internal/store/repository"
	storeUsecase "github.com/mateusw12/chaotic-game-sub002/internal/store/usecase"

	trialsController "github.com/mateusw12/chaotic-game-sub002/internal/trials/controller"
	trialsRepository "github.com/mateusw12/chaotic-game-sub002/internal/trials/repository"
	trialsUsecase "github.com/mateusw12/chaotic-game-sub002/internal/trials/usecase"

	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/mateusw12/chaotic-game-sub002/domain"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/config"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/logger"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/middleware"
	"github.com/mateusw12/chaotic-game-sub002/internal/service/router"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	domain.LevelBaseXP = cfg.Levels.BaseXP
	domain.LevelGrowth = cfg.Levels.Growth

	middleware.InitRedis()
	db := middleware.DbConnect()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret-key"
	}
	jwtToken, err := middleware.NewJwtToken(secret)
	if err != nil {
		log.Fatalf("Failed to create JWT token: %v", err)
	}

	if err := logger.InitLoggers(); err != nil {
		log.Fatalf("Failed to initialize loggers: %v", err)
	}
	defer func() {
		err := logger.SyncLoggers()
		if err != nil {
			log.Fatalf("Failed to sync loggers: %v", err)
		}
	}()

	authRepo := authRepository.NewAuthRepository(db)
	authUseCase := authUsecase.NewAuthUsecase(authRepo)
	authHandler := authController.NewAuthHandler(authUseCase, jwtToken)

	progressionRepo := progressionRepository.NewProgressionRepository(db)
	progressionUseCase := progressionUsecase.NewProgressionUsecase(progressionRepo, cfg.Rewards)
	progressionHandler := progressionController.NewProgressionHandler(progressionUseCase, jwtToken)

	catalogRepo := catalogRepository.NewCatalogRepository(db)
	catalogUseCase := catalogUsecase.NewCatalogUsecase(catalogRepo)
	catalogHandler := catalogController.NewCatalogHandler(catalogUseCase, jwtToken)

	trialsRepo := trialsRepository.NewTrialsRepository(db)
	trialsUseCase := trialsUsecase.NewTrialsUsecase(trialsRepo, progressionUseCase, catalogUseCase, cfg.Rewards)
	trialsHandler := trialsController.NewTrialsHandler(trialsUseCase, jwtToken)

	storeRepo := storeRepository.NewStoreRepository(db)
	storeUseCase := storeUsecase.NewStoreUsecase(storeRepo, progressionUseCase)
	storeHandler := storeController.NewStoreHandler(storeUseCase, jwtToken)

	collectionRepo := decksRepository.NewCollectionRepository(db)
	decksUseCase := decksUsecase.NewDecksUsecase(collectionRepo, progressionUseCase)
	decksHandler := decksController.NewDecksHandler(decksUseCase, jwtToken)

	mainRouter := router.SetUpRoutes(authHandler, progressionHandler, trialsHandler, storeHandler, decksHandler, catalogHandler)
	mainRouter.Use(middleware.RequestIDMiddleware)
	mainRouter.Use(middleware.RateLimitMiddleware)
	http.Handle("/", middleware.EnableCORS(mainRouter))
	fmt.Printf("Starting HTTP server on adress %s\n", os.Getenv("BACKEND_URL"))
	if err := http.ListenAndServe(os.Getenv("BACKEND_URL"), nil); err != nil {
		fmt.Printf("Error on starting server: %s", err)
	}
}
