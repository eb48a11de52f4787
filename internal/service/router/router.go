package router

import (
	auth "github.com/mateusw12/chaotic-game-sub002/internal/auth/controller"
	catalog "github.com/mateusw12/chaotic-game-sub002/internal/catalog/controller"
	decks "github.com/mateusw12/chaotic-game-sub002/internal/decks/controller"
	progression "github.com/mateusw12/chaotic-game-sub002/internal/progression/controller"
	store "github.com/mateusw12/chaotic-game-sub002/internal/store/controller"
	trials "github.com/mateusw12/chaotic-game-sub002/internal/trials/controller"

	"github.com/gorilla/mux"
)

func SetUpRoutes(
	authHandler *auth.AuthHandler,
	progressionHandler *progression.ProgressionHandler,
	trialsHandler *trials.TrialsHandler,
	storeHandler *store.StoreHandler,
	decksHandler *decks.DecksHandler,
	catalogHandler *catalog.CatalogHandler,
) *mux.Router {
	router := mux.NewRouter()
	api := "/api"

	router.HandleFunc(api+"/users/sync", authHandler.SyncUser).Methods("POST") // Upsert user from session claims
	router.HandleFunc(api+"/users/me", authHandler.GetMe).Methods("GET")

	router.HandleFunc(api+"/progression/battle-victory", progressionHandler.BattleVictory).Methods("POST")
	router.HandleFunc(api+"/progression/cards/discard", progressionHandler.DiscardCard).Methods("POST")
	router.HandleFunc(api+"/progression/overview", progressionHandler.GetOverview).Methods("GET")

	router.HandleFunc(api+"/codex-trials/award-card", trialsHandler.AwardCard).Methods("POST")
	router.HandleFunc(api+"/codex-trials/claim-pack", trialsHandler.ClaimPack).Methods("POST")
	router.HandleFunc(api+"/codex-trials/claimed-leagues", trialsHandler.ClaimedLeagues).Methods("GET")

	router.HandleFunc(api+"/store/packs", storeHandler.GetPacks).Methods("GET")
	router.HandleFunc(api+"/store/packs/{id}/purchase", storeHandler.PurchasePack).Methods("POST")

	router.HandleFunc(api+"/collection", decksHandler.GetCollection).Methods("GET")
	router.HandleFunc(api+"/decks", decksHandler.ListDecks).Methods("GET")
	router.HandleFunc(api+"/decks", decksHandler.CreateDeck).Methods("POST")
	router.HandleFunc(api+"/decks/{id}/cards", decksHandler.AddCard).Methods("POST")
	router.HandleFunc(api+"/decks/{id}/cards/{cardType}/{cardId}", decksHandler.RemoveCard).Methods("DELETE")

	router.HandleFunc(api+"/catalog/{type}", catalogHandler.ListCards).Methods("GET")

	router.HandleFunc(api+"/admin/users", authHandler.ListUsers).Methods("GET") // Admin only
	router.HandleFunc(api+"/admin/users/{id}/role", authHandler.UpdateUserRole).Methods("PATCH")
	router.HandleFunc(api+"/admin/catalog/{type}", catalogHandler.CreateCard).Methods("POST")
	router.HandleFunc(api+"/admin/catalog/{type}/{id}", catalogHandler.UpdateCard).Methods("PUT")
	router.HandleFunc(api+"/admin/catalog/{type}/{id}", catalogHandler.DeleteCard).Methods("DELETE")

	return router
}
