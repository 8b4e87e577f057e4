package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lagcraft/statusboard/internal/api/handler"
	"github.com/lagcraft/statusboard/internal/api/middleware"
	"github.com/lagcraft/statusboard/internal/api/response"
	"github.com/lagcraft/statusboard/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Store       storage.Store
	WSHandler   http.Handler
	StorageType string
}

// NewRouter creates a new router with the read API and the relay
// WebSocket endpoint configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	teamHandler := handler.NewTeamHandler(cfg.Store)
	playerHandler := handler.NewPlayerHandler(cfg.Store)
	allianceHandler := handler.NewAllianceHandler(cfg.Store)
	feedHandler := handler.NewFeedHandler(cfg.Store)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Team routes
	api.HandleFunc("/teams", teamHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/teams/{id:[0-9]+}", teamHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/teams/{id:[0-9]+}/players", teamHandler.ListPlayers).Methods(http.MethodGet)

	// Player routes
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players/online", playerHandler.ListOnline).Methods(http.MethodGet)
	api.HandleFunc("/players/{id:[0-9]+}", playerHandler.Get).Methods(http.MethodGet)

	// Alliance routes
	api.HandleFunc("/alliances", allianceHandler.List).Methods(http.MethodGet)

	// Feed routes
	api.HandleFunc("/events", feedHandler.ListEvents).Methods(http.MethodGet)
	api.HandleFunc("/chat", feedHandler.ListChat).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler(cfg.StorageType)).Methods(http.MethodGet)

	// Relay WebSocket endpoint. Recovery only; the connection outlives
	// the request so per-request logging is misleading here.
	if cfg.WSHandler != nil {
		r.Handle("/ws", recoveryMiddleware(cfg.WSHandler)).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(storageType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{
			Status:  "ok",
			Storage: storageType,
		})
	}
}
