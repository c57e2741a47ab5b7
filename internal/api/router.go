package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/PauPin2013/Connect4/internal/api/handler"
	"github.com/PauPin2013/Connect4/internal/api/middleware"
	"github.com/PauPin2013/Connect4/internal/services/auth"
	"github.com/PauPin2013/Connect4/internal/services/offline"
	"github.com/PauPin2013/Connect4/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	AuthService       *auth.Service
	GameController    session.ControllerInterface
	GameWatcher       session.WatcherInterface
	OfflineController *offline.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.GameWatcher, cfg.Logger)
	localHandler := handler.NewLocalHandler(cfg.OfflineController)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Shared game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	games.HandleFunc("/{id}/join", gameHandler.Join).Methods(http.MethodPost)
	games.HandleFunc("/{id}/drop", gameHandler.Drop).Methods(http.MethodPost)
	games.HandleFunc("/{id}/answer", gameHandler.Answer).Methods(http.MethodPost)
	games.HandleFunc("/{id}/reset", gameHandler.Reset).Methods(http.MethodPost)
	games.HandleFunc("/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	// Single-player game routes (all require auth)
	local := api.PathPrefix("/local").Subrouter()
	local.Use(authMiddleware)
	local.HandleFunc("", localHandler.Start).Methods(http.MethodPost)
	local.HandleFunc("", localHandler.Get).Methods(http.MethodGet)
	local.HandleFunc("", localHandler.Delete).Methods(http.MethodDelete)
	local.HandleFunc("/drop", localHandler.Drop).Methods(http.MethodPost)
	local.HandleFunc("/reset", localHandler.Reset).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
