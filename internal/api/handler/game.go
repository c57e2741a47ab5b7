package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/PauPin2013/Connect4/internal/api/middleware"
	"github.com/PauPin2013/Connect4/internal/api/request"
	"github.com/PauPin2013/Connect4/internal/api/response"
	"github.com/PauPin2013/Connect4/internal/api/sse"
	"github.com/PauPin2013/Connect4/internal/model"
	"github.com/PauPin2013/Connect4/internal/services/session"
)

// GameHandler handles shared game endpoints
type GameHandler struct {
	controller session.ControllerInterface
	watcher    session.WatcherInterface
	logger     *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller session.ControllerInterface, watcher session.WatcherInterface, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		controller: controller,
		watcher:    watcher,
		logger:     logger,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	s, err := h.controller.Create(r.Context(), *player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(s, player.ID))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	s, err := h.controller.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(s, player.ID))
}

// Join handles POST /api/v1/games/{id}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	s, err := h.controller.Join(r.Context(), id, *player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(s, player.ID))
}

// Drop handles POST /api/v1/games/{id}/drop
func (h *GameHandler) Drop(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.DropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	s, err := h.controller.Drop(r.Context(), id, player.ID, req.Column)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(s, player.ID))
}

// Answer handles POST /api/v1/games/{id}/answer
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Answer == "" {
		WriteError(w, NewInvalidRequestError("answer is required"))
		return
	}

	s, err := h.controller.Answer(r.Context(), id, player.ID, req.Answer)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(s, player.ID))
}

// Reset handles POST /api/v1/games/{id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	s, err := h.controller.Reset(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(s, player.ID))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	if err := h.controller.Delete(r.Context(), id, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Events handles GET /api/v1/games/{id}/events, streaming session
// updates for the authenticated viewer as server-sent events
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	updates, cancel, err := h.watcher.Watch(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}
	defer cancel()

	events := make(chan sse.Event)
	go func() {
		defer close(events)
		for update := range updates {
			select {
			case events <- eventFromUpdate(update, player.ID):
			case <-r.Context().Done():
				return
			}
		}
	}()

	if err := sse.Stream(w, r, events); err != nil {
		h.logger.Error("sse stream failed",
			slog.String("game_id", string(id)),
			slog.Any("error", err),
		)
	}
}

func eventFromUpdate(u session.Update, viewer model.PlayerID) sse.Event {
	var game *response.Game
	if u.Session != nil {
		g := response.GameFromModel(u.Session, viewer)
		game = &g
	}

	return sse.Event{
		Name: string(u.Type),
		Data: response.GameEvent{
			Type:          string(u.Type),
			Game:          game,
			Phase:         response.PhaseFromModel(u.Phase),
			StatusMessage: u.Message,
		},
	}
}
