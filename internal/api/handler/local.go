package handler

import (
	"encoding/json"
	"net/http"

	"github.com/PauPin2013/Connect4/internal/api/middleware"
	"github.com/PauPin2013/Connect4/internal/api/request"
	"github.com/PauPin2013/Connect4/internal/api/response"
	"github.com/PauPin2013/Connect4/internal/services/offline"
)

// LocalHandler handles single-player game endpoints. Each player has at
// most one local game against the bot, keyed by their player id.
type LocalHandler struct {
	controller *offline.Controller
}

// NewLocalHandler creates a new local game handler
func NewLocalHandler(controller *offline.Controller) *LocalHandler {
	return &LocalHandler{
		controller: controller,
	}
}

// Start handles POST /api/v1/local
func (h *LocalHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	game := h.controller.Start(player.ID)
	response.JSON(w, http.StatusCreated, response.LocalGameFromModel(game))
}

// Get handles GET /api/v1/local
func (h *LocalHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	game, err := h.controller.Get(player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LocalGameFromModel(game))
}

// Drop handles POST /api/v1/local/drop
func (h *LocalHandler) Drop(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.DropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	game, err := h.controller.Drop(player.ID, req.Column)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LocalGameFromModel(game))
}

// Reset handles POST /api/v1/local/reset
func (h *LocalHandler) Reset(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	game, err := h.controller.Reset(player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LocalGameFromModel(game))
}

// Delete handles DELETE /api/v1/local
func (h *LocalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	h.controller.Delete(player.ID)
	response.NoContent(w)
}
