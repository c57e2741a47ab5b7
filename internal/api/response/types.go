package response

import (
	"time"

	"github.com/PauPin2013/Connect4/internal/model"
	"github.com/PauPin2013/Connect4/internal/services/auth"
	"github.com/PauPin2013/Connect4/internal/services/offline"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Phase represents the viewer's turn state machine phase
type Phase struct {
	Kind   string `json:"kind"`
	Prompt string `json:"prompt,omitempty"`
	Player int    `json:"player,omitempty"`
}

// PhaseFromModel converts a model.Phase
func PhaseFromModel(p model.Phase) Phase {
	return Phase{
		Kind:   string(p.Kind),
		Prompt: p.Prompt,
		Player: int(p.Player),
	}
}

// GamePlayer identifies one participant in a shared game
type GamePlayer struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Game represents a shared game session as seen by one viewer. The
// challenge answer never leaves the server; the viewer only sees the
// prompt, and only through their own phase.
type Game struct {
	ID              string      `json:"id"`
	Status          string      `json:"status"`
	Board           [][]int     `json:"board"`
	Player1         GamePlayer  `json:"player1"`
	Player2         *GamePlayer `json:"player2,omitempty"`
	CurrentPlayerID string      `json:"current_player_id,omitempty"`
	WinnerID        string      `json:"winner_id,omitempty"`
	LastMoveColumn  int         `json:"last_move_column"`
	Revision        int64       `json:"revision"`
	CreatedAt       time.Time   `json:"created_at"`
	Phase           Phase       `json:"phase"`
	StatusMessage   string      `json:"status_message"`
}

// GameFromModel converts a model.GameSession to the view a particular
// viewer receives
func GameFromModel(s *model.GameSession, viewer model.PlayerID) Game {
	var player2 *GamePlayer
	if s.Player2ID != "" {
		player2 = &GamePlayer{
			ID:          string(s.Player2ID),
			DisplayName: s.Player2Name,
		}
	}

	return Game{
		ID:     string(s.ID),
		Status: string(s.Status),
		Board:  s.Board.Cells(),
		Player1: GamePlayer{
			ID:          string(s.Player1ID),
			DisplayName: s.Player1Name,
		},
		Player2:         player2,
		CurrentPlayerID: string(s.CurrentID),
		WinnerID:        string(s.WinnerID),
		LastMoveColumn:  s.LastMoveColumn,
		Revision:        s.Revision,
		CreatedAt:       s.CreatedAt,
		Phase:           PhaseFromModel(model.PhaseForViewer(s, viewer)),
		StatusMessage:   model.StatusMessage(s, viewer),
	}
}

// GameEvent is one entry on a game's SSE event stream
type GameEvent struct {
	Type          string `json:"type"`
	Game          *Game  `json:"game,omitempty"`
	Phase         Phase  `json:"phase"`
	StatusMessage string `json:"status_message"`
}

// LocalGame represents a single-player game against the bot
type LocalGame struct {
	Status         string  `json:"status"`
	Board          [][]int `json:"board"`
	HumanTurn      bool    `json:"human_turn"`
	Winner         string  `json:"winner,omitempty"`
	LastMoveColumn int     `json:"last_move_column"`
	LastBotColumn  int     `json:"last_bot_column"`
}

// LocalGameFromModel converts an offline.LocalGame
func LocalGameFromModel(g *offline.LocalGame) LocalGame {
	var winner string
	switch g.WinnerPiece {
	case model.PlayerOne:
		winner = "human"
	case model.PlayerTwo:
		winner = "bot"
	}

	return LocalGame{
		Status:         string(g.Status),
		Board:          g.Board.Cells(),
		HumanTurn:      g.HumanTurn,
		Winner:         winner,
		LastMoveColumn: g.LastMoveColumn,
		LastBotColumn:  g.LastBotColumn,
	}
}
