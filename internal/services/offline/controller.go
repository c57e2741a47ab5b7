package offline

import (
	"log/slog"
	"sync"
	"time"

	"github.com/PauPin2013/Connect4/internal/model"
	"github.com/PauPin2013/Connect4/internal/services/board"
	"github.com/PauPin2013/Connect4/internal/services/bot"
)

// LocalGame is a single-machine game against the computer. The human
// always plays piece one and the computer piece two. There is no shared
// record and no challenges; the whole state lives in process memory.
type LocalGame struct {
	Board          model.Board         `json:"board"`
	Status         model.SessionStatus `json:"status"`
	HumanTurn      bool                `json:"human_turn"`
	WinnerPiece    model.Cell          `json:"winner_piece,omitempty"`
	LastMoveColumn int                 `json:"last_move_column"`
	LastBotColumn  int                 `json:"last_bot_column"`
}

// Controller manages offline games, one per owning player
type Controller struct {
	boardService *board.Service
	strategy     bot.Strategy
	thinkDelay   time.Duration
	logger       *slog.Logger

	mu    sync.Mutex
	games map[model.PlayerID]*LocalGame
}

// NewController creates an offline game Controller. thinkDelay is how
// long the computer pauses before moving, so the human sees the reply
// land rather than appear instantly; tests pass 0.
func NewController(boardService *board.Service, strategy bot.Strategy, thinkDelay time.Duration, logger *slog.Logger) *Controller {
	return &Controller{
		boardService: boardService,
		strategy:     strategy,
		thinkDelay:   thinkDelay,
		logger:       logger.With(slog.String("component", "offline-controller")),
		games:        make(map[model.PlayerID]*LocalGame),
	}
}

// Start begins a fresh offline game for the owner, replacing any game in
// progress. The human moves first.
func (c *Controller) Start(owner model.PlayerID) *LocalGame {
	c.mu.Lock()
	defer c.mu.Unlock()

	game := newLocalGame()
	c.games[owner] = game

	c.logger.Info("offline game started", slog.String("player_id", string(owner)))
	return copyGame(game)
}

// Get returns the owner's current offline game
func (c *Controller) Get(owner model.PlayerID) (*LocalGame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	game, ok := c.games[owner]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return copyGame(game), nil
}

// Drop plays the human's move, then, if the game is still going, lets
// the computer reply after the thinking delay. The returned state
// includes both moves.
func (c *Controller) Drop(owner model.PlayerID, column int) (*LocalGame, error) {
	c.mu.Lock()
	game, ok := c.games[owner]
	if !ok {
		c.mu.Unlock()
		return nil, model.ErrSessionNotFound
	}
	if game.Status != model.StatusPlaying {
		c.mu.Unlock()
		return nil, model.ErrGameNotPlaying
	}
	if !game.HumanTurn {
		c.mu.Unlock()
		return nil, model.ErrNotYourTurn
	}

	newBoard, err := c.boardService.ApplyMove(game.Board, column, model.PlayerOne)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	game.Board = newBoard
	game.LastMoveColumn = column
	game.HumanTurn = false
	c.settle(game)

	if game.Status != model.StatusPlaying {
		snap := copyGame(game)
		c.mu.Unlock()
		return snap, nil
	}
	c.mu.Unlock()

	// Think without holding the lock so other players' games keep moving
	if c.thinkDelay > 0 {
		time.Sleep(c.thinkDelay)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The owner may have reset or deleted the game while the computer was
	// thinking; only move if this exact game is still waiting on the bot
	if cur, ok := c.games[owner]; ok && cur == game &&
		cur.Status == model.StatusPlaying && !cur.HumanTurn {
		c.botMove(game)
	}
	return copyGame(game), nil
}

// Reset restarts the owner's offline game in place
func (c *Controller) Reset(owner model.PlayerID) (*LocalGame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.games[owner]; !ok {
		return nil, model.ErrSessionNotFound
	}
	game := newLocalGame()
	c.games[owner] = game
	return copyGame(game), nil
}

// Delete discards the owner's offline game
func (c *Controller) Delete(owner model.PlayerID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.games, owner)
}

func (c *Controller) botMove(game *LocalGame) {
	column := c.strategy.ChooseColumn(game.Board, model.PlayerTwo)
	newBoard, err := c.boardService.ApplyMove(game.Board, column, model.PlayerTwo)
	if err != nil {
		// The strategy only returns open columns; treat a failure as a
		// pass back to the human rather than wedging the game
		c.logger.Error("bot move failed",
			slog.Int("column", column),
			slog.String("error", err.Error()),
		)
		game.HumanTurn = true
		return
	}
	game.Board = newBoard
	game.LastBotColumn = column
	game.HumanTurn = true
	c.settle(game)
}

// settle updates the game status after a move
func (c *Controller) settle(game *LocalGame) {
	winner, draw := c.boardService.Outcome(game.Board)
	switch {
	case winner != model.Empty:
		game.Status = model.StatusFinished
		game.WinnerPiece = winner
	case draw:
		game.Status = model.StatusDraw
	}
}

func newLocalGame() *LocalGame {
	return &LocalGame{
		Board:          model.NewBoard(),
		Status:         model.StatusPlaying,
		HumanTurn:      true,
		LastMoveColumn: -1,
		LastBotColumn:  -1,
	}
}

func copyGame(game *LocalGame) *LocalGame {
	cp := *game
	return &cp
}
