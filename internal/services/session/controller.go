package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/PauPin2013/Connect4/internal/dependencies/clock"
	"github.com/PauPin2013/Connect4/internal/dependencies/random"
	"github.com/PauPin2013/Connect4/internal/model"
	"github.com/PauPin2013/Connect4/internal/services/board"
	"github.com/PauPin2013/Connect4/internal/services/vocabulary"
	"github.com/PauPin2013/Connect4/internal/storage"
)

const (
	// SessionIDLength is the length of generated session ids
	SessionIDLength = 12
	// SessionIDAlphabet is the character set for session ids
	SessionIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// casRetries bounds how often a mutation is retried after losing a
	// revision race before the conflict is surfaced to the caller
	casRetries = 3
)

// Controller owns all mutations of the shared GameSession record: session
// lifecycle, move validation, and the challenge sub-protocol. Every
// in-game rewrite goes through a compare-and-set on the record's revision
// so two clients racing on a stale read cannot lose an update.
type Controller struct {
	storage      storage.Storage
	boardService *board.Service
	vocab        *vocabulary.Service
	clock        clock.Clock
	random       random.Random
	logger       *slog.Logger
}

// NewController creates a new session Controller
func NewController(
	store storage.Storage,
	boardService *board.Service,
	vocab *vocabulary.Service,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      store,
		boardService: boardService,
		vocab:        vocab,
		clock:        clk,
		random:       rnd,
		logger:       logger.With(slog.String("component", "session-controller")),
	}
}

// Create builds a new shared session with the creator as player one.
// The session starts in waiting status until a second player joins.
func (c *Controller) Create(ctx context.Context, creator model.Player) (*model.GameSession, error) {
	now := c.clock.Now()

	// Generate an unused session id
	var id model.SessionID
	for {
		id = model.SessionID(c.random.String(SessionIDLength, SessionIDAlphabet))
		exists, err := c.storage.SessionExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	session := &model.GameSession{
		ID:             id,
		Player1ID:      creator.ID,
		Player1Name:    creator.DisplayName,
		Board:          model.NewBoard(),
		CurrentID:      creator.ID,
		Status:         model.StatusWaiting,
		LastMoveColumn: -1,
		Revision:       1,
		CreatedAt:      now,
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(id)),
		slog.String("player1_id", string(creator.ID)),
	)

	return session, nil
}

// Get retrieves a session by id
func (c *Controller) Get(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	return c.storage.GetSession(ctx, id)
}

// Join adds a second player to a waiting session and starts the game.
// Joining a session you are already in is idempotent. When the game
// starts the first challenge is issued to player one.
func (c *Controller) Join(ctx context.Context, id model.SessionID, joiner model.Player) (*model.GameSession, error) {
	return c.mutate(ctx, id, func(s *model.GameSession) error {
		if s.Player1ID == joiner.ID || s.Player2ID == joiner.ID {
			// Re-joining is a no-op; the caller just resubscribes
			return errNoChange
		}
		if s.Player2ID != "" {
			return model.ErrSessionFull
		}

		s.Player2ID = joiner.ID
		s.Player2Name = joiner.DisplayName
		s.Status = model.StatusPlaying
		c.issueChallenge(s, s.Player1ID)
		return nil
	})
}

// Drop validates and applies a move by the given player. The guards run
// against the freshest stored revision: it must be the caller's turn, the
// game must be in playing status, any pending challenge must have been
// answered correctly, and the column must have space.
func (c *Controller) Drop(ctx context.Context, id model.SessionID, playerID model.PlayerID, column int) (*model.GameSession, error) {
	return c.mutate(ctx, id, func(s *model.GameSession) error {
		if !s.HasPlayer(playerID) {
			return model.ErrNotInSession
		}
		if s.Status != model.StatusPlaying {
			return model.ErrGameNotPlaying
		}
		if s.CurrentID != playerID {
			return model.ErrNotYourTurn
		}
		if s.ChallengePending(playerID) {
			return model.ErrChallengePending
		}

		newBoard, err := c.boardService.ApplyMove(s.Board, column, s.PieceFor(playerID))
		if err != nil {
			return err
		}

		winner, draw := c.boardService.Outcome(newBoard)
		next := s.OpponentOf(playerID)

		s.Board = newBoard
		s.LastMoveColumn = column
		s.ClearChallenge()

		switch {
		case winner != model.Empty:
			s.Status = model.StatusFinished
			s.WinnerID = playerID
			s.CurrentID = ""
		case draw:
			s.Status = model.StatusDraw
			s.CurrentID = ""
		default:
			s.CurrentID = next
			c.issueChallenge(s, next)
		}
		return nil
	})
}

// Answer submits a challenge answer for the targeted player. A correct
// answer unlocks the move while keeping the turn; a wrong answer passes
// the turn to the opponent without touching the board and issues them a
// fresh challenge.
func (c *Controller) Answer(ctx context.Context, id model.SessionID, playerID model.PlayerID, attempt string) (*model.GameSession, error) {
	return c.mutate(ctx, id, func(s *model.GameSession) error {
		if !s.HasPlayer(playerID) {
			return model.ErrNotInSession
		}
		if s.Status != model.StatusPlaying {
			return model.ErrGameNotPlaying
		}
		if s.ChallengeWord == "" {
			return model.ErrNoChallenge
		}
		if s.ChallengeTargetID != playerID || s.CurrentID != playerID {
			return model.ErrNotYourTurn
		}

		if vocabulary.IsCorrect(attempt, s.ChallengeAnswer) {
			correct := true
			s.ChallengeCorrect = &correct
			// Word stays on the record for display until the move lands
			return nil
		}

		s.CurrentID = s.OpponentOf(playerID)
		s.ClearChallenge()
		c.issueChallenge(s, s.CurrentID)
		return nil
	})
}

// Reset reinitializes a session's game. Creator-only. With both players
// present the game restarts immediately with player one to move; with no
// opponent yet it returns to waiting.
func (c *Controller) Reset(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*model.GameSession, error) {
	return c.mutate(ctx, id, func(s *model.GameSession) error {
		if s.Player1ID != playerID {
			return model.ErrNotCreator
		}

		s.Board = model.NewBoard()
		s.CurrentID = s.Player1ID
		s.WinnerID = ""
		s.LastMoveColumn = -1
		s.ClearChallenge()
		if s.Player2ID != "" {
			s.Status = model.StatusPlaying
			c.issueChallenge(s, s.Player1ID)
		} else {
			s.Status = model.StatusWaiting
		}
		return nil
	})
}

// Delete removes the shared record entirely. Creator-only. Watchers
// observe the deletion and reset their local state.
func (c *Controller) Delete(ctx context.Context, id model.SessionID, playerID model.PlayerID) error {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}
	if session.Player1ID != playerID {
		return model.ErrNotCreator
	}

	if err := c.storage.DeleteSession(ctx, id); err != nil {
		return err
	}

	c.logger.Info("session deleted",
		slog.String("session_id", string(id)),
		slog.String("player_id", string(playerID)),
	)
	return nil
}

// errNoChange signals that a mutation decided the stored record is
// already in the desired state and no write is needed
var errNoChange = errors.New("no change")

// mutate runs a read-modify-write cycle against the freshest stored
// revision, retrying a bounded number of times when a concurrent writer
// wins the race. The mutation fn sees a copy and may reject with a
// validation error, which aborts without writing.
func (c *Controller) mutate(ctx context.Context, id model.SessionID, fn func(*model.GameSession) error) (*model.GameSession, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		session, err := c.storage.GetSession(ctx, id)
		if err != nil {
			return nil, err
		}

		expected := session.Revision
		if err := fn(session); err != nil {
			if errors.Is(err, errNoChange) {
				return session, nil
			}
			return nil, err
		}

		session.Revision = expected + 1
		err = c.storage.SaveSessionIf(ctx, session, expected)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, model.ErrRevisionConflict) {
			return nil, err
		}

		c.logger.Warn("session revision conflict, retrying",
			slog.String("session_id", string(id)),
			slog.Int64("expected_revision", expected),
		)
	}
	return nil, model.ErrRevisionConflict
}

// issueChallenge attaches a fresh vocabulary challenge for the target
// player. An empty or unloaded bank degrades to a challenge-free turn so
// the game is never blocked on vocabulary data.
func (c *Controller) issueChallenge(s *model.GameSession, target model.PlayerID) {
	word, err := c.vocab.Random(c.random)
	if err != nil {
		s.ClearChallenge()
		c.logger.Warn("no vocabulary words available, skipping challenge",
			slog.String("session_id", string(s.ID)),
		)
		return
	}

	s.ChallengeWord = word.Word
	s.ChallengeAnswer = word.Translation
	s.ChallengeCorrect = nil
	s.ChallengeTargetID = target
}

// Interface for dependency injection
type ControllerInterface interface {
	Create(ctx context.Context, creator model.Player) (*model.GameSession, error)
	Get(ctx context.Context, id model.SessionID) (*model.GameSession, error)
	Join(ctx context.Context, id model.SessionID, joiner model.Player) (*model.GameSession, error)
	Drop(ctx context.Context, id model.SessionID, playerID model.PlayerID, column int) (*model.GameSession, error)
	Answer(ctx context.Context, id model.SessionID, playerID model.PlayerID, attempt string) (*model.GameSession, error)
	Reset(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*model.GameSession, error)
	Delete(ctx context.Context, id model.SessionID, playerID model.PlayerID) error
}

var _ ControllerInterface = (*Controller)(nil)
