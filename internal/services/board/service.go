package board

import (
	"github.com/PauPin2013/Connect4/internal/model"
)

// Service provides board engine operations shared by the online session
// controller and the offline game. The board itself is a value type;
// this service adds the move validation callers must run before applying
// a drop.
type Service struct{}

// New creates a new board Service
func New() *Service {
	return &Service{}
}

// ValidateDrop checks that a column can legally accept a piece
func (s *Service) ValidateDrop(b model.Board, col int) error {
	if col < 0 || col >= model.BoardColumns {
		return model.ErrInvalidColumn
	}
	if b.ColumnFull(col) {
		return model.ErrColumnFull
	}
	return nil
}

// ApplyMove validates and applies a drop, returning the new board
func (s *Service) ApplyMove(b model.Board, col int, piece model.Cell) (model.Board, error) {
	if err := s.ValidateDrop(b, col); err != nil {
		return b, err
	}
	return b.DropPiece(col, piece)
}

// Outcome inspects a board after a move: the winning piece if four in a
// row exists, and whether the board has filled with no winner
func (s *Service) Outcome(b model.Board) (winner model.Cell, draw bool) {
	winner = b.Winner()
	if winner == model.Empty && b.IsFull() {
		return model.Empty, true
	}
	return winner, false
}

// Interface for dependency injection
type ServiceInterface interface {
	ValidateDrop(b model.Board, col int) error
	ApplyMove(b model.Board, col int, piece model.Cell) (model.Board, error)
	Outcome(b model.Board) (winner model.Cell, draw bool)
}

var _ ServiceInterface = (*Service)(nil)
