package bot

import (
	"github.com/PauPin2013/Connect4/internal/dependencies/random"
	"github.com/PauPin2013/Connect4/internal/model"
)

// HeuristicStrategy plays a one-ply lookahead: take an immediate win if
// one exists, otherwise block the opponent's immediate win, otherwise
// pick a random open column.
type HeuristicStrategy struct {
	random random.Random
}

// NewHeuristicStrategy creates a new HeuristicStrategy
func NewHeuristicStrategy(rnd random.Random) *HeuristicStrategy {
	return &HeuristicStrategy{random: rnd}
}

// ChooseColumn implements Strategy
func (s *HeuristicStrategy) ChooseColumn(b model.Board, piece model.Cell) int {
	open := b.ValidColumns()
	if len(open) == 0 {
		return 0
	}

	if col, ok := winningColumn(b, open, piece); ok {
		return col
	}
	if col, ok := winningColumn(b, open, piece.Opponent()); ok {
		return col
	}
	return open[s.random.Intn(len(open))]
}

// winningColumn returns the first open column where dropping the given
// piece completes four in a row. Columns are probed left to right so the
// choice is deterministic when several wins exist.
func winningColumn(b model.Board, open []int, piece model.Cell) (int, bool) {
	for _, col := range open {
		next, err := b.DropPiece(col, piece)
		if err != nil {
			continue
		}
		if next.Winner() == piece {
			return col, true
		}
	}
	return 0, false
}

var _ Strategy = (*HeuristicStrategy)(nil)
