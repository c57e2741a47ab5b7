package bot

import "github.com/PauPin2013/Connect4/internal/model"

// Strategy defines how the computer opponent chooses its column
type Strategy interface {
	// ChooseColumn selects a column for the given piece to drop into.
	// The board is guaranteed to have at least one open column.
	ChooseColumn(b model.Board, piece model.Cell) int
}
