package model

import "encoding/json"

// Board dimensions are fixed for standard Connect 4
const (
	BoardRows    = 6
	BoardColumns = 7
	winLength    = 4
)

// Cell is the contents of a single board position
type Cell int

const (
	Empty     Cell = 0
	PlayerOne Cell = 1
	PlayerTwo Cell = 2
)

// Opponent returns the other player's cell value
func (c Cell) Opponent() Cell {
	switch c {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return Empty
	}
}

// Board is an immutable 6x7 Connect 4 grid.
// Cells are row-major with row 0 at the top. Pieces are gravity-packed:
// no empty cell ever sits below a filled one in a column.
type Board struct {
	cells [BoardRows][BoardColumns]Cell
}

// NewBoard creates an empty board
func NewBoard() Board {
	return Board{}
}

// Cell returns the contents of a position
func (b Board) Cell(row, col int) (Cell, error) {
	if row < 0 || row >= BoardRows || col < 0 || col >= BoardColumns {
		return Empty, ErrOutOfBounds
	}
	return b.cells[row][col], nil
}

// DropPiece returns a new board with a piece placed in the lowest empty
// row of the column. The receiver is not modified. Dropping into a full
// column is a hard error rather than a silent no-op.
func (b Board) DropPiece(col int, piece Cell) (Board, error) {
	if col < 0 || col >= BoardColumns {
		return b, ErrInvalidColumn
	}
	if piece != PlayerOne && piece != PlayerTwo {
		return b, ErrInvalidColumn
	}
	for row := BoardRows - 1; row >= 0; row-- {
		if b.cells[row][col] == Empty {
			b.cells[row][col] = piece
			return b, nil
		}
	}
	return b, ErrColumnFull
}

// ColumnFull reports whether the column has no space left
func (b Board) ColumnFull(col int) bool {
	if col < 0 || col >= BoardColumns {
		return true
	}
	return b.cells[0][col] != Empty
}

// ValidColumns returns all columns that can still accept a piece
func (b Board) ValidColumns() []int {
	var cols []int
	for col := 0; col < BoardColumns; col++ {
		if !b.ColumnFull(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

// IsFull reports whether every cell is occupied
func (b Board) IsFull() bool {
	for col := 0; col < BoardColumns; col++ {
		if b.cells[0][col] == Empty {
			return false
		}
	}
	return true
}

// Winner scans for four consecutive identical pieces and returns the owner,
// or Empty if no line exists. Scan order is deterministic: horizontal
// (row-major), vertical (column-major), diagonal down-right, diagonal
// up-right. A single move produces at most one winning line, so the order
// only matters for test stability.
func (b Board) Winner() Cell {
	// Horizontal
	for r := 0; r < BoardRows; r++ {
		for c := 0; c <= BoardColumns-winLength; c++ {
			v := b.cells[r][c]
			if v != Empty &&
				v == b.cells[r][c+1] &&
				v == b.cells[r][c+2] &&
				v == b.cells[r][c+3] {
				return v
			}
		}
	}

	// Vertical
	for c := 0; c < BoardColumns; c++ {
		for r := 0; r <= BoardRows-winLength; r++ {
			v := b.cells[r][c]
			if v != Empty &&
				v == b.cells[r+1][c] &&
				v == b.cells[r+2][c] &&
				v == b.cells[r+3][c] {
				return v
			}
		}
	}

	// Diagonal down-right
	for r := 0; r <= BoardRows-winLength; r++ {
		for c := 0; c <= BoardColumns-winLength; c++ {
			v := b.cells[r][c]
			if v != Empty &&
				v == b.cells[r+1][c+1] &&
				v == b.cells[r+2][c+2] &&
				v == b.cells[r+3][c+3] {
				return v
			}
		}
	}

	// Diagonal up-right
	for r := winLength - 1; r < BoardRows; r++ {
		for c := 0; c <= BoardColumns-winLength; c++ {
			v := b.cells[r][c]
			if v != Empty &&
				v == b.cells[r-1][c+1] &&
				v == b.cells[r-2][c+2] &&
				v == b.cells[r-3][c+3] {
				return v
			}
		}
	}

	return Empty
}

// Cells returns the grid as a row-major integer matrix, the canonical
// wire encoding (0=empty, 1=player one, 2=player two)
func (b Board) Cells() [][]int {
	out := make([][]int, BoardRows)
	for r := 0; r < BoardRows; r++ {
		out[r] = make([]int, BoardColumns)
		for c := 0; c < BoardColumns; c++ {
			out[r][c] = int(b.cells[r][c])
		}
	}
	return out
}

// BoardFromCells rebuilds a board from the wire matrix. The matrix must be
// exactly 6x7 with values in {0,1,2}.
func BoardFromCells(cells [][]int) (Board, error) {
	if len(cells) != BoardRows {
		return Board{}, ErrMalformedBoard
	}
	var b Board
	for r, row := range cells {
		if len(row) != BoardColumns {
			return Board{}, ErrMalformedBoard
		}
		for c, v := range row {
			if v < 0 || v > 2 {
				return Board{}, ErrMalformedBoard
			}
			b.cells[r][c] = Cell(v)
		}
	}
	return b, nil
}

// MarshalJSON encodes the board as the canonical matrix
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Cells())
}

// UnmarshalJSON decodes the canonical matrix
func (b *Board) UnmarshalJSON(data []byte) error {
	var cells [][]int
	if err := json.Unmarshal(data, &cells); err != nil {
		return err
	}
	parsed, err := BoardFromCells(cells)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
