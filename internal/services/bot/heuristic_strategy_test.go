package bot

import (
	"testing"

	"github.com/PauPin2013/Connect4/internal/dependencies/mocks"
	"github.com/PauPin2013/Connect4/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardFrom(t *testing.T, cells [][]int) model.Board {
	t.Helper()
	b, err := model.BoardFromCells(cells)
	require.NoError(t, err)
	return b
}

func TestHeuristicTakesImmediateWin(t *testing.T) {
	// Three bot pieces stacked in column 2
	b := boardFrom(t, [][]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 2, 0, 0, 0, 0},
		{0, 0, 2, 0, 0, 0, 0},
		{0, 0, 2, 1, 1, 0, 0},
	})
	s := NewHeuristicStrategy(mocks.NewMockRandom())

	assert.Equal(t, 2, s.ChooseColumn(b, model.PlayerTwo))
}

func TestHeuristicBlocksOpponentWin(t *testing.T) {
	// Opponent threatens a horizontal four completed at column 5
	b := boardFrom(t, [][]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 2, 0, 0},
		{0, 0, 1, 1, 1, 0, 2},
	})
	s := NewHeuristicStrategy(mocks.NewMockRandom())

	// Block at either end; column 1 is probed first
	assert.Equal(t, 1, s.ChooseColumn(b, model.PlayerTwo))
}

func TestHeuristicPrefersWinOverBlock(t *testing.T) {
	// Both sides threaten a win; taking the win beats blocking
	b := boardFrom(t, [][]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 2},
		{0, 0, 0, 0, 0, 0, 2},
		{0, 0, 0, 0, 0, 0, 2},
		{0, 1, 1, 1, 0, 0, 1},
	})
	s := NewHeuristicStrategy(mocks.NewMockRandom())

	assert.Equal(t, 6, s.ChooseColumn(b, model.PlayerTwo))
}

func TestHeuristicFallsBackToRandomOpenColumn(t *testing.T) {
	b := model.NewBoard()
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(4)
	s := NewHeuristicStrategy(rnd)

	assert.Equal(t, 4, s.ChooseColumn(b, model.PlayerTwo))
}

func TestHeuristicRandomSkipsFullColumns(t *testing.T) {
	// Column 0 is full; index 0 of the open set is column 1
	cells := [][]int{
		{1, 0, 0, 0, 0, 0, 0},
		{2, 0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0, 0},
		{2, 0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0, 0},
		{2, 0, 0, 0, 0, 0, 0},
	}
	b := boardFrom(t, cells)
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(0)
	s := NewHeuristicStrategy(rnd)

	assert.Equal(t, 1, s.ChooseColumn(b, model.PlayerTwo))
}

func TestHeuristicDetectsDiagonalWin(t *testing.T) {
	// Dropping in column 4 lands on row 2, completing the up-right
	// diagonal (5,1)-(4,2)-(3,3)-(2,4)
	b := boardFrom(t, [][]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 2, 2, 0, 0},
		{0, 0, 2, 1, 1, 0, 0},
		{0, 2, 1, 2, 1, 0, 0},
	})
	s := NewHeuristicStrategy(mocks.NewMockRandom())

	assert.Equal(t, 4, s.ChooseColumn(b, model.PlayerTwo))
}
