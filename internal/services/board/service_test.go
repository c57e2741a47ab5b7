package board

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/PauPin2013/Connect4/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

// ValidateDrop tests

func (s *ServiceSuite) TestValidateDropSucceedsOnEmptyBoard() {
	b := model.NewBoard()
	for col := 0; col < model.BoardColumns; col++ {
		s.NoError(s.service.ValidateDrop(b, col))
	}
}

func (s *ServiceSuite) TestValidateDropRejectsOutOfRangeColumn() {
	b := model.NewBoard()
	s.ErrorIs(s.service.ValidateDrop(b, -1), model.ErrInvalidColumn)
	s.ErrorIs(s.service.ValidateDrop(b, model.BoardColumns), model.ErrInvalidColumn)
}

func (s *ServiceSuite) TestValidateDropRejectsFullColumn() {
	b := model.NewBoard()
	var err error
	for i := 0; i < model.BoardRows; i++ {
		piece := model.PlayerOne
		if i%2 == 1 {
			piece = model.PlayerTwo
		}
		b, err = b.DropPiece(2, piece)
		s.Require().NoError(err)
	}

	s.ErrorIs(s.service.ValidateDrop(b, 2), model.ErrColumnFull)
	s.NoError(s.service.ValidateDrop(b, 3))
}

// ApplyMove tests

func (s *ServiceSuite) TestApplyMoveStacksBottomUp() {
	b := model.NewBoard()

	b, err := s.service.ApplyMove(b, 3, model.PlayerOne)
	s.Require().NoError(err)
	b, err = s.service.ApplyMove(b, 3, model.PlayerTwo)
	s.Require().NoError(err)

	bottom, err := b.Cell(model.BoardRows-1, 3)
	s.Require().NoError(err)
	s.Equal(model.PlayerOne, bottom)

	above, err := b.Cell(model.BoardRows-2, 3)
	s.Require().NoError(err)
	s.Equal(model.PlayerTwo, above)
}

func (s *ServiceSuite) TestApplyMoveDoesNotMutateInput() {
	b := model.NewBoard()
	_, err := s.service.ApplyMove(b, 0, model.PlayerOne)
	s.Require().NoError(err)

	s.Equal(model.NewBoard(), b)
}

// Outcome tests

func (s *ServiceSuite) TestOutcomeOngoingGame() {
	winner, draw := s.service.Outcome(model.NewBoard())
	s.Equal(model.Empty, winner)
	s.False(draw)
}

func (s *ServiceSuite) TestOutcomeHorizontalWin() {
	b := model.NewBoard()
	var err error
	for col := 0; col < 4; col++ {
		b, err = b.DropPiece(col, model.PlayerOne)
		s.Require().NoError(err)
	}

	winner, draw := s.service.Outcome(b)
	s.Equal(model.PlayerOne, winner)
	s.False(draw)
}

func (s *ServiceSuite) TestOutcomeVerticalWin() {
	b := model.NewBoard()
	var err error
	for i := 0; i < 4; i++ {
		b, err = b.DropPiece(5, model.PlayerTwo)
		s.Require().NoError(err)
	}

	winner, _ := s.service.Outcome(b)
	s.Equal(model.PlayerTwo, winner)
}

func (s *ServiceSuite) TestOutcomeDiagonalWins() {
	// Down-right diagonal of ones embedded in a sparse board
	b, err := model.BoardFromCells([][]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0, 0},
		{2, 1, 0, 0, 0, 0, 0},
		{2, 2, 1, 0, 0, 0, 0},
		{2, 1, 2, 1, 0, 0, 0},
	})
	s.Require().NoError(err)

	winner, _ := s.service.Outcome(b)
	s.Equal(model.PlayerOne, winner)

	// Up-right diagonal of twos
	b, err = model.BoardFromCells([][]int{
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 2, 0, 0},
		{0, 0, 0, 2, 1, 0, 0},
		{0, 0, 2, 1, 1, 0, 0},
		{0, 2, 1, 2, 1, 0, 0},
	})
	s.Require().NoError(err)

	winner, _ = s.service.Outcome(b)
	s.Equal(model.PlayerTwo, winner)
}

func (s *ServiceSuite) TestOutcomeDraw() {
	// Full board with no four in a row anywhere
	b, err := model.BoardFromCells([][]int{
		{1, 2, 1, 2, 1, 2, 1},
		{1, 2, 1, 2, 1, 2, 1},
		{2, 1, 2, 1, 2, 1, 2},
		{2, 1, 2, 1, 2, 1, 2},
		{1, 2, 1, 2, 1, 2, 1},
		{1, 2, 1, 2, 1, 2, 1},
	})
	s.Require().NoError(err)

	winner, draw := s.service.Outcome(b)
	s.Equal(model.Empty, winner)
	s.True(draw)
}
