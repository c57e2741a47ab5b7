package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/PauPin2013/Connect4/internal/model"
	"github.com/PauPin2013/Connect4/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newSession(id model.SessionID) *model.GameSession {
	return &model.GameSession{
		ID:             id,
		Player1ID:      "alice-id",
		Player1Name:    "Alice",
		Board:          model.NewBoard(),
		CurrentID:      "alice-id",
		Status:         model.StatusWaiting,
		LastMoveColumn: -1,
		Revision:       1,
		CreatedAt:      time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice", IsGuest: true}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))

	got, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Alice", got.DisplayName)
	s.True(got.IsGuest)
}

func (s *StorageSuite) TestGetMissingPlayerFails() {
	_, err := s.storage.GetPlayer(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))
	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "player-1"))

	_, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{PlayerID: "player-1", Username: "alice", PasswordHash: "hash"}
	s.Require().NoError(s.storage.SaveRegisteredPlayer(s.ctx, rp))

	got, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("player-1"), got.PlayerID)

	_, err = s.storage.GetRegisteredPlayerByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	session := s.newSession("GAME1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	got, err := s.storage.GetSession(s.ctx, "GAME1")
	s.Require().NoError(err)
	s.Equal(session.ID, got.ID)
	s.Equal(session.Board, got.Board)
	s.Equal(int64(1), got.Revision)
}

func (s *StorageSuite) TestGetSessionReturnsCopy() {
	session := s.newSession("GAME1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	first, err := s.storage.GetSession(s.ctx, "GAME1")
	s.Require().NoError(err)
	first.Player2ID = "mutated"

	second, err := s.storage.GetSession(s.ctx, "GAME1")
	s.Require().NoError(err)
	s.Equal(model.PlayerID(""), second.Player2ID)
}

func (s *StorageSuite) TestGetMissingSessionFails() {
	_, err := s.storage.GetSession(s.ctx, "NOPE")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionExists() {
	session := s.newSession("GAME1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	exists, err := s.storage.SessionExists(s.ctx, "GAME1")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.SessionExists(s.ctx, "NOPE")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestDeleteSession() {
	session := s.newSession("GAME1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))
	s.Require().NoError(s.storage.DeleteSession(s.ctx, "GAME1"))

	_, err := s.storage.GetSession(s.ctx, "GAME1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSaveSessionIfSucceedsOnMatchingRevision() {
	session := s.newSession("GAME1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	session.Status = model.StatusPlaying
	session.Revision = 2
	s.Require().NoError(s.storage.SaveSessionIf(s.ctx, session, 1))

	got, err := s.storage.GetSession(s.ctx, "GAME1")
	s.Require().NoError(err)
	s.Equal(model.StatusPlaying, got.Status)
	s.Equal(int64(2), got.Revision)
}

func (s *StorageSuite) TestSaveSessionIfFailsOnStaleRevision() {
	session := s.newSession("GAME1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	stale := s.newSession("GAME1")
	stale.Revision = 2
	err := s.storage.SaveSessionIf(s.ctx, stale, 5)
	s.ErrorIs(err, model.ErrRevisionConflict)
}

func (s *StorageSuite) TestSaveSessionIfFailsForMissingSession() {
	session := s.newSession("NOPE")
	err := s.storage.SaveSessionIf(s.ctx, session, 1)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Watch tests

func (s *StorageSuite) receive(ch <-chan storage.SessionChange) storage.SessionChange {
	select {
	case change := <-ch:
		return change
	case <-time.After(2 * time.Second):
		s.Require().FailNow("timed out waiting for change")
		return storage.SessionChange{}
	}
}

func (s *StorageSuite) TestWatchDeliversSaves() {
	session := s.newSession("GAME1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	ch, cancel, err := s.storage.WatchSession(s.ctx, "GAME1")
	s.Require().NoError(err)
	defer cancel()

	session.Status = model.StatusPlaying
	session.Revision = 2
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	change := s.receive(ch)
	s.Equal(model.SessionID("GAME1"), change.ID)
	s.Require().NotNil(change.Session)
	s.Equal(model.StatusPlaying, change.Session.Status)
	s.Equal(int64(2), change.Session.Revision)
}

func (s *StorageSuite) TestWatchDeliversDeletion() {
	session := s.newSession("GAME1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	ch, cancel, err := s.storage.WatchSession(s.ctx, "GAME1")
	s.Require().NoError(err)
	defer cancel()

	s.Require().NoError(s.storage.DeleteSession(s.ctx, "GAME1"))

	change := s.receive(ch)
	s.Nil(change.Session)
}

func (s *StorageSuite) TestWatchDeliversToAllSubscribers() {
	session := s.newSession("GAME1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	ch1, cancel1, err := s.storage.WatchSession(s.ctx, "GAME1")
	s.Require().NoError(err)
	defer cancel1()
	ch2, cancel2, err := s.storage.WatchSession(s.ctx, "GAME1")
	s.Require().NoError(err)
	defer cancel2()

	session.Revision = 2
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	s.Equal(int64(2), s.receive(ch1).Session.Revision)
	s.Equal(int64(2), s.receive(ch2).Session.Revision)
}

func (s *StorageSuite) TestCancelledWatcherStopsReceiving() {
	session := s.newSession("GAME1")
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	ch, cancel, err := s.storage.WatchSession(s.ctx, "GAME1")
	s.Require().NoError(err)
	cancel()

	session.Revision = 2
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	select {
	case _, ok := <-ch:
		s.False(ok, "channel should be closed after cancel")
	case <-time.After(time.Second):
		s.FailNow("channel was not closed after cancel")
	}
}

func (s *StorageSuite) TestWatchIsPerSession() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.newSession("GAME1")))
	s.Require().NoError(s.storage.SaveSession(s.ctx, s.newSession("GAME2")))

	ch, cancel, err := s.storage.WatchSession(s.ctx, "GAME1")
	s.Require().NoError(err)
	defer cancel()

	other := s.newSession("GAME2")
	other.Revision = 2
	s.Require().NoError(s.storage.SaveSession(s.ctx, other))

	select {
	case change := <-ch:
		s.FailNowf("unexpected change", "got change for %s", change.ID)
	case <-time.After(100 * time.Millisecond):
	}
}

// Vocabulary tests

func (s *StorageSuite) TestSaveAndGetVocabularyWords() {
	words := []model.VocabularyWord{
		{Word: "perro", Translation: "dog"},
		{Word: "gato", Translation: "cat"},
	}
	s.Require().NoError(s.storage.SaveVocabularyWords(s.ctx, words))

	got, err := s.storage.GetVocabularyWords(s.ctx)
	s.Require().NoError(err)
	s.Equal(words, got)
}
