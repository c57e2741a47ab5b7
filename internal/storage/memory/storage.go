package memory

import (
	"context"
	"sync"

	"github.com/PauPin2013/Connect4/internal/model"
	"github.com/PauPin2013/Connect4/internal/storage"
)

// watchBufferSize bounds how many undelivered notifications a slow
// subscriber can accumulate before further ones are dropped
const watchBufferSize = 32

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	sessions          map[model.SessionID]*model.GameSession
	vocabulary        []model.VocabularyWord

	watchMu  sync.Mutex
	watchers map[model.SessionID]map[int]chan storage.SessionChange
	nextSub  int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		sessions:          make(map[model.SessionID]*model.GameSession),
		watchers:          make(map[model.SessionID]map[int]chan storage.SessionChange),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	copied := *session
	s.sessions[session.ID] = &copied
	s.mu.Unlock()

	s.notify(session.ID, &copied)
	return nil
}

func (s *Storage) SaveSessionIf(ctx context.Context, session *model.GameSession, expectedRevision int64) error {
	s.mu.Lock()
	existing, ok := s.sessions[session.ID]
	if !ok {
		s.mu.Unlock()
		return model.ErrSessionNotFound
	}
	if existing.Revision != expectedRevision {
		s.mu.Unlock()
		return model.ErrRevisionConflict
	}
	copied := *session
	s.sessions[session.ID] = &copied
	s.mu.Unlock()

	s.notify(session.ID, &copied)
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	s.notify(id, nil)
	return nil
}

func (s *Storage) SessionExists(ctx context.Context, id model.SessionID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok, nil
}

// WatchSession registers a change subscription for one session
func (s *Storage) WatchSession(ctx context.Context, id model.SessionID) (<-chan storage.SessionChange, func(), error) {
	ch := make(chan storage.SessionChange, watchBufferSize)

	s.watchMu.Lock()
	subID := s.nextSub
	s.nextSub++
	if s.watchers[id] == nil {
		s.watchers[id] = make(map[int]chan storage.SessionChange)
	}
	s.watchers[id][subID] = ch
	s.watchMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.watchMu.Lock()
			if subs, ok := s.watchers[id]; ok {
				delete(subs, subID)
				if len(subs) == 0 {
					delete(s.watchers, id)
				}
			}
			s.watchMu.Unlock()
			close(ch)
		})
	}

	return ch, cancel, nil
}

// notify fans a change out to all subscribers for the session.
// Slow subscribers with a full buffer miss the notification; they recover
// on the next one since every event carries the full record.
func (s *Storage) notify(id model.SessionID, session *model.GameSession) {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	for _, ch := range s.watchers[id] {
		change := storage.SessionChange{ID: id}
		if session != nil {
			copied := *session
			change.Session = &copied
		}
		select {
		case ch <- change:
		default:
		}
	}
}

// Vocabulary operations

func (s *Storage) GetVocabularyWords(ctx context.Context) ([]model.VocabularyWord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.vocabulary == nil {
		return nil, model.ErrVocabularyNotLoaded
	}
	result := make([]model.VocabularyWord, len(s.vocabulary))
	copy(result, s.vocabulary)
	return result, nil
}

func (s *Storage) SaveVocabularyWords(ctx context.Context, words []model.VocabularyWord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vocabulary = make([]model.VocabularyWord, len(words))
	copy(s.vocabulary, words)
	return nil
}
