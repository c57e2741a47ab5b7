package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/PauPin2013/Connect4/internal/model"
	"github.com/PauPin2013/Connect4/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Session documents are JSON blobs; change notifications ride Redis
// pub/sub so every connected server process sees every rewrite.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	// Apply TTL only for guest players
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0)
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	change, err := marshalChange(session.ID, session)
	if err != nil {
		return err
	}

	// Write and notify in one round trip
	pipe := s.client.Pipeline()
	pipe.Set(ctx, sessionKey(session.ID), data, s.cfg.SessionTTL)
	pipe.Publish(ctx, sessionChannel(session.ID), change)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) SaveSessionIf(ctx context.Context, session *model.GameSession, expectedRevision int64) error {
	key := sessionKey(session.ID)

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	change, err := marshalChange(session.ID, session)
	if err != nil {
		return err
	}

	// WATCH the document so the transaction aborts if anyone else writes
	// between our read and our set
	txn := func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrSessionNotFound
			}
			return err
		}

		var current model.GameSession
		if err := json.Unmarshal(stored, &current); err != nil {
			return err
		}
		if current.Revision != expectedRevision {
			return model.ErrRevisionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.cfg.SessionTTL)
			pipe.Publish(ctx, sessionChannel(session.ID), change)
			return nil
		})
		return err
	}

	err = s.client.Watch(ctx, txn, key)
	if errors.Is(err, redis.TxFailedErr) {
		// Someone beat us to the write; surface it as the same conflict
		return model.ErrRevisionConflict
	}
	return err
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	change, err := marshalChange(id, nil)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionKey(id))
	pipe.Publish(ctx, sessionChannel(id), change)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) SessionExists(ctx context.Context, id model.SessionID) (bool, error) {
	exists, err := s.client.Exists(ctx, sessionKey(id)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// WatchSession subscribes to the session's pub/sub channel and decodes
// change notifications until the context ends or cancel is called
func (s *Storage) WatchSession(ctx context.Context, id model.SessionID) (<-chan storage.SessionChange, func(), error) {
	sub := s.client.Subscribe(ctx, sessionChannel(id))

	// Force the subscription to be established before returning so callers
	// cannot miss changes written after WatchSession returns
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan storage.SessionChange)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			_ = sub.Close()
		})
	}

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var change storage.SessionChange
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				continue
			}
			select {
			case out <- change:
			case <-ctx.Done():
				cancel()
				return
			}
		}
	}()

	return out, cancel, nil
}

func marshalChange(id model.SessionID, session *model.GameSession) ([]byte, error) {
	return json.Marshal(storage.SessionChange{ID: id, Session: session})
}

// Vocabulary operations

func (s *Storage) GetVocabularyWords(ctx context.Context) ([]model.VocabularyWord, error) {
	data, err := s.client.Get(ctx, vocabularyKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrVocabularyNotLoaded
		}
		return nil, err
	}

	var words []model.VocabularyWord
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, err
	}
	return words, nil
}

func (s *Storage) SaveVocabularyWords(ctx context.Context, words []model.VocabularyWord) error {
	data, err := json.Marshal(words)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, vocabularyKey(), data, 0).Err()
}
