package storage

import (
	"context"

	"github.com/PauPin2013/Connect4/internal/model"
)

// SessionChange is a single change notification for a watched session.
// Session is nil when the record was deleted.
type SessionChange struct {
	ID      model.SessionID    `json:"id"`
	Session *model.GameSession `json:"session,omitempty"`
}

// Storage defines the interface for data persistence. Sessions get both a
// full-overwrite save and a compare-and-set save keyed on the record's
// revision counter; the controllers use the conditional path for every
// in-game mutation so concurrent writers cannot silently lose updates.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Session operations. SaveSessionIf fails with ErrRevisionConflict when
	// the stored revision no longer matches expectedRevision. Both save
	// variants notify watchers.
	SaveSession(ctx context.Context, session *model.GameSession) error
	SaveSessionIf(ctx context.Context, session *model.GameSession, expectedRevision int64) error
	GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	SessionExists(ctx context.Context, id model.SessionID) (bool, error)

	// WatchSession subscribes to change notifications for one session.
	// Delivery is at-least-once in revision order. The returned func
	// cancels the subscription and closes the channel.
	WatchSession(ctx context.Context, id model.SessionID) (<-chan SessionChange, func(), error)

	// Vocabulary operations
	GetVocabularyWords(ctx context.Context) ([]model.VocabularyWord, error)
	SaveVocabularyWords(ctx context.Context, words []model.VocabularyWord) error
}
