package session

import (
	"context"
	"log/slog"

	"github.com/PauPin2013/Connect4/internal/model"
	"github.com/PauPin2013/Connect4/internal/storage"
)

// Update is one observation of the shared session delivered to a single
// viewer: the fresh record, the phase as that viewer sees it, and a
// classification of what changed since the viewer's last observation.
// Session is nil when the record was deleted underneath the viewer.
type Update struct {
	Type    model.EventType    `json:"type"`
	Session *model.GameSession `json:"session,omitempty"`
	Phase   model.Phase        `json:"phase"`
	Message string             `json:"message"`
}

// Watcher streams per-viewer updates for one session. It seeds with the
// current record, then relays storage change notifications, dropping
// stale or duplicate revisions so observers only ever move forward.
type Watcher struct {
	storage storage.Storage
	logger  *slog.Logger
}

// NewWatcher creates a session Watcher
func NewWatcher(store storage.Storage, logger *slog.Logger) *Watcher {
	return &Watcher{
		storage: store,
		logger:  logger.With(slog.String("component", "session-watcher")),
	}
}

// Watch subscribes the given viewer to a session's change stream. The
// returned channel first delivers a snapshot of the current record, then
// one Update per applied revision, and closes after a deletion or when
// ctx is cancelled. The cancel func releases the subscription.
func (w *Watcher) Watch(ctx context.Context, id model.SessionID, viewer model.PlayerID) (<-chan Update, func(), error) {
	changes, cancel, err := w.storage.WatchSession(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	// Snapshot after subscribing so no revision can slip between the
	// read and the subscription
	current, err := w.storage.GetSession(ctx, id)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	out := make(chan Update, 8)
	go w.run(ctx, id, viewer, current, changes, out)
	return out, cancel, nil
}

func (w *Watcher) run(
	ctx context.Context,
	id model.SessionID,
	viewer model.PlayerID,
	current *model.GameSession,
	changes <-chan storage.SessionChange,
	out chan<- Update,
) {
	defer close(out)

	send := func(u Update) bool {
		// The consumer may have stopped reading; never park on the
		// channel past ctx cancellation
		select {
		case out <- u:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if !send(Update{
		Type:    model.EventSnapshot,
		Session: current,
		Phase:   model.PhaseForViewer(current, viewer),
		Message: model.StatusMessage(current, viewer),
	}) {
		return
	}

	prev := current
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			if change.Session == nil {
				// A removed record means no active game: viewers fall
				// back to the pre-game phase
				send(Update{
					Type:    model.EventGameDeleted,
					Phase:   model.PhaseForViewer(nil, viewer),
					Message: model.StatusMessage(nil, viewer),
				})
				w.logger.Info("watched session deleted",
					slog.String("session_id", string(id)),
					slog.String("viewer", string(viewer)),
				)
				return
			}
			next := change.Session
			if next.Revision <= prev.Revision {
				// Stale or duplicate notification
				continue
			}
			if !send(Update{
				Type:    classify(prev, next),
				Session: next,
				Phase:   model.PhaseForViewer(next, viewer),
				Message: model.StatusMessage(next, viewer),
			}) {
				return
			}
			prev = next
		}
	}
}

// classify names the transition between two consecutive revisions of the
// shared record, mirroring the guards a client would run on a raw
// document diff.
func classify(prev, next *model.GameSession) model.EventType {
	switch {
	case next.Status == model.StatusFinished && prev.Status != model.StatusFinished:
		return model.EventGameFinished
	case next.Status == model.StatusDraw && prev.Status != model.StatusDraw:
		return model.EventGameDraw
	case prev.Status == model.StatusWaiting && next.Status == model.StatusPlaying:
		return model.EventPlayerJoined
	case next.Board != prev.Board && next.Board == model.NewBoard():
		return model.EventGameReset
	case next.Board != prev.Board:
		return model.EventMoveMade
	case next.ChallengeCorrect != nil && *next.ChallengeCorrect &&
		(prev.ChallengeCorrect == nil || !*prev.ChallengeCorrect):
		return model.EventAnswerCorrect
	case next.CurrentID != prev.CurrentID:
		// Turn flipped without the board moving: a wrong answer passed
		// the turn to the opponent
		return model.EventAnswerWrong
	case next.ChallengeWord != prev.ChallengeWord && next.ChallengeWord != "":
		return model.EventChallengeIssued
	default:
		return model.EventSnapshot
	}
}

// Interface for dependency injection
type WatcherInterface interface {
	Watch(ctx context.Context, id model.SessionID, viewer model.PlayerID) (<-chan Update, func(), error)
}

var _ WatcherInterface = (*Watcher)(nil)
