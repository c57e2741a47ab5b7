package model

import "time"

// SessionID uniquely identifies a shared game session
type SessionID string

// SessionStatus represents the lifecycle stage of a shared session
type SessionStatus string

const (
	StatusWaiting  SessionStatus = "waiting"  // Created, no second player yet
	StatusPlaying  SessionStatus = "playing"  // Both players present, moves allowed
	StatusFinished SessionStatus = "finished" // Someone made four in a row
	StatusDraw     SessionStatus = "draw"     // Board filled with no winner
)

// GameSession is the shared record for an online match, the single source
// of truth both clients reconcile against. Every mutation bumps Revision;
// writers use the compare-and-set storage path so a stale read cannot
// silently clobber a concurrent write.
type GameSession struct {
	ID          SessionID     `json:"id"`
	Player1ID   PlayerID      `json:"player1_id"`
	Player2ID   PlayerID      `json:"player2_id,omitempty"`
	Player1Name string        `json:"player1_name,omitempty"`
	Player2Name string        `json:"player2_name,omitempty"`
	Board       Board         `json:"board"`
	CurrentID   PlayerID      `json:"current_player_id,omitempty"`
	Status      SessionStatus `json:"status"`
	WinnerID    PlayerID      `json:"winner_id,omitempty"`

	// LastMoveColumn is the most recent drop, -1 when no move has been made
	LastMoveColumn int `json:"last_move_column"`

	// Challenge fields; ChallengeWord empty means no challenge outstanding.
	// ChallengeTargetID names the player who must answer before moving.
	ChallengeWord     string   `json:"challenge_word,omitempty"`
	ChallengeAnswer   string   `json:"challenge_answer,omitempty"`
	ChallengeCorrect  *bool    `json:"challenge_correct,omitempty"`
	ChallengeTargetID PlayerID `json:"challenge_target_id,omitempty"`

	Revision  int64     `json:"revision"`
	CreatedAt time.Time `json:"created_at"`
}

// HasPlayer reports whether the given id is one of the two participants
func (s *GameSession) HasPlayer(id PlayerID) bool {
	return id != "" && (s.Player1ID == id || s.Player2ID == id)
}

// PieceFor returns the board piece belonging to a participant
func (s *GameSession) PieceFor(id PlayerID) Cell {
	switch id {
	case s.Player1ID:
		return PlayerOne
	case s.Player2ID:
		return PlayerTwo
	default:
		return Empty
	}
}

// OpponentOf returns the other participant's id, or "" if there is none
func (s *GameSession) OpponentOf(id PlayerID) PlayerID {
	switch id {
	case s.Player1ID:
		return s.Player2ID
	case s.Player2ID:
		return s.Player1ID
	default:
		return ""
	}
}

// ChallengePending reports whether id still owes an answer before moving
func (s *GameSession) ChallengePending(id PlayerID) bool {
	if s.ChallengeWord == "" || s.ChallengeTargetID != id {
		return false
	}
	return s.ChallengeCorrect == nil || !*s.ChallengeCorrect
}

// ClearChallenge removes any outstanding challenge from the record
func (s *GameSession) ClearChallenge() {
	s.ChallengeWord = ""
	s.ChallengeAnswer = ""
	s.ChallengeCorrect = nil
	s.ChallengeTargetID = ""
}

// Finished reports whether the session has reached a terminal status
func (s *GameSession) Finished() bool {
	return s.Status == StatusFinished || s.Status == StatusDraw
}
