package model

// PhaseKind discriminates the Phase union
type PhaseKind string

const (
	PhaseWaitingToStart PhaseKind = "waiting_to_start"
	PhasePlaying        PhaseKind = "playing"
	PhaseAskingQuestion PhaseKind = "asking_question"
	PhaseWinner         PhaseKind = "winner"
	PhaseDraw           PhaseKind = "draw"
	PhasePaused         PhaseKind = "paused"
)

// Phase is the tagged union of turn state machine states. Kind selects the
// variant; Prompt is set only for AskingQuestion and Player only for Winner.
type Phase struct {
	Kind   PhaseKind `json:"kind"`
	Prompt string    `json:"prompt,omitempty"`
	Player Cell      `json:"player,omitempty"`
}

// WaitingToStart is the pre-game phase
func WaitingToStart() Phase { return Phase{Kind: PhaseWaitingToStart} }

// Playing is the phase where the viewer may move (or watch the opponent)
func Playing() Phase { return Phase{Kind: PhasePlaying} }

// AskingQuestion is the phase where the viewer owes a challenge answer
func AskingQuestion(prompt string) Phase {
	return Phase{Kind: PhaseAskingQuestion, Prompt: prompt}
}

// Winner is the terminal phase naming the winning piece
func Winner(player Cell) Phase { return Phase{Kind: PhaseWinner, Player: player} }

// Draw is the terminal phase for a full board with no winner
func Draw() Phase { return Phase{Kind: PhaseDraw} }

// Paused is the phase for a suspended game
func Paused() Phase { return Phase{Kind: PhasePaused} }

// PhaseForViewer derives the state machine phase a particular viewer sees
// from a session revision. Both remote-update rehydration and local
// post-write state go through this single function so the two paths cannot
// diverge.
func PhaseForViewer(s *GameSession, viewer PlayerID) Phase {
	if s == nil {
		return WaitingToStart()
	}
	switch s.Status {
	case StatusWaiting:
		return WaitingToStart()
	case StatusPlaying:
		if s.CurrentID == viewer && s.ChallengePending(viewer) {
			return AskingQuestion(s.ChallengeWord)
		}
		return Playing()
	case StatusFinished:
		return Winner(s.PieceFor(s.WinnerID))
	case StatusDraw:
		return Draw()
	default:
		return Playing()
	}
}

// StatusMessage builds the human-readable line shown next to the board
func StatusMessage(s *GameSession, viewer PlayerID) string {
	if s == nil {
		return "No active game."
	}
	switch s.Status {
	case StatusWaiting:
		if s.Player1ID == viewer {
			return "Waiting for an opponent to join..."
		}
		return "Waiting for the game to start..."
	case StatusPlaying:
		if s.CurrentID == viewer {
			if s.ChallengePending(viewer) {
				return "Your turn! Answer the question to move."
			}
			if s.ChallengeWord != "" {
				return "Correct answer. Now make your move!"
			}
			return "Your turn! Make your move."
		}
		opponent := s.Player1Name
		if s.CurrentID == s.Player2ID {
			opponent = s.Player2Name
		}
		if opponent == "" {
			opponent = "opponent"
		}
		if s.ChallengePending(s.CurrentID) {
			return opponent + "'s turn. Waiting for their answer..."
		}
		return opponent + "'s turn..."
	case StatusFinished:
		if s.WinnerID == viewer {
			return "You won the game!"
		}
		return "You lost the game."
	case StatusDraw:
		return "The game ended in a draw."
	default:
		return ""
	}
}
