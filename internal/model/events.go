package model

// EventType identifies the type of session event
type EventType string

const (
	EventSnapshot        EventType = "snapshot"
	EventPlayerJoined    EventType = "player_joined"
	EventMoveMade        EventType = "move_made"
	EventChallengeIssued EventType = "challenge_issued"
	EventAnswerCorrect   EventType = "answer_correct"
	EventAnswerWrong     EventType = "answer_wrong"
	EventGameFinished    EventType = "game_finished"
	EventGameDraw        EventType = "game_draw"
	EventGameReset       EventType = "game_reset"
	EventGameDeleted     EventType = "game_deleted"
)
