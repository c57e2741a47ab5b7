package redis

import (
	"fmt"

	"github.com/PauPin2013/Connect4/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "c4"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// sessionKey returns the Redis key for a GameSession document
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// sessionChannel returns the pub/sub channel carrying change
// notifications for a session
func sessionChannel(id model.SessionID) string {
	return fmt.Sprintf("%s:events:session:%s", keyPrefix, id)
}

// vocabularyKey returns the Redis key for the vocabulary bank
func vocabularyKey() string {
	return fmt.Sprintf("%s:vocabulary", keyPrefix)
}
