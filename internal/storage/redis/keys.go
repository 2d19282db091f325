package redis

import (
	"fmt"

	"github.com/mcoot/arenafc/internal/model"
)

// Key prefix for all arena data
const keyPrefix = "arenafc"

// playerKey returns the Redis key for a Player document
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersIndexKey returns the Redis key for the SET of player ids
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// gameKey returns the Redis key for a Game document
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the ZSET of game ids scored by date
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}
