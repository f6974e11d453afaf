package league

import (
	"time"

	"github.com/fcabl/league-service/internal/model"
)

// DefaultStaleThreshold is how long after tip-off a game without a recorded
// result is still considered live.
const DefaultStaleThreshold = 2 * time.Hour

// ResolveStatus derives a game's lifecycle state at instant now.
//
// A recorded result always means completed. A future game is scheduled.
// A past game without a result is live until staleAfter has elapsed, then it is
// presumed completed; that branch does not imply a result exists.
func ResolveStatus(gameTime time.Time, hasResult bool, now time.Time, staleAfter time.Duration) model.GameStatus {
	if hasResult {
		return model.StatusCompleted
	}
	if gameTime.After(now) {
		return model.StatusScheduled
	}
	if now.Sub(gameTime) < staleAfter {
		return model.StatusLive
	}
	return model.StatusCompleted
}
