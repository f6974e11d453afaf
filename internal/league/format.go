package league

import (
	"fmt"

	"github.com/fcabl/league-service/internal/model"
)

// GameOutcome names the winning side of a recorded result.
type GameOutcome string

const (
	OutcomeHome GameOutcome = "home"
	OutcomeAway GameOutcome = "away"
	OutcomeDraw GameOutcome = "draw"
)

// Outcome reports which side won.
func Outcome(r model.GameResult) GameOutcome {
	switch {
	case r.HomeScore > r.AwayScore:
		return OutcomeHome
	case r.AwayScore > r.HomeScore:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

// ResultDeltas returns the counter increments a result applies to the home and away teams.
func ResultDeltas(r model.GameResult) (home, away model.RecordDelta) {
	home = model.RecordDelta{PointsFor: r.HomeScore, PointsAgainst: r.AwayScore}
	away = model.RecordDelta{PointsFor: r.AwayScore, PointsAgainst: r.HomeScore}
	switch Outcome(r) {
	case OutcomeHome:
		home.Wins, away.Losses = 1, 1
	case OutcomeAway:
		home.Losses, away.Wins = 1, 1
	default:
		home.Draws, away.Draws = 1, 1
	}
	return home, away
}

// FormatRecord renders "W-L", or "W-L-D" when the team has draws.
func FormatRecord(wins, losses, draws int) string {
	if draws > 0 {
		return fmt.Sprintf("%d-%d-%d", wins, losses, draws)
	}
	return fmt.Sprintf("%d-%d", wins, losses)
}

// FormatWinPercentage renders a 0..1 ratio as "75.0%".
func FormatWinPercentage(p float64) string {
	return fmt.Sprintf("%.1f%%", roundTo(p*100, 1))
}

// FormatScore renders "94-87".
func FormatScore(home, away int) string {
	return fmt.Sprintf("%d-%d", home, away)
}
