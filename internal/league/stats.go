// Package league derives display-ready views from persisted league records:
// team stats, standings, game status, box scores and composite pages.
// Everything here is a pure function of its inputs except the synthesizer,
// which draws from an injected random source.
package league

import (
	"errors"
	"math"

	"github.com/fcabl/league-service/internal/model"
)

var (
	// ErrEmptyRoster is returned when points must be distributed across a roster with no players.
	ErrEmptyRoster = errors.New("cannot distribute points across an empty roster")
	// ErrNegativeScore is returned when a synthesized score would start from a negative total.
	ErrNegativeScore = errors.New("team score must be >= 0")
)

// ComputeStats derives win percentage, its display form, differential and per-game averages.
// Zero denominators yield 0.
func ComputeStats(t model.Team) model.TeamWithStats {
	played := GamesPlayed(t.Wins, t.Losses, t.Draws)
	pct := WinPercentage(t.Wins, t.Losses, t.Draws)
	return model.TeamWithStats{
		Team:              t,
		WinPercentage:     pct,
		WinPctDisplay:     FormatWinPercentage(pct),
		PointDifferential: t.PointsFor - t.PointsAgainst,
		GamesPlayed:       played,
		AvgPointsFor:      perGame(t.PointsFor, played),
		AvgPointsAgainst:  perGame(t.PointsAgainst, played),
	}
}

// GamesPlayed is wins+losses+draws.
func GamesPlayed(wins, losses, draws int) int {
	return wins + losses + draws
}

// WinPercentage returns wins over games played, in [0,1].
func WinPercentage(wins, losses, draws int) float64 {
	played := GamesPlayed(wins, losses, draws)
	if played == 0 {
		return 0
	}
	return float64(wins) / float64(played)
}

func perGame(points, played int) float64 {
	if played == 0 {
		return 0
	}
	return roundTo(float64(points)/float64(played), 1)
}

// roundTo rounds half away from zero at the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
