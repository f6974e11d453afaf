package league

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/fcabl/league-service/internal/model"
)

// RankStandings orders teams by win percentage, highest first, and assigns
// ranks 1..N. Ties are not merged: equal teams keep their input order and
// receive consecutive ranks.
func RankStandings(teams []model.Team) []model.Standing {
	stats := make([]model.TeamWithStats, 0, len(teams))
	for _, t := range teams {
		stats = append(stats, ComputeStats(t))
	}
	slices.SortStableFunc(stats, func(a, b model.TeamWithStats) int {
		return cmp.Compare(b.WinPercentage, a.WinPercentage)
	})

	out := make([]model.Standing, 0, len(stats))
	for i, s := range stats {
		out = append(out, model.Standing{Rank: i + 1, Team: s})
	}
	return out
}

// AttachStreaks annotates each standing with the team's current streak.
// Ordering and ranks are left untouched.
func AttachStreaks(standings []model.Standing, games []model.Game) []model.Standing {
	out := make([]model.Standing, len(standings))
	for i, s := range standings {
		s.Streak = Streak(s.Team.ID, games)
		out[i] = s
	}
	return out
}

// Streak returns the run of identical outcomes ending at the team's most
// recent recorded result, e.g. "W3", "L1" or "D2". Empty when the team has no results.
func Streak(teamID uuid.UUID, games []model.Game) string {
	played := make([]model.Game, 0)
	for _, g := range games {
		if g.Result == nil {
			continue
		}
		if g.HomeTeamID == teamID || g.AwayTeamID == teamID {
			played = append(played, g)
		}
	}
	if len(played) == 0 {
		return ""
	}
	slices.SortStableFunc(played, func(a, b model.Game) int {
		return b.GameTime.Compare(a.GameTime)
	})

	letter := outcomeLetter(teamID, played[0])
	n := 0
	for _, g := range played {
		if outcomeLetter(teamID, g) != letter {
			break
		}
		n++
	}
	return fmt.Sprintf("%s%d", letter, n)
}

func outcomeLetter(teamID uuid.UUID, g model.Game) string {
	switch Outcome(*g.Result) {
	case OutcomeDraw:
		return "D"
	case OutcomeHome:
		if g.HomeTeamID == teamID {
			return "W"
		}
		return "L"
	default:
		if g.AwayTeamID == teamID {
			return "W"
		}
		return "L"
	}
}
