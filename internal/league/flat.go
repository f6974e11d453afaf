package league

import (
	"strings"
	"time"

	"github.com/fcabl/league-service/internal/model"
)

// FlatGame renders a resolved game in the older flat shape with a local
// calendar date and a 12-hour clock time. A nil loc means UTC.
func FlatGame(g model.GameWithDetails, loc *time.Location) model.FlatGame {
	if loc == nil {
		loc = time.UTC
	}
	local := g.GameTime.In(loc)
	return model.FlatGame{
		ID:         g.ID,
		HomeTeam:   g.HomeTeamName,
		HomeTeamID: g.HomeTeamID,
		AwayTeam:   g.AwayTeamName,
		AwayTeamID: g.AwayTeamID,
		HomeScore:  g.HomeScore,
		AwayScore:  g.AwayScore,
		Date:       local.Format(time.DateOnly),
		Time:       local.Format("3:04 PM"),
		Status:     g.Status,
		Details:    g.Details,
	}
}

// FlatPlayer renders a profile in the older flat player shape.
func FlatPlayer(p model.PlayerProfile) model.FlatPlayer {
	return model.FlatPlayer{
		ID:            p.ID,
		Name:          p.FullName,
		Number:        p.Number(),
		PointsPerGame: p.PointsPerGame,
		Email:         p.Email,
		TeamID:        p.TeamID,
	}
}

// FullName joins first and last names, trimming the gap when either is missing.
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// Profile joins a player with its owning user.
func Profile(p model.Player, u model.User) model.PlayerProfile {
	return model.PlayerProfile{
		Player:      p,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    FullName(u.FirstName, u.LastName),
	}
}
