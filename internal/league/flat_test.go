package league_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcabl/league-service/internal/league"
	"github.com/fcabl/league-service/internal/model"
)

func TestFlatGame(t *testing.T) {
	home, away := 95, 88
	g := model.GameWithDetails{
		ID:           uuid.New(),
		HomeTeamID:   uuid.New(),
		HomeTeamName: "Thunder",
		AwayTeamID:   uuid.New(),
		AwayTeamName: "Storm",
		GameTime:     time.Date(2025, 12, 21, 1, 0, 0, 0, time.UTC),
		HomeScore:    &home,
		AwayScore:    &away,
		Status:       model.StatusCompleted,
	}

	utc := league.FlatGame(g, nil)
	assert.Equal(t, "2025-12-21", utc.Date)
	assert.Equal(t, "1:00 AM", utc.Time)
	assert.Equal(t, "Thunder", utc.HomeTeam)
	assert.Equal(t, g.AwayTeamID, utc.AwayTeamID)
	assert.Equal(t, &home, utc.HomeScore)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	local := league.FlatGame(g, ny)
	assert.Equal(t, "2025-12-20", local.Date)
	assert.Equal(t, "8:00 PM", local.Time)
}

func TestProfileAndFlatPlayer(t *testing.T) {
	teamID := uuid.New()
	number := 23
	p := model.Player{ID: uuid.New(), UserID: uuid.New(), TeamID: &teamID, JerseyNumber: &number, PointsPerGame: 18.5}
	u := model.User{ID: p.UserID, Email: "marcus@example.com", FirstName: " Marcus ", LastName: "Johnson"}

	prof := league.Profile(p, u)
	assert.Equal(t, "Marcus Johnson", prof.FullName)
	assert.Equal(t, 23, prof.Number())

	flat := league.FlatPlayer(prof)
	assert.Equal(t, "Marcus Johnson", flat.Name)
	assert.Equal(t, 23, flat.Number)
	assert.Equal(t, 18.5, flat.PointsPerGame)
	assert.Equal(t, &teamID, flat.TeamID)

	assert.Equal(t, "Cher", league.FullName("Cher", ""))
	assert.Zero(t, model.PlayerProfile{}.Number())
}
