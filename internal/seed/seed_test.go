package seed

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcabl/league-service/internal/repository/memory"
)

func reposOf(s *memory.Store) Repos {
	return Repos{Tx: s, Teams: s.Teams(), Users: s.Users(), Players: s.Players(), Games: s.Games()}
}

func TestLoad_DemoSeason(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 12, 21, 12, 0, 0, 0, time.UTC)
	s := memory.New(func() time.Time { return now })

	sum, err := Load(ctx, reposOf(s), Options{Now: now}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, Summary{Teams: 6, Players: 55, Games: 42, Completed: 30}, sum)

	teams, err := s.Teams().List(ctx)
	require.NoError(t, err)
	var wins, losses, draws int
	for _, tm := range teams {
		wins += tm.Wins
		losses += tm.Losses
		draws += tm.Draws
		if tm.Name == "Thunder" {
			assert.Equal(t, 10, tm.Wins)
			assert.Zero(t, tm.Losses)
			assert.Equal(t, 972, tm.PointsFor)
		}
		if tm.Name == "Eagles" {
			assert.Equal(t, 1, tm.Wins)
			assert.Equal(t, 9, tm.Losses)
		}
	}
	assert.Equal(t, 30, wins)
	assert.Equal(t, 30, losses)
	assert.Zero(t, draws)

	free, err := s.Players().ListFreeAgents(ctx)
	require.NoError(t, err)
	assert.Len(t, free, 7)

	games, err := s.Games().List(ctx)
	require.NoError(t, err)
	for _, g := range games {
		if g.Result != nil {
			assert.True(t, g.GameTime.Before(now), "completed game %s is in the future", g.ID)
		} else {
			assert.True(t, g.GameTime.After(now), "scheduled game %s is in the past", g.ID)
		}
	}
	// opening night: 2025-12-01 at 7:00 PM
	assert.Equal(t, time.Date(2025, 12, 1, 19, 0, 0, 0, time.UTC), games[0].GameTime)
}

func TestLoad_LocalTipOff(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	now := time.Date(2025, 12, 21, 12, 0, 0, 0, ny)
	s := memory.New(nil)

	_, err = Load(context.Background(), reposOf(s), Options{Now: now, Location: ny}, zerolog.Nop())
	require.NoError(t, err)

	games, err := s.Games().List(context.Background())
	require.NoError(t, err)
	first := games[0].GameTime.In(ny)
	assert.Equal(t, 19, first.Hour())
	assert.Equal(t, 1, first.Day())
}

func TestLoad_RefusesNonEmptyStore(t *testing.T) {
	s := memory.New(nil)
	_, err := Load(context.Background(), reposOf(s), Options{}, zerolog.Nop())
	require.NoError(t, err)

	_, err = Load(context.Background(), reposOf(s), Options{}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrNotEmpty)
}
