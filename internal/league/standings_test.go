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

func team(name string, w, l, d int) model.Team {
	return model.Team{ID: uuid.New(), Name: name, Wins: w, Losses: l, Draws: d}
}

func TestRankStandings_OrderAndRanks(t *testing.T) {
	teams := []model.Team{
		team("Eagles", 4, 10, 0),
		team("Thunder", 12, 2, 0),
		team("Storm", 9, 5, 0),
		team("Expansion", 0, 0, 0),
		team("Lightning", 11, 3, 0),
	}

	got := league.RankStandings(teams)
	require.Len(t, got, len(teams))

	names := make([]string, 0, len(got))
	for i, s := range got {
		assert.Equal(t, i+1, s.Rank)
		names = append(names, s.Team.Name)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Team.WinPercentage, s.Team.WinPercentage)
		}
	}
	assert.Equal(t, []string{"Thunder", "Lightning", "Storm", "Eagles", "Expansion"}, names)
}

func TestRankStandings_TiesKeepInputOrder(t *testing.T) {
	a := team("TeamA", 5, 5, 0)
	b := team("TeamB", 3, 3, 0)
	leader := team("Leader", 9, 1, 0)

	got := league.RankStandings([]model.Team{a, b, leader})
	require.Len(t, got, 3)
	assert.Equal(t, "Leader", got[0].Team.Name)
	assert.Equal(t, "TeamA", got[1].Team.Name)
	assert.Equal(t, 2, got[1].Rank)
	assert.Equal(t, "TeamB", got[2].Team.Name)
	assert.Equal(t, 3, got[2].Rank)

	// identical input always yields identical output
	again := league.RankStandings([]model.Team{a, b, leader})
	assert.Equal(t, got, again)
}

func TestRankStandings_Empty(t *testing.T) {
	got := league.RankStandings(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStreak(t *testing.T) {
	thunder := team("Thunder", 0, 0, 0)
	storm := team("Storm", 0, 0, 0)
	day := func(d int) time.Time { return time.Date(2025, 12, d, 19, 0, 0, 0, time.UTC) }
	result := func(h, a int) *model.GameResult { return &model.GameResult{HomeScore: h, AwayScore: a} }

	games := []model.Game{
		{ID: uuid.New(), HomeTeamID: thunder.ID, AwayTeamID: storm.ID, GameTime: day(1), Result: result(80, 90)},
		{ID: uuid.New(), HomeTeamID: storm.ID, AwayTeamID: thunder.ID, GameTime: day(5), Result: result(88, 95)},
		{ID: uuid.New(), HomeTeamID: thunder.ID, AwayTeamID: storm.ID, GameTime: day(3), Result: result(101, 99)},
		{ID: uuid.New(), HomeTeamID: thunder.ID, AwayTeamID: storm.ID, GameTime: day(9)},
	}

	assert.Equal(t, "W2", league.Streak(thunder.ID, games))
	assert.Equal(t, "L2", league.Streak(storm.ID, games))
	assert.Equal(t, "", league.Streak(uuid.New(), games))

	games = append(games, model.Game{ID: uuid.New(), HomeTeamID: storm.ID, AwayTeamID: thunder.ID, GameTime: day(7), Result: result(70, 70)})
	assert.Equal(t, "D1", league.Streak(thunder.ID, games))

	standings := league.AttachStreaks(league.RankStandings([]model.Team{thunder, storm}), games)
	for _, s := range standings {
		assert.Equal(t, "D1", s.Streak)
	}
}
