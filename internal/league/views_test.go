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

type viewFixture struct {
	now     time.Time
	thunder model.Team
	storm   model.Team
	names   league.TeamNames
	players []model.PlayerProfile
	builder *league.ViewBuilder
}

func newViewFixture(t *testing.T) viewFixture {
	t.Helper()
	now := time.Date(2025, 12, 20, 21, 0, 0, 0, time.UTC)
	thunder := team("Thunder", 12, 2, 0)
	storm := team("Storm", 9, 5, 0)

	players := thunderRoster()
	for i := range players {
		id := thunder.ID
		if i >= 4 {
			id = storm.ID
		}
		players[i].TeamID = &id
	}
	players = append(players, profile("Free Agent", 0, 3))

	return viewFixture{
		now:     now,
		thunder: thunder,
		storm:   storm,
		names:   league.NamesOf([]model.Team{thunder, storm}),
		players: players,
		builder: league.NewViewBuilder(seeded(5, league.DefaultSynthOptions()), 0, func() time.Time { return now }),
	}
}

func (f viewFixture) game(offset time.Duration, result *model.GameResult) model.Game {
	return model.Game{ID: uuid.New(), HomeTeamID: f.thunder.ID, AwayTeamID: f.storm.ID, GameTime: f.now.Add(offset), Result: result}
}

func TestRostersByTeam(t *testing.T) {
	f := newViewFixture(t)
	rosters := league.RostersByTeam(f.players)
	assert.Len(t, rosters, 2)
	assert.Len(t, rosters[f.thunder.ID], 4)
	assert.Len(t, rosters[f.storm.ID], 4)
}

func TestViewBuilder_Summary(t *testing.T) {
	f := newViewFixture(t)

	scheduled := f.builder.Summary(f.game(24*time.Hour, nil), f.names)
	assert.Equal(t, "Thunder", scheduled.HomeTeamName)
	assert.Equal(t, "Storm", scheduled.AwayTeamName)
	assert.Equal(t, model.StatusScheduled, scheduled.Status)
	assert.Nil(t, scheduled.HomeScore)
	assert.Nil(t, scheduled.AwayScore)

	done := f.builder.Summary(f.game(-48*time.Hour, &model.GameResult{HomeScore: 95, AwayScore: 88}), f.names)
	assert.Equal(t, model.StatusCompleted, done.Status)
	require.NotNil(t, done.HomeScore)
	assert.Equal(t, 95, *done.HomeScore)
	assert.Equal(t, 88, *done.AwayScore)
	assert.Nil(t, done.Details)
}

func TestViewBuilder_GameSynthesizesDetails(t *testing.T) {
	f := newViewFixture(t)
	g := f.game(-48*time.Hour, &model.GameResult{HomeScore: 95, AwayScore: 88})

	got, err := f.builder.Game(g, f.names, league.RostersByTeam(f.players))
	require.NoError(t, err)
	require.NotNil(t, got.Details)
	assert.Equal(t, g.ID, got.Details.GameID)
	assert.Equal(t, 95, sumPoints(got.Details.HomePlayerStats))
	assert.Equal(t, 88, sumPoints(got.Details.AwayPlayerStats))
	assert.Equal(t, 95, got.Details.HomeFirstHalf+got.Details.HomeSecondHalf)
}

func TestViewBuilder_GamePrefersSubmittedDetails(t *testing.T) {
	f := newViewFixture(t)
	submitted := &model.GameDetails{
		HomeFirstHalf: 50, HomeSecondHalf: 45,
		AwayFirstHalf: 40, AwaySecondHalf: 48,
		HomePlayerStats: []model.PlayerGameStats{{PlayerName: "Marcus Johnson", Number: 23, Points: 95}},
		AwayPlayerStats: []model.PlayerGameStats{{PlayerName: "Kevin Martinez", Number: 5, Points: 88}},
	}
	g := f.game(-48*time.Hour, &model.GameResult{HomeScore: 95, AwayScore: 88, Details: submitted})

	got, err := f.builder.Game(g, f.names, nil)
	require.NoError(t, err)
	require.NotNil(t, got.Details)
	assert.Equal(t, 50, got.Details.HomeFirstHalf)
	assert.Equal(t, g.ID, got.Details.GameID)
	assert.Equal(t, submitted.HomePlayerStats, got.Details.HomePlayerStats)
}

func TestViewBuilder_GameEmptyRosterKeepsSummary(t *testing.T) {
	f := newViewFixture(t)
	g := f.game(-48*time.Hour, &model.GameResult{HomeScore: 95, AwayScore: 88})

	got, err := f.builder.Game(g, f.names, league.Rosters{})
	assert.ErrorIs(t, err, league.ErrEmptyRoster)
	assert.Equal(t, g.ID, got.ID)
	assert.Equal(t, model.StatusCompleted, got.Status)
	require.NotNil(t, got.HomeScore)
	assert.Nil(t, got.Details)
}

func TestViewBuilder_RecentAndUpcoming(t *testing.T) {
	f := newViewFixture(t)
	res := &model.GameResult{HomeScore: 80, AwayScore: 78}

	var games []model.Game
	for day := 1; day <= 5; day++ {
		games = append(games, f.game(time.Duration(-day)*24*time.Hour, res))
	}
	for day := 1; day <= 7; day++ {
		games = append(games, f.game(time.Duration(day)*24*time.Hour, nil))
	}
	games = append(games, f.game(-30*time.Minute, nil))

	resolved, err := f.builder.Games(games, f.names, league.RostersByTeam(f.players))
	require.NoError(t, err)
	require.Len(t, resolved, len(games))
	for i := 1; i < len(resolved); i++ {
		assert.False(t, resolved[i].GameTime.Before(resolved[i-1].GameTime))
	}

	recent := f.builder.Recent(resolved)
	require.Len(t, recent, league.DefaultRecentLimit)
	for _, g := range recent {
		assert.Equal(t, model.StatusCompleted, g.Status)
	}
	assert.Equal(t, f.now.Add(-3*24*time.Hour), recent[0].GameTime)
	assert.Equal(t, f.now.Add(-24*time.Hour), recent[2].GameTime)

	upcoming := f.builder.Upcoming(resolved)
	require.Len(t, upcoming, league.DefaultUpcomingLimit)
	for i, g := range upcoming {
		assert.Equal(t, model.StatusScheduled, g.Status)
		assert.Equal(t, f.now.Add(time.Duration(i+1)*24*time.Hour), g.GameTime)
	}

	assert.Empty(t, league.RecentGames(resolved, 0))
	assert.Len(t, league.UpcomingGames(resolved, 100), 7)
}

func TestViewBuilder_TeamDetail(t *testing.T) {
	f := newViewFixture(t)
	other := team("Hawks", 0, 0, 0)
	names := league.NamesOf([]model.Team{f.thunder, f.storm, other})

	games := []model.Game{
		f.game(48*time.Hour, nil),
		f.game(-48*time.Hour, &model.GameResult{HomeScore: 95, AwayScore: 88}),
		{ID: uuid.New(), HomeTeamID: f.storm.ID, AwayTeamID: other.ID, GameTime: f.now.Add(time.Hour)},
	}

	detail, err := f.builder.TeamDetail(f.thunder, f.players, games, names)
	require.NoError(t, err)
	assert.Equal(t, "12-2", detail.Record)
	assert.InDelta(t, 0.857, detail.WinPercentage, 0.0005)
	require.Len(t, detail.Roster, 4)
	for i := 1; i < len(detail.Roster); i++ {
		assert.LessOrEqual(t, detail.Roster[i-1].Number(), detail.Roster[i].Number())
	}
	require.Len(t, detail.Games, 2)
	assert.Equal(t, model.StatusCompleted, detail.Games[0].Status)
	assert.NotNil(t, detail.Games[0].Details)
	assert.Equal(t, model.StatusScheduled, detail.Games[1].Status)

	lonely, err := f.builder.TeamDetail(other, f.players, games, names)
	require.NoError(t, err)
	assert.Empty(t, lonely.Roster)
	assert.Len(t, lonely.Games, 1)
}
