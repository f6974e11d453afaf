package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
	"github.com/fcabl/league-service/internal/service"
)

func TestGameService_CreateGame_Validation(t *testing.T) {
	f := newFixture(t)
	future := fixedNow.Add(24 * time.Hour)

	cases := []struct {
		name       string
		home, away uuid.UUID
		at         time.Time
		field      string
	}{
		{"same teams", f.thunder.ID, f.thunder.ID, future, "teams"},
		{"nil home", uuid.Nil, f.storm.ID, future, "home_team_id"},
		{"zero time", f.thunder.ID, f.storm.ID, time.Time{}, "game_time"},
		{"missing team", f.thunder.ID, uuid.New(), future, "away_team_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.games.CreateGame(context.Background(), tc.home, tc.away, tc.at)
			assert.ErrorIs(t, err, service.ErrInvalidInput)
			assert.True(t, hasField(err, tc.field), "expected field %s in %v", tc.field, service.FieldErrors(err))
		})
	}

	g, err := f.games.CreateGame(context.Background(), f.thunder.ID, f.storm.ID, future)
	require.NoError(t, err)
	assert.Equal(t, model.StatusScheduled, g.Status)
	assert.Equal(t, "Thunder", g.HomeTeamName)
	assert.Equal(t, "Storm", g.AwayTeamName)
	assert.Nil(t, g.HomeScore)
}

func TestGameService_RecordResult_UpdatesCounters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.schedule(t, f.thunder, f.storm, fixedNow.Add(-3*time.Hour))
	assert.Equal(t, model.StatusCompleted, g.Status, "stale game without a result reads as completed")
	assert.Nil(t, g.Details)

	out, err := f.games.RecordResult(ctx, g.ID, service.ResultSubmission{HomeScore: 88, AwayScore: 88})
	require.NoError(t, err)
	require.NotNil(t, out.HomeScore)
	assert.Equal(t, 88, *out.HomeScore)
	require.NotNil(t, out.Details, "box score is synthesized from rosters")
	assert.Len(t, out.Details.HomePlayerStats, 2)

	thunder, err := f.teams.GetTeam(ctx, f.thunder.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, thunder.Draws)
	assert.Equal(t, 88, thunder.PointsFor)

	// a second submission is rejected and leaves counters untouched
	_, err = f.games.RecordResult(ctx, g.ID, service.ResultSubmission{HomeScore: 90, AwayScore: 70})
	assert.ErrorIs(t, err, repository.ErrConflict)
	thunder, err = f.teams.GetTeam(ctx, f.thunder.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, thunder.Draws)
	assert.Zero(t, thunder.Wins)

	_, err = f.games.RescheduleGame(ctx, g.ID, fixedNow.Add(time.Hour))
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.ErrorIs(t, f.games.DeleteGame(ctx, g.ID), repository.ErrConflict)
}

func TestGameService_RecordResult_ScoreValidation(t *testing.T) {
	f := newFixture(t)
	g := f.schedule(t, f.thunder, f.storm, fixedNow.Add(-3*time.Hour))

	_, err := f.games.RecordResult(context.Background(), g.ID, service.ResultSubmission{HomeScore: -1, AwayScore: 400})
	assert.True(t, hasField(err, "home_score"))
	assert.True(t, hasField(err, "away_score"))

	_, err = f.games.RecordResult(context.Background(), uuid.New(), service.ResultSubmission{HomeScore: 1, AwayScore: 0})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGameService_RecordResult_SubmittedBoxScore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.schedule(t, f.thunder, f.storm, fixedNow.Add(-3*time.Hour))
	home := f.roster[f.thunder.ID]
	away := f.roster[f.storm.ID]

	valid := func() *model.GameDetails {
		return &model.GameDetails{
			HomeFirstHalf: 50, HomeSecondHalf: 45,
			AwayFirstHalf: 40, AwaySecondHalf: 48,
			HomePlayerStats: []model.PlayerGameStats{
				{PlayerID: home[0].ID, Points: 60},
				{PlayerID: home[1].ID, Points: 35},
			},
			AwayPlayerStats: []model.PlayerGameStats{
				{PlayerID: away[0].ID, Points: 30},
				{PlayerID: away[1].ID, Points: 58},
			},
		}
	}

	cases := []struct {
		name   string
		mutate func(d *model.GameDetails)
		field  string
	}{
		{"halves off", func(d *model.GameDetails) { d.HomeSecondHalf = 44 }, "details.home_halves"},
		{"negative half", func(d *model.GameDetails) { d.AwayFirstHalf, d.AwaySecondHalf = -2, 90 }, "details.away_first_half"},
		{"lines off", func(d *model.GameDetails) { d.HomePlayerStats[1].Points = 30 }, "details.home_player_stats"},
		{"wrong roster", func(d *model.GameDetails) { d.HomePlayerStats[1].PlayerID = away[0].ID }, "details.home_player_stats[1].player_id"},
		{"listed twice", func(d *model.GameDetails) {
			d.AwayPlayerStats[1].PlayerID = away[0].ID
		}, "details.away_player_stats[1].player_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := valid()
			tc.mutate(d)
			_, err := f.games.RecordResult(ctx, g.ID, service.ResultSubmission{HomeScore: 95, AwayScore: 88, Details: d})
			assert.ErrorIs(t, err, service.ErrInvalidInput)
			assert.True(t, hasField(err, tc.field), "expected field %s in %v", tc.field, service.FieldErrors(err))
		})
	}

	out, err := f.games.RecordResult(ctx, g.ID, service.ResultSubmission{HomeScore: 95, AwayScore: 88, Details: valid()})
	require.NoError(t, err)
	require.NotNil(t, out.Details)
	assert.Equal(t, g.ID, out.Details.GameID)
	assert.Equal(t, 50, out.Details.HomeFirstHalf)
	// ordered by points, names filled from the roster
	assert.Equal(t, "Noah Campbell", out.Details.AwayPlayerStats[0].PlayerName)
	assert.Equal(t, 22, out.Details.AwayPlayerStats[0].Number)
	assert.Equal(t, 58, out.Details.AwayPlayerStats[0].Points)

	// stored details are served as submitted on later reads
	again, err := f.games.GetGame(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, out.Details, again.Details)
}

func TestGameService_EmptyRosterKeepsSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hawks, err := f.teams.CreateTeam(ctx, "Hawks")
	require.NoError(t, err)
	g := f.schedule(t, hawks, f.storm, fixedNow.Add(-5*time.Hour))

	out, err := f.games.RecordResult(ctx, g.ID, service.ResultSubmission{HomeScore: 80, AwayScore: 75})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, out.Status)
	require.NotNil(t, out.AwayScore)
	assert.Equal(t, 75, *out.AwayScore)
	assert.Nil(t, out.Details)
}

func TestGameService_HomeFeedAndSchedules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var played []model.GameWithDetails
	for i := 5; i >= 1; i-- {
		g := f.schedule(t, f.thunder, f.storm, fixedNow.Add(-time.Duration(i)*24*time.Hour))
		_, err := f.games.RecordResult(ctx, g.ID, service.ResultSubmission{HomeScore: 90 + i, AwayScore: 80})
		require.NoError(t, err)
		played = append(played, g)
	}
	live := f.schedule(t, f.storm, f.thunder, fixedNow.Add(-30*time.Minute))
	for i := 1; i <= 7; i++ {
		f.schedule(t, f.storm, f.thunder, fixedNow.Add(time.Duration(i)*24*time.Hour))
	}

	feed, err := f.games.HomeFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed.Recent, 3)
	assert.Equal(t, played[2].ID, feed.Recent[0].ID)
	assert.Equal(t, played[4].ID, feed.Recent[2].ID)
	for _, g := range feed.Recent {
		assert.NotNil(t, g.Details)
	}
	require.Len(t, feed.Upcoming, 5)
	for _, g := range feed.Upcoming {
		assert.Equal(t, model.StatusScheduled, g.Status)
		assert.NotEqual(t, live.ID, g.ID)
	}

	recent, err := f.games.RecentGames(ctx)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
	upcoming, err := f.games.UpcomingGames(ctx)
	require.NoError(t, err)
	assert.Len(t, upcoming, 5)

	all, err := f.games.ListGames(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 13)

	sched, err := f.games.ListTeamSchedule(ctx, f.thunder.ID)
	require.NoError(t, err)
	assert.Len(t, sched, 13)
	_, err = f.games.ListTeamSchedule(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := f.games.GetGame(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusLive, got.Status)
}

func TestGameService_FlatViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.schedule(t, f.thunder, f.storm, time.Date(2025, 12, 26, 19, 0, 0, 0, time.UTC))

	flat, err := f.games.FlatSchedule(ctx)
	require.NoError(t, err)
	require.Len(t, flat, 1)
	assert.Equal(t, "2025-12-26", flat[0].Date)
	assert.Equal(t, "7:00 PM", flat[0].Time)
	assert.Equal(t, "Thunder", flat[0].HomeTeam)

	players, err := f.games.FlatPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 4)
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}
	assert.Contains(t, names, "Marcus Johnson")
}

func TestGameService_Reschedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	g := f.schedule(t, f.thunder, f.storm, fixedNow.Add(24*time.Hour))

	moved, err := f.games.RescheduleGame(ctx, g.ID, fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, model.StatusLive, moved.Status)

	_, err = f.games.RescheduleGame(ctx, g.ID, time.Time{})
	assert.True(t, hasField(err, "game_time"))
}
