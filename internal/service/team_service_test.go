package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcabl/league-service/internal/repository"
	"github.com/fcabl/league-service/internal/service"
)

func TestTeamService_CreateTeam_Validation(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "   ", true},
		{"too short", "A", true},
		{"too long", "ABCDEFGHIJKLMNOPQRSTUVWXYZABCDEFGHIJKLMNOPQRSTUVWXYZ", true},
		{"trimmed ok", "  Hawks  ", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			team, err := f.teams.CreateTeam(context.Background(), tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, service.ErrInvalidInput)
				assert.True(t, hasField(err, "name"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Hawks", team.Name)
		})
	}

	_, err := f.teams.CreateTeam(context.Background(), "Thunder")
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)
}

func TestTeamService_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	renamed, err := f.teams.UpdateTeam(ctx, f.thunder.ID, "Thunderbolts")
	require.NoError(t, err)
	assert.Equal(t, "Thunderbolts", renamed.Name)

	_, err = f.teams.UpdateTeam(ctx, uuid.Nil, "")
	assert.True(t, hasField(err, "id"))
	assert.True(t, hasField(err, "name"))

	g := f.schedule(t, f.thunder, f.storm, fixedNow.Add(48*time.Hour))
	assert.ErrorIs(t, f.teams.DeleteTeam(ctx, f.thunder.ID), repository.ErrConflict)

	require.NoError(t, f.games.DeleteGame(ctx, g.ID))
	require.NoError(t, f.teams.DeleteTeam(ctx, f.thunder.ID))

	free, err := f.players.ListFreeAgents(ctx)
	require.NoError(t, err)
	assert.Len(t, free, 2)
}

func TestTeamService_StatsAndStandings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g1 := f.schedule(t, f.thunder, f.storm, fixedNow.Add(-72*time.Hour))
	g2 := f.schedule(t, f.storm, f.thunder, fixedNow.Add(-48*time.Hour))
	_, err := f.games.RecordResult(ctx, g1.ID, service.ResultSubmission{HomeScore: 95, AwayScore: 88})
	require.NoError(t, err)
	_, err = f.games.RecordResult(ctx, g2.ID, service.ResultSubmission{HomeScore: 80, AwayScore: 94})
	require.NoError(t, err)

	stats, err := f.teams.GetTeamStats(ctx, f.thunder.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 2, stats.GamesPlayed)
	assert.Equal(t, 1.0, stats.WinPercentage)
	assert.Equal(t, 21, stats.PointDifferential)
	assert.InDelta(t, 94.5, stats.AvgPointsFor, 1e-9)

	standings, err := f.teams.Standings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, "Thunder", standings[0].Team.Name)
	assert.Equal(t, "W2", standings[0].Streak)
	assert.Equal(t, "L2", standings[1].Streak)

	list, err := f.teams.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Storm", list[0].Name)
	assert.Equal(t, 0.0, list[0].WinPercentage)
}

func TestTeamService_GetTeamDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	played := f.schedule(t, f.thunder, f.storm, fixedNow.Add(-24*time.Hour))
	f.schedule(t, f.storm, f.thunder, fixedNow.Add(72*time.Hour))
	_, err := f.games.RecordResult(ctx, played.ID, service.ResultSubmission{HomeScore: 70, AwayScore: 66})
	require.NoError(t, err)

	detail, err := f.teams.GetTeamDetail(ctx, f.thunder.ID)
	require.NoError(t, err)
	assert.Equal(t, "1-0", detail.Record)
	require.Len(t, detail.Roster, 2)
	assert.Equal(t, 12, detail.Roster[0].Number())
	require.Len(t, detail.Games, 2)
	assert.True(t, detail.Games[0].GameTime.Before(detail.Games[1].GameTime))

	box := detail.Games[0].Details
	require.NotNil(t, box)
	assert.Equal(t, 70, box.HomeFirstHalf+box.HomeSecondHalf)
	assert.Equal(t, 66, box.AwayFirstHalf+box.AwaySecondHalf)
	assert.Nil(t, detail.Games[1].Details)

	_, err = f.teams.GetTeamDetail(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
