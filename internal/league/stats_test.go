package league_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fcabl/league-service/internal/league"
	"github.com/fcabl/league-service/internal/model"
)

func TestComputeStats(t *testing.T) {
	cases := []struct {
		name        string
		team        model.Team
		wantPct     float64
		wantDisplay string
		wantDiff    int
		wantPlayed  int
		wantAvgFor  float64
		wantAvgAgst float64
	}{
		{
			name:        "thunder season",
			team:        model.Team{Wins: 12, Losses: 2, PointsFor: 1344, PointsAgainst: 1248},
			wantPct:     0.857,
			wantDisplay: "85.7%",
			wantDiff:    96,
			wantPlayed:  14,
			wantAvgFor:  96.0,
			wantAvgAgst: 89.1,
		},
		{
			name:        "no games played",
			team:        model.Team{},
			wantDisplay: "0.0%",
		},
		{
			name:        "losing record with draws",
			team:        model.Team{Wins: 1, Losses: 2, Draws: 1, PointsFor: 301, PointsAgainst: 330},
			wantPct:     0.25,
			wantDisplay: "25.0%",
			wantDiff:    -29,
			wantPlayed:  4,
			wantAvgFor:  75.3,
			wantAvgAgst: 82.5,
		},
		{
			name:        "average rounds half away from zero",
			team:        model.Team{Wins: 2, PointsFor: 181, PointsAgainst: 0},
			wantPct:     1,
			wantDisplay: "100.0%",
			wantDiff:    181,
			wantPlayed:  2,
			wantAvgFor:  90.5,
			wantAvgAgst: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := league.ComputeStats(tc.team)
			assert.InDelta(t, tc.wantPct, got.WinPercentage, 0.0005)
			assert.Equal(t, tc.wantDisplay, got.WinPctDisplay)
			assert.Equal(t, tc.wantDiff, got.PointDifferential)
			assert.Equal(t, tc.wantPlayed, got.GamesPlayed)
			assert.InDelta(t, tc.wantAvgFor, got.AvgPointsFor, 1e-9)
			assert.InDelta(t, tc.wantAvgAgst, got.AvgPointsAgainst, 1e-9)
			assert.Equal(t, tc.team, got.Team)
		})
	}
}

func TestComputeStats_WinPercentageBounds(t *testing.T) {
	for w := 0; w <= 5; w++ {
		for l := 0; l <= 5; l++ {
			for d := 0; d <= 3; d++ {
				got := league.ComputeStats(model.Team{Wins: w, Losses: l, Draws: d, PointsFor: w * 90, PointsAgainst: l * 85})
				assert.GreaterOrEqual(t, got.WinPercentage, 0.0)
				assert.LessOrEqual(t, got.WinPercentage, 1.0)
				if w+l+d == 0 {
					assert.Zero(t, got.WinPercentage)
				}
				assert.Equal(t, got.PointsFor-got.PointsAgainst, got.PointDifferential)
			}
		}
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "10-5", league.FormatRecord(10, 5, 0))
	assert.Equal(t, "10-5-2", league.FormatRecord(10, 5, 2))
	assert.Equal(t, "75.0%", league.FormatWinPercentage(0.75))
	assert.Equal(t, "85.7%", league.FormatWinPercentage(12.0/14.0))
	assert.Equal(t, "94-87", league.FormatScore(94, 87))
}

func TestResultDeltas(t *testing.T) {
	home, away := league.ResultDeltas(model.GameResult{HomeScore: 95, AwayScore: 88})
	assert.Equal(t, model.RecordDelta{Wins: 1, PointsFor: 95, PointsAgainst: 88}, home)
	assert.Equal(t, model.RecordDelta{Losses: 1, PointsFor: 88, PointsAgainst: 95}, away)

	home, away = league.ResultDeltas(model.GameResult{HomeScore: 70, AwayScore: 70})
	assert.Equal(t, 1, home.Draws)
	assert.Equal(t, 1, away.Draws)
	assert.Equal(t, league.OutcomeAway, league.Outcome(model.GameResult{HomeScore: 80, AwayScore: 81}))
}
