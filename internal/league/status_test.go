package league_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fcabl/league-service/internal/league"
	"github.com/fcabl/league-service/internal/model"
)

func TestResolveStatus(t *testing.T) {
	now := time.Date(2025, 12, 20, 21, 0, 0, 0, time.UTC)
	stale := league.DefaultStaleThreshold

	cases := []struct {
		name      string
		gameTime  time.Time
		hasResult bool
		want      model.GameStatus
	}{
		{"future without result", now.Add(24 * time.Hour), false, model.StatusScheduled},
		{"future with result", now.Add(time.Hour), true, model.StatusCompleted},
		{"past with result", now.Add(-48 * time.Hour), true, model.StatusCompleted},
		{"thirty minutes in", now.Add(-30 * time.Minute), false, model.StatusLive},
		{"three hours ago", now.Add(-3 * time.Hour), false, model.StatusCompleted},
		{"tip-off right now", now, false, model.StatusLive},
		{"exactly at threshold", now.Add(-stale), false, model.StatusCompleted},
		{"just under threshold", now.Add(-stale + time.Second), false, model.StatusLive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, league.ResolveStatus(tc.gameTime, tc.hasResult, now, stale))
		})
	}
}

func TestResolveStatus_CustomThreshold(t *testing.T) {
	now := time.Date(2026, 1, 2, 20, 0, 0, 0, time.UTC)
	gameTime := now.Add(-90 * time.Minute)
	assert.Equal(t, model.StatusLive, league.ResolveStatus(gameTime, false, now, 2*time.Hour))
	assert.Equal(t, model.StatusCompleted, league.ResolveStatus(gameTime, false, now, time.Hour))
}
