package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/fcabl/league-service/internal/league"
	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository/memory"
	"github.com/fcabl/league-service/internal/service"
)

var fixedNow = time.Date(2025, 12, 20, 21, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memory.Store
	teams    service.TeamService
	users    service.UserService
	players  service.PlayerService
	games    service.GameService
	payments service.PaymentService

	thunder, storm model.Team
	// rosters by team, in creation order
	roster map[uuid.UUID][]model.PlayerProfile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zerolog.Nop()
	store := memory.New(func() time.Time { return fixedNow })
	synth := league.NewSynthesizer(rand.NewSource(42), league.DefaultSynthOptions())
	views := league.NewViewBuilder(synth, 2*time.Hour, func() time.Time { return fixedNow })

	f := &fixture{
		store:    store,
		teams:    service.NewTeamService(store.Teams(), store.Players(), store.Games(), views, logger),
		users:    service.NewUserService(store.Users(), logger),
		players:  service.NewPlayerService(store.Players(), store.Users(), store.Teams(), logger),
		games:    service.NewGameService(store.Games(), store.Teams(), store.Players(), store, views, time.UTC, logger),
		payments: service.NewPaymentService(store.Payments(), store.Players(), func() time.Time { return fixedNow }, logger),
		roster:   map[uuid.UUID][]model.PlayerProfile{},
	}

	ctx := context.Background()
	var err error
	f.thunder, err = f.teams.CreateTeam(ctx, "Thunder")
	require.NoError(t, err)
	f.storm, err = f.teams.CreateTeam(ctx, "Storm")
	require.NoError(t, err)

	f.addPlayer(t, f.thunder.ID, "Marcus", "Johnson", 23, 18.5)
	f.addPlayer(t, f.thunder.ID, "Tyler", "Rodriguez", 12, 15.2)
	f.addPlayer(t, f.storm.ID, "Jake", "Harrison", 11, 17.3)
	f.addPlayer(t, f.storm.ID, "Noah", "Campbell", 22, 15.7)
	return f
}

func (f *fixture) addPlayer(t *testing.T, teamID uuid.UUID, first, last string, number int, ppg float64) model.PlayerProfile {
	t.Helper()
	ctx := context.Background()
	u, err := f.users.CreateUser(ctx, service.NewUser{Email: first + "." + last + "@fcabl.com", FirstName: first, LastName: last})
	require.NoError(t, err)
	var team *uuid.UUID
	if teamID != uuid.Nil {
		team = &teamID
	}
	p, err := f.players.CreatePlayer(ctx, service.NewPlayer{UserID: u.ID, TeamID: team, JerseyNumber: &number, PointsPerGame: ppg})
	require.NoError(t, err)
	if team != nil {
		f.roster[teamID] = append(f.roster[teamID], p)
	}
	return p
}

func (f *fixture) schedule(t *testing.T, home, away model.Team, at time.Time) model.GameWithDetails {
	t.Helper()
	g, err := f.games.CreateGame(context.Background(), home.ID, away.ID, at)
	require.NoError(t, err)
	return g
}

func hasField(err error, field string) bool {
	for _, fe := range service.FieldErrors(err) {
		if fe.Field == field {
			return true
		}
	}
	return false
}
