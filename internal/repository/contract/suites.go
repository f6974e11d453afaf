// Package contract holds behavioural suites every repository implementation
// must pass. Each backend wires its own Factory and calls RunAll.
package contract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

// Repos bundles one backend's repositories over a shared, empty store.
type Repos struct {
	Teams    repository.TeamRepository
	Users    repository.UserRepository
	Players  repository.PlayerRepository
	Games    repository.GameRepository
	Payments repository.PaymentRepository
	Tx       repository.TxManager
	Pinger   repository.Pinger
}

// Factory returns fresh repositories and a cleanup func.
type Factory func(t *testing.T) (Repos, func())

var errMarker = errors.New("boom")

func RunAll(t *testing.T, makeRepos Factory) {
	t.Run("teams", func(t *testing.T) { RunTeamRepositoryContract(t, makeRepos) })
	t.Run("users", func(t *testing.T) { RunUserRepositoryContract(t, makeRepos) })
	t.Run("players", func(t *testing.T) { RunPlayerRepositoryContract(t, makeRepos) })
	t.Run("games", func(t *testing.T) { RunGameRepositoryContract(t, makeRepos) })
	t.Run("payments", func(t *testing.T) { RunPaymentRepositoryContract(t, makeRepos) })
	t.Run("tx", func(t *testing.T) { RunTxManagerContract(t, makeRepos) })
	t.Run("ping", func(t *testing.T) { RunPingerContract(t, makeRepos) })
}

func setup(t *testing.T, makeRepos Factory) (Repos, context.Context) {
	t.Helper()
	r, cleanup := makeRepos(t)
	t.Cleanup(cleanup)
	return r, context.Background()
}

func mkTeam(t *testing.T, r Repos, name string) model.Team {
	t.Helper()
	team, err := r.Teams.Create(context.Background(), model.Team{Name: name})
	require.NoError(t, err)
	return team
}

func mkUser(t *testing.T, r Repos, email string) model.User {
	t.Helper()
	u, err := r.Users.Create(context.Background(), model.User{Email: email, FirstName: "Pat", LastName: email})
	require.NoError(t, err)
	return u
}

func mkPlayer(t *testing.T, r Repos, email string, teamID *uuid.UUID, number int) model.Player {
	t.Helper()
	u := mkUser(t, r, email)
	p, err := r.Players.Create(context.Background(), model.Player{UserID: u.ID, TeamID: teamID, JerseyNumber: &number, IsActive: true, PointsPerGame: 10})
	require.NoError(t, err)
	return p
}

func mkGame(t *testing.T, r Repos, home, away uuid.UUID, at time.Time) model.Game {
	t.Helper()
	g, err := r.Games.Create(context.Background(), model.Game{HomeTeamID: home, AwayTeamID: away, GameTime: at})
	require.NoError(t, err)
	return g
}

func RunTeamRepositoryContract(t *testing.T, makeRepos Factory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		created := mkTeam(t, r, "Thunder")
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Zero(t, created.Wins)

		got, err := r.Teams.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Thunder", got.Name)
	})

	t.Run("get_not_found", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		_, err := r.Teams.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("duplicate_name", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		mkTeam(t, r, "Dup")
		_, err := r.Teams.Create(ctx, model.Team{Name: "Dup"})
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)

		other := mkTeam(t, r, "Other")
		_, err = r.Teams.Update(ctx, model.Team{ID: other.ID, Name: "Dup"})
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)
	})

	t.Run("list_ordered_by_name", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		for _, n := range []string{"Storm", "Blaze", "Thunder"} {
			mkTeam(t, r, n)
		}
		list, err := r.Teams.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Blaze", list[0].Name)
		assert.Equal(t, "Thunder", list[2].Name)
	})

	t.Run("update_keeps_counters", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		team := mkTeam(t, r, "Hawks")
		_, err := r.Teams.ApplyResult(ctx, team.ID, model.RecordDelta{Wins: 1, PointsFor: 90, PointsAgainst: 80})
		require.NoError(t, err)

		updated, err := r.Teams.Update(ctx, model.Team{ID: team.ID, Name: "Night Hawks", Wins: 99})
		require.NoError(t, err)
		assert.Equal(t, "Night Hawks", updated.Name)
		assert.Equal(t, 1, updated.Wins)

		_, err = r.Teams.Update(ctx, model.Team{ID: uuid.New(), Name: "Ghost"})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("apply_result_accumulates", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		team := mkTeam(t, r, "Eagles")
		_, err := r.Teams.ApplyResult(ctx, team.ID, model.RecordDelta{Wins: 1, PointsFor: 95, PointsAgainst: 88})
		require.NoError(t, err)
		got, err := r.Teams.ApplyResult(ctx, team.ID, model.RecordDelta{Draws: 1, PointsFor: 70, PointsAgainst: 70})
		require.NoError(t, err)
		assert.Equal(t, model.Team{
			ID: team.ID, Name: "Eagles", Wins: 1, Draws: 1, PointsFor: 165, PointsAgainst: 158,
			CreatedAt: got.CreatedAt, UpdatedAt: got.UpdatedAt,
		}, got)

		_, err = r.Teams.ApplyResult(ctx, uuid.New(), model.RecordDelta{Wins: 1})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete_releases_players_and_respects_games", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		home := mkTeam(t, r, "Home")
		away := mkTeam(t, r, "Away")
		p := mkPlayer(t, r, "rostered@fcabl.test", &home.ID, 4)
		g := mkGame(t, r, home.ID, away.ID, time.Now().Add(24*time.Hour))

		assert.ErrorIs(t, r.Teams.Delete(ctx, home.ID), repository.ErrConflict)

		require.NoError(t, r.Games.Delete(ctx, g.ID))
		require.NoError(t, r.Teams.Delete(ctx, home.ID))

		got, err := r.Players.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, got.TeamID)

		assert.ErrorIs(t, r.Teams.Delete(ctx, home.ID), repository.ErrNotFound)
	})
}

func RunUserRepositoryContract(t *testing.T, makeRepos Factory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		u, err := r.Users.Create(ctx, model.User{Email: "marcus.j@fcabl.test", FirstName: "Marcus", LastName: "Johnson", PhoneNumber: "555-0100"})
		require.NoError(t, err)
		assert.Equal(t, "player", u.Role)

		got, err := r.Users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Marcus", got.FirstName)
		assert.Equal(t, "555-0100", got.PhoneNumber)

		_, err = r.Users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("duplicate_email", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		mkUser(t, r, "same@fcabl.test")
		_, err := r.Users.Create(ctx, model.User{Email: "same@fcabl.test", FirstName: "Other"})
		assert.ErrorIs(t, err, repository.ErrAlreadyExists)
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		for i := 0; i < 7; i++ {
			mkUser(t, r, string(rune('a'+i))+"@fcabl.test")
		}
		res, err := r.Users.List(ctx, repository.Page{Limit: 3})
		require.NoError(t, err)
		assert.Len(t, res.Items, 3)
		assert.Equal(t, 7, res.Total)

		res, err = r.Users.List(ctx, repository.Page{Limit: 3, Offset: 6})
		require.NoError(t, err)
		assert.Len(t, res.Items, 1)
		assert.Equal(t, 7, res.Total)

		res, err = r.Users.List(ctx, repository.Page{Limit: 3, Offset: 30})
		require.NoError(t, err)
		assert.Empty(t, res.Items)
		assert.Equal(t, 7, res.Total)
	})
}

func RunPlayerRepositoryContract(t *testing.T, makeRepos Factory) {
	t.Helper()

	t.Run("create_get_profile", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		team := mkTeam(t, r, "Bulls")
		u, err := r.Users.Create(ctx, model.User{Email: "mj@fcabl.test", FirstName: "Michael", LastName: "Jordan"})
		require.NoError(t, err)
		fee := 150.0
		number := 23
		p, err := r.Players.Create(ctx, model.Player{UserID: u.ID, TeamID: &team.ID, JerseyNumber: &number, RegistrationFeeDue: &fee, IsActive: true, PointsPerGame: 18.5})
		require.NoError(t, err)

		got, err := r.Players.GetByID(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got.TeamID)
		assert.Equal(t, team.ID, *got.TeamID)
		require.NotNil(t, got.RegistrationFeeDue)
		assert.InDelta(t, 150.0, *got.RegistrationFeeDue, 1e-9)

		prof, err := r.Players.GetProfile(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Michael Jordan", prof.FullName)
		assert.Equal(t, "mj@fcabl.test", prof.Email)
		assert.Equal(t, 23, prof.Number())

		_, err = r.Players.GetProfile(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("foreign_keys", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		_, err := r.Players.Create(ctx, model.Player{UserID: uuid.New()})
		assert.ErrorIs(t, err, repository.ErrConflict)

		u := mkUser(t, r, "fk@fcabl.test")
		ghost := uuid.New()
		_, err = r.Players.Create(ctx, model.Player{UserID: u.ID, TeamID: &ghost})
		assert.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("roster_and_free_agents", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		team := mkTeam(t, r, "Lakers")
		mkPlayer(t, r, "b@fcabl.test", &team.ID, 24)
		mkPlayer(t, r, "a@fcabl.test", &team.ID, 8)
		agent := mkPlayer(t, r, "free@fcabl.test", nil, 0)

		roster, err := r.Players.ListByTeam(ctx, team.ID)
		require.NoError(t, err)
		require.Len(t, roster, 2)
		assert.Equal(t, 8, roster[0].Number())
		assert.Equal(t, 24, roster[1].Number())

		free, err := r.Players.ListFreeAgents(ctx)
		require.NoError(t, err)
		require.Len(t, free, 1)
		assert.Equal(t, agent.ID, free[0].ID)

		all, err := r.Players.ListProfiles(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		plain, err := r.Players.List(ctx)
		require.NoError(t, err)
		assert.Len(t, plain, 3)
	})

	t.Run("update_assigns_team", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		team := mkTeam(t, r, "Celtics")
		p := mkPlayer(t, r, "move@fcabl.test", nil, 0)

		p.TeamID = &team.ID
		p.IsFullyRegistered = true
		updated, err := r.Players.Update(ctx, p)
		require.NoError(t, err)
		require.NotNil(t, updated.TeamID)
		assert.Equal(t, team.ID, *updated.TeamID)
		assert.True(t, updated.IsFullyRegistered)

		roster, err := r.Players.ListByTeam(ctx, team.ID)
		require.NoError(t, err)
		assert.Len(t, roster, 1)

		_, err = r.Players.Update(ctx, model.Player{ID: uuid.New()})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		p := mkPlayer(t, r, "gone@fcabl.test", nil, 0)
		require.NoError(t, r.Players.Delete(ctx, p.ID))
		assert.ErrorIs(t, r.Players.Delete(ctx, p.ID), repository.ErrNotFound)
	})
}

func RunGameRepositoryContract(t *testing.T, makeRepos Factory) {
	t.Helper()
	base := time.Date(2025, 12, 1, 19, 0, 0, 0, time.UTC)

	t.Run("create_get_list", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		home := mkTeam(t, r, "Home")
		away := mkTeam(t, r, "Away")
		third := mkTeam(t, r, "Third")
		late := mkGame(t, r, home.ID, away.ID, base.Add(48*time.Hour))
		early := mkGame(t, r, away.ID, home.ID, base)
		mkGame(t, r, away.ID, third.ID, base.Add(time.Hour))

		got, err := r.Games.GetByID(ctx, early.ID)
		require.NoError(t, err)
		assert.Equal(t, home.ID, got.AwayTeamID)
		assert.True(t, base.Equal(got.GameTime))
		assert.Nil(t, got.Result)

		list, err := r.Games.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, early.ID, list[0].ID)
		assert.Equal(t, late.ID, list[2].ID)

		mine, err := r.Games.ListByTeam(ctx, home.ID)
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		_, err = r.Games.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("create_requires_known_distinct_teams", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		home := mkTeam(t, r, "Solo")
		_, err := r.Games.Create(ctx, model.Game{HomeTeamID: home.ID, AwayTeamID: uuid.New(), GameTime: base})
		assert.ErrorIs(t, err, repository.ErrConflict)
		_, err = r.Games.Create(ctx, model.Game{HomeTeamID: home.ID, AwayTeamID: home.ID, GameTime: base})
		assert.ErrorIs(t, err, repository.ErrConflict)
	})

	t.Run("reschedule", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		home := mkTeam(t, r, "H")
		away := mkTeam(t, r, "A")
		g := mkGame(t, r, home.ID, away.ID, base)

		moved, err := r.Games.Reschedule(ctx, g.ID, base.Add(72*time.Hour))
		require.NoError(t, err)
		assert.True(t, base.Add(72*time.Hour).Equal(moved.GameTime))

		_, err = r.Games.Reschedule(ctx, uuid.New(), base)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("record_result_once", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		home := mkTeam(t, r, "Thunder")
		away := mkTeam(t, r, "Lightning")
		g := mkGame(t, r, home.ID, away.ID, base)

		details := &model.GameDetails{
			HomeFirstHalf: 50, HomeSecondHalf: 45, AwayFirstHalf: 40, AwaySecondHalf: 48,
			HomePlayerStats: []model.PlayerGameStats{{PlayerID: uuid.New(), PlayerName: "Marcus Johnson", Number: 23, Points: 95}},
			AwayPlayerStats: []model.PlayerGameStats{{PlayerID: uuid.New(), PlayerName: "James Mitchell", Number: 10, Points: 88}},
		}
		recorded, err := r.Games.RecordResult(ctx, g.ID, model.GameResult{HomeScore: 95, AwayScore: 88, Details: details})
		require.NoError(t, err)
		require.NotNil(t, recorded.Result)
		assert.Equal(t, 95, recorded.Result.HomeScore)
		assert.False(t, recorded.Result.RecordedAt.IsZero())

		got, err := r.Games.GetByID(ctx, g.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Result)
		require.NotNil(t, got.Result.Details)
		assert.Equal(t, 50, got.Result.Details.HomeFirstHalf)
		assert.Equal(t, details.AwayPlayerStats, got.Result.Details.AwayPlayerStats)

		_, err = r.Games.RecordResult(ctx, g.ID, model.GameResult{HomeScore: 1, AwayScore: 2})
		assert.ErrorIs(t, err, repository.ErrConflict)

		_, err = r.Games.RecordResult(ctx, uuid.New(), model.GameResult{})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		home := mkTeam(t, r, "X")
		away := mkTeam(t, r, "Y")
		g := mkGame(t, r, home.ID, away.ID, base)
		require.NoError(t, r.Games.Delete(ctx, g.ID))
		assert.ErrorIs(t, r.Games.Delete(ctx, g.ID), repository.ErrNotFound)
	})
}

func RunPaymentRepositoryContract(t *testing.T, makeRepos Factory) {
	t.Helper()
	day := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	mkPayment := func(t *testing.T, r Repos, playerID uuid.UUID, amount float64, status model.PaymentStatus, at time.Time) model.Payment {
		t.Helper()
		p, err := r.Payments.Create(context.Background(), model.Payment{PlayerID: playerID, Amount: amount, Status: status, PaymentDate: at})
		require.NoError(t, err)
		return p
	}

	t.Run("create_get", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		player := mkPlayer(t, r, "payer@fcabl.test", nil, 4)

		p, err := r.Payments.Create(ctx, model.Payment{PlayerID: player.ID, StripeID: "pi_123", Amount: 75.5, PaymentDate: day})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.Equal(t, model.PaymentPending, p.Status, "status defaults to pending")

		got, err := r.Payments.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, player.ID, got.PlayerID)
		assert.Equal(t, "pi_123", got.StripeID)
		assert.InDelta(t, 75.5, got.Amount, 1e-9)
		assert.True(t, got.PaymentDate.Equal(day))

		_, err = r.Payments.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("constraints", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		_, err := r.Payments.Create(ctx, model.Payment{PlayerID: uuid.New(), Amount: 10, PaymentDate: day})
		assert.ErrorIs(t, err, repository.ErrConflict, "unknown player")

		player := mkPlayer(t, r, "neg@fcabl.test", nil, 5)
		_, err = r.Payments.Create(ctx, model.Payment{PlayerID: player.ID, Amount: -1, PaymentDate: day})
		assert.ErrorIs(t, err, repository.ErrConflict, "negative amount")

		_, err = r.Payments.Create(ctx, model.Payment{PlayerID: player.ID, Amount: 1, Status: "refunded", PaymentDate: day})
		assert.ErrorIs(t, err, repository.ErrConflict, "unknown status")
	})

	t.Run("list_filters_newest_first", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		a := mkPlayer(t, r, "a.pay@fcabl.test", nil, 1)
		b := mkPlayer(t, r, "b.pay@fcabl.test", nil, 2)
		oldest := mkPayment(t, r, a.ID, 50, model.PaymentCompleted, day)
		newest := mkPayment(t, r, a.ID, 25, model.PaymentPending, day.Add(48*time.Hour))
		other := mkPayment(t, r, b.ID, 100, model.PaymentCompleted, day.Add(24*time.Hour))

		all, err := r.Payments.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []uuid.UUID{newest.ID, other.ID, oldest.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})

		mine, err := r.Payments.ListByPlayer(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, newest.ID, mine[0].ID)
		assert.Equal(t, oldest.ID, mine[1].ID)

		done, err := r.Payments.ListByStatus(ctx, model.PaymentCompleted)
		require.NoError(t, err)
		require.Len(t, done, 2)
		assert.Equal(t, other.ID, done[0].ID)

		none, err := r.Payments.ListByPlayer(ctx, uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("update_status", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		player := mkPlayer(t, r, "status@fcabl.test", nil, 3)
		p := mkPayment(t, r, player.ID, 40, model.PaymentPending, day)

		updated, err := r.Payments.UpdateStatus(ctx, p.ID, model.PaymentFailed)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentFailed, updated.Status)
		assert.InDelta(t, 40.0, updated.Amount, 1e-9)

		_, err = r.Payments.UpdateStatus(ctx, p.ID, "lost")
		assert.ErrorIs(t, err, repository.ErrConflict)

		_, err = r.Payments.UpdateStatus(ctx, uuid.New(), model.PaymentCompleted)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete_and_player_cascade", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		player := mkPlayer(t, r, "cascade@fcabl.test", nil, 6)
		p := mkPayment(t, r, player.ID, 10, model.PaymentCompleted, day)
		kept := mkPayment(t, r, player.ID, 20, model.PaymentCompleted, day.Add(time.Hour))

		require.NoError(t, r.Payments.Delete(ctx, p.ID))
		assert.ErrorIs(t, r.Payments.Delete(ctx, p.ID), repository.ErrNotFound)

		require.NoError(t, r.Players.Delete(ctx, player.ID))
		_, err := r.Payments.GetByID(ctx, kept.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound, "payments go with their player")
	})
}

func RunTxManagerContract(t *testing.T, makeRepos Factory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		var createdID uuid.UUID
		err := r.Tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := r.Teams.Create(ctx, model.Team{Name: "TxCommit"})
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		require.NoError(t, err)
		_, err = r.Teams.GetByID(ctx, createdID)
		assert.NoError(t, err)
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		team := mkTeam(t, r, "Steady")
		var createdID uuid.UUID
		err := r.Tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := r.Teams.Create(ctx, model.Team{Name: "TxRollback"})
			if err != nil {
				return err
			}
			createdID = out.ID
			if _, err := r.Teams.ApplyResult(ctx, team.ID, model.RecordDelta{Wins: 1}); err != nil {
				return err
			}
			return errMarker
		})
		assert.ErrorIs(t, err, errMarker)

		_, err = r.Teams.GetByID(ctx, createdID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		got, err := r.Teams.GetByID(ctx, team.ID)
		require.NoError(t, err)
		assert.Zero(t, got.Wins)
	})

	t.Run("nested_joins_outer", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		err := r.Tx.WithinTx(ctx, func(ctx context.Context) error {
			if _, err := r.Teams.Create(ctx, model.Team{Name: "Outer"}); err != nil {
				return err
			}
			return r.Tx.WithinTx(ctx, func(ctx context.Context) error {
				_, err := r.Teams.Create(ctx, model.Team{Name: "Inner"})
				if err != nil {
					return err
				}
				return errMarker
			})
		})
		assert.ErrorIs(t, err, errMarker)
		list, err := r.Teams.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func RunPingerContract(t *testing.T, makeRepos Factory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		r, ctx := setup(t, makeRepos)
		assert.NoError(t, r.Pinger.Ping(ctx))
	})
}
