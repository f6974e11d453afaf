package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/fcabl/league-service/internal/league"
	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

// snapshot is everything a composite view needs, read in one pass.
type snapshot struct {
	teams   []model.Team
	players []model.PlayerProfile
	games   []model.Game
}

func (s snapshot) names() league.TeamNames { return league.NamesOf(s.teams) }

func (s snapshot) rosters() league.Rosters { return league.RostersByTeam(s.players) }

// reader fans the three list queries out concurrently.
type reader struct {
	teams   repository.TeamRepository
	players repository.PlayerRepository
	games   repository.GameRepository
}

// load reads teams, player profiles and games. Skip flags avoid queries a view does not need.
func (r reader) load(ctx context.Context, withPlayers, withGames bool) (snapshot, error) {
	var out snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		teams, err := r.teams.List(ctx)
		out.teams = teams
		return err
	})
	if withPlayers {
		g.Go(func() error {
			players, err := r.players.ListProfiles(ctx)
			out.players = players
			return err
		})
	}
	if withGames {
		g.Go(func() error {
			games, err := r.games.List(ctx)
			out.games = games
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return out, nil
}

// logSynthesis reports box scores that could not be synthesized. The views
// are still served; the affected games just carry no details.
func logSynthesis(log zerolog.Logger, err error) {
	if err == nil {
		return
	}
	log.Warn().Err(err).Msg("box score synthesis skipped")
}
