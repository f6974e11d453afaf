package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/fcabl/league-service/internal/league"
	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

// teamService holds team use-case logic: validation + orchestration, no transport / SQL details.
type teamService struct {
	teams   repository.TeamRepository
	players repository.PlayerRepository
	games   repository.GameRepository
	views   *league.ViewBuilder
	log     zerolog.Logger
}

func NewTeamService(teams repository.TeamRepository, players repository.PlayerRepository, games repository.GameRepository, views *league.ViewBuilder, logger zerolog.Logger) TeamService {
	l := logger.With().Str("module", "service").Str("component", "team").Logger()
	return &teamService{teams: teams, players: players, games: games, views: views, log: l}
}

func (s *teamService) CreateTeam(ctx context.Context, name string) (model.Team, error) {
	start := time.Now()
	original := name
	name = strings.TrimSpace(name)

	if err := newInvalidInput(checkName("name", name, minNameLen)); err != nil {
		s.log.Debug().Str("name_raw", original).Interface("field_errors", FieldErrors(err)).Msg("team validation failed")
		return model.Team{}, err
	}

	out, err := s.teams.Create(ctx, model.Team{Name: name})
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("name", name).Msg("create team failed")
		return model.Team{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("team_id", out.ID.String()).Msg("team created")
	return out, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id uuid.UUID, name string) (model.Team, error) {
	name = strings.TrimSpace(name)
	ferrs := append(requireID("id", id), checkName("name", name, minNameLen)...)
	if err := newInvalidInput(ferrs); err != nil {
		return model.Team{}, err
	}
	out, err := s.teams.Update(ctx, model.Team{ID: id, Name: name})
	if err != nil {
		s.log.Error().Err(err).Str("team_id", id.String()).Msg("rename team failed")
		return model.Team{}, err
	}
	s.log.Info().Str("team_id", id.String()).Str("name", name).Msg("team renamed")
	return out, nil
}

// DeleteTeam removes a team that has no games. Its players become free agents.
func (s *teamService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	if err := newInvalidInput(requireID("id", id)); err != nil {
		return err
	}
	if err := s.teams.Delete(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("team_id", id.String()).Msg("delete team failed")
		return err
	}
	s.log.Info().Str("team_id", id.String()).Msg("team deleted")
	return nil
}

func (s *teamService) GetTeam(ctx context.Context, id uuid.UUID) (model.Team, error) {
	if err := newInvalidInput(requireID("id", id)); err != nil {
		return model.Team{}, err
	}
	return s.teams.GetByID(ctx, id)
}

func (s *teamService) ListTeams(ctx context.Context) ([]model.TeamWithStats, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list teams failed")
		return nil, err
	}
	out := make([]model.TeamWithStats, 0, len(teams))
	for _, t := range teams {
		out = append(out, league.ComputeStats(t))
	}
	return out, nil
}

func (s *teamService) GetTeamStats(ctx context.Context, id uuid.UUID) (model.TeamWithStats, error) {
	team, err := s.GetTeam(ctx, id)
	if err != nil {
		return model.TeamWithStats{}, err
	}
	return league.ComputeStats(team), nil
}

// GetTeamDetail builds the team page. Missing box scores are logged, not returned.
func (s *teamService) GetTeamDetail(ctx context.Context, id uuid.UUID) (model.TeamDetail, error) {
	if err := newInvalidInput(requireID("id", id)); err != nil {
		return model.TeamDetail{}, err
	}

	var (
		team    model.Team
		names   league.TeamNames
		players []model.PlayerProfile
		games   []model.Game
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		team, err = s.teams.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		all, err := s.teams.List(gctx)
		names = league.NamesOf(all)
		return err
	})
	// opponents' rosters are needed to synthesize their half of each box score
	g.Go(func() error {
		var err error
		players, err = s.players.ListProfiles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		games, err = s.games.ListByTeam(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.TeamDetail{}, err
	}

	detail, err := s.views.TeamDetail(team, players, games, names)
	logSynthesis(s.log, err)
	return detail, nil
}

// Standings ranks every team and annotates the current streak.
func (s *teamService) Standings(ctx context.Context) ([]model.Standing, error) {
	snap, err := reader{teams: s.teams, players: s.players, games: s.games}.load(ctx, false, true)
	if err != nil {
		s.log.Error().Err(err).Msg("load standings failed")
		return nil, err
	}
	return league.AttachStreaks(league.RankStandings(snap.teams), snap.games), nil
}
