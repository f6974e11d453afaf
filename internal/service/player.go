package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

type playerService struct {
	players repository.PlayerRepository
	users   repository.UserRepository
	teams   repository.TeamRepository
	log     zerolog.Logger
}

func NewPlayerService(players repository.PlayerRepository, users repository.UserRepository, teams repository.TeamRepository, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{players: players, users: users, teams: teams, log: l}
}

func (s *playerService) CreatePlayer(ctx context.Context, in NewPlayer) (model.PlayerProfile, error) {
	start := time.Now()

	var ferrs []FieldError
	ferrs = append(ferrs, requireID("user_id", in.UserID)...)
	if in.TeamID != nil {
		ferrs = append(ferrs, requireID("team_id", *in.TeamID)...)
	}
	ferrs = append(ferrs, checkJersey(in.JerseyNumber)...)
	ferrs = append(ferrs, checkNonNegative("points_per_game", &in.PointsPerGame)...)
	ferrs = append(ferrs, checkNonNegative("registration_fee_due", in.RegistrationFeeDue)...)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("player validation failed")
		return model.PlayerProfile{}, err
	}

	// Existence checks improve client UX vs deferring to FK violation.
	_, err := s.users.GetByID(ctx, in.UserID)
	fe, err := existence("user_id", "user", err)
	if err != nil {
		return model.PlayerProfile{}, err
	}
	ferrs = append(ferrs, fe...)
	if in.TeamID != nil {
		fe, err := teamExists(ctx, s.teams, "team_id", *in.TeamID)
		if err != nil {
			return model.PlayerProfile{}, err
		}
		ferrs = append(ferrs, fe...)
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.PlayerProfile{}, err
	}

	created, err := s.players.Create(ctx, model.Player{
		UserID:             in.UserID,
		TeamID:             in.TeamID,
		JerseyNumber:       in.JerseyNumber,
		PointsPerGame:      in.PointsPerGame,
		RegistrationFeeDue: in.RegistrationFeeDue,
		IsActive:           true,
		IsFullyRegistered:  in.RegistrationFeeDue == nil || *in.RegistrationFeeDue == 0,
	})
	if err != nil {
		s.log.Error().Err(err).Str("user_id", in.UserID.String()).Msg("create player failed")
		return model.PlayerProfile{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Str("player_id", created.ID.String()).Msg("player created")
	return s.players.GetProfile(ctx, created.ID)
}

func (s *playerService) GetPlayer(ctx context.Context, id uuid.UUID) (model.PlayerProfile, error) {
	if err := newInvalidInput(requireID("id", id)); err != nil {
		return model.PlayerProfile{}, err
	}
	return s.players.GetProfile(ctx, id)
}

func (s *playerService) ListPlayers(ctx context.Context) ([]model.PlayerProfile, error) {
	out, err := s.players.ListProfiles(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list players failed")
		return nil, err
	}
	return out, nil
}

// ListActivePlayers returns the profiles of players still marked active.
func (s *playerService) ListActivePlayers(ctx context.Context) ([]model.PlayerProfile, error) {
	all, err := s.players.ListProfiles(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list active players failed")
		return nil, err
	}
	out := make([]model.PlayerProfile, 0, len(all))
	for _, p := range all {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListRoster returns a team's players by jersey number. An unknown team is ErrNotFound
// rather than an empty roster.
func (s *playerService) ListRoster(ctx context.Context, teamID uuid.UUID) ([]model.PlayerProfile, error) {
	if err := newInvalidInput(requireID("team_id", teamID)); err != nil {
		return nil, err
	}
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	out, err := s.players.ListByTeam(ctx, teamID)
	if err != nil {
		s.log.Error().Err(err).Str("team_id", teamID.String()).Msg("list roster failed")
		return nil, err
	}
	return out, nil
}

func (s *playerService) ListFreeAgents(ctx context.Context) ([]model.PlayerProfile, error) {
	out, err := s.players.ListFreeAgents(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list free agents failed")
		return nil, err
	}
	return out, nil
}

func (s *playerService) AssignTeam(ctx context.Context, playerID uuid.UUID, teamID *uuid.UUID) (model.PlayerProfile, error) {
	ferrs := requireID("id", playerID)
	if teamID != nil {
		ferrs = append(ferrs, requireID("team_id", *teamID)...)
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.PlayerProfile{}, err
	}

	p, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return model.PlayerProfile{}, err
	}
	if teamID != nil {
		fe, err := teamExists(ctx, s.teams, "team_id", *teamID)
		if err != nil {
			return model.PlayerProfile{}, err
		}
		if err := newInvalidInput(fe); err != nil {
			return model.PlayerProfile{}, err
		}
	}

	p.TeamID = teamID
	if _, err := s.players.Update(ctx, p); err != nil {
		s.log.Error().Err(err).Str("player_id", playerID.String()).Msg("assign team failed")
		return model.PlayerProfile{}, err
	}
	ev := s.log.Info().Str("player_id", playerID.String())
	if teamID != nil {
		ev = ev.Str("team_id", teamID.String())
	}
	ev.Msg("player team changed")
	return s.players.GetProfile(ctx, playerID)
}

func (s *playerService) UpdateRegistration(ctx context.Context, playerID uuid.UUID, upd RegistrationUpdate) (model.PlayerProfile, error) {
	var ferrs []FieldError
	ferrs = append(ferrs, requireID("id", playerID)...)
	ferrs = append(ferrs, checkJersey(upd.JerseyNumber)...)
	ferrs = append(ferrs, checkNonNegative("points_per_game", upd.PointsPerGame)...)
	ferrs = append(ferrs, checkNonNegative("registration_fee_due", upd.RegistrationFeeDue)...)
	if upd.ClearFee && upd.RegistrationFeeDue != nil {
		ferrs = append(ferrs, FieldError{Field: "registration_fee_due", Message: "cannot be set while clearing the fee"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.PlayerProfile{}, err
	}

	p, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return model.PlayerProfile{}, err
	}
	switch {
	case upd.ClearFee:
		p.RegistrationFeeDue = nil
	case upd.RegistrationFeeDue != nil:
		p.RegistrationFeeDue = upd.RegistrationFeeDue
	}
	if upd.IsFullyRegistered != nil {
		p.IsFullyRegistered = *upd.IsFullyRegistered
	}
	if upd.IsActive != nil {
		p.IsActive = *upd.IsActive
	}
	if upd.JerseyNumber != nil {
		p.JerseyNumber = upd.JerseyNumber
	}
	if upd.PointsPerGame != nil {
		p.PointsPerGame = *upd.PointsPerGame
	}

	if _, err := s.players.Update(ctx, p); err != nil {
		s.log.Error().Err(err).Str("player_id", playerID.String()).Msg("update registration failed")
		return model.PlayerProfile{}, err
	}
	return s.players.GetProfile(ctx, playerID)
}

func (s *playerService) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	if err := newInvalidInput(requireID("id", id)); err != nil {
		return err
	}
	if err := s.players.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("player_id", id.String()).Msg("player deleted")
	return nil
}
