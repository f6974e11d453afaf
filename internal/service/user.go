package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

type userService struct {
	users repository.UserRepository
	log   zerolog.Logger
}

func NewUserService(users repository.UserRepository, logger zerolog.Logger) UserService {
	l := logger.With().Str("module", "service").Str("component", "user").Logger()
	return &userService{users: users, log: l}
}

func (s *userService) CreateUser(ctx context.Context, in NewUser) (model.User, error) {
	u := model.User{
		Email:       normalizeEmail(in.Email),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
	}

	var ferrs []FieldError
	ferrs = append(ferrs, checkEmail(u.Email)...)
	ferrs = append(ferrs, checkName("first_name", u.FirstName, 1)...)
	ferrs = append(ferrs, checkName("last_name", u.LastName, 1)...)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("user validation failed")
		return model.User{}, err
	}

	out, err := s.users.Create(ctx, u)
	if err != nil {
		s.log.Error().Err(err).Str("email", u.Email).Msg("create user failed")
		return model.User{}, err
	}
	s.log.Info().Str("user_id", out.ID.String()).Msg("user created")
	return out, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	if err := newInvalidInput(requireID("id", id)); err != nil {
		return model.User{}, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *userService) ListUsers(ctx context.Context, page repository.Page) (repository.PageResult[model.User], error) {
	p := page.Sanitize()
	res, err := s.users.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list users failed")
		return repository.PageResult[model.User]{}, err
	}
	return res, nil
}
