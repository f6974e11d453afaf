// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
// Derivation itself lives in package league.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// InvalidFields lets handlers report values that fail to parse before a use
// case is reached, in the same envelope as service-side validation.
func InvalidFields(fe ...FieldError) error {
	return newInvalidInput(fe)
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var v interface{ Fields() []FieldError }
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// NewUser is the input for registering an account.
type NewUser struct {
	Email       string
	PhoneNumber string
	FirstName   string
	LastName    string
}

// NewPlayer is the input for registering a player under an existing user.
// A nil TeamID registers a free agent.
type NewPlayer struct {
	UserID             uuid.UUID
	TeamID             *uuid.UUID
	JerseyNumber       *int
	PointsPerGame      float64
	RegistrationFeeDue *float64
}

// RegistrationUpdate patches a player's registration. Nil fields are left alone;
// ClearFee drops any outstanding fee.
type RegistrationUpdate struct {
	RegistrationFeeDue *float64
	ClearFee           bool
	IsFullyRegistered  *bool
	IsActive           *bool
	JerseyNumber       *int
	PointsPerGame      *float64
}

// NewPayment is the input for recording a payment. An empty Status records a
// pending payment and a zero PaymentDate is stamped with the current time.
type NewPayment struct {
	PlayerID    uuid.UUID
	StripeID    string
	Amount      float64
	Status      model.PaymentStatus
	PaymentDate time.Time
}

// ResultSubmission is a final score, optionally with the half-time split and
// per-player points. Player names and numbers are filled from the rosters.
type ResultSubmission struct {
	HomeScore int
	AwayScore int
	Details   *model.GameDetails
}

// TeamService defines team-oriented use cases.
type TeamService interface {
	CreateTeam(ctx context.Context, name string) (model.Team, error)
	UpdateTeam(ctx context.Context, id uuid.UUID, name string) (model.Team, error)
	DeleteTeam(ctx context.Context, id uuid.UUID) error
	GetTeam(ctx context.Context, id uuid.UUID) (model.Team, error)
	ListTeams(ctx context.Context) ([]model.TeamWithStats, error)
	GetTeamStats(ctx context.Context, id uuid.UUID) (model.TeamWithStats, error)
	GetTeamDetail(ctx context.Context, id uuid.UUID) (model.TeamDetail, error)
	Standings(ctx context.Context) ([]model.Standing, error)
}

// UserService defines account use cases.
type UserService interface {
	CreateUser(ctx context.Context, in NewUser) (model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	ListUsers(ctx context.Context, page repository.Page) (repository.PageResult[model.User], error)
}

// PlayerService defines player-oriented use cases. Reads return profiles so
// callers always get the player's name alongside the registration.
type PlayerService interface {
	CreatePlayer(ctx context.Context, in NewPlayer) (model.PlayerProfile, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (model.PlayerProfile, error)
	ListPlayers(ctx context.Context) ([]model.PlayerProfile, error)
	ListActivePlayers(ctx context.Context) ([]model.PlayerProfile, error)
	ListRoster(ctx context.Context, teamID uuid.UUID) ([]model.PlayerProfile, error)
	ListFreeAgents(ctx context.Context) ([]model.PlayerProfile, error)
	// AssignTeam moves a player to teamID; nil releases them to free agency.
	AssignTeam(ctx context.Context, playerID uuid.UUID, teamID *uuid.UUID) (model.PlayerProfile, error)
	UpdateRegistration(ctx context.Context, playerID uuid.UUID, upd RegistrationUpdate) (model.PlayerProfile, error)
	DeletePlayer(ctx context.Context, id uuid.UUID) error
}

// GameService defines schedule and result use cases.
type GameService interface {
	CreateGame(ctx context.Context, homeID, awayID uuid.UUID, gameTime time.Time) (model.GameWithDetails, error)
	RescheduleGame(ctx context.Context, id uuid.UUID, gameTime time.Time) (model.GameWithDetails, error)
	RecordResult(ctx context.Context, id uuid.UUID, sub ResultSubmission) (model.GameWithDetails, error)
	DeleteGame(ctx context.Context, id uuid.UUID) error
	GetGame(ctx context.Context, id uuid.UUID) (model.GameWithDetails, error)
	ListGames(ctx context.Context) ([]model.GameWithDetails, error)
	ListTeamSchedule(ctx context.Context, teamID uuid.UUID) ([]model.GameWithDetails, error)
	RecentGames(ctx context.Context) ([]model.GameWithDetails, error)
	UpcomingGames(ctx context.Context) ([]model.GameWithDetails, error)
	HomeFeed(ctx context.Context) (model.HomeFeed, error)
	FlatSchedule(ctx context.Context) ([]model.FlatGame, error)
	FlatPlayers(ctx context.Context) ([]model.FlatPlayer, error)
}

// PaymentService defines the payment ledger use cases.
type PaymentService interface {
	CreatePayment(ctx context.Context, in NewPayment) (model.Payment, error)
	GetPayment(ctx context.Context, id uuid.UUID) (model.Payment, error)
	GetPaymentWithPlayer(ctx context.Context, id uuid.UUID) (model.PaymentWithPlayer, error)
	ListPayments(ctx context.Context) ([]model.Payment, error)
	ListPaymentsWithPlayers(ctx context.Context) ([]model.PaymentWithPlayer, error)
	ListPaymentsByPlayer(ctx context.Context, playerID uuid.UUID) ([]model.Payment, error)
	ListPaymentsByStatus(ctx context.Context, status model.PaymentStatus) ([]model.Payment, error)
	PlayerPaymentSummary(ctx context.Context, playerID uuid.UUID) (model.PlayerPaymentSummary, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) (model.Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error
}
