package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fcabl/league-service/internal/model"
)

// Pinger represents a minimal readiness check capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// TeamRepository declares persistence operations for teams.
// I return domain models and surface domain errors from errors.go rather than PG codes.
type TeamRepository interface {
	Create(ctx context.Context, t model.Team) (model.Team, error)
	// Update renames a team. Counters are never written through Update.
	Update(ctx context.Context, t model.Team) (model.Team, error)
	// Delete fails with ErrConflict while games still reference the team.
	// Its players become free agents.
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (model.Team, error)
	// List returns every team ordered by name.
	List(ctx context.Context) ([]model.Team, error)
	// ApplyResult adds delta to the team's counters in one statement.
	ApplyResult(ctx context.Context, id uuid.UUID, delta model.RecordDelta) (model.Team, error)
}

// UserRepository declares persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
	List(ctx context.Context, p Page) (PageResult[model.User], error)
}

// PlayerRepository declares persistence operations for players.
// Profiles join the owning user so callers never stitch names themselves.
type PlayerRepository interface {
	Create(ctx context.Context, p model.Player) (model.Player, error)
	// Update writes the mutable registration fields: team, jersey, fee, flags and scoring rate.
	Update(ctx context.Context, p model.Player) (model.Player, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (model.Player, error)
	List(ctx context.Context) ([]model.Player, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.PlayerProfile, error)
	ListFreeAgents(ctx context.Context) ([]model.PlayerProfile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (model.PlayerProfile, error)
	ListProfiles(ctx context.Context) ([]model.PlayerProfile, error)
}

// GameRepository declares persistence operations for games.
type GameRepository interface {
	Create(ctx context.Context, g model.Game) (model.Game, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Game, error)
	// List returns every game ordered by tip-off.
	List(ctx context.Context) ([]model.Game, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Game, error)
	Reschedule(ctx context.Context, id uuid.UUID, gameTime time.Time) (model.Game, error)
	// RecordResult stores the final score once. A second submission fails with ErrConflict.
	RecordResult(ctx context.Context, id uuid.UUID, r model.GameResult) (model.Game, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository declares persistence operations for the payment ledger.
// Lists are ordered newest payment first.
type PaymentRepository interface {
	// Create fails with ErrConflict when the player does not exist.
	Create(ctx context.Context, p model.Payment) (model.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Payment, error)
	List(ctx context.Context) ([]model.Payment, error)
	ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]model.Payment, error)
	ListByStatus(ctx context.Context, status model.PaymentStatus) ([]model.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) (model.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
