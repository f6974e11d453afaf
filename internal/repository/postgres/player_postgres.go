package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fcabl/league-service/internal/league"
	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

const playerColumns = `p.id, p.user_id, p.team_id, p.registration_fee_due, p.is_fully_registered,
	p.is_active, p.jersey_number, p.points_per_game, p.created_at, p.updated_at`

const profileSelect = `SELECT ` + playerColumns + `, u.email, u.phone_number, u.first_name, u.last_name
	FROM players p JOIN users u ON u.id = p.user_id`

const profileOrder = ` ORDER BY p.jersey_number NULLS LAST, u.last_name, u.first_name, p.id`

type playerRepository struct{ pool *pgxpool.Pool }

func NewPlayerRepository(pool *pgxpool.Pool) repository.PlayerRepository {
	return &playerRepository{pool: pool}
}

func playerDest(p *model.Player) []any {
	return []any{&p.ID, &p.UserID, &p.TeamID, &p.RegistrationFeeDue, &p.IsFullyRegistered,
		&p.IsActive, &p.JerseyNumber, &p.PointsPerGame, &p.CreatedAt, &p.UpdatedAt}
}

func scanPlayer(row pgx.Row) (model.Player, error) {
	var p model.Player
	err := row.Scan(playerDest(&p)...)
	return p, err
}

func scanProfile(row pgx.Row) (model.PlayerProfile, error) {
	var p model.Player
	var u model.User
	dest := append(playerDest(&p), &u.Email, &u.PhoneNumber, &u.FirstName, &u.LastName)
	if err := row.Scan(dest...); err != nil {
		return model.PlayerProfile{}, err
	}
	return league.Profile(p, u), nil
}

func (r *playerRepository) Create(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO players AS p (id, user_id, team_id, registration_fee_due, is_fully_registered,
		   is_active, jersey_number, points_per_game)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+playerColumns,
		p.ID, p.UserID, p.TeamID, p.RegistrationFeeDue, p.IsFullyRegistered,
		p.IsActive, p.JerseyNumber, p.PointsPerGame,
	)
	out, err := scanPlayer(row)
	if err != nil {
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) Update(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE players AS p SET
		   team_id = $2,
		   registration_fee_due = $3,
		   is_fully_registered = $4,
		   is_active = $5,
		   jersey_number = $6,
		   points_per_game = $7,
		   updated_at = now()
		 WHERE p.id = $1
		 RETURNING `+playerColumns,
		p.ID, p.TeamID, p.RegistrationFeeDue, p.IsFullyRegistered, p.IsActive, p.JerseyNumber, p.PointsPerGame,
	)
	out, err := scanPlayer(row)
	if err != nil {
		return model.Player{}, notFound(err)
	}
	return out, nil
}

func (r *playerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *playerRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+playerColumns+` FROM players p WHERE p.id = $1`, id)
	out, err := scanPlayer(row)
	if err != nil {
		return model.Player{}, notFound(err)
	}
	return out, nil
}

func (r *playerRepository) List(ctx context.Context) ([]model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx, `SELECT `+playerColumns+` FROM players p ORDER BY p.created_at, p.id`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, p)
	}
	return out, repository.MapPgError(rows.Err())
}

func (r *playerRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.PlayerProfile, error) {
	return r.profiles(ctx, profileSelect+` WHERE p.team_id = $1`+profileOrder, teamID)
}

func (r *playerRepository) ListFreeAgents(ctx context.Context) ([]model.PlayerProfile, error) {
	return r.profiles(ctx, profileSelect+` WHERE p.team_id IS NULL`+profileOrder)
}

func (r *playerRepository) ListProfiles(ctx context.Context) ([]model.PlayerProfile, error) {
	return r.profiles(ctx, profileSelect+profileOrder)
}

func (r *playerRepository) GetProfile(ctx context.Context, id uuid.UUID) (model.PlayerProfile, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.PlayerProfile{}, err
	}
	out, err := scanProfile(getQ(ctx, r.pool).QueryRow(ctx, profileSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return model.PlayerProfile{}, notFound(err)
	}
	return out, nil
}

func (r *playerRepository) profiles(ctx context.Context, sql string, args ...any) ([]model.PlayerProfile, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.PlayerProfile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, p)
	}
	return out, repository.MapPgError(rows.Err())
}

var _ repository.PlayerRepository = (*playerRepository)(nil)
