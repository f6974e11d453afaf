package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

const teamColumns = `id, name, wins, losses, draws, points_for, points_against, created_at, updated_at`

type teamRepository struct{ pool *pgxpool.Pool }

func NewTeamRepository(pool *pgxpool.Pool) repository.TeamRepository {
	return &teamRepository{pool: pool}
}

func scanTeam(row pgx.Row) (model.Team, error) {
	var t model.Team
	err := row.Scan(&t.ID, &t.Name, &t.Wins, &t.Losses, &t.Draws, &t.PointsFor, &t.PointsAgainst, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// Create inserts a team with zeroed counters unless the caller seeded them.
func (r *teamRepository) Create(ctx context.Context, t model.Team) (model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Team{}, err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO teams (id, name, wins, losses, draws, points_for, points_against)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+teamColumns,
		t.ID, t.Name, t.Wins, t.Losses, t.Draws, t.PointsFor, t.PointsAgainst,
	)
	out, err := scanTeam(row)
	if err != nil {
		return model.Team{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *teamRepository) Update(ctx context.Context, t model.Team) (model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Team{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE teams SET name = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+teamColumns,
		t.ID, t.Name,
	)
	out, err := scanTeam(row)
	if err != nil {
		return model.Team{}, notFound(err)
	}
	return out, nil
}

func (r *teamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *teamRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Team{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id)
	out, err := scanTeam(row)
	if err != nil {
		return model.Team{}, notFound(err)
	}
	return out, nil
}

func (r *teamRepository) List(ctx context.Context) ([]model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY name, id`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, t)
	}
	return out, repository.MapPgError(rows.Err())
}

// ApplyResult increments counters in place so concurrent results never lose an update.
func (r *teamRepository) ApplyResult(ctx context.Context, id uuid.UUID, d model.RecordDelta) (model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Team{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE teams SET
		   wins = wins + $2,
		   losses = losses + $3,
		   draws = draws + $4,
		   points_for = points_for + $5,
		   points_against = points_against + $6,
		   updated_at = now()
		 WHERE id = $1
		 RETURNING `+teamColumns,
		id, d.Wins, d.Losses, d.Draws, d.PointsFor, d.PointsAgainst,
	)
	out, err := scanTeam(row)
	if err != nil {
		return model.Team{}, notFound(err)
	}
	return out, nil
}

var _ repository.TeamRepository = (*teamRepository)(nil)
