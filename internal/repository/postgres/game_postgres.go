package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

const gameColumns = `id, home_team_id, away_team_id, game_time, home_score, away_score,
	result_recorded_at, details, created_at, updated_at`

type gameRepository struct{ pool *pgxpool.Pool }

func NewGameRepository(pool *pgxpool.Pool) repository.GameRepository {
	return &gameRepository{pool: pool}
}

// scanGame folds the nullable score columns back into a single optional result.
func scanGame(row pgx.Row) (model.Game, error) {
	var (
		g          model.Game
		home, away *int
		recordedAt *time.Time
		details    []byte
	)
	if err := row.Scan(&g.ID, &g.HomeTeamID, &g.AwayTeamID, &g.GameTime, &home, &away,
		&recordedAt, &details, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return model.Game{}, err
	}
	if home != nil && away != nil {
		g.Result = &model.GameResult{HomeScore: *home, AwayScore: *away}
		if recordedAt != nil {
			g.Result.RecordedAt = *recordedAt
		}
		if len(details) > 0 {
			var d model.GameDetails
			if err := json.Unmarshal(details, &d); err != nil {
				return model.Game{}, fmt.Errorf("decode details for game %s: %w", g.ID, err)
			}
			g.Result.Details = &d
		}
	}
	return g, nil
}

func (r *gameRepository) Create(ctx context.Context, g model.Game) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO games (id, home_team_id, away_team_id, game_time)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+gameColumns,
		g.ID, g.HomeTeamID, g.AwayTeamID, g.GameTime,
	)
	out, err := scanGame(row)
	if err != nil {
		return model.Game{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *gameRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	out, err := scanGame(getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id))
	if err != nil {
		return model.Game{}, notFound(err)
	}
	return out, nil
}

func (r *gameRepository) List(ctx context.Context) ([]model.Game, error) {
	return r.list(ctx, `SELECT `+gameColumns+` FROM games ORDER BY game_time, id`)
}

func (r *gameRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Game, error) {
	return r.list(ctx,
		`SELECT `+gameColumns+` FROM games
		 WHERE home_team_id = $1 OR away_team_id = $1
		 ORDER BY game_time, id`, teamID)
}

func (r *gameRepository) Reschedule(ctx context.Context, id uuid.UUID, gameTime time.Time) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE games SET game_time = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+gameColumns,
		id, gameTime,
	)
	out, err := scanGame(row)
	if err != nil {
		return model.Game{}, notFound(err)
	}
	return out, nil
}

// RecordResult only writes when no score is stored yet; the guard lives in the
// WHERE clause so two racing submissions cannot both succeed.
func (r *gameRepository) RecordResult(ctx context.Context, id uuid.UUID, res model.GameResult) (model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Game{}, err
	}
	var details []byte
	if res.Details != nil {
		var err error
		if details, err = json.Marshal(res.Details); err != nil {
			return model.Game{}, fmt.Errorf("encode details: %w", err)
		}
	}
	if res.RecordedAt.IsZero() {
		res.RecordedAt = time.Now().UTC()
	}

	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE games SET
		   home_score = $2,
		   away_score = $3,
		   result_recorded_at = $4,
		   details = $5,
		   updated_at = now()
		 WHERE id = $1 AND home_score IS NULL
		 RETURNING `+gameColumns,
		id, res.HomeScore, res.AwayScore, res.RecordedAt, details,
	)
	out, err := scanGame(row)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.Game{}, repository.MapPgError(err)
	}

	var exists bool
	if err := exec.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM games WHERE id = $1)`, id).Scan(&exists); err != nil {
		return model.Game{}, repository.MapPgError(err)
	}
	if exists {
		return model.Game{}, repository.ErrConflict
	}
	return model.Game{}, repository.ErrNotFound
}

func (r *gameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gameRepository) list(ctx context.Context, sql string, args ...any) ([]model.Game, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Game, 0)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, g)
	}
	return out, repository.MapPgError(rows.Err())
}

var _ repository.GameRepository = (*gameRepository)(nil)
