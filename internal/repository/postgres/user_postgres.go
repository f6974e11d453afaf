package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

const userColumns = `id, email, phone_number, first_name, last_name, role, created_at, updated_at`

type userRepository struct{ pool *pgxpool.Pool }

func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.FirstName, &u.LastName, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *userRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.User{}, err
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = "player"
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO users (id, email, phone_number, first_name, last_name, role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		u.ID, u.Email, u.PhoneNumber, u.FirstName, u.LastName, u.Role,
	)
	out, err := scanUser(row)
	if err != nil {
		return model.User{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.User{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	out, err := scanUser(row)
	if err != nil {
		return model.User{}, notFound(err)
	}
	return out, nil
}

func (r *userRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.User], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.User]{}, err
	}
	p = p.Sanitize()
	rows, err := getQ(ctx, r.pool).Query(ctx,
		`SELECT `+userColumns+`, COUNT(*) OVER() AS total
		 FROM users
		 ORDER BY last_name, first_name, id
		 LIMIT $1 OFFSET $2`,
		p.Limit, p.Offset,
	)
	if err != nil {
		return repository.PageResult[model.User]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.User]{Items: make([]model.User, 0, p.Limit)}
	for rows.Next() {
		var u model.User
		var total int
		if err := rows.Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.FirstName, &u.LastName, &u.Role, &u.CreatedAt, &u.UpdatedAt, &total); err != nil {
			return repository.PageResult[model.User]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, u)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.User]{}, repository.MapPgError(err)
	}
	// an offset past the end yields no rows and so no window total
	if len(res.Items) == 0 && p.Offset > 0 {
		if err := getQ(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&res.Total); err != nil {
			return repository.PageResult[model.User]{}, repository.MapPgError(err)
		}
	}
	return res, nil
}

var _ repository.UserRepository = (*userRepository)(nil)
