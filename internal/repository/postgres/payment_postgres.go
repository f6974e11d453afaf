package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

const paymentColumns = `id, player_id, stripe_id, amount, status, payment_date, created_at, updated_at`

const paymentOrder = ` ORDER BY payment_date DESC, id`

type paymentRepository struct{ pool *pgxpool.Pool }

func NewPaymentRepository(pool *pgxpool.Pool) repository.PaymentRepository {
	return &paymentRepository{pool: pool}
}

func scanPayment(row pgx.Row) (model.Payment, error) {
	var p model.Payment
	var status string
	if err := row.Scan(&p.ID, &p.PlayerID, &p.StripeID, &p.Amount, &status, &p.PaymentDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return model.Payment{}, err
	}
	p.Status = model.PaymentStatus(status)
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Payment{}, err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = model.PaymentPending
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO payments (id, player_id, stripe_id, amount, status, payment_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+paymentColumns,
		p.ID, p.PlayerID, p.StripeID, p.Amount, string(p.Status), p.PaymentDate,
	)
	out, err := scanPayment(row)
	if err != nil {
		return model.Payment{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Payment, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Payment{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	out, err := scanPayment(row)
	if err != nil {
		return model.Payment{}, notFound(err)
	}
	return out, nil
}

func (r *paymentRepository) List(ctx context.Context) ([]model.Payment, error) {
	return r.query(ctx, `SELECT `+paymentColumns+` FROM payments`+paymentOrder)
}

func (r *paymentRepository) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]model.Payment, error) {
	return r.query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE player_id = $1`+paymentOrder, playerID)
}

func (r *paymentRepository) ListByStatus(ctx context.Context, status model.PaymentStatus) ([]model.Payment, error) {
	return r.query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE status = $1`+paymentOrder, string(status))
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) (model.Payment, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Payment{}, err
	}
	row := getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE payments SET status = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING `+paymentColumns,
		id, string(status),
	)
	out, err := scanPayment(row)
	if err != nil {
		return model.Payment{}, notFound(err)
	}
	return out, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *paymentRepository) query(ctx context.Context, sql string, args ...any) ([]model.Payment, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	rows, err := getQ(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Payment, 0)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, p)
	}
	return out, repository.MapPgError(rows.Err())
}

var _ repository.PaymentRepository = (*paymentRepository)(nil)
