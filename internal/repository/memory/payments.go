package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

type paymentRepository struct{ s *Store }

// checkPayment mirrors the payments table: the player must exist, the amount
// is non-negative and the status is one of the known values.
func checkPayment(st *state, p model.Payment) error {
	if _, ok := st.players[p.PlayerID]; !ok {
		return repository.ErrConflict
	}
	if p.Amount < 0 || !p.Status.Valid() {
		return repository.ErrConflict
	}
	return nil
}

func (r paymentRepository) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = model.PaymentPending
	}
	err := r.s.write(ctx, func(st *state) error {
		if _, ok := st.payments[p.ID]; ok {
			return repository.ErrAlreadyExists
		}
		if err := checkPayment(st, p); err != nil {
			return err
		}
		now := r.s.now().UTC()
		p.PaymentDate = p.PaymentDate.UTC()
		p.CreatedAt, p.UpdatedAt = now, now
		st.payments[p.ID] = p
		return nil
	})
	if err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (r paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Payment, error) {
	var out model.Payment
	err := r.s.read(ctx, func(st *state) error {
		p, ok := st.payments[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = p
		return nil
	})
	return out, err
}

func (r paymentRepository) List(ctx context.Context) ([]model.Payment, error) {
	return r.filter(ctx, func(model.Payment) bool { return true })
}

func (r paymentRepository) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]model.Payment, error) {
	return r.filter(ctx, func(p model.Payment) bool { return p.PlayerID == playerID })
}

func (r paymentRepository) ListByStatus(ctx context.Context, status model.PaymentStatus) ([]model.Payment, error) {
	return r.filter(ctx, func(p model.Payment) bool { return p.Status == status })
}

func (r paymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) (model.Payment, error) {
	var out model.Payment
	err := r.s.write(ctx, func(st *state) error {
		p, ok := st.payments[id]
		if !ok {
			return repository.ErrNotFound
		}
		p.Status = status
		if err := checkPayment(st, p); err != nil {
			return err
		}
		p.UpdatedAt = r.s.now().UTC()
		st.payments[id] = p
		out = p
		return nil
	})
	return out, err
}

func (r paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.payments[id]; !ok {
			return repository.ErrNotFound
		}
		delete(st.payments, id)
		return nil
	})
}

func (r paymentRepository) filter(ctx context.Context, keep func(model.Payment) bool) ([]model.Payment, error) {
	out := make([]model.Payment, 0)
	err := r.s.read(ctx, func(st *state) error {
		for _, p := range st.payments {
			if keep(p) {
				out = append(out, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// newest first
	slices.SortFunc(out, func(a, b model.Payment) int {
		return cmp.Or(b.PaymentDate.Compare(a.PaymentDate), compareIDs(a.ID, b.ID))
	})
	return out, nil
}
