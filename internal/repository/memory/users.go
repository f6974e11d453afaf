package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

type userRepository struct{ s *Store }

func (r userRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = "player"
	}
	err := r.s.write(ctx, func(st *state) error {
		if _, ok := st.users[u.ID]; ok {
			return repository.ErrAlreadyExists
		}
		for _, other := range st.users {
			if other.Email == u.Email {
				return repository.ErrAlreadyExists
			}
		}
		now := r.s.now().UTC()
		u.CreatedAt, u.UpdatedAt = now, now
		st.users[u.ID] = u
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (r userRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var out model.User
	err := r.s.read(ctx, func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = u
		return nil
	})
	return out, err
}

func (r userRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.User], error) {
	all := make([]model.User, 0)
	err := r.s.read(ctx, func(st *state) error {
		for _, u := range st.users {
			all = append(all, u)
		}
		return nil
	})
	if err != nil {
		return repository.PageResult[model.User]{}, err
	}
	slices.SortFunc(all, func(a, b model.User) int {
		return cmp.Or(
			cmp.Compare(a.LastName, b.LastName),
			cmp.Compare(a.FirstName, b.FirstName),
			compareIDs(a.ID, b.ID),
		)
	})
	return repository.Paginate(all, p), nil
}
