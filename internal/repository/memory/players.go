package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/fcabl/league-service/internal/league"
	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

type playerRepository struct{ s *Store }

func clonePlayer(p model.Player) model.Player {
	if p.TeamID != nil {
		id := *p.TeamID
		p.TeamID = &id
	}
	if p.RegistrationFeeDue != nil {
		fee := *p.RegistrationFeeDue
		p.RegistrationFeeDue = &fee
	}
	if p.JerseyNumber != nil {
		n := *p.JerseyNumber
		p.JerseyNumber = &n
	}
	return p
}

// checkPlayer enforces the same foreign keys and checks as the players table.
func checkPlayer(st *state, p model.Player) error {
	if _, ok := st.users[p.UserID]; !ok {
		return repository.ErrConflict
	}
	if p.TeamID != nil {
		if _, ok := st.teams[*p.TeamID]; !ok {
			return repository.ErrConflict
		}
	}
	if p.JerseyNumber != nil && (*p.JerseyNumber < 0 || *p.JerseyNumber > 99) {
		return repository.ErrConflict
	}
	if p.PointsPerGame < 0 || (p.RegistrationFeeDue != nil && *p.RegistrationFeeDue < 0) {
		return repository.ErrConflict
	}
	return nil
}

func (r playerRepository) Create(ctx context.Context, p model.Player) (model.Player, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p = clonePlayer(p)
	err := r.s.write(ctx, func(st *state) error {
		if _, ok := st.players[p.ID]; ok {
			return repository.ErrAlreadyExists
		}
		if err := checkPlayer(st, p); err != nil {
			return err
		}
		now := r.s.now().UTC()
		p.CreatedAt, p.UpdatedAt = now, now
		st.players[p.ID] = p
		return nil
	})
	if err != nil {
		return model.Player{}, err
	}
	return clonePlayer(p), nil
}

func (r playerRepository) Update(ctx context.Context, p model.Player) (model.Player, error) {
	p = clonePlayer(p)
	var out model.Player
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.players[p.ID]
		if !ok {
			return repository.ErrNotFound
		}
		p.UserID = cur.UserID
		if err := checkPlayer(st, p); err != nil {
			return err
		}
		p.CreatedAt = cur.CreatedAt
		p.UpdatedAt = r.s.now().UTC()
		st.players[p.ID] = p
		out = clonePlayer(p)
		return nil
	})
	return out, err
}

func (r playerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.players[id]; !ok {
			return repository.ErrNotFound
		}
		delete(st.players, id)
		for pid, pay := range st.payments {
			if pay.PlayerID == id {
				delete(st.payments, pid)
			}
		}
		return nil
	})
}

func (r playerRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Player, error) {
	var out model.Player
	err := r.s.read(ctx, func(st *state) error {
		p, ok := st.players[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = clonePlayer(p)
		return nil
	})
	return out, err
}

func (r playerRepository) List(ctx context.Context) ([]model.Player, error) {
	out := make([]model.Player, 0)
	err := r.s.read(ctx, func(st *state) error {
		for _, p := range st.players {
			out = append(out, clonePlayer(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b model.Player) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), compareIDs(a.ID, b.ID))
	})
	return out, nil
}

func (r playerRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.PlayerProfile, error) {
	return r.profiles(ctx, func(p model.Player) bool { return p.TeamID != nil && *p.TeamID == teamID })
}

func (r playerRepository) ListFreeAgents(ctx context.Context) ([]model.PlayerProfile, error) {
	return r.profiles(ctx, func(p model.Player) bool { return p.TeamID == nil })
}

func (r playerRepository) ListProfiles(ctx context.Context) ([]model.PlayerProfile, error) {
	return r.profiles(ctx, func(model.Player) bool { return true })
}

func (r playerRepository) GetProfile(ctx context.Context, id uuid.UUID) (model.PlayerProfile, error) {
	var out model.PlayerProfile
	err := r.s.read(ctx, func(st *state) error {
		p, ok := st.players[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = league.Profile(clonePlayer(p), st.users[p.UserID])
		return nil
	})
	return out, err
}

func (r playerRepository) profiles(ctx context.Context, keep func(model.Player) bool) ([]model.PlayerProfile, error) {
	out := make([]model.PlayerProfile, 0)
	err := r.s.read(ctx, func(st *state) error {
		for _, p := range st.players {
			if keep(p) {
				out = append(out, league.Profile(clonePlayer(p), st.users[p.UserID]))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, compareProfiles)
	return out, nil
}

// compareProfiles orders by jersey number with unnumbered players last, then by name.
func compareProfiles(a, b model.PlayerProfile) int {
	switch {
	case a.JerseyNumber == nil && b.JerseyNumber != nil:
		return 1
	case a.JerseyNumber != nil && b.JerseyNumber == nil:
		return -1
	case a.JerseyNumber != nil && b.JerseyNumber != nil:
		if c := cmp.Compare(*a.JerseyNumber, *b.JerseyNumber); c != 0 {
			return c
		}
	}
	return cmp.Or(
		cmp.Compare(a.LastName, b.LastName),
		cmp.Compare(a.FirstName, b.FirstName),
		compareIDs(a.ID, b.ID),
	)
}
