package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

type teamRepository struct{ s *Store }

func (r teamRepository) Create(ctx context.Context, t model.Team) (model.Team, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	err := r.s.write(ctx, func(st *state) error {
		if _, ok := st.teams[t.ID]; ok {
			return repository.ErrAlreadyExists
		}
		if nameTaken(st, t.Name, uuid.Nil) {
			return repository.ErrAlreadyExists
		}
		if t.Wins < 0 || t.Losses < 0 || t.Draws < 0 || t.PointsFor < 0 || t.PointsAgainst < 0 {
			return repository.ErrConflict
		}
		now := r.s.now().UTC()
		t.CreatedAt, t.UpdatedAt = now, now
		st.teams[t.ID] = t
		return nil
	})
	if err != nil {
		return model.Team{}, err
	}
	return t, nil
}

func (r teamRepository) Update(ctx context.Context, t model.Team) (model.Team, error) {
	var out model.Team
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.teams[t.ID]
		if !ok {
			return repository.ErrNotFound
		}
		if nameTaken(st, t.Name, t.ID) {
			return repository.ErrAlreadyExists
		}
		cur.Name = t.Name
		cur.UpdatedAt = r.s.now().UTC()
		st.teams[t.ID] = cur
		out = cur
		return nil
	})
	return out, err
}

// Delete mirrors ON DELETE RESTRICT for games and ON DELETE SET NULL for players.
func (r teamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.teams[id]; !ok {
			return repository.ErrNotFound
		}
		for _, g := range st.games {
			if g.HomeTeamID == id || g.AwayTeamID == id {
				return repository.ErrConflict
			}
		}
		now := r.s.now().UTC()
		for pid, p := range st.players {
			if p.TeamID != nil && *p.TeamID == id {
				p.TeamID = nil
				p.UpdatedAt = now
				st.players[pid] = p
			}
		}
		delete(st.teams, id)
		return nil
	})
}

func (r teamRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Team, error) {
	var out model.Team
	err := r.s.read(ctx, func(st *state) error {
		t, ok := st.teams[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = t
		return nil
	})
	return out, err
}

func (r teamRepository) List(ctx context.Context) ([]model.Team, error) {
	out := make([]model.Team, 0)
	err := r.s.read(ctx, func(st *state) error {
		for _, t := range st.teams {
			out = append(out, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b model.Team) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), compareIDs(a.ID, b.ID))
	})
	return out, nil
}

func (r teamRepository) ApplyResult(ctx context.Context, id uuid.UUID, d model.RecordDelta) (model.Team, error) {
	var out model.Team
	err := r.s.write(ctx, func(st *state) error {
		t, ok := st.teams[id]
		if !ok {
			return repository.ErrNotFound
		}
		t.Wins += d.Wins
		t.Losses += d.Losses
		t.Draws += d.Draws
		t.PointsFor += d.PointsFor
		t.PointsAgainst += d.PointsAgainst
		if t.Wins < 0 || t.Losses < 0 || t.Draws < 0 || t.PointsFor < 0 || t.PointsAgainst < 0 {
			return repository.ErrConflict
		}
		t.UpdatedAt = r.s.now().UTC()
		st.teams[id] = t
		out = t
		return nil
	})
	return out, err
}

func nameTaken(st *state, name string, except uuid.UUID) bool {
	for id, t := range st.teams {
		if id != except && t.Name == name {
			return true
		}
	}
	return false
}

func compareIDs(a, b uuid.UUID) int {
	return slices.Compare(a[:], b[:])
}
