package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

type gameRepository struct{ s *Store }

func cloneGame(g model.Game) model.Game {
	if g.Result == nil {
		return g
	}
	r := *g.Result
	if r.Details != nil {
		d := *r.Details
		d.HomePlayerStats = slices.Clone(d.HomePlayerStats)
		d.AwayPlayerStats = slices.Clone(d.AwayPlayerStats)
		r.Details = &d
	}
	g.Result = &r
	return g
}

func (r gameRepository) Create(ctx context.Context, g model.Game) (model.Game, error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	// results only arrive through RecordResult
	g.Result = nil
	err := r.s.write(ctx, func(st *state) error {
		if _, ok := st.games[g.ID]; ok {
			return repository.ErrAlreadyExists
		}
		if g.HomeTeamID == g.AwayTeamID {
			return repository.ErrConflict
		}
		if _, ok := st.teams[g.HomeTeamID]; !ok {
			return repository.ErrConflict
		}
		if _, ok := st.teams[g.AwayTeamID]; !ok {
			return repository.ErrConflict
		}
		now := r.s.now().UTC()
		g.CreatedAt, g.UpdatedAt = now, now
		st.games[g.ID] = g
		return nil
	})
	if err != nil {
		return model.Game{}, err
	}
	return g, nil
}

func (r gameRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Game, error) {
	var out model.Game
	err := r.s.read(ctx, func(st *state) error {
		g, ok := st.games[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = cloneGame(g)
		return nil
	})
	return out, err
}

func (r gameRepository) List(ctx context.Context) ([]model.Game, error) {
	return r.list(ctx, func(model.Game) bool { return true })
}

func (r gameRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Game, error) {
	return r.list(ctx, func(g model.Game) bool { return g.HomeTeamID == teamID || g.AwayTeamID == teamID })
}

func (r gameRepository) Reschedule(ctx context.Context, id uuid.UUID, gameTime time.Time) (model.Game, error) {
	var out model.Game
	err := r.s.write(ctx, func(st *state) error {
		g, ok := st.games[id]
		if !ok {
			return repository.ErrNotFound
		}
		g.GameTime = gameTime
		g.UpdatedAt = r.s.now().UTC()
		st.games[id] = g
		out = cloneGame(g)
		return nil
	})
	return out, err
}

func (r gameRepository) RecordResult(ctx context.Context, id uuid.UUID, res model.GameResult) (model.Game, error) {
	var out model.Game
	err := r.s.write(ctx, func(st *state) error {
		g, ok := st.games[id]
		if !ok {
			return repository.ErrNotFound
		}
		if g.Result != nil {
			return repository.ErrConflict
		}
		if res.HomeScore < 0 || res.AwayScore < 0 {
			return repository.ErrConflict
		}
		now := r.s.now().UTC()
		if res.RecordedAt.IsZero() {
			res.RecordedAt = now
		}
		g = cloneGame(model.Game{
			ID: g.ID, HomeTeamID: g.HomeTeamID, AwayTeamID: g.AwayTeamID, GameTime: g.GameTime,
			Result: &res, CreatedAt: g.CreatedAt, UpdatedAt: now,
		})
		st.games[id] = g
		out = cloneGame(g)
		return nil
	})
	return out, err
}

func (r gameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.games[id]; !ok {
			return repository.ErrNotFound
		}
		delete(st.games, id)
		return nil
	})
}

func (r gameRepository) list(ctx context.Context, keep func(model.Game) bool) ([]model.Game, error) {
	out := make([]model.Game, 0)
	err := r.s.read(ctx, func(st *state) error {
		for _, g := range st.games {
			if keep(g) {
				out = append(out, cloneGame(g))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b model.Game) int {
		return cmp.Or(a.GameTime.Compare(b.GameTime), compareIDs(a.ID, b.ID))
	})
	return out, nil
}
