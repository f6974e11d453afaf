// Package memory is an in-process implementation of the repository contracts.
// It backs local development and the service tests, and mirrors the postgres
// constraints closely enough that both pass the same contract suites.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

type state struct {
	teams    map[uuid.UUID]model.Team
	users    map[uuid.UUID]model.User
	players  map[uuid.UUID]model.Player
	games    map[uuid.UUID]model.Game
	payments map[uuid.UUID]model.Payment
}

func newState() state {
	return state{
		teams:    make(map[uuid.UUID]model.Team),
		users:    make(map[uuid.UUID]model.User),
		players:  make(map[uuid.UUID]model.Player),
		games:    make(map[uuid.UUID]model.Game),
		payments: make(map[uuid.UUID]model.Payment),
	}
}

// clone copies the maps. Values are copied by assignment; pointer fields are
// never mutated in place, so sharing them between snapshots is safe.
func (s state) clone() state {
	return state{
		teams:    maps.Clone(s.teams),
		users:    maps.Clone(s.users),
		players:  maps.Clone(s.players),
		games:    maps.Clone(s.games),
		payments: maps.Clone(s.payments),
	}
}

// Store owns all league state. Writers are serialized through txMu so a
// transaction can snapshot and roll back without losing concurrent writes.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	st   state
	now  func() time.Time
}

// New returns an empty store. A nil clock means time.Now.
func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{st: newState(), now: now}
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// write runs fn under the writer lock, joining an open transaction when ctx carries one.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.st)
}

func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.st)
}

// WithinTx snapshots state, runs fn and restores the snapshot if fn fails.
func (s *Store) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.st.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// Ping always succeeds; the store has no external dependency.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// Reset drops every record.
func (s *Store) Reset() {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	s.st = newState()
	s.mu.Unlock()
}

func (s *Store) Teams() repository.TeamRepository       { return teamRepository{s} }
func (s *Store) Users() repository.UserRepository       { return userRepository{s} }
func (s *Store) Players() repository.PlayerRepository   { return playerRepository{s} }
func (s *Store) Games() repository.GameRepository       { return gameRepository{s} }
func (s *Store) Payments() repository.PaymentRepository { return paymentRepository{s} }

var (
	_ repository.TxManager = (*Store)(nil)
	_ repository.Pinger    = (*Store)(nil)
)
