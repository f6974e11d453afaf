package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fcabl/league-service/internal/league"
	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

const maxStripeIDLen = 255

type paymentService struct {
	payments repository.PaymentRepository
	players  repository.PlayerRepository
	now      func() time.Time
	log      zerolog.Logger
}

// NewPaymentService wires the ledger. A nil clock means time.Now.
func NewPaymentService(payments repository.PaymentRepository, players repository.PlayerRepository, now func() time.Time, logger zerolog.Logger) PaymentService {
	if now == nil {
		now = time.Now
	}
	l := logger.With().Str("module", "service").Str("component", "payment").Logger()
	return &paymentService{payments: payments, players: players, now: now, log: l}
}

func (s *paymentService) CreatePayment(ctx context.Context, in NewPayment) (model.Payment, error) {
	if in.Status == "" {
		in.Status = model.PaymentPending
	}
	if in.PaymentDate.IsZero() {
		in.PaymentDate = s.now()
	}

	var ferrs []FieldError
	ferrs = append(ferrs, requireID("player_id", in.PlayerID)...)
	ferrs = append(ferrs, checkNonNegative("amount", &in.Amount)...)
	ferrs = append(ferrs, checkPaymentStatus(in.Status)...)
	if len(in.StripeID) > maxStripeIDLen {
		ferrs = append(ferrs, FieldError{Field: "stripe_id", Message: "must be at most 255 characters"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("payment validation failed")
		return model.Payment{}, err
	}

	_, err := s.players.GetByID(ctx, in.PlayerID)
	fe, err := existence("player_id", "player", err)
	if err != nil {
		return model.Payment{}, err
	}
	if err := newInvalidInput(fe); err != nil {
		return model.Payment{}, err
	}

	created, err := s.payments.Create(ctx, model.Payment{
		PlayerID:    in.PlayerID,
		StripeID:    in.StripeID,
		Amount:      in.Amount,
		Status:      in.Status,
		PaymentDate: in.PaymentDate.UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("player_id", in.PlayerID.String()).Msg("create payment failed")
		return model.Payment{}, err
	}
	s.log.Info().
		Str("payment_id", created.ID.String()).
		Str("player_id", created.PlayerID.String()).
		Float64("amount", created.Amount).
		Str("status", string(created.Status)).
		Msg("payment recorded")
	return created, nil
}

func (s *paymentService) GetPayment(ctx context.Context, id uuid.UUID) (model.Payment, error) {
	if err := newInvalidInput(requireID("id", id)); err != nil {
		return model.Payment{}, err
	}
	return s.payments.GetByID(ctx, id)
}

func (s *paymentService) GetPaymentWithPlayer(ctx context.Context, id uuid.UUID) (model.PaymentWithPlayer, error) {
	p, err := s.GetPayment(ctx, id)
	if err != nil {
		return model.PaymentWithPlayer{}, err
	}
	payer, err := s.players.GetProfile(ctx, p.PlayerID)
	if err != nil {
		return model.PaymentWithPlayer{}, err
	}
	return league.WithPayers([]model.Payment{p}, []model.PlayerProfile{payer})[0], nil
}

func (s *paymentService) ListPayments(ctx context.Context) ([]model.Payment, error) {
	out, err := s.payments.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list payments failed")
		return nil, err
	}
	return out, nil
}

func (s *paymentService) ListPaymentsWithPlayers(ctx context.Context) ([]model.PaymentWithPlayer, error) {
	payments, err := s.ListPayments(ctx)
	if err != nil {
		return nil, err
	}
	players, err := s.players.ListProfiles(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("load payers failed")
		return nil, err
	}
	return league.WithPayers(payments, players), nil
}

// ListPaymentsByPlayer returns one player's ledger. An unknown player is
// ErrNotFound rather than an empty list.
func (s *paymentService) ListPaymentsByPlayer(ctx context.Context, playerID uuid.UUID) ([]model.Payment, error) {
	if err := newInvalidInput(requireID("player_id", playerID)); err != nil {
		return nil, err
	}
	if _, err := s.players.GetByID(ctx, playerID); err != nil {
		return nil, err
	}
	out, err := s.payments.ListByPlayer(ctx, playerID)
	if err != nil {
		s.log.Error().Err(err).Str("player_id", playerID.String()).Msg("list player payments failed")
		return nil, err
	}
	return out, nil
}

func (s *paymentService) ListPaymentsByStatus(ctx context.Context, status model.PaymentStatus) ([]model.Payment, error) {
	if err := newInvalidInput(checkPaymentStatus(status)); err != nil {
		return nil, err
	}
	out, err := s.payments.ListByStatus(ctx, status)
	if err != nil {
		s.log.Error().Err(err).Str("status", string(status)).Msg("list payments by status failed")
		return nil, err
	}
	return out, nil
}

func (s *paymentService) PlayerPaymentSummary(ctx context.Context, playerID uuid.UUID) (model.PlayerPaymentSummary, error) {
	if err := newInvalidInput(requireID("player_id", playerID)); err != nil {
		return model.PlayerPaymentSummary{}, err
	}
	player, err := s.players.GetProfile(ctx, playerID)
	if err != nil {
		return model.PlayerPaymentSummary{}, err
	}
	payments, err := s.payments.ListByPlayer(ctx, playerID)
	if err != nil {
		s.log.Error().Err(err).Str("player_id", playerID.String()).Msg("load payment history failed")
		return model.PlayerPaymentSummary{}, err
	}
	return league.SummarizePayments(player, payments), nil
}

func (s *paymentService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatus) (model.Payment, error) {
	var ferrs []FieldError
	ferrs = append(ferrs, requireID("id", id)...)
	ferrs = append(ferrs, checkPaymentStatus(status)...)
	if err := newInvalidInput(ferrs); err != nil {
		return model.Payment{}, err
	}
	out, err := s.payments.UpdateStatus(ctx, id, status)
	if err != nil {
		return model.Payment{}, err
	}
	s.log.Info().Str("payment_id", id.String()).Str("status", string(status)).Msg("payment status changed")
	return out, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	if err := newInvalidInput(requireID("id", id)); err != nil {
		return err
	}
	if err := s.payments.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("payment_id", id.String()).Msg("payment deleted")
	return nil
}
