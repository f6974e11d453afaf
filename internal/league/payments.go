package league

import (
	"github.com/google/uuid"

	"github.com/fcabl/league-service/internal/model"
)

// SummarizePayments totals a player's ledger per status, rounded to cents.
// History keeps the order it was given in.
func SummarizePayments(player model.PlayerProfile, payments []model.Payment) model.PlayerPaymentSummary {
	out := model.PlayerPaymentSummary{
		PlayerID:           player.ID,
		PlayerName:         player.FullName,
		RegistrationFeeDue: player.RegistrationFeeDue,
		IsFullyRegistered:  player.IsFullyRegistered,
		PaymentHistory:     make([]model.Payment, 0, len(payments)),
	}
	for _, p := range payments {
		if p.PlayerID != player.ID {
			continue
		}
		switch p.Status {
		case model.PaymentCompleted:
			out.TotalPaid += p.Amount
		case model.PaymentPending:
			out.TotalPending += p.Amount
		case model.PaymentFailed:
			out.TotalFailed += p.Amount
		}
		out.PaymentHistory = append(out.PaymentHistory, p)
	}
	out.TotalPaid = roundTo(out.TotalPaid, 2)
	out.TotalPending = roundTo(out.TotalPending, 2)
	out.TotalFailed = roundTo(out.TotalFailed, 2)
	return out
}

// WithPayers attaches the paying player's name and email to each payment.
// A payment whose player is missing from players keeps empty names.
func WithPayers(payments []model.Payment, players []model.PlayerProfile) []model.PaymentWithPlayer {
	byID := make(map[uuid.UUID]model.PlayerProfile, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	out := make([]model.PaymentWithPlayer, 0, len(payments))
	for _, p := range payments {
		payer := byID[p.PlayerID]
		out = append(out, model.PaymentWithPlayer{Payment: p, PlayerName: payer.FullName, PlayerEmail: payer.Email})
	}
	return out
}
