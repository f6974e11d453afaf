package league_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcabl/league-service/internal/league"
	"github.com/fcabl/league-service/internal/model"
)

func TestSummarizePayments(t *testing.T) {
	fee := 25.0
	player := model.PlayerProfile{
		Player:   model.Player{ID: uuid.New(), RegistrationFeeDue: &fee},
		FullName: "Kevin Durant",
	}
	day := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	ledger := []model.Payment{
		{ID: uuid.New(), PlayerID: player.ID, Amount: 50.10, Status: model.PaymentCompleted, PaymentDate: day.Add(72 * time.Hour)},
		{ID: uuid.New(), PlayerID: player.ID, Amount: 24.95, Status: model.PaymentPending, PaymentDate: day.Add(48 * time.Hour)},
		{ID: uuid.New(), PlayerID: player.ID, Amount: 0.2, Status: model.PaymentCompleted, PaymentDate: day.Add(24 * time.Hour)},
		{ID: uuid.New(), PlayerID: player.ID, Amount: 30, Status: model.PaymentFailed, PaymentDate: day},
		{ID: uuid.New(), PlayerID: uuid.New(), Amount: 999, Status: model.PaymentCompleted, PaymentDate: day},
	}

	got := league.SummarizePayments(player, ledger)

	assert.Equal(t, player.ID, got.PlayerID)
	assert.Equal(t, "Kevin Durant", got.PlayerName)
	assert.Equal(t, 50.3, got.TotalPaid)
	assert.Equal(t, 24.95, got.TotalPending)
	assert.Equal(t, 30.0, got.TotalFailed)
	require.NotNil(t, got.RegistrationFeeDue)
	assert.Equal(t, 25.0, *got.RegistrationFeeDue)
	assert.False(t, got.IsFullyRegistered)
	require.Len(t, got.PaymentHistory, 4, "other players' payments are dropped")
	assert.Equal(t, ledger[0].ID, got.PaymentHistory[0].ID)
	assert.Equal(t, ledger[3].ID, got.PaymentHistory[3].ID)
}

func TestSummarizePaymentsEmpty(t *testing.T) {
	player := model.PlayerProfile{Player: model.Player{ID: uuid.New(), IsFullyRegistered: true}, FullName: "New Signing"}

	got := league.SummarizePayments(player, nil)

	assert.Zero(t, got.TotalPaid)
	assert.Zero(t, got.TotalPending)
	assert.Zero(t, got.TotalFailed)
	assert.True(t, got.IsFullyRegistered)
	assert.NotNil(t, got.PaymentHistory)
	assert.Empty(t, got.PaymentHistory)
}

func TestWithPayers(t *testing.T) {
	known := model.PlayerProfile{Player: model.Player{ID: uuid.New()}, FullName: "Trae Young", Email: "trae@fcabl.test"}
	payments := []model.Payment{
		{ID: uuid.New(), PlayerID: known.ID, Amount: 10},
		{ID: uuid.New(), PlayerID: uuid.New(), Amount: 5},
	}

	got := league.WithPayers(payments, []model.PlayerProfile{known})

	require.Len(t, got, 2)
	assert.Equal(t, payments[0].ID, got[0].ID)
	assert.Equal(t, "Trae Young", got[0].PlayerName)
	assert.Equal(t, "trae@fcabl.test", got[0].PlayerEmail)
	assert.Empty(t, got[1].PlayerName)
	assert.Equal(t, 5.0, got[1].Amount)
}
