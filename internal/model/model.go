// Package model contains domain entities and derived views used across layers.
// I keep it lean and focused on data shapes; derivation lives in package league.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a league team with its cumulative record.
// Counters change only when a game result is recorded.
type Team struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Wins          int       `json:"wins"`
	Losses        int       `json:"losses"`
	Draws         int       `json:"draws"`
	PointsFor     int       `json:"pointsFor"`
	PointsAgainst int       `json:"pointsAgainst"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TeamWithStats is a Team plus figures derived from its counters.
// It is recomputed on every read and never persisted.
type TeamWithStats struct {
	Team
	WinPercentage     float64 `json:"winPercentage"`
	WinPctDisplay     string  `json:"winPctDisplay"`
	PointDifferential int     `json:"pointDifferential"`
	GamesPlayed       int     `json:"gamesPlayed"`
	AvgPointsFor      float64 `json:"avgPointsFor"`
	AvgPointsAgainst  float64 `json:"avgPointsAgainst"`
}

// RecordDelta is an increment applied to a team's counters after a result.
type RecordDelta struct {
	Wins          int
	Losses        int
	Draws         int
	PointsFor     int
	PointsAgainst int
}

// Standing pairs a 1-based rank with a stats snapshot.
type Standing struct {
	Rank   int           `json:"rank"`
	Team   TeamWithStats `json:"team"`
	Streak string        `json:"streak,omitempty"`
}

// User is the account behind a player.
type User struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Player is a league registration owned by a user.
// A nil TeamID marks a free agent; TeamID is the only source of roster membership.
type Player struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"userId"`
	TeamID             *uuid.UUID `json:"teamId"`
	RegistrationFeeDue *float64   `json:"registrationFeeDue"`
	IsFullyRegistered  bool       `json:"isFullyRegistered"`
	IsActive           bool       `json:"isActive"`
	JerseyNumber       *int       `json:"jerseyNumber"`
	PointsPerGame      float64    `json:"pointsPerGame"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// PlayerProfile augments a Player with the linked user's identity.
type PlayerProfile struct {
	Player
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	FullName    string `json:"fullName"`
}

// Number returns the jersey number or 0 when none is assigned.
func (p PlayerProfile) Number() int {
	if p.JerseyNumber == nil {
		return 0
	}
	return *p.JerseyNumber
}

// GameStatus is the derived lifecycle state of a game.
type GameStatus string

const (
	StatusScheduled GameStatus = "scheduled"
	StatusLive      GameStatus = "live"
	StatusCompleted GameStatus = "completed"
)

// GameResult is a recorded final score. Details is set only when the
// half-time split and player lines were submitted alongside the score.
type GameResult struct {
	HomeScore  int          `json:"homeScore"`
	AwayScore  int          `json:"awayScore"`
	RecordedAt time.Time    `json:"recordedAt"`
	Details    *GameDetails `json:"details,omitempty"`
}

// Game is a scheduled fixture. Result is nil until a score is recorded,
// so home and away scores are always both present or both absent.
type Game struct {
	ID         uuid.UUID   `json:"id"`
	HomeTeamID uuid.UUID   `json:"homeTeamId"`
	AwayTeamID uuid.UUID   `json:"awayTeamId"`
	GameTime   time.Time   `json:"gameTime"`
	Result     *GameResult `json:"result,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// GameWithDetails is a Game resolved for display.
type GameWithDetails struct {
	ID           uuid.UUID    `json:"id"`
	HomeTeamID   uuid.UUID    `json:"homeTeamId"`
	HomeTeamName string       `json:"homeTeamName"`
	AwayTeamID   uuid.UUID    `json:"awayTeamId"`
	AwayTeamName string       `json:"awayTeamName"`
	GameTime     time.Time    `json:"gameTime"`
	HomeScore    *int         `json:"homeScore,omitempty"`
	AwayScore    *int         `json:"awayScore,omitempty"`
	Status       GameStatus   `json:"status"`
	Details      *GameDetails `json:"details,omitempty"`
}

// PlayerGameStats is one line of a box score.
type PlayerGameStats struct {
	PlayerID   uuid.UUID `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Number     int       `json:"number"`
	Points     int       `json:"points"`
}

// GameDetails is the box score of a completed game.
// Half scores sum to the finals and player lines sum to each side's score.
type GameDetails struct {
	GameID          uuid.UUID         `json:"gameId"`
	HomeFirstHalf   int               `json:"homeFirstHalf"`
	HomeSecondHalf  int               `json:"homeSecondHalf"`
	AwayFirstHalf   int               `json:"awayFirstHalf"`
	AwaySecondHalf  int               `json:"awaySecondHalf"`
	HomePlayerStats []PlayerGameStats `json:"homePlayerStats"`
	AwayPlayerStats []PlayerGameStats `json:"awayPlayerStats"`
}

// Halves is a first/second half split of one side's score.
type Halves struct {
	FirstHalf  int `json:"firstHalf"`
	SecondHalf int `json:"secondHalf"`
}

// TeamDetail is the team page aggregate.
type TeamDetail struct {
	TeamWithStats
	Record string            `json:"record"`
	Roster []PlayerProfile   `json:"roster"`
	Games  []GameWithDetails `json:"games"`
}

// HomeFeed is the homepage slice of the schedule.
type HomeFeed struct {
	Recent   []GameWithDetails `json:"recent"`
	Upcoming []GameWithDetails `json:"upcoming"`
}

// FlatGame is the older flat game shape, kept as a read-only view.
type FlatGame struct {
	ID         uuid.UUID    `json:"id"`
	HomeTeam   string       `json:"homeTeam"`
	HomeTeamID uuid.UUID    `json:"homeTeamId"`
	AwayTeam   string       `json:"awayTeam"`
	AwayTeamID uuid.UUID    `json:"awayTeamId"`
	HomeScore  *int         `json:"homeScore,omitempty"`
	AwayScore  *int         `json:"awayScore,omitempty"`
	Date       string       `json:"date"`
	Time       string       `json:"time"`
	Status     GameStatus   `json:"status"`
	Details    *GameDetails `json:"details,omitempty"`
}

// FlatPlayer is the older flat player shape, kept as a read-only view.
type FlatPlayer struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Number        int        `json:"number"`
	PointsPerGame float64    `json:"pointsPerGame"`
	Email         string     `json:"email,omitempty"`
	TeamID        *uuid.UUID `json:"teamId"`
}

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// Payment is one entry in a player's payment ledger. StripeID is the
// processor reference and may be empty for payments taken offline.
type Payment struct {
	ID          uuid.UUID     `json:"id"`
	PlayerID    uuid.UUID     `json:"playerId"`
	StripeID    string        `json:"stripeId"`
	Amount      float64       `json:"amount"`
	Status      PaymentStatus `json:"status"`
	PaymentDate time.Time     `json:"paymentDate"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// PaymentWithPlayer is a Payment with the paying player's name and email.
type PaymentWithPlayer struct {
	Payment
	PlayerName  string `json:"playerName"`
	PlayerEmail string `json:"playerEmail"`
}

// PlayerPaymentSummary totals a player's ledger by status next to the
// registration state the payments settle.
type PlayerPaymentSummary struct {
	PlayerID           uuid.UUID `json:"playerId"`
	PlayerName         string    `json:"playerName"`
	TotalPaid          float64   `json:"totalPaid"`
	TotalPending       float64   `json:"totalPending"`
	TotalFailed        float64   `json:"totalFailed"`
	RegistrationFeeDue *float64  `json:"registrationFeeDue"`
	IsFullyRegistered  bool      `json:"isFullyRegistered"`
	PaymentHistory     []Payment `json:"paymentHistory"`
}
