package league

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/fcabl/league-service/internal/model"
)

const (
	DefaultRecentLimit   = 3
	DefaultUpcomingLimit = 5
)

// TeamNames maps team IDs to display names.
type TeamNames map[uuid.UUID]string

// Rosters maps team IDs to their current players.
type Rosters map[uuid.UUID][]model.PlayerProfile

// NamesOf indexes team names by ID.
func NamesOf(teams []model.Team) TeamNames {
	out := make(TeamNames, len(teams))
	for _, t := range teams {
		out[t.ID] = t.Name
	}
	return out
}

// RostersByTeam groups players by their team assignment. Free agents are skipped.
func RostersByTeam(players []model.PlayerProfile) Rosters {
	out := make(Rosters)
	for _, p := range players {
		if p.TeamID == nil {
			continue
		}
		out[*p.TeamID] = append(out[*p.TeamID], p)
	}
	return out
}

// ViewBuilder assembles composite views at a fixed notion of "now".
type ViewBuilder struct {
	StaleAfter    time.Duration
	Now           func() time.Time
	Synth         *Synthesizer
	RecentLimit   int
	UpcomingLimit int
}

// NewViewBuilder wires a builder with the default limits.
func NewViewBuilder(synth *Synthesizer, staleAfter time.Duration, now func() time.Time) *ViewBuilder {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleThreshold
	}
	if now == nil {
		now = time.Now
	}
	return &ViewBuilder{
		StaleAfter:    staleAfter,
		Now:           now,
		Synth:         synth,
		RecentLimit:   DefaultRecentLimit,
		UpcomingLimit: DefaultUpcomingLimit,
	}
}

// Summary resolves names, scores and status without a box score.
func (b *ViewBuilder) Summary(g model.Game, names TeamNames) model.GameWithDetails {
	out := model.GameWithDetails{
		ID:           g.ID,
		HomeTeamID:   g.HomeTeamID,
		HomeTeamName: names[g.HomeTeamID],
		AwayTeamID:   g.AwayTeamID,
		AwayTeamName: names[g.AwayTeamID],
		GameTime:     g.GameTime,
		Status:       ResolveStatus(g.GameTime, g.Result != nil, b.Now(), b.StaleAfter),
	}
	if g.Result != nil {
		home, away := g.Result.HomeScore, g.Result.AwayScore
		out.HomeScore, out.AwayScore = &home, &away
	}
	return out
}

// Game resolves a game and, when a result is recorded, attaches its box score.
// Submitted details are used as-is; otherwise they are synthesized from the rosters.
// When synthesis fails the summary is still returned alongside the error.
func (b *ViewBuilder) Game(g model.Game, names TeamNames, rosters Rosters) (model.GameWithDetails, error) {
	out := b.Summary(g, names)
	if g.Result == nil {
		return out, nil
	}
	if g.Result.Details != nil {
		d := *g.Result.Details
		d.GameID = g.ID
		out.Details = &d
		return out, nil
	}
	if b.Synth == nil {
		return out, nil
	}
	d, err := b.Synth.GameDetails(g, rosters[g.HomeTeamID], rosters[g.AwayTeamID])
	if err != nil {
		return out, fmt.Errorf("game %s: %w", g.ID, err)
	}
	out.Details = &d
	return out, nil
}

// Games resolves every game in chronological order. Synthesis failures are
// joined into the returned error; the affected games carry no box score.
func (b *ViewBuilder) Games(games []model.Game, names TeamNames, rosters Rosters) ([]model.GameWithDetails, error) {
	out := make([]model.GameWithDetails, 0, len(games))
	var errs []error
	for _, g := range SortByTime(games) {
		v, err := b.Game(g, names, rosters)
		if err != nil {
			errs = append(errs, err)
		}
		out = append(out, v)
	}
	return out, errors.Join(errs...)
}

// TeamDetail builds the team page: stats, roster and every game the team
// plays in, oldest first. The error reports box scores that could not be
// synthesized; the detail is complete otherwise.
func (b *ViewBuilder) TeamDetail(team model.Team, players []model.PlayerProfile, games []model.Game, names TeamNames) (model.TeamDetail, error) {
	roster := make([]model.PlayerProfile, 0)
	for _, p := range players {
		if p.TeamID != nil && *p.TeamID == team.ID {
			roster = append(roster, p)
		}
	}
	slices.SortStableFunc(roster, func(a, c model.PlayerProfile) int {
		return cmp.Compare(a.Number(), c.Number())
	})

	own := make([]model.Game, 0)
	for _, g := range games {
		if g.HomeTeamID == team.ID || g.AwayTeamID == team.ID {
			own = append(own, g)
		}
	}
	resolved, err := b.Games(own, names, RostersByTeam(players))

	return model.TeamDetail{
		TeamWithStats: ComputeStats(team),
		Record:        FormatRecord(team.Wins, team.Losses, team.Draws),
		Roster:        roster,
		Games:         resolved,
	}, err
}

// Recent returns the configured number of most recent completed games.
func (b *ViewBuilder) Recent(games []model.GameWithDetails) []model.GameWithDetails {
	return RecentGames(games, b.RecentLimit)
}

// Upcoming returns the configured number of next scheduled games.
func (b *ViewBuilder) Upcoming(games []model.GameWithDetails) []model.GameWithDetails {
	return UpcomingGames(games, b.UpcomingLimit)
}

// RecentGames returns the last n completed games in chronological order.
func RecentGames(games []model.GameWithDetails, n int) []model.GameWithDetails {
	done := filterByStatus(games, model.StatusCompleted)
	if n < 0 {
		n = 0
	}
	if len(done) > n {
		done = done[len(done)-n:]
	}
	return done
}

// UpcomingGames returns the first m scheduled games in chronological order.
func UpcomingGames(games []model.GameWithDetails, m int) []model.GameWithDetails {
	next := filterByStatus(games, model.StatusScheduled)
	if m < 0 {
		m = 0
	}
	if len(next) > m {
		next = next[:m]
	}
	return next
}

// SortByTime returns a copy of games ordered by tip-off, stable on equal times.
func SortByTime(games []model.Game) []model.Game {
	out := slices.Clone(games)
	slices.SortStableFunc(out, func(a, b model.Game) int {
		return a.GameTime.Compare(b.GameTime)
	})
	return out
}

func filterByStatus(games []model.GameWithDetails, status model.GameStatus) []model.GameWithDetails {
	out := make([]model.GameWithDetails, 0)
	for _, g := range games {
		if g.Status == status {
			out = append(out, g)
		}
	}
	slices.SortStableFunc(out, func(a, b model.GameWithDetails) int {
		return a.GameTime.Compare(b.GameTime)
	})
	return out
}
