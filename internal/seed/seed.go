// Package seed loads the demo season into an empty store.
// Everything goes through the repository interfaces, so the same data lands
// in memory or in postgres.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fcabl/league-service/internal/league"
	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

// ErrNotEmpty is returned when the store already holds teams.
var ErrNotEmpty = errors.New("store is not empty")

// Repos is the write surface the loader needs.
type Repos struct {
	Tx      repository.TxManager
	Teams   repository.TeamRepository
	Users   repository.UserRepository
	Players repository.PlayerRepository
	Games   repository.GameRepository
}

// Options controls where the season sits in time.
type Options struct {
	// Now anchors the season: completed games fall in the three weeks
	// before it and scheduled games in the four weeks after.
	Now time.Time
	// Location is the zone tip-off wall times are read in.
	Location *time.Location
}

// Summary reports what was written.
type Summary struct {
	Teams     int `json:"teams"`
	Players   int `json:"players"`
	Games     int `json:"games"`
	Completed int `json:"completed"`
}

type seedPlayer struct {
	name   string
	number int
	ppg    float64
	email  string
}

type seedGame struct {
	home, away string
	// day counts from the season's first game day
	day                  int
	late                 bool
	played               bool
	homeScore, awayScore int
}

// regular tip-off slots, in the league's local time
const (
	earlySlot = 19 * time.Hour
	lateSlot  = 20*time.Hour + 30*time.Minute
)

// firstPlayedDay is how many days before Now the season opened.
const firstPlayedDay = 20

var teamOrder = []string{"Thunder", "Lightning", "Storm", "Hawks", "Blaze", "Eagles"}

var rosters = map[string][]seedPlayer{
	"Thunder": {
		{"Marcus Johnson", 23, 18.5, "marcus.j@fcabl.com"},
		{"Tyler Rodriguez", 12, 15.2, "tyler.r@fcabl.com"},
		{"Chris Anderson", 7, 12.8, "chris.a@fcabl.com"},
		{"Brandon Lee", 33, 11.4, "brandon.l@fcabl.com"},
		{"Kevin Martinez", 5, 10.6, "kevin.m@fcabl.com"},
		{"Josh Williams", 21, 9.8, "josh.w@fcabl.com"},
		{"Derek Thompson", 14, 8.3, "derek.t@fcabl.com"},
		{"Ryan Davis", 31, 7.5, "ryan.d@fcabl.com"},
	},
	"Lightning": {
		{"James Mitchell", 10, 19.2, "james.m@fcabl.com"},
		{"Daniel Brooks", 24, 16.1, "daniel.b@fcabl.com"},
		{"Alex Turner", 3, 13.5, "alex.t@fcabl.com"},
		{"Michael Chen", 15, 11.8, "michael.c@fcabl.com"},
		{"Patrick O'Brien", 42, 10.2, "patrick.o@fcabl.com"},
		{"Sam Richards", 8, 9.5, "sam.r@fcabl.com"},
		{"Connor Walsh", 20, 7.9, "connor.w@fcabl.com"},
		{"Eric Foster", 35, 6.8, "eric.f@fcabl.com"},
	},
	"Storm": {
		{"Jake Harrison", 11, 17.3, "jake.h@fcabl.com"},
		{"Noah Campbell", 22, 15.7, "noah.c@fcabl.com"},
		{"Ethan Parker", 4, 13.9, "ethan.p@fcabl.com"},
		{"Luke Sanders", 32, 12.1, "luke.s@fcabl.com"},
		{"Mason Cooper", 9, 10.8, "mason.c@fcabl.com"},
		{"Owen Bennett", 25, 9.2, "owen.b@fcabl.com"},
		{"Aiden Rivera", 13, 8.6, "aiden.r@fcabl.com"},
		{"Caleb Murphy", 30, 7.4, "caleb.m@fcabl.com"},
	},
	"Hawks": {
		{"Justin Wright", 1, 16.8, "justin.w@fcabl.com"},
		{"Nathan Gray", 16, 14.9, "nathan.g@fcabl.com"},
		{"Aaron Kelly", 6, 13.2, "aaron.k@fcabl.com"},
		{"Jordan Hayes", 27, 11.5, "jordan.h@fcabl.com"},
		{"Cameron Price", 2, 10.4, "cameron.p@fcabl.com"},
		{"Dylan Moore", 18, 9.1, "dylan.m@fcabl.com"},
		{"Blake Stewart", 34, 8.2, "blake.s@fcabl.com"},
		{"Austin Ross", 44, 6.9, "austin.r@fcabl.com"},
	},
	"Blaze": {
		{"Trevor Morgan", 19, 15.6, "trevor.m@fcabl.com"},
		{"Andrew Coleman", 26, 14.3, "andrew.c@fcabl.com"},
		{"Zachary Bell", 5, 12.7, "zachary.b@fcabl.com"},
		{"Sean Hughes", 17, 11.9, "sean.h@fcabl.com"},
		{"Kyle Barnes", 28, 10.1, "kyle.b@fcabl.com"},
		{"Brian Fisher", 41, 8.8, "brian.f@fcabl.com"},
		{"Adam Reed", 12, 7.5, "adam.r@fcabl.com"},
		{"Tyler Powell", 36, 6.4, "tyler.p@fcabl.com"},
	},
	"Eagles": {
		{"Ryan Peterson", 14, 14.2, "ryan.p@fcabl.com"},
		{"Matthew Long", 29, 13.1, "matthew.l@fcabl.com"},
		{"Jacob Ellis", 7, 11.8, "jacob.e@fcabl.com"},
		{"Nicholas Ross", 38, 10.6, "nicholas.r@fcabl.com"},
		{"Ian Scott", 3, 9.4, "ian.s@fcabl.com"},
		{"Colin Ward", 21, 8.3, "colin.w@fcabl.com"},
		{"Garrett Carter", 40, 7.1, "garrett.c@fcabl.com"},
		{"Bradley King", 45, 5.8, "bradley.k@fcabl.com"},
	},
}

var freeAgents = []seedPlayer{
	{"John Smith", 0, 0, "john.smith@fcabl.com"},
	{"David Johnson", 0, 0, "david.johnson@fcabl.com"},
	{"Mike Williams", 0, 0, "mike.williams@fcabl.com"},
	{"Chris Brown", 0, 0, "chris.brown@fcabl.com"},
	{"Steve Davis", 0, 0, "steve.davis@fcabl.com"},
	{"Tom Wilson", 0, 0, "tom.wilson@fcabl.com"},
	{"Alex Martinez", 0, 0, "alex.martinez@fcabl.com"},
}

var schedule = []seedGame{
	{"Thunder", "Lightning", 0, false, true, 95, 88},
	{"Storm", "Blaze", 0, true, true, 102, 98},
	{"Hawks", "Eagles", 1, false, true, 87, 92},
	{"Lightning", "Storm", 2, false, true, 91, 85},
	{"Blaze", "Thunder", 2, true, true, 78, 94},
	{"Eagles", "Hawks", 3, false, true, 88, 90},
	{"Thunder", "Storm", 4, false, true, 99, 95},
	{"Hawks", "Lightning", 4, true, true, 84, 96},
	{"Eagles", "Blaze", 5, false, true, 79, 86},
	{"Storm", "Eagles", 6, false, true, 105, 89},
	{"Lightning", "Blaze", 6, true, true, 93, 82},
	{"Thunder", "Hawks", 7, false, true, 97, 89},
	{"Blaze", "Hawks", 8, false, true, 91, 94},
	{"Eagles", "Thunder", 8, true, true, 81, 98},
	{"Storm", "Lightning", 9, false, true, 87, 92},
	{"Hawks", "Storm", 10, false, true, 88, 85},
	{"Thunder", "Blaze", 10, true, true, 101, 87},
	{"Lightning", "Eagles", 11, false, true, 95, 83},
	{"Blaze", "Storm", 12, false, true, 89, 97},
	{"Eagles", "Lightning", 12, true, true, 78, 90},
	{"Hawks", "Thunder", 13, false, true, 82, 93},
	{"Thunder", "Lightning", 14, false, true, 96, 91},
	{"Storm", "Hawks", 14, true, true, 101, 95},
	{"Blaze", "Eagles", 15, false, true, 85, 79},
	{"Lightning", "Thunder", 16, false, true, 88, 102},
	{"Hawks", "Blaze", 16, true, true, 90, 85},
	{"Eagles", "Storm", 17, false, true, 84, 98},
	{"Storm", "Thunder", 18, false, true, 91, 97},
	{"Blaze", "Lightning", 18, true, true, 80, 94},
	{"Eagles", "Hawks", 19, false, true, 77, 86},

	{"Thunder", "Eagles", 25, false, false, 0, 0},
	{"Lightning", "Hawks", 25, true, false, 0, 0},
	{"Storm", "Blaze", 26, false, false, 0, 0},
	{"Hawks", "Thunder", 32, false, false, 0, 0},
	{"Blaze", "Storm", 32, true, false, 0, 0},
	{"Eagles", "Lightning", 33, false, false, 0, 0},
	{"Thunder", "Storm", 39, false, false, 0, 0},
	{"Lightning", "Blaze", 39, true, false, 0, 0},
	{"Hawks", "Eagles", 40, false, false, 0, 0},
	{"Storm", "Lightning", 46, false, false, 0, 0},
	{"Eagles", "Thunder", 46, true, false, 0, 0},
	{"Blaze", "Hawks", 47, false, false, 0, 0},
}

// Load writes the demo season in one transaction. It refuses to touch a
// store that already has teams.
func Load(ctx context.Context, r Repos, opts Options, logger zerolog.Logger) (Summary, error) {
	log := logger.With().Str("module", "seed").Logger()
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	existing, err := r.Teams.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("list teams: %w", err)
	}
	if len(existing) > 0 {
		return Summary{}, ErrNotEmpty
	}

	var sum Summary
	err = r.Tx.WithinTx(ctx, func(ctx context.Context) error {
		teamIDs := make(map[string]uuid.UUID, len(teamOrder))
		for _, name := range teamOrder {
			t, err := r.Teams.Create(ctx, model.Team{Name: name})
			if err != nil {
				return fmt.Errorf("team %s: %w", name, err)
			}
			teamIDs[name] = t.ID
			sum.Teams++

			id := t.ID
			for _, sp := range rosters[name] {
				if err := addPlayer(ctx, r, sp, &id); err != nil {
					return err
				}
				sum.Players++
			}
		}
		for _, sp := range freeAgents {
			if err := addPlayer(ctx, r, sp, nil); err != nil {
				return err
			}
			sum.Players++
		}

		opening := openingDay(opts.Now, opts.Location)
		for _, sg := range schedule {
			g, err := r.Games.Create(ctx, model.Game{
				HomeTeamID: teamIDs[sg.home],
				AwayTeamID: teamIDs[sg.away],
				GameTime:   tipOff(opening, sg.day, sg.late),
			})
			if err != nil {
				return fmt.Errorf("game %s vs %s: %w", sg.home, sg.away, err)
			}
			sum.Games++
			if !sg.played {
				continue
			}
			res := model.GameResult{HomeScore: sg.homeScore, AwayScore: sg.awayScore, RecordedAt: g.GameTime.Add(2 * time.Hour).UTC()}
			if _, err := r.Games.RecordResult(ctx, g.ID, res); err != nil {
				return fmt.Errorf("result %s: %w", g.ID, err)
			}
			home, away := league.ResultDeltas(res)
			if _, err := r.Teams.ApplyResult(ctx, g.HomeTeamID, home); err != nil {
				return err
			}
			if _, err := r.Teams.ApplyResult(ctx, g.AwayTeamID, away); err != nil {
				return err
			}
			sum.Completed++
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	log.Info().
		Int("teams", sum.Teams).
		Int("players", sum.Players).
		Int("games", sum.Games).
		Int("completed", sum.Completed).
		Msg("demo season loaded")
	return sum, nil
}

func addPlayer(ctx context.Context, r Repos, sp seedPlayer, teamID *uuid.UUID) error {
	first, last, _ := strings.Cut(sp.name, " ")
	u, err := r.Users.Create(ctx, model.User{Email: sp.email, FirstName: first, LastName: last})
	if err != nil {
		return fmt.Errorf("user %s: %w", sp.email, err)
	}
	p := model.Player{
		UserID:            u.ID,
		TeamID:            teamID,
		IsActive:          true,
		IsFullyRegistered: teamID != nil,
		PointsPerGame:     sp.ppg,
	}
	if teamID != nil {
		n := sp.number
		p.JerseyNumber = &n
	} else {
		// unpaid registrations wait on the league fee
		fee := 150.0
		p.RegistrationFeeDue = &fee
	}
	if _, err := r.Players.Create(ctx, p); err != nil {
		return fmt.Errorf("player %s: %w", sp.name, err)
	}
	return nil
}

// openingDay is local midnight firstPlayedDay days before now.
func openingDay(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return midnight.AddDate(0, 0, -firstPlayedDay)
}

func tipOff(opening time.Time, day int, late bool) time.Time {
	d := opening.AddDate(0, 0, day)
	slot := earlySlot
	if late {
		slot = lateSlot
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()).Add(slot).UTC()
}
