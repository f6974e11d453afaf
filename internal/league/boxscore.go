package league

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"github.com/fcabl/league-service/internal/model"
)

// SynthOptions tunes the box score synthesizer.
type SynthOptions struct {
	// AverageTeamScore is the nominal team score a player's points-per-game is measured against.
	AverageTeamScore float64
	// Variance is the half-width of the per-player integer perturbation window.
	Variance int
	// HalfRatioMin and HalfRatioMax bound the first half's share of the final score.
	HalfRatioMin float64
	HalfRatioMax float64
}

// DefaultSynthOptions mirrors a typical recreational league game.
func DefaultSynthOptions() SynthOptions {
	return SynthOptions{
		AverageTeamScore: 94,
		Variance:         4,
		HalfRatioMin:     0.45,
		HalfRatioMax:     0.55,
	}
}

// Synthesizer produces plausible box scores for games that have a final score
// but no submitted player lines. Totals are exact; magnitudes are random.
type Synthesizer struct {
	mu   sync.Mutex
	rng  *rand.Rand
	opts SynthOptions
}

// NewSynthesizer builds a synthesizer over src. Pass a fixed-seed source for
// reproducible output.
func NewSynthesizer(src rand.Source, opts SynthOptions) *Synthesizer {
	if opts.AverageTeamScore <= 0 {
		opts.AverageTeamScore = DefaultSynthOptions().AverageTeamScore
	}
	if opts.Variance < 0 {
		opts.Variance = 0
	}
	if opts.HalfRatioMax < opts.HalfRatioMin || opts.HalfRatioMin < 0 || opts.HalfRatioMax > 1 {
		d := DefaultSynthOptions()
		opts.HalfRatioMin, opts.HalfRatioMax = d.HalfRatioMin, d.HalfRatioMax
	}
	return &Synthesizer{rng: rand.New(src), opts: opts}
}

// NewEntropySynthesizer seeds the source from the wall clock.
func NewEntropySynthesizer(opts SynthOptions) *Synthesizer {
	return NewSynthesizer(rand.NewSource(uint64(time.Now().UnixNano())), opts)
}

// Synthesize distributes teamScore across the roster. Every roster member
// appears exactly once and the points sum to teamScore. The result is ordered
// leading scorer first.
func (s *Synthesizer) Synthesize(roster []model.PlayerProfile, teamScore int) ([]model.PlayerGameStats, error) {
	if teamScore < 0 {
		return nil, ErrNegativeScore
	}
	if len(roster) == 0 {
		if teamScore > 0 {
			return nil, fmt.Errorf("%w: %d points unallocated", ErrEmptyRoster, teamScore)
		}
		return []model.PlayerGameStats{}, nil
	}

	sorted := slices.Clone(roster)
	slices.SortStableFunc(sorted, func(a, b model.PlayerProfile) int {
		return cmp.Compare(b.PointsPerGame, a.PointsPerGame)
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.PlayerGameStats, 0, len(sorted))
	remaining := teamScore
	last := len(sorted) - 1
	for i, p := range sorted {
		var points int
		if i == last {
			points = max(0, remaining)
		} else {
			base := int(math.Floor(float64(teamScore) * p.PointsPerGame / s.opts.AverageTeamScore))
			points = clamp(base+s.perturbation(), 0, remaining)
		}
		remaining -= points
		out = append(out, model.PlayerGameStats{
			PlayerID:   p.ID,
			PlayerName: p.FullName,
			Number:     p.Number(),
			Points:     points,
		})
	}

	slices.SortStableFunc(out, func(a, b model.PlayerGameStats) int {
		return cmp.Compare(b.Points, a.Points)
	})
	return out, nil
}

// SynthesizeHalves splits teamScore into halves; the second half is always
// the remainder so the two sum exactly.
func (s *Synthesizer) SynthesizeHalves(teamScore int) (model.Halves, error) {
	if teamScore < 0 {
		return model.Halves{}, ErrNegativeScore
	}
	s.mu.Lock()
	r := s.opts.HalfRatioMin + s.rng.Float64()*(s.opts.HalfRatioMax-s.opts.HalfRatioMin)
	s.mu.Unlock()

	first := clamp(int(math.Round(float64(teamScore)*r)), 0, teamScore)
	return model.Halves{FirstHalf: first, SecondHalf: teamScore - first}, nil
}

// GameDetails synthesizes a full box score for a game carrying a result.
func (s *Synthesizer) GameDetails(g model.Game, homeRoster, awayRoster []model.PlayerProfile) (model.GameDetails, error) {
	if g.Result == nil {
		return model.GameDetails{}, fmt.Errorf("game %s has no recorded result", g.ID)
	}
	homeHalves, err := s.SynthesizeHalves(g.Result.HomeScore)
	if err != nil {
		return model.GameDetails{}, err
	}
	awayHalves, err := s.SynthesizeHalves(g.Result.AwayScore)
	if err != nil {
		return model.GameDetails{}, err
	}
	homeStats, err := s.Synthesize(homeRoster, g.Result.HomeScore)
	if err != nil {
		return model.GameDetails{}, fmt.Errorf("home team %s: %w", g.HomeTeamID, err)
	}
	awayStats, err := s.Synthesize(awayRoster, g.Result.AwayScore)
	if err != nil {
		return model.GameDetails{}, fmt.Errorf("away team %s: %w", g.AwayTeamID, err)
	}
	return model.GameDetails{
		GameID:          g.ID,
		HomeFirstHalf:   homeHalves.FirstHalf,
		HomeSecondHalf:  homeHalves.SecondHalf,
		AwayFirstHalf:   awayHalves.FirstHalf,
		AwaySecondHalf:  awayHalves.SecondHalf,
		HomePlayerStats: homeStats,
		AwayPlayerStats: awayStats,
	}, nil
}

// perturbation draws a uniform integer in [-Variance, +Variance]. Caller holds mu.
func (s *Synthesizer) perturbation() int {
	if s.opts.Variance == 0 {
		return 0
	}
	return s.rng.Intn(2*s.opts.Variance+1) - s.opts.Variance
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
