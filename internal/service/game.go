package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/fcabl/league-service/internal/league"
	"github.com/fcabl/league-service/internal/model"
	"github.com/fcabl/league-service/internal/repository"
)

// ErrResultRecorded guards edits that would leave team counters out of step with results.
var ErrResultRecorded = fmt.Errorf("game already has a result: %w", repository.ErrConflict)

type gameService struct {
	games   repository.GameRepository
	teams   repository.TeamRepository
	players repository.PlayerRepository
	tx      repository.TxManager
	views   *league.ViewBuilder
	loc     *time.Location
	log     zerolog.Logger
}

// NewGameService wires schedule and result use cases. loc is the zone legacy
// date/time strings are rendered in; nil means UTC.
func NewGameService(games repository.GameRepository, teams repository.TeamRepository, players repository.PlayerRepository, tx repository.TxManager, views *league.ViewBuilder, loc *time.Location, logger zerolog.Logger) GameService {
	l := logger.With().Str("module", "service").Str("component", "game").Logger()
	if loc == nil {
		loc = time.UTC
	}
	return &gameService{games: games, teams: teams, players: players, tx: tx, views: views, loc: loc, log: l}
}

func (s *gameService) reader() reader {
	return reader{teams: s.teams, players: s.players, games: s.games}
}

func (s *gameService) CreateGame(ctx context.Context, homeID, awayID uuid.UUID, gameTime time.Time) (model.GameWithDetails, error) {
	var ferrs []FieldError
	ferrs = append(ferrs, requireID("home_team_id", homeID)...)
	ferrs = append(ferrs, requireID("away_team_id", awayID)...)
	if homeID != uuid.Nil && homeID == awayID {
		ferrs = append(ferrs, FieldError{Field: "teams", Message: "home and away must differ"})
	}
	if gameTime.IsZero() {
		ferrs = append(ferrs, FieldError{Field: "game_time", Message: "must be set"})
	}

	// Early exit if basic structure is invalid – do not touch the database.
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("game validation failed (structure)")
		return model.GameWithDetails{}, err
	}

	// Existence checks before attempting persistence.
	var existenceErrs []FieldError
	for _, side := range []struct {
		field string
		id    uuid.UUID
	}{{"home_team_id", homeID}, {"away_team_id", awayID}} {
		fe, err := teamExists(ctx, s.teams, side.field, side.id)
		if err != nil {
			return model.GameWithDetails{}, err
		}
		existenceErrs = append(existenceErrs, fe...)
	}
	if err := newInvalidInput(existenceErrs); err != nil {
		s.log.Debug().Interface("field_errors", existenceErrs).Msg("game validation failed (existence)")
		return model.GameWithDetails{}, err
	}

	created, err := s.games.Create(ctx, model.Game{HomeTeamID: homeID, AwayTeamID: awayID, GameTime: gameTime.UTC()})
	if err != nil {
		s.log.Error().Err(err).Str("home_id", homeID.String()).Str("away_id", awayID.String()).Msg("create game failed")
		return model.GameWithDetails{}, err
	}
	s.log.Info().Str("game_id", created.ID.String()).Time("game_time", created.GameTime).Msg("game scheduled")
	return s.resolve(ctx, created)
}

func (s *gameService) RescheduleGame(ctx context.Context, id uuid.UUID, gameTime time.Time) (model.GameWithDetails, error) {
	ferrs := requireID("id", id)
	if gameTime.IsZero() {
		ferrs = append(ferrs, FieldError{Field: "game_time", Message: "must be set"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.GameWithDetails{}, err
	}

	g, err := s.games.GetByID(ctx, id)
	if err != nil {
		return model.GameWithDetails{}, err
	}
	if g.Result != nil {
		return model.GameWithDetails{}, ErrResultRecorded
	}
	moved, err := s.games.Reschedule(ctx, id, gameTime.UTC())
	if err != nil {
		s.log.Error().Err(err).Str("game_id", id.String()).Msg("reschedule failed")
		return model.GameWithDetails{}, err
	}
	s.log.Info().Str("game_id", id.String()).Time("from", g.GameTime).Time("to", moved.GameTime).Msg("game rescheduled")
	return s.resolve(ctx, moved)
}

// RecordResult validates a submitted result, then stores it and moves both
// teams' counters in one transaction. A game accepts exactly one result.
func (s *gameService) RecordResult(ctx context.Context, id uuid.UUID, sub ResultSubmission) (model.GameWithDetails, error) {
	start := time.Now()

	var ferrs []FieldError
	ferrs = append(ferrs, requireID("id", id)...)
	ferrs = append(ferrs, checkScore("home_score", sub.HomeScore)...)
	ferrs = append(ferrs, checkScore("away_score", sub.AwayScore)...)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("result validation failed")
		return model.GameWithDetails{}, err
	}

	g, err := s.games.GetByID(ctx, id)
	if err != nil {
		return model.GameWithDetails{}, err
	}
	if g.Result != nil {
		return model.GameWithDetails{}, ErrResultRecorded
	}

	res := model.GameResult{HomeScore: sub.HomeScore, AwayScore: sub.AwayScore}
	if sub.Details != nil {
		var home, away []model.PlayerProfile
		eg, ectx := errgroup.WithContext(ctx)
		eg.Go(func() (err error) {
			home, err = s.players.ListByTeam(ectx, g.HomeTeamID)
			return err
		})
		eg.Go(func() (err error) {
			away, err = s.players.ListByTeam(ectx, g.AwayTeamID)
			return err
		})
		if err := eg.Wait(); err != nil {
			return model.GameWithDetails{}, err
		}
		details, fe := checkDetails(g.ID, sub, home, away)
		if err := newInvalidInput(fe); err != nil {
			s.log.Debug().Interface("field_errors", fe).Str("game_id", id.String()).Msg("box score validation failed")
			return model.GameWithDetails{}, err
		}
		res.Details = details
	}

	var recorded model.Game
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		out, err := s.games.RecordResult(ctx, id, res)
		if err != nil {
			return err
		}
		homeDelta, awayDelta := league.ResultDeltas(*out.Result)
		if _, err := s.teams.ApplyResult(ctx, out.HomeTeamID, homeDelta); err != nil {
			return err
		}
		if _, err := s.teams.ApplyResult(ctx, out.AwayTeamID, awayDelta); err != nil {
			return err
		}
		recorded = out
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.log.Warn().Str("game_id", id.String()).Msg("result already recorded")
		} else {
			s.log.Error().Err(err).Str("game_id", id.String()).Msg("record result failed")
		}
		return model.GameWithDetails{}, err
	}

	s.log.Info().
		Dur("took", time.Since(start)).
		Str("game_id", id.String()).
		Str("score", league.FormatScore(sub.HomeScore, sub.AwayScore)).
		Bool("box_score", sub.Details != nil).
		Msg("result recorded")
	return s.resolve(ctx, recorded)
}

// DeleteGame removes a game that has no result.
func (s *gameService) DeleteGame(ctx context.Context, id uuid.UUID) error {
	if err := newInvalidInput(requireID("id", id)); err != nil {
		return err
	}
	g, err := s.games.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if g.Result != nil {
		return ErrResultRecorded
	}
	if err := s.games.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("game_id", id.String()).Msg("game deleted")
	return nil
}

func (s *gameService) GetGame(ctx context.Context, id uuid.UUID) (model.GameWithDetails, error) {
	if err := newInvalidInput(requireID("id", id)); err != nil {
		return model.GameWithDetails{}, err
	}
	g, err := s.games.GetByID(ctx, id)
	if err != nil {
		return model.GameWithDetails{}, err
	}
	return s.resolve(ctx, g)
}

func (s *gameService) ListGames(ctx context.Context) ([]model.GameWithDetails, error) {
	snap, err := s.reader().load(ctx, true, true)
	if err != nil {
		s.log.Error().Err(err).Msg("list games failed")
		return nil, err
	}
	out, err := s.views.Games(snap.games, snap.names(), snap.rosters())
	logSynthesis(s.log, err)
	return out, nil
}

func (s *gameService) ListTeamSchedule(ctx context.Context, teamID uuid.UUID) ([]model.GameWithDetails, error) {
	if err := newInvalidInput(requireID("team_id", teamID)); err != nil {
		return nil, err
	}
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	var (
		snap  snapshot
		games []model.Game
	)
	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		snap, err = s.reader().load(ectx, true, false)
		return err
	})
	eg.Go(func() (err error) {
		games, err = s.games.ListByTeam(ectx, teamID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	out, err := s.views.Games(games, snap.names(), snap.rosters())
	logSynthesis(s.log, err)
	return out, nil
}

func (s *gameService) RecentGames(ctx context.Context) ([]model.GameWithDetails, error) {
	feed, err := s.HomeFeed(ctx)
	return feed.Recent, err
}

func (s *gameService) UpcomingGames(ctx context.Context) ([]model.GameWithDetails, error) {
	feed, err := s.HomeFeed(ctx)
	return feed.Upcoming, err
}

// HomeFeed picks recent and upcoming games from cheap summaries first and
// only builds box scores for the recent ones.
func (s *gameService) HomeFeed(ctx context.Context) (model.HomeFeed, error) {
	snap, err := s.reader().load(ctx, true, true)
	if err != nil {
		s.log.Error().Err(err).Msg("load home feed failed")
		return model.HomeFeed{}, err
	}
	names := snap.names()
	byID := make(map[uuid.UUID]model.Game, len(snap.games))
	summaries := make([]model.GameWithDetails, 0, len(snap.games))
	for _, g := range snap.games {
		byID[g.ID] = g
		summaries = append(summaries, s.views.Summary(g, names))
	}

	recent := s.views.Recent(summaries)
	rosters := snap.rosters()
	var errs []error
	for i, v := range recent {
		full, err := s.views.Game(byID[v.ID], names, rosters)
		if err != nil {
			errs = append(errs, err)
		}
		recent[i] = full
	}
	logSynthesis(s.log, errors.Join(errs...))

	return model.HomeFeed{Recent: recent, Upcoming: s.views.Upcoming(summaries)}, nil
}

func (s *gameService) FlatSchedule(ctx context.Context) ([]model.FlatGame, error) {
	games, err := s.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.FlatGame, 0, len(games))
	for _, g := range games {
		out = append(out, league.FlatGame(g, s.loc))
	}
	return out, nil
}

func (s *gameService) FlatPlayers(ctx context.Context) ([]model.FlatPlayer, error) {
	players, err := s.players.ListProfiles(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list players failed")
		return nil, err
	}
	out := make([]model.FlatPlayer, 0, len(players))
	for _, p := range players {
		out = append(out, league.FlatPlayer(p))
	}
	return out, nil
}

// resolve builds the display view of one game.
func (s *gameService) resolve(ctx context.Context, g model.Game) (model.GameWithDetails, error) {
	snap, err := s.reader().load(ctx, g.Result != nil && g.Result.Details == nil, false)
	if err != nil {
		return model.GameWithDetails{}, err
	}
	out, err := s.views.Game(g, snap.names(), snap.rosters())
	logSynthesis(s.log, err)
	return out, nil
}

func checkScore(field string, v int) []FieldError {
	if v < 0 || v > maxTeamScore {
		return []FieldError{{Field: field, Message: "must be between 0 and " + fmt.Sprint(maxTeamScore)}}
	}
	return nil
}

// checkDetails verifies a submitted box score against the final score and the
// current rosters, and returns it with names and numbers taken from the rosters.
func checkDetails(gameID uuid.UUID, sub ResultSubmission, home, away []model.PlayerProfile) (*model.GameDetails, []FieldError) {
	d := sub.Details
	var ferrs []FieldError
	for _, h := range []struct {
		field string
		v     int
	}{
		{"details.home_first_half", d.HomeFirstHalf},
		{"details.home_second_half", d.HomeSecondHalf},
		{"details.away_first_half", d.AwayFirstHalf},
		{"details.away_second_half", d.AwaySecondHalf},
	} {
		if h.v < 0 {
			ferrs = append(ferrs, FieldError{Field: h.field, Message: "must be >= 0"})
		}
	}
	if d.HomeFirstHalf+d.HomeSecondHalf != sub.HomeScore {
		ferrs = append(ferrs, FieldError{Field: "details.home_halves", Message: "must sum to home_score"})
	}
	if d.AwayFirstHalf+d.AwaySecondHalf != sub.AwayScore {
		ferrs = append(ferrs, FieldError{Field: "details.away_halves", Message: "must sum to away_score"})
	}

	homeLines, fe := checkLines("details.home_player_stats", d.HomePlayerStats, home, sub.HomeScore)
	ferrs = append(ferrs, fe...)
	awayLines, fe := checkLines("details.away_player_stats", d.AwayPlayerStats, away, sub.AwayScore)
	ferrs = append(ferrs, fe...)
	if len(ferrs) > 0 {
		return nil, ferrs
	}

	return &model.GameDetails{
		GameID:          gameID,
		HomeFirstHalf:   d.HomeFirstHalf,
		HomeSecondHalf:  d.HomeSecondHalf,
		AwayFirstHalf:   d.AwayFirstHalf,
		AwaySecondHalf:  d.AwaySecondHalf,
		HomePlayerStats: homeLines,
		AwayPlayerStats: awayLines,
	}, nil
}

func checkLines(field string, lines []model.PlayerGameStats, roster []model.PlayerProfile, score int) ([]model.PlayerGameStats, []FieldError) {
	members := make(map[uuid.UUID]model.PlayerProfile, len(roster))
	for _, p := range roster {
		members[p.ID] = p
	}

	var ferrs []FieldError
	seen := make(map[uuid.UUID]bool, len(lines))
	out := make([]model.PlayerGameStats, 0, len(lines))
	total := 0
	for i, l := range lines {
		at := fmt.Sprintf("%s[%d]", field, i)
		p, ok := members[l.PlayerID]
		switch {
		case !ok:
			ferrs = append(ferrs, FieldError{Field: at + ".player_id", Message: "player is not on this roster"})
			continue
		case seen[l.PlayerID]:
			ferrs = append(ferrs, FieldError{Field: at + ".player_id", Message: "player listed twice"})
			continue
		case l.Points < 0:
			ferrs = append(ferrs, FieldError{Field: at + ".points", Message: "must be >= 0"})
			continue
		}
		seen[l.PlayerID] = true
		total += l.Points
		out = append(out, model.PlayerGameStats{PlayerID: p.ID, PlayerName: p.FullName, Number: p.Number(), Points: l.Points})
	}
	if len(ferrs) == 0 && total != score {
		ferrs = append(ferrs, FieldError{Field: field, Message: fmt.Sprintf("points sum to %d, want %d", total, score)})
	}
	slices.SortStableFunc(out, func(a, b model.PlayerGameStats) int { return cmp.Compare(b.Points, a.Points) })
	return out, ferrs
}
