package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/fcabl/league-service/internal/config"
	"github.com/fcabl/league-service/internal/handler"
	"github.com/fcabl/league-service/internal/league"
	"github.com/fcabl/league-service/internal/logger"
	"github.com/fcabl/league-service/internal/repository"
	"github.com/fcabl/league-service/internal/repository/memory"
	"github.com/fcabl/league-service/internal/repository/postgres"
	"github.com/fcabl/league-service/internal/seed"
	"github.com/fcabl/league-service/internal/service"
)

// storage bundles whichever backend the config selected.
type storage struct {
	teams    repository.TeamRepository
	users    repository.UserRepository
	players  repository.PlayerRepository
	games    repository.GameRepository
	payments repository.PaymentRepository
	tx       repository.TxManager
	pinger   repository.Pinger
	close    func()
}

func main() {
	configPath := "config.yaml"
	if p := os.Getenv("APP_CONFIG_FILE"); p != "" {
		configPath = p
	}

	// Load application config
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}
	appLogger.Info().Str("env", cfg.App.Env).Str("driver", cfg.Storage.Driver).Msg("Config loaded successfully")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Storage initialization failed")
	}
	defer store.close()

	loc := cfg.League.Location()
	if cfg.Storage.Seed {
		_, err := seed.Load(ctx, seed.Repos{
			Tx: store.tx, Teams: store.teams, Users: store.users, Players: store.players, Games: store.games,
		}, seed.Options{Now: time.Now(), Location: loc}, appLogger)
		switch {
		case errors.Is(err, seed.ErrNotEmpty):
			appLogger.Info().Msg("store already populated, skipping seed")
		case err != nil:
			appLogger.Fatal().Err(err).Msg("❌ Seeding failed")
		}
	}

	synthOpts := league.SynthOptions{
		AverageTeamScore: cfg.League.AverageTeamScore,
		Variance:         cfg.League.ScoreVariance,
		HalfRatioMin:     cfg.League.HalfRatioMin,
		HalfRatioMax:     cfg.League.HalfRatioMax,
	}
	var synth *league.Synthesizer
	if cfg.League.SynthSeed != 0 {
		synth = league.NewSynthesizer(rand.NewSource(cfg.League.SynthSeed), synthOpts)
	} else {
		synth = league.NewEntropySynthesizer(synthOpts)
	}
	views := league.NewViewBuilder(synth, cfg.League.StaleThreshold, time.Now)
	views.RecentLimit = cfg.League.RecentGames
	views.UpcomingLimit = cfg.League.UpcomingGames

	services := handler.Services{
		Teams:    service.NewTeamService(store.teams, store.players, store.games, views, appLogger),
		Users:    service.NewUserService(store.users, appLogger),
		Players:  service.NewPlayerService(store.players, store.users, store.teams, appLogger),
		Games:    service.NewGameService(store.games, store.teams, store.players, store.tx, views, loc, appLogger),
		Payments: service.NewPaymentService(store.payments, store.players, time.Now, appLogger),
	}

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), handler.RequestLogger(appLogger))
	handler.Register(router, store.pinger, services)

	// The SPA is served from another origin in development.
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           cfg.CORS.MaxAge,
	})

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      c.Handler(router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Str("version", cfg.App.Version).Msg("🚀 Service started")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error().Err(err).Msg("server error")
		}
	case sig := <-shutdown:
		appLogger.Info().Str("signal", sig.String()).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Error().Err(err).Msg("graceful shutdown failed, closing")
			_ = srv.Close()
		}
	}
	appLogger.Info().Msg("server stopped")
}

func openStorage(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) (*storage, error) {
	if cfg.Storage.Driver != config.DriverPostgres {
		s := memory.New(time.Now)
		return &storage{
			teams: s.Teams(), users: s.Users(), players: s.Players(), games: s.Games(),
			payments: s.Payments(), tx: s, pinger: s, close: func() {},
		}, nil
	}

	conn, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		return nil, err
	}
	pool := conn.Pool()
	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, appLogger); err != nil {
			conn.Close()
			return nil, err
		}
	}
	return &storage{
		teams:    postgres.NewTeamRepository(pool),
		users:    postgres.NewUserRepository(pool),
		players:  postgres.NewPlayerRepository(pool),
		games:    postgres.NewGameRepository(pool),
		payments: postgres.NewPaymentRepository(pool),
		tx:       postgres.NewTxManager(pool),
		pinger:   postgres.NewPinger(pool),
		close:    conn.Close,
	}, nil
}
