package config

import (
	"time"

	"github.com/fcabl/league-service/internal/logger"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger" validate:"-"`
	Postgres PostgresConfig      `mapstructure:"postgres" validate:"-"`
	Storage  StorageConfig       `mapstructure:"storage"`
	League   LeagueConfig        `mapstructure:"league"`
	CORS     CORSConfig          `mapstructure:"cors"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name" validate:"required"`
	Version         string        `mapstructure:"version"`
	Env             string        `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// PostgresConfig is validated only when the postgres driver is selected.
// Credentials are expected from APP_POSTGRES_* env or .env, never from the YAML.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"min=1,max=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"db" validate:"required"`
	SSLMode           string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"min=1"`
	MinConns          int32  `mapstructure:"min_conns" validate:"min=0,ltefield=MaxConns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
	AutoMigrate       bool   `mapstructure:"auto_migrate"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=memory postgres"`
	// Seed loads the demo season into an empty store on startup.
	Seed bool `mapstructure:"seed"`
}

type LeagueConfig struct {
	StaleThreshold   time.Duration `mapstructure:"stale_threshold" validate:"gt=0"`
	RecentGames      int           `mapstructure:"recent_games" validate:"min=0"`
	UpcomingGames    int           `mapstructure:"upcoming_games" validate:"min=0"`
	AverageTeamScore float64       `mapstructure:"average_team_score" validate:"gt=0"`
	ScoreVariance    int           `mapstructure:"score_variance" validate:"min=0"`
	HalfRatioMin     float64       `mapstructure:"half_ratio_min" validate:"gte=0,lte=1"`
	HalfRatioMax     float64       `mapstructure:"half_ratio_max" validate:"gtefield=HalfRatioMin,lte=1"`
	// SynthSeed fixes the box score source; 0 seeds from the clock.
	SynthSeed uint64 `mapstructure:"synth_seed"`
	// Timezone is the IANA zone used for legacy date/time strings.
	Timezone string `mapstructure:"timezone" validate:"timezone"`
}

// Location resolves Timezone; validation guarantees it loads.
func (l LeagueConfig) Location() *time.Location {
	loc, err := time.LoadLocation(l.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxAge         int      `mapstructure:"max_age" validate:"min=0"`
}
