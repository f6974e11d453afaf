package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// defaults doubles as the key registry: viper only binds env vars for keys it knows about.
var defaults = map[string]any{
	"app.name":             "league-service",
	"app.version":          "0.1.0",
	"app.env":              "dev",
	"app.port":             8080,
	"app.shutdown_timeout": "10s",

	"logger.level":                "",
	"logger.format":               "",
	"logger.output_target":        "",
	"logger.time_field":           "",
	"logger.time_format":          "",
	"logger.service_name":         "league-service",
	"logger.service_version":      "",
	"logger.env":                  "",
	"logger.with_caller":          false,
	"logger.stacktrace":           false,
	"logger.stacktrace_min_level": "",
	"logger.debug_file":           "",

	"postgres.host":                "localhost",
	"postgres.port":                5432,
	"postgres.user":                "",
	"postgres.password":            "",
	"postgres.db":                  "",
	"postgres.sslmode":             "disable",
	"postgres.max_conns":           10,
	"postgres.min_conns":           1,
	"postgres.max_conn_lifetime":   3600,
	"postgres.max_conn_idle_time":  300,
	"postgres.health_check_period": 30,
	"postgres.auto_migrate":        true,

	"storage.driver": DriverMemory,
	"storage.seed":   false,

	"league.stale_threshold":    "2h",
	"league.recent_games":       3,
	"league.upcoming_games":     5,
	"league.average_team_score": 94.0,
	"league.score_variance":     4,
	"league.half_ratio_min":     0.45,
	"league.half_ratio_max":     0.55,
	"league.synth_seed":         0,
	"league.timezone":           "America/New_York",

	"cors.allowed_origins": []string{"http://localhost:5173"},
	"cors.max_age":         300,
}

// Load reads path (optional) with APP_* env overrides on top. The .env files
// are loaded first; when none are given ".env" in the working dir is tried.
// Existing process env always wins over .env values.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	// comma separated origins from env arrive as a single element
	if len(config.CORS.AllowedOrigins) == 1 && strings.Contains(config.CORS.AllowedOrigins[0], ",") {
		config.CORS.AllowedOrigins = strings.Split(config.CORS.AllowedOrigins[0], ",")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks every section; postgres settings only matter for the postgres driver.
func (c *Config) Validate() error {
	v := validator.New()
	var errs []error
	if err := v.Struct(c); err != nil {
		errs = append(errs, err)
	}
	if c.Storage.Driver == DriverPostgres {
		if err := v.Struct(c.Postgres); err != nil {
			errs = append(errs, fmt.Errorf("postgres: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	return nil
}
