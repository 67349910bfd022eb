// Package config loads the settings of one record service from flags,
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rogerio-castellano/record-services/internal/db"
	"github.com/rogerio-castellano/record-services/internal/service"
)

const EnvPrefix = "RECORDSVC"

// Config holds everything a service needs at startup.
type Config struct {
	Service  string
	Port     int
	LogLevel string
	// TrustProxy takes the client address from X-Forwarded-For/X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool
	Database   DatabaseConfig
	RateLimit  RateLimitConfig
	Redis      RedisConfig
}

type DatabaseConfig struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	QueryTimeout    time.Duration
}

// RateLimitConfig controls per-client throttling. RPS <= 0 disables it.
type RateLimitConfig struct {
	RPS        float64
	Burst      int
	MaxStrikes int
	BanTTL     time.Duration
}

// RedisConfig points at the ban store. An empty Addr keeps bans in process.
type RedisConfig struct {
	Addr string
}

func (c DatabaseConfig) Options() db.Options {
	return db.Options{
		Driver:          c.Driver,
		URL:             c.URL,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
	}
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewFlagSet declares the command line flags understood by Load.
func NewFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("service", "", "service to run: users, products, orders or invoices")
	flags.Int("port", 0, "listen port (defaults to the service's fixed port)")
	flags.String("database-url", "", "database connection string")
	flags.String("database-driver", db.DriverPostgres, "database driver: pgx or mysql")
	flags.String("redis-addr", "", "redis address for shared client bans")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.Bool("trust-proxy", false, "trust X-Forwarded-For and X-Real-IP for client addresses")
	return flags
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("trust_proxy", false)
	v.SetDefault("database.driver", db.DriverPostgres)
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 25)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.query_timeout", 3*time.Second)
	v.SetDefault("rate_limit.rps", 10.0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("rate_limit.max_strikes", 5)
	v.SetDefault("rate_limit.ban_ttl", 15*time.Minute)
}

// Load parses args against flags and merges them with the environment. Flags
// win over environment, which wins over defaults. Environment keys use the
// RECORDSVC_ prefix, e.g. RECORDSVC_DATABASE_URL; the unprefixed
// DATABASE_URL, PORT and REDIS_ADDR are also honoured.
func Load(flags *pflag.FlagSet, args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fallbacks := map[string]string{
		"database.url": "DATABASE_URL",
		"port":         "PORT",
		"redis.addr":   "REDIS_ADDR",
	}
	for key, env := range fallbacks {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return Config{}, err
		}
	}

	flagKeys := map[string]string{
		"service":         "service",
		"port":            "port",
		"database-url":    "database.url",
		"database-driver": "database.driver",
		"redis-addr":      "redis.addr",
		"log-level":       "log_level",
		"trust-proxy":     "trust_proxy",
	}
	for flag, key := range flagKeys {
		f := flags.Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		Service:    strings.ToLower(v.GetString("service")),
		Port:       v.GetInt("port"),
		LogLevel:   v.GetString("log_level"),
		TrustProxy: v.GetBool("trust_proxy"),
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			URL:             v.GetString("database.url"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			QueryTimeout:    v.GetDuration("database.query_timeout"),
		},
		RateLimit: RateLimitConfig{
			RPS:        v.GetFloat64("rate_limit.rps"),
			Burst:      v.GetInt("rate_limit.burst"),
			MaxStrikes: v.GetInt("rate_limit.max_strikes"),
			BanTTL:     v.GetDuration("rate_limit.ban_ttl"),
		},
		Redis: RedisConfig{Addr: v.GetString("redis.addr")},
	}

	if cfg.Port == 0 && cfg.Service != "" {
		if port, err := service.DefaultPort(cfg.Service); err == nil {
			cfg.Port = port
		}
	}

	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs []error

	if _, err := service.DefaultPort(c.Service); err != nil {
		errs = append(errs, fmt.Errorf("SERVICE must be one of %s", strings.Join(service.Names, ", ")))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if _, err := db.DialectFor(c.Database.Driver); err != nil {
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER: %w", err))
	}
	if c.Database.QueryTimeout <= 0 {
		errs = append(errs, errors.New("DATABASE_QUERY_TIMEOUT must be positive"))
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive when rate limiting is on"))
	}

	return errors.Join(errs...)
}
