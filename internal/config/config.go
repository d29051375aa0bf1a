// Package config loads the server's runtime settings from environment
// variables. Everything is read once, at startup, by Load.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	DefaultPort        = 8080
	DefaultDatabaseURL = "data/talks.db"
	DefaultBcryptCost  = 12
)

// Config holds the application configuration.
type Config struct {
	Port int

	// DatabaseURL is the store connection string. A postgres:// or
	// postgresql:// URL selects PostgreSQL; anything else is a SQLite path.
	DatabaseURL string

	// ResetDB reloads the talk catalog from the embedded dataset at startup.
	// Destructive: every existing talk row is removed first.
	ResetDB bool

	AllowedOrigins []string
	BcryptCost     int
	LogLevel       slog.Level
}

// Load reads the configuration from the environment, applying defaults.
func Load() (*Config, error) {
	return load(os.LookupEnv)
}

// load takes the lookup function as a parameter so tests can feed a map
// instead of mutating the process environment.
func load(lookup func(string) (string, bool)) (*Config, error) {
	getEnv := func(key, fallback string) string {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		return fallback
	}

	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", DefaultDatabaseURL),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("config: invalid PORT %q", getEnv("PORT", ""))
	}
	cfg.Port = port

	cfg.ResetDB = parseFlag(getEnv("RESET_DB", ""))

	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(DefaultBcryptCost)))
	if err != nil || cost < 4 || cost > 31 {
		return nil, fmt.Errorf("config: BCRYPT_COST must be an integer between 4 and 31")
	}
	cfg.BcryptCost = cost

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("config: invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// IsPostgres reports whether DatabaseURL points at a PostgreSQL server.
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") ||
		strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// parseFlag treats any set value as true unless it parses as a false
// boolean, so RESET_DB=1, RESET_DB=yes and RESET_DB=true all enable it.
func parseFlag(v string) bool {
	if v == "" {
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return true
}
