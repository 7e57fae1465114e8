package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	// Embedded zone database so TIMEZONE works in minimal images.
	_ "time/tzdata"
)

// Storage backends selectable with DATA_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Member is one entry of the team list served by /api/about.
type Member struct {
	FirstName string
	LastName  string
}

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port             string
	DataBackend      string
	DatabaseURL      string
	SQLitePath       string
	Location         *time.Location
	LogLevel         string
	LogFormat        string
	CORSOrigins      []string
	RateLimitRPS     float64
	RateLimitBurst   int
	SnapshotCacheTTL time.Duration
	AMQPURL          string
	AMQPExchange     string
	Team             []Member
}

// Load reads configuration from the environment and validates it. All
// problems are reported together.
func Load() (Config, error) {
	var problems []string

	cfg := Config{
		Port:         fallback(os.Getenv("PORT"), "3000"),
		DataBackend:  strings.ToLower(fallback(os.Getenv("DATA_BACKEND"), BackendPostgres)),
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLitePath:   fallback(os.Getenv("SQLITE_DB_PATH"), "./data/costs.db"),
		LogLevel:     fallback(os.Getenv("LOG_LEVEL"), "info"),
		LogFormat:    strings.ToLower(fallback(os.Getenv("LOG_FORMAT"), "json")),
		CORSOrigins:  parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		AMQPURL:      strings.TrimSpace(os.Getenv("AMQP_URL")),
		AMQPExchange: fallback(os.Getenv("AMQP_EXCHANGE"), "costs"),
		Team:         parseTeam(fallback(os.Getenv("TEAM_MEMBERS"), "Yuval Itzhak,Matan Zror")),
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid PORT %q: must be a number between 1 and 65535", cfg.Port))
	}

	switch cfg.DataBackend {
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required for the postgres backend")
		}
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			problems = append(problems, "SQLITE_DB_PATH cannot be empty for the sqlite backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid DATA_BACKEND %q: must be %s or %s", cfg.DataBackend, BackendPostgres, BackendSQLite))
	}

	tz := fallback(os.Getenv("TIMEZONE"), "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		problems = append(problems, fmt.Sprintf("invalid TIMEZONE %q: %v", tz, err))
	}
	cfg.Location = loc

	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		problems = append(problems, fmt.Sprintf("invalid LOG_FORMAT %q: must be json or text", cfg.LogFormat))
	}

	rps := fallback(os.Getenv("RATE_LIMIT_RPS"), "10")
	if cfg.RateLimitRPS, err = strconv.ParseFloat(rps, 64); err != nil || cfg.RateLimitRPS <= 0 {
		problems = append(problems, fmt.Sprintf("invalid RATE_LIMIT_RPS %q: must be a positive number", rps))
	}
	burst := fallback(os.Getenv("RATE_LIMIT_BURST"), "30")
	if cfg.RateLimitBurst, err = strconv.Atoi(burst); err != nil || cfg.RateLimitBurst < 1 {
		problems = append(problems, fmt.Sprintf("invalid RATE_LIMIT_BURST %q: must be a positive integer", burst))
	}

	ttl := fallback(os.Getenv("SNAPSHOT_CACHE_TTL"), "30m")
	if cfg.SnapshotCacheTTL, err = time.ParseDuration(ttl); err != nil || cfg.SnapshotCacheTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid SNAPSHOT_CACHE_TTL %q: must be a positive duration", ttl))
	}

	if cfg.AMQPURL != "" && !strings.HasPrefix(cfg.AMQPURL, "amqp://") && !strings.HasPrefix(cfg.AMQPURL, "amqps://") {
		problems = append(problems, "invalid AMQP_URL: scheme must be amqp or amqps")
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// parseTeam reads "First Last" names. Everything after the first space is
// the last name.
func parseTeam(input string) []Member {
	var team []Member
	for _, name := range strings.Split(input, ",") {
		fields := strings.Fields(name)
		if len(fields) == 0 {
			continue
		}
		team = append(team, Member{
			FirstName: fields[0],
			LastName:  strings.Join(fields[1:], " "),
		})
	}
	return team
}
