package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATA_BACKEND", "DATABASE_URL", "SQLITE_DB_PATH", "TIMEZONE",
		"LOG_LEVEL", "LOG_FORMAT", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_RPS",
		"RATE_LIMIT_BURST", "SNAPSHOT_CACHE_TTL", "AMQP_URL", "AMQP_EXCHANGE", "TEAM_MEMBERS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/costs")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.HTTPAddress())
	assert.Equal(t, BackendPostgres, cfg.DataBackend)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 30, cfg.RateLimitBurst)
	assert.Equal(t, 30*time.Minute, cfg.SnapshotCacheTTL)
	assert.Equal(t, "costs", cfg.AMQPExchange)
	assert.Equal(t, []Member{{"Yuval", "Itzhak"}, {"Matan", "Zror"}}, cfg.Team)
}

func TestLoadSQLiteWithoutDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_BACKEND", "SQLite")
	t.Setenv("SQLITE_DB_PATH", "/tmp/costs.db")
	t.Setenv("TIMEZONE", "Asia/Jerusalem")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("TEAM_MEMBERS", "Ada Lovelace, Grace Brewster Hopper")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.DataBackend)
	assert.Equal(t, "/tmp/costs.db", cfg.SQLitePath)
	assert.Equal(t, "Asia/Jerusalem", cfg.Location.String())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, []Member{{"Ada", "Lovelace"}, {"Grace", "Brewster Hopper"}}, cfg.Team)
}

func TestLoadReportsAllProblems(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "99999")
	t.Setenv("TIMEZONE", "Mars/Olympus")
	t.Setenv("RATE_LIMIT_RPS", "-1")
	t.Setenv("SNAPSHOT_CACHE_TTL", "soon")
	t.Setenv("AMQP_URL", "http://broker")

	_, err := Load()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "invalid PORT")
	assert.Contains(t, msg, "DATABASE_URL is required")
	assert.Contains(t, msg, "invalid TIMEZONE")
	assert.Contains(t, msg, "invalid RATE_LIMIT_RPS")
	assert.Contains(t, msg, "invalid SNAPSHOT_CACHE_TTL")
	assert.Contains(t, msg, "invalid AMQP_URL")
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_BACKEND", "mongo")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid DATA_BACKEND "mongo"`)
}
