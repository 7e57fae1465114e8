package backend

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/cost-manager/internal/config"
	"github.com/hongminglow/cost-manager/internal/models"
)

func TestOpenSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "costs.db")

	store, err := Open(context.Background(), config.Config{DataBackend: config.BackendSQLite, SQLitePath: path})
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.Ping(context.Background()))
	assert.FileExists(t, path)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), config.Config{DataBackend: "mongo"})
	assert.ErrorContains(t, err, `unknown data backend "mongo"`)
}

func TestOpenDefaultsCostDateInConfiguredZone(t *testing.T) {
	loc := time.FixedZone("UTC+14", 14*60*60)
	store, err := Open(context.Background(), config.Config{
		DataBackend: config.BackendSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "costs.db"),
		Location:    loc,
	})
	require.NoError(t, err)
	defer store.Close()

	created, err := store.CreateCost(context.Background(), models.Cost{
		Description: "undated",
		Category:    models.Food,
		UserID:      "7",
		Sum:         decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.Equal(t, time.Now().In(loc).Format(models.DateLayout), created.Date.Format(models.DateLayout))
}
