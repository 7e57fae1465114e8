package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/cost-manager/internal/models"
	"github.com/hongminglow/cost-manager/internal/storage"
)

// TestStoreIntegration exercises the store against a live Postgres database.
func TestStoreIntegration(t *testing.T) {
	loadDotEnv()
	dbURL := os.Getenv("COSTS_POSTGRES_TEST_URL")
	if dbURL == "" {
		t.Skip("set COSTS_POSTGRES_TEST_URL to run this integration test")
	}

	ctx := context.Background()
	store, err := NewStore(ctx, dbURL)
	require.NoError(t, err, "init store")
	defer store.Close()

	userID := fmt.Sprintf("%d", time.Now().UnixNano())
	user, err := store.CreateUser(ctx, models.User{
		ID:            userID,
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Birthday:      time.Date(1990, time.January, 2, 0, 0, 0, 0, time.UTC),
		MaritalStatus: "single",
	})
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)

	_, err = store.CreateUser(ctx, user)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	march := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	cost, err := store.CreateCost(ctx, models.Cost{
		Description: "rent",
		Category:    models.Housing,
		UserID:      userID,
		Sum:         decimal.RequireFromString("1200.5"),
		Date:        march,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, cost.Date.Day())

	costs, err := store.CostsBetween(ctx, userID, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, costs, 1)

	// A missing date takes the calendar day of the store clock.
	kiritimati := time.FixedZone("UTC+14", 14*60*60)
	zoned, err := NewStore(ctx, dbURL, WithClock(func() time.Time {
		return time.Date(2024, time.March, 1, 20, 0, 0, 0, time.UTC).In(kiritimati)
	}))
	require.NoError(t, err)
	defer zoned.Close()
	defaulted, err := zoned.CreateCost(ctx, models.Cost{
		Description: "undated",
		Category:    models.Food,
		UserID:      userID + "-zoned",
		Sum:         decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", defaulted.Date.Format(models.DateLayout))

	precise, err := store.CreateCost(ctx, models.Cost{
		Description: "coffee",
		Category:    models.Food,
		UserID:      userID,
		Sum:         decimal.RequireFromString("0.125"),
		Date:        march,
	})
	require.NoError(t, err)
	assert.Equal(t, "0.125", precise.Sum.String())

	total, err := store.TotalForUser(ctx, userID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1200.625").Equal(total))

	report := models.Report{}
	report.Add(cost)
	stored, err := store.PutSnapshotIfAbsent(ctx, userID, "2024-03", report)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = store.PutSnapshotIfAbsent(ctx, userID, "2024-03", models.Report{})
	require.NoError(t, err)
	assert.False(t, stored)

	got, err := store.Snapshot(ctx, userID, "2024-03")
	require.NoError(t, err)
	require.Len(t, got.Housing, 1)
	assert.Equal(t, "rent", got.Housing[0].Description)
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
