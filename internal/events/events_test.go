package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/cost-manager/internal/models"
)

func TestCostCreatedJSON(t *testing.T) {
	cost := models.Cost{
		ID:          42,
		Description: "rent",
		Category:    models.Housing,
		UserID:      "7",
		Sum:         decimal.NewFromInt(1200),
		Date:        time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2024, time.March, 1, 10, 30, 0, 0, time.UTC)

	body, err := NewCostCreated(cost, now).ToJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, float64(42), decoded["id"])
	assert.Equal(t, "7", decoded["userId"])
	assert.Equal(t, "Housing", decoded["category"])
	assert.Equal(t, float64(1200), decoded["sum"])
	assert.Equal(t, "2024-03-01", decoded["date"])
	assert.Equal(t, "2024-03-01T10:30:00Z", decoded["publishedAt"])
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.PublishCostCreated(context.Background(), models.Cost{}))
	assert.NoError(t, p.Close())
}
