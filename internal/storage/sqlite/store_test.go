package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/hongminglow/cost-manager/internal/models"
	"github.com/hongminglow/cost-manager/internal/storage"
)

// StoreTestSuite runs the storage contract against an in-memory database.
type StoreTestSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func (suite *StoreTestSuite) SetupTest() {
	store, err := NewStore(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.store = store
	suite.ctx = context.Background()
}

func (suite *StoreTestSuite) TearDownTest() {
	if suite.store != nil {
		suite.store.Close()
	}
}

func (suite *StoreTestSuite) addUser(id string) models.User {
	user, err := suite.store.CreateUser(suite.ctx, models.User{
		ID:            id,
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Birthday:      time.Date(1990, time.January, 2, 0, 0, 0, 0, time.UTC),
		MaritalStatus: "single",
	})
	require.NoError(suite.T(), err)
	return user
}

func (suite *StoreTestSuite) addCost(userID, category, description, sum string, date time.Time) models.Cost {
	cost, err := suite.store.CreateCost(suite.ctx, models.Cost{
		Description: description,
		Category:    category,
		UserID:      userID,
		Sum:         decimal.RequireFromString(sum),
		Date:        date,
	})
	require.NoError(suite.T(), err)
	return cost
}

func (suite *StoreTestSuite) TestCreateAndFindUser() {
	created := suite.addUser("7")
	assert.Equal(suite.T(), "7", created.ID)

	found, err := suite.store.FindUser(suite.ctx, "7")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), created, found)
	assert.Equal(suite.T(), 2, found.Birthday.Day())
}

func (suite *StoreTestSuite) TestCreateUserDuplicate() {
	suite.addUser("7")

	_, err := suite.store.CreateUser(suite.ctx, models.User{ID: "7", FirstName: "B", LastName: "C", MaritalStatus: "married"})
	assert.ErrorIs(suite.T(), err, storage.ErrAlreadyExists)
}

func (suite *StoreTestSuite) TestFindUserMissing() {
	_, err := suite.store.FindUser(suite.ctx, "404")
	assert.ErrorIs(suite.T(), err, storage.ErrNotFound)
}

func (suite *StoreTestSuite) TestCreateCostRoundTrip() {
	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	created := suite.addCost("7", models.Housing, "rent", "1200.55", date)

	assert.NotZero(suite.T(), created.ID)
	assert.Equal(suite.T(), "rent", created.Description)
	assert.Equal(suite.T(), models.Housing, created.Category)
	assert.Equal(suite.T(), "7", created.UserID)
	assert.Equal(suite.T(), "1200.55", created.Sum.String())
	assert.Equal(suite.T(), date, created.Date)
	assert.False(suite.T(), created.CreatedAt.IsZero())
}

func (suite *StoreTestSuite) TestCreateCostDefaultsDate() {
	created := suite.addCost("7", models.Food, "lunch", "10", time.Time{})

	now := time.Now()
	assert.Equal(suite.T(), now.Format(models.DateLayout), created.Date.Format(models.DateLayout))
}

func (suite *StoreTestSuite) TestCreateCostDefaultDateUsesClockZone() {
	kiritimati := time.FixedZone("UTC+14", 14*60*60)
	store, err := NewStore(":memory:", WithClock(func() time.Time {
		return time.Date(2024, time.March, 1, 20, 0, 0, 0, time.UTC).In(kiritimati)
	}))
	require.NoError(suite.T(), err)
	defer store.Close()

	created, err := store.CreateCost(suite.ctx, models.Cost{
		Description: "undated",
		Category:    models.Food,
		UserID:      "7",
		Sum:         decimal.NewFromInt(1),
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "2024-03-02", created.Date.Format(models.DateLayout))
}

func (suite *StoreTestSuite) TestCreateCostKeepsPrecision() {
	created := suite.addCost("7", models.Food, "coffee", "0.125", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(suite.T(), "0.125", created.Sum.String())
}

func (suite *StoreTestSuite) TestCostsBetweenFiltersAndOrders() {
	march := func(day int) time.Time { return time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC) }

	suite.addCost("7", models.Food, "late", "3", march(20))
	suite.addCost("7", models.Food, "early", "1", march(2))
	suite.addCost("7", models.Sport, "same day", "2", march(2))
	suite.addCost("7", models.Food, "april", "4", time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
	suite.addCost("7", models.Food, "february", "5", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC))
	suite.addCost("8", models.Food, "other user", "6", march(5))

	costs, err := suite.store.CostsBetween(suite.ctx, "7", march(1), time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(suite.T(), err)

	var descriptions []string
	for _, c := range costs {
		descriptions = append(descriptions, c.Description)
	}
	assert.Equal(suite.T(), []string{"early", "same day", "late"}, descriptions)
}

func (suite *StoreTestSuite) TestTotalForUser() {
	total, err := suite.store.TotalForUser(suite.ctx, "7")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), total.IsZero())

	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	suite.addCost("7", models.Food, "a", "0.10", date)
	suite.addCost("7", models.Food, "b", "0.20", date)
	suite.addCost("8", models.Food, "c", "99", date)

	total, err = suite.store.TotalForUser(suite.ctx, "7")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "0.3", total.String())
}

func (suite *StoreTestSuite) TestSnapshotPutIfAbsent() {
	_, err := suite.store.Snapshot(suite.ctx, "7", "2024-03")
	assert.ErrorIs(suite.T(), err, storage.ErrNotFound)

	first := models.Report{Food: models.CategoryCosts{{Sum: decimal.NewFromInt(5), Description: "bread", Day: 3}}}
	stored, err := suite.store.PutSnapshotIfAbsent(suite.ctx, "7", "2024-03", first)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), stored)

	second := models.Report{Sport: models.CategoryCosts{{Sum: decimal.NewFromInt(9), Description: "gym", Day: 4}}}
	stored, err = suite.store.PutSnapshotIfAbsent(suite.ctx, "7", "2024-03", second)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), stored)

	got, err := suite.store.Snapshot(suite.ctx, "7", "2024-03")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), got.Food, 1)
	assert.Equal(suite.T(), "bread", got.Food[0].Description)
	assert.Equal(suite.T(), 3, got.Food[0].Day)
	assert.Empty(suite.T(), got.Sport)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
