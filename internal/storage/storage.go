package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/cost-manager/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures user persistence needed by the services.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUser(ctx context.Context, id string) (models.User, error)
}

// CostStore captures cost persistence. Costs are insert-only.
type CostStore interface {
	CreateCost(ctx context.Context, cost models.Cost) (models.Cost, error)
	// CostsBetween returns the user's costs dated in [from, to), ordered by
	// date then insertion order.
	CostsBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Cost, error)
	// TotalForUser sums every cost the user owns; zero when there are none.
	TotalForUser(ctx context.Context, userID string) (decimal.Decimal, error)
}

// SnapshotStore is the per-user memoized report cache keyed by period.
type SnapshotStore interface {
	// Snapshot returns ErrNotFound when no report is memoized for the period.
	Snapshot(ctx context.Context, userID, period string) (models.Report, error)
	// PutSnapshotIfAbsent stores report unless one already exists for the
	// period. It reports whether this call stored it.
	PutSnapshotIfAbsent(ctx context.Context, userID, period string, report models.Report) (bool, error)
}

// Store is the full persistence surface a backend provides.
type Store interface {
	UserStore
	CostStore
	SnapshotStore
	Ping(ctx context.Context) error
	Close() error
}
