package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hongminglow/cost-manager/internal/models"
	"github.com/hongminglow/cost-manager/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for users, costs and report
// snapshots.
type Store struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock whose calendar day fills in a missing cost date.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a new Store and runs migrations.
func NewStore(ctx context.Context, databaseURL string, opts ...Option) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			birthday DATE NOT NULL,
			marital_status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS costs (
			id BIGSERIAL PRIMARY KEY,
			description TEXT NOT NULL,
			category TEXT NOT NULL CHECK (category IN ('Food', 'Health', 'Housing', 'Sport', 'Education')),
			user_id TEXT NOT NULL,
			amount NUMERIC NOT NULL,
			date DATE NOT NULL DEFAULT CURRENT_DATE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS costs_user_date_idx ON costs (user_id, date);`,
		`CREATE TABLE IF NOT EXISTS report_snapshots (
			user_id TEXT NOT NULL,
			period TEXT NOT NULL,
			report JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, period)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (id, first_name, last_name, birthday, marital_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, first_name, last_name, birthday, marital_status;
	`
	row := s.pool.QueryRow(ctx, query, user.ID, user.FirstName, user.LastName, user.Birthday, user.MaritalStatus)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindUser fetches a user by external id.
func (s *Store) FindUser(ctx context.Context, id string) (models.User, error) {
	const query = `
	SELECT id, first_name, last_name, birthday, marital_status
	FROM users
	WHERE id = $1;
	`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// CreateCost inserts a cost row. A zero date falls back to the current date.
func (s *Store) CreateCost(ctx context.Context, cost models.Cost) (models.Cost, error) {
	if cost.Date.IsZero() {
		cost.Date = s.now()
	}
	const query = `
		INSERT INTO costs (description, category, user_id, amount, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, description, category, user_id, amount, date, created_at;
	`
	row := s.pool.QueryRow(ctx, query, cost.Description, cost.Category, cost.UserID, cost.Sum, dateOnly(cost.Date))
	return scanCost(row)
}

// CostsBetween returns the user's costs dated in [from, to).
func (s *Store) CostsBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Cost, error) {
	const query = `
	SELECT id, description, category, user_id, amount, date, created_at
	FROM costs
	WHERE user_id = $1 AND date >= $2 AND date < $3
	ORDER BY date, id;
	`
	rows, err := s.pool.Query(ctx, query, userID, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("query costs: %w", err)
	}
	defer rows.Close()

	var costs []models.Cost
	for rows.Next() {
		cost, err := scanCost(rows)
		if err != nil {
			return nil, err
		}
		costs = append(costs, cost)
	}
	return costs, rows.Err()
}

// TotalForUser sums the amount of every cost owned by userID.
func (s *Store) TotalForUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM costs WHERE user_id = $1;`, userID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum costs: %w", err)
	}
	return total, nil
}

// Snapshot loads the memoized report for a user and period.
func (s *Store) Snapshot(ctx context.Context, userID, period string) (models.Report, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT report FROM report_snapshots WHERE user_id = $1 AND period = $2;`, userID, period).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Report{}, storage.ErrNotFound
		}
		return models.Report{}, fmt.Errorf("load snapshot: %w", err)
	}
	var report models.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return models.Report{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return report, nil
}

// PutSnapshotIfAbsent stores report unless the period already has one.
func (s *Store) PutSnapshotIfAbsent(ctx context.Context, userID, period string, report models.Report) (bool, error) {
	raw, err := json.Marshal(report)
	if err != nil {
		return false, fmt.Errorf("encode snapshot: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO report_snapshots (user_id, period, report)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, period) DO NOTHING;
	`, userID, period, raw)
	if err != nil {
		return false, fmt.Errorf("store snapshot: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Birthday, &user.MaritalStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func scanCost(row pgx.Row) (models.Cost, error) {
	var cost models.Cost
	if err := row.Scan(&cost.ID, &cost.Description, &cost.Category, &cost.UserID, &cost.Sum, &cost.Date, &cost.CreatedAt); err != nil {
		return models.Cost{}, fmt.Errorf("scan cost: %w", err)
	}
	return cost, nil
}

// dateOnly strips the clock and zone so DATE columns store the calendar day
// the caller sees.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
