package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hongminglow/cost-manager/internal/models"
	"github.com/hongminglow/cost-manager/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store provides SQLite-backed persistence. Dates and amounts are stored as
// text so calendar days and decimal amounts round-trip exactly.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock whose calendar day fills in a missing cost date.
// The returned time should be in the service time zone.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore opens the database at path (":memory:" for a private in-memory
// database) and runs migrations.
func NewStore(path string, opts ...Option) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateUser inserts a new user.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, first_name, last_name, birthday, marital_status, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.FirstName, user.LastName, formatDate(user.Birthday), user.MaritalStatus, formatTimestamp(time.Now()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return s.FindUser(ctx, user.ID)
}

// FindUser fetches a user by external id.
func (s *Store) FindUser(ctx context.Context, id string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, birthday, marital_status FROM users WHERE id = ?",
		id,
	)

	var (
		u        models.User
		birthday string
	)
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &birthday, &u.MaritalStatus); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, fmt.Errorf("scan user: %w", err)
	}
	parsed, err := parseDate(birthday)
	if err != nil {
		return models.User{}, err
	}
	u.Birthday = parsed
	return u, nil
}

// CreateCost inserts a cost. A zero date falls back to the current date.
func (s *Store) CreateCost(ctx context.Context, cost models.Cost) (models.Cost, error) {
	if cost.Date.IsZero() {
		cost.Date = s.now()
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO costs (description, category, user_id, amount, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, description, category, user_id, amount, date, created_at`,
		cost.Description, cost.Category, cost.UserID, cost.Sum.String(), formatDate(cost.Date), formatTimestamp(time.Now()),
	)
	return scanCost(row)
}

// CostsBetween returns the user's costs dated in [from, to).
func (s *Store) CostsBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Cost, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, category, user_id, amount, date, created_at
		FROM costs
		WHERE user_id = ? AND date >= ? AND date < ?
		ORDER BY date, id`,
		userID, formatDate(from), formatDate(to),
	)
	if err != nil {
		return nil, fmt.Errorf("query costs: %w", err)
	}
	defer rows.Close()

	var costs []models.Cost
	for rows.Next() {
		c, err := scanCost(rows)
		if err != nil {
			return nil, err
		}
		costs = append(costs, c)
	}
	return costs, rows.Err()
}

// TotalForUser sums the user's amounts. SQLite would sum text amounts as
// floats, so the sum is taken with decimal arithmetic.
func (s *Store) TotalForUser(ctx context.Context, userID string) (decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT amount FROM costs WHERE user_id = ?", userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("query amounts: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amount string
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, fmt.Errorf("scan amount: %w", err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		total = total.Add(d)
	}
	return total, rows.Err()
}

// Snapshot loads the memoized report for a user and period.
func (s *Store) Snapshot(ctx context.Context, userID, period string) (models.Report, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT report FROM report_snapshots WHERE user_id = ? AND period = ?",
		userID, period,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Report{}, storage.ErrNotFound
		}
		return models.Report{}, fmt.Errorf("load snapshot: %w", err)
	}
	var report models.Report
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
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
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO report_snapshots (user_id, period, report, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, period) DO NOTHING`,
		userID, period, string(raw), formatTimestamp(time.Now()),
	)
	if err != nil {
		return false, fmt.Errorf("store snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("store snapshot: %w", err)
	}
	return n == 1, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCost(row scanner) (models.Cost, error) {
	var (
		c                       models.Cost
		amount, date, createdAt string
	)
	if err := row.Scan(&c.ID, &c.Description, &c.Category, &c.UserID, &amount, &date, &createdAt); err != nil {
		return models.Cost{}, fmt.Errorf("scan cost: %w", err)
	}

	sum, err := decimal.NewFromString(amount)
	if err != nil {
		return models.Cost{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	c.Sum = sum

	if c.Date, err = parseDate(date); err != nil {
		return models.Cost{}, err
	}
	if c.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return models.Cost{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return c, nil
}

func formatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
