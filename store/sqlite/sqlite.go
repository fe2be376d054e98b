/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Persists saved plans, per-role session values and quiz results. Projections
  are never stored: a saved plan keeps its JSON inputs and is recomputed on
  every read, so a change to the projection rules can never leave stale
  results behind.

INTERFACES IMPLEMENTED:
  session.Store: LoadValues, SaveValue, DeleteValue

KEY TABLES:
  plans:          Saved plan definitions (factory.PlanJSON documents, versioned)
  session_values: One JSON value per (role, key)
  quiz_results:   Scored quiz submissions, newest first

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. An in-memory database is pinned to a
  single connection, since every new connection to ":memory:" would open an
  empty database.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/careerpath.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  sess, err := session.Open(ctx, role.Parent, store)

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - session/session.go: Store interface
  - factory/plan.go:    Plan JSON documents stored in plans.plan_json
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/careerpath/role"
)

// ErrNotFound is returned when a delete targets a missing row.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// timeLayout is fixed width so that text comparison in ORDER BY matches
// time order. RFC3339Nano drops trailing zeros and does not.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Saved plans (inputs only, projections are recomputed)
	CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		plan_json TEXT NOT NULL,
		version INTEGER DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_plans_category
		ON plans(category);

	-- Session values (one JSON document per role and key)
	CREATE TABLE IF NOT EXISTS session_values (
		role TEXT NOT NULL,
		key TEXT NOT NULL,
		value_json TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (role, key)
	);

	-- Quiz results
	CREATE TABLE IF NOT EXISTS quiz_results (
		id TEXT PRIMARY KEY,
		role TEXT NOT NULL,
		quiz_id TEXT NOT NULL,
		score INTEGER NOT NULL,
		answers_json TEXT NOT NULL,
		best_trait TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_quiz_results_role_created
		ON quiz_results(role, created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PLAN OPERATIONS
// =============================================================================

// PlanRecord is a stored plan with its JSON definition.
type PlanRecord struct {
	ID        string
	Name      string
	Category  string
	PlanJSON  string
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SavePlan inserts a plan or replaces an existing one, bumping its version.
func (s *Store) SavePlan(ctx context.Context, plan PlanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO plans (id, name, category, plan_json, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			plan_json = excluded.plan_json,
			version = plans.version + 1,
			updated_at = excluded.updated_at
	`

	now := formatTime(time.Now())
	_, err := s.db.ExecContext(ctx, query,
		plan.ID, plan.Name, plan.Category, plan.PlanJSON, now, now,
	)
	return err
}

// ReplacePlans deletes every saved plan and inserts plans in one transaction.
// On error nothing changes.
func (s *Store) ReplacePlans(ctx context.Context, plans []PlanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM plans"); err != nil {
		return err
	}

	now := formatTime(time.Now())
	for _, plan := range plans {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO plans (id, name, category, plan_json, version, created_at, updated_at)
			VALUES (?, ?, ?, ?, 1, ?, ?)
		`, plan.ID, plan.Name, plan.Category, plan.PlanJSON, now, now); err != nil {
			return fmt.Errorf("plan %q: %w", plan.ID, err)
		}
	}
	return tx.Commit()
}

// GetPlan retrieves a plan by ID. It returns nil, nil when the plan does not exist.
func (s *Store) GetPlan(ctx context.Context, id string) (*PlanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p PlanRecord
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, category, plan_json, version, created_at, updated_at FROM plans WHERE id = ?",
		id,
	).Scan(&p.ID, &p.Name, &p.Category, &p.PlanJSON, &p.Version, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return &p, nil
}

// ListPlans returns all plans ordered by name.
func (s *Store) ListPlans(ctx context.Context) ([]PlanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, category, plan_json, version, created_at, updated_at FROM plans ORDER BY name, id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []PlanRecord
	for rows.Next() {
		var p PlanRecord
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.PlanJSON, &p.Version, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt = parseTime(createdAt)
		p.UpdatedAt = parseTime(updatedAt)
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// DeletePlan removes a plan. It returns ErrNotFound when no plan has the ID.
func (s *Store) DeletePlan(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM plans WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("plan %q: %w", id, ErrNotFound)
	}
	return nil
}

// =============================================================================
// SESSION VALUES (session.Store)
// =============================================================================

// LoadValues returns every stored value of a role.
func (s *Store) LoadValues(ctx context.Context, r role.Role) (map[string]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value_json FROM session_values WHERE role = ?",
		r.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]json.RawMessage)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = json.RawMessage(value)
	}
	return values, rows.Err()
}

// SaveValue upserts one value.
func (s *Store) SaveValue(ctx context.Context, r role.Role, key string, value json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO session_values (role, key, value_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(role, key) DO UPDATE SET
			value_json = excluded.value_json,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		r.String(), key, string(value), formatTime(time.Now()),
	)
	return err
}

// DeleteValue removes one value. Deleting a missing key is not an error.
func (s *Store) DeleteValue(ctx context.Context, r role.Role, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"DELETE FROM session_values WHERE role = ? AND key = ?",
		r.String(), key,
	)
	return err
}

// =============================================================================
// QUIZ RESULTS
// =============================================================================

// QuizResult is one scored quiz submission.
type QuizResult struct {
	ID          string
	Role        role.Role
	QuizID      string
	Score       int
	AnswersJSON string
	BestTrait   string
	CreatedAt   time.Time
}

// SaveQuizResult stores a quiz result. Results are immutable once written.
func (s *Store) SaveQuizResult(ctx context.Context, q QuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := q.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quiz_results (id, role, quiz_id, score, answers_json, best_trait, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		q.ID, q.Role.String(), q.QuizID, q.Score, q.AnswersJSON, q.BestTrait,
		formatTime(createdAt),
	)
	return err
}

// ListQuizResults returns the results of a role, newest first.
func (s *Store) ListQuizResults(ctx context.Context, r role.Role, limit int) ([]QuizResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, role, quiz_id, score, answers_json, best_trait, created_at
		FROM quiz_results
		WHERE role = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, r.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []QuizResult
	for rows.Next() {
		var q QuizResult
		var roleName, createdAt string
		if err := rows.Scan(&q.ID, &roleName, &q.QuizID, &q.Score, &q.AnswersJSON, &q.BestTrait, &createdAt); err != nil {
			return nil, err
		}
		if q.Role, err = role.Parse(roleName); err != nil {
			return nil, fmt.Errorf("quiz result %s: %w", q.ID, err)
		}
		q.CreatedAt = parseTime(createdAt)
		results = append(results, q)
	}
	return results, rows.Err()
}

// =============================================================================
// ADMIN OPERATIONS
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"plans", "session_values", "quiz_results"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
