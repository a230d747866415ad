package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const DefaultTable = "kv_entries"

// PostgresStore keeps every key as one row of a two-column table.
type PostgresStore struct {
	DB    *sql.DB
	table string
}

// OpenPostgresStore opens dbURL with the lib/pq driver and creates the
// table if needed.
func OpenPostgresStore(ctx context.Context, dbURL, table string) (*PostgresStore, error) {
	if dbURL == "" {
		return nil, errors.New("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	s := NewPostgresStore(db, table)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewPostgresStore(db *sql.DB, table string) *PostgresStore {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresStore{DB: db, table: pq.QuoteIdentifier(table)}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS ` + s.table + ` (
		key        TEXT PRIMARY KEY,
		value      JSONB,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	if _, err := s.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("error creating %s: %w", s.table, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.DB.QueryRowContext(ctx, `SELECT value FROM `+s.table+` WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying key %q: %w", key, err)
	}
	if value == nil {
		return nil, ErrNotFound
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO ` + s.table + ` (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	if _, err := s.DB.ExecContext(ctx, query, key, jsonParam(value)); err != nil {
		return fmt.Errorf("error writing key %q: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM `+s.table+` WHERE key = $1`, key); err != nil {
		return fmt.Errorf("error deleting key %q: %w", key, err)
	}
	return nil
}

// Update locks the row for the duration of fn. The placeholder insert makes
// sure there is a row to lock when the key is new.
func (s *PostgresStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO `+s.table+` (key, value) VALUES ($1, NULL) ON CONFLICT (key) DO NOTHING`, key); err != nil {
		return fmt.Errorf("error reserving key %q: %w", key, err)
	}

	var current []byte
	if err := tx.QueryRowContext(ctx,
		`SELECT value FROM `+s.table+` WHERE key = $1 FOR UPDATE`, key).Scan(&current); err != nil {
		return fmt.Errorf("error locking key %q: %w", key, err)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE `+s.table+` SET value = $2, updated_at = NOW() WHERE key = $1`, key, jsonParam(next)); err != nil {
		return fmt.Errorf("error updating key %q: %w", key, err)
	}
	return tx.Commit()
}

// jsonParam sends documents as text; lib/pq would encode []byte as bytea.
func jsonParam(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}

func (s *PostgresStore) Close() error {
	return s.DB.Close()
}
