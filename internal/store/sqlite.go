package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kev1nl1u/lkev.in/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS last_login (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		request_date INTEGER NOT NULL,
		user_agent TEXT NOT NULL,
		ip TEXT,
		location TEXT
	);

	CREATE TABLE IF NOT EXISTS terminal_history (
		storage_key TEXT PRIMARY KEY,
		entries TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LastLogin retrieves the single last-login record.
func (s *SQLiteStore) LastLogin(ctx context.Context) (*domain.LoginRecord, error) {
	query := `SELECT request_date, user_agent, ip, location FROM last_login WHERE id = 1`

	row := s.db.QueryRowContext(ctx, query)

	var rec domain.LoginRecord
	var requestDate int64
	var ip, location sql.NullString

	err := row.Scan(&requestDate, &rec.UserAgent, &ip, &location)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan last_login row: %w", err)
	}

	rec.RequestDate = time.Unix(requestDate, 0)
	rec.IP = ip.String
	rec.Location = location.String

	return &rec, nil
}

// SaveLogin overwrites the last-login record.
func (s *SQLiteStore) SaveLogin(ctx context.Context, rec *domain.LoginRecord) error {
	query := `
	INSERT INTO last_login (id, request_date, user_agent, ip, location)
	VALUES (1, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		request_date = excluded.request_date,
		user_agent = excluded.user_agent,
		ip = excluded.ip,
		location = excluded.location`

	err := withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query,
			rec.RequestDate.Unix(), rec.UserAgent,
			nullable(rec.IP), nullable(rec.Location),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("save login: %w", err)
	}
	return nil
}

// LoadHistory retrieves the command history stored under key.
func (s *SQLiteStore) LoadHistory(ctx context.Context, key string) ([]string, error) {
	query := `SELECT entries FROM terminal_history WHERE storage_key = ?`

	var raw string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan terminal_history row: %w", err)
	}

	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode history entries: %w", err)
	}
	return entries, nil
}

// SaveHistory stores the command history under key.
func (s *SQLiteStore) SaveHistory(ctx context.Context, key string, entries []string) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history entries: %w", err)
	}

	query := `
	INSERT INTO terminal_history (storage_key, entries, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(storage_key) DO UPDATE SET
		entries = excluded.entries,
		updated_at = excluded.updated_at`

	err = withRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, key, string(raw), time.Now().Unix())
		return err
	})
	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
