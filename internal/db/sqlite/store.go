// Package sqlite implements db.Store on a single-file SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/kailas-cloud/regexboard/db/migrations"
	"github.com/kailas-cloud/regexboard/internal/db"

	// Import SQLite driver for database/sql
	_ "modernc.org/sqlite"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Config holds sqlite store settings.
type Config struct {
	// Path is the database file. Empty means DefaultPath().
	Path string
}

// Store implements db.Store over a kv(key, value, updated_at) table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultPath returns $XDG_DATA_HOME/regexboard/store.db.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, "regexboard", "store.db")
}

// NewStore opens (creating if needed) the database and applies migrations.
func NewStore(cfg Config) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath()
	}

	dsn, err := buildDSN(path)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if path == MemoryPath {
		// Every new connection to :memory: is a fresh database.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &Store{db: conn, now: time.Now}, nil
}

func buildDSN(path string) (string, error) {
	if path == MemoryPath {
		return MemoryPath, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path: %w", err)
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", filepath.ToSlash(absPath)), nil
}

func runMigrations(conn *sql.DB) error {
	driver, err := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	if err != nil {
		return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("initialise migrate driver: %w", err)}
	}

	sourceDriver, err := iofs.New(migrations.Files, ".")
	if err != nil {
		return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("load embedded migrations: %w", err)}
	}
	defer func() {
		_ = sourceDriver.Close()
	}()

	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", driver)
	if err != nil {
		return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("create migrator: %w", err)}
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("apply migrations: %w", err)}
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady pings once: a local file is either usable or not.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Ping(ctx)
}

// Get retrieves a value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return value, nil
}

// Set stores a value at the given key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UnixMilli(),
	)
	if err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// Del removes a key.
func (s *Store) Del(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}
