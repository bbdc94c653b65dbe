package storage

import (
	"bytes"
	"database/sql"
	"embed"
	"encoding/gob"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/joshuafuller/cachedns/internal/dns/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RelationalStore persists cached DNS messages in a single-table SQLite
// database, schema-managed by golang-migrate. Grounded on the teacher
// pack's HydraDNS-style migrate.NewWithInstance("iofs", ...) wiring, with a
// pure-Go modernc.org/sqlite driver so the whole module stays cgo-free.
type RelationalStore struct {
	db *sql.DB
}

// NewRelationalStore opens (or creates) a SQLite database at path and
// applies any pending migrations.
func NewRelationalStore(path string) (*RelationalStore, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: opening relational store at %s: %w", path, err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: migrating relational store at %s: %w", path, err)
	}

	return &RelationalStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migration source: %w", err)
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *RelationalStore) Close() error {
	return s.db.Close()
}

// Get returns the message stored for key along with the time it was
// inserted, so the caller can apply its own TTL check.
func (s *RelationalStore) Get(key string) (domain.Message, time.Time, bool, error) {
	var payload []byte
	var insertedUnix int64
	err := s.db.QueryRow("SELECT payload, inserted_at FROM messages WHERE cache_key = ?", key).Scan(&payload, &insertedUnix)
	if err == sql.ErrNoRows {
		return domain.Message{}, time.Time{}, false, nil
	}
	if err != nil {
		return domain.Message{}, time.Time{}, false, fmt.Errorf("storage: reading %s: %w", key, err)
	}

	var rec record
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&rec); err != nil {
		return domain.Message{}, time.Time{}, false, fmt.Errorf("storage: decoding %s: %w", key, err)
	}
	return rec.Message, time.Unix(insertedUnix, 0), true, nil
}

// Put persists msg for key, stamped with insertedAt.
func (s *RelationalStore) Put(key string, msg domain.Message, insertedAt time.Time) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(record{Message: msg, InsertedAt: insertedAt}); err != nil {
		return fmt.Errorf("storage: encoding %s: %w", key, err)
	}

	_, err := s.db.Exec(`
		INSERT INTO messages (cache_key, payload, inserted_at) VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET payload = excluded.payload, inserted_at = excluded.inserted_at
	`, key, buf.Bytes(), insertedAt.Unix())
	if err != nil {
		return fmt.Errorf("storage: writing %s: %w", key, err)
	}
	return nil
}

// Delete removes the entry for key, if any.
func (s *RelationalStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM messages WHERE cache_key = ?", key); err != nil {
		return fmt.Errorf("storage: deleting %s: %w", key, err)
	}
	return nil
}

// Len returns the number of persisted entries.
func (s *RelationalStore) Len() int {
	var n int
	_ = s.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n
}
