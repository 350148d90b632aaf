package storage

import (
	"database/sql"
	"embed"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/vedantwpatil/Mouse-Distance/internal/monitoring"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps values in a SQLite database so they survive restarts.
type SQLiteStore struct {
	db *sql.DB

	mu     sync.Mutex
	writer string
}

// OpenSQLite opens (or creates) the database at path and brings its schema
// up to date.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &UnavailableError{Op: "open", Err: errors.Wrapf(err, "open %s", path)}
	}
	// A single connection serializes writes and keeps ":memory:" databases alive.
	db.SetMaxOpenConns(1)

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, &UnavailableError{Op: "migrate", Err: err}
	}

	return &SQLiteStore{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "failed to load embedded migrations")
	}

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return errors.Wrap(err, "failed to create sqlite driver")
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return errors.Wrap(err, "failed to create migrate instance")
	}
	m.Log = &migrateLogger{}
	// m is not closed here because that would close db as well.

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "migration up failed")
	}
	return nil
}

// SetWriter records who subsequent Set calls are attributed to.
func (s *SQLiteStore) SetWriter(writer string) {
	s.mu.Lock()
	s.writer = writer
	s.mu.Unlock()
}

// Set stores the full value. Callers always write absolute values, so two
// writers sharing a key can only overwrite each other.
func (s *SQLiteStore) Set(key, value string) error {
	s.mu.Lock()
	writer := s.writer
	s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO kv_store (name, value, writer, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			writer = excluded.writer,
			updated_at = excluded.updated_at`,
		key, value, writer,
	)
	if err != nil {
		return &UnavailableError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv_store WHERE name = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &UnavailableError{Op: "get", Key: key, Err: err}
	}
	return value, true, nil
}

// Writer returns the writer recorded for key, or "" when the key is missing.
func (s *SQLiteStore) Writer(key string) (string, error) {
	var writer string
	err := s.db.QueryRow(`SELECT writer FROM kv_store WHERE name = ?`, key).Scan(&writer)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", &UnavailableError{Op: "get", Key: key, Err: err}
	}
	return writer, nil
}

func (s *SQLiteStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv_store WHERE name = ?`, key); err != nil {
		return &UnavailableError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// migrateLogger implements migrate.Logger interface
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	monitoring.Logf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool {
	return false
}
