package lockout

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "pinpad/internal/errors"
)

// Single row table; the row is created on first save.
const schema = `
CREATE TABLE IF NOT EXISTS lockout_state (
    id               INTEGER PRIMARY KEY CHECK (id = 1),
    failed_attempts  INTEGER NOT NULL,
    locked_until_ns  INTEGER NOT NULL,
    updated_at_ns    INTEGER NOT NULL
);
`

// SQLiteStore keeps lockout state across restarts so quitting the app does
// not end a lockout.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the lockout database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, apperrors.NewLockoutError("open", path, "create database directory", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=2000")
	if err != nil {
		return nil, apperrors.NewLockoutError("open", path, "open database", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, apperrors.NewLockoutError("open", path, "apply schema", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Load returns the stored state, or the zero State when nothing is stored.
func (s *SQLiteStore) Load() (State, error) {
	var attempts int
	var lockedUntil int64
	err := s.db.QueryRow(`SELECT failed_attempts, locked_until_ns FROM lockout_state WHERE id = 1`).
		Scan(&attempts, &lockedUntil)
	if errors.Is(err, sql.ErrNoRows) {
		return State{}, nil
	}
	if err != nil {
		return State{}, apperrors.NewLockoutError("load", s.path, "read state", err)
	}

	st := State{FailedAttempts: attempts}
	if lockedUntil != 0 {
		st.LockedUntil = time.Unix(0, lockedUntil)
	}
	return st, nil
}

// Save upserts the state row.
func (s *SQLiteStore) Save(st State) error {
	var lockedUntil int64
	if !st.LockedUntil.IsZero() {
		lockedUntil = st.LockedUntil.UnixNano()
	}
	_, err := s.db.Exec(`
		INSERT INTO lockout_state (id, failed_attempts, locked_until_ns, updated_at_ns)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			failed_attempts = excluded.failed_attempts,
			locked_until_ns = excluded.locked_until_ns,
			updated_at_ns = excluded.updated_at_ns`,
		st.FailedAttempts, lockedUntil, time.Now().UnixNano(),
	)
	if err != nil {
		return apperrors.NewLockoutError("save", s.path, "write state", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
