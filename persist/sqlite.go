package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ledgerlab/bookledger/state"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id             INTEGER PRIMARY KEY CHECK (id = 1),
	schema_version INTEGER NOT NULL,
	payload        BLOB NOT NULL,
	saved_at       INTEGER NOT NULL
);
`

// SQLiteStore keeps the snapshot in a single-row SQLite table. The
// snapshot payload is stored verbatim as its JSON encoding; the schema
// version is duplicated into its own column so a mismatch is detected
// without decoding the payload.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) a SQLite snapshot store.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := db.Exec(snapshotSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the stored snapshot.
func (s *SQLiteStore) Load(ctx context.Context) (state.State, error) {
	var version int
	var payload []byte
	row := s.db.QueryRowContext(ctx, `SELECT schema_version, payload FROM snapshots WHERE id = 1`)
	if err := row.Scan(&version, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return state.State{}, ErrNoSnapshot
		}
		return state.State{}, fmt.Errorf("load snapshot: %w", err)
	}

	if version != state.SchemaVersion {
		return state.State{}, &SchemaVersionError{Got: version, Want: state.SchemaVersion}
	}
	return Decode(payload)
}

// Save replaces the stored snapshot.
func (s *SQLiteStore) Save(ctx context.Context, st state.State) error {
	payload, err := Encode(st)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, schema_version, payload, saved_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			schema_version = excluded.schema_version,
			payload = excluded.payload,
			saved_at = excluded.saved_at
	`, st.SchemaVersion, payload, time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
