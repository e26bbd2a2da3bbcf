// Package persist implements the persistence collaborators around the
// core: a JSON snapshot codec gated on the schema version, an atomic
// file store, a SQLite-backed store, and a debounced autosaver. The
// collaborators never reach into in-memory state; a loaded snapshot is
// handed back to the core through a LoadExternalState dispatch.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ledgerlab/bookledger/state"
)

// ErrNoSnapshot is returned by stores when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// SchemaVersionError is returned when a loaded snapshot's version does
// not match the current schema. The resolution is always to discard the
// snapshot and start from the empty initial state, never a partial load.
type SchemaVersionError struct {
	Got  int
	Want int
}

func (e *SchemaVersionError) Error() string {
	return fmt.Sprintf("snapshot schema version %d does not match current version %d", e.Got, e.Want)
}

// Encode serializes state into its snapshot form. The snapshot is the
// state structure verbatim: draftEntries, postedEntries, schemaVersion.
func Encode(st state.State) ([]byte, error) {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot and verifies its schema version.
func Decode(data []byte) (state.State, error) {
	var st state.State
	if err := json.Unmarshal(data, &st); err != nil {
		return state.State{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if st.SchemaVersion != state.SchemaVersion {
		return state.State{}, &SchemaVersionError{Got: st.SchemaVersion, Want: state.SchemaVersion}
	}
	if st.Drafts == nil {
		st.Drafts = make(map[string]state.Draft)
	}
	return st, nil
}

// Store is a snapshot backing store.
type Store interface {
	// Load returns the stored snapshot. It returns ErrNoSnapshot when
	// nothing has been saved yet and a *SchemaVersionError when the
	// stored snapshot belongs to another schema.
	Load(ctx context.Context) (state.State, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, st state.State) error
}

// LoadOrInitial loads a snapshot, falling back to the empty initial
// state when none exists or the stored one belongs to another schema.
// Any other failure is returned as-is.
func LoadOrInitial(ctx context.Context, store Store) (state.State, error) {
	st, err := store.Load(ctx)
	if err == nil {
		return st, nil
	}

	var version *SchemaVersionError
	if errors.Is(err, ErrNoSnapshot) || errors.As(err, &version) {
		return state.Initial(), nil
	}
	return state.State{}, err
}
