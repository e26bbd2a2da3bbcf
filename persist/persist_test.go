package persist

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/ledgerlab/bookledger/book"
	"github.com/ledgerlab/bookledger/state"
)

func sampleState() state.State {
	st := state.Initial()
	st.Drafts["T2"] = state.Draft{
		Date: "2024-01-08",
		Lines: []book.Line{
			{ID: "L1", Account: 110, Debit: 500},
			{ID: "L2", Account: 101, Credit: 500},
		},
	}
	st.Posted = append(st.Posted, book.PostedEntry{
		TransactionID: "T1",
		Date:          "2024-01-05",
		Lines: []book.PostedLine{
			{Account: 101, Debit: 1000},
			{Account: 310, Credit: 1000},
		},
	})
	return st
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	st := sampleState()

	data, err := Encode(st)
	assert.NoError(t, err)

	got, err := Decode(data)
	assert.NoError(t, err)
	assert.Equal(t, st, got)
}

func TestDecodeRejectsSchemaMismatch(t *testing.T) {
	data := []byte(`{"draftEntries":{},"postedEntries":[],"schemaVersion":99}`)

	_, err := Decode(data)
	var verr *SchemaVersionError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, 99, verr.Got)
	assert.Equal(t, state.SchemaVersion, verr.Want)
}

func TestDecodeNormalizesMissingDrafts(t *testing.T) {
	data := []byte(`{"postedEntries":[],"schemaVersion":1}`)

	st, err := Decode(data)
	assert.NoError(t, err)
	assert.True(t, st.Drafts != nil)
	assert.Equal(t, 0, len(st.Drafts))
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	store := NewFileStore(path)
	ctx := context.Background()

	st := sampleState()
	assert.NoError(t, store.Save(ctx, st))

	got, err := store.Load(ctx)
	assert.NoError(t, err)
	assert.Equal(t, st, got)
}

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	_, err := store.Load(context.Background())
	assert.True(t, errors.Is(err, ErrNoSnapshot))
}

func TestFileStoreSaveIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	store := NewFileStore(path)
	ctx := context.Background()

	assert.NoError(t, store.Save(ctx, sampleState()))
	assert.NoError(t, store.Save(ctx, state.Initial()))

	// No temp files left behind after the rename.
	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(entries))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.True(t, json.Valid(data))
}

func TestLoadOrInitial(t *testing.T) {
	ctx := context.Background()

	t.Run("missing snapshot", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
		st, err := LoadOrInitial(ctx, store)
		assert.NoError(t, err)
		assert.Equal(t, state.Initial(), st)
	})

	t.Run("schema mismatch", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "snapshot.json")
		assert.NoError(t, os.WriteFile(path, []byte(`{"schemaVersion":42}`), 0o644))

		st, err := LoadOrInitial(ctx, NewFileStore(path))
		assert.NoError(t, err)
		assert.Equal(t, state.Initial(), st)
	})

	t.Run("existing snapshot", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "snapshot.json")
		store := NewFileStore(path)
		want := sampleState()
		assert.NoError(t, store.Save(ctx, want))

		st, err := LoadOrInitial(ctx, store)
		assert.NoError(t, err)
		assert.Equal(t, want, st)
	})
}

// recordingStore captures every Save for autosaver assertions.
type recordingStore struct {
	mu    sync.Mutex
	saves []state.State
}

func (r *recordingStore) Load(context.Context) (state.State, error) {
	return state.State{}, ErrNoSnapshot
}

func (r *recordingStore) Save(_ context.Context, st state.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, st)
	return nil
}

func (r *recordingStore) saved() []state.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]state.State(nil), r.saves...)
}

func TestAutosaverDebouncesUpdates(t *testing.T) {
	store := &recordingStore{}
	saver := NewAutosaver(store, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		saver.Run(ctx)
	}()

	first := state.Initial()
	second := sampleState()
	saver.Notify(first)
	saver.Notify(second)

	assert.True(t, eventually(func() bool { return len(store.saved()) > 0 }))
	cancel()
	<-done

	saves := store.saved()
	assert.Equal(t, 1, len(saves))
	assert.Equal(t, second, saves[0])
}

func TestAutosaverFlushesPendingOnShutdown(t *testing.T) {
	store := &recordingStore{}
	saver := NewAutosaver(store, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		saver.Run(ctx)
	}()

	want := sampleState()
	saver.Notify(want)
	// Wait until Run has taken the update off the channel.
	assert.True(t, eventually(func() bool { return len(saver.updates) == 0 }))

	cancel()
	<-done

	saves := store.saved()
	assert.Equal(t, 1, len(saves))
	assert.Equal(t, want, saves[0])
}

func eventually(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}
