// Package web provides a localhost HTTP server exposing the ledger as
// a JSON API: the live entry state, the action dispatcher, reference
// data, and the derived worksheet, balance, and closing views.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/fsnotify/fsnotify"

	"github.com/ledgerlab/bookledger/persist"
	"github.com/ledgerlab/bookledger/scenario"
	"github.com/ledgerlab/bookledger/state"
)

// Config is the server configuration, populated from the environment.
// Flags set by the CLI take precedence over the parsed defaults.
type Config struct {
	Host         string        `env:"BOOKLEDGER_HOST" envDefault:"127.0.0.1"`
	Port         int           `env:"BOOKLEDGER_PORT" envDefault:"8179"`
	Snapshot     string        `env:"BOOKLEDGER_SNAPSHOT"`
	ReadOnly     bool          `env:"BOOKLEDGER_READ_ONLY"`
	WatchEnabled bool          `env:"BOOKLEDGER_WATCH" envDefault:"true"`
	SaveDelay    time.Duration `env:"BOOKLEDGER_SAVE_DELAY" envDefault:"500ms"`
}

// ConfigFromEnv builds a Config from BOOKLEDGER_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

type Server struct {
	Config    Config
	Version   string
	CommitSHA string

	scenario *scenario.Scenario
	store    *state.Store

	mu sync.RWMutex
	st state.State

	snapshot  persist.Store
	autosaver *persist.Autosaver
}

func New(cfg Config, sc *scenario.Scenario) *Server {
	return NewWithVersion(cfg, sc, "", "")
}

func NewWithVersion(cfg Config, sc *scenario.Scenario, version, commitSHA string) *Server {
	return &Server{
		Config:    cfg,
		Version:   version,
		CommitSHA: commitSHA,
		scenario:  sc,
		store:     state.New(sc.Chart()),
		st:        state.Initial(),
	}
}

// Start loads the snapshot, starts the autosaver and file watcher, and
// serves the API until ListenAndServe returns.
func (s *Server) Start(ctx context.Context) error {
	if s.Config.Snapshot != "" {
		s.snapshot = persist.NewFileStore(s.Config.Snapshot)

		st, err := persist.LoadOrInitial(ctx, s.snapshot)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		s.mu.Lock()
		s.st = st
		s.mu.Unlock()

		if !s.Config.ReadOnly {
			s.autosaver = persist.NewAutosaver(s.snapshot, s.Config.SaveDelay)
			go s.autosaver.Run(ctx)
		}

		if s.Config.WatchEnabled {
			if err := s.startWatcher(ctx); err != nil {
				return fmt.Errorf("start snapshot watcher: %w", err)
			}
		}
	}

	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	return http.ListenAndServe(addr, s.router())
}

func (s *Server) router() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/state", s.handleGetState)
	mux.HandleFunc("POST /api/actions", s.requireWritable(s.handlePostAction))
	mux.HandleFunc("GET /api/accounts", s.handleGetAccounts)
	mux.HandleFunc("GET /api/transactions", s.handleGetTransactions)
	mux.HandleFunc("GET /api/worksheet", s.handleGetWorksheet)
	mux.HandleFunc("GET /api/balances", s.handleGetBalances)
	mux.HandleFunc("GET /api/closing/{step}", s.handleGetClosing)
	mux.HandleFunc("GET /api/version", s.handleGetVersion)

	return mux
}

// requireWritable is middleware that rejects write requests in read-only mode.
func (s *Server) requireWritable(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Config.ReadOnly {
			http.Error(w, "Server is in read-only mode", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// dispatch runs one action against the current state under the write
// lock and schedules a snapshot save on success.
func (s *Server) dispatch(action state.Action) (state.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.store.Dispatch(s.st, action)
	if err != nil {
		return s.st, err
	}
	s.st = next
	if s.autosaver != nil {
		s.autosaver.Notify(next)
	}
	return next, nil
}

func (s *Server) currentState() state.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st
}

// startWatcher watches the snapshot's directory so external edits to
// the file are folded back into memory. The directory is watched, not
// the file, because atomic saves replace the file node.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}

	dir := filepath.Dir(s.Config.Snapshot)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go s.runWatcher(ctx, watcher)
	return nil
}

// runWatcher processes file system events with debouncing.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = watcher.Close()
	}()

	// Debounce timer - editors often write files in multiple steps
	const debounceDelay = 100 * time.Millisecond

	target := filepath.Base(s.Config.Snapshot)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			// React to write/create/remove/rename events
			// (Remove/Rename are common in atomic saves)
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.handleSnapshotChange(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// handleSnapshotChange reloads the snapshot and replaces the in-memory
// state, unless the file still matches what is already in memory (the
// usual case after our own autosave).
func (s *Server) handleSnapshotChange(ctx context.Context) {
	loaded, err := s.snapshot.Load(ctx)
	if err != nil {
		if errors.Is(err, persist.ErrNoSnapshot) {
			return
		}
		log.Printf("Failed to reload snapshot: %v", err)
		return
	}

	if statesEqual(loaded, s.currentState()) {
		return
	}

	if _, err := s.dispatch(state.LoadExternalState{Snapshot: loaded}); err != nil {
		log.Printf("Failed to apply reloaded snapshot: %v", err)
	}
}

func statesEqual(a, b state.State) bool {
	da, err := persist.Encode(a)
	if err != nil {
		return false
	}
	db, err := persist.Encode(b)
	if err != nil {
		return false
	}
	return bytes.Equal(da, db)
}

// writeJSONResponse writes a JSON response to the http.ResponseWriter.
// If encoding fails, it writes an error response.
func writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// VersionResponse is the JSON response structure for the version endpoint.
type VersionResponse struct {
	Version   string `json:"version"`
	CommitSHA string `json:"commitSha,omitempty"`
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, &VersionResponse{Version: s.Version, CommitSHA: s.CommitSHA})
}
