package persist

import (
	"context"
	"log"
	"time"

	"github.com/ledgerlab/bookledger/state"
)

// Autosaver debounces snapshot writes so rapid successive edits fold
// into one save. Persistence failures are logged, never propagated:
// they must not block further in-memory edits, and the worst case is
// loss of unsaved progress, never corruption of posted entries.
type Autosaver struct {
	store   Store
	delay   time.Duration
	updates chan state.State
}

// NewAutosaver creates an autosaver flushing to the store after the
// given quiet period.
func NewAutosaver(store Store, delay time.Duration) *Autosaver {
	return &Autosaver{
		store:   store,
		delay:   delay,
		updates: make(chan state.State, 1),
	}
}

// Notify hands the autosaver a new state to persist. It never blocks;
// when a save is already pending, the newer state supersedes it.
func (a *Autosaver) Notify(st state.State) {
	for {
		select {
		case a.updates <- st:
			return
		default:
			// Drop the stale pending update and retry with the newer one.
			select {
			case <-a.updates:
			default:
			}
		}
	}
}

// Run processes updates until the context is cancelled, flushing any
// pending state on the way out.
func (a *Autosaver) Run(ctx context.Context) {
	var (
		pending    state.State
		hasPending bool
		timer      *time.Timer
		fire       <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
		if hasPending {
			a.flush(pending)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case st := <-a.updates:
			pending, hasPending = st, true
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(a.delay)
			fire = timer.C

		case <-fire:
			fire = nil
			if hasPending {
				a.flush(pending)
				hasPending = false
			}
		}
	}
}

func (a *Autosaver) flush(st state.State) {
	if err := a.store.Save(context.Background(), st); err != nil {
		log.Printf("autosave failed: %v", err)
	}
}
