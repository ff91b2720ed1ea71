package timer

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tempora/tempora/internal/core/model"
	"github.com/tempora/tempora/internal/remote"
	"github.com/tempora/tempora/internal/util"
	"golang.org/x/sync/singleflight"
)

// Store owns the authoritative in-memory entry list and the single
// active/pending slot. All mutations go through the remote service first;
// local state changes only after the remote call succeeds, so a failed call
// leaves the store exactly as it was.
//
// Invariant: at most one entry in the list has Running == true, and when one
// does it is the entry held by the Running slot.
type Store struct {
	api   remote.API
	clock *DurationClock

	mu      sync.RWMutex
	entries []*model.TimeEntry // most-recent-first by start time
	state   machineState

	// start is non-reentrant: concurrent callers share one in-flight create.
	startGroup singleflight.Group

	lockMu     sync.Mutex
	entryLocks map[string]*sync.Mutex
}

// NewStore creates a store bound to a remote collaborator. The store is
// constructed explicitly at app start and torn down with Close on sign-out.
func NewStore(api remote.API) *Store {
	return &Store{
		api:        api,
		clock:      NewDurationClock(),
		entryLocks: make(map[string]*sync.Mutex),
	}
}

// Clock exposes the duration clock for live displays.
func (s *Store) Clock() *DurationClock {
	return s.clock
}

// Sync hydrates the store from the remote service: the full entry list plus
// the active entry, if any. The list is normalized so the single-running
// invariant holds even if the server hands back inconsistent rows.
func (s *Store) Sync(ctx context.Context) error {
	entries, err := s.api.ListEntries(ctx)
	if err != nil {
		return err
	}
	active, err := s.api.ActiveEntry(ctx)
	if err != nil {
		return err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartTime.After(entries[j].StartTime)
	})

	s.mu.Lock()
	s.entries = entries
	if active != nil {
		s.normalizeLocked(active)
		s.state = runningState(active)
	} else {
		for _, e := range s.entries {
			if e.Running {
				util.LogWarnf("Sync: entry %s marked running but no active entry reported; closing locally", e.ID)
				e.Running = false
			}
		}
		s.state = idleState()
	}
	s.mu.Unlock()

	if active != nil {
		s.clock.Start(active.StartTime)
	} else {
		s.clock.Stop()
	}
	return nil
}

// normalizeLocked makes the list agree with the active slot: the active entry
// is present (prepended when missing) and nothing else claims to be running.
func (s *Store) normalizeLocked(active *model.TimeEntry) {
	found := false
	for i, e := range s.entries {
		if e.ID == active.ID {
			s.entries[i] = active
			found = true
		} else if e.Running {
			e.Running = false
		}
	}
	if !found {
		s.entries = append([]*model.TimeEntry{active}, s.entries...)
	}
}

// Start opens a new running entry against a project. It is legal only from
// the Idle phase: a running entry yields ConflictError, a pending one
// InvalidStateError. Doubled invocations while a start is in flight share the
// in-flight result instead of issuing a second remote create.
func (s *Store) Start(ctx context.Context, projectID, description string) (*model.TimeEntry, error) {
	if err := s.checkStartable(); err != nil {
		return nil, err
	}

	v, err, _ := s.startGroup.Do("start", func() (interface{}, error) {
		// Re-check: a racing start may have won while we queued.
		if err := s.checkStartable(); err != nil {
			return nil, err
		}

		entry, err := s.api.CreateEntry(ctx, projectID, description, time.Time{})
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.entries = append([]*model.TimeEntry{entry}, s.entries...)
		s.state = runningState(entry)
		s.mu.Unlock()

		s.clock.Start(entry.StartTime)
		util.LogDebugf("Started entry %s on project %s", entry.ID, projectID)
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.TimeEntry).Clone(), nil
}

func (s *Store) checkStartable() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.state.phase {
	case PhaseRunning:
		return &model.ConflictError{ActiveID: s.state.entry.ID}
	case PhasePending:
		return &model.InvalidStateError{Op: "start", EntryID: s.state.entry.ID,
			Reason: "a stopped entry awaits a description; complete or clear it first"}
	default:
		return nil
	}
}

// Stop closes the active entry. Only the active entry's id is accepted. On
// success the server's closed copy replaces the in-list one, the active slot
// clears, and the entry moves to the pending slot for description completion.
// A failed remote stop leaves the entry running.
func (s *Store) Stop(ctx context.Context, id string) (*model.TimeEntry, error) {
	lock := s.entryLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.RLock()
	if s.state.phase != PhaseRunning {
		phase := s.state.phase
		s.mu.RUnlock()
		return nil, &model.InvalidStateError{Op: "stop", EntryID: id,
			Reason: "no entry is running (state: " + phase.String() + ")"}
	}
	if s.state.entry.ID != id {
		activeID := s.state.entry.ID
		s.mu.RUnlock()
		return nil, &model.InvalidStateError{Op: "stop", EntryID: id,
			Reason: "not the active entry (active: " + activeID + ")"}
	}
	s.mu.RUnlock()

	closed, err := s.api.StopEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.replaceLocked(closed)
	s.state = pendingState(closed)
	s.mu.Unlock()

	s.clock.Stop()
	util.LogDebugf("Stopped entry %s after %ds", closed.ID, closed.DurationSeconds)
	return closed.Clone(), nil
}

// CompletePending persists the description (and optional task) for the
// pending entry, then clears the pending slot. The entry is already closed
// remotely; only the annotation changes.
func (s *Store) CompletePending(ctx context.Context, description, taskID string) (*model.TimeEntry, error) {
	s.mu.RLock()
	if s.state.phase != PhasePending {
		phase := s.state.phase
		s.mu.RUnlock()
		return nil, &model.InvalidStateError{Op: "complete pending",
			Reason: "no entry awaits a description (state: " + phase.String() + ")"}
	}
	id := s.state.entry.ID
	s.mu.RUnlock()

	lock := s.entryLock(id)
	lock.Lock()
	defer lock.Unlock()

	patch := model.EntryPatch{Description: &description}
	if taskID != "" {
		patch.TaskID = &taskID
	}

	updated, err := s.api.UpdateEntry(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.replaceLocked(updated)
	if s.state.phase == PhasePending && s.state.entry.ID == id {
		s.state = idleState()
	}
	s.mu.Unlock()
	return updated.Clone(), nil
}

// ClearPending drops the pending slot without contacting the remote service.
// The entry stays closed with whatever description it already had.
func (s *Store) ClearPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.phase == PhasePending {
		s.state = idleState()
	}
}

// Update applies a partial patch to any entry. Updating the active entry is
// allowed and refreshes the active slot so the two views never diverge.
func (s *Store) Update(ctx context.Context, id string, patch model.EntryPatch) (*model.TimeEntry, error) {
	if !s.knows(id) {
		return nil, &model.NotFoundError{EntryID: id}
	}

	lock := s.entryLock(id)
	lock.Lock()
	defer lock.Unlock()

	updated, err := s.api.UpdateEntry(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.replaceLocked(updated)
	if s.state.entry != nil && s.state.entry.ID == id {
		s.state.entry = updated
	}
	s.mu.Unlock()
	return updated.Clone(), nil
}

// Delete removes a non-active entry. Deleting the running entry is illegal;
// stop it first. Deleting the pending entry clears the pending slot.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.RLock()
	if s.state.phase == PhaseRunning && s.state.entry.ID == id {
		s.mu.RUnlock()
		return &model.InvalidStateError{Op: "delete", EntryID: id, Reason: "entry is running; stop it first"}
	}
	s.mu.RUnlock()

	if !s.knows(id) {
		return &model.NotFoundError{EntryID: id}
	}

	lock := s.entryLock(id)
	lock.Lock()
	defer lock.Unlock()

	if err := s.api.DeleteEntry(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	if s.state.phase == PhasePending && s.state.entry.ID == id {
		s.state = idleState()
	}
	s.mu.Unlock()
	return nil
}

// Entries returns a most-recent-first snapshot of the entry list. The clones
// are the caller's to keep; mutating them never touches store state.
func (s *Store) Entries() []*model.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.TimeEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Clone())
	}
	return out
}

// ActiveEntry returns a snapshot of the running entry, or nil while not Running.
func (s *Store) ActiveEntry() *model.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.phase != PhaseRunning {
		return nil
	}
	return s.state.entry.Clone()
}

// PendingEntry returns a snapshot of the entry awaiting a description, or nil.
func (s *Store) PendingEntry() *model.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.phase != PhasePending {
		return nil
	}
	return s.state.entry.Clone()
}

// Phase reports the current state-machine phase.
func (s *Store) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.phase
}

// Close tears the store down, cancelling the duration clock.
func (s *Store) Close() {
	s.clock.Stop()
}

// entryLock returns the mutex serializing mutations of one entry id,
// creating it on first use. Locks are never removed; the id space is small
// enough that the map just grows with the entry list.
func (s *Store) entryLock(id string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.entryLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.entryLocks[id] = lock
	}
	return lock
}

func (s *Store) knows(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// replaceLocked swaps the in-list copy matching the entry's id; list order is
// untouched. Caller holds s.mu.
func (s *Store) replaceLocked(entry *model.TimeEntry) {
	for i, e := range s.entries {
		if e.ID == entry.ID {
			s.entries[i] = entry
			return
		}
	}
	s.entries = append([]*model.TimeEntry{entry}, s.entries...)
}
