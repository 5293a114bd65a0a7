// Package store holds the in-memory packages and activities and is the only
// place they are mutated. Every mutation is computed on a copy, persisted,
// and only then made visible.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
)

// Snapshot is the full serializable state keyed by entity id.
type Snapshot struct {
	Packages   []domain.Package
	Activities []domain.Activity
}

// Persister durably stores a snapshot after each successful mutation.
type Persister interface {
	Save(ctx context.Context, snap Snapshot) error
}

// Loader reads a previously saved snapshot.
type Loader interface {
	Load(ctx context.Context) (Snapshot, error)
}

type noopPersister struct{}

func (noopPersister) Save(context.Context, Snapshot) error { return nil }

// Option configures a Store.
type Option func(*Store)

// WithPersister sets the snapshot sink. The default discards snapshots.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		if p != nil {
			s.persister = p
		}
	}
}

// WithClock sets the clock used for transition timestamps.
func WithClock(c Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// Store is the state container. It is safe for concurrent use but assumes a
// single logical writer: there is no conflict resolution between callers.
type Store struct {
	mu        sync.RWMutex
	state     state
	persister Persister
	clock     Clock
}

func New(opts ...Option) *Store {
	s := &Store{
		state:     newState(),
		persister: noopPersister{},
		clock:     SystemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory state with the loader's snapshot without
// persisting it again.
func (s *Store) Load(ctx context.Context, l Loader) error {
	snap, err := l.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = stateFromSnapshot(snap)
	return nil
}

// Now returns the store clock's current instant.
func (s *Store) Now() time.Time {
	return s.clock.Now()
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.snapshot()
}

// Packages returns all packages ordered by planned start, then id.
func (s *Store) Packages() []domain.Package {
	return s.Snapshot().Packages
}

// Activities returns all activities ordered by package, tag and planned start.
func (s *Store) Activities() []domain.Activity {
	return s.Snapshot().Activities
}

// Package returns one package by id.
func (s *Store) Package(id string) (domain.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.state.packages[id]
	if !ok {
		return domain.Package{}, notFound("package", id)
	}
	return p, nil
}

// Activity returns one activity by id.
func (s *Store) Activity(id string) (domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.state.activities[id]
	if !ok {
		return domain.Activity{}, notFound("activity", id)
	}
	return a.Clone(), nil
}

// ActivitiesByPackage returns the package's activities in lineage order.
func (s *Store) ActivitiesByPackage(packageID string) []domain.Activity {
	var out []domain.Activity
	for _, a := range s.Activities() {
		if a.PackageID == packageID {
			out = append(out, a)
		}
	}
	return out
}

// commit persists next and swaps it in. Callers hold s.mu.
func (s *Store) commit(ctx context.Context, next state) error {
	if err := s.persister.Save(ctx, next.snapshot()); err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}
	s.state = next
	return nil
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, domain.ErrNotFound)
}

type state struct {
	packages   map[string]domain.Package
	activities map[string]domain.Activity
}

func newState() state {
	return state{
		packages:   make(map[string]domain.Package),
		activities: make(map[string]domain.Activity),
	}
}

func stateFromSnapshot(snap Snapshot) state {
	st := newState()
	for _, p := range snap.Packages {
		st.packages[p.ID] = p
	}
	for _, a := range snap.Activities {
		st.activities[a.ID] = a.Clone()
	}
	return st
}

// clone copies the maps. Values are replaced, never modified in place, so
// sharing them between the old and new state is safe.
func (st state) clone() state {
	next := state{
		packages:   make(map[string]domain.Package, len(st.packages)),
		activities: make(map[string]domain.Activity, len(st.activities)),
	}
	for k, v := range st.packages {
		next.packages[k] = v
	}
	for k, v := range st.activities {
		next.activities[k] = v
	}
	return next
}

func (st state) activityList() []domain.Activity {
	out := make([]domain.Activity, 0, len(st.activities))
	for _, a := range st.activities {
		out = append(out, a)
	}
	return out
}

func (st state) setActivities(acts []domain.Activity) {
	for _, a := range acts {
		st.activities[a.ID] = a
	}
}

func (st state) snapshot() Snapshot {
	snap := Snapshot{
		Packages:   make([]domain.Package, 0, len(st.packages)),
		Activities: make([]domain.Activity, 0, len(st.activities)),
	}
	for _, p := range st.packages {
		snap.Packages = append(snap.Packages, p)
	}
	for _, a := range st.activities {
		snap.Activities = append(snap.Activities, a.Clone())
	}
	sort.Slice(snap.Packages, func(i, j int) bool {
		pi, pj := snap.Packages[i], snap.Packages[j]
		if !pi.StartDate.Equal(pj.StartDate) {
			return pi.StartDate.Before(pj.StartDate)
		}
		return pi.ID < pj.ID
	})
	sort.Slice(snap.Activities, func(i, j int) bool {
		ai, aj := snap.Activities[i], snap.Activities[j]
		if ai.PackageID != aj.PackageID {
			return ai.PackageID < aj.PackageID
		}
		if ai.Tag != aj.Tag {
			return ai.Tag < aj.Tag
		}
		if !ai.Deadline.Equal(aj.Deadline) {
			return ai.Deadline.Before(aj.Deadline)
		}
		return ai.ID < aj.ID
	})
	return snap
}
