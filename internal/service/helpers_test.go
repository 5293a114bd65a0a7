package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/repository"
	"github.com/sayanitariq-techno/Tariq/internal/store"
	"github.com/sayanitariq-techno/Tariq/internal/testutil"
	"github.com/stretchr/testify/require"
)

var day1 = testutil.Day1

// setupStore returns a store persisted to an in-memory database, the
// snapshot store behind it, and a clock pinned to now.
func setupStore(t *testing.T, now time.Time) (*store.Store, *repository.SQLiteSnapshotStore) {
	t.Helper()
	db := testutil.NewTestDB(t)
	snaps := repository.NewSQLiteSnapshotStore(db, testutil.NewTestUoW(db))
	st := store.New(store.WithPersister(snaps), store.WithClock(store.FixedClock{T: now}))
	return st, snaps
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func seedLineage(t *testing.T, svc ScheduleService) domain.Package {
	t.Helper()
	ctx := context.Background()
	pkg, err := svc.AddPackage(ctx, testutil.NewTestPackage("Vessel V-101", testutil.WithPackageID("P1")))
	require.NoError(t, err)
	for _, a := range []domain.Activity{
		testutil.NewTestActivity("P1", "Open manway", testutil.WithActivityID("A1"), testutil.WithWindow(0, 2)),
		testutil.NewTestActivity("P1", "Inspect", testutil.WithActivityID("A2"), testutil.WithWindow(2, 5)),
		testutil.NewTestActivity("P1", "Box up", testutil.WithActivityID("A3"), testutil.WithWindow(5, 6)),
	} {
		_, err := svc.AddActivity(ctx, a)
		require.NoError(t, err)
	}
	return pkg
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}
