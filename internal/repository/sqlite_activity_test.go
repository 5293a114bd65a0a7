package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPackage(t *testing.T, repo *SQLitePackageRepo, name string) domain.Package {
	t.Helper()
	pkg := testutil.NewTestPackage(name)
	require.NoError(t, repo.Upsert(context.Background(), pkg))
	return pkg
}

func TestActivityRepo_RoundTripWithHolds(t *testing.T) {
	db := testutil.NewTestDB(t)
	pkg := seedPackage(t, NewSQLitePackageRepo(db), "Boiler")
	repo := NewSQLiteActivityRepo(db)
	ctx := context.Background()

	closedAt := testutil.Day1.Add(90 * time.Minute)
	updated := testutil.Day1.Add(2*time.Hour + 123*time.Millisecond)
	act := testutil.NewTestActivity(pkg.ID, "Hydrotest",
		testutil.WithStatus(domain.StatusOnHold),
		testutil.WithActual(testutil.Day1, nil),
		testutil.WithHolds(
			domain.HoldEvent{Reason: "Scaffold", StartTime: testutil.Day1.Add(time.Hour), EndTime: &closedAt},
			domain.HoldEvent{Reason: "Permit", Remarks: "awaiting hot work", StartTime: testutil.Day1.Add(2 * time.Hour)},
		),
	)
	act.StatusUpdatedAt = &updated
	require.NoError(t, repo.Upsert(ctx, act))

	fetched, err := repo.GetByID(ctx, act.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOnHold, fetched.Status)
	require.NotNil(t, fetched.StartTime)
	assert.True(t, testutil.Day1.Equal(*fetched.StartTime))
	assert.Nil(t, fetched.EndTime)
	require.NotNil(t, fetched.StatusUpdatedAt)
	assert.True(t, updated.Equal(*fetched.StatusUpdatedAt), "sub-second precision should survive")

	require.Len(t, fetched.HoldHistory, 2)
	assert.Equal(t, "Scaffold", fetched.HoldHistory[0].Reason)
	require.NotNil(t, fetched.HoldHistory[0].EndTime)
	assert.True(t, closedAt.Equal(*fetched.HoldHistory[0].EndTime))
	assert.Equal(t, "Permit", fetched.HoldHistory[1].Reason)
	assert.Equal(t, "awaiting hot work", fetched.HoldHistory[1].Remarks)
	assert.True(t, fetched.HoldHistory[1].IsOpen())
}

func TestActivityRepo_UpsertReplacesHolds(t *testing.T) {
	db := testutil.NewTestDB(t)
	pkg := seedPackage(t, NewSQLitePackageRepo(db), "Boiler")
	repo := NewSQLiteActivityRepo(db)
	ctx := context.Background()

	act := testutil.NewTestActivity(pkg.ID, "Hydrotest",
		testutil.WithHolds(domain.HoldEvent{Reason: "Scaffold", StartTime: testutil.Day1}))
	require.NoError(t, repo.Upsert(ctx, act))

	act.HoldHistory = nil
	act.Status = domain.StatusNotStarted
	require.NoError(t, repo.Upsert(ctx, act))

	fetched, err := repo.GetByID(ctx, act.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.HoldHistory)
}

func TestActivityRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteActivityRepo(db)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivityRepo_UnknownPackageRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteActivityRepo(db)

	err := repo.Upsert(context.Background(), testutil.NewTestActivity("missing", "Orphan"))
	assert.Error(t, err, "foreign key should reject unknown package")
}

func TestActivityRepo_ListByPackage(t *testing.T) {
	db := testutil.NewTestDB(t)
	pkgRepo := NewSQLitePackageRepo(db)
	p1 := seedPackage(t, pkgRepo, "Boiler")
	p2 := seedPackage(t, pkgRepo, "Exchanger")
	repo := NewSQLiteActivityRepo(db)
	ctx := context.Background()

	second := testutil.NewTestActivity(p1.ID, "Box up", testutil.WithWindow(2, 4))
	first := testutil.NewTestActivity(p1.ID, "Open", testutil.WithWindow(0, 2),
		testutil.WithHolds(domain.HoldEvent{Reason: "Crane", StartTime: testutil.Day1}))
	other := testutil.NewTestActivity(p2.ID, "Retube",
		testutil.WithHolds(domain.HoldEvent{Reason: "Material", StartTime: testutil.Day1}))
	for _, a := range []domain.Activity{second, first, other} {
		require.NoError(t, repo.Upsert(ctx, a))
	}

	acts, err := repo.ListByPackage(ctx, p1.ID)
	require.NoError(t, err)
	require.Len(t, acts, 2)
	assert.Equal(t, "Open", acts[0].Title)
	assert.Equal(t, "Box up", acts[1].Title)
	require.Len(t, acts[0].HoldHistory, 1)
	assert.Equal(t, "Crane", acts[0].HoldHistory[0].Reason)
	assert.Empty(t, acts[1].HoldHistory)
}

func TestActivityRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	pkg := seedPackage(t, NewSQLitePackageRepo(db), "Boiler")
	repo := NewSQLiteActivityRepo(db)
	ctx := context.Background()

	act := testutil.NewTestActivity(pkg.ID, "Open",
		testutil.WithHolds(domain.HoldEvent{Reason: "Crane", StartTime: testutil.Day1}))
	require.NoError(t, repo.Upsert(ctx, act))
	require.NoError(t, repo.Delete(ctx, act.ID))

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	var holds int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM hold_events`).Scan(&holds))
	assert.Equal(t, 0, holds)
}
