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

func TestPackageRepo_UpsertAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePackageRepo(db)
	ctx := context.Background()

	pkg := testutil.NewTestPackage("Boiler B-2", testutil.WithSupervisor("Okafor"))
	require.NoError(t, repo.Upsert(ctx, pkg))

	fetched, err := repo.GetByID(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, pkg.Name, fetched.Name)
	assert.Equal(t, "Okafor", fetched.Supervisor)
	assert.True(t, pkg.StartDate.Equal(fetched.StartDate))
	assert.True(t, pkg.EndDate.Equal(fetched.EndDate))
}

func TestPackageRepo_UpsertUpdatesExisting(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePackageRepo(db)
	ctx := context.Background()

	pkg := testutil.NewTestPackage("Boiler")
	require.NoError(t, repo.Upsert(ctx, pkg))

	pkg.Name = "Boiler B-2"
	pkg.Priority = domain.PriorityHigh
	require.NoError(t, repo.Upsert(ctx, pkg))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Boiler B-2", list[0].Name)
	assert.Equal(t, domain.PriorityHigh, list[0].Priority)
}

func TestPackageRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePackageRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPackageRepo_ListOrdersByStart(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLitePackageRepo(db)
	ctx := context.Background()

	late := testutil.NewTestPackage("Late", testutil.WithPackageWindow(
		testutil.Day1.Add(48*time.Hour), testutil.Day1.Add(72*time.Hour)))
	early := testutil.NewTestPackage("Early")
	require.NoError(t, repo.Upsert(ctx, late))
	require.NoError(t, repo.Upsert(ctx, early))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Early", list[0].Name)
	assert.Equal(t, "Late", list[1].Name)
}

func TestPackageRepo_DeleteCascadesToActivities(t *testing.T) {
	db := testutil.NewTestDB(t)
	pkgRepo := NewSQLitePackageRepo(db)
	actRepo := NewSQLiteActivityRepo(db)
	ctx := context.Background()

	pkg := testutil.NewTestPackage("Boiler")
	require.NoError(t, pkgRepo.Upsert(ctx, pkg))
	require.NoError(t, actRepo.Upsert(ctx, testutil.NewTestActivity(pkg.ID, "Blind flange")))

	require.NoError(t, pkgRepo.Delete(ctx, pkg.ID))

	acts, err := actRepo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, acts)
}
