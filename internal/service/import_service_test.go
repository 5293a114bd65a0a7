package service

import (
	"context"
	"testing"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validImport = `packages:
  - package_id: PKG-01
    package_name: Column C-201
    priority: High
    planned_start_date: "2025-03-01 08:00"
    planned_end_date: "2025-03-03 18:00"
activities:
  - activity_id: ACT-01
    package_id: PKG-01
    equipment_tag: C-201
    activity_title: Remove trays
    priority: High
    planned_start_date: "2025-03-01 08:00"
    planned_end_date: "2025-03-01 16:00"
  - activity_id: ACT-02
    package_id: PKG-01
    equipment_tag: C-201
    activity_title: Inspect shell
    priority: Medium
    planned_start_date: 45717.5
    planned_end_date: 45718.5
`

const brokenImport = `packages:
  - package_id: PKG-01
    package_name: Column C-201
    priority: Urgent
    planned_start_date: "2025-03-01 08:00"
    planned_end_date: "2025-03-03 18:00"
activities:
  - activity_id: ACT-01
    package_id: PKG-404
    equipment_tag: C-201
    activity_title: Remove trays
    priority: High
    planned_start_date: "2025-03-01 08:00"
    planned_end_date: "2025-03-01 16:00"
`

func TestImportService_ImportMergesAndPersists(t *testing.T) {
	st, snaps := setupStore(t, day1)
	obs := &recordingObserver{}
	svc := NewImportService(st, obs)
	ctx := context.Background()

	path := writeFile(t, "turnaround.yaml", validImport)
	preview, err := svc.Preview(ctx, path)
	require.NoError(t, err)
	assert.True(t, preview.Valid())
	assert.Equal(t, 1, preview.Packages)
	assert.Equal(t, 2, preview.Activities)

	res, err := svc.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.PackagesAdded)
	assert.Equal(t, 2, res.ActivitiesAdded)
	assert.Equal(t, "import", obs.last().Name)
	assert.True(t, obs.last().Success)

	snap, err := snaps.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Packages, 1)
	assert.Len(t, snap.Activities, 2)

	// Same file again updates in place.
	res, err = svc.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.PackagesUpdated)
	assert.Equal(t, 2, res.ActivitiesUpdated)
	assert.Len(t, st.Activities(), 2)
}

func TestImportService_PreviewListsErrors(t *testing.T) {
	st, _ := setupStore(t, day1)
	svc := NewImportService(st)

	preview, err := svc.Preview(context.Background(), writeFile(t, "broken.yaml", brokenImport))
	require.NoError(t, err)
	assert.False(t, preview.Valid())
	assert.Len(t, preview.Errors, 2)
}

func TestImportService_ImportBlockedByValidation(t *testing.T) {
	st, _ := setupStore(t, day1)
	obs := &recordingObserver{}
	svc := NewImportService(st, obs)

	_, err := svc.Import(context.Background(), writeFile(t, "broken.yaml", brokenImport))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "Package ID 'PKG-404' not found")

	assert.ErrorIs(t, err, domain.ErrValidation)

	errs := ValidationErrors(err)
	assert.Len(t, errs, 2)
	assert.False(t, obs.last().Success)
	assert.Empty(t, st.Packages())
}

func TestImportService_ActivitiesMayTargetStoredPackages(t *testing.T) {
	st, _ := setupStore(t, day1)
	sched := NewScheduleService(st)
	seedLineage(t, sched)
	svc := NewImportService(st)

	body := `activities:
  - activity_id: ACT-09
    package_id: P1
    equipment_tag: V-102
    activity_title: Blind flange
    priority: Low
    planned_start_date: "2025-03-01 09:00"
    planned_end_date: "2025-03-01 10:00"
`
	res, err := svc.Import(context.Background(), writeFile(t, "extra.yml", body))
	require.NoError(t, err)
	assert.Equal(t, 1, res.ActivitiesAdded)
	assert.Len(t, st.ActivitiesByPackage("P1"), 4)
}

func TestImportService_UnsupportedFile(t *testing.T) {
	st, _ := setupStore(t, day1)
	_, err := NewImportService(st).Preview(context.Background(), writeFile(t, "data.csv", "a,b"))
	assert.ErrorContains(t, err, "unsupported import file")
}
