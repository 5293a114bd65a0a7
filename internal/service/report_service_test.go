package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
	"github.com/sayanitariq-techno/Tariq/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEstimator struct {
	date  time.Time
	err   error
	calls int
}

func (s *stubEstimator) Estimate(context.Context, scheduler.EstimateInput) (scheduler.Estimate, error) {
	s.calls++
	if s.err != nil {
		return scheduler.Estimate{}, s.err
	}
	return scheduler.Estimate{Date: s.date, Reasoning: "stub"}, nil
}

// completeFirst runs A1 to completion at the store clock.
func completeFirst(t *testing.T, svc ScheduleService) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.SetStatus(ctx, "A1", scheduler.StatusChange{Status: domain.StatusInProgress})
	require.NoError(t, err)
	_, err = svc.SetStatus(ctx, "A1", scheduler.StatusChange{Status: domain.StatusCompleted})
	require.NoError(t, err)
}

func TestReportService_ProjectStatsAndMetrics(t *testing.T) {
	now := day1.Add(3 * time.Hour)
	st, _ := setupStore(t, now)
	sched := NewScheduleService(st)
	seedLineage(t, sched)
	completeFirst(t, sched)
	reports := NewReportService(st)
	ctx := context.Background()

	assert.Equal(t, now, reports.Now())

	stats, err := reports.ProjectStats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalActivities)
	assert.InDelta(t, 33.33, stats.ActualProgress, 0.01)
	assert.InDelta(t, 50, stats.PlannedProgress, 0.01)
	require.Len(t, stats.Delayed, 1)
	assert.Equal(t, "A2", stats.Delayed[0].ID)

	m, err := reports.PackageMetrics(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, m.Status)
	assert.Equal(t, 1, m.CompletedCount)

	_, err = reports.PackageMetrics(ctx, "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportService_EstimateUsesExternalInBand(t *testing.T) {
	now := day1.Add(3 * time.Hour)
	st, _ := setupStore(t, now)
	sched := NewScheduleService(st)
	seedLineage(t, sched)
	completeFirst(t, sched)
	ctx := context.Background()

	ext := &stubEstimator{date: day1.Add(10 * time.Hour)}
	obs := &recordingObserver{}
	reports := NewReportService(st, WithExternalEstimator(ext, scheduler.DefaultBand), WithReportObserver(obs))

	sel, err := reports.Estimate(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, ext.calls)
	assert.Equal(t, scheduler.SourceExternal, sel.Estimate.Source)
	assert.InDelta(t, -4, sel.VarianceHours, 0.001)
	assert.Equal(t, "estimate", obs.last().Name)
	assert.Equal(t, "external", obs.last().Fields["source"])
}

func TestReportService_EstimateFallsBack(t *testing.T) {
	now := day1.Add(3 * time.Hour)
	st, _ := setupStore(t, now)
	sched := NewScheduleService(st)
	seedLineage(t, sched)
	ctx := context.Background()

	// 0% progress is outside the band: the model is never asked.
	ext := &stubEstimator{date: day1.Add(10 * time.Hour)}
	sel, err := NewReportService(st, WithExternalEstimator(ext, scheduler.DefaultBand)).Estimate(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, ext.calls)
	assert.Equal(t, scheduler.SourceFormula, sel.Estimate.Source)
	assert.NotEmpty(t, sel.FallbackReason)

	completeFirst(t, sched)
	failing := &stubEstimator{err: errors.New("model offline")}
	sel, err = NewReportService(st, WithExternalEstimator(failing, scheduler.DefaultBand)).Estimate(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, scheduler.SourceFormula, sel.Estimate.Source)
	assert.Equal(t, "model offline", sel.FallbackReason)
}

func TestReportService_EstimateEmptyProject(t *testing.T) {
	st, _ := setupStore(t, day1)
	_, err := NewReportService(st).Estimate(context.Background(), day1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportService_HoldsAndSearch(t *testing.T) {
	now := day1.Add(3 * time.Hour)
	st, _ := setupStore(t, now)
	sched := NewScheduleService(st)
	seedLineage(t, sched)
	ctx := context.Background()

	_, err := sched.SetStatus(ctx, "A1", scheduler.StatusChange{Status: domain.StatusInProgress})
	require.NoError(t, err)
	_, err = sched.SetStatus(ctx, "A1", scheduler.StatusChange{Status: domain.StatusOnHold, Reason: "Scaffold"})
	require.NoError(t, err)

	reports := NewReportService(st)
	log, err := reports.HoldLog(ctx)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, "A1", log[0].ActivityID)
	assert.True(t, log[0].Event.IsOpen())

	summary, err := reports.HoldSummary(ctx, now.Add(90*time.Minute))
	require.NoError(t, err)
	require.Len(t, summary, 1)
	assert.Equal(t, "Scaffold", summary[0].Reason)
	assert.Equal(t, 90*time.Minute, summary[0].TotalDuration)

	found, err := reports.SearchActivities(ctx, "v-1")
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

func TestReportService_SCurveAndOverview(t *testing.T) {
	st, _ := setupStore(t, day1)
	sched := NewScheduleService(st)
	ctx := context.Background()

	_, err := sched.AddPackage(ctx, testutil.NewTestPackage("Long", testutil.WithPackageID("P9"),
		testutil.WithPackageWindow(day1, day1.AddDate(0, 0, 4))))
	require.NoError(t, err)
	_, err = sched.AddActivity(ctx, testutil.NewTestActivity("P9", "Day one", testutil.WithWindow(0, 24)))
	require.NoError(t, err)
	_, err = sched.AddActivity(ctx, testutil.NewTestActivity("P9", "Day three", testutil.WithTag("X"), testutil.WithWindow(48, 72)))
	require.NoError(t, err)

	reports := NewReportService(st)
	points, err := reports.SCurve(ctx, "P9")
	require.NoError(t, err)
	require.NotEmpty(t, points)
	assert.Equal(t, 50.0, points[0].Planned)
	assert.Equal(t, 100.0, points[len(points)-1].Planned)

	_, err = reports.SCurve(ctx, "NOPE")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	overview, err := reports.PackageOverview(ctx, scheduler.PackageFilter{Status: domain.StatusNotStarted})
	require.NoError(t, err)
	require.Len(t, overview, 1)
	assert.Equal(t, "P9", overview[0].Package.ID)
}
