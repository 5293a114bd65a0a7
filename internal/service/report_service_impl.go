package service

import (
	"context"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
	"github.com/sayanitariq-techno/Tariq/internal/store"
)

type reportService struct {
	store    *store.Store
	external scheduler.EndDateEstimator
	band     scheduler.Band
	observer UseCaseObserver
}

// ReportOption configures the report service.
type ReportOption func(*reportService)

// WithExternalEstimator enables model-backed end-date estimates inside band.
func WithExternalEstimator(e scheduler.EndDateEstimator, band scheduler.Band) ReportOption {
	return func(s *reportService) {
		s.external = e
		s.band = band
	}
}

// WithReportObserver records Estimate calls, the only report that may do I/O.
func WithReportObserver(o UseCaseObserver) ReportOption {
	return func(s *reportService) {
		if o != nil {
			s.observer = o
		}
	}
}

func NewReportService(st *store.Store, opts ...ReportOption) ReportService {
	s := &reportService{store: st, band: scheduler.DefaultBand, observer: NoopUseCaseObserver{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now is the store clock, which may be pinned for simulation.
func (s *reportService) Now() time.Time {
	return s.store.Now()
}

func (s *reportService) ProjectStats(_ context.Context, asOf time.Time) (scheduler.ProjectStats, error) {
	snap := s.store.Snapshot()
	return scheduler.ComputeProjectStats(snap.Activities, snap.Packages, asOf), nil
}

func (s *reportService) PackageMetrics(_ context.Context, id string) (scheduler.PackageMetrics, error) {
	pkg, err := s.store.Package(id)
	if err != nil {
		return scheduler.PackageMetrics{}, err
	}
	return scheduler.ComputePackageMetrics(pkg, s.store.ActivitiesByPackage(id)), nil
}

func (s *reportService) PackageOverview(_ context.Context, filter scheduler.PackageFilter) ([]scheduler.PackageOverview, error) {
	snap := s.store.Snapshot()
	return scheduler.FilterPackages(snap.Packages, snap.Activities, filter), nil
}

func (s *reportService) HoldLog(context.Context) ([]scheduler.HoldLogEntry, error) {
	return scheduler.BuildHoldLog(s.store.Activities()), nil
}

func (s *reportService) HoldSummary(_ context.Context, now time.Time) ([]scheduler.HoldReasonSummary, error) {
	return scheduler.SummarizeHoldReasons(s.store.Activities(), now), nil
}

func (s *reportService) SCurve(_ context.Context, packageID string) ([]scheduler.SCurvePoint, error) {
	if packageID != "" {
		if _, err := s.store.Package(packageID); err != nil {
			return nil, err
		}
	}
	snap := s.store.Snapshot()
	return scheduler.BuildSCurve(snap.Activities, snap.Packages, packageID), nil
}

func (s *reportService) Estimate(ctx context.Context, asOf time.Time) (sel scheduler.Selection, err error) {
	fields := map[string]any{"external": s.external != nil}
	defer observe(ctx, s.observer, "estimate", fields, time.Now().UTC(), &err)

	snap := s.store.Snapshot()
	in := scheduler.EstimateInput{
		Packages:   snap.Packages,
		Activities: snap.Activities,
		AsOf:       asOf,
		Stats:      scheduler.ComputeProjectStats(snap.Activities, snap.Packages, asOf),
	}
	sel, err = scheduler.SelectEstimate(ctx, in, s.external, s.band)
	fields["source"] = string(sel.Estimate.Source)
	if sel.FallbackReason != "" {
		fields["fallback"] = sel.FallbackReason
	}
	return sel, err
}

func (s *reportService) SearchActivities(_ context.Context, query string) ([]domain.Activity, error) {
	return scheduler.SearchByTag(s.store.Activities(), query), nil
}
