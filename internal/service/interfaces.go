package service

import (
	"context"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
	"github.com/sayanitariq-techno/Tariq/internal/store"
)

// ScheduleService is the write side: packages, activities and status changes.
type ScheduleService interface {
	AddPackage(ctx context.Context, p domain.Package) (domain.Package, error)
	UpdatePackage(ctx context.Context, p domain.Package) (domain.Package, error)
	RemovePackage(ctx context.Context, id string) (int, error)
	GetPackage(ctx context.Context, id string) (domain.Package, error)
	ListPackages(ctx context.Context) ([]domain.Package, error)

	AddActivity(ctx context.Context, a domain.Activity) (store.UpsertResult, error)
	UpdateActivity(ctx context.Context, a domain.Activity) (store.UpsertResult, error)
	RemoveActivity(ctx context.Context, id string) ([]string, error)
	GetActivity(ctx context.Context, id string) (domain.Activity, error)
	// ListActivities returns every activity, or one package's when packageID is set.
	ListActivities(ctx context.Context, packageID string) ([]domain.Activity, error)

	SetStatus(ctx context.Context, id string, change scheduler.StatusChange) (domain.Activity, error)
	Retag(ctx context.Context, ids []string, tag string) (int, error)
}

// ReportService is the read side. Every call recomputes from current state.
type ReportService interface {
	Now() time.Time
	ProjectStats(ctx context.Context, asOf time.Time) (scheduler.ProjectStats, error)
	PackageMetrics(ctx context.Context, id string) (scheduler.PackageMetrics, error)
	PackageOverview(ctx context.Context, filter scheduler.PackageFilter) ([]scheduler.PackageOverview, error)
	HoldLog(ctx context.Context) ([]scheduler.HoldLogEntry, error)
	HoldSummary(ctx context.Context, now time.Time) ([]scheduler.HoldReasonSummary, error)
	SCurve(ctx context.Context, packageID string) ([]scheduler.SCurvePoint, error)
	Estimate(ctx context.Context, asOf time.Time) (scheduler.Selection, error)
	SearchActivities(ctx context.Context, query string) ([]domain.Activity, error)
}

// ImportPreview describes what an import file would do without applying it.
type ImportPreview struct {
	Packages   int
	Activities int
	Errors     []error
}

// Valid reports whether the file can be imported.
func (p *ImportPreview) Valid() bool { return len(p.Errors) == 0 }

// ImportResult holds the outcome of a bulk import.
type ImportResult struct {
	store.MergeResult
}

type ImportService interface {
	Preview(ctx context.Context, path string) (*ImportPreview, error)
	Import(ctx context.Context, path string) (*ImportResult, error)
}
