package scheduler

import (
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
)

// ProjectStats is the whole-project view derived from the current
// packages and activities at a given instant.
type ProjectStats struct {
	AsOf            time.Time
	TotalActivities int

	// ActualProgress and PlannedProgress are percentages in [0, 100].
	ActualProgress  float64
	PlannedProgress float64

	// PlannedStart and PlannedEnd span all packages' windows.
	// Nil when there are no packages.
	PlannedStart *time.Time
	PlannedEnd   *time.Time

	// Buckets overlap: a delayed activity may also be on track.
	Completed []domain.Activity
	Delayed   []domain.Activity
	OnTrack   []domain.Activity
	Upcoming  []domain.Activity

	ActualStartDate       *time.Time
	EstimatedEndDate      *time.Time
	ScheduleVarianceHours float64
}

// PackageMetrics is the derived view of one package.
type PackageMetrics struct {
	PackageID       string
	Status          domain.ActivityStatus
	Progress        float64
	CompletedCount  int
	Total           int
	ActualStartDate *time.Time
	// ActualEndDate is set only once every activity is completed.
	ActualEndDate *time.Time
}

// ClassifyPackageStatus derives a package status from its activities:
// all completed => Completed; any on hold => On Hold; any in progress or
// any completed => In Progress; otherwise Not Started.
func ClassifyPackageStatus(activities []domain.Activity) domain.ActivityStatus {
	if len(activities) == 0 {
		return domain.StatusNotStarted
	}
	completed, onHold, inProgress := 0, false, false
	for _, a := range activities {
		switch a.Status {
		case domain.StatusCompleted:
			completed++
		case domain.StatusOnHold:
			onHold = true
		case domain.StatusInProgress:
			inProgress = true
		}
	}
	switch {
	case completed == len(activities):
		return domain.StatusCompleted
	case onHold:
		return domain.StatusOnHold
	case inProgress || completed > 0:
		return domain.StatusInProgress
	default:
		return domain.StatusNotStarted
	}
}

// ComputePackageMetrics derives status, progress and actual dates for one
// package. pkgActivities must be the package's activities.
func ComputePackageMetrics(pkg domain.Package, pkgActivities []domain.Activity) PackageMetrics {
	m := PackageMetrics{
		PackageID: pkg.ID,
		Status:    ClassifyPackageStatus(pkgActivities),
		Total:     len(pkgActivities),
	}
	if m.Total == 0 {
		return m
	}

	var latestEnd *time.Time
	for _, a := range pkgActivities {
		m.ActualStartDate = minTime(m.ActualStartDate, a.StartTime)
		if a.Status == domain.StatusCompleted {
			m.CompletedCount++
			latestEnd = maxTime(latestEnd, a.EndTime)
		}
	}
	m.Progress = percent(m.CompletedCount, m.Total)
	if m.CompletedCount == m.Total {
		m.ActualEndDate = latestEnd
	}
	return m
}

// ComputeProjectStats derives project-level progress, buckets, estimate and
// variance. Nothing is cached: every call recomputes from its inputs.
func ComputeProjectStats(activities []domain.Activity, packages []domain.Package, asOf time.Time) ProjectStats {
	stats := ProjectStats{AsOf: asOf, TotalActivities: len(activities)}
	if len(activities) == 0 {
		return stats
	}

	asOfDay := startOfDay(asOf)
	var latestCompletedEnd *time.Time
	for _, a := range activities {
		switch a.Status {
		case domain.StatusCompleted:
			stats.Completed = append(stats.Completed, a)
			latestCompletedEnd = maxTime(latestCompletedEnd, a.EndTime)
		case domain.StatusInProgress, domain.StatusOnHold:
			stats.OnTrack = append(stats.OnTrack, a)
		case domain.StatusNotStarted:
			if !startOfDay(a.Deadline.In(asOf.Location())).Before(asOfDay) {
				stats.Upcoming = append(stats.Upcoming, a)
			}
		}
		if a.Status != domain.StatusCompleted && a.Deadline.Before(asOf) {
			stats.Delayed = append(stats.Delayed, a)
		}
		stats.ActualStartDate = minTime(stats.ActualStartDate, a.StartTime)
	}

	stats.ActualProgress = percent(len(stats.Completed), len(activities))

	// Without packages there is no planned window to measure against.
	if len(packages) == 0 {
		return stats
	}
	for _, p := range packages {
		stats.PlannedStart = minTime(stats.PlannedStart, domain.TimePtr(p.StartDate))
		stats.PlannedEnd = maxTime(stats.PlannedEnd, domain.TimePtr(p.EndDate))
	}
	stats.PlannedProgress = plannedProgress(*stats.PlannedStart, *stats.PlannedEnd, asOf)

	est := FormulaEstimate(FormulaInput{
		ActualProgress:   stats.ActualProgress,
		ActualStartDate:  stats.ActualStartDate,
		LatestCompletion: latestCompletedEnd,
		PlannedStart:     *stats.PlannedStart,
		PlannedEnd:       *stats.PlannedEnd,
		AsOf:             asOf,
	})
	stats.EstimatedEndDate = &est
	stats.ScheduleVarianceHours = VarianceHours(*stats.PlannedEnd, est)
	return stats
}

// plannedProgress is the share of the planned window elapsed at asOf,
// clamped to [0, 100]. A degenerate window is 100 once passed, else 0.
func plannedProgress(start, end, asOf time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		if asOf.After(end) {
			return 100
		}
		return 0
	}
	return clamp(float64(asOf.Sub(start))/float64(total)*100, 0, 100)
}

// VarianceHours is planned end minus estimated end in hours; positive means
// ahead of schedule.
func VarianceHours(plannedEnd, estimated time.Time) float64 {
	return plannedEnd.Sub(estimated).Hours()
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func minTime(cur, candidate *time.Time) *time.Time {
	if candidate == nil {
		return cur
	}
	if cur == nil || candidate.Before(*cur) {
		return domain.TimePtr(*candidate)
	}
	return cur
}

func maxTime(cur, candidate *time.Time) *time.Time {
	if candidate == nil {
		return cur
	}
	if cur == nil || candidate.After(*cur) {
		return domain.TimePtr(*candidate)
	}
	return cur
}
