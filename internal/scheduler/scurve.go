package scheduler

import (
	"math"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
)

// SCurvePoint is the cumulative planned and completed share on one day.
type SCurvePoint struct {
	Day       time.Time
	Planned   float64
	Completed float64
}

// BuildSCurve samples cumulative planned vs. completed progress across the
// planned window. packageID limits the curve to one package; empty means
// the whole project. Sampling is roughly 30 points regardless of length,
// and the planned end day is always the final point.
func BuildSCurve(activities []domain.Activity, packages []domain.Package, packageID string) []SCurvePoint {
	var pkgs []domain.Package
	var acts []domain.Activity
	for _, p := range packages {
		if packageID == "" || p.ID == packageID {
			pkgs = append(pkgs, p)
		}
	}
	for _, a := range activities {
		if packageID == "" || a.PackageID == packageID {
			acts = append(acts, a)
		}
	}
	if len(pkgs) == 0 || len(acts) == 0 {
		return nil
	}

	var start, end *time.Time
	for _, p := range pkgs {
		start = minTime(start, domain.TimePtr(p.StartDate))
		end = maxTime(end, domain.TimePtr(p.EndDate))
	}
	totalDays := int(end.Sub(*start).Hours() / 24)
	if totalDays <= 0 {
		return nil
	}
	step := int(math.Max(1, math.Round(float64(totalDays)/30)))

	var points []SCurvePoint
	for i := 0; i <= totalDays; i += step {
		day := startOfDay(start.AddDate(0, 0, i))
		planned, completed := 0, 0
		for _, a := range acts {
			if !startOfDay(a.Deadline.In(day.Location())).After(day) {
				planned++
			}
			if a.Status == domain.StatusCompleted && a.EndTime != nil &&
				!startOfDay(a.EndTime.In(day.Location())).After(day) {
				completed++
			}
		}
		points = append(points, SCurvePoint{
			Day:       day,
			Planned:   percent(planned, len(acts)),
			Completed: percent(completed, len(acts)),
		})
	}

	endDay := startOfDay(*end)
	if last := points[len(points)-1]; !last.Day.Equal(endDay) {
		completed := 0
		for _, a := range acts {
			if a.Status == domain.StatusCompleted {
				completed++
			}
		}
		points = append(points, SCurvePoint{
			Day:       endDay,
			Planned:   100,
			Completed: percent(completed, len(acts)),
		})
	}
	return points
}
