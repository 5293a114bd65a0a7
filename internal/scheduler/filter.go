package scheduler

import (
	"sort"
	"strings"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
)

// SearchByTag returns activities whose tag contains query, case-insensitively,
// ordered by tag and then planned start. An empty query matches nothing.
func SearchByTag(activities []domain.Activity, query string) []domain.Activity {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []domain.Activity
	for _, a := range activities {
		if strings.Contains(strings.ToLower(a.Tag), q) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Tag != out[j].Tag {
			return out[i].Tag < out[j].Tag
		}
		return lineageLess(out[i], out[j])
	})
	return out
}

// PackageFilter narrows a package listing. Zero values match everything.
type PackageFilter struct {
	Name     string
	Status   domain.ActivityStatus
	Priority domain.Priority
}

// PackageOverview pairs a package with its derived metrics.
type PackageOverview struct {
	Package domain.Package
	Metrics PackageMetrics
}

// FilterPackages derives each package's metrics and keeps those matching f.
// Name matching is a case-insensitive substring test.
func FilterPackages(packages []domain.Package, activities []domain.Activity, f PackageFilter) []PackageOverview {
	byPackage := make(map[string][]domain.Activity)
	for _, a := range activities {
		byPackage[a.PackageID] = append(byPackage[a.PackageID], a)
	}

	name := strings.ToLower(strings.TrimSpace(f.Name))
	var out []PackageOverview
	for _, p := range packages {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if f.Priority != "" && p.Priority != f.Priority {
			continue
		}
		m := ComputePackageMetrics(p, byPackage[p.ID])
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		out = append(out, PackageOverview{Package: p, Metrics: m})
	}
	return out
}
