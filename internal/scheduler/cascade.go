package scheduler

import (
	"sort"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
)

// lineageLess orders activities by planned start, falling back to id so the
// order is total.
func lineageLess(a, b domain.Activity) bool {
	if !a.Deadline.Equal(b.Deadline) {
		return a.Deadline.Before(b.Deadline)
	}
	return a.ID < b.ID
}

func sortLineage(activities []domain.Activity) []domain.Activity {
	out := make([]domain.Activity, len(activities))
	copy(out, activities)
	sort.SliceStable(out, func(i, j int) bool { return lineageLess(out[i], out[j]) })
	return out
}

// Lineage returns the activities sharing (packageID, tag), ordered by
// ascending planned start.
func Lineage(activities []domain.Activity, packageID, tag string) []domain.Activity {
	var members []domain.Activity
	for _, a := range activities {
		if a.PackageID == packageID && a.Tag == tag {
			members = append(members, a)
		}
	}
	return sortLineage(members)
}

// chainFrom shifts every lineage member after index from so it starts when
// its predecessor is planned to end. Each member keeps its own duration.
func chainFrom(lineage []domain.Activity, from int) []domain.Activity {
	var shifted []domain.Activity
	for j := from + 1; j < len(lineage); j++ {
		prevEnd := lineage[j-1].PlannedEndDate
		if lineage[j].Deadline.Equal(prevEnd) {
			continue
		}
		dur := lineage[j].PlannedDuration()
		lineage[j].Deadline = prevEnd
		lineage[j].PlannedEndDate = prevEnd.Add(dur)
		shifted = append(shifted, lineage[j])
	}
	return shifted
}

// replaceByID returns a copy of activities with the updated records swapped in.
func replaceByID(activities []domain.Activity, updated []domain.Activity) []domain.Activity {
	byID := make(map[string]domain.Activity, len(updated))
	for _, u := range updated {
		byID[u.ID] = u
	}
	out := make([]domain.Activity, len(activities))
	for i, a := range activities {
		if u, ok := byID[a.ID]; ok {
			out[i] = u
			continue
		}
		out[i] = a
	}
	return out
}

// RescheduleFollowing re-plans every activity after edited in its lineage so
// the lineage forms a zero-float chain. activities must already contain the
// edited record. Only planned dates change. It returns the new collection
// and the ids of the activities that moved.
func RescheduleFollowing(activities []domain.Activity, edited domain.Activity) ([]domain.Activity, []string) {
	lineage := Lineage(activities, edited.PackageID, edited.Tag)
	pos := -1
	for i, a := range lineage {
		if a.ID == edited.ID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return activities, nil
	}
	return applyShift(activities, chainFrom(lineage, pos))
}

// RescheduleAfterRemoval closes the gap left by a removed activity: the
// remaining members after its position are chained from whichever activity
// now precedes them. activities must no longer contain removed.
func RescheduleAfterRemoval(activities []domain.Activity, removed domain.Activity) ([]domain.Activity, []string) {
	lineage := Lineage(activities, removed.PackageID, removed.Tag)
	next := sort.Search(len(lineage), func(i int) bool { return lineageLess(removed, lineage[i]) })
	if next == 0 || next >= len(lineage) {
		return activities, nil
	}
	return applyShift(activities, chainFrom(lineage, next-1))
}

func applyShift(activities []domain.Activity, shifted []domain.Activity) ([]domain.Activity, []string) {
	if len(shifted) == 0 {
		return activities, nil
	}
	ids := make([]string, len(shifted))
	for i, s := range shifted {
		ids[i] = s.ID
	}
	return replaceByID(activities, shifted), ids
}

// PackageWindow returns min(Deadline) and max(PlannedEndDate) over the
// package's activities. ok is false when the package has none.
func PackageWindow(activities []domain.Activity, packageID string) (start, end time.Time, ok bool) {
	for _, a := range activities {
		if a.PackageID != packageID {
			continue
		}
		if !ok || a.Deadline.Before(start) {
			start = a.Deadline
		}
		if !ok || a.PlannedEndDate.After(end) {
			end = a.PlannedEndDate
		}
		ok = true
	}
	return start, end, ok
}

// RecomputePackageWindow returns pkg with its planned window derived from
// its activities. Packages without activities keep their dates.
func RecomputePackageWindow(pkg domain.Package, activities []domain.Activity) domain.Package {
	if start, end, ok := PackageWindow(activities, pkg.ID); ok {
		pkg.StartDate = start
		pkg.EndDate = end
	}
	return pkg
}
