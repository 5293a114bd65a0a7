package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
)

// UpsertResult reports what an activity upsert changed.
type UpsertResult struct {
	Activity domain.Activity
	Created  bool
	// Rescheduled lists the lineage members whose planned window moved.
	Rescheduled []string
	Package     domain.Package
}

// MergeResult counts the records a bulk merge inserted or replaced.
type MergeResult struct {
	PackagesAdded     int
	PackagesUpdated   int
	ActivitiesAdded   int
	ActivitiesUpdated int
}

// SetActivityStatus applies a status transition using the store clock.
// On any error the state is left untouched.
func (s *Store) SetActivityStatus(ctx context.Context, id string, change scheduler.StatusChange) (domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.state.activities[id]
	if !ok {
		return domain.Activity{}, notFound("activity", id)
	}
	lineage := scheduler.Lineage(s.state.activityList(), a.PackageID, a.Tag)
	updated, err := scheduler.ApplyStatus(a, lineage, change, s.clock.Now())
	if err != nil {
		return domain.Activity{}, err
	}

	next := s.state.clone()
	next.activities[id] = updated
	if err := s.commit(ctx, next); err != nil {
		return domain.Activity{}, err
	}
	return updated.Clone(), nil
}

// UpsertActivity creates or replaces an activity, re-plans the rest of its
// lineage and re-derives the package window. Moving an activity to another
// package or tag also closes the gap it leaves behind.
func (s *Store) UpsertActivity(ctx context.Context, a domain.Activity) (UpsertResult, error) {
	if a.Status == "" {
		a.Status = domain.StatusNotStarted
	}
	if err := a.Validate(); err != nil {
		return UpsertResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.packages[a.PackageID]; !ok {
		return UpsertResult{}, notFound("package", a.PackageID)
	}

	next := s.state.clone()
	prev, existed := next.activities[a.ID]
	a = a.Clone()
	next.activities[a.ID] = a

	res := UpsertResult{Created: !existed}
	if existed && (prev.PackageID != a.PackageID || prev.Tag != a.Tag) {
		acts, moved := scheduler.RescheduleAfterRemoval(next.activityList(), prev)
		next.setActivities(acts)
		res.Rescheduled = append(res.Rescheduled, moved...)
		if p, ok := next.packages[prev.PackageID]; ok {
			next.packages[prev.PackageID] = scheduler.RecomputePackageWindow(p, next.activityList())
		}
	}

	acts, moved := scheduler.RescheduleFollowing(next.activityList(), a)
	next.setActivities(acts)
	res.Rescheduled = append(res.Rescheduled, moved...)

	pkg := scheduler.RecomputePackageWindow(next.packages[a.PackageID], next.activityList())
	next.packages[a.PackageID] = pkg

	if err := s.commit(ctx, next); err != nil {
		return UpsertResult{}, err
	}
	res.Activity = next.activities[a.ID].Clone()
	res.Package = pkg
	return res, nil
}

// DeleteActivity removes an activity, re-chains the remaining lineage and
// re-derives the package window.
func (s *Store) DeleteActivity(ctx context.Context, id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, ok := s.state.activities[id]
	if !ok {
		return nil, notFound("activity", id)
	}

	next := s.state.clone()
	delete(next.activities, id)
	acts, moved := scheduler.RescheduleAfterRemoval(next.activityList(), removed)
	next.setActivities(acts)
	if p, ok := next.packages[removed.PackageID]; ok {
		next.packages[removed.PackageID] = scheduler.RecomputePackageWindow(p, next.activityList())
	}

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return moved, nil
}

// UpsertPackage creates or replaces a package. When the package already has
// activities its window stays derived from them.
func (s *Store) UpsertPackage(ctx context.Context, p domain.Package) (domain.Package, error) {
	if err := p.Validate(); err != nil {
		return domain.Package{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	p = scheduler.RecomputePackageWindow(p, next.activityList())
	next.packages[p.ID] = p
	if err := s.commit(ctx, next); err != nil {
		return domain.Package{}, err
	}
	return p, nil
}

// DeletePackage removes a package and every activity that references it.
// It returns the number of activities removed.
func (s *Store) DeletePackage(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.packages[id]; !ok {
		return 0, notFound("package", id)
	}

	next := s.state.clone()
	delete(next.packages, id)
	removed := 0
	for aid, a := range next.activities {
		if a.PackageID == id {
			delete(next.activities, aid)
			removed++
		}
	}
	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}
	return removed, nil
}

// BulkMerge upserts packages and activities by id. Records are taken as
// given: no rescheduling and no window derivation. Every record is
// validated first and the merge is all-or-nothing.
func (s *Store) BulkMerge(ctx context.Context, packages []domain.Package, activities []domain.Activity) (MergeResult, error) {
	activities = append([]domain.Activity(nil), activities...)
	var errs []error
	for i := range packages {
		if err := packages[i].Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for i := range activities {
		if activities[i].Status == "" {
			activities[i].Status = domain.StatusNotStarted
		}
		if err := activities[i].Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return MergeResult{}, errors.Join(errs...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	var res MergeResult
	for _, p := range packages {
		if _, ok := next.packages[p.ID]; ok {
			res.PackagesUpdated++
		} else {
			res.PackagesAdded++
		}
		next.packages[p.ID] = p
	}
	for _, a := range activities {
		if _, ok := next.packages[a.PackageID]; !ok {
			errs = append(errs, fmt.Errorf("activity %s: %w", a.ID, notFound("package", a.PackageID)))
			continue
		}
		if _, ok := next.activities[a.ID]; ok {
			res.ActivitiesUpdated++
		} else {
			res.ActivitiesAdded++
		}
		next.activities[a.ID] = a.Clone()
	}
	if len(errs) > 0 {
		return MergeResult{}, errors.Join(errs...)
	}

	if err := s.commit(ctx, next); err != nil {
		return MergeResult{}, err
	}
	return res, nil
}

// RetagActivities moves the given activities to another tag. Planned dates
// are kept as they are.
func (s *Store) RetagActivities(ctx context.Context, ids []string, tag string) (int, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return 0, fmt.Errorf("%w: tag is required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	for _, id := range ids {
		a, ok := next.activities[id]
		if !ok {
			return 0, notFound("activity", id)
		}
		a = a.Clone()
		a.Tag = tag
		next.activities[id] = a
	}
	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}
	return len(ids), nil
}
