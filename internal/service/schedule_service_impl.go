package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
	"github.com/sayanitariq-techno/Tariq/internal/store"
)

type scheduleService struct {
	store    *store.Store
	observer UseCaseObserver
}

func NewScheduleService(st *store.Store, observers ...UseCaseObserver) ScheduleService {
	return &scheduleService{store: st, observer: useCaseObserverOrNoop(observers)}
}

// newID returns a short readable id such as "PKG-1A2B3C4D".
func newID(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.New().String()[:8])
}

func (s *scheduleService) AddPackage(ctx context.Context, p domain.Package) (_ domain.Package, err error) {
	if strings.TrimSpace(p.ID) == "" {
		p.ID = newID("PKG")
	}
	defer observe(ctx, s.observer, "add-package", map[string]any{"package": p.ID}, time.Now().UTC(), &err)

	if _, lookupErr := s.store.Package(p.ID); lookupErr == nil {
		return domain.Package{}, fmt.Errorf("%w: package %q already exists", domain.ErrValidation, p.ID)
	}
	return s.store.UpsertPackage(ctx, p)
}

func (s *scheduleService) UpdatePackage(ctx context.Context, p domain.Package) (_ domain.Package, err error) {
	defer observe(ctx, s.observer, "update-package", map[string]any{"package": p.ID}, time.Now().UTC(), &err)

	if _, err = s.store.Package(p.ID); err != nil {
		return domain.Package{}, err
	}
	return s.store.UpsertPackage(ctx, p)
}

func (s *scheduleService) RemovePackage(ctx context.Context, id string) (removed int, err error) {
	fields := map[string]any{"package": id}
	defer observe(ctx, s.observer, "remove-package", fields, time.Now().UTC(), &err)

	removed, err = s.store.DeletePackage(ctx, id)
	fields["activities_removed"] = removed
	return removed, err
}

func (s *scheduleService) GetPackage(_ context.Context, id string) (domain.Package, error) {
	return s.store.Package(id)
}

func (s *scheduleService) ListPackages(context.Context) ([]domain.Package, error) {
	return s.store.Packages(), nil
}

func (s *scheduleService) AddActivity(ctx context.Context, a domain.Activity) (res store.UpsertResult, err error) {
	if strings.TrimSpace(a.ID) == "" {
		a.ID = newID("ACT")
	}
	fields := map[string]any{"activity": a.ID, "package": a.PackageID}
	defer observe(ctx, s.observer, "add-activity", fields, time.Now().UTC(), &err)

	if _, lookupErr := s.store.Activity(a.ID); lookupErr == nil {
		return store.UpsertResult{}, fmt.Errorf("%w: activity %q already exists", domain.ErrValidation, a.ID)
	}
	res, err = s.store.UpsertActivity(ctx, a)
	fields["rescheduled"] = len(res.Rescheduled)
	return res, err
}

func (s *scheduleService) UpdateActivity(ctx context.Context, a domain.Activity) (res store.UpsertResult, err error) {
	fields := map[string]any{"activity": a.ID, "package": a.PackageID}
	defer observe(ctx, s.observer, "update-activity", fields, time.Now().UTC(), &err)

	if _, err = s.store.Activity(a.ID); err != nil {
		return store.UpsertResult{}, err
	}
	res, err = s.store.UpsertActivity(ctx, a)
	fields["rescheduled"] = len(res.Rescheduled)
	return res, err
}

func (s *scheduleService) RemoveActivity(ctx context.Context, id string) (moved []string, err error) {
	fields := map[string]any{"activity": id}
	defer observe(ctx, s.observer, "remove-activity", fields, time.Now().UTC(), &err)

	moved, err = s.store.DeleteActivity(ctx, id)
	fields["rescheduled"] = len(moved)
	return moved, err
}

func (s *scheduleService) GetActivity(_ context.Context, id string) (domain.Activity, error) {
	return s.store.Activity(id)
}

func (s *scheduleService) ListActivities(_ context.Context, packageID string) ([]domain.Activity, error) {
	if packageID == "" {
		return s.store.Activities(), nil
	}
	if _, err := s.store.Package(packageID); err != nil {
		return nil, err
	}
	return s.store.ActivitiesByPackage(packageID), nil
}

func (s *scheduleService) SetStatus(ctx context.Context, id string, change scheduler.StatusChange) (_ domain.Activity, err error) {
	fields := map[string]any{"activity": id, "status": string(change.Status)}
	if change.Reason != "" {
		fields["reason"] = change.Reason
	}
	defer observe(ctx, s.observer, "set-status", fields, time.Now().UTC(), &err)

	return s.store.SetActivityStatus(ctx, id, change)
}

func (s *scheduleService) Retag(ctx context.Context, ids []string, tag string) (n int, err error) {
	defer observe(ctx, s.observer, "retag", map[string]any{"count": len(ids), "tag": tag}, time.Now().UTC(), &err)

	return s.store.RetagActivities(ctx, ids, tag)
}
