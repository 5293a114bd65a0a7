package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/sayanitariq-techno/Tariq/internal/domain"
)

// Day1 is the planned start used by fixtures unless overridden.
var Day1 = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

// Package options
type PackageOption func(*domain.Package)

func WithPackageID(id string) PackageOption {
	return func(p *domain.Package) {
		p.ID = id
	}
}

func WithPackageWindow(start, end time.Time) PackageOption {
	return func(p *domain.Package) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithPackagePriority(pr domain.Priority) PackageOption {
	return func(p *domain.Package) {
		p.Priority = pr
	}
}

func WithSupervisor(name string) PackageOption {
	return func(p *domain.Package) {
		p.Supervisor = name
	}
}

func NewTestPackage(name string, opts ...PackageOption) domain.Package {
	p := domain.Package{
		ID:        uuid.New().String(),
		Name:      name,
		Priority:  domain.PriorityMedium,
		StartDate: Day1,
		EndDate:   Day1.Add(24 * time.Hour),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Activity options
type ActivityOption func(*domain.Activity)

func WithActivityID(id string) ActivityOption {
	return func(a *domain.Activity) {
		a.ID = id
	}
}

func WithTag(tag string) ActivityOption {
	return func(a *domain.Activity) {
		a.Tag = tag
	}
}

// WithWindow sets the planned window as hour offsets from Day1.
func WithWindow(startHour, endHour int) ActivityOption {
	return func(a *domain.Activity) {
		a.Deadline = Day1.Add(time.Duration(startHour) * time.Hour)
		a.PlannedEndDate = Day1.Add(time.Duration(endHour) * time.Hour)
	}
}

func WithStatus(s domain.ActivityStatus) ActivityOption {
	return func(a *domain.Activity) {
		a.Status = s
	}
}

func WithActual(start time.Time, end *time.Time) ActivityOption {
	return func(a *domain.Activity) {
		a.StartTime = &start
		a.EndTime = end
	}
}

func WithHolds(holds ...domain.HoldEvent) ActivityOption {
	return func(a *domain.Activity) {
		a.HoldHistory = holds
	}
}

func WithAssignee(name string) ActivityOption {
	return func(a *domain.Activity) {
		a.Assignee = name
	}
}

func NewTestActivity(packageID, title string, opts ...ActivityOption) domain.Activity {
	a := domain.Activity{
		ID:             uuid.New().String(),
		Title:          title,
		PackageID:      packageID,
		Tag:            "V-101",
		Priority:       domain.PriorityMedium,
		Status:         domain.StatusNotStarted,
		Deadline:       Day1,
		PlannedEndDate: Day1.Add(2 * time.Hour),
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}
