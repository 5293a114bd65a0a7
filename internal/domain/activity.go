package domain

import (
	"fmt"
	"strings"
	"time"
)

// HoldEvent is one pause interval. EndTime is nil while the hold is open.
type HoldEvent struct {
	Reason    string
	Remarks   string
	StartTime time.Time
	EndTime   *time.Time
}

// IsOpen reports whether the hold has not been closed yet.
func (h HoldEvent) IsOpen() bool {
	return h.EndTime == nil
}

// Duration returns the hold length, measuring open holds up to now.
func (h HoldEvent) Duration(now time.Time) time.Duration {
	end := now
	if h.EndTime != nil {
		end = *h.EndTime
	}
	d := end.Sub(h.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

type Activity struct {
	ID        string
	Title     string
	PackageID string
	// Tag groups activities into an ordered lineage within a package.
	Tag      string
	Priority Priority
	Assignee string
	Status   ActivityStatus

	// Planned window.
	Deadline       time.Time
	PlannedEndDate time.Time

	// Actual timing, maintained by status transitions.
	StartTime *time.Time
	EndTime   *time.Time

	Remark          string
	HoldHistory     []HoldEvent
	StatusUpdatedAt *time.Time
}

// PlannedDuration is PlannedEndDate - Deadline.
func (a *Activity) PlannedDuration() time.Duration {
	return a.PlannedEndDate.Sub(a.Deadline)
}

// OpenHold returns the open hold event, if the last entry is still open.
func (a *Activity) OpenHold() (*HoldEvent, bool) {
	if len(a.HoldHistory) == 0 {
		return nil, false
	}
	last := &a.HoldHistory[len(a.HoldHistory)-1]
	if !last.IsOpen() {
		return nil, false
	}
	return last, true
}

// Clone returns a deep copy that shares no pointers or slices with a.
func (a Activity) Clone() Activity {
	c := a
	c.StartTime = CloneTime(a.StartTime)
	c.EndTime = CloneTime(a.EndTime)
	c.StatusUpdatedAt = CloneTime(a.StatusUpdatedAt)
	if a.HoldHistory != nil {
		c.HoldHistory = make([]HoldEvent, len(a.HoldHistory))
		for i, h := range a.HoldHistory {
			h.EndTime = CloneTime(h.EndTime)
			c.HoldHistory[i] = h
		}
	}
	return c
}

// Validate checks the record at the boundary (form input or import).
func (a *Activity) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: activity id is required", ErrValidation)
	}
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("%w: activity %s: title is required", ErrValidation, a.ID)
	}
	if strings.TrimSpace(a.PackageID) == "" {
		return fmt.Errorf("%w: activity %s: package id is required", ErrValidation, a.ID)
	}
	if strings.TrimSpace(a.Tag) == "" {
		return fmt.Errorf("%w: activity %s: tag is required", ErrValidation, a.ID)
	}
	if !ValidPriorities[a.Priority] {
		return fmt.Errorf("%w: activity %s: invalid priority %q", ErrValidation, a.ID, a.Priority)
	}
	if !ValidStatuses[a.Status] {
		return fmt.Errorf("%w: activity %s: invalid status %q", ErrValidation, a.ID, a.Status)
	}
	if a.Deadline.IsZero() || a.PlannedEndDate.IsZero() {
		return fmt.Errorf("%w: activity %s: planned start and end are required", ErrValidation, a.ID)
	}
	if !a.Deadline.Before(a.PlannedEndDate) {
		return fmt.Errorf("%w: activity %s: planned start %s must be before planned end %s",
			ErrValidation, a.ID, a.Deadline.Format(time.RFC3339), a.PlannedEndDate.Format(time.RFC3339))
	}
	for i, h := range a.HoldHistory {
		if strings.TrimSpace(h.Reason) == "" {
			return fmt.Errorf("%w: activity %s: hold %d has no reason", ErrValidation, a.ID, i)
		}
		if h.IsOpen() && i != len(a.HoldHistory)-1 {
			return fmt.Errorf("%w: activity %s: only the last hold may be open", ErrValidation, a.ID)
		}
	}
	return nil
}
