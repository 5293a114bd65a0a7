package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
)

// StatusChange is a requested status transition. Reason is required when
// entering On Hold; Remarks is optional.
type StatusChange struct {
	Status  domain.ActivityStatus
	Reason  string
	Remarks string
}

// ValidateTransition checks the structural rules of the activity state
// machine. The lineage gate for starting work is checked by ApplyStatus.
func ValidateTransition(from, to domain.ActivityStatus, reason string) error {
	if !domain.ValidStatuses[to] {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, to)
	}
	switch {
	case from == domain.StatusNotStarted && to == domain.StatusCompleted:
		return fmt.Errorf("%w: activity must be started before it can be completed", domain.ErrInvalidTransition)
	case from == domain.StatusCompleted && (to == domain.StatusInProgress || to == domain.StatusOnHold):
		return fmt.Errorf("%w: completed activities can only be reset to %s", domain.ErrInvalidTransition, domain.StatusNotStarted)
	case from == domain.StatusOnHold && to == domain.StatusOnHold:
		return fmt.Errorf("%w: activity is already on hold", domain.ErrInvalidTransition)
	case to == domain.StatusOnHold && strings.TrimSpace(reason) == "":
		return fmt.Errorf("%w: a reason is required to put an activity on hold", domain.ErrValidation)
	}
	return nil
}

// FirstIncompletePredecessor returns the earliest activity ordered before
// target in its lineage that is not completed.
func FirstIncompletePredecessor(lineage []domain.Activity, target domain.Activity) (domain.Activity, bool) {
	for _, a := range sortLineage(lineage) {
		if a.ID == target.ID || a.PackageID != target.PackageID || a.Tag != target.Tag {
			continue
		}
		if !lineageLess(a, target) {
			break
		}
		if a.Status != domain.StatusCompleted {
			return a, true
		}
	}
	return domain.Activity{}, false
}

// ApplyStatus applies a status change to a copy of the activity and returns
// it. lineage holds the activities sharing the activity's (package, tag);
// it may include the activity itself. The input is never modified, and on
// error nothing is returned but the error.
func ApplyStatus(a domain.Activity, lineage []domain.Activity, change StatusChange, now time.Time) (domain.Activity, error) {
	from := a.Status
	to := change.Status

	if err := ValidateTransition(from, to, change.Reason); err != nil {
		return domain.Activity{}, fmt.Errorf("activity %s: %w", a.ID, err)
	}

	if to == domain.StatusInProgress {
		if blocker, blocked := FirstIncompletePredecessor(lineage, a); blocked {
			return domain.Activity{}, &domain.PrerequisiteError{ActivityID: a.ID, Blocker: blocker}
		}
	}

	out := a.Clone()

	if from == domain.StatusOnHold && to != domain.StatusOnHold {
		closeOpenHold(&out, now)
	}

	switch to {
	case domain.StatusOnHold:
		out.HoldHistory = append(out.HoldHistory, domain.HoldEvent{
			Reason:    strings.TrimSpace(change.Reason),
			Remarks:   change.Remarks,
			StartTime: now,
		})
	case domain.StatusInProgress:
		if out.StartTime == nil {
			out.StartTime = domain.TimePtr(now)
		}
	case domain.StatusCompleted:
		if out.EndTime == nil {
			out.EndTime = domain.TimePtr(now)
		}
		if out.StartTime == nil {
			out.StartTime = domain.TimePtr(now)
		}
	case domain.StatusNotStarted:
		out.StartTime = nil
		out.EndTime = nil
		out.HoldHistory = []domain.HoldEvent{}
	}

	out.Status = to
	out.StatusUpdatedAt = domain.TimePtr(now)
	return out, nil
}

// closeOpenHold sets the end time of the last hold if it is still open.
// Calling it on an already closed hold is a no-op.
func closeOpenHold(a *domain.Activity, now time.Time) {
	if h, ok := a.OpenHold(); ok {
		h.EndTime = domain.TimePtr(now)
	}
}
