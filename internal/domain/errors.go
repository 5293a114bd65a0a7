package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates a missing required field or a malformed record.
	ErrValidation = errors.New("validation error")

	// ErrInvalidTransition indicates a status change the state machine does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPrerequisiteNotMet indicates an earlier activity in the same lineage
	// is not yet completed.
	ErrPrerequisiteNotMet = errors.New("prerequisite not met")

	// ErrNotFound indicates an operation referenced an unknown id.
	ErrNotFound = errors.New("not found")
)

// PrerequisiteError names the activity blocking a start.
type PrerequisiteError struct {
	ActivityID string
	Blocker    Activity
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("%s: activity %s cannot start before %q (%s) is completed (currently %s)",
		ErrPrerequisiteNotMet, e.ActivityID, e.Blocker.Title, e.Blocker.ID, e.Blocker.Status)
}

func (e *PrerequisiteError) Unwrap() error {
	return ErrPrerequisiteNotMet
}
