package domain

import (
	"fmt"
	"strings"
	"time"
)

// Package is a work package. StartDate and EndDate are derived from its
// activities once it has any.
type Package struct {
	ID          string
	Name        string
	Description string
	Priority    Priority
	StartDate   time.Time
	EndDate     time.Time
	Supervisor  string
}

// Validate checks the record at the boundary (form input or import).
func (p *Package) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: package id is required", ErrValidation)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: package %s: name is required", ErrValidation, p.ID)
	}
	if !ValidPriorities[p.Priority] {
		return fmt.Errorf("%w: package %s: invalid priority %q", ErrValidation, p.ID, p.Priority)
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return fmt.Errorf("%w: package %s: start and end dates are required", ErrValidation, p.ID)
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("%w: package %s: end date %s is before start date %s",
			ErrValidation, p.ID, p.EndDate.Format(time.RFC3339), p.StartDate.Format(time.RFC3339))
	}
	return nil
}
