package domain

import (
	"fmt"
	"strings"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ValidPriorities is the canonical set of accepted priority values.
var ValidPriorities = map[Priority]bool{
	PriorityHigh: true, PriorityMedium: true, PriorityLow: true,
}

type ActivityStatus string

const (
	StatusNotStarted ActivityStatus = "Not Started"
	StatusInProgress ActivityStatus = "In Progress"
	StatusCompleted  ActivityStatus = "Completed"
	StatusOnHold     ActivityStatus = "On Hold"
)

// ValidStatuses is the canonical set of accepted activity statuses.
var ValidStatuses = map[ActivityStatus]bool{
	StatusNotStarted: true, StatusInProgress: true, StatusCompleted: true, StatusOnHold: true,
}

// ParsePriority accepts "High", "high" or "HIGH" style input.
func ParsePriority(s string) (Priority, error) {
	for p := range ValidPriorities {
		if strings.EqualFold(string(p), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown priority %q (expected High, Medium or Low)", ErrValidation, s)
}

// ParseActivityStatus accepts display names ("In Progress") as well as
// snake or kebab case ("in_progress", "on-hold").
func ParseActivityStatus(s string) (ActivityStatus, error) {
	norm := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(s))
	for st := range ValidStatuses {
		if strings.EqualFold(string(st), norm) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
}
