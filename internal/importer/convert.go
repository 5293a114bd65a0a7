package importer

import (
	"fmt"
	"strings"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
)

// Converted is the domain form of a validated import.
type Converted struct {
	Packages   []domain.Package
	Activities []domain.Activity
}

// Convert transforms a validated ImportSchema into domain objects ready for
// a bulk merge. Call ValidateImportSchema first; Convert stops at the first
// bad cell. Every imported activity starts Not Started with no history.
func Convert(schema *ImportSchema) (*Converted, error) {
	out := &Converted{
		Packages:   make([]domain.Package, 0, len(schema.Packages)),
		Activities: make([]domain.Activity, 0, len(schema.Activities)),
	}

	for _, row := range schema.Packages {
		priority, err := domain.ParsePriority(row.Priority)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", row.ID, err)
		}
		start, err := ParseDate(row.StartDate)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", row.ID, err)
		}
		end, err := ParseDate(row.EndDate)
		if err != nil {
			return nil, fmt.Errorf("package %s: %w", row.ID, err)
		}
		out.Packages = append(out.Packages, domain.Package{
			ID:          strings.TrimSpace(row.ID),
			Name:        strings.TrimSpace(row.Name),
			Description: row.Description,
			Priority:    priority,
			StartDate:   start,
			EndDate:     end,
			Supervisor:  strings.TrimSpace(row.Supervisor),
		})
	}

	for _, row := range schema.Activities {
		priority, err := domain.ParsePriority(row.Priority)
		if err != nil {
			return nil, fmt.Errorf("activity %s: %w", row.ID, err)
		}
		deadline, err := ParseDate(row.StartDate)
		if err != nil {
			return nil, fmt.Errorf("activity %s: %w", row.ID, err)
		}
		plannedEnd, err := ParseDate(row.EndDate)
		if err != nil {
			return nil, fmt.Errorf("activity %s: %w", row.ID, err)
		}
		out.Activities = append(out.Activities, domain.Activity{
			ID:             strings.TrimSpace(row.ID),
			Title:          strings.TrimSpace(row.Title),
			PackageID:      strings.TrimSpace(row.PackageID),
			Tag:            strings.TrimSpace(row.Tag),
			Priority:       priority,
			Assignee:       strings.TrimSpace(row.Assignee),
			Status:         domain.StatusNotStarted,
			Deadline:       deadline,
			PlannedEndDate: plannedEnd,
		})
	}

	return out, nil
}
