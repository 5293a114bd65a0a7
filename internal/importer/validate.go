package importer

import (
	"fmt"
	"strings"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
)

// ValidateImportSchema checks every row and returns all problems found.
// Row numbers are 1-based within each sheet. existingPackages lists package
// ids already in the store that activity rows may reference.
func ValidateImportSchema(schema *ImportSchema, existingPackages map[string]bool) []error {
	var errs []error

	packageIDs := make(map[string]bool, len(schema.Packages))
	for i, row := range schema.Packages {
		errs = append(errs, validatePackageRow(i+1, row, packageIDs)...)
	}

	activityIDs := make(map[string]bool, len(schema.Activities))
	for i, row := range schema.Activities {
		errs = append(errs, validateActivityRow(i+1, row, packageIDs, existingPackages, activityIDs)...)
	}

	return errs
}

// RowError is a problem with one row of an import file. It matches
// domain.ErrValidation under errors.Is.
type RowError struct {
	Sheet string
	Row   int
	msg   string
}

func (e *RowError) Error() string { return e.msg }

func (e *RowError) Unwrap() error { return domain.ErrValidation }

func rowErr(sheet string, n int, format string, args ...any) error {
	return &RowError{
		Sheet: sheet,
		Row:   n,
		msg:   fmt.Sprintf("%s row %d: ", sheet, n) + fmt.Sprintf(format, args...),
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validatePackageRow(n int, row PackageRow, seen map[string]bool) []error {
	if blank(row.ID) || blank(row.Name) || blank(row.Priority) || blank(row.StartDate) || blank(row.EndDate) {
		return []error{rowErr("Package", n, "Missing required fields.")}
	}
	if seen[row.ID] {
		return []error{rowErr("Package", n, "Duplicate Package ID '%s'.", row.ID)}
	}
	seen[row.ID] = true

	var errs []error
	if _, err := domain.ParsePriority(row.Priority); err != nil {
		errs = append(errs, rowErr("Package", n, "invalid priority %q.", row.Priority))
	}
	errs = append(errs, validateWindow("Package", n, row.StartDate, row.EndDate, false)...)
	return errs
}

func validateActivityRow(n int, row ActivityRow, packages, existing, seen map[string]bool) []error {
	if blank(row.ID) || blank(row.PackageID) || blank(row.Tag) || blank(row.Title) ||
		blank(row.Priority) || blank(row.StartDate) || blank(row.EndDate) {
		return []error{rowErr("Activity", n, "Missing required fields.")}
	}
	if !packages[row.PackageID] && !existing[row.PackageID] {
		return []error{rowErr("Activity", n, "Package ID '%s' not found in the Packages sheet.", row.PackageID)}
	}
	if seen[row.ID] {
		return []error{rowErr("Activity", n, "Duplicate Activity ID '%s'.", row.ID)}
	}
	seen[row.ID] = true

	var errs []error
	if _, err := domain.ParsePriority(row.Priority); err != nil {
		errs = append(errs, rowErr("Activity", n, "invalid priority %q.", row.Priority))
	}
	errs = append(errs, validateWindow("Activity", n, row.StartDate, row.EndDate, true)...)
	return errs
}

// validateWindow checks both dates parse and are ordered. Activities need a
// positive duration; a package window may be a single instant.
func validateWindow(sheet string, n int, startStr, endStr string, strict bool) []error {
	start, startErr := ParseDate(startStr)
	end, endErr := ParseDate(endStr)

	var errs []error
	if startErr != nil {
		errs = append(errs, rowErr(sheet, n, "planned start: %v.", startErr))
	}
	if endErr != nil {
		errs = append(errs, rowErr(sheet, n, "planned end: %v.", endErr))
	}
	if startErr == nil && endErr == nil {
		if end.Before(start) || (strict && end.Equal(start)) {
			errs = append(errs, rowErr(sheet, n, "planned end must be after planned start."))
		}
	}
	return errs
}
