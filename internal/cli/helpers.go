package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/importer"
	"github.com/spf13/pflag"
)

func resolvePackageID(ctx context.Context, app *App, input string) (string, error) {
	pkgs, err := app.Schedule.ListPackages(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		ids = append(ids, p.ID)
	}
	return resolveID("package", input, ids)
}

func resolveActivityID(ctx context.Context, app *App, input string) (string, error) {
	acts, err := app.Schedule.ListActivities(ctx, "")
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(acts))
	for _, a := range acts {
		ids = append(ids, a.ID)
	}
	return resolveID("activity", input, ids)
}

// parseDateFlag accepts the same layouts as import files, e.g.
// "2025-03-01 08:00" or an RFC3339 timestamp.
func parseDateFlag(name, value string) (time.Time, error) {
	t, err := importer.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return t, nil
}

// changedDate parses the named flag into dst only when it was set.
func changedDate(flags *pflag.FlagSet, name string, dst *time.Time) error {
	if !flags.Changed(name) {
		return nil
	}
	value, err := flags.GetString(name)
	if err != nil {
		return err
	}
	t, err := parseDateFlag(name, value)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}
