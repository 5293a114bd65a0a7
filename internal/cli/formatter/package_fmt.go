package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
)

// FormatPackageList renders the package overview table.
func FormatPackageList(list []scheduler.PackageOverview) string {
	if len(list) == 0 {
		return Dim("No packages found.")
	}
	headers := []string{"ID", "NAME", "PRIORITY", "STATUS", "PROGRESS", "WINDOW", "SUPERVISOR"}
	rows := make([][]string, 0, len(list))
	for _, o := range list {
		supervisor := o.Package.Supervisor
		if supervisor == "" {
			supervisor = Dim("--")
		}
		rows = append(rows, []string{
			o.Package.ID,
			Bold(o.Package.Name),
			PriorityBadge(o.Package.Priority),
			StatusPill(o.Metrics.Status),
			fmt.Sprintf("%s %d/%d", RenderCompactBar(o.Metrics.Progress, 10, false), o.Metrics.CompletedCount, o.Metrics.Total),
			packageWindow(o.Package),
			supervisor,
		})
	}
	return RenderBox("Packages", RenderTable(headers, rows))
}

func packageWindow(p domain.Package) string {
	return p.StartDate.Format(ShortLayout) + " → " + p.EndDate.Format(ShortLayout)
}

// FormatPackageInspect renders a package card with its metrics and
// activities grouped by tag lineage.
func FormatPackageInspect(p domain.Package, m scheduler.PackageMetrics, acts []domain.Activity, now time.Time) string {
	fields := [][2]string{
		{"id", p.ID},
		{"status", StatusPill(m.Status)},
		{"priority", PriorityBadge(p.Priority)},
		{"window", packageWindow(p)},
		{"progress", fmt.Sprintf("%s  %d/%d", RenderProgress(m.Progress, 20), m.CompletedCount, m.Total)},
		{"actual start", FormatTime(m.ActualStartDate)},
		{"actual end", FormatTime(m.ActualEndDate)},
	}
	if p.Supervisor != "" {
		fields = append(fields, [2]string{"supervisor", p.Supervisor})
	}

	var b strings.Builder
	b.WriteString(Bold(p.Name) + "\n")
	if p.Description != "" {
		b.WriteString(Dim(p.Description) + "\n")
	}
	b.WriteString("\n" + RenderFields(fields))

	var tags []string
	byTag := make(map[string][]domain.Activity)
	for _, a := range acts {
		if _, ok := byTag[a.Tag]; !ok {
			tags = append(tags, a.Tag)
		}
		byTag[a.Tag] = append(byTag[a.Tag], a)
	}
	for _, tag := range tags {
		b.WriteString("\n" + Header(tag) + "\n")
		b.WriteString(activityRows(scheduler.Lineage(byTag[tag], p.ID, tag), now))
	}
	return RenderBox("", b.String())
}
