package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
)

// FormatActivityList renders activities in the order given.
func FormatActivityList(acts []domain.Activity, now time.Time) string {
	if len(acts) == 0 {
		return Dim("No activities found.")
	}
	counts := statusCounts(acts)
	summary := fmt.Sprintf("%d activities: %d completed, %d in progress, %d on hold, %d not started",
		len(acts), counts[domain.StatusCompleted], counts[domain.StatusInProgress],
		counts[domain.StatusOnHold], counts[domain.StatusNotStarted])
	return activityRows(acts, now) + "\n" + Dim(summary)
}

func activityRows(acts []domain.Activity, now time.Time) string {
	headers := []string{"ID", "TAG", "TITLE", "STATUS", "PLANNED START", "PLANNED END", "PRIORITY"}
	rows := make([][]string, 0, len(acts))
	for _, a := range acts {
		rows = append(rows, []string{
			a.ID,
			StylePurple.Render(a.Tag),
			a.Title,
			StatusPill(a.Status),
			DeadlineStyled(a.Deadline, now, a.Status != domain.StatusNotStarted),
			a.PlannedEndDate.Format(ShortLayout),
			PriorityBadge(a.Priority),
		})
	}
	return RenderTable(headers, rows)
}

// FormatActivityInspect renders one activity with its actual timing and
// hold history.
func FormatActivityInspect(a domain.Activity, now time.Time) string {
	fields := [][2]string{
		{"id", a.ID},
		{"package", a.PackageID},
		{"tag", StylePurple.Render(a.Tag)},
		{"status", StatusPill(a.Status)},
		{"priority", PriorityBadge(a.Priority)},
		{"planned", fmt.Sprintf("%s → %s (%s)", a.Deadline.Format(TimeLayout),
			a.PlannedEndDate.Format(TimeLayout), scheduler.FormatDuration(a.PlannedDuration()))},
		{"started", FormatTime(a.StartTime)},
		{"ended", FormatTime(a.EndTime)},
	}
	if a.Assignee != "" {
		fields = append(fields, [2]string{"assignee", a.Assignee})
	}
	if a.Remark != "" {
		fields = append(fields, [2]string{"remark", a.Remark})
	}

	var b strings.Builder
	b.WriteString(Bold(a.Title) + "\n\n")
	b.WriteString(RenderFields(fields))
	if len(a.HoldHistory) > 0 {
		b.WriteString("\n" + Header("Holds") + "\n")
		headers := []string{"#", "REASON", "FROM", "TO", "DURATION", "REMARKS"}
		rows := make([][]string, 0, len(a.HoldHistory))
		for i, h := range a.HoldHistory {
			rows = append(rows, holdCells(fmt.Sprint(i+1), h, now))
		}
		b.WriteString(RenderTable(headers, rows))
	}
	return RenderBox("", b.String())
}

func holdCells(first string, h domain.HoldEvent, now time.Time) []string {
	to := StyleYellow.Render("open")
	if h.EndTime != nil {
		to = h.EndTime.Format(ShortLayout)
	}
	return []string{
		first,
		h.Reason,
		h.StartTime.Format(ShortLayout),
		to,
		scheduler.FormatDuration(h.Duration(now)),
		h.Remarks,
	}
}
