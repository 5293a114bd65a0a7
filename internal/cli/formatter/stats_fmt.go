package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
)

// FormatProjectStats renders the project overview card. sel may be nil, in
// which case the formula estimate carried by stats is shown.
func FormatProjectStats(stats scheduler.ProjectStats, sel *scheduler.Selection) string {
	if stats.TotalActivities == 0 {
		return RenderBox("Project", Dim("No activities yet. Add a package and activities, or run 'tariq import FILE'."))
	}

	estimate := stats.EstimatedEndDate
	variance := stats.ScheduleVarianceHours
	source := string(scheduler.SourceFormula)
	if sel != nil {
		estimate = &sel.Estimate.Date
		variance = sel.VarianceHours
		source = string(sel.Estimate.Source)
	}

	left := RenderFields([][2]string{
		{"as of", stats.AsOf.Format(TimeLayout)},
		{"actual", RenderProgress(stats.ActualProgress, 20)},
		{"planned", RenderProgress(stats.PlannedProgress, 20)},
		{"diff", ProgressDiffIndicator(stats.ActualProgress, stats.PlannedProgress)},
	})
	right := RenderFields([][2]string{
		{"planned start", FormatTime(stats.PlannedStart)},
		{"planned end", FormatTime(stats.PlannedEnd)},
		{"actual start", FormatTime(stats.ActualStartDate)},
		{"estimated end", FormatTime(estimate) + " " + Dim("("+source+")")},
		{"variance", VarianceIndicator(variance)},
	})

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
	b.WriteString("\n")
	b.WriteString(bucketLine(stats))
	if sel != nil && sel.FallbackReason != "" {
		b.WriteString("\n" + Dim("external estimate skipped: "+sel.FallbackReason))
	}

	if len(stats.Delayed) > 0 {
		b.WriteString("\n\n" + Header("Delayed") + "\n")
		b.WriteString(activityRows(stats.Delayed, stats.AsOf))
	}
	return RenderBox("Project", b.String())
}

func bucketLine(stats scheduler.ProjectStats) string {
	return fmt.Sprintf("%s %d   %s %d   %s %d   %s %d   %s %d",
		Dim("total"), stats.TotalActivities,
		StyleGreen.Render("completed"), len(stats.Completed),
		StyleBlue.Render("on track"), len(stats.OnTrack),
		StyleRed.Render("delayed"), len(stats.Delayed),
		Dim("upcoming"), len(stats.Upcoming))
}

// FormatEstimate renders a single estimate selection line.
func FormatEstimate(sel scheduler.Selection) string {
	line := fmt.Sprintf("%s %s %s  %s",
		Bold("Estimated end"),
		sel.Estimate.Date.Format(TimeLayout),
		Dim("("+string(sel.Estimate.Source)+")"),
		VarianceIndicator(sel.VarianceHours))
	if sel.Estimate.Reasoning != "" {
		line += "\n" + Dim(sel.Estimate.Reasoning)
	}
	if sel.FallbackReason != "" {
		line += "\n" + Dim("external estimate skipped: "+sel.FallbackReason)
	}
	return line
}

func statusCounts(acts []domain.Activity) map[domain.ActivityStatus]int {
	out := make(map[domain.ActivityStatus]int, 4)
	for _, a := range acts {
		out[a.Status]++
	}
	return out
}
