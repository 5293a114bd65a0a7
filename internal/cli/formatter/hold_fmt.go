package formatter

import (
	"fmt"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
)

// FormatHoldLog renders every hold event, newest first as given.
func FormatHoldLog(entries []scheduler.HoldLogEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No holds recorded.")
	}
	headers := []string{"ACTIVITY", "TAG", "REASON", "FROM", "TO", "DURATION", "REMARKS"}
	rows := make([][]string, 0, len(entries))
	open := 0
	for _, e := range entries {
		if e.Event.IsOpen() {
			open++
		}
		cells := holdCells(e.ActivityID, e.Event, now)
		rows = append(rows, append([]string{cells[0], StylePurple.Render(e.Tag)}, cells[1:]...))
	}
	return RenderBox("Hold log", RenderTable(headers, rows)+"\n"+Dim(fmt.Sprintf("%d holds, %d open", len(entries), open)))
}

// FormatHoldSummary renders the per-reason totals with a bar relative to
// the longest reason.
func FormatHoldSummary(rows []scheduler.HoldReasonSummary) string {
	if len(rows) == 0 {
		return Dim("No holds recorded.")
	}
	longest := rows[0].TotalDuration
	var total time.Duration
	headers := []string{"REASON", "COUNT", "TOTAL", ""}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		total += r.TotalDuration
		share := 0.0
		if longest > 0 {
			share = float64(r.TotalDuration) / float64(longest) * 100
		}
		out = append(out, []string{
			r.Reason,
			fmt.Sprint(r.Count),
			scheduler.FormatDuration(r.TotalDuration),
			RenderCompactBar(share, 16, true),
		})
	}
	return RenderBox("Hold reasons", RenderTable(headers, out)+"\n"+Dim("total on hold: "+scheduler.FormatDuration(total)))
}
