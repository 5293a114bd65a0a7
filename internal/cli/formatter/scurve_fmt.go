package formatter

import (
	"fmt"

	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
)

// FormatSCurve renders the cumulative planned and completed series as a
// table of paired bars, one row per sample.
func FormatSCurve(title string, points []scheduler.SCurvePoint) string {
	if len(points) == 0 {
		return Dim("Not enough data for an S-curve.")
	}
	headers := []string{"DAY", "PLANNED", "", "COMPLETED", ""}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Day.Format(DayLayout),
			StyleBlue.Render(RenderCompactBar(p.Planned, 20, true)),
			fmt.Sprintf("%5.1f%%", p.Planned),
			RenderCompactBar(p.Completed, 20, false),
			fmt.Sprintf("%5.1f%%", p.Completed),
		})
	}
	return RenderBox(title, RenderTable(headers, rows))
}
