package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
)

// Layouts for planned and actual timestamps. Turnaround work is planned to
// the hour, so dates always carry the time of day.
const (
	TimeLayout  = "02 Jan 2006 15:04"
	ShortLayout = "02 Jan 15:04"
	DayLayout   = "02 Jan"
)

// Display bands: schedule variance inside ±1h is on time, and actual
// progress within 2 points of planned is on track.
const (
	VarianceBandHours = 1.0
	ProgressBandPts   = 2.0
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatTime renders t in its own location, or "--" for nil.
func FormatTime(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return t.Format(TimeLayout)
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	if math.Abs(diff.Hours()) < 24 {
		hours := int(math.Round(diff.Hours()))
		switch {
		case hours == 0:
			return "Now"
		case hours > 0:
			return fmt.Sprintf("In %dh", hours)
		default:
			return fmt.Sprintf("%dh ago", -hours)
		}
	}
	days := int(math.Round(diff.Hours() / 24))
	switch {
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0:
		return fmt.Sprintf("In %dw", days/7)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	default:
		return fmt.Sprintf("%dw ago", -days/7)
	}
}

// DeadlineStyled colors a planned start relative to now: red once it has
// passed without the activity starting, yellow within the next day.
func DeadlineStyled(deadline, now time.Time, started bool) string {
	text := deadline.Format(ShortLayout)
	switch {
	case started:
		return StyleFg.Render(text)
	case deadline.Before(now):
		return StyleRed.Render(text)
	case deadline.Sub(now) <= 24*time.Hour:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// TruncID shortens generated ids such as ACT-1a2b3c4d-... to their prefix.
func TruncID(id string) string {
	if len(id) > 12 {
		id = id[:12]
	}
	return StyleDim.Render(id)
}

// VarianceIndicator renders schedule variance in hours. Positive is ahead.
func VarianceIndicator(hours float64) string {
	d := time.Duration(math.Abs(hours) * float64(time.Hour))
	switch {
	case hours > VarianceBandHours:
		return StyleGreen.Render("▲ " + scheduler.FormatDuration(d) + " ahead")
	case hours < -VarianceBandHours:
		return StyleRed.Render("▼ " + scheduler.FormatDuration(d) + " behind")
	default:
		return StyleBlue.Render("● on time")
	}
}

// ProgressDiffIndicator compares actual with planned progress, in points.
func ProgressDiffIndicator(actual, planned float64) string {
	diff := actual - planned
	switch {
	case diff > ProgressBandPts:
		return StyleGreen.Render(fmt.Sprintf("+%.1f pts", diff))
	case diff < -ProgressBandPts:
		return StyleRed.Render(fmt.Sprintf("%.1f pts", diff))
	default:
		return StyleBlue.Render("on track")
	}
}
