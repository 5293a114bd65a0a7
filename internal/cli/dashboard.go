package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sayanitariq-techno/Tariq/internal/cli/formatter"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Live project dashboard, recomputed on every clock tick",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("dashboard needs an interactive terminal; use 'tariq status' instead")
			}
			_, err := tea.NewProgram(newDashboardModel(app), tea.WithAltScreen()).Run()
			return err
		},
	}
}

type dashboardKeys struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

func (k dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

func (k dashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// dashboardTickMsg fires every App.Tick; the dashboard recomputes on it.
type dashboardTickMsg time.Time

type dashboardLoadedMsg struct {
	at       time.Time
	stats    scheduler.ProjectStats
	sel      *scheduler.Selection
	packages []scheduler.PackageOverview
	holds    []scheduler.HoldReasonSummary
	err      error
}

type dashboardModel struct {
	app   *App
	keys  dashboardKeys
	help  help.Model
	table table.Model

	data    dashboardLoadedMsg
	loaded  bool
	loading bool
}

func newDashboardModel(app *App) dashboardModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 14},
			{Title: "Package", Width: 28},
			{Title: "Status", Width: 12},
			{Title: "Done", Width: 7},
			{Title: "Progress", Width: 8},
			{Title: "Planned end", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(formatter.ColorHeader).Bold(true)
	styles.Selected = styles.Selected.Foreground(formatter.ColorFg).Background(formatter.ColorDim)
	t.SetStyles(styles)

	return dashboardModel{
		app:     app,
		keys:    newDashboardKeys(),
		help:    help.New(),
		table:   t,
		loading: true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.tick())
}

func (m dashboardModel) tick() tea.Cmd {
	return tea.Tick(m.app.tick(), func(t time.Time) tea.Msg { return dashboardTickMsg(t) })
}

// load recomputes every panel from current state at the store clock.
func (m dashboardModel) load() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()
		msg := dashboardLoadedMsg{at: app.Reports.Now()}

		if msg.stats, msg.err = app.Reports.ProjectStats(ctx, msg.at); msg.err != nil {
			return msg
		}
		if msg.stats.TotalActivities > 0 {
			sel, err := app.Reports.Estimate(ctx, msg.at)
			if err != nil {
				msg.err = err
				return msg
			}
			msg.sel = &sel
		}
		if msg.packages, msg.err = app.Reports.PackageOverview(ctx, scheduler.PackageFilter{}); msg.err != nil {
			return msg
		}
		msg.holds, msg.err = app.Reports.HoldSummary(ctx, msg.at)
		return msg
	}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardTickMsg:
		m.loading = true
		return m, tea.Batch(m.load(), m.tick())

	case dashboardLoadedMsg:
		m.loading = false
		m.loaded = true
		m.data = msg
		if msg.err == nil {
			m.table.SetRows(packageRows(msg.packages))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.load()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func packageRows(list []scheduler.PackageOverview) []table.Row {
	rows := make([]table.Row, 0, len(list))
	for _, o := range list {
		rows = append(rows, table.Row{
			o.Package.ID,
			o.Package.Name,
			string(o.Metrics.Status),
			fmt.Sprintf("%d/%d", o.Metrics.CompletedCount, o.Metrics.Total),
			fmt.Sprintf("%.0f%%", o.Metrics.Progress),
			o.Package.EndDate.Format(formatter.ShortLayout),
		})
	}
	return rows
}

func (m dashboardModel) View() string {
	if !m.loaded {
		return formatter.Dim("Loading…")
	}
	if m.data.err != nil {
		return formatter.StyleRed.Render("Error: "+m.data.err.Error()) + "\n\n" + m.help.View(m.keys)
	}

	var b strings.Builder
	title := formatter.StyleHeader.Render("TARIQ") + "  " + formatter.Dim(m.data.at.Format(formatter.TimeLayout))
	if m.loading {
		title += formatter.Dim("  refreshing…")
	}
	b.WriteString(title + "\n\n")

	stats := m.data.stats
	if stats.TotalActivities == 0 {
		b.WriteString(formatter.Dim("No activities yet.") + "\n")
	} else {
		left := formatter.RenderFields([][2]string{
			{"actual", formatter.RenderProgress(stats.ActualProgress, 24)},
			{"planned", formatter.RenderProgress(stats.PlannedProgress, 24)},
			{"diff", formatter.ProgressDiffIndicator(stats.ActualProgress, stats.PlannedProgress)},
		})
		right := ""
		if m.data.sel != nil {
			right = formatter.FormatEstimate(*m.data.sel)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right) + "\n")
		b.WriteString(fmt.Sprintf("%s %d  %s %d  %s %d  %s %d\n\n",
			formatter.StyleGreen.Render("completed"), len(stats.Completed),
			formatter.StyleBlue.Render("on track"), len(stats.OnTrack),
			formatter.StyleRed.Render("delayed"), len(stats.Delayed),
			formatter.Dim("upcoming"), len(stats.Upcoming)))
	}

	b.WriteString(m.table.View() + "\n")

	if len(m.data.holds) > 0 {
		b.WriteString("\n" + formatter.Header("Top hold reasons") + "\n")
		for i, h := range m.data.holds {
			if i == 3 {
				break
			}
			b.WriteString(fmt.Sprintf("%-24s %s\n", h.Reason, scheduler.FormatDuration(h.TotalDuration)))
		}
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}
