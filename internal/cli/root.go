package cli

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/sayanitariq-techno/Tariq/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and runtime settings used by CLI commands.
type App struct {
	Schedule service.ScheduleService
	Reports  service.ReportService
	Import   service.ImportService

	Logger *log.Logger

	// Tick is the dashboard refresh interval.
	Tick time.Duration

	// IsInteractive reports whether prompts and the dashboard may take over
	// the terminal. Nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) tick() time.Duration {
	if a.Tick <= 0 {
		return time.Minute
	}
	return a.Tick
}

// NewRootCmd creates the top-level "tariq" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tariq",
		Short:         "Turnaround package scheduler and progress tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPackageCmd(app),
		newActivityCmd(app),
		newStatusCmd(app),
		newHoldsCmd(app),
		newImportCmd(app),
		newSCurveCmd(app),
		newDashboardCmd(app),
		newMCPCmd(app),
	)

	return root
}
