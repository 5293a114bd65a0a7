package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/cli/formatter"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show project progress, delays and the estimated end date",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			at := app.Reports.Now()
			if asOf != "" {
				t, err := parseDateFlag("as-of", asOf)
				if err != nil {
					return err
				}
				at = t
			}

			stats, err := app.Reports.ProjectStats(ctx, at)
			if err != nil {
				return err
			}
			if stats.TotalActivities == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectStats(stats, nil))
				return nil
			}

			sel, err := estimate(ctx, cmd, app, at)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectStats(stats, &sel))
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Evaluate at this instant instead of now")

	return cmd
}

// estimate runs the end-date selection, animating a spinner on stderr
// while an external estimator may be answering.
func estimate(ctx context.Context, cmd *cobra.Command, app *App, at time.Time) (scheduler.Selection, error) {
	if app.interactive() {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), "estimating end date")
		defer stop()
	}
	return app.Reports.Estimate(ctx, at)
}
