package cli

import (
	"context"
	"fmt"

	"github.com/sayanitariq-techno/Tariq/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHoldsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holds",
		Short: "Hold history and time lost per reason",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "log",
			Short: "List every hold, most recent first",
			RunE: func(cmd *cobra.Command, args []string) error {
				entries, err := app.Reports.HoldLog(context.Background())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHoldLog(entries, app.Reports.Now()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "summary",
			Short: "Total hold time per reason; open holds count up to now",
			RunE: func(cmd *cobra.Command, args []string) error {
				rows, err := app.Reports.HoldSummary(context.Background(), app.Reports.Now())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHoldSummary(rows))
				return nil
			},
		},
	)

	return cmd
}
