package cli

import (
	"context"
	"fmt"

	"github.com/sayanitariq-techno/Tariq/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSCurveCmd(app *App) *cobra.Command {
	var packageID string

	cmd := &cobra.Command{
		Use:   "scurve",
		Short: "Cumulative planned vs completed progress per day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			title := "S-curve"
			if packageID != "" {
				id, err := resolvePackageID(ctx, app, packageID)
				if err != nil {
					return err
				}
				packageID = id
				title += " · " + id
			}
			points, err := app.Reports.SCurve(ctx, packageID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSCurve(title, points))
			return nil
		},
	}

	cmd.Flags().StringVar(&packageID, "package", "", "Limit to one package")

	return cmd
}
