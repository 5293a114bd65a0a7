package cli

import (
	"context"
	"fmt"

	"github.com/sayanitariq-techno/Tariq/internal/cli/formatter"
	"github.com/sayanitariq-techno/Tariq/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Bulk import packages and activities from a .yaml or .json workbook",
		Long: `Import merges a workbook of packages and activities into the schedule.
Rows are upserted by ID. Every row is validated first and nothing is
written if any row fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			if preview {
				p, err := app.Import.Preview(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d packages, %d activities\n", p.Packages, p.Activities)
				if p.Valid() {
					fmt.Fprintln(out, formatter.StyleGreen.Render("No errors. Ready to import."))
					return nil
				}
				fmt.Fprintln(out, formatter.StyleRed.Render(fmt.Sprintf("%d errors:", len(p.Errors))))
				for _, e := range p.Errors {
					fmt.Fprintf(out, "  - %s\n", e)
				}
				return nil
			}

			res, err := app.Import.Import(ctx, args[0])
			if err != nil {
				if errs := service.ValidationErrors(err); len(errs) > 0 {
					fmt.Fprintln(out, formatter.StyleRed.Render(fmt.Sprintf("%d errors:", len(errs))))
					for _, e := range errs {
						fmt.Fprintf(out, "  - %s\n", e)
					}
					return fmt.Errorf("import aborted: nothing was written")
				}
				return err
			}
			fmt.Fprintf(out, "Imported %d packages (%d new, %d updated) and %d activities (%d new, %d updated)\n",
				res.PackagesAdded+res.PackagesUpdated, res.PackagesAdded, res.PackagesUpdated,
				res.ActivitiesAdded+res.ActivitiesUpdated, res.ActivitiesAdded, res.ActivitiesUpdated)
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "Validate and count rows without importing")

	return cmd
}
