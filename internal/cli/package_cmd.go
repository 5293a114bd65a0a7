package cli

import (
	"context"
	"fmt"

	"github.com/sayanitariq-techno/Tariq/internal/cli/formatter"
	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
	"github.com/spf13/cobra"
)

func newPackageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "package",
		Aliases: []string{"pkg"},
		Short:   "Manage work packages",
	}

	cmd.AddCommand(
		newPackageAddCmd(app),
		newPackageListCmd(app),
		newPackageInspectCmd(app),
		newPackageUpdateCmd(app),
		newPackageRemoveCmd(app),
	)

	return cmd
}

func newPackageAddCmd(app *App) *cobra.Command {
	var id, name, description, priority, start, end, supervisor string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a work package",
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := domain.ParsePriority(priority)
			if err != nil {
				return err
			}
			startDate, err := parseDateFlag("start", start)
			if err != nil {
				return err
			}
			endDate, err := parseDateFlag("end", end)
			if err != nil {
				return err
			}

			p, err := app.Schedule.AddPackage(context.Background(), domain.Package{
				ID:          id,
				Name:        name,
				Description: description,
				Priority:    pr,
				StartDate:   startDate,
				EndDate:     endDate,
				Supervisor:  supervisor,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created package %s [%s]\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Package ID (generated when omitted)")
	cmd.Flags().StringVar(&name, "name", "", "Package name")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&priority, "priority", string(domain.PriorityMedium), "High, Medium or Low")
	cmd.Flags().StringVar(&start, "start", "", "Planned start (e.g. 2025-03-01 08:00)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end")
	cmd.Flags().StringVar(&supervisor, "supervisor", "", "Supervisor")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newPackageListCmd(app *App) *cobra.Command {
	var name, status, priority string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List packages with derived status and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := scheduler.PackageFilter{Name: name}
			if status != "" {
				s, err := domain.ParseActivityStatus(status)
				if err != nil {
					return err
				}
				filter.Status = s
			}
			if priority != "" {
				p, err := domain.ParsePriority(priority)
				if err != nil {
					return err
				}
				filter.Priority = p
			}

			list, err := app.Reports.PackageOverview(context.Background(), filter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPackageList(list))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Filter by name substring")
	cmd.Flags().StringVar(&status, "status", "", "Filter by derived status (not-started, in-progress, on-hold, completed)")
	cmd.Flags().StringVar(&priority, "priority", "", "Filter by priority")

	return cmd
}

func newPackageInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show a package with its activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Schedule.GetPackage(ctx, id)
			if err != nil {
				return err
			}
			m, err := app.Reports.PackageMetrics(ctx, id)
			if err != nil {
				return err
			}
			acts, err := app.Schedule.ListActivities(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPackageInspect(p, m, acts, app.Reports.Now()))
			return nil
		},
	}
}

func newPackageUpdateCmd(app *App) *cobra.Command {
	var name, description, priority, start, end, supervisor string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update package fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Schedule.GetPackage(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				p.Name = name
			}
			if flags.Changed("description") {
				p.Description = description
			}
			if flags.Changed("supervisor") {
				p.Supervisor = supervisor
			}
			if flags.Changed("priority") {
				if p.Priority, err = domain.ParsePriority(priority); err != nil {
					return err
				}
			}
			if err := changedDate(flags, "start", &p.StartDate); err != nil {
				return err
			}
			if err := changedDate(flags, "end", &p.EndDate); err != nil {
				return err
			}

			updated, err := app.Schedule.UpdatePackage(ctx, p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated package %s [%s]\n", updated.Name, updated.ID)
			if (flags.Changed("start") || flags.Changed("end")) &&
				(!updated.StartDate.Equal(p.StartDate) || !updated.EndDate.Equal(p.EndDate)) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Window follows its activities: "+
					updated.StartDate.Format(formatter.TimeLayout)+" → "+updated.EndDate.Format(formatter.TimeLayout)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	cmd.Flags().StringVar(&start, "start", "", "New planned start")
	cmd.Flags().StringVar(&end, "end", "", "New planned end")
	cmd.Flags().StringVar(&supervisor, "supervisor", "", "New supervisor")

	return cmd
}

func newPackageRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a package and all its activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolvePackageID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !yes && app.interactive() {
				confirmed := false
				if err := confirmForm(fmt.Sprintf("Delete package %s and all its activities?", id), &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			removed, err := app.Schedule.RemovePackage(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed package %s and %d activities\n", id, removed)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
