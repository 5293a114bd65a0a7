package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sayanitariq-techno/Tariq/internal/cli/formatter"
	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
	"github.com/sayanitariq-techno/Tariq/internal/store"
	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"act"},
		Short:   "Manage activities and their status",
	}

	cmd.AddCommand(
		newActivityAddCmd(app),
		newActivityListCmd(app),
		newActivityInspectCmd(app),
		newActivityUpdateCmd(app),
		newActivityRemoveCmd(app),
		newActivityStatusCmd(app),
		newActivityTransitionCmd(app, "start", "Start an activity", domain.StatusInProgress),
		newActivityHoldCmd(app),
		newActivityTransitionCmd(app, "resume", "Resume an activity on hold", domain.StatusInProgress),
		newActivityTransitionCmd(app, "complete", "Complete an activity", domain.StatusCompleted),
		newActivityTransitionCmd(app, "reset", "Reset an activity to Not Started, clearing actuals and holds", domain.StatusNotStarted),
		newActivityRetagCmd(app),
		newActivitySearchCmd(app),
	)

	return cmd
}

// printUpsert reports the saved activity and any lineage members the
// cascade moved.
func printUpsert(w io.Writer, verb string, res store.UpsertResult) {
	a := res.Activity
	fmt.Fprintf(w, "%s activity %s [%s] on %s\n", verb, a.Title, a.ID, a.Tag)
	if len(res.Rescheduled) > 0 {
		fmt.Fprintf(w, "Rescheduled %d following activities: %s\n", len(res.Rescheduled), strings.Join(res.Rescheduled, ", "))
	}
	if res.Package.ID != "" {
		fmt.Fprintln(w, formatter.Dim(fmt.Sprintf("Package %s window: %s → %s", res.Package.ID,
			res.Package.StartDate.Format(formatter.TimeLayout), res.Package.EndDate.Format(formatter.TimeLayout))))
	}
}

func newActivityAddCmd(app *App) *cobra.Command {
	var id, packageID, tag, title, priority, assignee, remark, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an activity to a package",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			pkgID, err := resolvePackageID(ctx, app, packageID)
			if err != nil {
				return err
			}
			pr, err := domain.ParsePriority(priority)
			if err != nil {
				return err
			}
			deadline, err := parseDateFlag("start", start)
			if err != nil {
				return err
			}
			plannedEnd, err := parseDateFlag("end", end)
			if err != nil {
				return err
			}

			res, err := app.Schedule.AddActivity(ctx, domain.Activity{
				ID:             id,
				PackageID:      pkgID,
				Tag:            tag,
				Title:          title,
				Priority:       pr,
				Assignee:       assignee,
				Remark:         remark,
				Status:         domain.StatusNotStarted,
				Deadline:       deadline,
				PlannedEndDate: plannedEnd,
			})
			if err != nil {
				return err
			}
			printUpsert(cmd.OutOrStdout(), "Added", res)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Activity ID (generated when omitted)")
	cmd.Flags().StringVar(&packageID, "package", "", "Package ID or prefix")
	cmd.Flags().StringVar(&tag, "tag", "", "Equipment tag")
	cmd.Flags().StringVar(&title, "title", "", "Activity title")
	cmd.Flags().StringVar(&priority, "priority", string(domain.PriorityMedium), "High, Medium or Low")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee")
	cmd.Flags().StringVar(&remark, "remark", "", "Remark")
	cmd.Flags().StringVar(&start, "start", "", "Planned start (e.g. 2025-03-01 08:00)")
	cmd.Flags().StringVar(&end, "end", "", "Planned end")
	for _, f := range []string{"package", "tag", "title", "start", "end"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func newActivityListCmd(app *App) *cobra.Command {
	var packageID, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities by package, tag and planned start",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if packageID != "" {
				id, err := resolvePackageID(ctx, app, packageID)
				if err != nil {
					return err
				}
				packageID = id
			}
			acts, err := app.Schedule.ListActivities(ctx, packageID)
			if err != nil {
				return err
			}
			if status != "" {
				want, err := domain.ParseActivityStatus(status)
				if err != nil {
					return err
				}
				filtered := acts[:0]
				for _, a := range acts {
					if a.Status == want {
						filtered = append(filtered, a)
					}
				}
				acts = filtered
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActivityList(acts, app.Reports.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&packageID, "package", "", "Only this package")
	cmd.Flags().StringVar(&status, "status", "", "Only this status")

	return cmd
}

func newActivityInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show an activity with its hold history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveActivityID(ctx, app, args[0])
			if err != nil {
				return err
			}
			a, err := app.Schedule.GetActivity(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActivityInspect(a, app.Reports.Now()))
			return nil
		},
	}
}

func newActivityUpdateCmd(app *App) *cobra.Command {
	var packageID, tag, title, priority, assignee, remark, start, end string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit an activity; later activities on the same tag are rescheduled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveActivityID(ctx, app, args[0])
			if err != nil {
				return err
			}
			a, err := app.Schedule.GetActivity(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("package") {
				if a.PackageID, err = resolvePackageID(ctx, app, packageID); err != nil {
					return err
				}
			}
			if flags.Changed("tag") {
				a.Tag = tag
			}
			if flags.Changed("title") {
				a.Title = title
			}
			if flags.Changed("assignee") {
				a.Assignee = assignee
			}
			if flags.Changed("remark") {
				a.Remark = remark
			}
			if flags.Changed("priority") {
				if a.Priority, err = domain.ParsePriority(priority); err != nil {
					return err
				}
			}
			if err := changedDate(flags, "start", &a.Deadline); err != nil {
				return err
			}
			if err := changedDate(flags, "end", &a.PlannedEndDate); err != nil {
				return err
			}

			res, err := app.Schedule.UpdateActivity(ctx, a)
			if err != nil {
				return err
			}
			printUpsert(cmd.OutOrStdout(), "Updated", res)
			return nil
		},
	}

	cmd.Flags().StringVar(&packageID, "package", "", "Move to package")
	cmd.Flags().StringVar(&tag, "tag", "", "New equipment tag")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	cmd.Flags().StringVar(&assignee, "assignee", "", "New assignee")
	cmd.Flags().StringVar(&remark, "remark", "", "New remark")
	cmd.Flags().StringVar(&start, "start", "", "New planned start")
	cmd.Flags().StringVar(&end, "end", "", "New planned end")

	return cmd
}

func newActivityRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete an activity and close the gap in its lineage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveActivityID(ctx, app, args[0])
			if err != nil {
				return err
			}
			moved, err := app.Schedule.RemoveActivity(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed activity %s\n", id)
			if len(moved) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Rescheduled %d following activities: %s\n", len(moved), strings.Join(moved, ", "))
			}
			return nil
		},
	}
}

// setStatus applies change and prints the result line.
func setStatus(cmd *cobra.Command, app *App, input string, change scheduler.StatusChange) error {
	ctx := context.Background()
	id, err := resolveActivityID(ctx, app, input)
	if err != nil {
		return err
	}
	a, err := app.Schedule.SetStatus(ctx, id, change)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s\n", a.ID, a.Title, formatter.StatusPill(a.Status))
	return nil
}

func newActivityStatusCmd(app *App) *cobra.Command {
	var reason, remarks string

	cmd := &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Set an activity status (not-started, in-progress, on-hold, completed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseActivityStatus(args[1])
			if err != nil {
				return err
			}
			return setStatus(cmd, app, args[0], scheduler.StatusChange{Status: status, Reason: reason, Remarks: remarks})
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Hold reason (required for on-hold)")
	cmd.Flags().StringVar(&remarks, "remarks", "", "Hold remarks")

	return cmd
}

func newActivityTransitionCmd(app *App, use, short string, to domain.ActivityStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setStatus(cmd, app, args[0], scheduler.StatusChange{Status: to})
		},
	}
}

func newActivityHoldCmd(app *App) *cobra.Command {
	var reason, remarks string

	cmd := &cobra.Command{
		Use:   "hold ID",
		Short: "Put an activity on hold with a reason",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(reason) == "" && app.interactive() {
				ctx := context.Background()
				id, err := resolveActivityID(ctx, app, args[0])
				if err != nil {
					return err
				}
				a, err := app.Schedule.GetActivity(ctx, id)
				if err != nil {
					return err
				}
				var choice, custom string
				if err := holdReasonForm(a.Title, &choice, &custom, &remarks).Run(); err != nil {
					return err
				}
				reason = holdReason(choice, custom)
			}
			return setStatus(cmd, app, args[0], scheduler.StatusChange{
				Status:  domain.StatusOnHold,
				Reason:  reason,
				Remarks: remarks,
			})
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Hold reason (prompted for when interactive)")
	cmd.Flags().StringVar(&remarks, "remarks", "", "Hold remarks")

	return cmd
}

func newActivityRetagCmd(app *App) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "retag ID...",
		Short: "Move activities to another equipment tag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ids := make([]string, 0, len(args))
			for _, in := range args {
				id, err := resolveActivityID(ctx, app, in)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			n, err := app.Schedule.Retag(ctx, ids, tag)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Retagged %d activities to %s\n", n, strings.TrimSpace(tag))
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "New equipment tag")
	_ = cmd.MarkFlagRequired("tag")

	return cmd
}

func newActivitySearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY",
		Short: "Find activities by equipment tag substring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			acts, err := app.Reports.SearchActivities(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActivityList(acts, app.Reports.Now()))
			return nil
		},
	}
}
