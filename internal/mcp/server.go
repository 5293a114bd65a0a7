package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
	"github.com/sayanitariq-techno/Tariq/internal/service"
)

// Version is reported to MCP clients during initialize.
const Version = "0.1.0"

// NewServer exposes the schedule and reports to MCP clients. Writes are
// limited to status changes; planning edits stay on the CLI.
func NewServer(schedule service.ScheduleService, reports service.ReportService) *server.MCPServer {
	s := server.NewMCPServer("Tariq", Version)

	s.AddTool(mcp.NewTool("list_packages",
		mcp.WithDescription("List work packages with derived status and progress."),
		mcp.WithString("name", mcp.Description("Case-insensitive substring of the package name")),
		mcp.WithString("status", mcp.Description("Derived status: Not Started, In Progress, On Hold or Completed")),
		mcp.WithString("priority", mcp.Description("High, Medium or Low")),
	), listPackagesHandler(reports))

	s.AddTool(mcp.NewTool("list_activities",
		mcp.WithDescription("List activities, optionally for one package."),
		mcp.WithString("package_id", mcp.Description("Package ID")),
	), listActivitiesHandler(schedule))

	s.AddTool(mcp.NewTool("get_activity",
		mcp.WithDescription("Get one activity with its hold history."),
		mcp.WithString("id", mcp.Description("Activity ID"), mcp.Required()),
	), getActivityHandler(schedule))

	s.AddTool(mcp.NewTool("search_activities",
		mcp.WithDescription("Find activities whose equipment tag contains the query."),
		mcp.WithString("query", mcp.Description("Tag substring, case-insensitive"), mcp.Required()),
	), searchActivitiesHandler(reports))

	s.AddTool(mcp.NewTool("project_stats",
		mcp.WithDescription("Project progress, activity buckets, estimated end date and schedule variance."),
		mcp.WithString("as_of", mcp.Description("RFC3339 instant to evaluate at (defaults to now)")),
	), projectStatsHandler(reports))

	s.AddTool(mcp.NewTool("hold_log",
		mcp.WithDescription("Every hold event, most recent first."),
	), holdLogHandler(reports))

	s.AddTool(mcp.NewTool("hold_summary",
		mcp.WithDescription("Total hold time per reason, longest first. Open holds count up to now."),
	), holdSummaryHandler(reports))

	s.AddTool(mcp.NewTool("s_curve",
		mcp.WithDescription("Cumulative planned vs completed percentage per day."),
		mcp.WithString("package_id", mcp.Description("Limit the curve to one package")),
	), sCurveHandler(reports))

	s.AddTool(mcp.NewTool("set_status",
		mcp.WithDescription("Change an activity status. Starting requires earlier activities on the same tag to be completed."),
		mcp.WithString("id", mcp.Description("Activity ID"), mcp.Required()),
		mcp.WithString("status", mcp.Description("Not Started, In Progress, On Hold or Completed"), mcp.Required()),
		mcp.WithString("reason", mcp.Description("Hold reason (required for On Hold)")),
		mcp.WithString("remarks", mcp.Description("Hold remarks")),
	), setStatusHandler(schedule))

	return s
}

// Serve runs the server on stdin/stdout until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func listPackagesHandler(reports service.ReportService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := scheduler.PackageFilter{Name: mcp.ParseString(request, "name", "")}
		if s := mcp.ParseString(request, "status", ""); s != "" {
			status, err := domain.ParseActivityStatus(s)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			filter.Status = status
		}
		if p := mcp.ParseString(request, "priority", ""); p != "" {
			priority, err := domain.ParsePriority(p)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			filter.Priority = priority
		}

		list, err := reports.PackageOverview(ctx, filter)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out := make([]packageJSON, 0, len(list))
		for _, o := range list {
			out = append(out, toPackageJSON(o))
		}
		return jsonResult(map[string]any{"packages": out})
	}
}

func listActivitiesHandler(schedule service.ScheduleService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		acts, err := schedule.ListActivities(ctx, mcp.ParseString(request, "package_id", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]any{"activities": toActivitiesJSON(acts)})
	}
}

func getActivityHandler(schedule service.ScheduleService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a, err := schedule.GetActivity(ctx, mcp.ParseString(request, "id", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(toActivityJSON(a))
	}
}

func searchActivitiesHandler(reports service.ReportService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		acts, err := reports.SearchActivities(ctx, mcp.ParseString(request, "query", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]any{"activities": toActivitiesJSON(acts)})
	}
}

func projectStatsHandler(reports service.ReportService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		asOf := reports.Now()
		if raw := mcp.ParseString(request, "as_of", ""); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid as_of %q: expected RFC3339", raw)), nil
			}
			asOf = t
		}

		stats, err := reports.ProjectStats(ctx, asOf)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if stats.TotalActivities == 0 {
			return mcp.NewToolResultError("no activities to report on"), nil
		}
		sel, err := reports.Estimate(ctx, asOf)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(toStatsJSON(stats, sel))
	}
}

func holdLogHandler(reports service.ReportService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := reports.HoldLog(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out := make([]holdLogJSON, 0, len(entries))
		for _, e := range entries {
			out = append(out, holdLogJSON{
				ActivityID: e.ActivityID,
				Title:      e.ActivityTitle,
				PackageID:  e.PackageID,
				Tag:        e.Tag,
				holdJSON: holdJSON{
					Reason:    e.Event.Reason,
					Remarks:   e.Event.Remarks,
					StartTime: e.Event.StartTime,
					EndTime:   e.Event.EndTime,
				},
			})
		}
		return jsonResult(map[string]any{"holds": out})
	}
}

func holdSummaryHandler(reports service.ReportService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rows, err := reports.HoldSummary(ctx, reports.Now())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out := make([]holdSummaryJSON, 0, len(rows))
		for _, r := range rows {
			out = append(out, holdSummaryJSON{
				Reason:   r.Reason,
				Count:    r.Count,
				Minutes:  int64(r.TotalDuration / time.Minute),
				Duration: scheduler.FormatDuration(r.TotalDuration),
			})
		}
		return jsonResult(map[string]any{"reasons": out})
	}
}

func sCurveHandler(reports service.ReportService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		points, err := reports.SCurve(ctx, mcp.ParseString(request, "package_id", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out := make([]sCurveJSON, 0, len(points))
		for _, p := range points {
			out = append(out, sCurveJSON{Day: p.Day.Format(time.DateOnly), Planned: p.Planned, Completed: p.Completed})
		}
		return jsonResult(map[string]any{"points": out})
	}
}

func setStatusHandler(schedule service.ScheduleService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		status, err := domain.ParseActivityStatus(mcp.ParseString(request, "status", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		a, err := schedule.SetStatus(ctx, mcp.ParseString(request, "id", ""), scheduler.StatusChange{
			Status:  status,
			Reason:  mcp.ParseString(request, "reason", ""),
			Remarks: mcp.ParseString(request, "remarks", ""),
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(toActivityJSON(a))
	}
}
