package mcp

import (
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
)

type holdJSON struct {
	Reason    string     `json:"reason"`
	Remarks   string     `json:"remarks,omitempty"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

type activityJSON struct {
	ID              string     `json:"id"`
	PackageID       string     `json:"package_id"`
	Tag             string     `json:"tag"`
	Title           string     `json:"title"`
	Priority        string     `json:"priority"`
	Assignee        string     `json:"assignee,omitempty"`
	Status          string     `json:"status"`
	Deadline        time.Time  `json:"planned_start"`
	PlannedEndDate  time.Time  `json:"planned_end"`
	StartTime       *time.Time `json:"actual_start,omitempty"`
	EndTime         *time.Time `json:"actual_end,omitempty"`
	Remark          string     `json:"remark,omitempty"`
	Holds           []holdJSON `json:"holds,omitempty"`
	StatusUpdatedAt *time.Time `json:"status_updated_at,omitempty"`
}

func toActivityJSON(a domain.Activity) activityJSON {
	out := activityJSON{
		ID:              a.ID,
		PackageID:       a.PackageID,
		Tag:             a.Tag,
		Title:           a.Title,
		Priority:        string(a.Priority),
		Assignee:        a.Assignee,
		Status:          string(a.Status),
		Deadline:        a.Deadline,
		PlannedEndDate:  a.PlannedEndDate,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		Remark:          a.Remark,
		StatusUpdatedAt: a.StatusUpdatedAt,
	}
	for _, h := range a.HoldHistory {
		out.Holds = append(out.Holds, holdJSON{Reason: h.Reason, Remarks: h.Remarks, StartTime: h.StartTime, EndTime: h.EndTime})
	}
	return out
}

func toActivitiesJSON(acts []domain.Activity) []activityJSON {
	out := make([]activityJSON, 0, len(acts))
	for _, a := range acts {
		out = append(out, toActivityJSON(a))
	}
	return out
}

type packageJSON struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Priority       string     `json:"priority"`
	StartDate      time.Time  `json:"planned_start"`
	EndDate        time.Time  `json:"planned_end"`
	Supervisor     string     `json:"supervisor,omitempty"`
	Status         string     `json:"status"`
	Progress       float64    `json:"progress"`
	CompletedCount int        `json:"completed"`
	Total          int        `json:"total"`
	ActualStart    *time.Time `json:"actual_start,omitempty"`
	ActualEnd      *time.Time `json:"actual_end,omitempty"`
}

func toPackageJSON(o scheduler.PackageOverview) packageJSON {
	return packageJSON{
		ID:             o.Package.ID,
		Name:           o.Package.Name,
		Description:    o.Package.Description,
		Priority:       string(o.Package.Priority),
		StartDate:      o.Package.StartDate,
		EndDate:        o.Package.EndDate,
		Supervisor:     o.Package.Supervisor,
		Status:         string(o.Metrics.Status),
		Progress:       o.Metrics.Progress,
		CompletedCount: o.Metrics.CompletedCount,
		Total:          o.Metrics.Total,
		ActualStart:    o.Metrics.ActualStartDate,
		ActualEnd:      o.Metrics.ActualEndDate,
	}
}

type statsJSON struct {
	AsOf            time.Time  `json:"as_of"`
	TotalActivities int        `json:"total_activities"`
	ActualProgress  float64    `json:"actual_progress"`
	PlannedProgress float64    `json:"planned_progress"`
	PlannedStart    *time.Time `json:"planned_start,omitempty"`
	PlannedEnd      *time.Time `json:"planned_end,omitempty"`
	ActualStart     *time.Time `json:"actual_start,omitempty"`
	Completed       int        `json:"completed"`
	Delayed         []string   `json:"delayed"`
	OnTrack         int        `json:"on_track"`
	Upcoming        int        `json:"upcoming"`
	EstimatedEnd    time.Time  `json:"estimated_end"`
	EstimateSource  string     `json:"estimate_source"`
	Reasoning       string     `json:"reasoning,omitempty"`
	VarianceHours   float64    `json:"variance_hours"`
	FallbackReason  string     `json:"fallback_reason,omitempty"`
}

func toStatsJSON(s scheduler.ProjectStats, sel scheduler.Selection) statsJSON {
	delayed := make([]string, 0, len(s.Delayed))
	for _, a := range s.Delayed {
		delayed = append(delayed, a.ID)
	}
	return statsJSON{
		AsOf:            s.AsOf,
		TotalActivities: s.TotalActivities,
		ActualProgress:  s.ActualProgress,
		PlannedProgress: s.PlannedProgress,
		PlannedStart:    s.PlannedStart,
		PlannedEnd:      s.PlannedEnd,
		ActualStart:     s.ActualStartDate,
		Completed:       len(s.Completed),
		Delayed:         delayed,
		OnTrack:         len(s.OnTrack),
		Upcoming:        len(s.Upcoming),
		EstimatedEnd:    sel.Estimate.Date,
		EstimateSource:  string(sel.Estimate.Source),
		Reasoning:       sel.Estimate.Reasoning,
		VarianceHours:   sel.VarianceHours,
		FallbackReason:  sel.FallbackReason,
	}
}

type holdLogJSON struct {
	ActivityID string `json:"activity_id"`
	Title      string `json:"title"`
	PackageID  string `json:"package_id"`
	Tag        string `json:"tag"`
	holdJSON
}

type holdSummaryJSON struct {
	Reason   string `json:"reason"`
	Count    int    `json:"count"`
	Minutes  int64  `json:"total_minutes"`
	Duration string `json:"total"`
}

type sCurveJSON struct {
	Day       string  `json:"day"`
	Planned   float64 `json:"planned"`
	Completed float64 `json:"completed"`
}
