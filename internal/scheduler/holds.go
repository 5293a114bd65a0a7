package scheduler

import (
	"sort"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
)

// HoldLogEntry is one hold event tagged with its owning activity.
type HoldLogEntry struct {
	ActivityID    string
	ActivityTitle string
	PackageID     string
	Tag           string
	Event         domain.HoldEvent
}

// HoldReasonSummary aggregates every hold sharing one reason.
type HoldReasonSummary struct {
	Reason        string
	TotalDuration time.Duration
	Count         int
}

// BuildHoldLog flattens all hold histories, most recent start first.
func BuildHoldLog(activities []domain.Activity) []HoldLogEntry {
	var log []HoldLogEntry
	for _, a := range activities {
		for _, h := range a.HoldHistory {
			h.EndTime = domain.CloneTime(h.EndTime)
			log = append(log, HoldLogEntry{
				ActivityID:    a.ID,
				ActivityTitle: a.Title,
				PackageID:     a.PackageID,
				Tag:           a.Tag,
				Event:         h,
			})
		}
	}
	sort.SliceStable(log, func(i, j int) bool {
		return log[i].Event.StartTime.After(log[j].Event.StartTime)
	})
	return log
}

// SummarizeHoldReasons groups holds by exact reason. Open holds count up to
// now, so repeated calls grow while a hold stays open. Rows are ordered by
// total duration, longest first.
func SummarizeHoldReasons(activities []domain.Activity, now time.Time) []HoldReasonSummary {
	byReason := make(map[string]*HoldReasonSummary)
	var order []string
	for _, a := range activities {
		for _, h := range a.HoldHistory {
			s, ok := byReason[h.Reason]
			if !ok {
				s = &HoldReasonSummary{Reason: h.Reason}
				byReason[h.Reason] = s
				order = append(order, h.Reason)
			}
			s.TotalDuration += h.Duration(now)
			s.Count++
		}
	}

	out := make([]HoldReasonSummary, 0, len(order))
	for _, r := range order {
		out = append(out, *byReason[r])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalDuration != out[j].TotalDuration {
			return out[i].TotalDuration > out[j].TotalDuration
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}
