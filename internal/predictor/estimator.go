// Package predictor asks a local language model for a project completion
// date. It plugs into scheduler.SelectEstimate as the external estimator.
package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
)

const systemPrompt = `You forecast completion dates for industrial turnaround and shutdown projects.
Reply with a single JSON object: {"predicted_date": "<RFC3339 timestamp>", "reasoning": "<one or two sentences>"}.`

const promptTemplate = `Predict when the whole project will finish.

The current date is %s.
Weigh the planned window from the packages, completed versus total activities,
activities currently on hold and the reasons and lengths of past holds, and how
started or completed activities performed against their planned start and end.
Note whether work is speeding up or slowing down. Be realistic, neither
optimistic nor pessimistic, and give a specific date and time.

Project data:
%s
`

// Estimator implements scheduler.EndDateEstimator on top of a Client.
type Estimator struct {
	client  Client
	enabled bool
}

var _ scheduler.EndDateEstimator = (*Estimator)(nil)

func NewEstimator(cfg Config, client Client) *Estimator {
	return &Estimator{client: client, enabled: cfg.Enabled}
}

type prediction struct {
	PredictedDate string `json:"predicted_date"`
	Reasoning     string `json:"reasoning"`
}

func validPrediction(p prediction) error {
	if strings.TrimSpace(p.PredictedDate) == "" {
		return errors.New("predicted_date is required")
	}
	if _, err := time.Parse(time.RFC3339, strings.TrimSpace(p.PredictedDate)); err != nil {
		return fmt.Errorf("predicted_date %q is not RFC3339", p.PredictedDate)
	}
	return nil
}

func (e *Estimator) Estimate(ctx context.Context, in scheduler.EstimateInput) (scheduler.Estimate, error) {
	if e == nil || !e.enabled || e.client == nil {
		return scheduler.Estimate{}, ErrDisabled
	}

	payload, err := BuildPayload(in)
	if err != nil {
		return scheduler.Estimate{}, err
	}
	prompt := fmt.Sprintf(promptTemplate, in.AsOf.UTC().Format(time.RFC3339), payload)

	reply, err := e.client.Generate(ctx, systemPrompt, prompt)
	if err != nil {
		return scheduler.Estimate{}, err
	}
	p, err := ExtractJSON(reply, validPrediction)
	if err != nil {
		return scheduler.Estimate{}, err
	}
	date, _ := time.Parse(time.RFC3339, strings.TrimSpace(p.PredictedDate))
	return scheduler.Estimate{
		Date:      date,
		Reasoning: strings.TrimSpace(p.Reasoning),
		Source:    scheduler.SourceExternal,
	}, nil
}

type packagePayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type holdPayload struct {
	Reason    string     `json:"reason"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

type activityPayload struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	PackageID      string                `json:"package_id"`
	Status         domain.ActivityStatus `json:"status"`
	Deadline       time.Time             `json:"planned_start"`
	PlannedEndDate time.Time             `json:"planned_end"`
	StartTime      *time.Time            `json:"start_time,omitempty"`
	EndTime        *time.Time            `json:"end_time,omitempty"`
	Holds          []holdPayload         `json:"hold_history,omitempty"`
}

type projectPayload struct {
	SimulationDate time.Time         `json:"simulation_date"`
	Packages       []packagePayload  `json:"packages"`
	Activities     []activityPayload `json:"activities"`
}

// BuildPayload renders the project as the JSON document embedded in the prompt.
func BuildPayload(in scheduler.EstimateInput) (string, error) {
	doc := projectPayload{
		SimulationDate: in.AsOf.UTC(),
		Packages:       make([]packagePayload, 0, len(in.Packages)),
		Activities:     make([]activityPayload, 0, len(in.Activities)),
	}
	for _, p := range in.Packages {
		doc.Packages = append(doc.Packages, packagePayload{
			ID: p.ID, Name: p.Name, StartDate: p.StartDate.UTC(), EndDate: p.EndDate.UTC(),
		})
	}
	for _, a := range in.Activities {
		ap := activityPayload{
			ID:             a.ID,
			Title:          a.Title,
			PackageID:      a.PackageID,
			Status:         a.Status,
			Deadline:       a.Deadline.UTC(),
			PlannedEndDate: a.PlannedEndDate.UTC(),
			StartTime:      a.StartTime,
			EndTime:        a.EndTime,
		}
		for _, h := range a.HoldHistory {
			ap.Holds = append(ap.Holds, holdPayload{Reason: h.Reason, StartTime: h.StartTime, EndTime: h.EndTime})
		}
		doc.Activities = append(doc.Activities, ap)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding project payload: %w", err)
	}
	return string(data), nil
}
