package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeClient) Generate(_ context.Context, _, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func (f *fakeClient) Available(context.Context) bool { return f.err == nil }

var day1 = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func sampleInput() scheduler.EstimateInput {
	end := day1.Add(2 * time.Hour)
	acts := []domain.Activity{
		{ID: "A1", Title: "Open manway", PackageID: "P1", Tag: "V-101", Priority: domain.PriorityHigh,
			Status: domain.StatusCompleted, Deadline: day1, PlannedEndDate: day1.Add(2 * time.Hour),
			StartTime: &day1, EndTime: &end},
		{ID: "A2", Title: "Inspect", PackageID: "P1", Tag: "V-101", Priority: domain.PriorityHigh,
			Status: domain.StatusOnHold, Deadline: day1.Add(2 * time.Hour), PlannedEndDate: day1.Add(6 * time.Hour),
			HoldHistory: []domain.HoldEvent{{Reason: "Scaffold", StartTime: day1.Add(3 * time.Hour)}}},
	}
	pkgs := []domain.Package{{ID: "P1", Name: "Vessel", Priority: domain.PriorityHigh,
		StartDate: day1, EndDate: day1.Add(6 * time.Hour)}}
	asOf := day1.Add(4 * time.Hour)
	return scheduler.EstimateInput{
		Packages:   pkgs,
		Activities: acts,
		AsOf:       asOf,
		Stats:      scheduler.ComputeProjectStats(acts, pkgs, asOf),
	}
}

func TestEstimator_ParsesPrediction(t *testing.T) {
	client := &fakeClient{reply: `{"predicted_date":"2025-03-01T18:00:00Z","reasoning":"scaffold hold"}`}
	est := NewEstimator(Config{Enabled: true}, client)

	got, err := est.Estimate(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.True(t, got.Date.Equal(day1.Add(10*time.Hour)))
	assert.Equal(t, "scaffold hold", got.Reasoning)
	assert.Equal(t, scheduler.SourceExternal, got.Source)
	assert.Contains(t, client.prompt, "2025-03-01T12:00:00Z", "prompt carries the simulation date")
	assert.Contains(t, client.prompt, "Scaffold")
}

func TestEstimator_Disabled(t *testing.T) {
	client := &fakeClient{reply: `{}`}
	_, err := NewEstimator(Config{Enabled: false}, client).Estimate(context.Background(), sampleInput())
	assert.ErrorIs(t, err, ErrDisabled)
	assert.Empty(t, client.prompt, "disabled estimator must not call the model")
}

func TestEstimator_PropagatesErrors(t *testing.T) {
	_, err := NewEstimator(Config{Enabled: true}, &fakeClient{err: ErrTimeout}).
		Estimate(context.Background(), sampleInput())
	assert.ErrorIs(t, err, ErrTimeout)

	_, err = NewEstimator(Config{Enabled: true}, &fakeClient{reply: `{"predicted_date":"next week"}`}).
		Estimate(context.Background(), sampleInput())
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestEstimator_FallsBackThroughSelectEstimate(t *testing.T) {
	in := sampleInput()
	require.Equal(t, 50.0, in.Stats.ActualProgress)

	failing := NewEstimator(Config{Enabled: true}, &fakeClient{err: errors.New("connection refused")})
	sel, err := scheduler.SelectEstimate(context.Background(), in, failing, scheduler.DefaultBand)
	require.NoError(t, err)
	assert.Equal(t, scheduler.SourceFormula, sel.Estimate.Source)
	assert.Contains(t, sel.FallbackReason, "connection refused")

	ok := NewEstimator(Config{Enabled: true}, &fakeClient{reply: `{"predicted_date":"2025-03-01T16:00:00Z","reasoning":"r"}`})
	sel, err = scheduler.SelectEstimate(context.Background(), in, ok, scheduler.DefaultBand)
	require.NoError(t, err)
	assert.Equal(t, scheduler.SourceExternal, sel.Estimate.Source)
	assert.InDelta(t, -2.0, sel.VarianceHours, 0.001, "two hours past the planned end")
}

func TestBuildPayload(t *testing.T) {
	raw, err := BuildPayload(sampleInput())
	require.NoError(t, err)

	var doc projectPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Len(t, doc.Packages, 1)
	require.Len(t, doc.Activities, 2)
	assert.Equal(t, domain.StatusOnHold, doc.Activities[1].Status)
	require.Len(t, doc.Activities[1].Holds, 1)
	assert.Nil(t, doc.Activities[1].Holds[0].EndTime)
}
