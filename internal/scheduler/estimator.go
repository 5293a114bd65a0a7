package scheduler

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
)

// EstimateSource identifies which estimator produced a completion date.
type EstimateSource string

const (
	SourceFormula  EstimateSource = "formula"
	SourceExternal EstimateSource = "external"
)

// Estimate is a predicted project completion date.
type Estimate struct {
	Date      time.Time
	Reasoning string
	Source    EstimateSource
}

// EstimateInput is everything an estimator may look at.
type EstimateInput struct {
	Packages   []domain.Package
	Activities []domain.Activity
	AsOf       time.Time
	Stats      ProjectStats
}

// EndDateEstimator predicts the project completion date.
type EndDateEstimator interface {
	Estimate(ctx context.Context, in EstimateInput) (Estimate, error)
}

// FormulaInput feeds the linear run-rate projection.
type FormulaInput struct {
	ActualProgress   float64
	ActualStartDate  *time.Time
	LatestCompletion *time.Time
	PlannedStart     time.Time
	PlannedEnd       time.Time
	AsOf             time.Time
}

// FormulaEstimate projects completion by extrapolating the run rate since
// the first actual start. Finished projects return the latest completion;
// projects with no progress fall back to the planned end.
func FormulaEstimate(in FormulaInput) time.Time {
	if in.ActualProgress >= 100 && in.LatestCompletion != nil {
		return *in.LatestCompletion
	}
	if in.ActualProgress > 0 && in.ActualProgress < 100 &&
		in.PlannedEnd.Sub(in.PlannedStart) > 0 && in.ActualStartDate != nil {
		elapsed := in.AsOf.Sub(*in.ActualStartDate)
		return in.ActualStartDate.Add(saturate(float64(elapsed) / (in.ActualProgress / 100)))
	}
	return in.PlannedEnd
}

// saturate converts nanoseconds to a Duration, pinning values outside the
// int64 range to the largest representable span instead of wrapping.
func saturate(ns float64) time.Duration {
	switch {
	case ns >= math.MaxInt64:
		return time.Duration(math.MaxInt64)
	case ns <= math.MinInt64:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(ns)
}

// FormulaEstimator is the default EndDateEstimator. It reads the estimate
// already derived by ComputeProjectStats.
type FormulaEstimator struct{}

func (FormulaEstimator) Estimate(_ context.Context, in EstimateInput) (Estimate, error) {
	if in.Stats.EstimatedEndDate == nil {
		return Estimate{}, fmt.Errorf("no planned window to estimate from: %w", domain.ErrNotFound)
	}
	return Estimate{
		Date:      *in.Stats.EstimatedEndDate,
		Reasoning: fmt.Sprintf("run-rate projection at %.1f%% complete", in.Stats.ActualProgress),
		Source:    SourceFormula,
	}, nil
}

// Band bounds the actual-progress range, exclusive on both ends, in which
// an external estimate is preferred over the formula.
type Band struct {
	Lower float64
	Upper float64
}

// DefaultBand trusts an external estimator between 5% and 95% progress.
var DefaultBand = Band{Lower: 5, Upper: 95}

// Contains reports whether progress lies strictly inside the band.
func (b Band) Contains(progress float64) bool {
	return progress > b.Lower && progress < b.Upper
}

// Selection is the estimate chosen for display with its variance against
// the planned end.
type Selection struct {
	Estimate      Estimate
	VarianceHours float64
	// FallbackReason explains why an available external estimator was not used.
	FallbackReason string
}

// SelectEstimate picks the external estimate when progress is inside band
// and the external call succeeds, and the formula estimate otherwise. It
// never changes the stored stats.
func SelectEstimate(ctx context.Context, in EstimateInput, external EndDateEstimator, band Band) (Selection, error) {
	formula, err := FormulaEstimator{}.Estimate(ctx, in)
	if err != nil {
		return Selection{}, err
	}
	sel := Selection{Estimate: formula, VarianceHours: in.Stats.ScheduleVarianceHours}
	if external == nil {
		return sel, nil
	}
	if !band.Contains(in.Stats.ActualProgress) {
		sel.FallbackReason = fmt.Sprintf("progress %.1f%% outside %.0f-%.0f%%", in.Stats.ActualProgress, band.Lower, band.Upper)
		return sel, nil
	}

	ext, err := external.Estimate(ctx, in)
	if err != nil {
		sel.FallbackReason = err.Error()
		return sel, nil
	}
	ext.Source = SourceExternal
	sel.Estimate = ext
	sel.VarianceHours = VarianceHours(*in.Stats.PlannedEnd, ext.Date)
	return sel, nil
}
