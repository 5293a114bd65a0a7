package formatter

import (
	"testing"
	"time"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/sayanitariq-techno/Tariq/internal/scheduler"
	"github.com/sayanitariq-techno/Tariq/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var day1 = testutil.Day1

func sampleProject() ([]domain.Package, []domain.Activity) {
	pkg := testutil.NewTestPackage("Exchanger E-301", testutil.WithPackageID("P1"),
		testutil.WithPackageWindow(day1, day1.Add(10*time.Hour)), testutil.WithSupervisor("R. Khan"))
	started := day1
	ended := day1.Add(2 * time.Hour)
	holdEnd := day1.Add(5 * time.Hour)
	acts := []domain.Activity{
		testutil.NewTestActivity("P1", "Isolate", testutil.WithActivityID("A1"), testutil.WithTag("E-301"),
			testutil.WithWindow(0, 2), testutil.WithStatus(domain.StatusCompleted), testutil.WithActual(started, &ended)),
		testutil.NewTestActivity("P1", "Pull bundle", testutil.WithActivityID("A2"), testutil.WithTag("E-301"),
			testutil.WithWindow(2, 6), testutil.WithStatus(domain.StatusOnHold), testutil.WithActual(ended, nil),
			testutil.WithHolds(
				domain.HoldEvent{Reason: "Crane", StartTime: day1.Add(3 * time.Hour), EndTime: &holdEnd},
				domain.HoldEvent{Reason: "Permit", Remarks: "hot work", StartTime: day1.Add(6 * time.Hour)},
			)),
		testutil.NewTestActivity("P1", "Hydrotest", testutil.WithActivityID("A3"), testutil.WithTag("E-301"),
			testutil.WithWindow(6, 10)),
	}
	return []domain.Package{pkg}, acts
}

func TestFormatProjectStats(t *testing.T) {
	pkgs, acts := sampleProject()
	asOf := day1.Add(7 * time.Hour)
	stats := scheduler.ComputeProjectStats(acts, pkgs, asOf)

	out := stripANSI(FormatProjectStats(stats, nil))
	assert.Contains(t, out, "PROJECT")
	assert.Contains(t, out, "33%")
	assert.Contains(t, out, "70%")
	assert.Contains(t, out, "(formula)")
	assert.Contains(t, out, "delayed 2")
	assert.Contains(t, out, "Pull bundle")
}

func TestFormatProjectStats_ExternalSelection(t *testing.T) {
	pkgs, acts := sampleProject()
	stats := scheduler.ComputeProjectStats(acts, pkgs, day1.Add(7*time.Hour))
	sel := &scheduler.Selection{
		Estimate:      scheduler.Estimate{Date: day1.Add(12 * time.Hour), Source: scheduler.SourceExternal},
		VarianceHours: -2,
	}

	out := stripANSI(FormatProjectStats(stats, sel))
	assert.Contains(t, out, "(external)")
	assert.Contains(t, out, "2h behind")
}

func TestFormatProjectStats_Empty(t *testing.T) {
	out := stripANSI(FormatProjectStats(scheduler.ProjectStats{}, nil))
	assert.Contains(t, out, "No activities yet")
}

func TestFormatPackageListAndInspect(t *testing.T) {
	pkgs, acts := sampleProject()
	list := scheduler.FilterPackages(pkgs, acts, scheduler.PackageFilter{})

	out := stripANSI(FormatPackageList(list))
	assert.Contains(t, out, "Exchanger E-301")
	assert.Contains(t, out, "On Hold")
	assert.Contains(t, out, "1/3")
	assert.Contains(t, out, "R. Khan")

	inspect := stripANSI(FormatPackageInspect(pkgs[0], list[0].Metrics, acts, day1.Add(7*time.Hour)))
	assert.Contains(t, inspect, "E-301")
	assert.Contains(t, inspect, "Hydrotest")
	assert.Contains(t, inspect, "SUPERVISOR")

	assert.Contains(t, stripANSI(FormatPackageList(nil)), "No packages found.")
}

func TestFormatActivityInspect_ShowsHolds(t *testing.T) {
	_, acts := sampleProject()
	out := stripANSI(FormatActivityInspect(acts[1], day1.Add(8*time.Hour)))
	assert.Contains(t, out, "Pull bundle")
	assert.Contains(t, out, "HOLDS")
	assert.Contains(t, out, "Crane")
	assert.Contains(t, out, "open")
	assert.Contains(t, out, "4h")
}

func TestFormatHoldLogAndSummary(t *testing.T) {
	_, acts := sampleProject()
	now := day1.Add(8 * time.Hour)

	log := stripANSI(FormatHoldLog(scheduler.BuildHoldLog(acts), now))
	assert.Contains(t, log, "Permit")
	assert.Contains(t, log, "hot work")
	assert.Contains(t, log, "2 holds, 1 open")

	summary := stripANSI(FormatHoldSummary(scheduler.SummarizeHoldReasons(acts, now)))
	assert.Contains(t, summary, "Crane")
	assert.Contains(t, summary, "total on hold: 4h")

	assert.Contains(t, stripANSI(FormatHoldSummary(nil)), "No holds recorded.")
}

func TestFormatSCurve(t *testing.T) {
	points := []scheduler.SCurvePoint{
		{Day: day1, Planned: 25, Completed: 10},
		{Day: day1.AddDate(0, 0, 1), Planned: 100, Completed: 40},
	}
	out := stripANSI(FormatSCurve("S-curve", points))
	assert.Contains(t, out, "01 Mar")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, " 40.0%")

	assert.Contains(t, stripANSI(FormatSCurve("S-curve", nil)), "Not enough data")
}
