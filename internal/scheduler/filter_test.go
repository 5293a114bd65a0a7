package scheduler

import (
	"testing"

	"github.com/sayanitariq-techno/Tariq/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchByTag(t *testing.T) {
	acts := []domain.Activity{act("A", "V-101", 5, 1), act("B", "v-101", 1, 1), act("C", "P-200", 0, 1), act("D", "V-101", 0, 1)}

	got := SearchByTag(acts, "v-1")

	assert.Equal(t, []string{"D", "A", "B"}, ids(got))
	assert.Empty(t, SearchByTag(acts, "  "))
}

func TestFilterPackages(t *testing.T) {
	pkgs := []domain.Package{
		{ID: "P1", Name: "Crude Column", Priority: domain.PriorityHigh},
		{ID: "P2", Name: "Heat Exchanger", Priority: domain.PriorityLow},
		{ID: "P3", Name: "Column Overhead", Priority: domain.PriorityLow},
	}
	a := withStatus(act("A", "T", 0, 1), domain.StatusOnHold)
	b := act("B", "T", 0, 1)
	b.PackageID = "P3"
	acts := []domain.Activity{a, b}

	byName := FilterPackages(pkgs, acts, PackageFilter{Name: "column"})
	require.Len(t, byName, 2)
	assert.Equal(t, "P1", byName[0].Package.ID)
	assert.Equal(t, domain.StatusOnHold, byName[0].Metrics.Status)

	byStatus := FilterPackages(pkgs, acts, PackageFilter{Status: domain.StatusNotStarted})
	assert.Len(t, byStatus, 2, "empty package and P3 are not started")

	byAll := FilterPackages(pkgs, acts, PackageFilter{Name: "column", Priority: domain.PriorityLow, Status: domain.StatusNotStarted})
	require.Len(t, byAll, 1)
	assert.Equal(t, "P3", byAll[0].Package.ID)
}
